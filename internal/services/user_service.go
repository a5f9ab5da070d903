package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"github.com/Aidana2206/GrowthSpace/pkg/email"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// UserService encapsulates the business logic for user operations.
type UserService struct {
	repo             *repository.UserRepository
	profileRepo      *repository.ProfileRepository
	goalRepo         *repository.GoalRepository
	progressRepo     *repository.ProgressRepository
	membershipRepo   *repository.MembershipRepository
	notificationRepo *repository.NotificationRepository
	baseURL          string
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	repo *repository.UserRepository,
	profileRepo *repository.ProfileRepository,
	goalRepo *repository.GoalRepository,
	progressRepo *repository.ProgressRepository,
	membershipRepo *repository.MembershipRepository,
	notificationRepo *repository.NotificationRepository,
	baseURL string,
) *UserService {
	return &UserService{
		repo:             repo,
		profileRepo:      profileRepo,
		goalRepo:         goalRepo,
		progressRepo:     progressRepo,
		membershipRepo:   membershipRepo,
		notificationRepo: notificationRepo,
		baseURL:          baseURL,
	}
}

// RegisterUser registers a new user after hashing their password. The
// profile document is always created in the same call, so the profile id
// is the one canonical owner key for goals and progress.
func (s *UserService) RegisterUser(ctx context.Context, user *models.User, password string) (*models.User, error) {
	logrus.Info("Registering new user")

	if user.Email == "" || user.Name == "" || password == "" {
		logrus.Warn("Missing required fields during registration")
		return nil, fmt.Errorf("%w: name, email and password are required", ErrInvalid)
	}

	if !emailRegex.MatchString(user.Email) {
		logrus.WithField("email", user.Email).Warn("Invalid email format during registration")
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalid)
	}

	existingUser, _ := s.repo.GetUserByEmail(ctx, user.Email)
	if existingUser != nil {
		logrus.WithField("email", user.Email).Warn("Email already in use")
		return nil, fmt.Errorf("email %w", ErrConflict)
	}

	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Password hashing failed")
		return nil, fmt.Errorf("failed to hash password: %v", err)
	}
	user.HashedPassword = string(hashedPwd)

	if user.Role == "" {
		user.Role = models.RoleUser
	}

	user.VerifyToken = uuid.NewString()
	user.IsVerified = false
	user.LastActiveAt = time.Now()

	createdUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("email %w", ErrConflict)
		}
		logrus.WithError(err).Error("User registration failed")
		return nil, fmt.Errorf("failed to register user: %v", err)
	}

	// Registration cascades profile creation.
	profile := &models.Profile{UserID: createdUser.ID}
	if _, err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
		logrus.WithError(err).Error("Profile creation failed, rolling back user")
		_ = s.repo.DeleteUser(ctx, createdUser.ID)
		return nil, fmt.Errorf("failed to create profile: %v", err)
	}

	verificationLink := fmt.Sprintf("%s/api/auth/user/verify?token=%s", s.baseURL, createdUser.VerifyToken)
	body := fmt.Sprintf("Welcome to GrowthSpace!\n\nPlease verify your email by clicking the link below:\n%s", verificationLink)
	if err := email.SendEmail(createdUser.Email, "Email Verification", body); err != nil {
		logrus.WithError(err).Warn("Failed to send verification email")
	}

	logrus.WithFields(logrus.Fields{
		"userID": createdUser.ID.Hex(),
		"role":   createdUser.Role,
	}).Info("User registered successfully")

	return createdUser, nil
}

// RegisterAdmin creates an account with a privileged role. The handler
// gates this behind SuperAdmin.
func (s *UserService) RegisterAdmin(ctx context.Context, user *models.User, password string) (*models.User, error) {
	if !models.AdminRoles[user.Role] {
		return nil, fmt.Errorf("%w: role must be one of SuperAdmin, Admin, Moderator", ErrInvalid)
	}
	return s.RegisterUser(ctx, user, password)
}

// AuthenticateUser checks the credentials and returns the matching user.
func (s *UserService) AuthenticateUser(ctx context.Context, emailAddr, password string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)); err != nil {
		logrus.WithField("email", emailAddr).Warn("Password mismatch during login")
		return nil, fmt.Errorf("invalid email or password")
	}

	_ = s.repo.UpdateLastActive(ctx, user.ID)
	return user, nil
}

// VerifyEmail marks the account matching the token as verified.
func (s *UserService) VerifyEmail(ctx context.Context, token string) error {
	user, err := s.repo.GetUserByVerificationToken(ctx, token)
	if err != nil {
		return fmt.Errorf("verification token %w", ErrNotFound)
	}

	update := bson.M{
		"is_verified":  true,
		"verify_token": "",
	}
	if err := s.repo.UpdateUserFields(ctx, user.ID, update); err != nil {
		return fmt.Errorf("failed to verify email: %v", err)
	}

	logrus.WithField("userID", user.ID.Hex()).Info("Email verified successfully")
	return nil
}

// GetUser retrieves a user by their ID.
func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalid)
	}

	user, err := s.repo.GetUserByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("user %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return user, nil
}

// GetProfileByUserID returns the profile owned by the given user.
func (s *UserService) GetProfileByUserID(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get profile: %v", err)
	}
	return profile, nil
}

// UpdateUser applies the allowed identity fields of a partial update.
func (s *UserService) UpdateUser(ctx context.Context, id string, patch *models.User) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid user ID", ErrInvalid)
	}

	fields := bson.M{}
	if patch.Name != "" {
		fields["name"] = patch.Name
	}
	if !patch.DateOfBirth.IsZero() {
		fields["date_of_birth"] = patch.DateOfBirth
	}
	if patch.Preferences != nil {
		fields["preferences"] = patch.Preferences
	}
	if patch.AvatarURL != "" {
		fields["avatar_url"] = patch.AvatarURL
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateUserFields(ctx, objID, fields); err != nil {
			return nil, fmt.Errorf("failed to update user: %v", err)
		}
	}

	return s.repo.GetUserByID(ctx, objID)
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, patch *models.Profile) (*models.Profile, error) {
	profile, err := s.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if patch.Strengths != nil {
		fields["strengths"] = patch.Strengths
	}
	if patch.GrowthAreas != nil {
		fields["growth_areas"] = patch.GrowthAreas
	}

	if len(fields) > 0 {
		if err := s.profileRepo.UpdateProfileFields(ctx, profile.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to update profile: %v", err)
		}
	}

	return s.profileRepo.GetProfileByID(ctx, profile.ID)
}

// UpdateRole changes an account's role. The handler gates this behind
// SuperAdmin.
func (s *UserService) UpdateRole(ctx context.Context, id, role string) error {
	if role != models.RoleUser && !models.AdminRoles[role] {
		return fmt.Errorf("%w: unknown role %q", ErrInvalid, role)
	}

	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrInvalid)
	}

	if _, err := s.repo.GetUserByID(ctx, objID); err != nil {
		return fmt.Errorf("user %w", ErrNotFound)
	}

	return s.repo.UpdateUserFields(ctx, objID, bson.M{"role": role})
}

// DeleteUser removes an account and cascades: the profile, the profile's
// goals and progress, memberships and notifications all go with it.
func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrInvalid)
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, objID)
	if err == nil {
		if err := s.progressRepo.DeleteProgressByProfile(ctx, profile.ID); err != nil {
			logrus.WithError(err).Warn("Failed to cascade progress deletion")
		}
		if err := s.goalRepo.DeleteGoalsByProfile(ctx, profile.ID); err != nil {
			logrus.WithError(err).Warn("Failed to cascade goal deletion")
		}
		if err := s.profileRepo.DeleteProfileByUserID(ctx, objID); err != nil {
			logrus.WithError(err).Warn("Failed to cascade profile deletion")
		}
	}

	if err := s.membershipRepo.DeleteMembershipsByUser(ctx, objID); err != nil {
		logrus.WithError(err).Warn("Failed to cascade membership deletion")
	}
	if err := s.notificationRepo.DeleteNotificationsByUser(ctx, objID); err != nil {
		logrus.WithError(err).Warn("Failed to cascade notification deletion")
	}

	if err := s.repo.DeleteUser(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("user %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete user: %v", err)
	}

	logrus.WithField("userID", id).Info("User and owned records deleted")
	return nil
}

// ListUsers returns a page of users for the admin view.
func (s *UserService) ListUsers(ctx context.Context, skip, limit int64) ([]models.User, error) {
	users, err := s.repo.GetAllUsers(ctx, skip, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch users: %v", err)
	}
	return users, nil
}

// UpdateLastActive stamps the user's last activity time.
func (s *UserService) UpdateLastActive(ctx context.Context, id primitive.ObjectID) error {
	return s.repo.UpdateLastActive(ctx, id)
}
