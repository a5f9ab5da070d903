package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GoalService encapsulates the business logic for goals.
type GoalService struct {
	repo                *repository.GoalRepository
	profileRepo         *repository.ProfileRepository
	progressRepo        *repository.ProgressRepository
	NotificationService *NotificationService
}

// NewGoalService creates a new instance of GoalService.
func NewGoalService(
	repo *repository.GoalRepository,
	profileRepo *repository.ProfileRepository,
	progressRepo *repository.ProgressRepository,
	notificationService *NotificationService,
) *GoalService {
	return &GoalService{
		repo:                repo,
		profileRepo:         profileRepo,
		progressRepo:        progressRepo,
		NotificationService: notificationService,
	}
}

// resolveProfile maps the authenticated user onto their profile. The
// profile id is the only owner key; profiles always exist because
// registration creates them.
func (s *GoalService) resolveProfile(ctx context.Context, userID primitive.ObjectID) (*models.Profile, error) {
	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve profile: %v", err)
	}
	return profile, nil
}

// CreateGoal creates a goal owned by the requester's profile, with status
// Pending and an empty progress list.
func (s *GoalService) CreateGoal(ctx context.Context, userID primitive.ObjectID, description string) (*models.Goal, error) {
	if description == "" {
		logger.Log.Warn("Goal description is empty during creation")
		return nil, fmt.Errorf("%w: goal description is required", ErrInvalid)
	}

	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	goal := &models.Goal{
		ProfileID:   profile.ID,
		Description: description,
		Status:      models.GoalStatusPending,
	}
	created, err := s.repo.CreateGoal(ctx, goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %v", err)
	}

	if err := s.profileRepo.AppendGoal(ctx, profile.ID, created.ID); err != nil {
		logrus.WithError(err).Warn("Failed to append goal reference to profile")
	}

	return created, nil
}

// GetGoal retrieves a goal by its ID, enforcing ownership.
func (s *GoalService) GetGoal(ctx context.Context, id string, userID primitive.ObjectID) (*models.Goal, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid goal ID", ErrInvalid)
	}

	goal, err := s.repo.GetGoalByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("goal %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %v", err)
	}

	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if goal.ProfileID != profile.ID {
		return nil, fmt.Errorf("%w: you can only view your own goals", ErrForbidden)
	}
	return goal, nil
}

// GetGoals returns the requester's goals with an optional status filter.
func (s *GoalService) GetGoals(ctx context.Context, userID primitive.ObjectID, status string) ([]models.Goal, error) {
	if status != "" && !models.GoalStatuses[status] {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, status)
	}

	profile, err := s.resolveProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.repo.GetGoalsByProfile(ctx, profile.ID, status)
}

// UpdateGoal mutates description and status. Only the owning profile may
// update; the progress list is untouchable here (append-only via the
// progress endpoint).
func (s *GoalService) UpdateGoal(ctx context.Context, id string, userID primitive.ObjectID, patch *models.Goal) (*models.Goal, error) {
	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if patch.Description != "" {
		fields["description"] = patch.Description
	}
	if patch.Status != "" {
		if !models.GoalStatuses[patch.Status] {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalid, patch.Status)
		}
		fields["status"] = patch.Status
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateGoalFields(ctx, goal.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to update goal: %v", err)
		}
	}

	updated, err := s.repo.GetGoalByID(ctx, goal.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload goal: %v", err)
	}

	if patch.Status == models.GoalStatusCompleted && goal.Status != models.GoalStatusCompleted {
		if err := s.NotificationService.Create(ctx, userID, models.NotificationUpdate,
			fmt.Sprintf("You completed your goal: %q!", updated.Description)); err != nil {
			logrus.WithError(err).Warn("Failed to send goal completed notification")
		}
	}

	return updated, nil
}

// DeleteGoal removes a goal and cascades its progress records.
func (s *GoalService) DeleteGoal(ctx context.Context, id string, userID primitive.ObjectID) error {
	goal, err := s.GetGoal(ctx, id, userID)
	if err != nil {
		return err
	}

	if err := s.progressRepo.DeleteProgressByGoal(ctx, goal.ID); err != nil {
		logrus.WithError(err).Warn("Failed to cascade progress deletion")
	}

	if err := s.repo.DeleteGoal(ctx, goal.ID); err != nil {
		return fmt.Errorf("failed to delete goal: %v", err)
	}
	return nil
}
