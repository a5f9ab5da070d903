package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/config"
	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/services"
	jwtutil "github.com/Aidana2206/GrowthSpace/pkg/jwt"
	"github.com/Aidana2206/GrowthSpace/pkg/middleware"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserHandler handles HTTP requests related to user operations.
type UserHandler struct {
	Service *services.UserService
	Config  *config.Config
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService, cfg *config.Config) *UserHandler {
	return &UserHandler{
		Service: service,
		Config:  cfg,
	}
}

type registerRequest struct {
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	DateOfBirth time.Time `json:"date_of_birth,omitempty"`
	Preferences []string  `json:"preferences,omitempty"`
	Role        string    `json:"role,omitempty"`
}

// RegisterUserHandler handles user registration.
func (h *UserHandler) RegisterUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("RegisterUserHandler called")
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.WithError(err).Warn("Failed to decode user registration request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user := &models.User{
		Name:        req.Name,
		Email:       req.Email,
		DateOfBirth: req.DateOfBirth,
		Preferences: req.Preferences,
		Role:        models.RoleUser,
	}
	createdUser, err := h.Service.RegisterUser(r.Context(), user, req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to register user")
		handleServiceError(w, err)
		return
	}

	log.WithField("userID", createdUser.ID.Hex()).Info("User registered successfully")
	writeJSON(w, http.StatusCreated, createdUser)
}

// RegisterAdminHandler creates an account with a privileged role. The
// route restricts it to SuperAdmin.
func (h *UserHandler) RegisterAdminHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	admin := &models.User{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	}
	created, err := h.Service.RegisterAdmin(r.Context(), admin, req.Password)
	if err != nil {
		log.WithError(err).Error("Failed to register admin")
		handleServiceError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"userID": created.ID.Hex(),
		"role":   created.Role,
	}).Info("Admin account created")
	writeJSON(w, http.StatusCreated, created)
}

// LoginUserHandler handles login for both regular and privileged accounts.
func (h *UserHandler) LoginUserHandler(w http.ResponseWriter, r *http.Request) {
	log.Info("LoginUserHandler called")
	var credentials struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
		log.WithError(err).Warn("Failed to decode login request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.Service.AuthenticateUser(r.Context(), credentials.Email, credentials.Password)
	if err != nil {
		log.WithFields(log.Fields{
			"email": credentials.Email,
			"error": err,
		}).Warn("Authentication failed")
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}

	token, err := jwtutil.GenerateToken(user.ID.Hex(), user.Email, user.Role, h.Config.JWTSecret, h.Config.TokenExpiry)
	if err != nil {
		log.WithError(err).Error("Failed to generate JWT token")
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	log.WithField("userID", user.ID.Hex()).Info("User logged in successfully")
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// VerifyEmailHandler confirms an email verification token.
func (h *UserHandler) VerifyEmailHandler(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Missing verification token", http.StatusBadRequest)
		return
	}

	if err := h.Service.VerifyEmail(r.Context(), token); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Email verified successfully"})
}

// GetUserHandler handles fetching a user by ID. Users can fetch only
// themselves; admins can fetch anyone.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestedUserID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	isAdmin := models.AdminRoles[claims.Role]
	if requestedUserID != claims.UserID && !isAdmin {
		log.WithFields(log.Fields{
			"requestedUserID": requestedUserID,
			"loggedInUserID":  claims.UserID,
		}).Warn("Forbidden access attempt")
		http.Error(w, "Forbidden: You can only access your own profile", http.StatusForbidden)
		return
	}

	user, err := h.Service.GetUser(r.Context(), requestedUserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// UpdateUserHandler handles a user updating their own identity fields.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestedUserID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	if requestedUserID != claims.UserID {
		http.Error(w, "Forbidden: You can only update your own profile", http.StatusForbidden)
		return
	}

	var patch models.User
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		log.WithError(err).Warn("Failed to decode update request")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateUser(r.Context(), requestedUserID, &patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.WithField("userID", updated.ID.Hex()).Info("User updated successfully")
	writeJSON(w, http.StatusOK, updated)
}

// DeleteUserHandler removes an account. Self-deletion or admin.
func (h *UserHandler) DeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	requestedUserID := vars["id"]

	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	isAdmin := claims.Role == models.RoleAdmin || claims.Role == models.RoleSuperAdmin
	if requestedUserID != claims.UserID && !isAdmin {
		http.Error(w, "Forbidden: You can only delete your own account", http.StatusForbidden)
		return
	}

	// Privileged accounts can only be removed by a SuperAdmin.
	if requestedUserID != claims.UserID {
		target, err := h.Service.GetUser(r.Context(), requestedUserID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
		if models.AdminRoles[target.Role] && claims.Role != models.RoleSuperAdmin {
			http.Error(w, "Forbidden: insufficient role", http.StatusForbidden)
			return
		}
	}

	if err := h.Service.DeleteUser(r.Context(), requestedUserID); err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted"})
}

// GetProfileHandler returns the caller's profile.
func (h *UserHandler) GetProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	profile, err := h.Service.GetProfileByUserID(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// UpdateProfileHandler updates the caller's strengths and growth areas.
func (h *UserHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusInternalServerError)
		return
	}

	var patch models.Profile
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateProfile(r.Context(), userID, &patch)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// UploadAvatarHandler stores a profile image and persists its URL on the
// caller's account.
func (h *UserHandler) UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetUserFromContext(r.Context())
	if claims == nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	r.ParseMultipartForm(10 << 20) // max ~10MB
	file, handler, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Failed to read file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	fileName := fmt.Sprintf("%d_%s", time.Now().UnixNano(), filepath.Base(handler.Filename))
	filePath := filepath.Join(h.Config.UploadDir, fileName)

	out, err := createUploadFile(h.Config.UploadDir, filePath)
	if err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return
	}

	avatarURL := "/uploads/" + fileName
	updated, err := h.Service.UpdateUser(r.Context(), claims.UserID, &models.User{AvatarURL: avatarURL})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"avatar_url": avatarURL,
		"user":       updated,
	})
}

// AdminGetAllUsersHandler returns a page of users for the admin view.
func (h *UserHandler) AdminGetAllUsersHandler(w http.ResponseWriter, r *http.Request) {
	skip, limit := parsePagination(r)
	users, err := h.Service.ListUsers(r.Context(), skip, limit)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// AdminUpdateRoleHandler changes an account's role. SuperAdmin only.
func (h *UserHandler) AdminUpdateRoleHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.UpdateRole(r.Context(), vars["id"], req.Role); err != nil {
		handleServiceError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"userID": vars["id"],
		"role":   req.Role,
	}).Info("Role updated")
	writeJSON(w, http.StatusOK, map[string]string{"message": "Role updated"})
}

func createUploadFile(dir, path string) (*os.File, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		os.MkdirAll(dir, os.ModePerm)
	}
	return os.Create(path)
}
