package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// FeedbackService encapsulates the business logic for feedback.
type FeedbackService struct {
	repo *repository.FeedbackRepository
}

// NewFeedbackService creates a new instance of FeedbackService.
func NewFeedbackService(repo *repository.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// CreateFeedback validates and stores a feedback entry.
func (s *FeedbackService) CreateFeedback(ctx context.Context, userID primitive.ObjectID, text string, rating int) (*models.Feedback, error) {
	feedback := &models.Feedback{
		UserID: userID,
		Text:   text,
		Rating: rating,
	}
	if err := feedback.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	created, err := s.repo.CreateFeedback(ctx, feedback)
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback: %v", err)
	}
	return created, nil
}

// ListFeedback returns one page of all feedback for the admin view.
func (s *FeedbackService) ListFeedback(ctx context.Context, skip, limit int64) ([]models.Feedback, int64, error) {
	entries, total, err := s.repo.ListFeedback(ctx, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list feedback: %v", err)
	}
	return entries, total, nil
}

// ListOwnFeedback returns the feedback authored by the requester.
func (s *FeedbackService) ListOwnFeedback(ctx context.Context, userID primitive.ObjectID) ([]models.Feedback, error) {
	return s.repo.ListFeedbackByUser(ctx, userID)
}

// DeleteFeedback removes an entry if the requester is the author or an
// admin.
func (s *FeedbackService) DeleteFeedback(ctx context.Context, id string, requesterID primitive.ObjectID, requesterRole string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid feedback ID", ErrInvalid)
	}

	feedback, err := s.repo.GetFeedbackByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("feedback %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get feedback: %v", err)
	}

	isAdmin := requesterRole == models.RoleAdmin || requesterRole == models.RoleSuperAdmin
	if feedback.UserID != requesterID && !isAdmin {
		return fmt.Errorf("%w: only the author or an admin can delete feedback", ErrForbidden)
	}

	return s.repo.DeleteFeedback(ctx, objID)
}
