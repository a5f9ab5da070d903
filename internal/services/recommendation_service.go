package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// RecommendationService encapsulates the business logic for recommendations.
type RecommendationService struct {
	repo *repository.RecommendationRepository
}

// NewRecommendationService creates a new instance of RecommendationService.
func NewRecommendationService(repo *repository.RecommendationRepository) *RecommendationService {
	return &RecommendationService{repo: repo}
}

// CreateRecommendation validates and stores a recommendation owned by the
// requester.
func (s *RecommendationService) CreateRecommendation(ctx context.Context, userID primitive.ObjectID, rec *models.Recommendation) (*models.Recommendation, error) {
	if !models.RecommendationTypes[rec.Type] {
		return nil, fmt.Errorf("%w: unknown recommendation type %q", ErrInvalid, rec.Type)
	}
	if rec.Content.Title == "" {
		return nil, fmt.Errorf("%w: content title is required", ErrInvalid)
	}

	rec.UserID = userID
	created, err := s.repo.CreateRecommendation(ctx, rec)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation: %v", err)
	}
	return created, nil
}

// ListOwnRecommendations returns the requester's recommendations.
func (s *RecommendationService) ListOwnRecommendations(ctx context.Context, userID primitive.ObjectID) ([]models.Recommendation, error) {
	return s.repo.ListRecommendationsByUser(ctx, userID)
}

// UpdateRecommendation mutates type, content and feedback text. Owner-only.
func (s *RecommendationService) UpdateRecommendation(ctx context.Context, id string, userID primitive.ObjectID, patch *models.Recommendation) (*models.Recommendation, error) {
	rec, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if patch.Type != "" {
		if !models.RecommendationTypes[patch.Type] {
			return nil, fmt.Errorf("%w: unknown recommendation type %q", ErrInvalid, patch.Type)
		}
		fields["type"] = patch.Type
	}
	if patch.Content.Title != "" {
		fields["content"] = patch.Content
	}
	if patch.Feedback != "" {
		fields["feedback"] = patch.Feedback
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateRecommendationFields(ctx, rec.ID, fields); err != nil {
			return nil, fmt.Errorf("failed to update recommendation: %v", err)
		}
	}

	return s.repo.GetRecommendationByID(ctx, rec.ID)
}

// DeleteRecommendation removes a recommendation. Owner-only.
func (s *RecommendationService) DeleteRecommendation(ctx context.Context, id string, userID primitive.ObjectID) error {
	rec, err := s.getOwned(ctx, id, userID)
	if err != nil {
		return err
	}
	return s.repo.DeleteRecommendation(ctx, rec.ID)
}

func (s *RecommendationService) getOwned(ctx context.Context, id string, userID primitive.ObjectID) (*models.Recommendation, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid recommendation ID", ErrInvalid)
	}

	rec, err := s.repo.GetRecommendationByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("recommendation %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get recommendation: %v", err)
	}
	if rec.UserID != userID {
		return nil, fmt.Errorf("%w: not your recommendation", ErrForbidden)
	}
	return rec, nil
}
