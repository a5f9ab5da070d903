package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// CommunityService encapsulates the business logic for communities.
type CommunityService struct {
	repo           *repository.CommunityRepository
	membershipRepo *repository.MembershipRepository
	messageRepo    *repository.MessageRepository
}

// NewCommunityService creates a new instance of CommunityService.
func NewCommunityService(
	repo *repository.CommunityRepository,
	membershipRepo *repository.MembershipRepository,
	messageRepo *repository.MessageRepository,
) *CommunityService {
	return &CommunityService{
		repo:           repo,
		membershipRepo: membershipRepo,
		messageRepo:    messageRepo,
	}
}

// CreateCommunity creates a community with a unique name.
func (s *CommunityService) CreateCommunity(ctx context.Context, community *models.Community) (*models.Community, error) {
	if community.Name == "" {
		logger.Log.Warn("Community name is empty during creation")
		return nil, fmt.Errorf("%w: community name is required", ErrInvalid)
	}

	created, err := s.repo.CreateCommunity(ctx, community)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("community name %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create community: %v", err)
	}
	return created, nil
}

// GetCommunity retrieves a community by its ID.
func (s *CommunityService) GetCommunity(ctx context.Context, id string) (*models.Community, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	community, err := s.repo.GetCommunityByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("community %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get community: %v", err)
	}
	return community, nil
}

// ListCommunities returns one page of communities, optionally filtered by a
// name/tag search term.
func (s *CommunityService) ListCommunities(ctx context.Context, search string, skip, limit int64) ([]models.Community, int64, error) {
	communities, total, err := s.repo.ListCommunities(ctx, search, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch communities: %v", err)
	}
	return communities, total, nil
}

// DeleteCommunity removes a community and cascades its memberships and
// messages. Role gating happens at the route layer.
func (s *CommunityService) DeleteCommunity(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	if err := s.repo.DeleteCommunity(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("community %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete community: %v", err)
	}

	if err := s.membershipRepo.DeleteMembershipsByCommunity(ctx, objID); err != nil {
		logger.Log.WithError(err).Warn("Failed to cascade membership deletion")
	}
	if err := s.messageRepo.DeleteMessagesByCommunity(ctx, objID); err != nil {
		logger.Log.WithError(err).Warn("Failed to cascade message deletion")
	}

	logger.Log.WithField("community_id", id).Info("Community and related records deleted")
	return nil
}
