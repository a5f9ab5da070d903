package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// MembershipStore is the persistence surface the service needs from the
// membership repository.
type MembershipStore interface {
	CreateMembership(ctx context.Context, membership *models.Membership) (*models.Membership, error)
	DeleteMembership(ctx context.Context, userID, communityID primitive.ObjectID) error
	MembershipExists(ctx context.Context, userID, communityID primitive.ObjectID) (bool, error)
	ListMembers(ctx context.Context, communityID primitive.ObjectID, sortField string, sortDir int, skip, limit int64) ([]models.Member, int64, error)
	ListMembershipsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error)
}

// CommunityFinder resolves community existence for join/list checks.
type CommunityFinder interface {
	GetCommunityByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error)
}

// Evictor drops a user's live connections from a community's realtime room.
// Implemented by the websocket hub.
type Evictor interface {
	EvictFromCommunity(communityID, userID string)
}

// MembershipService encapsulates the business logic for community
// memberships.
type MembershipService struct {
	repo          MembershipStore
	communityRepo CommunityFinder
	evictor       Evictor
}

// NewMembershipService creates a new instance of MembershipService.
func NewMembershipService(repo MembershipStore, communityRepo CommunityFinder) *MembershipService {
	return &MembershipService{
		repo:          repo,
		communityRepo: communityRepo,
	}
}

// SetEvictor wires the websocket hub in after construction; the hub needs
// this service first.
func (s *MembershipService) SetEvictor(e Evictor) {
	s.evictor = e
}

// Join creates the membership row for (user, community). Joining a missing
// community fails with not-found; joining twice fails with conflict.
func (s *MembershipService) Join(ctx context.Context, userID primitive.ObjectID, communityID string) (*models.Membership, error) {
	communityObjID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	if _, err := s.communityRepo.GetCommunityByID(ctx, communityObjID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("community %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to check community: %v", err)
	}

	membership := &models.Membership{
		UserID:      userID,
		CommunityID: communityObjID,
	}
	created, err := s.repo.CreateMembership(ctx, membership)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("membership %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to join community: %v", err)
	}
	return created, nil
}

// Leave deletes the caller's membership row; missing membership is
// not-found.
func (s *MembershipService) Leave(ctx context.Context, userID primitive.ObjectID, communityID string) error {
	communityObjID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	if err := s.repo.DeleteMembership(ctx, userID, communityObjID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("membership %w", ErrNotFound)
		}
		return fmt.Errorf("failed to leave community: %v", err)
	}

	// The row is gone, so the room subscription goes with it.
	if s.evictor != nil {
		s.evictor.EvictFromCommunity(communityID, userID.Hex())
	}
	return nil
}

// RemoveMember force-removes a member. Same deletion as Leave; the route
// layer restricts it to admins.
func (s *MembershipService) RemoveMember(ctx context.Context, communityID, userID string) error {
	userObjID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return fmt.Errorf("%w: invalid user ID", ErrInvalid)
	}
	return s.Leave(ctx, userObjID, communityID)
}

// IsMember reports whether the user has a membership row for the community.
func (s *MembershipService) IsMember(ctx context.Context, userID, communityID primitive.ObjectID) (bool, error) {
	return s.repo.MembershipExists(ctx, userID, communityID)
}

// ListMembers returns one page of a community's members joined with their
// user records, plus the total count. Sort keys: name, email, joinedAt
// (default joinedAt ascending).
func (s *MembershipService) ListMembers(ctx context.Context, communityID, sortKey string, descending bool, skip, limit int64) ([]models.Member, int64, error) {
	communityObjID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	if _, err := s.communityRepo.GetCommunityByID(ctx, communityObjID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, 0, fmt.Errorf("community %w", ErrNotFound)
		}
		return nil, 0, fmt.Errorf("failed to check community: %v", err)
	}

	sortField, ok := models.MemberSortFields[sortKey]
	if !ok {
		sortField = models.MemberSortFields["joinedAt"]
	}
	sortDir := 1
	if descending {
		sortDir = -1
	}

	members, total, err := s.repo.ListMembers(ctx, communityObjID, sortField, sortDir, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list members: %v", err)
	}

	logger.Log.WithFields(map[string]interface{}{
		"community_id": communityID,
		"count":        len(members),
		"total":        total,
	}).Info("Members listed successfully")
	return members, total, nil
}

// ListOwnMemberships returns the membership rows held by a user.
func (s *MembershipService) ListOwnMemberships(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error) {
	memberships, err := s.repo.ListMembershipsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %v", err)
	}
	return memberships, nil
}
