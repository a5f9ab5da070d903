package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type stubMembershipStore struct {
	createErr error
	deleteErr error
	exists    bool
	deletes   int
}

func (s *stubMembershipStore) CreateMembership(ctx context.Context, membership *models.Membership) (*models.Membership, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return membership, nil
}

func (s *stubMembershipStore) DeleteMembership(ctx context.Context, userID, communityID primitive.ObjectID) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletes++
	return nil
}

func (s *stubMembershipStore) MembershipExists(ctx context.Context, userID, communityID primitive.ObjectID) (bool, error) {
	return s.exists, nil
}

func (s *stubMembershipStore) ListMembers(ctx context.Context, communityID primitive.ObjectID, sortField string, sortDir int, skip, limit int64) ([]models.Member, int64, error) {
	return nil, 0, nil
}

func (s *stubMembershipStore) ListMembershipsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Membership, error) {
	return nil, nil
}

type stubCommunityFinder struct {
	err error
}

func (s *stubCommunityFinder) GetCommunityByID(ctx context.Context, id primitive.ObjectID) (*models.Community, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.Community{ID: id}, nil
}

type recordingEvictor struct {
	communityIDs []string
	userIDs      []string
}

func (e *recordingEvictor) EvictFromCommunity(communityID, userID string) {
	e.communityIDs = append(e.communityIDs, communityID)
	e.userIDs = append(e.userIDs, userID)
}

func duplicateKeyErr() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func TestJoinMissingCommunity(t *testing.T) {
	svc := NewMembershipService(&stubMembershipStore{}, &stubCommunityFinder{err: mongo.ErrNoDocuments})

	_, err := svc.Join(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestJoinInvalidCommunityID(t *testing.T) {
	svc := NewMembershipService(&stubMembershipStore{}, &stubCommunityFinder{})

	_, err := svc.Join(context.Background(), primitive.NewObjectID(), "not-an-id")
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestJoinTwiceConflicts(t *testing.T) {
	svc := NewMembershipService(&stubMembershipStore{createErr: duplicateKeyErr()}, &stubCommunityFinder{})

	_, err := svc.Join(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, ErrConflict))
}

func TestJoinCreatesMembership(t *testing.T) {
	svc := NewMembershipService(&stubMembershipStore{}, &stubCommunityFinder{})
	userID := primitive.NewObjectID()
	communityID := primitive.NewObjectID()

	membership, err := svc.Join(context.Background(), userID, communityID.Hex())
	require.NoError(t, err)
	assert.Equal(t, userID, membership.UserID)
	assert.Equal(t, communityID, membership.CommunityID)
}

func TestLeaveWithoutMembership(t *testing.T) {
	store := &stubMembershipStore{deleteErr: mongo.ErrNoDocuments}
	evictor := &recordingEvictor{}
	svc := NewMembershipService(store, &stubCommunityFinder{})
	svc.SetEvictor(evictor)

	err := svc.Leave(context.Background(), primitive.NewObjectID(), primitive.NewObjectID().Hex())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Empty(t, evictor.userIDs)
}

func TestLeaveEvictsRealtimeSubscription(t *testing.T) {
	store := &stubMembershipStore{}
	evictor := &recordingEvictor{}
	svc := NewMembershipService(store, &stubCommunityFinder{})
	svc.SetEvictor(evictor)

	userID := primitive.NewObjectID()
	communityID := primitive.NewObjectID().Hex()

	require.NoError(t, svc.Leave(context.Background(), userID, communityID))
	assert.Equal(t, 1, store.deletes)
	require.Len(t, evictor.userIDs, 1)
	assert.Equal(t, communityID, evictor.communityIDs[0])
	assert.Equal(t, userID.Hex(), evictor.userIDs[0])
}

func TestRemoveMemberDelegatesToLeave(t *testing.T) {
	store := &stubMembershipStore{}
	evictor := &recordingEvictor{}
	svc := NewMembershipService(store, &stubCommunityFinder{})
	svc.SetEvictor(evictor)

	userID := primitive.NewObjectID()
	communityID := primitive.NewObjectID().Hex()

	require.NoError(t, svc.RemoveMember(context.Background(), communityID, userID.Hex()))
	assert.Equal(t, 1, store.deletes)
	assert.Len(t, evictor.userIDs, 1)
}

func TestRemoveMemberInvalidUserID(t *testing.T) {
	svc := NewMembershipService(&stubMembershipStore{}, &stubCommunityFinder{})

	err := svc.RemoveMember(context.Background(), primitive.NewObjectID().Hex(), "not-an-id")
	assert.True(t, errors.Is(err, ErrInvalid))
}
