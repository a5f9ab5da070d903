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

// Broadcaster pushes an event to every connection subscribed to a
// community's channel. Implemented by the websocket hub.
type Broadcaster interface {
	BroadcastToCommunity(communityID string, event string, payload interface{})
}

// MessageService encapsulates the business logic for community messaging.
type MessageService struct {
	repo           *repository.MessageRepository
	membershipRepo *repository.MembershipRepository
	userRepo       *repository.UserRepository
	broadcaster    Broadcaster
}

// NewMessageService creates a new instance of MessageService.
func NewMessageService(
	repo *repository.MessageRepository,
	membershipRepo *repository.MembershipRepository,
	userRepo *repository.UserRepository,
) *MessageService {
	return &MessageService{
		repo:           repo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
	}
}

// SetBroadcaster wires the websocket hub in after construction; the hub
// needs the membership service first.
func (s *MessageService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SendMessage validates the body, checks membership, persists the message
// and broadcasts the populated result to the community's channel.
func (s *MessageService) SendMessage(ctx context.Context, senderID primitive.ObjectID, communityID, body string, attachments []string) (*models.Message, error) {
	if err := models.ValidateMessageBody(body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	communityObjID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	isMember, err := s.membershipRepo.MembershipExists(ctx, senderID, communityObjID)
	if err != nil {
		return nil, fmt.Errorf("failed to check membership: %v", err)
	}
	if !isMember {
		return nil, fmt.Errorf("%w: only members can post to a community", ErrForbidden)
	}

	msg := &models.Message{
		SenderID:    senderID,
		CommunityID: communityObjID,
		Body:        body,
		Attachments: attachments,
	}
	created, err := s.repo.CreateMessage(ctx, msg)
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %v", err)
	}

	// Populate sender identity for the response and the broadcast.
	if sender, err := s.userRepo.GetUserByID(ctx, senderID); err == nil {
		created.SenderName = sender.Name
		created.SenderAvatar = sender.AvatarURL
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastToCommunity(communityID, "newMessage", created)
	}

	logger.Log.WithFields(map[string]interface{}{
		"message_id":   created.ID.Hex(),
		"community_id": communityID,
	}).Info("Message sent successfully")
	return created, nil
}

// ListMessages returns one newest-first page of a community's messages.
func (s *MessageService) ListMessages(ctx context.Context, communityID string, skip, limit int64) ([]models.Message, int64, error) {
	communityObjID, err := primitive.ObjectIDFromHex(communityID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: invalid community ID", ErrInvalid)
	}

	messages, total, err := s.repo.ListMessagesByCommunity(ctx, communityObjID, skip, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list messages: %v", err)
	}
	return messages, total, nil
}

// DeleteMessage removes a message if the requester is the sender or an
// admin; anything else is forbidden.
func (s *MessageService) DeleteMessage(ctx context.Context, messageID string, requesterID primitive.ObjectID, requesterRole string) error {
	objID, err := primitive.ObjectIDFromHex(messageID)
	if err != nil {
		return fmt.Errorf("%w: invalid message ID", ErrInvalid)
	}

	msg, err := s.repo.GetMessageByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("message %w", ErrNotFound)
		}
		return fmt.Errorf("failed to get message: %v", err)
	}

	isAdmin := requesterRole == models.RoleAdmin || requesterRole == models.RoleSuperAdmin
	if msg.SenderID != requesterID && !isAdmin {
		return fmt.Errorf("%w: only the sender or an admin can delete a message", ErrForbidden)
	}

	if err := s.repo.DeleteMessage(ctx, objID); err != nil {
		return fmt.Errorf("failed to delete message: %v", err)
	}
	return nil
}
