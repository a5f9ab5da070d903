package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Aidana2206/GrowthSpace/internal/models"
	"github.com/Aidana2206/GrowthSpace/internal/repository"
	"github.com/Aidana2206/GrowthSpace/pkg/logger"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ProgressService encapsulates the business logic for progress records.
type ProgressService struct {
	repo        *repository.ProgressRepository
	goalRepo    *repository.GoalRepository
	profileRepo *repository.ProfileRepository
}

// NewProgressService creates a new instance of ProgressService.
func NewProgressService(
	repo *repository.ProgressRepository,
	goalRepo *repository.GoalRepository,
	profileRepo *repository.ProfileRepository,
) *ProgressService {
	return &ProgressService{
		repo:        repo,
		goalRepo:    goalRepo,
		profileRepo: profileRepo,
	}
}

// RecordProgress validates and stores a progress update against a goal.
// The percentage is clamped to [0,100]; a write reaching 100 stamps every
// unachieved milestone.
func (s *ProgressService) RecordProgress(ctx context.Context, userID primitive.ObjectID, goalID string, percentage int, milestones []models.Milestone, notes string) (*models.Progress, error) {
	clamped, err := models.ClampPercentage(percentage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	goalObjID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid goal ID", ErrInvalid)
	}

	goal, err := s.goalRepo.GetGoalByID(ctx, goalObjID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("goal %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %v", err)
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("profile %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to resolve profile: %v", err)
	}
	if goal.ProfileID != profile.ID {
		return nil, fmt.Errorf("%w: you can only record progress on your own goals", ErrForbidden)
	}

	progress := &models.Progress{
		ProfileID:  profile.ID,
		GoalID:     goal.ID,
		Percentage: clamped,
		Milestones: models.MarkAchievedMilestones(milestones, clamped, time.Now()),
		Notes:      notes,
	}
	created, err := s.repo.CreateProgress(ctx, progress)
	if err != nil {
		return nil, fmt.Errorf("failed to record progress: %v", err)
	}

	// The goal's progress list only ever grows through this path.
	if err := s.goalRepo.AppendProgress(ctx, goal.ID, created.ID); err != nil {
		logrus.WithError(err).Warn("Failed to append progress reference to goal")
	}
	if err := s.profileRepo.AppendProgress(ctx, profile.ID, created.ID); err != nil {
		logrus.WithError(err).Warn("Failed to append progress reference to profile")
	}

	logger.Log.WithFields(map[string]interface{}{
		"goal_id":    goal.ID.Hex(),
		"percentage": clamped,
	}).Info("Progress recorded")
	return created, nil
}

// ListProgress returns all progress records of a goal, owner-only.
func (s *ProgressService) ListProgress(ctx context.Context, userID primitive.ObjectID, goalID string) ([]models.Progress, error) {
	goalObjID, err := primitive.ObjectIDFromHex(goalID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid goal ID", ErrInvalid)
	}

	goal, err := s.goalRepo.GetGoalByID(ctx, goalObjID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("goal %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get goal: %v", err)
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile: %v", err)
	}
	if goal.ProfileID != profile.ID {
		return nil, fmt.Errorf("%w: you can only view your own progress", ErrForbidden)
	}

	return s.repo.GetProgressByGoal(ctx, goal.ID)
}
