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

// ContentService encapsulates the business logic for the content library.
type ContentService struct {
	repo *repository.ContentRepository
}

// NewContentService creates a new instance of ContentService.
func NewContentService(repo *repository.ContentRepository) *ContentService {
	return &ContentService{repo: repo}
}

// CreateContentItem validates and stores a library entry.
func (s *ContentService) CreateContentItem(ctx context.Context, item *models.ContentItem) (*models.ContentItem, error) {
	if item.Title == "" || item.URL == "" {
		return nil, fmt.Errorf("%w: title and url are required", ErrInvalid)
	}
	if !models.ContentCategories[item.Category] {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalid, item.Category)
	}

	created, err := s.repo.CreateContentItem(ctx, item)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("content title %w", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create content item: %v", err)
	}
	return created, nil
}

// GetContentItem retrieves a library entry by its ID.
func (s *ContentService) GetContentItem(ctx context.Context, id string) (*models.ContentItem, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid content ID", ErrInvalid)
	}

	item, err := s.repo.GetContentItemByID(ctx, objID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("content item %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get content item: %v", err)
	}
	return item, nil
}

// ListContentItems returns one page of the library, optionally filtered by
// category and a title search term.
func (s *ContentService) ListContentItems(ctx context.Context, category, search string, skip, limit int64) ([]models.ContentItem, int64, error) {
	if category != "" && !models.ContentCategories[category] {
		return nil, 0, fmt.Errorf("%w: unknown category %q", ErrInvalid, category)
	}
	return s.repo.ListContentItems(ctx, category, search, skip, limit)
}

// UpdateContentItem mutates a library entry. Admin-only at the route layer.
func (s *ContentService) UpdateContentItem(ctx context.Context, id string, patch *models.ContentItem) (*models.ContentItem, error) {
	item, err := s.GetContentItem(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if patch.Title != "" {
		fields["title"] = patch.Title
	}
	if patch.Description != "" {
		fields["description"] = patch.Description
	}
	if patch.Category != "" {
		if !models.ContentCategories[patch.Category] {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalid, patch.Category)
		}
		fields["category"] = patch.Category
	}
	if patch.URL != "" {
		fields["url"] = patch.URL
	}

	if len(fields) > 0 {
		if err := s.repo.UpdateContentItemFields(ctx, item.ID, fields); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return nil, fmt.Errorf("content title %w", ErrConflict)
			}
			return nil, fmt.Errorf("failed to update content item: %v", err)
		}
	}

	return s.repo.GetContentItemByID(ctx, item.ID)
}

// DeleteContentItem removes a library entry. Admin-only at the route layer.
func (s *ContentService) DeleteContentItem(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: invalid content ID", ErrInvalid)
	}

	if err := s.repo.DeleteContentItem(ctx, objID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("content item %w", ErrNotFound)
		}
		return fmt.Errorf("failed to delete content item: %v", err)
	}
	return nil
}
