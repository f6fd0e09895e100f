// Package service implements business logic on top of the repositories.
package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// GroupInput carries the caller-supplied group fields.
type GroupInput struct {
	Title       string
	Slug        string
	Description string
}

// GroupService provides group business logic.
type GroupService struct {
	groupRepo repository.GroupRepository
}

// NewGroupService returns a new GroupService.
func NewGroupService(groupRepo repository.GroupRepository) *GroupService {
	return &GroupService{groupRepo: groupRepo}
}

// checkSlugFree pre-checks slug uniqueness for a friendlier error; the unique
// index remains the authority under concurrency.
func (s *GroupService) checkSlugFree(ctx context.Context, slug string, selfID uint) error {
	existing, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return models.NewConstraintViolationError("group", "slug", nil)
	}
	return nil
}

// Create registers a new group.
func (s *GroupService) Create(ctx context.Context, input GroupInput) (*models.Group, error) {
	if input.Title == "" || input.Slug == "" {
		return nil, models.NewValidationError("Title and slug are required")
	}
	if err := s.checkSlugFree(ctx, input.Slug, 0); err != nil {
		return nil, err
	}

	group := &models.Group{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Update overwrites the mutable group fields: title, slug, description.
func (s *GroupService) Update(ctx context.Context, groupID uint, input GroupInput) (*models.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, models.NewNotFoundError("Group", groupID)
	}

	if input.Title == "" || input.Slug == "" {
		return nil, models.NewValidationError("Title and slug are required")
	}
	if err := s.checkSlugFree(ctx, input.Slug, groupID); err != nil {
		return nil, err
	}

	group.Title = input.Title
	group.Slug = input.Slug
	group.Description = input.Description
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete removes the group; its posts survive with the group reference
// cleared.
func (s *GroupService) Delete(ctx context.Context, groupID uint) error {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return models.NewNotFoundError("Group", groupID)
	}
	return s.groupRepo.Delete(ctx, groupID)
}
