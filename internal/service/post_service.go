// Package service implements business logic on top of the repositories.
package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// PostInput carries the caller-supplied post fields. The author comes from
// the caller identity, never from the request body.
type PostInput struct {
	Text    string
	Image   string
	GroupID *uint
}

// PostService provides post business logic: construction, ownership checks
// and group-reference validation.
type PostService struct {
	postRepo  repository.PostRepository
	groupRepo repository.GroupRepository
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, groupRepo repository.GroupRepository) *PostService {
	return &PostService{
		postRepo:  postRepo,
		groupRepo: groupRepo,
	}
}

// resolveGroup rejects a dangling group reference before the write.
func (s *PostService) resolveGroup(ctx context.Context, groupID *uint) error {
	if groupID == nil {
		return nil
	}
	group, err := s.groupRepo.GetByID(ctx, *groupID)
	if err != nil {
		return err
	}
	if group == nil {
		return models.NewConstraintViolationError("post", "group reference", nil)
	}
	return nil
}

// Create publishes a new post authored by the caller and returns the
// materialized row, including the store-assigned publication timestamp.
func (s *PostService) Create(ctx context.Context, authorID uint, input PostInput) (*models.Post, error) {
	if input.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if err := s.resolveGroup(ctx, input.GroupID); err != nil {
		return nil, err
	}

	post := &models.Post{
		Text:     input.Text,
		Image:    input.Image,
		GroupID:  input.GroupID,
		AuthorID: authorID,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID)
}

// Update overwrites the mutable fields of the caller's own post.
func (s *PostService) Update(ctx context.Context, callerID, postID uint, input PostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}
	if post.AuthorID != callerID {
		return nil, models.NewForbiddenError("post")
	}

	if input.Text == "" {
		return nil, models.NewValidationError("Text is required")
	}
	if err := s.resolveGroup(ctx, input.GroupID); err != nil {
		return nil, err
	}

	post.Text = input.Text
	post.Image = input.Image
	post.GroupID = input.GroupID
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, postID)
}

// Delete removes the caller's own post and, transitively, its comments.
func (s *PostService) Delete(ctx context.Context, callerID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return models.NewNotFoundError("Post", postID)
	}
	if post.AuthorID != callerID {
		return models.NewForbiddenError("post")
	}

	return s.postRepo.Delete(ctx, postID)
}
