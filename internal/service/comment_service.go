// Package service implements business logic on top of the repositories.
package service

import (
	"context"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// CommentService provides comment business logic.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// NewCommentService returns a new CommentService.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

// Create adds a comment by the caller under the given post.
func (s *CommentService) Create(ctx context.Context, authorID, postID uint, text string) (*models.Comment, error) {
	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, models.NewNotFoundError("Post", postID)
	}

	comment := &models.Comment{
		Text:     text,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, comment.ID)
}

// Update overwrites the text of the caller's own comment.
func (s *CommentService) Update(ctx context.Context, callerID, commentID uint, text string) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.AuthorID != callerID {
		return nil, models.NewForbiddenError("comment")
	}

	if text == "" {
		return nil, models.NewValidationError("Text is required")
	}

	comment.Text = text
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	return s.commentRepo.GetByID(ctx, commentID)
}

// Delete removes the caller's own comment.
func (s *CommentService) Delete(ctx context.Context, callerID, commentID uint) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return models.NewNotFoundError("Comment", commentID)
	}
	if comment.AuthorID != callerID {
		return models.NewForbiddenError("comment")
	}

	return s.commentRepo.Delete(ctx, commentID)
}
