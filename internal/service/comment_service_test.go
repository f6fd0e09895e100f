package service

import (
	"context"
	"errors"
	"testing"

	"murmur/internal/models"
)

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(context.Context, uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn: func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Comment) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

func TestCommentServiceCreateOnMissingPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(context.Context, uint) (*models.Post, error) { return nil, nil }

	svc := NewCommentService(noopCommentRepo(), posts)
	_, err := svc.Create(context.Background(), 1, 404, "hello")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
		t.Fatalf("expected not found app error, got %#v", err)
	}
}

func TestCommentServiceCreateEmptyText(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo())
	_, err := svc.Create(context.Background(), 1, 2, "")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeValidation {
		t.Fatalf("expected validation app error, got %#v", err)
	}
}

func TestCommentServiceCreateSetsAuthorAndPost(t *testing.T) {
	var created *models.Comment
	comments := noopCommentRepo()
	comments.createFn = func(_ context.Context, c *models.Comment) error {
		c.ID = 8
		created = c
		return nil
	}
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return created, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	comment, err := svc.Create(context.Background(), 42, 7, "nice post")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if comment.AuthorID != 42 || comment.PostID != 7 {
		t.Fatalf("expected comment on post 7 by user 42, got %#v", comment)
	}
}

func TestCommentServiceUpdateNotOwner(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 8, AuthorID: 10, PostID: 7, Text: "original"}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	_, err := svc.Update(context.Background(), 11, 8, "hijacked")
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeForbidden {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestCommentServiceDeleteNotOwner(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 8, AuthorID: 10, PostID: 7}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	err := svc.Delete(context.Background(), 11, 8)
	var appErr *models.AppError
	if !errors.As(err, &appErr) || appErr.Code != models.CodeForbidden {
		t.Fatalf("expected forbidden app error, got %#v", err)
	}
}

func TestCommentServiceDeleteOwner(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(context.Context, uint) (*models.Comment, error) {
		return &models.Comment{ID: 8, AuthorID: 11, PostID: 7}, nil
	}

	svc := NewCommentService(comments, noopPostRepo())
	if err := svc.Delete(context.Background(), 11, 8); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
