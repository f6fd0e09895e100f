// Package service implements business logic on top of the repositories.
package service

import (
	"context"
	"errors"

	"murmur/internal/models"
	"murmur/internal/repository"
)

// FollowService maintains the social graph: who follows whom, and the
// invariants over it (no self-follow, at most one edge per ordered pair).
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow makes the caller follow the named user and returns the followed
// user. Following yourself and following someone twice are rejected, never
// silently absorbed.
func (s *FollowService) Follow(ctx context.Context, followerID uint, targetUsername string) (*models.User, error) {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, models.NewNotFoundError("User", targetUsername)
	}
	if target.ID == followerID {
		return nil, models.NewSelfFollowError()
	}

	if err := s.followRepo.Insert(ctx, followerID, target.ID); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeAlreadyFollowing {
			return nil, models.NewAlreadyFollowingError(target.Username)
		}
		return nil, err
	}

	return target, nil
}

// Unfollow removes the caller's edge to the named user. Removing an edge
// that does not exist is reported as NotFollowing.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, targetUsername string) error {
	target, err := s.userRepo.GetByUsername(ctx, targetUsername)
	if err != nil {
		return err
	}
	if target == nil {
		return models.NewNotFoundError("User", targetUsername)
	}

	removed, err := s.followRepo.Remove(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if !removed {
		return models.NewNotFollowingError(target.Username)
	}
	return nil
}

// Following returns the users the given user follows, ordered by username.
func (s *FollowService) Following(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.ListFollowing(ctx, userID)
}

// Followers returns the users following the given user, ordered by username.
func (s *FollowService) Followers(ctx context.Context, userID uint) ([]models.User, error) {
	return s.followRepo.ListFollowers(ctx, userID)
}

// IsFollowing reports whether follower currently follows target.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, targetID uint) (bool, error) {
	return s.followRepo.Exists(ctx, followerID, targetID)
}
