// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"

	"murmur/internal/models"

	"gorm.io/gorm"
)

// FollowRepository maintains the directed follow edge set. Both read
// projections select from the same table on opposite columns, so the two
// directions can never drift apart.
type FollowRepository interface {
	Insert(ctx context.Context, followerID, followedID uint) error
	Remove(ctx context.Context, followerID, followedID uint) (bool, error)
	Exists(ctx context.Context, followerID, followedID uint) (bool, error)
	ListFollowing(ctx context.Context, userID uint) ([]models.User, error)
	ListFollowers(ctx context.Context, userID uint) ([]models.User, error)
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository returns a new FollowRepository implementation.
func NewFollowRepository(db *gorm.DB) FollowRepository {
	return &followRepository{db: db}
}

// Insert adds the (follower, followed) edge. The existence check and the
// write share a transaction; two concurrent inserts of the same pair cannot
// both pass the check and commit, because the losing writer hits the
// composite unique index and is reported the same way as a pre-existing edge.
func (r *followRepository) Insert(ctx context.Context, followerID, followedID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Follow{}).
			Where("follower_id = ? AND followed_id = ?", followerID, followedID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return gorm.ErrDuplicatedKey
		}
		return tx.Create(&models.Follow{
			FollowerID: followerID,
			FollowedID: followedID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueConstraintError(err) {
			return models.NewAlreadyFollowingError("this user")
		}
		return wrapWriteError(err, "follow", "edge")
	}
	return nil
}

// Remove deletes the edge if present and reports whether anything was
// removed; deciding whether "nothing to do" is an error belongs to the
// caller.
func (r *followRepository) Remove(ctx context.Context, followerID, followedID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{})
	if result.Error != nil {
		return false, wrapWriteError(result.Error, "follow", "edge")
	}
	return result.RowsAffected > 0, nil
}

func (r *followRepository) Exists(ctx context.Context, followerID, followedID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Follow{}).
		Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Count(&count).Error
	if err != nil {
		return false, wrapReadError(err)
	}
	return count > 0, nil
}

// ListFollowing returns the users the given user follows: project the edge
// set on followed_id.
func (r *followRepository) ListFollowing(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return users, nil
}

// ListFollowers returns the users following the given user: same edge set,
// projected on follower_id.
func (r *followRepository) ListFollowers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Order("users.username ASC").
		Find(&users).Error
	if err != nil {
		return nil, wrapReadError(err)
	}
	return users, nil
}
