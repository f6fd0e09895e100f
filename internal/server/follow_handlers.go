package server

import (
	"murmur/internal/middleware"
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetFollowing lists the users the caller follows, ordered by username.
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	users, err := s.followService.Following(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"following": users,
		"count":     len(users),
	})
}

// GetFollowers lists the users following the caller, ordered by username.
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	users, err := s.followService.Followers(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"followers": users,
		"count":     len(users),
	})
}

// FollowUser makes the caller follow the named user.
func (s *Server) FollowUser(c *fiber.Ctx) error {
	username := c.Params("username")

	target, err := s.followService.Follow(c.Context(), currentUserID(c), username)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.Logger.InfoContext(c.Context(), "user followed",
		"follower_id", currentUserID(c), "followed_id", target.ID)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"following": target,
	})
}

// UnfollowUser removes the caller's follow of the named user.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	username := c.Params("username")

	if err := s.followService.Unfollow(c.Context(), currentUserID(c), username); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.Logger.InfoContext(c.Context(), "user unfollowed",
		"follower_id", currentUserID(c), "target", username)

	return c.SendStatus(fiber.StatusNoContent)
}
