package server

import (
	"strings"

	"murmur/internal/middleware"
	"murmur/internal/models"
	"murmur/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// GetUserProfile returns a user's public profile with their recent posts.
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	username := c.Params("username")

	user, err := s.userRepo.GetByUsername(c.Context(), username)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if user == nil {
		notFound := models.NewNotFoundError("User", username)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	limit, offset := parsePagination(c)
	posts, err := s.postRepo.ListByAuthor(c.Context(), user.ID, limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	followers, err := s.followRepo.ListFollowers(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	following, err := s.followRepo.ListFollowing(c.Context(), user.ID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"user":            user,
		"posts":           posts,
		"follower_count":  len(followers),
		"following_count": len(following),
	})
}

type updateAccountRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateAccount changes the caller's email and/or password.
func (s *Server) UpdateAccount(c *fiber.Ctx) error {
	var req updateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	user, err := s.userRepo.GetByID(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if user == nil {
		notFound := models.NewNotFoundError("User", currentUserID(c))
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	if req.Email != "" {
		req.Email = strings.TrimSpace(strings.ToLower(req.Email))
		if err := validation.ValidateEmail(req.Email); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
		}
		user.Email = req.Email
	}
	if req.Password != "" {
		if err := validation.ValidatePassword(req.Password); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError(err.Error()))
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		}
		user.Password = string(hashed)
	}

	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(user)
}

// DeleteAccount removes the caller's account together with their posts,
// comments, comments on their posts and follow edges in both directions.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if user == nil {
		notFound := models.NewNotFoundError("User", userID)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	if err := s.userRepo.Delete(c.Context(), userID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	middleware.Logger.InfoContext(c.Context(), "account deleted", "user_id", userID)

	return c.SendStatus(fiber.StatusNoContent)
}
