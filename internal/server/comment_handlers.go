package server

import (
	"murmur/internal/models"

	"github.com/gofiber/fiber/v2"
)

type commentRequest struct {
	Text string `json:"text"`
}

// GetComments lists a post's comments, oldest first.
func (s *Server) GetComments(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post, err := s.postRepo.GetByID(c.Context(), postID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if post == nil {
		notFound := models.NewNotFoundError("Post", postID)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	limit, offset := parsePagination(c)
	comments, err := s.commentRepo.ListByPost(c.Context(), postID, limit, offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"comments": comments,
		"limit":    limit,
		"offset":   offset,
	})
}

// GetComment returns a single comment under a post.
func (s *Server) GetComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	comment, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if comment == nil || comment.PostID != postID {
		notFound := models.NewNotFoundError("Comment", commentID)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	return c.JSON(comment)
}

// CreateComment adds a comment to a post, authored by the caller.
func (s *Server) CreateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	comment, err := s.commentService.Create(c.Context(), currentUserID(c), postID, req.Text)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

// UpdateComment edits a comment's text. Only the author may edit.
func (s *Server) UpdateComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var req commentRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	existing, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if existing == nil || existing.PostID != postID {
		notFound := models.NewNotFoundError("Comment", commentID)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	comment, err := s.commentService.Update(c.Context(), currentUserID(c), commentID, req.Text)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(comment)
}

// DeleteComment removes a comment. Only the author may delete.
func (s *Server) DeleteComment(c *fiber.Ctx) error {
	postID, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}
	commentID, err := parseID(c, "commentId")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	existing, err := s.commentRepo.GetByID(c.Context(), commentID)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if existing == nil || existing.PostID != postID {
		notFound := models.NewNotFoundError("Comment", commentID)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	if err := s.commentService.Delete(c.Context(), currentUserID(c), commentID); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
