package server

import (
	"murmur/internal/models"
	"murmur/internal/service"

	"github.com/gofiber/fiber/v2"
)

type postRequest struct {
	Text    string `json:"text"`
	Image   string `json:"image"`
	GroupID *uint  `json:"group_id"`
}

// GetPosts lists posts, oldest first. Optional author_id and group_id
// filters narrow the feed.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)

	var (
		posts []*models.Post
		err   error
	)
	switch {
	case c.QueryInt("author_id") > 0:
		posts, err = s.postRepo.ListByAuthor(c.Context(), uint(c.QueryInt("author_id")), limit, offset)
	case c.QueryInt("group_id") > 0:
		posts, err = s.postRepo.ListByGroup(c.Context(), uint(c.QueryInt("group_id")), limit, offset)
	default:
		posts, err = s.postRepo.List(c.Context(), limit, offset)
	}
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(fiber.Map{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	})
}

// GetPost returns a single post with author, group and comments.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	post, err := s.postRepo.GetByIDWithComments(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	if post == nil {
		notFound := models.NewNotFoundError("Post", id)
		return models.RespondWithError(c, models.StatusForError(notFound), notFound)
	}

	return c.JSON(post)
}

// CreatePost publishes a post authored by the caller.
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), currentUserID(c), service.PostInput{
		Text:    req.Text,
		Image:   req.Image,
		GroupID: req.GroupID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost edits a post. Only the author may edit.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, models.NewValidationError("invalid request body"))
	}

	post, err := s.postService.Update(c.Context(), currentUserID(c), id, service.PostInput{
		Text:    req.Text,
		Image:   req.Image,
		GroupID: req.GroupID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(post)
}

// DeletePost removes a post and its comments. Only the author may delete.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest, err)
	}

	if err := s.postService.Delete(c.Context(), currentUserID(c), id); err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
