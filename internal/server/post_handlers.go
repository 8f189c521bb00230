package server

import (
	"ripple/internal/models"
	"ripple/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Text     string `json:"text"`
		ImageURL string `json:"image_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.CreatePost(c.Context(), service.CreatePostInput{
		UserID:   callerID(c),
		Text:     req.Text,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// GetPosts handles GET /api/posts. Public: no token required.
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.feedService.ListFeed(c.Context())
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:id. Public: no token required.
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, ok := s.parseID(c)
	if !ok {
		return nil
	}

	post, err := s.feedService.GetPost(c.Context(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// UpdatePost handles PUT /api/posts/:id. Owner-only.
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, ok := s.parseID(c)
	if !ok {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.EditPost(c.Context(), service.EditPostInput{
		UserID: callerID(c),
		PostID: id,
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id. Owner-only; removes the post's
// comments and likes with it.
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, ok := s.parseID(c)
	if !ok {
		return nil
	}

	if err := s.feedService.DeletePost(c.Context(), callerID(c), id); err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

// ToggleLike handles PUT /api/posts/:id/like. Liking an already-liked post
// unlikes it.
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	id, ok := s.parseID(c)
	if !ok {
		return nil
	}

	post, err := s.feedService.ToggleLike(c.Context(), callerID(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.JSON(post)
}

// AddComment handles POST /api/posts/:id/comments
func (s *Server) AddComment(c *fiber.Ctx) error {
	id, ok := s.parseID(c)
	if !ok {
		return nil
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.feedService.AddComment(c.Context(), service.AddCommentInput{
		UserID: callerID(c),
		PostID: id,
		Text:   req.Text,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}
