package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

func (s *Server) toggleLike(c *fiber.Ctx, kind models.TargetKind) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	liked, err := s.engagementService.Toggle(c.Context(),
		models.LikeTarget{Kind: kind, ID: targetID}, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}

	message := "Like removed"
	if liked {
		message = "Like added"
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"isLiked": liked}, message)
}

// ToggleVideoLike handles POST /api/likes/toggle/video/:id.
func (s *Server) ToggleVideoLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.TargetVideo)
}

// ToggleCommentLike handles POST /api/likes/toggle/comment/:id.
func (s *Server) ToggleCommentLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.TargetComment)
}

// ToggleTweetLike handles POST /api/likes/toggle/tweet/:id.
func (s *Server) ToggleTweetLike(c *fiber.Ctx) error {
	return s.toggleLike(c, models.TargetTweet)
}

// GetLikedVideos handles GET /api/likes/videos.
func (s *Server) GetLikedVideos(c *fiber.Ctx) error {
	page, err := s.engagementService.LikedVideos(c.Context(), currentUserID(c), parsePagination(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Liked videos fetched successfully")
}
