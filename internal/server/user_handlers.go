package server

import (
	"clipstream/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMe handles GET /api/users/me.
func (s *Server) GetMe(c *fiber.Ctx) error {
	user, err := s.userService.Me(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Current user fetched successfully")
}

// UpdateAvatar handles PATCH /api/users/avatar. Multipart with an
// "avatar" file.
func (s *Server) UpdateAvatar(c *fiber.Ctx) error {
	avatar, closeAvatar, err := formFile(c, "avatar")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	defer closeAvatar()

	user, err := s.userService.UpdateAvatar(c.Context(), currentUserID(c), avatar)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, user, "Avatar updated successfully")
}

// GetWatchHistory handles GET /api/users/history.
func (s *Server) GetWatchHistory(c *fiber.Ctx) error {
	page, err := s.userService.WatchHistory(c.Context(), currentUserID(c), parsePagination(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Watch history fetched successfully")
}

// GetChannelProfile handles GET /api/channels/:username.
func (s *Server) GetChannelProfile(c *fiber.Ctx) error {
	profile, err := s.userService.ChannelProfile(c.Context(), c.Params("username"), viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, profile, "Channel profile fetched successfully")
}
