package server

import (
	"strconv"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PublishVideo handles POST /api/videos. Multipart form with title,
// description, duration plus videoFile and thumbnail files.
func (s *Server) PublishVideo(c *fiber.Ctx) error {
	videoFile, closeVideo, err := formFile(c, "videoFile")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	defer closeVideo()
	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	defer closeThumb()

	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)

	video, err := s.videoService.Publish(c.Context(), service.PublishVideoInput{
		OwnerID:     currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Duration:    duration,
		VideoFile:   videoFile,
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}

	return models.Respond(c, fiber.StatusCreated, video, "Video published successfully")
}

// ListVideos handles GET /api/videos with optional query, ownerId, sortBy
// and sortDir parameters.
func (s *Server) ListVideos(c *fiber.Ctx) error {
	ownerID, _ := strconv.ParseUint(c.Query("ownerId"), 10, 32)

	page, err := s.videoService.List(c.Context(), service.ListVideosInput{
		Query:    c.Query("query"),
		OwnerID:  uint(ownerID),
		SortBy:   c.Query("sortBy"),
		SortDesc: c.Query("sortDir", "desc") != "asc",
		Page:     parsePagination(c),
		ViewerID: viewerID(c),
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, page, "Videos fetched successfully")
}

// GetVideo handles GET /api/videos/:id.
func (s *Server) GetVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	item, err := s.videoService.Get(c.Context(), videoID, viewerID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, item, "Video fetched successfully")
}

// UpdateVideo handles PATCH /api/videos/:id. Multipart form with title,
// description and an optional replacement thumbnail.
func (s *Server) UpdateVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	thumbnail, closeThumb, err := formFile(c, "thumbnail")
	if err != nil {
		return models.RespondWithError(c, err)
	}
	defer closeThumb()

	video, err := s.videoService.Update(c.Context(), service.UpdateVideoInput{
		VideoID:     videoID,
		UserID:      currentUserID(c),
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Thumbnail:   thumbnail,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, video, "Video updated successfully")
}

// TogglePublish handles PATCH /api/videos/:id/toggle-publish.
func (s *Server) TogglePublish(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	published, err := s.videoService.TogglePublish(c.Context(), videoID, currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, fiber.Map{"isPublished": published},
		"Publish state toggled successfully")
}

// DeleteVideo handles DELETE /api/videos/:id.
func (s *Server) DeleteVideo(c *fiber.Ctx) error {
	videoID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.videoService.Delete(c.Context(), videoID, currentUserID(c)); err != nil {
		return models.RespondWithError(c, err)
	}
	return models.Respond(c, fiber.StatusOK, nil, "Video deleted successfully")
}
