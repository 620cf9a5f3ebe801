package server

import (
	"errors"
	"strings"
	"unicode"

	"clipstream/internal/models"
	"clipstream/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parsePagination extracts the page and limit query parameters. Values are
// normalized later by PageRequest.Normalize, so out-of-range input is fine.
func parsePagination(c *fiber.Ctx) models.PageRequest {
	return models.PageRequest{
		Page:  c.QueryInt("page", models.DefaultPage),
		Limit: c.QueryInt("limit", models.DefaultPageSize),
	}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewBadRequestError("Invalid "+humanizeParam(param)))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// humanizeParam converts a route param name into a human-readable label.
// Examples: "id" -> "ID", "userId" -> "user ID".
func humanizeParam(param string) string {
	if param == "id" {
		return "ID"
	}
	if strings.HasSuffix(param, "Id") {
		prefix := param[:len(param)-2]
		return strings.ToLower(strings.Join(splitCamel(prefix), " ")) + " ID"
	}
	return param
}

// splitCamel splits a camelCase string into words.
func splitCamel(s string) []string {
	var words []string
	start := 0
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			words = append(words, s[start:i])
			start = i
		}
	}
	words = append(words, s[start:])
	return words
}

// currentUserID returns the authenticated user id set by RequireAuth.
func currentUserID(c *fiber.Ctx) uint {
	if uid, ok := c.Locals("userID").(uint); ok {
		return uid
	}
	return 0
}

// viewerID returns the viewer's user id, zero for anonymous requests.
func viewerID(c *fiber.Ctx) uint {
	return currentUserID(c)
}

// formFile pulls a named multipart file into a service.FileUpload. The
// returned closer releases the underlying file; it is safe to call when the
// part is absent (upload == nil).
func formFile(c *fiber.Ctx, name string) (*service.FileUpload, func(), error) {
	header, err := c.FormFile(name)
	if err != nil {
		return nil, func() {}, nil
	}
	f, err := header.Open()
	if err != nil {
		return nil, func() {}, models.NewBadRequestError("Could not read uploaded file " + name)
	}
	return &service.FileUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Reader:      f,
	}, func() { _ = f.Close() }, nil
}
