package models

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// APIResponse is the success envelope every handler renders.
type APIResponse struct {
	StatusCode int       `json:"statusCode"`
	Data       any       `json:"data"`
	Message    string    `json:"message"`
	Success    bool      `json:"success"`
	Timestamp  time.Time `json:"timestamp"`
}

// APIErrorResponse is the failure envelope rendered by RespondWithError.
type APIErrorResponse struct {
	Success   bool      `json:"success"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Data      any       `json:"data"`
	Errors    []string  `json:"errors"`
	Timestamp time.Time `json:"timestamp"`
}

// Respond writes the standard success envelope with the given status code.
func Respond(c *fiber.Ctx, status int, data any, message string) error {
	return c.Status(status).JSON(APIResponse{
		StatusCode: status,
		Data:       data,
		Message:    message,
		Success:    true,
		Timestamp:  time.Now().UTC(),
	})
}

// RespondWithError classifies err and writes the standard failure envelope.
// 4xx failures render as "fail", everything else as "error".
func RespondWithError(c *fiber.Ctx, err error) error {
	appErr := AsAppError(err)
	status := appErr.StatusCode()

	label := "error"
	if status >= 400 && status < 500 {
		label = "fail"
	}

	var details []string
	if appErr.Err != nil && appErr.Kind != KindInternal {
		details = append(details, appErr.Err.Error())
	}

	return c.Status(status).JSON(APIErrorResponse{
		Success:   false,
		Status:    label,
		Message:   appErr.Message,
		Data:      nil,
		Errors:    details,
		Timestamp: time.Now().UTC(),
	})
}
