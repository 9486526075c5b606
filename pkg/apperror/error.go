package apperror

import (
	"fmt"

	"exam-quiz-skill/config"
	"exam-quiz-skill/pkg/apperror/status"
	"exam-quiz-skill/pkg/logger"

	"github.com/gofiber/fiber/v3"
)

// ErrorResponse is the standardized HTTP error payload
type ErrorResponse struct {
	Error     string `json:"error"`
	ErrorCode string `json:"error_code"`
}

// Code renders an ErrorCode the way clients see it.
func Code(code status.ErrorCode) string {
	return fmt.Sprintf("QZ-%d", code)
}

// WriteError logs a structured warning and returns a standardized JSON error
func WriteError(module config.Module, c fiber.Ctx, httpStatus int, code string, message string) error {
	logger.WithFields(map[string]interface{}{
		"module":        module,
		"status_code":   httpStatus,
		"error_code":    code,
		"error_message": message,
		"http_method":   c.Method(),
		"path":          c.Path(),
		"ip":            c.IP(),
	}).Warnf("http error")

	return c.Status(httpStatus).JSON(ErrorResponse{
		Error:     message,
		ErrorCode: code,
	})
}

// InternalError writes a structured warning and returns a standardized JSON error
func InternalError(module config.Module, c fiber.Ctx, err error) error {
	code := status.CodeOf(err, status.WebhookInternal)
	return WriteError(module, c, fiber.StatusInternalServerError, Code(code), err.Error())
}

// Unavailable reports a dependency that is not ready yet.
func Unavailable(module config.Module, c fiber.Ctx, err error) error {
	code := status.CodeOf(err, status.WebhookInternal)
	return WriteError(module, c, fiber.StatusServiceUnavailable, Code(code), err.Error())
}
