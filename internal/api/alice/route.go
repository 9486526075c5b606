package alice

import (
	"exam-quiz-skill/internal/dialogue"

	"github.com/gofiber/fiber/v3"
)

// RegisterRoutes mounts the webhook and the status page at the router root.
func RegisterRoutes(r fiber.Router, engine *dialogue.Engine) {
	r.Post("/", HandleWebhook(engine))
	r.Get("/", HandleStatus(engine))
}
