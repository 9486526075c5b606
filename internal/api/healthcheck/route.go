package healthcheck

import (
	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/dialogue"

	"github.com/gofiber/fiber/v3"
)

func RegisterRoutes(r fiber.Router, engine *dialogue.Engine) {
	grp := r.Group("/health")

	grp.Get("/api", ApiHealthCheck)
	grp.Get("/catalog", CatalogHealthCheck(engine))
	grp.Get("/session", SessionHealthCheck(engine))
	if config.Cfg.Catalog.Source == config.SourceMySQL {
		grp.Get("/database", DatabaseHealthCheck)
	}
}
