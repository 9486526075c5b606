package healthcheck

import (
	"context"
	"errors"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/database"
	"exam-quiz-skill/internal/dialogue"
	"exam-quiz-skill/pkg/apperror"
	"exam-quiz-skill/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
)

const probeTimeout = 2 * time.Second

func ApiHealthCheck(c fiber.Ctx) error {
	return c.SendString("ok")
}

// CatalogHealthCheck fails while no topic is loaded.
func CatalogHealthCheck(engine *dialogue.Engine) fiber.Handler {
	return func(c fiber.Ctx) error {
		if len(engine.Topics()) == 0 {
			return apperror.Unavailable(config.ModuleCatalog, c, status.New(status.CatalogEmpty, errors.New("no topics loaded")))
		}
		return c.SendString("ok")
	}
}

// SessionHealthCheck round-trips the session store.
func SessionHealthCheck(engine *dialogue.Engine) fiber.Handler {
	return func(c fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.Context(), probeTimeout)
		defer cancel()
		if _, err := engine.ActiveSessions(ctx); err != nil {
			return apperror.Unavailable(config.ModuleSession, c, status.New(status.SessionReadFailed, err))
		}
		return c.SendString("ok")
	}
}

func DatabaseHealthCheck(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), probeTimeout)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		return apperror.InternalError(config.ModuleDatabase, c, err)
	}
	return c.SendString("ok")
}
