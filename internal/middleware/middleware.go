package middleware

import (
	"runtime/debug"
	"strconv"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/metrics"
	"exam-quiz-skill/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// Apply installs the common middleware chain in order: request id, access
// log, panic recovery, connection limiting. A limit of zero disables the
// limiter.
func Apply(app *fiber.App, limit int) {
	app.Use(requestIDMiddleware())
	app.Use(accessLogMiddleware())
	app.Use(panicRecoveryMiddleware())
	if limit > 0 {
		app.Use(connectionLimiterMiddleware(NewConnectionLimiter(limit)))
	}
}

// ConnectionLimiter limits the number of concurrent connections
type ConnectionLimiter struct {
	limit    int
	waitlist chan struct{}
}

func NewConnectionLimiter(limit int) *ConnectionLimiter {
	return &ConnectionLimiter{
		limit:    limit,
		waitlist: make(chan struct{}, limit),
	}
}

func (cl *ConnectionLimiter) Acquire() bool {
	select {
	case cl.waitlist <- struct{}{}:
		return true
	default:
		return false
	}
}

func (cl *ConnectionLimiter) Release() {
	select {
	case <-cl.waitlist:
	default:
	}
}

// InUse reports how many slots are taken.
func (cl *ConnectionLimiter) InUse() int { return len(cl.waitlist) }

// connectionLimiterMiddleware creates a middleware for connection limiting
func connectionLimiterMiddleware(limiter *ConnectionLimiter) fiber.Handler {
	return func(c fiber.Ctx) error {
		if !limiter.Acquire() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("Server is at maximum capacity")
		}
		defer limiter.Release()
		return c.Next()
	}
}

// requestIDMiddleware keeps the caller's X-Request-ID or assigns a new one.
func requestIDMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if id == "" {
			id = uuid.NewString()
			c.Request().Header.Set(fiber.HeaderXRequestID, id)
		}
		c.Set(fiber.HeaderXRequestID, id)
		return c.Next()
	}
}

// accessLogMiddleware logs every request and records its latency.
func accessLogMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		elapsed := time.Since(start)

		code := c.Response().StatusCode()
		route := c.Route().Path
		metrics.RequestDuration.WithLabelValues(c.Method(), route, strconv.Itoa(code)).Observe(elapsed.Seconds())

		logger.WithFields(map[string]interface{}{
			"module":      config.ModuleServer,
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": code,
			"latency_ms":  elapsed.Milliseconds(),
			"request_id":  c.Get(fiber.HeaderXRequestID),
		}).Debug("request served")
		return err
	}
}

// panicRecoveryMiddleware creates a middleware for panic recovery
func panicRecoveryMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				// Log the panic with stack trace
				stack := debug.Stack()
				logger.WithFields(map[string]interface{}{
					"module":     config.ModuleServer,
					"panic":      r,
					"method":     c.Method(),
					"path":       c.Path(),
					"ip":         c.IP(),
					"user_agent": c.Get("User-Agent"),
					"stack":      string(stack),
				}).Errorf("Panic recovered")

				err := c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"error":   "Internal Server Error",
					"message": "An unexpected error occurred",
				})
				if err != nil {
					logger.WithField("error", err).Errorf("Failed to send error response")
				}
			}
		}()
		return c.Next()
	}
}
