package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/api/alice"
	"exam-quiz-skill/internal/api/healthcheck"
	"exam-quiz-skill/internal/catalog"
	"exam-quiz-skill/internal/dialogue"
	"exam-quiz-skill/internal/middleware"
	"exam-quiz-skill/internal/session"
	"exam-quiz-skill/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "config.yaml", "path to the yaml config file")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		logger.Fatal(err, "load config")
	}
	if err := logger.SetLevel(string(config.Cfg.LogLevel)); err != nil {
		logger.Fatal(err, "set log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	quizzes, err := catalog.Open(ctx)
	if err != nil {
		logger.Fatal(err, "%v: cannot load questions", config.ModuleCatalog)
	}

	store, err := session.Open(ctx)
	if err != nil {
		logger.Fatal(err, "%v: cannot open session store", config.ModuleSession)
	}
	defer store.Close()

	engine := dialogue.NewEngine(quizzes, store)

	app := fiber.New(fiber.Config{
		AppName:     config.Cfg.Server.AppName,
		BodyLimit:   config.Cfg.Server.BodyLimit,
		Concurrency: config.Cfg.Server.Concurrency,
	})
	middleware.Apply(app, config.Cfg.Server.Concurrency)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	healthcheck.RegisterRoutes(app, engine)
	alice.RegisterRoutes(app, engine)

	go func() {
		<-ctx.Done()
		logger.Info("%v: shutting down", config.ModuleServer)
		if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			logger.Error(err, "%v: shutdown", config.ModuleServer)
		}
	}()

	addr := fmt.Sprintf(":%d", config.Cfg.Server.Port)
	logger.Info("%v: listening on %s with %d topics", config.ModuleServer, addr, len(quizzes.Topics()))
	if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
		logger.Error(err, "server error")
	}
}
