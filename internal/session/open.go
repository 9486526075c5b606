package session

import (
	"context"
	"fmt"
	"time"

	"exam-quiz-skill/config"
	"exam-quiz-skill/pkg/logger"
)

// ClosableStore is a Store holding resources that must be released.
type ClosableStore interface {
	Store
	Close() error
}

// Open builds the store selected by config.Cfg.Session.
func Open(ctx context.Context) (ClosableStore, error) {
	cfg := config.Cfg.Session
	switch cfg.Backend {
	case config.BackendRedis:
		s, err := NewRedisStore(ctx, cfg.RedisURL, cfg.Prefix, cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", config.ModuleSession, err)
		}
		logger.Info("%v: using redis store, ttl %s", config.ModuleSession, cfg.TTL)
		return s, nil
	case config.BackendMemory, "":
		logger.Info("%v: using memory store, ttl %s", config.ModuleSession, cfg.TTL)
		return NewMemoryStore(cfg.TTL, cleanupEvery(cfg.TTL)), nil
	default:
		return nil, fmt.Errorf("%v: unknown backend %q", config.ModuleSession, cfg.Backend)
	}
}

func cleanupEvery(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return time.Hour
	}
	if every := ttl / 10; every > time.Minute {
		return every
	}
	return time.Minute
}
