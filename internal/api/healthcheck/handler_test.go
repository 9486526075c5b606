package healthcheck

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"exam-quiz-skill/internal/dialogue"
	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{ session.Store }

func (failingStore) Count(context.Context) (int, error) { return 0, errors.New("redis: down") }

func probe(t *testing.T, app *fiber.App, path string) (int, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestProbes(t *testing.T) {
	store := session.NewMemoryStore(0, time.Minute)
	t.Cleanup(func() { _ = store.Close() })
	catalog := quiz.NewCatalog([]quiz.Topic{{Name: "Связь", Questions: []quiz.Question{{Text: "q"}}}})

	app := fiber.New()
	RegisterRoutes(app, dialogue.NewEngine(catalog, store))

	for _, path := range []string{"/health/api", "/health/catalog", "/health/session"} {
		code, body := probe(t, app, path)
		assert.Equal(t, http.StatusOK, code, path)
		assert.Equal(t, "ok", body, path)
	}
}

func TestProbes_Failing(t *testing.T) {
	app := fiber.New()
	RegisterRoutes(app, dialogue.NewEngine(quiz.NewCatalog(nil), failingStore{}))

	code, body := probe(t, app, "/health/catalog")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "QZ-2002")

	code, body = probe(t, app, "/health/session")
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Contains(t, body, "QZ-3000")
}
