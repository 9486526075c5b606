package apperror

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"exam-quiz-skill/config"
	"exam-quiz-skill/pkg/apperror/status"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	base := errors.New("boom")
	coded := status.New(status.CatalogReadFailed, base)

	assert.Equal(t, status.CatalogReadFailed, status.CodeOf(coded, status.WebhookInternal))
	assert.Equal(t, status.CatalogReadFailed, status.CodeOf(fmt.Errorf("load: %w", coded), status.WebhookInternal))
	assert.Equal(t, status.WebhookInternal, status.CodeOf(base, status.WebhookInternal))
	assert.ErrorIs(t, coded, base)
	assert.NoError(t, status.New(status.CatalogEmpty, nil))
}

func TestErrorResponses(t *testing.T) {
	app := fiber.New()
	app.Get("/internal", func(c fiber.Ctx) error {
		return InternalError(config.ModuleServer, c, errors.New("plain"))
	})
	app.Get("/unavailable", func(c fiber.Ctx) error {
		return Unavailable(config.ModuleSession, c, status.New(status.SessionReadFailed, errors.New("down")))
	})

	cases := []struct {
		path string
		code int
		body string
	}{
		{path: "/internal", code: http.StatusInternalServerError, body: `{"error":"plain","error_code":"QZ-1000"}`},
		{path: "/unavailable", code: http.StatusServiceUnavailable, body: `{"error":"down","error_code":"QZ-3000"}`},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, tc.path, nil))
		require.NoError(t, err)
		b, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, tc.code, resp.StatusCode, tc.path)
		assert.JSONEq(t, tc.body, string(b), tc.path)
	}
}
