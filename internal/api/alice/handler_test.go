package alice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"exam-quiz-skill/internal/dialogue"
	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/internal/session"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testApp(t *testing.T, store session.Store) *fiber.App {
	t.Helper()
	catalog := quiz.NewCatalog([]quiz.Topic{
		{Name: "Связь", Questions: []quiz.Question{
			{Text: "Что такое радио?", Options: []string{"А) Связь", "Б) Еда"}, CorrectLabels: []string{"А)"}},
		}},
		{Name: "Схемы", Questions: []quiz.Question{
			{Text: "1. Узел", Options: []string{"А) Да"}, CorrectLabels: []string{"А)"}, ImageID: "997614/f3e84f7cd524f792e0c3"},
		}},
	}, quiz.WithPicker(func(int) int { return 0 }))

	app := fiber.New()
	RegisterRoutes(app, dialogue.NewEngine(catalog, store))
	return app
}

func memoryStore(t *testing.T) *session.MemoryStore {
	t.Helper()
	s := session.NewMemoryStore(0, time.Minute)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func post(t *testing.T, app *fiber.App, body string) WebhookResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out WebhookResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func call(id string, isNew bool, command string) string {
	b, _ := json.Marshal(map[string]any{
		"version": "1.0",
		"session": map[string]any{"session_id": id, "new": isNew, "message_id": 1},
		"request": map[string]any{"command": command, "original_utterance": command, "type": "SimpleUtterance"},
	})
	return string(b)
}

func titles(buttons []Button) []string {
	out := make([]string, len(buttons))
	for i, b := range buttons {
		out[i] = b.Title
	}
	return out
}

func TestWebhook_NewSession(t *testing.T) {
	app := testApp(t, memoryStore(t))

	out := post(t, app, call("abc", true, ""))

	assert.Equal(t, "1.0", out.Version)
	require.NotNil(t, out.Session)
	assert.Equal(t, "abc", out.Session.SessionID)
	assert.Equal(t, "Привет! Выберите тему для тестирования:", out.Response.Text)
	assert.Equal(t, []string{"Связь", "Схемы"}, titles(out.Response.Buttons))
	assert.False(t, out.Response.EndSession)
}

func TestWebhook_QuestionFlow(t *testing.T) {
	app := testApp(t, memoryStore(t))
	post(t, app, call("abc", true, ""))

	out := post(t, app, call("abc", false, "Связь"))
	assert.Contains(t, out.Response.Text, "Что такое радио?")
	assert.Equal(t, []string{"Пропустить", "Назад в меню"}, titles(out.Response.Buttons))
	assert.Nil(t, out.Response.Card)

	out = post(t, app, call("abc", false, "1"))
	assert.True(t, strings.HasPrefix(out.Response.Text, "Верно!"), out.Response.Text)
	assert.Equal(t, []string{"Связь", "Схемы"}, titles(out.Response.Buttons))
}

func TestWebhook_Card(t *testing.T) {
	app := testApp(t, memoryStore(t))

	out := post(t, app, call("abc", false, "схемы"))

	require.NotNil(t, out.Response.Card)
	assert.Equal(t, "BigImage", out.Response.Card.Type)
	assert.Equal(t, "997614/f3e84f7cd524f792e0c3", out.Response.Card.ImageID)
	assert.Equal(t, "Тема: Схемы", out.Response.Card.Title)
}

func TestWebhook_MalformedRequests(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"not json":   "{oops",
		"no session": `{"version":"1.0","request":{"command":"привет"}}`,
		"no id":      `{"version":"1.0","session":{"new":true},"request":{"command":"привет"}}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			store := memoryStore(t)
			app := testApp(t, store)

			out := post(t, app, body)

			assert.Equal(t, Version, out.Version)
			assert.Nil(t, out.Session)
			assert.Equal(t, "Пустой запрос", out.Response.Text)
			n, err := store.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

type downStore struct{ session.Store }

func (downStore) Get(context.Context, string) (session.State, error) {
	return session.State{}, errors.New("connection refused")
}

func (downStore) Count(context.Context) (int, error) {
	return 0, errors.New("connection refused")
}

func TestWebhook_StoreFailureApologizes(t *testing.T) {
	app := testApp(t, downStore{})

	out := post(t, app, call("abc", false, "связь"))

	assert.Equal(t, Version, out.Version)
	assert.Equal(t, "Произошла ошибка. Пожалуйста, попробуйте еще раз.", out.Response.Text)
	assert.Empty(t, out.Response.Buttons)
}

func TestStatus(t *testing.T) {
	store := memoryStore(t)
	app := testApp(t, store)
	post(t, app, call("a", true, ""))
	post(t, app, call("b", true, ""))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out statusResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Навык Алисы работает.", out.Message)
	assert.Equal(t, 2, out.ActiveSessions)
	assert.Equal(t, []string{"Связь", "Схемы"}, out.TopicsLoaded)
}

func TestStatus_StoreDown(t *testing.T) {
	app := testApp(t, downStore{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "QZ-3000")
}
