package alice

import (
	"encoding/json"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/dialogue"
	"exam-quiz-skill/pkg/apperror"
	"exam-quiz-skill/pkg/apperror/status"
	"exam-quiz-skill/pkg/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
)

var validate = validator.New()

const statusMessage = "Навык Алисы работает."

type statusResponse struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	ActiveSessions int      `json:"active_sessions"`
	TopicsLoaded   []string `json:"topics_loaded"`
}

// HandleWebhook answers Alice webhook calls. Every outcome, including
// malformed calls and internal faults, is a 200 with a speakable text.
func HandleWebhook(engine *dialogue.Engine) fiber.Handler {
	return func(c fiber.Ctx) error {
		var req WebhookRequest
		if err := json.Unmarshal(c.Body(), &req); err != nil {
			logRejected(c, status.WebhookInvalidRequestBody, err)
			return c.JSON(failure(dialogue.EmptyRequest()))
		}
		if err := validate.Struct(&req); err != nil {
			logRejected(c, status.WebhookMissingParams, err)
			return c.JSON(failure(dialogue.EmptyRequest()))
		}

		logger.WithFields(map[string]interface{}{
			"module":     config.ModuleWebhook,
			"session_id": req.Session.SessionID,
			"new":        req.Session.New,
			"command":    req.Request.Command,
			"request_id": c.Get(fiber.HeaderXRequestID),
		}).Info("webhook request")

		reply, err := engine.Handle(c.Context(), dialogue.Turn{
			SessionID: req.Session.SessionID,
			New:       req.Session.New,
			Command:   req.Request.Command,
		})
		if err != nil {
			logger.WithFields(map[string]interface{}{
				"module":     config.ModuleWebhook,
				"session_id": req.Session.SessionID,
				"error_code": apperror.Code(status.CodeOf(err, status.WebhookInternal)),
				"error":      err.Error(),
			}).Error("webhook turn failed")
			return c.JSON(failure(reply))
		}

		return c.JSON(WebhookResponse{
			Version:  req.Version,
			Session:  req.Session,
			Response: render(reply),
		})
	}
}

// HandleStatus reports that the skill is up, with its session and topic
// counts.
func HandleStatus(engine *dialogue.Engine) fiber.Handler {
	return func(c fiber.Ctx) error {
		active, err := engine.ActiveSessions(c.Context())
		if err != nil {
			return apperror.Unavailable(config.ModuleWebhook, c, status.New(status.SessionReadFailed, err))
		}
		return c.JSON(statusResponse{
			Status:         "success",
			Message:        statusMessage,
			ActiveSessions: active,
			TopicsLoaded:   engine.Topics(),
		})
	}
}

func logRejected(c fiber.Ctx, code status.ErrorCode, err error) {
	logger.WithFields(map[string]interface{}{
		"module":     config.ModuleWebhook,
		"error_code": apperror.Code(code),
		"error":      err.Error(),
		"ip":         c.IP(),
	}).Warn("webhook request rejected")
}

// failure builds the fixed reply used when the request cannot be echoed.
func failure(r dialogue.Reply) WebhookResponse {
	return WebhookResponse{
		Version:  Version,
		Response: ResponseBody{Text: r.Text},
	}
}

func render(r dialogue.Reply) ResponseBody {
	body := ResponseBody{Text: r.Text}
	for _, title := range r.Buttons {
		body.Buttons = append(body.Buttons, Button{Title: title})
	}
	if r.Card != nil {
		body.Card = &Card{
			Type:        "BigImage",
			ImageID:     r.Card.ImageID,
			Title:       r.Card.Title,
			Description: r.Card.Description,
		}
	}
	return body
}
