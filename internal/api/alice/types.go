package alice

// Version is the protocol version used for replies that cannot echo the
// request's own.
const Version = "1.0"

// WebhookRequest is the part of an Alice webhook call the skill reads.
type WebhookRequest struct {
	Version string         `json:"version" validate:"required"`
	Session *SessionInfo   `json:"session" validate:"required"`
	Request *UtteranceInfo `json:"request" validate:"required"`
}

type SessionInfo struct {
	SessionID string `json:"session_id" validate:"required"`
	MessageID int64  `json:"message_id"`
	UserID    string `json:"user_id,omitempty"`
	New       bool   `json:"new"`
}

type UtteranceInfo struct {
	Command           string `json:"command"`
	OriginalUtterance string `json:"original_utterance"`
	Type              string `json:"type"`
}

type Button struct {
	Title string `json:"title"`
	Hide  bool   `json:"hide,omitempty"`
}

type Card struct {
	Type        string `json:"type"`
	ImageID     string `json:"image_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

type ResponseBody struct {
	Text       string   `json:"text"`
	EndSession bool     `json:"end_session"`
	Buttons    []Button `json:"buttons,omitempty"`
	Card       *Card    `json:"card,omitempty"`
}

// WebhookResponse is sent back for every call, including failures.
type WebhookResponse struct {
	Version      string       `json:"version"`
	Session      *SessionInfo `json:"session,omitempty"`
	Response     ResponseBody `json:"response"`
	SessionState struct{}     `json:"session_state"`
}
