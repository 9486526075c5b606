package session

import (
	"context"
	"errors"

	"exam-quiz-skill/internal/quiz"
)

// ErrNotFound is returned by stores for ids they hold nothing for.
var ErrNotFound = errors.New("session: not found")

type Mode string

const (
	ModeMenu       Mode = "MENU"
	ModeInQuestion Mode = "IN_QUESTION"
)

// State is everything the dialogue needs to remember between turns.
type State struct {
	Mode     Mode           `json:"mode"`
	Topic    string         `json:"topic,omitempty"`
	Question *quiz.Question `json:"question,omitempty"`
	Seen     quiz.TextSet   `json:"seen,omitempty"`
}

// Menu is the empty state of a fresh or reset conversation.
func Menu() State { return State{Mode: ModeMenu} }

// Asking returns the state for a question just shown in topic.
func Asking(topic string, q quiz.Question, seen quiz.TextSet) State {
	return State{
		Mode:     ModeInQuestion,
		Topic:    topic,
		Question: &q,
		Seen:     seen.With(q.Text),
	}
}

// InTopic reports whether a topic is active.
func (s State) InTopic() bool {
	return s.Mode == ModeInQuestion && s.Topic != ""
}

// AwaitingAnswer reports whether the user is expected to answer a question.
func (s State) AwaitingAnswer() bool {
	return s.InTopic() && s.Question != nil
}

// Store keeps session state between requests. Implementations must be safe
// for concurrent use across different ids.
type Store interface {
	Get(ctx context.Context, id string) (State, error)
	Put(ctx context.Context, id string, st State) error
	Clear(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}
