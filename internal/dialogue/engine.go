package dialogue

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"sync"

	"exam-quiz-skill/config"
	"exam-quiz-skill/internal/metrics"
	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/internal/session"
	"exam-quiz-skill/pkg/apperror/status"
	"exam-quiz-skill/pkg/logger"
)

// Turn is one user utterance as delivered by the transport.
type Turn struct {
	SessionID string
	New       bool
	Command   string
}

// Engine runs the quiz dialogue. It is safe for concurrent use; turns of the
// same session are serialized.
type Engine struct {
	catalog *quiz.Catalog
	store   session.Store
	rules   []rule
	locks   keyedMutex
}

func NewEngine(catalog *quiz.Catalog, store session.Store) *Engine {
	return &Engine{
		catalog: catalog,
		store:   store,
		rules:   defaultRules(),
	}
}

// Topics lists the catalog's topics in display order.
func (e *Engine) Topics() []string { return e.catalog.Topics() }

// ActiveSessions counts sessions currently held by the store.
func (e *Engine) ActiveSessions(ctx context.Context) (int, error) {
	return e.store.Count(ctx)
}

func normalizeCommand(command string) string {
	return strings.ToLower(strings.TrimSpace(command))
}

// Handle answers one turn. On failure it returns the apology reply together
// with the error so the caller can log it; the reply is always usable.
func (e *Engine) Handle(ctx context.Context, t Turn) (reply Reply, err error) {
	unlock := e.locks.lock(t.SessionID)
	defer unlock()

	defer func() {
		if r := recover(); r != nil {
			err = status.New(status.WebhookPanicRecovered, fmt.Errorf("panic: %v\n%s", r, debug.Stack()))
		}
		if err != nil {
			code := status.CodeOf(err, status.WebhookInternal)
			metrics.Failures.WithLabelValues(fmt.Sprint(int(code))).Inc()
			reply = Apology()
		}
	}()

	st := session.Menu()
	if !t.New {
		got, gerr := e.store.Get(ctx, t.SessionID)
		switch {
		case gerr == nil:
			st = got
		case errors.Is(gerr, session.ErrNotFound):
		default:
			return Reply{}, status.New(status.SessionReadFailed, gerr)
		}
	}

	in := input{command: normalizeCommand(t.Command), state: st, isNew: t.New}
	r := e.classify(in)

	logger.WithFields(map[string]interface{}{
		"module":     config.ModuleDialogue,
		"session_id": t.SessionID,
		"intent":     r.name,
		"mode":       st.Mode,
		"topic":      st.Topic,
	}).Debug("intent matched")
	metrics.Intents.WithLabelValues(r.name).Inc()

	out, err := r.handle(e, in)
	if err != nil {
		return Reply{}, fmt.Errorf("%s: %w", r.name, err)
	}
	if out.save {
		if err := e.store.Put(ctx, t.SessionID, out.next); err != nil {
			return Reply{}, status.New(status.SessionWriteFailed, err)
		}
	}
	return out.reply.limited(), nil
}

// classify returns the first rule matching in.
func (e *Engine) classify(in input) rule {
	for _, r := range e.rules {
		if r.match(e, in) {
			return r
		}
	}
	// unreachable while the last rule always matches
	return e.rules[len(e.rules)-1]
}

func (e *Engine) observeVerdict(topic string, v quiz.Verdict) {
	metrics.Verdicts.WithLabelValues(topic, v.Outcome.String()).Inc()
	logger.WithFields(map[string]interface{}{
		"module":  config.ModuleDialogue,
		"topic":   topic,
		"outcome": v.Outcome.String(),
		"right":   v.Right,
		"wrong":   v.Wrong,
	}).Debug("answer graded")
}

// keyedMutex hands out one mutex per key and forgets it once nobody holds
// or waits on it.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*refMutex)
	}
	m, ok := k.locks[key]
	if !ok {
		m = &refMutex{}
		k.locks[key] = m
	}
	m.refs++
	k.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		k.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}
