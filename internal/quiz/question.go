package quiz

import (
	"errors"
	"math/rand/v2"
	"strings"
)

var (
	// ErrTopicExhausted means every question of the topic was already shown
	// in the session.
	ErrTopicExhausted = errors.New("quiz: no unseen questions left in topic")
	// ErrUnknownTopic is returned for topics the catalog does not hold.
	ErrUnknownTopic = errors.New("quiz: unknown topic")
	// ErrEmptyTopic is returned when a topic exists but has no questions.
	ErrEmptyTopic = errors.New("quiz: topic has no questions")
)

// Question is one multiple-choice item. It is never modified after the
// catalog is built; Text identifies it within its topic.
type Question struct {
	Text          string   `json:"text"`
	Options       []string `json:"options,omitempty"`
	CorrectLabels []string `json:"correct_labels,omitempty"`
	Explanation   string   `json:"explanation,omitempty"`
	ImageID       string   `json:"image_id,omitempty"`
}

// HasImage reports whether the question should be shown as an image card.
func (q Question) HasImage() bool { return q.ImageID != "" }

// OptionsText joins the options one per line.
func (q Question) OptionsText() string { return strings.Join(q.Options, "\n") }

// Topic is a named, ordered question set as it comes out of a source.
type Topic struct {
	Name      string
	Questions []Question
}

// TextSet holds question texts already shown in a session.
type TextSet map[string]bool

func NewTextSet(texts ...string) TextSet {
	s := make(TextSet, len(texts))
	for _, t := range texts {
		s[t] = true
	}
	return s
}

func (s TextSet) Has(text string) bool { return s[text] }

// With returns a copy of s that also contains text.
func (s TextSet) With(text string) TextSet {
	out := make(TextSet, len(s)+1)
	for k := range s {
		out[k] = true
	}
	out[text] = true
	return out
}

// Catalog maps topic names to their questions. It is read-only once built
// and safe for concurrent use.
type Catalog struct {
	order     []string
	questions map[string][]Question
	byFold    map[string]string
	intn      func(n int) int
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithPicker replaces the uniform random index picker; intn must return a
// value in [0, n).
func WithPicker(intn func(n int) int) Option {
	return func(c *Catalog) { c.intn = intn }
}

// NewCatalog builds a catalog preserving topic order. A later topic with the
// same name replaces the earlier one's questions but keeps its position.
func NewCatalog(topics []Topic, opts ...Option) *Catalog {
	c := &Catalog{
		questions: make(map[string][]Question, len(topics)),
		byFold:    make(map[string]string, len(topics)),
		intn:      rand.IntN,
	}
	for _, t := range topics {
		if _, dup := c.questions[t.Name]; !dup {
			c.order = append(c.order, t.Name)
		}
		qs := make([]Question, len(t.Questions))
		copy(qs, t.Questions)
		c.questions[t.Name] = qs
		c.byFold[strings.ToLower(strings.TrimSpace(t.Name))] = t.Name
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Topics returns topic names in source order.
func (c *Catalog) Topics() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Questions returns the questions of topic, or nil for unknown topics.
func (c *Catalog) Questions(topic string) []Question {
	return c.questions[topic]
}

// Size is the total number of questions across topics.
func (c *Catalog) Size() int {
	n := 0
	for _, qs := range c.questions {
		n += len(qs)
	}
	return n
}

// Lookup resolves an utterance to a topic name, ignoring case and
// surrounding whitespace.
func (c *Catalog) Lookup(utterance string) (string, bool) {
	name, ok := c.byFold[strings.ToLower(strings.TrimSpace(utterance))]
	return name, ok
}

// Select picks a random question of topic whose text is not in exclude.
// When every question is excluded it picks from the whole topic, so it only
// fails for unknown or empty topics.
func (c *Catalog) Select(topic string, exclude TextSet) (Question, error) {
	all, ok := c.questions[topic]
	if !ok {
		return Question{}, ErrUnknownTopic
	}
	if len(all) == 0 {
		return Question{}, ErrEmptyTopic
	}
	candidates := unseen(all, exclude)
	if len(candidates) == 0 {
		candidates = all
	}
	return candidates[c.intn(len(candidates))], nil
}

// NextUnseen picks a random question of topic not in seen and returns
// ErrTopicExhausted when there is none.
func (c *Catalog) NextUnseen(topic string, seen TextSet) (Question, error) {
	all, ok := c.questions[topic]
	if !ok {
		return Question{}, ErrUnknownTopic
	}
	candidates := unseen(all, seen)
	if len(candidates) == 0 {
		return Question{}, ErrTopicExhausted
	}
	return candidates[c.intn(len(candidates))], nil
}

func unseen(all []Question, seen TextSet) []Question {
	if len(seen) == 0 {
		return all
	}
	out := make([]Question, 0, len(all))
	for _, q := range all {
		if !seen.Has(q.Text) {
			out = append(out, q)
		}
	}
	return out
}
