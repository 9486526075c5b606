package dialogue

import (
	"strings"
	"unicode/utf8"
)

// Kind tells the transport how a reply should be presented.
type Kind int

const (
	MenuPrompt Kind = iota
	QuestionCard
	QuestionText
	InfoText
	ErrorText
)

func (k Kind) String() string {
	switch k {
	case MenuPrompt:
		return "menu_prompt"
	case QuestionCard:
		return "question_card"
	case QuestionText:
		return "question_text"
	case InfoText:
		return "info_text"
	default:
		return "error_text"
	}
}

// Card is a big-image card shown above the text.
type Card struct {
	ImageID     string
	Title       string
	Description string
}

// Reply is the engine's answer to one utterance.
type Reply struct {
	Kind    Kind
	Text    string
	Buttons []string
	Card    *Card
}

// MaxTextLen is the longest text the assistant accepts, in characters.
const MaxTextLen = 1000

const ellipsis = "..."

// Truncate cuts s to limit runes, ending it with "..." when cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	keep := limit - utf8.RuneCountInString(ellipsis)
	if keep < 0 {
		keep = 0
	}
	r := []rune(s)
	return string(r[:keep]) + ellipsis
}

func (r Reply) limited() Reply {
	r.Text = Truncate(r.Text, MaxTextLen)
	if r.Card != nil {
		c := *r.Card
		c.Description = Truncate(c.Description, MaxTextLen)
		r.Card = &c
	}
	return r
}

// joinBlocks glues non-empty paragraphs with a blank line.
func joinBlocks(blocks ...string) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if b != "" {
			parts = append(parts, b)
		}
	}
	return strings.Join(parts, "\n\n")
}
