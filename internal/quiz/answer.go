package quiz

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Alphabet is the ordered set of answer letters; "1" maps to its first
// letter, "6" to its last.
const Alphabet = "абвгде"

// Answer is a single lowercase letter of Alphabet.
type Answer string

var letters = func() []Answer {
	out := make([]Answer, 0, utf8.RuneCountInString(Alphabet))
	for _, r := range Alphabet {
		out = append(out, Answer(string(r)))
	}
	return out
}()

// Label renders the answer the way options are printed: "А)".
func (a Answer) Label() string { return strings.ToUpper(string(a)) + ")" }

// JoinLabels renders answers as "А), Б)".
func JoinLabels(answers []Answer) string {
	parts := make([]string, len(answers))
	for i, a := range answers {
		parts[i] = a.Label()
	}
	return strings.Join(parts, ", ")
}

func letterOf(r rune) (Answer, bool) {
	if r == utf8.RuneError || !strings.ContainsRune(Alphabet, r) {
		return "", false
	}
	return Answer(string(r)), true
}

// NormalizeToken turns one spoken or typed token ("2", "Б)", "в.") into an
// Answer. Anything else yields false.
func NormalizeToken(token string) (Answer, bool) {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) == 1 && t[0] >= '1' && int(t[0]-'1') < len(letters) {
		return letters[t[0]-'1'], true
	}
	t = strings.TrimRightFunc(t, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(").,;:!?", r)
	})
	t = strings.TrimLeft(t, "(")
	r, _ := utf8.DecodeRuneInString(t)
	return letterOf(r)
}

var separators = strings.NewReplacer(".", " ", ",", " ", ";", " ")

// ParseUtterance extracts distinct answers from a command in the order they
// were first said. Unrecognized words are dropped; an empty result means
// nothing could be parsed.
func ParseUtterance(command string) []Answer {
	var out []Answer
	seen := make(map[Answer]bool)
	for _, tok := range strings.Fields(separators.Replace(command)) {
		a, ok := NormalizeToken(tok)
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// NormalizeCorrectLabels maps raw labels like "А)" onto Answers, dropping
// labels outside Alphabet and collapsing duplicates.
func NormalizeCorrectLabels(labels []string) []Answer {
	var out []Answer
	seen := make(map[Answer]bool)
	for _, l := range labels {
		clean := strings.Map(func(r rune) rune {
			if r == '(' || r == ')' || unicode.IsSpace(r) {
				return -1
			}
			return r
		}, l)
		r, _ := utf8.DecodeRuneInString(strings.ToLower(clean))
		a, ok := letterOf(r)
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
	}
	return out
}

// Outcome classifies a graded answer.
type Outcome int

const (
	Correct Outcome = iota
	MissingSome
	Mixed
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case MissingSome:
		return "missing_some"
	case Mixed:
		return "mixed"
	default:
		return "incorrect"
	}
}

// Verdict is the result of comparing a user's answers with the key.
// Right and Wrong follow the user's order, Missing follows the key's.
type Verdict struct {
	Outcome Outcome
	Right   []Answer
	Wrong   []Answer
	Missing []Answer
}

// Grade compares user answers against the normalized correct set.
func Grade(user, correct []Answer) Verdict {
	key := make(map[Answer]bool, len(correct))
	for _, a := range correct {
		key[a] = true
	}
	given := make(map[Answer]bool, len(user))
	var v Verdict
	for _, a := range user {
		given[a] = true
		if key[a] {
			v.Right = append(v.Right, a)
		} else {
			v.Wrong = append(v.Wrong, a)
		}
	}
	for _, a := range correct {
		if !given[a] {
			v.Missing = append(v.Missing, a)
		}
	}

	switch {
	case len(v.Wrong) == 0 && len(v.Right) == len(correct):
		v.Outcome = Correct
	case len(v.Wrong) == 0 && len(v.Right) > 0:
		v.Outcome = MissingSome
	case len(v.Right) > 0 && len(v.Wrong) > 0:
		v.Outcome = Mixed
	default:
		v.Outcome = Incorrect
	}
	return v
}
