package catalog

import (
	"regexp"
	"strings"

	"exam-quiz-skill/internal/quiz"
)

// LabelParser pulls correct-answer labels such as "А)" out of the free text
// of an answer-key cell.
type LabelParser interface {
	Parse(cell string) []string
}

// PatternLabels matches labels with a regular expression.
type PatternLabels struct {
	re *regexp.Regexp
}

// DefaultLabels accepts one capital letter followed by ")"; Cyrillic and
// Latin capitals are both matched, normalization drops the Latin ones.
var DefaultLabels = NewPatternLabels(`[А-ЯЁA-Z]\)`)

func NewPatternLabels(pattern string) PatternLabels {
	return PatternLabels{re: regexp.MustCompile(pattern)}
}

func (p PatternLabels) Parse(cell string) []string {
	return p.re.FindAllString(cell, -1)
}

// ImageResolver maps an image name from the source to the platform image
// id. Unknown names yield false.
type ImageResolver interface {
	Resolve(name string) (string, bool)
}

// StaticImages is a fixed name -> id table.
type StaticImages map[string]string

// DefaultImages holds the ids uploaded to the skill's image storage.
var DefaultImages = StaticImages{
	"1": "997614/f3e84f7cd524f792e0c3",
}

func (m StaticImages) Resolve(name string) (string, bool) {
	id, ok := m[strings.TrimSpace(name)]
	return id, ok && id != ""
}

// Merge returns a table with extra entries layered over m.
func (m StaticImages) Merge(extra map[string]string) StaticImages {
	out := make(StaticImages, len(m)+len(extra))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range extra {
		out[strings.TrimSpace(k)] = v
	}
	return out
}

// Column layout shared by every tabular source.
const (
	colQuestion = iota
	colOptions
	colCorrect
	colExplanation
	colImage
	columnCount
)

// RowParser turns one source row into a question.
type RowParser struct {
	Labels LabelParser
	Images ImageResolver
}

func (p RowParser) labels() LabelParser {
	if p.Labels == nil {
		return DefaultLabels
	}
	return p.Labels
}

func (p RowParser) images() ImageResolver {
	if p.Images == nil {
		return DefaultImages
	}
	return p.Images
}

// Parse returns false for rows without question text.
func (p RowParser) Parse(cells []string) (quiz.Question, bool) {
	row := make([]string, columnCount)
	copy(row, cells)

	text := strings.TrimSpace(row[colQuestion])
	if text == "" {
		return quiz.Question{}, false
	}

	q := quiz.Question{
		Text:          text,
		Options:       SplitOptions(row[colOptions]),
		CorrectLabels: p.labels().Parse(row[colCorrect]),
		Explanation:   strings.TrimSpace(row[colExplanation]),
	}
	if name := strings.TrimSpace(row[colImage]); name != "" {
		if id, ok := p.images().Resolve(name); ok {
			q.ImageID = id
		}
	}
	return q, true
}

// SplitOptions splits a ";"-separated options cell, dropping blanks.
func SplitOptions(cell string) []string {
	var out []string
	for _, opt := range strings.Split(cell, ";") {
		if opt = strings.TrimSpace(opt); opt != "" {
			out = append(out, opt)
		}
	}
	return out
}
