package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeToken(t *testing.T) {
	tests := []struct {
		input string
		want  Answer
		ok    bool
	}{
		{"1", "а", true},
		{"2", "б", true},
		{" 6 ", "е", true},
		{"7", "", false},
		{"0", "", false},
		{"А", "а", true},
		{"б)", "б", true},
		{"В.", "в", true},
		{"(г)", "г", true},
		{"д,", "д", true},
		{"ответ", "", false},
		{"", "", false},
		{"   ", "", false},
		{")", "", false},
		{"ё", "", false},
		{"a", "", false}, // latin
		{"12", "", false},
		{"\xff", "", false},
	}

	for _, tc := range tests {
		got, ok := NormalizeToken(tc.input)
		assert.Equal(t, tc.ok, ok, "NormalizeToken(%q) ok", tc.input)
		assert.Equal(t, tc.want, got, "NormalizeToken(%q)", tc.input)
	}
}

func TestNormalizeToken_AlwaysInAlphabet(t *testing.T) {
	inputs := []string{"", "1", "9", "а", "Е)", "жук", "!!!", "(", "\x00", "ёлка", "б б", "😀"}
	for _, in := range inputs {
		a, ok := NormalizeToken(in)
		if !ok {
			assert.Empty(t, a)
			continue
		}
		assert.Contains(t, letters, a, "input %q", in)
	}
}

func TestParseUtterance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Answer
	}{
		{"digits", "1 2", []Answer{"а", "б"}},
		{"duplicates collapse", "1, 2; 1", []Answer{"а", "б"}},
		{"letters with parens", "в) а)", []Answer{"в", "а"}},
		{"mixed digit and letter for same answer", "1 а", []Answer{"а"}},
		{"noise dropped", "ну 3", []Answer{"в"}},
		{"nothing recognized", "не знаю", nil},
		{"empty", "", nil},
		{"dots", "4.5", []Answer{"г", "д"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseUtterance(tc.input))
		})
	}
}

func TestNormalizeCorrectLabels(t *testing.T) {
	assert.Equal(t, []Answer{"а", "б"}, NormalizeCorrectLabels([]string{"А)", "Б)"}))
	assert.Equal(t, []Answer{"в"}, NormalizeCorrectLabels([]string{"В)", " в) ", "(В)"}))
	assert.Nil(t, NormalizeCorrectLabels([]string{"A)", "Ж)", ""}))
	assert.Nil(t, NormalizeCorrectLabels(nil))
}

func TestGrade(t *testing.T) {
	correct := []Answer{"а", "б"}

	tests := []struct {
		name    string
		user    []Answer
		outcome Outcome
		right   []Answer
		wrong   []Answer
		missing []Answer
	}{
		{"exact", []Answer{"б", "а"}, Correct, []Answer{"б", "а"}, nil, nil},
		{"subset", []Answer{"а"}, MissingSome, []Answer{"а"}, nil, []Answer{"б"}},
		{"mixed", []Answer{"а", "в"}, Mixed, []Answer{"а"}, []Answer{"в"}, []Answer{"б"}},
		{"superset", []Answer{"а", "б", "г"}, Mixed, []Answer{"а", "б"}, []Answer{"г"}, nil},
		{"disjoint", []Answer{"г"}, Incorrect, nil, []Answer{"г"}, []Answer{"а", "б"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := Grade(tc.user, correct)
			assert.Equal(t, tc.outcome, v.Outcome)
			assert.Equal(t, tc.right, v.Right)
			assert.Equal(t, tc.wrong, v.Wrong)
			assert.Equal(t, tc.missing, v.Missing)
		})
	}
}

func TestGrade_DigitsAgainstLabels(t *testing.T) {
	v := Grade(ParseUtterance("1 2"), NormalizeCorrectLabels([]string{"А)", "Б)"}))
	assert.Equal(t, Correct, v.Outcome)
}

func TestGrade_EmptyKey(t *testing.T) {
	v := Grade([]Answer{"а"}, nil)
	assert.Equal(t, Incorrect, v.Outcome)
}

func TestJoinLabels(t *testing.T) {
	assert.Equal(t, "А), В)", JoinLabels([]Answer{"а", "в"}))
	assert.Equal(t, "", JoinLabels(nil))
}
