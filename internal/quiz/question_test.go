package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleCatalog(opts ...Option) *Catalog {
	return NewCatalog([]Topic{
		{Name: "Оружие", Questions: []Question{
			{Text: "q1", CorrectLabels: []string{"А)"}},
			{Text: "q2", CorrectLabels: []string{"Б)"}},
			{Text: "q3", CorrectLabels: []string{"В)"}},
		}},
		{Name: "Пусто"},
	}, opts...)
}

func TestCatalog_TopicsKeepOrder(t *testing.T) {
	c := sampleCatalog()
	assert.Equal(t, []string{"Оружие", "Пусто"}, c.Topics())
	assert.Equal(t, 3, c.Size())
}

func TestCatalog_Lookup(t *testing.T) {
	c := sampleCatalog()

	name, ok := c.Lookup("  оружие ")
	require.True(t, ok)
	assert.Equal(t, "Оружие", name)

	_, ok = c.Lookup("оруж")
	assert.False(t, ok)
}

func TestCatalog_SelectExcludes(t *testing.T) {
	c := sampleCatalog()
	exclude := NewTextSet("q1", "q3")
	for i := 0; i < 50; i++ {
		q, err := c.Select("Оружие", exclude)
		require.NoError(t, err)
		assert.Equal(t, "q2", q.Text)
	}
}

func TestCatalog_SelectCyclesWhenAllExcluded(t *testing.T) {
	c := sampleCatalog()
	q, err := c.Select("Оружие", NewTextSet("q1", "q2", "q3"))
	require.NoError(t, err)
	assert.Contains(t, []string{"q1", "q2", "q3"}, q.Text)
}

func TestCatalog_SelectEmptyAndUnknown(t *testing.T) {
	c := sampleCatalog()

	_, err := c.Select("Пусто", nil)
	assert.ErrorIs(t, err, ErrEmptyTopic)

	_, err = c.Select("нет такой", nil)
	assert.ErrorIs(t, err, ErrUnknownTopic)
}

func TestCatalog_NextUnseen(t *testing.T) {
	c := sampleCatalog(WithPicker(func(n int) int { return n - 1 }))

	q, err := c.NextUnseen("Оружие", NewTextSet("q3"))
	require.NoError(t, err)
	assert.Equal(t, "q2", q.Text)

	_, err = c.NextUnseen("Оружие", NewTextSet("q1", "q2", "q3"))
	assert.ErrorIs(t, err, ErrTopicExhausted)

	_, err = c.NextUnseen("Пусто", nil)
	assert.ErrorIs(t, err, ErrTopicExhausted)
}

func TestTextSet_WithCopies(t *testing.T) {
	a := NewTextSet("x")
	b := a.With("y")
	assert.False(t, a.Has("y"))
	assert.True(t, b.Has("x"))
	assert.True(t, b.Has("y"))

	var empty TextSet
	assert.True(t, empty.With("z").Has("z"))
}

func TestNewCatalog_CopiesInput(t *testing.T) {
	qs := []Question{{Text: "a"}}
	c := NewCatalog([]Topic{{Name: "T", Questions: qs}})
	qs[0].Text = "changed"
	assert.Equal(t, "a", c.Questions("T")[0].Text)
}
