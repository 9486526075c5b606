package dialogue

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"exam-quiz-skill/internal/quiz"
	"exam-quiz-skill/internal/session"
)

// input is what a rule sees of one turn.
type input struct {
	command string
	state   session.State
	isNew   bool
}

// outcome is what a rule decides. When save is false the stored state is
// left untouched.
type outcome struct {
	reply Reply
	next  session.State
	save  bool
}

func keep(r Reply) outcome { return outcome{reply: r} }

func moveTo(r Reply, next session.State) outcome { return outcome{reply: r, next: next, save: true} }

// rule pairs a predicate with the handler that runs when it matches. Rules
// are tried in order and the first match wins.
type rule struct {
	name   string
	match  func(e *Engine, in input) bool
	handle func(e *Engine, in input) (outcome, error)
}

func defaultRules() []rule {
	return []rule{
		{name: "new_session", match: isNewSession, handle: greet},
		{name: "navigation", match: isNavigation, handle: backToMenu},
		{name: "skip", match: isSkip, handle: skip},
		{name: "help", match: isHelp, handle: help},
		{name: "topic", match: isTopic, handle: startTopic},
		{name: "answer", match: isAnswer, handle: answer},
		{name: "fallback", match: always, handle: chooseTopic},
	}
}

func containsAny(command string, words []string) bool {
	for _, w := range words {
		if strings.Contains(command, w) {
			return true
		}
	}
	return false
}

func isNewSession(_ *Engine, in input) bool { return in.isNew }

func isNavigation(_ *Engine, in input) bool { return containsAny(in.command, navigationWords) }

func isSkip(_ *Engine, in input) bool {
	return in.state.InTopic() && containsAny(in.command, skipWords)
}

func isHelp(_ *Engine, in input) bool { return slices.Contains(helpPhrases, in.command) }

func isTopic(e *Engine, in input) bool {
	_, ok := e.catalog.Lookup(in.command)
	return ok
}

func isAnswer(_ *Engine, in input) bool { return in.state.AwaitingAnswer() }

func always(*Engine, input) bool { return true }

func greet(e *Engine, _ input) (outcome, error) {
	return moveTo(menuReply(textGreeting, e.topicButtons()), session.Menu()), nil
}

func backToMenu(e *Engine, _ input) (outcome, error) {
	return moveTo(menuReply(textMenu, e.topicButtons()), session.Menu()), nil
}

func chooseTopic(e *Engine, _ input) (outcome, error) {
	return keep(menuReply(textChoose, e.topicButtons())), nil
}

func help(_ *Engine, in input) (outcome, error) {
	text := textHelpMenu
	if in.state.InTopic() {
		text = fmt.Sprintf(textHelpQuestion, in.state.Topic)
	}
	return keep(Reply{Kind: InfoText, Text: text, Buttons: []string{ButtonBack}}), nil
}

func (e *Engine) exhausted(lead string) outcome {
	return moveTo(menuReply(joinBlocks(lead, textExhausted), e.topicButtons()), session.Menu())
}

func skip(e *Engine, in input) (outcome, error) {
	topic := in.state.Topic
	q, err := e.catalog.NextUnseen(topic, in.state.Seen)
	if errors.Is(err, quiz.ErrTopicExhausted) {
		return e.exhausted(""), nil
	}
	if errors.Is(err, quiz.ErrUnknownTopic) {
		// the catalog was reloaded without this topic
		return backToMenu(e, in)
	}
	if err != nil {
		return outcome{}, fmt.Errorf("skip in %q: %w", topic, err)
	}
	return moveTo(skippedQuestion(topic, q), session.Asking(topic, q, in.state.Seen)), nil
}

func startTopic(e *Engine, in input) (outcome, error) {
	topic, _ := e.catalog.Lookup(in.command)
	q, err := e.catalog.Select(topic, nil)
	if errors.Is(err, quiz.ErrEmptyTopic) {
		return keep(Reply{
			Kind:    ErrorText,
			Text:    fmt.Sprintf(textEmptyTopic, topic),
			Buttons: []string{ButtonBack},
		}), nil
	}
	if err != nil {
		return outcome{}, fmt.Errorf("start %q: %w", topic, err)
	}
	return moveTo(firstQuestion(topic, q), session.Asking(topic, q, nil)), nil
}

func answer(e *Engine, in input) (outcome, error) {
	st := in.state
	current := *st.Question

	given := quiz.ParseUtterance(in.command)
	if len(given) == 0 {
		return keep(Reply{
			Kind:    InfoText,
			Text:    fmt.Sprintf(textNotUnderstood, in.command),
			Buttons: questionButtons,
		}), nil
	}

	verdict := quiz.Grade(given, quiz.NormalizeCorrectLabels(current.CorrectLabels))
	e.observeVerdict(st.Topic, verdict)
	text := feedback(verdict, current)

	q, err := e.catalog.NextUnseen(st.Topic, st.Seen)
	if errors.Is(err, quiz.ErrTopicExhausted) {
		return e.exhausted(text), nil
	}
	if errors.Is(err, quiz.ErrUnknownTopic) {
		return backToMenu(e, in)
	}
	if err != nil {
		return outcome{}, fmt.Errorf("next in %q: %w", st.Topic, err)
	}
	return moveTo(nextQuestion(text, st.Topic, q), session.Asking(st.Topic, q, st.Seen)), nil
}
