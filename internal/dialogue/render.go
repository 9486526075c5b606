package dialogue

import (
	"fmt"
	"strings"

	"exam-quiz-skill/internal/quiz"
)

var questionButtons = []string{ButtonSkip, ButtonBack}

func (e *Engine) topicButtons() []string {
	return e.catalog.Topics()
}

func menuReply(text string, topics []string) Reply {
	return Reply{Kind: MenuPrompt, Text: text, Buttons: topics}
}

func questionBody(q quiz.Question) string {
	return joinBlocks(q.Text, q.OptionsText())
}

func plainQuestion(topic string, q quiz.Question) string {
	return joinBlocks(fmt.Sprintf(textTopicHeader, topic), questionBody(q))
}

func card(topic string, q quiz.Question) *Card {
	return &Card{
		ImageID:     q.ImageID,
		Title:       fmt.Sprintf(textTopicTitle, topic),
		Description: questionBody(q),
	}
}

// firstQuestion renders the opening question of a topic.
func firstQuestion(topic string, q quiz.Question) Reply {
	if q.HasImage() {
		return Reply{
			Kind:    QuestionCard,
			Text:    fmt.Sprintf(textSeeCard, q.Text),
			Buttons: questionButtons,
			Card:    card(topic, q),
		}
	}
	return Reply{Kind: QuestionText, Text: plainQuestion(topic, q), Buttons: questionButtons}
}

// skippedQuestion renders the question that replaces a skipped one.
func skippedQuestion(topic string, q quiz.Question) Reply {
	if q.HasImage() {
		return Reply{Kind: QuestionCard, Text: textSkippedCard, Buttons: questionButtons, Card: card(topic, q)}
	}
	return Reply{Kind: QuestionText, Text: joinBlocks(textSkipped, plainQuestion(topic, q)), Buttons: questionButtons}
}

// nextQuestion renders feedback on an answer followed by the next question.
func nextQuestion(feedback, topic string, q quiz.Question) Reply {
	if q.HasImage() {
		return Reply{
			Kind:    QuestionCard,
			Text:    joinBlocks(feedback, textNextCard),
			Buttons: questionButtons,
			Card:    card(topic, q),
		}
	}
	return Reply{
		Kind:    QuestionText,
		Text:    joinBlocks(feedback, textNextHeader+"\n"+questionBody(q)),
		Buttons: questionButtons,
	}
}

// feedback describes how the answer compares with the key and adds the
// question's explanation.
func feedback(v quiz.Verdict, q quiz.Question) string {
	var head string
	switch v.Outcome {
	case quiz.Correct:
		head = textCorrect
	case quiz.MissingSome:
		head = fmt.Sprintf(textMissingSome, quiz.JoinLabels(v.Missing))
	case quiz.Mixed:
		head = fmt.Sprintf(textMixed, quiz.JoinLabels(v.Right), quiz.JoinLabels(v.Wrong))
	default:
		head = fmt.Sprintf(textIncorrect, strings.Join(q.CorrectLabels, ", "))
	}
	return joinBlocks(head, q.Explanation)
}

// Apology is the reply for any failure inside the engine.
func Apology() Reply {
	return Reply{Kind: ErrorText, Text: textApology}
}

// EmptyRequest is the reply for a request without a usable body.
func EmptyRequest() Reply {
	return Reply{Kind: ErrorText, Text: textEmptyBody}
}
