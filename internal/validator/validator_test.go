package validator

import (
	"strings"
	"testing"

	"github.com/stemsi/quizdoc/internal/model"
)

func TestStructAcceptsValidQuiz(t *testing.T) {
	doc := model.NewQuizDocument("T", "S", []model.Question{
		{ID: 1, Question: "Q?", Options: []string{"a", "b"}, CorrectAnswer: 1},
	})
	if err := Struct(doc); err != nil {
		t.Fatalf("Struct: %v", err)
	}
}

func TestStructRejectsInvalidQuestions(t *testing.T) {
	doc := model.NewQuizDocument("T", "S", []model.Question{
		{ID: 1, Question: "Q?", Options: []string{"a", "b"}, CorrectAnswer: 2},
		{ID: 2, Question: "", Options: []string{"a"}, CorrectAnswer: 0},
	})

	err := Struct(doc)
	if err == nil {
		t.Fatal("expected validation error")
	}

	fields := TranslateErrors(err)
	if msg := fields["questions[0].correctAnswer"]; !strings.Contains(msg, "index one of the options") {
		t.Errorf("correctAnswer message = %q (fields %v)", msg, fields)
	}
	if _, ok := fields["questions[1].question"]; !ok {
		t.Errorf("missing question error: %v", fields)
	}
	if _, ok := fields["questions[1].options"]; !ok {
		t.Errorf("missing options error: %v", fields)
	}
}

func TestStructRejectsWrongTotal(t *testing.T) {
	doc := model.NewQuizDocument("T", "S", nil)
	doc.TotalQuestions = 3

	fields := TranslateErrors(Struct(doc))
	if _, ok := fields["totalQuestions"]; !ok {
		t.Errorf("missing totalQuestions error: %v", fields)
	}
}

func TestTranslateErrorsNonValidation(t *testing.T) {
	fields := TranslateErrors(errString("boom"))
	if fields["detail"] != "boom" {
		t.Errorf("fields = %v", fields)
	}
}

type errString string

func (e errString) Error() string { return string(e) }
