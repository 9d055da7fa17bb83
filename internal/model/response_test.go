package model

import (
	"strings"
	"testing"
)

func answerFor(questionID uint) Answer {
	text := "x"
	return Answer{QuestionID: questionID, AnswerText: &text}
}

func TestCompletionPercentage(t *testing.T) {
	required := []uint{1, 2, 3}

	r := Response{Answers: []Answer{answerFor(1), answerFor(3)}}
	if got := r.CompletionPercentage(required); got != 66.67 {
		t.Errorf("2 of 3 required answered: got %v, want 66.67", got)
	}

	full := Response{Answers: []Answer{answerFor(1), answerFor(2), answerFor(3)}}
	if got := full.CompletionPercentage(required); got != 100 {
		t.Errorf("all required answered: got %v, want 100", got)
	}
}

func TestCompletionPercentageNoRequired(t *testing.T) {
	empty := Response{}
	if got := empty.CompletionPercentage(nil); got != 0 {
		t.Errorf("no answers: got %v, want 0", got)
	}
	some := Response{Answers: []Answer{answerFor(7)}}
	if got := some.CompletionPercentage(nil); got != 100 {
		t.Errorf("any answer with no required questions: got %v, want 100", got)
	}
}

func TestCompletionRate(t *testing.T) {
	if got := CompletionRate(0, 0); got != 0 {
		t.Errorf("zero responses: got %v, want 0", got)
	}
	if got := CompletionRate(1, 3); got != 33.33 {
		t.Errorf("1 of 3: got %v, want 33.33", got)
	}
	if got := CompletionRate(3, 3); got != 100 {
		t.Errorf("3 of 3: got %v, want 100", got)
	}
}

func TestRespondentRegistered(t *testing.T) {
	id := uint(9)
	r := Response{UserID: &id, User: &User{ID: id, Username: "ada", Email: "ada@example.com"}}
	info := r.Respondent()
	if info.Type != "registered" || info.Username != "ada" {
		t.Fatalf("unexpected respondent info: %+v", info)
	}
}

func TestRespondentAnonymousTruncatesUserAgent(t *testing.T) {
	r := Response{IPAddress: "203.0.113.7", UserAgent: strings.Repeat("a", 150)}
	info := r.Respondent()
	if info.Type != "anonymous" {
		t.Fatalf("Type = %q, want anonymous", info.Type)
	}
	if len(info.UserAgent) != 103 || !strings.HasSuffix(info.UserAgent, "...") {
		t.Errorf("user agent not truncated to 100 chars plus ellipsis: %d chars", len(info.UserAgent))
	}
	if info.IPAddress != "203.0.113.7" {
		t.Errorf("IPAddress = %q", info.IPAddress)
	}
}
