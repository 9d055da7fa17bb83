package model

import "testing"

func TestSetValueScale(t *testing.T) {
	var a Answer
	a.SetValue("4", QuestionScale1To5)
	if a.AnswerValue == nil || *a.AnswerValue != 4 {
		t.Fatalf("AnswerValue = %v, want 4", a.AnswerValue)
	}
	if a.AnswerText != nil {
		t.Errorf("AnswerText should be nil for scale answers, got %q", *a.AnswerText)
	}
	if !a.HasValue() {
		t.Error("parsed scale answer should have a value")
	}
}

func TestSetValueScaleUnparsable(t *testing.T) {
	text := "stale"
	a := Answer{AnswerText: &text}
	a.SetValue("abc", QuestionScale1To5)
	if a.AnswerValue != nil || a.AnswerText != nil {
		t.Fatalf("unparsable scale input must clear both fields, got text=%v value=%v", a.AnswerText, a.AnswerValue)
	}
	if a.HasValue() {
		t.Error("cleared answer must not report a value")
	}
}

func TestSetValueTextTypes(t *testing.T) {
	for _, qt := range []string{QuestionSingleChoice, QuestionMultipleChoice, QuestionOpenEnded} {
		v := 3.0
		a := Answer{AnswerValue: &v}
		a.SetValue("Blue", qt)
		if a.AnswerText == nil || *a.AnswerText != "Blue" {
			t.Errorf("%s: AnswerText = %v, want Blue", qt, a.AnswerText)
		}
		if a.AnswerValue != nil {
			t.Errorf("%s: AnswerValue should be cleared", qt)
		}
	}
}

func TestHasValueEmptyText(t *testing.T) {
	empty := ""
	a := Answer{AnswerText: &empty}
	if a.HasValue() {
		t.Error("empty text is not a value")
	}
}

func TestDisplayValue(t *testing.T) {
	v := 5.0
	a := Answer{AnswerValue: &v}
	if got := a.DisplayValue(QuestionScale1To5); got != "5/5" {
		t.Errorf("DisplayValue = %q, want 5/5", got)
	}
	text := "Red, Green"
	b := Answer{AnswerText: &text}
	if got := b.DisplayValue(QuestionMultipleChoice); got != "Red, Green" {
		t.Errorf("DisplayValue = %q, want Red, Green", got)
	}
	var c Answer
	if got := c.DisplayValue(QuestionOpenEnded); got != "No answer" {
		t.Errorf("DisplayValue = %q, want No answer", got)
	}
}
