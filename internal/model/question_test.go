package model

import (
	"reflect"
	"testing"
)

func TestSetOptionsNormalizes(t *testing.T) {
	q := Question{QuestionType: QuestionSingleChoice}
	q.SetOptions([]string{"  Red ", "", "Green", "   "})
	got := []string(q.Options)
	want := []string{"Red", "Green"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Options = %v, want %v", got, want)
	}
}

func TestSetOptionsAllEmpty(t *testing.T) {
	q := Question{QuestionType: QuestionMultipleChoice}
	q.SetOptions([]string{"", "  "})
	if q.Options != nil {
		t.Fatalf("Options = %v, want nil", q.Options)
	}
}

func TestSetOptionsNonChoice(t *testing.T) {
	q := Question{QuestionType: QuestionOpenEnded}
	q.SetOptions([]string{"Red", "Green"})
	if q.Options != nil {
		t.Fatalf("non-choice question stored options: %v", q.Options)
	}
}

func TestValidQuestionType(t *testing.T) {
	for _, qt := range QuestionTypes {
		if !ValidQuestionType(qt) {
			t.Errorf("%s should be valid", qt)
		}
	}
	if ValidQuestionType("essay") {
		t.Error("unknown type accepted")
	}
}
