package model

import (
	"fmt"
	"strconv"
	"time"
)

// Answer holds one respondent's value for one question. Exactly one of
// AnswerText/AnswerValue is meaningful for a given question type: scale
// questions use AnswerValue, everything else uses AnswerText.
type Answer struct {
	ID          uint     `gorm:"primarykey" json:"id"`
	ResponseID  uint     `json:"response_id" gorm:"not null;index:idx_answers_response_question,unique"`
	QuestionID  uint     `json:"question_id" gorm:"not null;index:idx_answers_response_question,unique"`
	AnswerText  *string  `json:"answer_text" gorm:"type:text"`
	AnswerValue *float64 `json:"answer_value"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SetValue coerces a submitted string into the field matching the question
// type, clearing the other field. A scale value that does not parse leaves
// the answer empty rather than failing the submission.
func (a *Answer) SetValue(value string, questionType string) {
	switch questionType {
	case QuestionScale1To5:
		if v, err := strconv.ParseFloat(value, 64); err == nil {
			a.AnswerValue = &v
			a.AnswerText = nil
		} else {
			a.AnswerValue = nil
			a.AnswerText = nil
		}
	default:
		a.AnswerText = &value
		a.AnswerValue = nil
	}
}

// HasValue reports whether the answer carries a usable value in either field.
func (a *Answer) HasValue() bool {
	return (a.AnswerText != nil && *a.AnswerText != "") || a.AnswerValue != nil
}

// DisplayValue renders the answer for listings.
func (a *Answer) DisplayValue(questionType string) string {
	switch questionType {
	case QuestionScale1To5:
		if a.AnswerValue != nil {
			return fmt.Sprintf("%d/5", int(*a.AnswerValue))
		}
	default:
		if a.AnswerText != nil && *a.AnswerText != "" {
			return *a.AnswerText
		}
	}
	return "No answer"
}
