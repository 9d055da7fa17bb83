package model

import (
	"strings"

	"gorm.io/datatypes"
)

const (
	QuestionSingleChoice   = "single_choice"
	QuestionMultipleChoice = "multiple_choice"
	QuestionOpenEnded      = "open_ended"
	QuestionScale1To5      = "scale_1_5"
)

// QuestionTypes lists every supported question type.
var QuestionTypes = []string{
	QuestionSingleChoice,
	QuestionMultipleChoice,
	QuestionOpenEnded,
	QuestionScale1To5,
}

type Question struct {
	ID              uint   `gorm:"primarykey" json:"id"`
	QuestionnaireID uint   `json:"questionnaire_id" gorm:"not null;index"`
	QuestionText    string `json:"question_text" gorm:"type:text;not null"`
	QuestionType    string `json:"question_type" gorm:"size:20;not null"`
	// Options is the ordered option list for the two choice types; null otherwise.
	Options    datatypes.JSONSlice[string] `json:"options,omitempty"`
	IsRequired bool                        `json:"is_required" gorm:"not null;default:false"`
	OrderIndex int                         `json:"order_index" gorm:"not null;default:0;index"`

	Answers []Answer `json:"-" gorm:"foreignKey:QuestionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// IsChoice reports whether the question carries an option list.
func (q *Question) IsChoice() bool {
	return q.QuestionType == QuestionSingleChoice || q.QuestionType == QuestionMultipleChoice
}

// SetOptions normalizes and stores the option list: options are trimmed,
// empties dropped, and an empty result means no options are stored at all.
// Non-choice questions never store options.
func (q *Question) SetOptions(options []string) {
	if !q.IsChoice() {
		q.Options = nil
		return
	}
	var cleaned []string
	for _, opt := range options {
		opt = strings.TrimSpace(opt)
		if opt != "" {
			cleaned = append(cleaned, opt)
		}
	}
	if len(cleaned) == 0 {
		q.Options = nil
		return
	}
	q.Options = datatypes.NewJSONSlice(cleaned)
}

func ValidQuestionType(t string) bool {
	for _, qt := range QuestionTypes {
		if qt == t {
			return true
		}
	}
	return false
}
