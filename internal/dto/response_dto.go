package dto

import (
	"time"

	"github.com/lshigami/Quillback/internal/model"
)

// AnswerInput is one question's submitted values. Multi-select questions
// send one entry per selected option; everything else sends a single value.
type AnswerInput struct {
	QuestionID uint     `json:"question_id" binding:"required"`
	Values     []string `json:"values"`
}

// ResponseSubmitRequest carries a whole form submission. SaveDraft keeps the
// response open; otherwise this is a final submit and required-question
// validation applies.
type ResponseSubmitRequest struct {
	Answers   []AnswerInput `json:"answers" binding:"required,dive"`
	SaveDraft bool          `json:"save_draft"`
}

type AnswerDTO struct {
	ID           uint      `json:"id"`
	ResponseID   uint      `json:"response_id"`
	QuestionID   uint      `json:"question_id"`
	AnswerText   *string   `json:"answer_text"`
	AnswerValue  *float64  `json:"answer_value"`
	DisplayValue string    `json:"display_value,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ResponseSummaryDTO struct {
	ID                   uint                 `json:"id"`
	QuestionnaireID      uint                 `json:"questionnaire_id"`
	UserID               *uint                `json:"user_id"`
	SubmittedAt          time.Time            `json:"submitted_at"`
	UpdatedAt            time.Time            `json:"updated_at"`
	IsComplete           bool                 `json:"is_complete"`
	CompletionPercentage float64              `json:"completion_percentage"`
	Respondent           model.RespondentInfo `json:"respondent_info"`
}

type ResponseDetailDTO struct {
	ResponseSummaryDTO
	Answers []ResponseAnswerDTO `json:"answers"`
}

// ResponseAnswerDTO pairs an answer with its question context for display.
type ResponseAnswerDTO struct {
	QuestionID   uint      `json:"question_id"`
	QuestionText string    `json:"question_text"`
	QuestionType string    `json:"question_type"`
	Answer       AnswerDTO `json:"answer"`
}

// SubmitResultDTO reports the outcome of a draft save or final submission.
type SubmitResultDTO struct {
	ResponseID           uint    `json:"response_id"`
	IsComplete           bool    `json:"is_complete"`
	CompletionPercentage float64 `json:"completion_percentage"`
}
