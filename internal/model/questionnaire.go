package model

import (
	"math"
	"time"
)

type Questionnaire struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	Title       string    `json:"title" gorm:"size:200;not null"`
	Description string    `json:"description,omitempty" gorm:"type:text"`
	CreatorID   uint      `json:"creator_id" gorm:"not null;index"`
	Creator     User      `json:"-" gorm:"foreignKey:CreatorID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// No gorm default tags here: a default tag makes gorm drop zero-valued
	// fields from the INSERT, which would silently store a private or
	// inactive questionnaire as public and active.
	IsActive               bool `json:"is_active" gorm:"not null"`
	IsPublic               bool `json:"is_public" gorm:"not null"`
	AllowAnonymous         bool `json:"allow_anonymous" gorm:"not null"`
	AllowMultipleResponses bool `json:"allow_multiple_responses" gorm:"not null"`

	// Questions and responses are lifecycle-bound to the questionnaire.
	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuestionnaireID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Responses []Response `json:"-" gorm:"foreignKey:QuestionnaireID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CompletionRate returns the percentage of responses that are complete,
// rounded to two decimals. Zero total responses yields 0.
func CompletionRate(completeResponses, totalResponses int64) float64 {
	if totalResponses == 0 {
		return 0
	}
	return round2(float64(completeResponses) / float64(totalResponses) * 100)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
