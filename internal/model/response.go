package model

import (
	"time"
)

// Response lifecycle: created as a draft (IsComplete=false), becomes complete
// exactly once when a final submission passes required-question validation.
// A complete response is terminal.
type Response struct {
	ID              uint          `gorm:"primarykey" json:"id"`
	QuestionnaireID uint          `json:"questionnaire_id" gorm:"not null;index"`
	Questionnaire   Questionnaire `json:"-" gorm:"foreignKey:QuestionnaireID"`
	UserID          *uint         `json:"user_id,omitempty" gorm:"index"`
	User            *User         `json:"-" gorm:"foreignKey:UserID"`
	SubmittedAt     time.Time     `json:"submitted_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time     `json:"updated_at"`
	IsComplete      bool          `json:"is_complete" gorm:"not null;default:false;index"`
	IPAddress       string        `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent       string        `json:"user_agent,omitempty" gorm:"size:500"`

	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:ResponseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// CanBeEdited reports whether the response still accepts answer updates.
func (r *Response) CanBeEdited() bool {
	return !r.IsComplete
}

// CompletionPercentage computes how many of the required questions have an
// answer, rounded to two decimals. With no required questions it is 100 when
// any answer exists and 0 otherwise.
func (r *Response) CompletionPercentage(requiredQuestionIDs []uint) float64 {
	answered := make(map[uint]bool, len(r.Answers))
	for _, a := range r.Answers {
		answered[a.QuestionID] = true
	}
	if len(requiredQuestionIDs) == 0 {
		if len(r.Answers) > 0 {
			return 100
		}
		return 0
	}
	count := 0
	for _, id := range requiredQuestionIDs {
		if answered[id] {
			count++
		}
	}
	return round2(float64(count) / float64(len(requiredQuestionIDs)) * 100)
}

// RespondentInfo describes who submitted a response without breaking the
// anonymity of unauthenticated respondents.
type RespondentInfo struct {
	Type      string `json:"type"`
	UserID    *uint  `json:"id,omitempty"`
	Username  string `json:"username,omitempty"`
	Email     string `json:"email,omitempty"`
	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

func (r *Response) Respondent() RespondentInfo {
	if r.UserID != nil && r.User != nil {
		return RespondentInfo{
			Type:     "registered",
			UserID:   r.UserID,
			Username: r.User.Username,
			Email:    r.User.Email,
		}
	}
	ua := r.UserAgent
	if len(ua) > 100 {
		ua = ua[:100] + "..."
	}
	return RespondentInfo{
		Type:      "anonymous",
		IPAddress: r.IPAddress,
		UserAgent: ua,
	}
}
