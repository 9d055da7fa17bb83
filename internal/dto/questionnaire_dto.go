package dto

import "time"

type QuestionnaireCreateRequest struct {
	Title                  string `json:"title" binding:"required,max=200"`
	Description            string `json:"description"`
	IsPublic               *bool  `json:"is_public"`
	AllowAnonymous         bool   `json:"allow_anonymous"`
	AllowMultipleResponses bool   `json:"allow_multiple_responses"`
}

type QuestionnaireUpdateRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
}

// QuestionnaireSettingsRequest maps the settings form: all flags at once.
type QuestionnaireSettingsRequest struct {
	IsActive               bool `json:"is_active"`
	IsPublic               bool `json:"is_public"`
	AllowAnonymous         bool `json:"allow_anonymous"`
	AllowMultipleResponses bool `json:"allow_multiple_responses"`
}

type QuestionnaireDTO struct {
	ID                     uint      `json:"id"`
	Title                  string    `json:"title"`
	Description            string    `json:"description,omitempty"`
	CreatorID              uint      `json:"creator_id"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
	IsActive               bool      `json:"is_active"`
	IsPublic               bool      `json:"is_public"`
	AllowAnonymous         bool      `json:"allow_anonymous"`
	AllowMultipleResponses bool      `json:"allow_multiple_responses"`
	QuestionsCount         int64     `json:"questions_count"`
	ResponsesCount         int64     `json:"responses_count"`
}

// QuestionnaireDetailDTO adds the ordered questions and, for authenticated
// viewers, whether they already submitted a complete response.
type QuestionnaireDetailDTO struct {
	QuestionnaireDTO
	Questions    []QuestionDTO         `json:"questions"`
	Statistics   QuestionnaireStatsDTO `json:"statistics"`
	UserResponse *ResponseSummaryDTO   `json:"user_response,omitempty"`
}

type QuestionnaireStatsDTO struct {
	QuestionsCount int64   `json:"questions_count"`
	ResponsesCount int64   `json:"responses_count"`
	CompletionRate float64 `json:"completion_rate"`
	CreatedAt      string  `json:"created_at,omitempty"`
	UpdatedAt      string  `json:"updated_at,omitempty"`
}

// SiteStatsDTO is the public landing-page summary.
type SiteStatsDTO struct {
	TotalQuestionnaires  int64              `json:"total_questionnaires"`
	TotalResponses       int64              `json:"total_responses"`
	TotalUsers           int64              `json:"total_users"`
	RecentQuestionnaires []QuestionnaireDTO `json:"recent_questionnaires"`
}
