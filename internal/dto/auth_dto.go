package dto

import "time"

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email,max=120"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user creator"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}

// ProfileDTO is the user's own view of their account.
type ProfileDTO struct {
	UserDTO
	QuestionnairesCreated int64 `json:"questionnaires_created"`
	ResponsesSubmitted    int64 `json:"responses_submitted"`
}

// DashboardDTO is the signed-in user's landing view: their stats, latest
// questionnaires and latest complete responses.
type DashboardDTO struct {
	Stats                ProfileDTO           `json:"stats"`
	RecentQuestionnaires []QuestionnaireDTO   `json:"recent_questionnaires"`
	RecentResponses      []ResponseSummaryDTO `json:"recent_responses"`
}

type UpdateProfileRequest struct {
	Username        string `json:"username" binding:"omitempty,min=3,max=64"`
	Email           string `json:"email" binding:"omitempty,email,max=120"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password" binding:"omitempty,min=8"`
}
