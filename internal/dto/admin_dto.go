package dto

// AdminDashboardDTO is the admin overview: totals, recent activity and
// 30-day growth.
type AdminDashboardDTO struct {
	Stats                SystemStatsDTO       `json:"stats"`
	GrowthStats          GrowthStatsDTO       `json:"growth_stats"`
	RecentUsers          []UserDTO            `json:"recent_users"`
	RecentQuestionnaires []QuestionnaireDTO   `json:"recent_questionnaires"`
	RecentResponses      []ResponseSummaryDTO `json:"recent_responses"`
	TopCreators          []TopCreatorDTO      `json:"top_creators"`
}

type SystemStatsDTO struct {
	TotalUsers           int64 `json:"total_users"`
	ActiveUsers          int64 `json:"active_users"`
	TotalQuestionnaires  int64 `json:"total_questionnaires"`
	ActiveQuestionnaires int64 `json:"active_questionnaires"`
	PublicQuestionnaires int64 `json:"public_questionnaires"`
	TotalResponses       int64 `json:"total_responses"`
	CompleteResponses    int64 `json:"complete_responses"`
}

type GrowthStatsDTO struct {
	NewUsers          int64 `json:"new_users"`
	NewQuestionnaires int64 `json:"new_questionnaires"`
	NewResponses      int64 `json:"new_responses"`
}

type TopCreatorDTO struct {
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	QuestionnaireCount int    `json:"questionnaire_count"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user creator admin"`
}
