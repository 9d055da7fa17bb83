package dto

// QuestionStatsDTO is the per-question aggregation over complete responses.
// Choice and scale questions fill AnswerDistribution; open-ended questions
// fill SampleResponses with up to the first ten non-empty answers.
type QuestionStatsDTO struct {
	TotalAnswers       int            `json:"total_answers"`
	AnswerDistribution map[string]int `json:"answer_distribution,omitempty"`
	SampleResponses    []string       `json:"sample_responses,omitempty"`
}

type QuestionAnalyticsDTO struct {
	QuestionText string           `json:"question_text"`
	QuestionType string           `json:"question_type"`
	Stats        QuestionStatsDTO `json:"stats"`
}

type AnalyticsDTO struct {
	Questionnaire QuestionnaireDTO                `json:"questionnaire"`
	Analytics     map[string]QuestionAnalyticsDTO `json:"analytics"`
	Stats         QuestionnaireStatsDTO           `json:"stats"`
}

// ExportDTO bundles a questionnaire with its questions and every complete
// response and its answers.
type ExportDTO struct {
	Questionnaire QuestionnaireDTO    `json:"questionnaire"`
	Questions     []QuestionDTO       `json:"questions"`
	Responses     []ResponseDetailDTO `json:"responses"`
}
