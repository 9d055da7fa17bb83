package dto

type QuestionCreateRequest struct {
	QuestionText string   `json:"question_text" binding:"required"`
	QuestionType string   `json:"question_type" binding:"required,oneof=single_choice multiple_choice open_ended scale_1_5"`
	Options      []string `json:"options"`
	IsRequired   bool     `json:"is_required"`
}

type QuestionUpdateRequest struct {
	QuestionText string   `json:"question_text" binding:"required"`
	QuestionType string   `json:"question_type" binding:"required,oneof=single_choice multiple_choice open_ended scale_1_5"`
	Options      []string `json:"options"`
	IsRequired   bool     `json:"is_required"`
}

// QuestionReorderRequest carries the full question id sequence in the
// desired display order. Ids not belonging to the questionnaire are skipped.
type QuestionReorderRequest struct {
	QuestionIDs []uint `json:"question_ids" binding:"required,min=1"`
}

type QuestionDTO struct {
	ID              uint     `json:"id"`
	QuestionnaireID uint     `json:"questionnaire_id"`
	QuestionText    string   `json:"question_text"`
	QuestionType    string   `json:"question_type"`
	Options         []string `json:"options"`
	IsRequired      bool     `json:"is_required"`
	OrderIndex      int      `json:"order_index"`
}
