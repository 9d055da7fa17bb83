package repository

import (
	"github.com/lshigami/Quillback/internal/model"
	"gorm.io/gorm"
)

type AnswerRepository interface {
	// FindForCompletedResponses returns a question's answers restricted to
	// complete responses, in answer creation order. Draft answers never
	// reach the aggregator.
	FindForCompletedResponses(questionID uint) ([]model.Answer, error)
	FindByResponseID(responseID uint) ([]model.Answer, error)
}

type answerRepository struct {
	db *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) AnswerRepository {
	return &answerRepository{db: db}
}

func (r *answerRepository) FindForCompletedResponses(questionID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.
		Joins("JOIN responses ON responses.id = answers.response_id").
		Where("answers.question_id = ? AND responses.is_complete = ?", questionID, true).
		Order("answers.created_at ASC, answers.id ASC").
		Find(&answers).Error
	return answers, err
}

func (r *answerRepository) FindByResponseID(responseID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.db.Where("response_id = ?", responseID).
		Order("created_at ASC, id ASC").Find(&answers).Error
	return answers, err
}
