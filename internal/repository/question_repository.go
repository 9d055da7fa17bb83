package repository

import (
	"github.com/lshigami/Quillback/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id uint) (*model.Question, error)
	FindByQuestionnaireID(questionnaireID uint) ([]model.Question, error)
	FindRequiredByQuestionnaireID(questionnaireID uint) ([]model.Question, error)
	Update(question *model.Question) error
	Delete(id uint) error
	MaxOrderIndex(questionnaireID uint) (int, error)
	CountByQuestionnaireID(questionnaireID uint) (int64, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id uint) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, id).Error; err != nil {
		return nil, err
	}
	return &question, nil
}

func (r *questionRepository) FindByQuestionnaireID(questionnaireID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("questionnaire_id = ?", questionnaireID).
		Order("order_index ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) FindRequiredByQuestionnaireID(questionnaireID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.db.Where("questionnaire_id = ? AND is_required = ?", questionnaireID, true).
		Order("order_index ASC, id ASC").Find(&questions).Error
	return questions, err
}

func (r *questionRepository) Update(question *model.Question) error {
	return r.db.Save(question).Error
}

func (r *questionRepository) Delete(id uint) error {
	return r.db.Delete(&model.Question{}, id).Error
}

func (r *questionRepository) MaxOrderIndex(questionnaireID uint) (int, error) {
	var max *int
	err := r.db.Model(&model.Question{}).
		Where("questionnaire_id = ?", questionnaireID).
		Select("MAX(order_index)").Scan(&max).Error
	if err != nil || max == nil {
		return 0, err
	}
	return *max, nil
}

func (r *questionRepository) CountByQuestionnaireID(questionnaireID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Question{}).Where("questionnaire_id = ?", questionnaireID).Count(&n).Error
	return n, err
}
