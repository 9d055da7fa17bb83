package repository

import (
	"errors"
	"time"

	"github.com/lshigami/Quillback/internal/model"
	"gorm.io/gorm"
)

type ResponseRepository interface {
	FindByID(id uint) (*model.Response, error)
	FindByIDWithAnswers(id uint) (*model.Response, error)
	// FindComplete returns the user's complete response to a questionnaire,
	// or nil when they have not finished one.
	FindComplete(questionnaireID, userID uint) (*model.Response, error)
	HasCompleteResponse(questionnaireID, userID uint) (bool, error)
	ListComplete(questionnaireID uint, offset, limit int) ([]model.Response, int64, error)
	ListCompleteWithAnswers(questionnaireID uint) ([]model.Response, error)
	ListCompleteByUser(userID uint, limit int) ([]model.Response, error)
	FindRecentComplete(limit int) ([]model.Response, error)
	Delete(id uint) error
	CountByQuestionnaire(questionnaireID uint) (int64, error)
	CountCompleteByQuestionnaire(questionnaireID uint) (int64, error)
	CountByUser(userID uint) (int64, error)
	Count() (int64, error)
	CountComplete() (int64, error)
	CountCompleteSince(since time.Time) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

func (r *responseRepository) FindByID(id uint) (*model.Response, error) {
	var resp model.Response
	if err := r.db.First(&resp, id).Error; err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) FindByIDWithAnswers(id uint) (*model.Response, error) {
	var resp model.Response
	err := r.db.
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC, answers.id ASC")
		}).
		Preload("User").
		First(&resp, id).Error
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) FindComplete(questionnaireID, userID uint) (*model.Response, error) {
	var resp model.Response
	err := r.db.Where("questionnaire_id = ? AND user_id = ? AND is_complete = ?",
		questionnaireID, userID, true).Order("submitted_at ASC").First(&resp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (r *responseRepository) HasCompleteResponse(questionnaireID, userID uint) (bool, error) {
	var n int64
	err := r.db.Model(&model.Response{}).
		Where("questionnaire_id = ? AND user_id = ? AND is_complete = ?", questionnaireID, userID, true).
		Count(&n).Error
	return n > 0, err
}

func (r *responseRepository) ListComplete(questionnaireID uint, offset, limit int) ([]model.Response, int64, error) {
	query := r.db.Model(&model.Response{}).
		Where("questionnaire_id = ? AND is_complete = ?", questionnaireID, true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var responses []model.Response
	err := query.Preload("User").Order("submitted_at DESC").
		Offset(offset).Limit(limit).Find(&responses).Error
	return responses, total, err
}

func (r *responseRepository) ListCompleteWithAnswers(questionnaireID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Where("questionnaire_id = ? AND is_complete = ?", questionnaireID, true).
		Preload("Answers", func(db *gorm.DB) *gorm.DB {
			return db.Order("answers.created_at ASC, answers.id ASC")
		}).
		Preload("User").
		Order("submitted_at ASC").Find(&responses).Error
	return responses, err
}

func (r *responseRepository) ListCompleteByUser(userID uint, limit int) ([]model.Response, error) {
	var responses []model.Response
	query := r.db.Where("user_id = ? AND is_complete = ?", userID, true).Order("submitted_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&responses).Error
	return responses, err
}

func (r *responseRepository) FindRecentComplete(limit int) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Where("is_complete = ?", true).Preload("User").
		Order("submitted_at DESC").Limit(limit).Find(&responses).Error
	return responses, err
}

func (r *responseRepository) Delete(id uint) error {
	return r.db.Delete(&model.Response{}, id).Error
}

func (r *responseRepository) CountByQuestionnaire(questionnaireID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Response{}).Where("questionnaire_id = ?", questionnaireID).Count(&n).Error
	return n, err
}

func (r *responseRepository) CountCompleteByQuestionnaire(questionnaireID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Response{}).
		Where("questionnaire_id = ? AND is_complete = ?", questionnaireID, true).Count(&n).Error
	return n, err
}

func (r *responseRepository) CountByUser(userID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Response{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func (r *responseRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Response{}).Count(&n).Error
	return n, err
}

func (r *responseRepository) CountComplete() (int64, error) {
	var n int64
	err := r.db.Model(&model.Response{}).Where("is_complete = ?", true).Count(&n).Error
	return n, err
}

func (r *responseRepository) CountCompleteSince(since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.Response{}).
		Where("is_complete = ? AND submitted_at >= ?", true, since).Count(&n).Error
	return n, err
}
