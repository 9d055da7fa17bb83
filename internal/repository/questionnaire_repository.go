package repository

import (
	"time"

	"github.com/lshigami/Quillback/internal/model"
	"gorm.io/gorm"
)

// CreatorCount pairs a creator with the number of questionnaires they own.
type CreatorCount struct {
	UserID             uint   `json:"user_id"`
	Username           string `json:"username"`
	QuestionnaireCount int    `json:"questionnaire_count"`
}

type QuestionnaireRepository interface {
	Create(q *model.Questionnaire) error
	FindByID(id uint) (*model.Questionnaire, error)
	FindByIDWithQuestions(id uint) (*model.Questionnaire, error)
	Update(q *model.Questionnaire) error
	Delete(id uint) error
	// ListAccessible returns active questionnaires the actor may see, newest
	// updates first. A nil user sees only public ones; admins see everything.
	ListAccessible(user *model.User, offset, limit int) ([]model.Questionnaire, int64, error)
	ListByCreator(creatorID uint, limit int) ([]model.Questionnaire, error)
	FindRecentPublic(limit int) ([]model.Questionnaire, error)
	FindRecent(limit int) ([]model.Questionnaire, error)
	CountByCreator(creatorID uint) (int64, error)
	Count() (int64, error)
	CountActive() (int64, error)
	CountPublicActive() (int64, error)
	CountCreatedSince(since time.Time) (int64, error)
	TopCreators(limit int) ([]CreatorCount, error)
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

func (r *questionnaireRepository) Create(q *model.Questionnaire) error {
	return r.db.Create(q).Error
}

func (r *questionnaireRepository) FindByID(id uint) (*model.Questionnaire, error) {
	var q model.Questionnaire
	if err := r.db.First(&q, id).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepository) FindByIDWithQuestions(id uint) (*model.Questionnaire, error) {
	var q model.Questionnaire
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.order_index ASC, questions.id ASC")
	}).First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepository) Update(q *model.Questionnaire) error {
	return r.db.Save(q).Error
}

func (r *questionnaireRepository) Delete(id uint) error {
	// Questions, responses and answers go with it via the FK constraints.
	return r.db.Delete(&model.Questionnaire{}, id).Error
}

func (r *questionnaireRepository) ListAccessible(user *model.User, offset, limit int) ([]model.Questionnaire, int64, error) {
	query := r.db.Model(&model.Questionnaire{}).Where("is_active = ?", true)
	switch {
	case user == nil:
		query = query.Where("is_public = ?", true)
	case user.IsAdmin():
		// Admins see every active questionnaire.
	default:
		query = query.Where("is_public = ? OR creator_id = ?", true, user.ID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var qs []model.Questionnaire
	err := query.Order("updated_at DESC").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *questionnaireRepository) ListByCreator(creatorID uint, limit int) ([]model.Questionnaire, error) {
	var qs []model.Questionnaire
	query := r.db.Where("creator_id = ? AND is_active = ?", creatorID, true).Order("updated_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) FindRecentPublic(limit int) ([]model.Questionnaire, error) {
	var qs []model.Questionnaire
	err := r.db.Where("is_active = ? AND is_public = ?", true, true).
		Order("created_at DESC").Limit(limit).Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) FindRecent(limit int) ([]model.Questionnaire, error) {
	var qs []model.Questionnaire
	err := r.db.Order("created_at DESC").Limit(limit).Find(&qs).Error
	return qs, err
}

func (r *questionnaireRepository) CountByCreator(creatorID uint) (int64, error) {
	var n int64
	err := r.db.Model(&model.Questionnaire{}).Where("creator_id = ?", creatorID).Count(&n).Error
	return n, err
}

func (r *questionnaireRepository) Count() (int64, error) {
	var n int64
	err := r.db.Model(&model.Questionnaire{}).Count(&n).Error
	return n, err
}

func (r *questionnaireRepository) CountActive() (int64, error) {
	var n int64
	err := r.db.Model(&model.Questionnaire{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (r *questionnaireRepository) CountPublicActive() (int64, error) {
	var n int64
	err := r.db.Model(&model.Questionnaire{}).
		Where("is_active = ? AND is_public = ?", true, true).Count(&n).Error
	return n, err
}

func (r *questionnaireRepository) CountCreatedSince(since time.Time) (int64, error) {
	var n int64
	err := r.db.Model(&model.Questionnaire{}).Where("created_at >= ?", since).Count(&n).Error
	return n, err
}

func (r *questionnaireRepository) TopCreators(limit int) ([]CreatorCount, error) {
	var results []CreatorCount
	err := r.db.Model(&model.Questionnaire{}).
		Select("users.id as user_id, users.username as username, COUNT(questionnaires.id) as questionnaire_count").
		Joins("JOIN users ON users.id = questionnaires.creator_id").
		Group("users.id, users.username").
		Order("questionnaire_count DESC").
		Limit(limit).
		Scan(&results).Error
	return results, err
}
