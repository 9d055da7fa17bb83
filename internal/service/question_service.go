package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/policy"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionService interface {
	List(actor *model.User, questionnaireID uint) ([]dto.QuestionDTO, error)
	Create(actor *model.User, questionnaireID uint, req dto.QuestionCreateRequest) (*dto.QuestionDTO, error)
	Update(actor *model.User, questionID uint, req dto.QuestionUpdateRequest) (*dto.QuestionDTO, error)
	Delete(actor *model.User, questionID uint) error
	Reorder(actor *model.User, questionnaireID uint, req dto.QuestionReorderRequest) error
}

type questionService struct {
	questionRepo      repository.QuestionRepository
	questionnaireRepo repository.QuestionnaireRepository
	db                *gorm.DB
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	questionnaireRepo repository.QuestionnaireRepository,
	db *gorm.DB,
) QuestionService {
	return &questionService{
		questionRepo:      questionRepo,
		questionnaireRepo: questionnaireRepo,
		db:                db,
	}
}

func (s *questionService) List(actor *model.User, questionnaireID uint) ([]dto.QuestionDTO, error) {
	q, err := s.loadQuestionnaire(questionnaireID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, q) {
		return nil, ErrPermissionDenied
	}
	questions, err := s.questionRepo.FindByQuestionnaireID(questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("error fetching questions: %w", err)
	}
	return questionsToDTO(questions), nil
}

func (s *questionService) Create(actor *model.User, questionnaireID uint, req dto.QuestionCreateRequest) (*dto.QuestionDTO, error) {
	q, err := s.loadQuestionnaire(questionnaireID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, q) {
		return nil, ErrPermissionDenied
	}
	if verr := validateQuestion(req.QuestionText, req.QuestionType, req.Options); verr != nil {
		return nil, verr
	}

	maxOrder, err := s.questionRepo.MaxOrderIndex(questionnaireID)
	if err != nil {
		return nil, fmt.Errorf("error computing question order: %w", err)
	}

	question := model.Question{
		QuestionnaireID: questionnaireID,
		QuestionText:    req.QuestionText,
		QuestionType:    req.QuestionType,
		IsRequired:      req.IsRequired,
		OrderIndex:      maxOrder + 1,
	}
	question.SetOptions(req.Options)

	if err := s.questionRepo.Create(&question); err != nil {
		log.Error().Err(err).Uint("questionnaireID", questionnaireID).Msg("Failed to create question")
		return nil, fmt.Errorf("database error creating question: %w", err)
	}

	log.Info().Uint("questionnaireID", questionnaireID).Str("actor", actor.Username).Msg("Question created")
	return questionToDTO(&question), nil
}

func (s *questionService) Update(actor *model.User, questionID uint, req dto.QuestionUpdateRequest) (*dto.QuestionDTO, error) {
	question, q, err := s.loadQuestion(questionID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, q) {
		return nil, ErrPermissionDenied
	}
	if verr := validateQuestion(req.QuestionText, req.QuestionType, req.Options); verr != nil {
		return nil, verr
	}

	question.QuestionText = req.QuestionText
	question.QuestionType = req.QuestionType
	question.IsRequired = req.IsRequired
	question.SetOptions(req.Options)

	if err := s.questionRepo.Update(question); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to update question")
		return nil, fmt.Errorf("database error updating question: %w", err)
	}
	return questionToDTO(question), nil
}

func (s *questionService) Delete(actor *model.User, questionID uint) error {
	question, q, err := s.loadQuestion(questionID)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, q) {
		return ErrPermissionDenied
	}
	if err := s.questionRepo.Delete(question.ID); err != nil {
		log.Error().Err(err).Uint("questionID", questionID).Msg("Failed to delete question")
		return fmt.Errorf("database error deleting question: %w", err)
	}
	log.Info().Uint("questionID", questionID).Str("actor", actor.Username).Msg("Question deleted")
	return nil
}

// Reorder rewrites order_index for the supplied id sequence in one
// transaction, so a mid-sequence failure never leaves a partial reorder.
// Ids that do not belong to the questionnaire are skipped.
func (s *questionService) Reorder(actor *model.User, questionnaireID uint, req dto.QuestionReorderRequest) error {
	q, err := s.loadQuestionnaire(questionnaireID)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, q) {
		return ErrPermissionDenied
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		for index, questionID := range req.QuestionIDs {
			result := tx.Model(&model.Question{}).
				Where("id = ? AND questionnaire_id = ?", questionID, questionnaireID).
				Update("order_index", index)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Uint("questionnaireID", questionnaireID).Msg("Failed to reorder questions")
		return fmt.Errorf("database error reordering questions: %w", err)
	}

	log.Info().Uint("questionnaireID", questionnaireID).Str("actor", actor.Username).Msg("Questions reordered")
	return nil
}

func (s *questionService) loadQuestionnaire(id uint) (*model.Questionnaire, error) {
	q, err := s.questionnaireRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *questionService) loadQuestion(id uint) (*model.Question, *model.Questionnaire, error) {
	question, err := s.questionRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	q, err := s.loadQuestionnaire(question.QuestionnaireID)
	if err != nil {
		return nil, nil, err
	}
	return question, q, nil
}

func validateQuestion(text, questionType string, options []string) error {
	verr := newValidationError()
	if strings.TrimSpace(text) == "" {
		verr.add("question_text", "Question text is required.")
	}
	if !model.ValidQuestionType(questionType) {
		verr.add("question_type", "Unknown question type.")
	}
	if questionType == model.QuestionSingleChoice || questionType == model.QuestionMultipleChoice {
		usable := 0
		for _, opt := range options {
			if strings.TrimSpace(opt) != "" {
				usable++
			}
		}
		if usable == 0 {
			verr.add("options", "Choice questions need at least one option.")
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func questionToDTO(question *model.Question) *dto.QuestionDTO {
	var d dto.QuestionDTO
	copier.Copy(&d, question)
	d.Options = []string(question.Options)
	return &d
}
