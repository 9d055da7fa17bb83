package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/policy"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type QuestionnaireService interface {
	Create(actor *model.User, req dto.QuestionnaireCreateRequest) (*dto.QuestionnaireDTO, error)
	Update(actor *model.User, id uint, req dto.QuestionnaireUpdateRequest) (*dto.QuestionnaireDTO, error)
	UpdateSettings(actor *model.User, id uint, req dto.QuestionnaireSettingsRequest) (*dto.QuestionnaireDTO, error)
	Delete(actor *model.User, id uint) error
	Get(actor *model.User, id uint) (*dto.QuestionnaireDetailDTO, error)
	List(actor *model.User, page, perPage int) (*dto.Page[dto.QuestionnaireDTO], error)
	SiteStats() (*dto.SiteStatsDTO, error)
}

type questionnaireService struct {
	questionnaireRepo repository.QuestionnaireRepository
	questionRepo      repository.QuestionRepository
	responseRepo      repository.ResponseRepository
	userRepo          repository.UserRepository
}

func NewQuestionnaireService(
	questionnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	userRepo repository.UserRepository,
) QuestionnaireService {
	return &questionnaireService{
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		responseRepo:      responseRepo,
		userRepo:          userRepo,
	}
}

func (s *questionnaireService) Create(actor *model.User, req dto.QuestionnaireCreateRequest) (*dto.QuestionnaireDTO, error) {
	if !policy.CanCreate(actor) {
		return nil, ErrPermissionDenied
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	q := model.Questionnaire{
		Title:                  req.Title,
		Description:            req.Description,
		CreatorID:              actor.ID,
		IsActive:               true,
		IsPublic:               isPublic,
		AllowAnonymous:         req.AllowAnonymous,
		AllowMultipleResponses: req.AllowMultipleResponses,
	}
	if err := s.questionnaireRepo.Create(&q); err != nil {
		log.Error().Err(err).Msg("Failed to create questionnaire")
		return nil, fmt.Errorf("database error creating questionnaire: %w", err)
	}

	log.Info().Str("title", q.Title).Str("creator", actor.Username).Msg("Questionnaire created")
	return s.toDTO(&q)
}

func (s *questionnaireService) Update(actor *model.User, id uint, req dto.QuestionnaireUpdateRequest) (*dto.QuestionnaireDTO, error) {
	q, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, q) {
		return nil, ErrPermissionDenied
	}

	q.Title = req.Title
	q.Description = req.Description
	q.UpdatedAt = time.Now()
	if err := s.questionnaireRepo.Update(q); err != nil {
		log.Error().Err(err).Uint("questionnaireID", id).Msg("Failed to update questionnaire")
		return nil, fmt.Errorf("database error updating questionnaire: %w", err)
	}
	return s.toDTO(q)
}

func (s *questionnaireService) UpdateSettings(actor *model.User, id uint, req dto.QuestionnaireSettingsRequest) (*dto.QuestionnaireDTO, error) {
	q, err := s.load(id)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, q) {
		return nil, ErrPermissionDenied
	}

	q.IsActive = req.IsActive
	q.IsPublic = req.IsPublic
	q.AllowAnonymous = req.AllowAnonymous
	q.AllowMultipleResponses = req.AllowMultipleResponses
	q.UpdatedAt = time.Now()
	if err := s.questionnaireRepo.Update(q); err != nil {
		log.Error().Err(err).Uint("questionnaireID", id).Msg("Failed to update questionnaire settings")
		return nil, fmt.Errorf("database error updating settings: %w", err)
	}

	log.Info().Str("title", q.Title).Str("actor", actor.Username).Msg("Questionnaire settings updated")
	return s.toDTO(q)
}

func (s *questionnaireService) Delete(actor *model.User, id uint) error {
	q, err := s.load(id)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, q) {
		return ErrPermissionDenied
	}

	if err := s.questionnaireRepo.Delete(id); err != nil {
		log.Error().Err(err).Uint("questionnaireID", id).Msg("Failed to delete questionnaire")
		return fmt.Errorf("database error deleting questionnaire: %w", err)
	}

	log.Info().Str("title", q.Title).Str("actor", actor.Username).Msg("Questionnaire deleted")
	return nil
}

func (s *questionnaireService) Get(actor *model.User, id uint) (*dto.QuestionnaireDetailDTO, error) {
	q, err := s.questionnaireRepo.FindByIDWithQuestions(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !policy.CanAccess(actor, q) {
		return nil, ErrPermissionDenied
	}

	base, err := s.toDTO(q)
	if err != nil {
		return nil, err
	}

	detail := dto.QuestionnaireDetailDTO{QuestionnaireDTO: *base}
	detail.Questions = questionsToDTO(q.Questions)

	stats, err := s.stats(q)
	if err != nil {
		return nil, err
	}
	detail.Statistics = *stats

	if actor != nil {
		userResp, err := s.responseRepo.FindComplete(q.ID, actor.ID)
		if err != nil {
			return nil, err
		}
		if userResp != nil {
			full, err := s.responseRepo.FindByIDWithAnswers(userResp.ID)
			if err != nil {
				return nil, err
			}
			var requiredIDs []uint
			for i := range q.Questions {
				if q.Questions[i].IsRequired {
					requiredIDs = append(requiredIDs, q.Questions[i].ID)
				}
			}
			summary := summarize(full, requiredIDs)
			detail.UserResponse = &summary
		}
	}
	return &detail, nil
}

func (s *questionnaireService) List(actor *model.User, page, perPage int) (*dto.Page[dto.QuestionnaireDTO], error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 10
	}
	qs, total, err := s.questionnaireRepo.ListAccessible(actor, (page-1)*perPage, perPage)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list questionnaires")
		return nil, fmt.Errorf("error fetching questionnaires: %w", err)
	}

	items := make([]dto.QuestionnaireDTO, 0, len(qs))
	for i := range qs {
		d, err := s.toDTO(&qs[i])
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	return &dto.Page[dto.QuestionnaireDTO]{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *questionnaireService) SiteStats() (*dto.SiteStatsDTO, error) {
	questionnaires, err := s.questionnaireRepo.CountPublicActive()
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.CountComplete()
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.CountActive()
	if err != nil {
		return nil, err
	}
	recent, err := s.questionnaireRepo.FindRecentPublic(5)
	if err != nil {
		return nil, err
	}

	recentDTOs := make([]dto.QuestionnaireDTO, 0, len(recent))
	for i := range recent {
		d, err := s.toDTO(&recent[i])
		if err != nil {
			return nil, err
		}
		recentDTOs = append(recentDTOs, *d)
	}

	return &dto.SiteStatsDTO{
		TotalQuestionnaires:  questionnaires,
		TotalResponses:       responses,
		TotalUsers:           users,
		RecentQuestionnaires: recentDTOs,
	}, nil
}

func (s *questionnaireService) load(id uint) (*model.Questionnaire, error) {
	q, err := s.questionnaireRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *questionnaireService) toDTO(q *model.Questionnaire) (*dto.QuestionnaireDTO, error) {
	var d dto.QuestionnaireDTO
	if err := copier.Copy(&d, q); err != nil {
		return nil, fmt.Errorf("error preparing questionnaire response: %w", err)
	}
	questions, err := s.questionRepo.CountByQuestionnaireID(q.ID)
	if err != nil {
		return nil, err
	}
	responses, err := s.responseRepo.CountCompleteByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}
	d.QuestionsCount = questions
	d.ResponsesCount = responses
	return &d, nil
}

func (s *questionnaireService) stats(q *model.Questionnaire) (*dto.QuestionnaireStatsDTO, error) {
	questions, err := s.questionRepo.CountByQuestionnaireID(q.ID)
	if err != nil {
		return nil, err
	}
	complete, err := s.responseRepo.CountCompleteByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}
	total, err := s.responseRepo.CountByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}
	return &dto.QuestionnaireStatsDTO{
		QuestionsCount: questions,
		ResponsesCount: complete,
		CompletionRate: model.CompletionRate(complete, total),
		CreatedAt:      q.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      q.UpdatedAt.Format(time.RFC3339),
	}, nil
}

func questionsToDTO(questions []model.Question) []dto.QuestionDTO {
	out := make([]dto.QuestionDTO, 0, len(questions))
	for i := range questions {
		var d dto.QuestionDTO
		copier.Copy(&d, &questions[i])
		d.Options = []string(questions[i].Options)
		out = append(out, d)
	}
	return out
}
