package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/policy"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// RequestMeta carries respondent provenance captured at the HTTP boundary.
type RequestMeta struct {
	IPAddress string
	UserAgent string
}

// ResponseService runs the response intake state machine
// (NoResponse -> Draft -> Complete) and serves response listings for
// questionnaire owners.
type ResponseService interface {
	Submit(actor *model.User, questionnaireID uint, req dto.ResponseSubmitRequest, meta RequestMeta) (*dto.SubmitResultDTO, error)
	ListComplete(actor *model.User, questionnaireID uint, page, perPage int) (*dto.Page[dto.ResponseSummaryDTO], error)
	Get(actor *model.User, responseID uint) (*dto.ResponseDetailDTO, error)
	Delete(actor *model.User, responseID uint) error
}

type responseService struct {
	questionnaireRepo repository.QuestionnaireRepository
	questionRepo      repository.QuestionRepository
	responseRepo      repository.ResponseRepository
	answerRepo        repository.AnswerRepository
	db                *gorm.DB
}

func NewResponseService(
	questionnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	answerRepo repository.AnswerRepository,
	db *gorm.DB,
) ResponseService {
	return &responseService{
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		responseRepo:      responseRepo,
		answerRepo:        answerRepo,
		db:                db,
	}
}

// Submit processes one form submission for a questionnaire. The whole attempt
// runs in a single transaction: a final submission that fails required-field
// validation persists nothing.
func (s *responseService) Submit(actor *model.User, questionnaireID uint, req dto.ResponseSubmitRequest, meta RequestMeta) (*dto.SubmitResultDTO, error) {
	questionnaire, err := s.questionnaireRepo.FindByIDWithQuestions(questionnaireID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(questionnaire.Questions) == 0 {
		return nil, fmt.Errorf("questionnaire %d has no questions, submission is not possible", questionnaireID)
	}

	hasCompleted := false
	if actor != nil {
		hasCompleted, err = s.responseRepo.HasCompleteResponse(questionnaireID, actor.ID)
		if err != nil {
			return nil, err
		}
	}
	if !policy.CanRespond(actor, questionnaire, hasCompleted) {
		return nil, ErrPermissionDenied
	}

	// One submitted value set per question; answers for foreign questions
	// are dropped.
	submitted := make(map[uint][]string, len(req.Answers))
	for _, in := range req.Answers {
		submitted[in.QuestionID] = in.Values
	}

	var response *model.Response
	err = s.db.Transaction(func(tx *gorm.DB) error {
		response = nil
		// Authenticated respondents resume their single open draft.
		// Anonymous respondents cannot be identified across requests and
		// always start fresh.
		if actor != nil {
			var draft model.Response
			err := tx.Where("questionnaire_id = ? AND user_id = ? AND is_complete = ?",
				questionnaireID, actor.ID, false).First(&draft).Error
			if err == nil {
				response = &draft
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
		if response == nil {
			response = &model.Response{
				QuestionnaireID: questionnaireID,
				SubmittedAt:     time.Now(),
				IsComplete:      false,
				IPAddress:       meta.IPAddress,
				UserAgent:       meta.UserAgent,
			}
			if actor != nil {
				response.UserID = &actor.ID
			}
			if err := tx.Create(response).Error; err != nil {
				return fmt.Errorf("failed to create response record: %w", err)
			}
		}

		verr := newValidationError()
		for i := range questionnaire.Questions {
			question := &questionnaire.Questions[i]
			value := coerceSubmittedValue(question, submitted[question.ID])

			var answer *model.Answer
			if value != "" {
				var err error
				answer, err = upsertAnswer(tx, response.ID, question, value)
				if err != nil {
					return err
				}
			}

			// Required questions must end up with a usable coerced value:
			// a missing field fails, and so does scale input that did not
			// parse. Validation gates the Complete transition only.
			if !req.SaveDraft && question.IsRequired {
				if answer == nil || !answer.HasValue() {
					verr.add(fmt.Sprintf("question_%d", question.ID),
						fmt.Sprintf("Question %q is required.", question.QuestionText))
				}
			}
		}

		if len(verr.Fields) > 0 {
			// Rolls back the whole attempt, including any answers written
			// above and a just-created draft row.
			return verr
		}

		if req.SaveDraft {
			response.IsComplete = false
		} else {
			response.IsComplete = true
			response.SubmittedAt = time.Now()
		}
		return tx.Save(response).Error
	})
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, verr
		}
		log.Error().Err(err).Uint("questionnaireID", questionnaireID).Msg("Response submission failed")
		return nil, err
	}

	if response.IsComplete {
		log.Info().Uint("questionnaireID", questionnaireID).Interface("userID", response.UserID).
			Msg("Response submitted")
	} else {
		log.Info().Uint("questionnaireID", questionnaireID).Uint("responseID", response.ID).
			Msg("Draft saved")
	}

	pct, err := s.completionPercentage(response.ID, questionnaire.ID)
	if err != nil {
		return nil, err
	}
	return &dto.SubmitResultDTO{
		ResponseID:           response.ID,
		IsComplete:           response.IsComplete,
		CompletionPercentage: pct,
	}, nil
}

func (s *responseService) ListComplete(actor *model.User, questionnaireID uint, page, perPage int) (*dto.Page[dto.ResponseSummaryDTO], error) {
	questionnaire, err := s.loadQuestionnaire(questionnaireID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, questionnaire) {
		return nil, ErrPermissionDenied
	}

	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}
	responses, total, err := s.responseRepo.ListComplete(questionnaireID, (page-1)*perPage, perPage)
	if err != nil {
		log.Error().Err(err).Uint("questionnaireID", questionnaireID).Msg("Failed to list responses")
		return nil, fmt.Errorf("error fetching responses: %w", err)
	}

	requiredIDs, err := s.requiredQuestionIDs(questionnaireID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.ResponseSummaryDTO, 0, len(responses))
	for i := range responses {
		resp := &responses[i]
		answers, err := s.answerRepo.FindByResponseID(resp.ID)
		if err != nil {
			return nil, err
		}
		resp.Answers = answers
		items = append(items, summarize(resp, requiredIDs))
	}
	return &dto.Page[dto.ResponseSummaryDTO]{Items: items, Total: total, Page: page, PerPage: perPage}, nil
}

func (s *responseService) Get(actor *model.User, responseID uint) (*dto.ResponseDetailDTO, error) {
	response, err := s.responseRepo.FindByIDWithAnswers(responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	questionnaire, err := s.loadQuestionnaire(response.QuestionnaireID)
	if err != nil {
		return nil, err
	}
	if !policy.CanEdit(actor, questionnaire) {
		return nil, ErrPermissionDenied
	}

	questions, err := s.questionRepo.FindByQuestionnaireID(questionnaire.ID)
	if err != nil {
		return nil, err
	}
	questionMap := make(map[uint]*model.Question, len(questions))
	var requiredIDs []uint
	for i := range questions {
		questionMap[questions[i].ID] = &questions[i]
		if questions[i].IsRequired {
			requiredIDs = append(requiredIDs, questions[i].ID)
		}
	}

	detail := dto.ResponseDetailDTO{ResponseSummaryDTO: summarize(response, requiredIDs)}
	detail.Answers = make([]dto.ResponseAnswerDTO, 0, len(response.Answers))
	for i := range response.Answers {
		answer := &response.Answers[i]
		var answerDTO dto.AnswerDTO
		copier.Copy(&answerDTO, answer)
		entry := dto.ResponseAnswerDTO{QuestionID: answer.QuestionID, Answer: answerDTO}
		if question, ok := questionMap[answer.QuestionID]; ok {
			entry.QuestionText = question.QuestionText
			entry.QuestionType = question.QuestionType
			entry.Answer.DisplayValue = answer.DisplayValue(question.QuestionType)
		}
		detail.Answers = append(detail.Answers, entry)
	}
	return &detail, nil
}

func (s *responseService) Delete(actor *model.User, responseID uint) error {
	response, err := s.responseRepo.FindByID(responseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	questionnaire, err := s.loadQuestionnaire(response.QuestionnaireID)
	if err != nil {
		return err
	}
	if !policy.CanEdit(actor, questionnaire) {
		return ErrPermissionDenied
	}
	if err := s.responseRepo.Delete(responseID); err != nil {
		log.Error().Err(err).Uint("responseID", responseID).Msg("Failed to delete response")
		return fmt.Errorf("database error deleting response: %w", err)
	}
	log.Info().Uint("responseID", responseID).Str("actor", actor.Username).Msg("Response deleted")
	return nil
}

// coerceSubmittedValue flattens the submitted values for a question into the
// single stored string. Multi-select options are joined with a comma and
// space; the aggregator re-splits them on the same separator.
func coerceSubmittedValue(question *model.Question, values []string) string {
	if len(values) == 0 {
		return ""
	}
	if question.QuestionType == model.QuestionMultipleChoice {
		var selected []string
		for _, v := range values {
			if v != "" {
				selected = append(selected, v)
			}
		}
		return strings.Join(selected, ", ")
	}
	return values[0]
}

func upsertAnswer(tx *gorm.DB, responseID uint, question *model.Question, value string) (*model.Answer, error) {
	var answer model.Answer
	err := tx.Where("response_id = ? AND question_id = ?", responseID, question.ID).First(&answer).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		answer = model.Answer{ResponseID: responseID, QuestionID: question.ID}
	} else if err != nil {
		return nil, err
	}
	answer.SetValue(value, question.QuestionType)
	if err := tx.Save(&answer).Error; err != nil {
		return nil, err
	}
	return &answer, nil
}

func (s *responseService) completionPercentage(responseID, questionnaireID uint) (float64, error) {
	response, err := s.responseRepo.FindByIDWithAnswers(responseID)
	if err != nil {
		return 0, err
	}
	requiredIDs, err := s.requiredQuestionIDs(questionnaireID)
	if err != nil {
		return 0, err
	}
	return response.CompletionPercentage(requiredIDs), nil
}

func (s *responseService) requiredQuestionIDs(questionnaireID uint) ([]uint, error) {
	required, err := s.questionRepo.FindRequiredByQuestionnaireID(questionnaireID)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(required))
	for _, q := range required {
		ids = append(ids, q.ID)
	}
	return ids, nil
}

func (s *responseService) loadQuestionnaire(id uint) (*model.Questionnaire, error) {
	q, err := s.questionnaireRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func summarize(response *model.Response, requiredIDs []uint) dto.ResponseSummaryDTO {
	var summary dto.ResponseSummaryDTO
	copier.Copy(&summary, response)
	summary.CompletionPercentage = response.CompletionPercentage(requiredIDs)
	summary.Respondent = response.Respondent()
	return summary
}
