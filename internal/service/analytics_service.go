package service

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/policy"
	"github.com/lshigami/Quillback/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// openEndedSampleLimit caps how many verbatim open-ended answers are kept as
// illustrative samples.
const openEndedSampleLimit = 10

// AnalyticsService aggregates answers of complete responses into
// per-question distributions, and bundles full questionnaire exports.
type AnalyticsService interface {
	QuestionnaireAnalytics(actor *model.User, questionnaireID uint) (*dto.AnalyticsDTO, error)
	Export(actor *model.User, questionnaireID uint) (*dto.ExportDTO, error)
}

type analyticsService struct {
	questionnaireRepo repository.QuestionnaireRepository
	questionRepo      repository.QuestionRepository
	responseRepo      repository.ResponseRepository
	answerRepo        repository.AnswerRepository
}

func NewAnalyticsService(
	questionnaireRepo repository.QuestionnaireRepository,
	questionRepo repository.QuestionRepository,
	responseRepo repository.ResponseRepository,
	answerRepo repository.AnswerRepository,
) AnalyticsService {
	return &analyticsService{
		questionnaireRepo: questionnaireRepo,
		questionRepo:      questionRepo,
		responseRepo:      responseRepo,
		answerRepo:        answerRepo,
	}
}

// ComputeQuestionStatistics aggregates a question's answers. Only answers
// belonging to complete responses may be passed in; answers must be in
// creation order so the open-ended sample picks the first ten.
func ComputeQuestionStatistics(question *model.Question, answers []model.Answer) dto.QuestionStatsDTO {
	stats := dto.QuestionStatsDTO{TotalAnswers: len(answers)}

	switch question.QuestionType {
	case model.QuestionSingleChoice, model.QuestionMultipleChoice:
		// Multi-select answers are stored comma-joined; split them back
		// into individual option tokens.
		stats.AnswerDistribution = make(map[string]int)
		for _, answer := range answers {
			if answer.AnswerText == nil || *answer.AnswerText == "" {
				continue
			}
			for _, token := range strings.Split(*answer.AnswerText, ",") {
				token = strings.TrimSpace(token)
				if token != "" {
					stats.AnswerDistribution[token]++
				}
			}
		}
	case model.QuestionScale1To5:
		stats.AnswerDistribution = make(map[string]int)
		for _, answer := range answers {
			if answer.AnswerValue == nil {
				continue
			}
			key := strconv.Itoa(int(*answer.AnswerValue))
			stats.AnswerDistribution[key]++
		}
	case model.QuestionOpenEnded:
		for _, answer := range answers {
			if len(stats.SampleResponses) >= openEndedSampleLimit {
				break
			}
			if answer.AnswerText != nil && *answer.AnswerText != "" {
				stats.SampleResponses = append(stats.SampleResponses, *answer.AnswerText)
			}
		}
	}
	return stats
}

func (s *analyticsService) QuestionnaireAnalytics(actor *model.User, questionnaireID uint) (*dto.AnalyticsDTO, error) {
	questionnaire, questions, err := s.loadForEdit(actor, questionnaireID)
	if err != nil {
		return nil, err
	}

	analytics := make(map[string]dto.QuestionAnalyticsDTO, len(questions))
	for i := range questions {
		question := &questions[i]
		answers, err := s.answerRepo.FindForCompletedResponses(question.ID)
		if err != nil {
			log.Error().Err(err).Uint("questionID", question.ID).Msg("Failed to load answers for analytics")
			return nil, fmt.Errorf("error aggregating answers: %w", err)
		}
		analytics[strconv.FormatUint(uint64(question.ID), 10)] = dto.QuestionAnalyticsDTO{
			QuestionText: question.QuestionText,
			QuestionType: question.QuestionType,
			Stats:        ComputeQuestionStatistics(question, answers),
		}
	}

	questionnaireDTO, err := s.questionnaireDTO(questionnaire)
	if err != nil {
		return nil, err
	}
	stats, err := s.questionnaireStats(questionnaire)
	if err != nil {
		return nil, err
	}

	return &dto.AnalyticsDTO{
		Questionnaire: *questionnaireDTO,
		Analytics:     analytics,
		Stats:         *stats,
	}, nil
}

// Export bundles the questionnaire, its ordered questions and every complete
// response with its answers.
func (s *analyticsService) Export(actor *model.User, questionnaireID uint) (*dto.ExportDTO, error) {
	questionnaire, questions, err := s.loadForEdit(actor, questionnaireID)
	if err != nil {
		return nil, err
	}

	questionnaireDTO, err := s.questionnaireDTO(questionnaire)
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

	responses, err := s.responseRepo.ListCompleteWithAnswers(questionnaireID)
	if err != nil {
		log.Error().Err(err).Uint("questionnaireID", questionnaireID).Msg("Failed to load responses for export")
		return nil, fmt.Errorf("error fetching responses: %w", err)
	}

	export := dto.ExportDTO{
		Questionnaire: *questionnaireDTO,
		Questions:     questionsToDTO(questions),
		Responses:     make([]dto.ResponseDetailDTO, 0, len(responses)),
	}
	for i := range responses {
		response := &responses[i]
		detail := dto.ResponseDetailDTO{ResponseSummaryDTO: summarize(response, requiredIDs)}
		detail.Answers = make([]dto.ResponseAnswerDTO, 0, len(response.Answers))
		for j := range response.Answers {
			answer := &response.Answers[j]
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
		export.Responses = append(export.Responses, detail)
	}
	return &export, nil
}

func (s *analyticsService) loadForEdit(actor *model.User, questionnaireID uint) (*model.Questionnaire, []model.Question, error) {
	questionnaire, err := s.questionnaireRepo.FindByID(questionnaireID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	if !policy.CanEdit(actor, questionnaire) {
		return nil, nil, ErrPermissionDenied
	}
	questions, err := s.questionRepo.FindByQuestionnaireID(questionnaireID)
	if err != nil {
		return nil, nil, err
	}
	return questionnaire, questions, nil
}

func (s *analyticsService) questionnaireDTO(q *model.Questionnaire) (*dto.QuestionnaireDTO, error) {
	var d dto.QuestionnaireDTO
	if err := copier.Copy(&d, q); err != nil {
		return nil, fmt.Errorf("error preparing questionnaire record: %w", err)
	}
	questions, err := s.questionRepo.CountByQuestionnaireID(q.ID)
	if err != nil {
		return nil, err
	}
	complete, err := s.responseRepo.CountCompleteByQuestionnaire(q.ID)
	if err != nil {
		return nil, err
	}
	d.QuestionsCount = questions
	d.ResponsesCount = complete
	return &d, nil
}

func (s *analyticsService) questionnaireStats(q *model.Questionnaire) (*dto.QuestionnaireStatsDTO, error) {
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
	}, nil
}
