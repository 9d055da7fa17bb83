package service

import (
	"fmt"
	"testing"

	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"gorm.io/gorm"
)

func textAnswer(s string) model.Answer {
	return model.Answer{AnswerText: &s}
}

func scaleAnswer(v float64) model.Answer {
	return model.Answer{AnswerValue: &v}
}

func TestComputeQuestionStatisticsChoice(t *testing.T) {
	question := &model.Question{QuestionType: model.QuestionMultipleChoice}
	// Multi-select answers come back comma-joined, exactly as stored.
	stats := ComputeQuestionStatistics(question, []model.Answer{
		textAnswer("Red, Blue"),
		textAnswer("Blue"),
		textAnswer(""),
	})
	if stats.TotalAnswers != 3 {
		t.Errorf("TotalAnswers = %d, want 3", stats.TotalAnswers)
	}
	if stats.AnswerDistribution["Red"] != 1 || stats.AnswerDistribution["Blue"] != 2 {
		t.Errorf("AnswerDistribution = %v, want Red:1 Blue:2", stats.AnswerDistribution)
	}
	if len(stats.AnswerDistribution) != 2 {
		t.Errorf("empty answers must not contribute tokens: %v", stats.AnswerDistribution)
	}
}

func TestComputeQuestionStatisticsScale(t *testing.T) {
	question := &model.Question{QuestionType: model.QuestionScale1To5}
	stats := ComputeQuestionStatistics(question, []model.Answer{
		scaleAnswer(4),
		scaleAnswer(4),
		scaleAnswer(2),
		{AnswerValue: nil},
	})
	if stats.AnswerDistribution["4"] != 2 || stats.AnswerDistribution["2"] != 1 {
		t.Errorf("AnswerDistribution = %v, want 4:2 2:1", stats.AnswerDistribution)
	}
}

func TestComputeQuestionStatisticsOpenEndedSampleCap(t *testing.T) {
	question := &model.Question{QuestionType: model.QuestionOpenEnded}
	var all []model.Answer
	for i := 0; i < 15; i++ {
		all = append(all, textAnswer(fmt.Sprintf("comment %d", i)))
	}
	stats := ComputeQuestionStatistics(question, all)
	if stats.TotalAnswers != 15 {
		t.Errorf("TotalAnswers = %d, want 15", stats.TotalAnswers)
	}
	if len(stats.SampleResponses) != openEndedSampleLimit {
		t.Fatalf("SampleResponses = %d entries, want %d", len(stats.SampleResponses), openEndedSampleLimit)
	}
	if stats.SampleResponses[0] != "comment 0" {
		t.Errorf("samples should keep submission order, first = %q", stats.SampleResponses[0])
	}
}

func newAnalyticsService(db *gorm.DB) AnalyticsService {
	return NewAnalyticsService(
		repository.NewQuestionnaireRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResponseRepository(db),
		repository.NewAnswerRepository(db),
	)
}

func TestQuestionnaireAnalyticsExcludesDrafts(t *testing.T) {
	db := newTestDB(t)
	responseSvc := newResponseService(db)
	analyticsSvc := newAnalyticsService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	alice := seedUser(t, db, "alice", model.RoleUser)
	bob := seedUser(t, db, "bob", model.RoleUser)
	qn := seedQuestionnaire(t, db, creator.ID, nil)
	choice := seedQuestion(t, db, qn.ID, model.QuestionSingleChoice, false, 1, "Yes", "No")

	if _, err := responseSvc.Submit(alice, qn.ID, answers(
		dto.AnswerInput{QuestionID: choice.ID, Values: []string{"Yes"}},
	), RequestMeta{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	draft := answers(dto.AnswerInput{QuestionID: choice.ID, Values: []string{"No"}})
	draft.SaveDraft = true
	if _, err := responseSvc.Submit(bob, qn.ID, draft, RequestMeta{}); err != nil {
		t.Fatalf("draft save failed: %v", err)
	}

	result, err := analyticsSvc.QuestionnaireAnalytics(creator, qn.ID)
	if err != nil {
		t.Fatalf("analytics failed: %v", err)
	}

	key := fmt.Sprint(choice.ID)
	qa, ok := result.Analytics[key]
	if !ok {
		t.Fatalf("no analytics entry for question %s: %v", key, result.Analytics)
	}
	if qa.Stats.TotalAnswers != 1 {
		t.Errorf("TotalAnswers = %d, want 1 (draft answers excluded)", qa.Stats.TotalAnswers)
	}
	if qa.Stats.AnswerDistribution["Yes"] != 1 || qa.Stats.AnswerDistribution["No"] != 0 {
		t.Errorf("AnswerDistribution = %v, want only the completed Yes", qa.Stats.AnswerDistribution)
	}

	// One complete out of two total responses.
	if result.Stats.CompletionRate != 50 {
		t.Errorf("CompletionRate = %v, want 50", result.Stats.CompletionRate)
	}
	if result.Questionnaire.ResponsesCount != 1 {
		t.Errorf("ResponsesCount = %d, want 1", result.Questionnaire.ResponsesCount)
	}
}

func TestExportBundlesCompleteResponses(t *testing.T) {
	db := newTestDB(t)
	responseSvc := newResponseService(db)
	analyticsSvc := newAnalyticsService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	alice := seedUser(t, db, "alice", model.RoleUser)
	qn := seedQuestionnaire(t, db, creator.ID, nil)
	scale := seedQuestion(t, db, qn.ID, model.QuestionScale1To5, false, 1)

	if _, err := responseSvc.Submit(alice, qn.ID, answers(
		dto.AnswerInput{QuestionID: scale.ID, Values: []string{"5"}},
	), RequestMeta{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	export, err := analyticsSvc.Export(creator, qn.ID)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if len(export.Questions) != 1 || len(export.Responses) != 1 {
		t.Fatalf("export has %d questions and %d responses, want 1 and 1", len(export.Questions), len(export.Responses))
	}
	answersOut := export.Responses[0].Answers
	if len(answersOut) != 1 {
		t.Fatalf("exported response has %d answers, want 1", len(answersOut))
	}
	if answersOut[0].Answer.DisplayValue != "5/5" {
		t.Errorf("DisplayValue = %q, want 5/5", answersOut[0].Answer.DisplayValue)
	}
}
