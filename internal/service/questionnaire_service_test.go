package service

import (
	"errors"
	"testing"

	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"gorm.io/gorm"
)

func newQuestionnaireService(db *gorm.DB) QuestionnaireService {
	return NewQuestionnaireService(
		repository.NewQuestionnaireRepository(db),
		repository.NewQuestionRepository(db),
		repository.NewResponseRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestCreateQuestionnaire(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionnaireService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	plain := seedUser(t, db, "plain", model.RoleUser)

	result, err := svc.Create(creator, dto.QuestionnaireCreateRequest{Title: "Feedback"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !result.IsActive || !result.IsPublic {
		t.Errorf("new questionnaire should default to active and public: %+v", result)
	}

	hidden := false
	private, err := svc.Create(creator, dto.QuestionnaireCreateRequest{Title: "Internal", IsPublic: &hidden})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if private.IsPublic {
		t.Error("explicit is_public=false was ignored")
	}

	// The flag must survive the INSERT, not just the in-memory struct.
	var stored model.Questionnaire
	if err := db.First(&stored, private.ID).Error; err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	if stored.IsPublic {
		t.Error("is_public=false was not persisted")
	}
	if _, err := svc.Get(nil, private.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("anonymous fetching stored-private questionnaire: got %v, want ErrPermissionDenied", err)
	}

	if _, err := svc.Create(plain, dto.QuestionnaireCreateRequest{Title: "Nope"}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("plain user creating questionnaire: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Create(nil, dto.QuestionnaireCreateRequest{Title: "Nope"}); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("anonymous creating questionnaire: got %v, want ErrPermissionDenied", err)
	}
}

func TestGetQuestionnaireAccess(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionnaireService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	stranger := seedUser(t, db, "stranger", model.RoleUser)
	admin := seedUser(t, db, "root", model.RoleAdmin)

	private := seedQuestionnaire(t, db, creator.ID, func(q *model.Questionnaire) {
		q.IsPublic = false
	})
	seedQuestion(t, db, private.ID, model.QuestionOpenEnded, false, 2)
	seedQuestion(t, db, private.ID, model.QuestionOpenEnded, false, 1)

	if _, err := svc.Get(nil, private.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("anonymous fetching private questionnaire: got %v, want ErrPermissionDenied", err)
	}
	if _, err := svc.Get(stranger, private.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("stranger fetching private questionnaire: got %v, want ErrPermissionDenied", err)
	}

	for _, actor := range []*model.User{creator, admin} {
		detail, err := svc.Get(actor, private.ID)
		if err != nil {
			t.Fatalf("%s fetching private questionnaire failed: %v", actor.Username, err)
		}
		if len(detail.Questions) != 2 {
			t.Fatalf("detail has %d questions, want 2", len(detail.Questions))
		}
		if detail.Questions[0].OrderIndex > detail.Questions[1].OrderIndex {
			t.Error("questions not sorted by order index")
		}
	}

	if _, err := svc.Get(creator, 9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing questionnaire: got %v, want ErrNotFound", err)
	}
}

func TestGetQuestionnaireReportsUserResponse(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionnaireService(db)
	responseSvc := newResponseService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	alice := seedUser(t, db, "alice", model.RoleUser)
	qn := seedQuestionnaire(t, db, creator.ID, nil)
	q1 := seedQuestion(t, db, qn.ID, model.QuestionOpenEnded, false, 1)

	before, err := svc.Get(alice, qn.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if before.UserResponse != nil {
		t.Fatal("user response reported before any submission")
	}

	if _, err := responseSvc.Submit(alice, qn.ID, answers(
		dto.AnswerInput{QuestionID: q1.ID, Values: []string{"done"}},
	), RequestMeta{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	after, err := svc.Get(alice, qn.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if after.UserResponse == nil || !after.UserResponse.IsComplete {
		t.Fatalf("completed response not reported: %+v", after.UserResponse)
	}
	if after.UserResponse.Respondent.Type != "registered" {
		t.Errorf("Respondent.Type = %q, want registered", after.UserResponse.Respondent.Type)
	}
	if after.UserResponse.CompletionPercentage != 100 {
		t.Errorf("CompletionPercentage = %v, want 100", after.UserResponse.CompletionPercentage)
	}
	if after.ResponsesCount != 1 {
		t.Errorf("ResponsesCount = %d, want 1", after.ResponsesCount)
	}
}

func TestListAccessibleQuestionnaires(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionnaireService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	other := seedUser(t, db, "other", model.RoleCreator)

	seedQuestionnaire(t, db, creator.ID, nil) // public
	seedQuestionnaire(t, db, creator.ID, func(q *model.Questionnaire) {
		q.IsPublic = false
	})
	seedQuestionnaire(t, db, other.ID, func(q *model.Questionnaire) {
		q.IsPublic = false
	})

	anon, err := svc.List(nil, 1, 10)
	if err != nil {
		t.Fatalf("anonymous list failed: %v", err)
	}
	if anon.Total != 1 {
		t.Errorf("anonymous sees %d questionnaires, want 1 (public only)", anon.Total)
	}

	own, err := svc.List(creator, 1, 10)
	if err != nil {
		t.Fatalf("creator list failed: %v", err)
	}
	if own.Total != 2 {
		t.Errorf("creator sees %d questionnaires, want 2 (public plus own private)", own.Total)
	}
}

func TestDeleteQuestionnaireCascades(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionnaireService(db)
	responseSvc := newResponseService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	alice := seedUser(t, db, "alice", model.RoleUser)
	qn := seedQuestionnaire(t, db, creator.ID, nil)
	q1 := seedQuestion(t, db, qn.ID, model.QuestionOpenEnded, false, 1)

	if _, err := responseSvc.Submit(alice, qn.ID, answers(
		dto.AnswerInput{QuestionID: q1.ID, Values: []string{"bye"}},
	), RequestMeta{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if err := svc.Delete(alice, qn.ID); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("non-owner delete: got %v, want ErrPermissionDenied", err)
	}
	if err := svc.Delete(creator, qn.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	if n := countRows(t, db, &model.Question{}); n != 0 {
		t.Errorf("questions left after questionnaire delete: %d", n)
	}
	if n := countRows(t, db, &model.Response{}); n != 0 {
		t.Errorf("responses left after questionnaire delete: %d", n)
	}
	if n := countRows(t, db, &model.Answer{}); n != 0 {
		t.Errorf("answers left after questionnaire delete: %d", n)
	}
}

func TestSiteStats(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionnaireService(db)
	responseSvc := newResponseService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	alice := seedUser(t, db, "alice", model.RoleUser)

	public := seedQuestionnaire(t, db, creator.ID, nil)
	seedQuestionnaire(t, db, creator.ID, func(q *model.Questionnaire) {
		q.IsPublic = false
	})
	q1 := seedQuestion(t, db, public.ID, model.QuestionOpenEnded, false, 1)
	if _, err := responseSvc.Submit(alice, public.ID, answers(
		dto.AnswerInput{QuestionID: q1.ID, Values: []string{"hi"}},
	), RequestMeta{}); err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	stats, err := svc.SiteStats()
	if err != nil {
		t.Fatalf("site stats failed: %v", err)
	}
	if stats.TotalQuestionnaires != 1 {
		t.Errorf("TotalQuestionnaires = %d, want 1 (public active only)", stats.TotalQuestionnaires)
	}
	if stats.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, want 1", stats.TotalResponses)
	}
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
	}
	if len(stats.RecentQuestionnaires) != 1 {
		t.Errorf("RecentQuestionnaires = %d entries, want 1", len(stats.RecentQuestionnaires))
	}
}
