package service

import (
	"errors"
	"testing"

	"github.com/lshigami/Quillback/internal/dto"
	"github.com/lshigami/Quillback/internal/model"
	"github.com/lshigami/Quillback/internal/repository"
	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) QuestionService {
	return NewQuestionService(
		repository.NewQuestionRepository(db),
		repository.NewQuestionnaireRepository(db),
		db,
	)
}

func TestCreateQuestionAppendsToOrder(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	qn := seedQuestionnaire(t, db, creator.ID, nil)

	first, err := svc.Create(creator, qn.ID, dto.QuestionCreateRequest{
		QuestionText: "How was it?",
		QuestionType: model.QuestionOpenEnded,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	second, err := svc.Create(creator, qn.ID, dto.QuestionCreateRequest{
		QuestionText: "Pick one",
		QuestionType: model.QuestionSingleChoice,
		Options:      []string{"Yes", " No "},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if second.OrderIndex != first.OrderIndex+1 {
		t.Errorf("order indexes %d then %d, want consecutive", first.OrderIndex, second.OrderIndex)
	}
	if len(second.Options) != 2 || second.Options[1] != "No" {
		t.Errorf("Options = %v, want trimmed [Yes No]", second.Options)
	}
}

func TestCreateQuestionValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	stranger := seedUser(t, db, "stranger", model.RoleCreator)
	qn := seedQuestionnaire(t, db, creator.ID, nil)

	var verr *ValidationError
	_, err := svc.Create(creator, qn.ID, dto.QuestionCreateRequest{
		QuestionText: "Pick one",
		QuestionType: model.QuestionSingleChoice,
		Options:      []string{"", "   "},
	})
	if !errors.As(err, &verr) {
		t.Fatalf("choice question with no usable options: expected ValidationError, got %v", err)
	}

	_, err = svc.Create(creator, qn.ID, dto.QuestionCreateRequest{
		QuestionText: "   ",
		QuestionType: model.QuestionOpenEnded,
	})
	if !errors.As(err, &verr) {
		t.Fatalf("blank question text: expected ValidationError, got %v", err)
	}

	_, err = svc.Create(stranger, qn.ID, dto.QuestionCreateRequest{
		QuestionText: "How?",
		QuestionType: model.QuestionOpenEnded,
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("stranger creating question: got %v, want ErrPermissionDenied", err)
	}
}

func TestReorderQuestions(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	qn := seedQuestionnaire(t, db, creator.ID, nil)
	q1 := seedQuestion(t, db, qn.ID, model.QuestionOpenEnded, false, 0)
	q2 := seedQuestion(t, db, qn.ID, model.QuestionOpenEnded, false, 1)
	q3 := seedQuestion(t, db, qn.ID, model.QuestionOpenEnded, false, 2)

	other := seedQuestionnaire(t, db, creator.ID, nil)
	foreign := seedQuestion(t, db, other.ID, model.QuestionOpenEnded, false, 0)

	err := svc.Reorder(creator, qn.ID, dto.QuestionReorderRequest{
		QuestionIDs: []uint{q3.ID, foreign.ID, q1.ID, q2.ID},
	})
	if err != nil {
		t.Fatalf("reorder failed: %v", err)
	}

	ordered, err := svc.List(creator, qn.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	got := []uint{ordered[0].ID, ordered[1].ID, ordered[2].ID}
	want := []uint{q3.ID, q1.ID, q2.ID}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order after reorder = %v, want %v", got, want)
		}
	}

	// The foreign question keeps its own questionnaire's ordering untouched.
	var untouched model.Question
	if err := db.First(&untouched, foreign.ID).Error; err != nil {
		t.Fatalf("foreign question lookup failed: %v", err)
	}
	if untouched.OrderIndex != 0 {
		t.Errorf("foreign question order_index = %d, want 0", untouched.OrderIndex)
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	svc := newQuestionService(db)
	creator := seedUser(t, db, "creator", model.RoleCreator)
	qn := seedQuestionnaire(t, db, creator.ID, nil)
	q1 := seedQuestion(t, db, qn.ID, model.QuestionOpenEnded, false, 0)

	if err := svc.Delete(creator, q1.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(creator, q1.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("deleting twice: got %v, want ErrNotFound", err)
	}
}
