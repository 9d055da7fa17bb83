package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/lshigami/Quillback/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens an isolated in-memory database. The shared-cache DSN keeps
// the database alive across the pool's connections for the test's duration.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// _foreign_keys turns on sqlite FK enforcement so the cascade
	// constraints behave as they do on postgres.
	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared&_foreign_keys=on", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Questionnaire{},
		&model.Question{},
		&model.Response{},
		&model.Answer{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username, role string) *model.User {
	t.Helper()
	user := &model.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		Role:         role,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user %s: %v", username, err)
	}
	return user
}

func seedQuestionnaire(t *testing.T, db *gorm.DB, creatorID uint, mutate func(*model.Questionnaire)) *model.Questionnaire {
	t.Helper()
	q := &model.Questionnaire{
		Title:     "Team survey",
		CreatorID: creatorID,
		IsActive:  true,
		IsPublic:  true,
	}
	if mutate != nil {
		mutate(q)
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("failed to seed questionnaire: %v", err)
	}
	return q
}

func seedQuestion(t *testing.T, db *gorm.DB, questionnaireID uint, questionType string, required bool, order int, options ...string) *model.Question {
	t.Helper()
	q := &model.Question{
		QuestionnaireID: questionnaireID,
		QuestionText:    fmt.Sprintf("Question %d", order),
		QuestionType:    questionType,
		IsRequired:      required,
		OrderIndex:      order,
	}
	q.SetOptions(options)
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("failed to seed question: %v", err)
	}
	return q
}

func countRows(t *testing.T, db *gorm.DB, value interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(value).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
