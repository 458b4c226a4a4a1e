package service

import (
	"encoding/json"
	"fmt"
	"testing"

	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB gives each test an isolated in-memory database. TranslateError
// must be on: the session and report services detect uniqueness races
// through gorm.ErrDuplicatedKey.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
	// A single connection keeps every statement on the same :memory: database.
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&model.User{},
		&model.Professor{},
		&model.Question{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamResult{},
		&model.ExamAnswer{},
		&model.ExamReport{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}

	return db
}

func seedUser(t *testing.T, db *gorm.DB, role model.UserRole) *model.User {
	t.Helper()

	user := &model.User{
		Name:     "Test " + string(role),
		Email:    fmt.Sprintf("%s-%s@example.com", role, model.GenerateUUID()[:8]),
		Password: "irrelevant",
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedProfessor(t *testing.T, db *gorm.DB, name, subject string) *model.Professor {
	t.Helper()

	professor := &model.Professor{Name: name, Subject: subject, IsActive: true}
	if err := db.Create(professor).Error; err != nil {
		t.Fatalf("seed professor: %v", err)
	}
	return professor
}

func seedQuestion(t *testing.T, db *gorm.DB, professorID uint, indicator string, correct int) *model.Question {
	t.Helper()

	alts, err := json.Marshal([]string{"alpha", "beta", "gamma", "delta"})
	if err != nil {
		t.Fatalf("marshal alternatives: %v", err)
	}
	question := &model.Question{
		Text:                 "Question on " + indicator,
		Alternatives:         alts,
		CorrectAnswer:        correct,
		EducationalIndicator: indicator,
		IsActive:             true,
		ProfessorID:          professorID,
	}
	if err := db.Create(question).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

func seedExam(t *testing.T, db *gorm.DB, status model.ExamStatus, timeLimit int, questions ...*model.Question) *model.Exam {
	t.Helper()

	exam := &model.Exam{
		Title:          "Seeded exam",
		Status:         status,
		TimeLimit:      timeLimit,
		TotalQuestions: len(questions),
	}
	if err := db.Create(exam).Error; err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	for i, q := range questions {
		link := &model.ExamQuestion{ExamID: exam.ID, QuestionID: q.ID, Position: i + 1}
		if err := db.Create(link).Error; err != nil {
			t.Fatalf("seed exam question: %v", err)
		}
	}
	return exam
}

func newSessionService(db *gorm.DB) *ExamSessionService {
	return NewExamSessionService(
		repository.NewExamResultRepository(db),
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
	)
}

func newReportService(db *gorm.DB) *ReportService {
	return NewReportService(
		repository.NewExamReportRepository(db),
		repository.NewExamResultRepository(db),
		repository.NewProfessorRepository(db),
	)
}
