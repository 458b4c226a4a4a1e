package service

import (
	"errors"
	"testing"

	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"

	"gorm.io/gorm"
)

func newExamService(db *gorm.DB) *ExamService {
	return NewExamService(
		repository.NewExamRepository(db),
		repository.NewQuestionRepository(db),
	)
}

func TestExamCreate(t *testing.T) {
	db := openTestDB(t)
	svc := newExamService(db)

	prof := seedProfessor(t, db, "Silva", "Mathematics")
	q1 := seedQuestion(t, db, prof.ID, "algebra", 0)
	q2 := seedQuestion(t, db, prof.ID, "geometry", 1)

	exam, err := svc.Create(ExamReq{
		Title:       "Midterm",
		TimeLimit:   45,
		QuestionIDs: []uint{q2.ID, q1.ID},
		Activate:    true,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if exam.Status != model.ExamActive {
		t.Errorf("status = %s, want active", exam.Status)
	}
	if exam.TotalQuestions != 2 {
		t.Errorf("TotalQuestions = %d, want 2", exam.TotalQuestions)
	}

	// Question order is the request order, not the id order.
	_, links, err := svc.Get(exam.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(links) != 2 || links[0].QuestionID != q2.ID || links[1].QuestionID != q1.ID {
		t.Errorf("links = %+v, want [%d %d]", links, q2.ID, q1.ID)
	}
	if links[0].Question == nil || links[0].Question.ID != q2.ID {
		t.Errorf("link question not preloaded: %+v", links[0])
	}
}

func TestExamCreateValidation(t *testing.T) {
	db := openTestDB(t)
	svc := newExamService(db)

	prof := seedProfessor(t, db, "Silva", "Mathematics")
	q := seedQuestion(t, db, prof.ID, "algebra", 0)

	var ve *util.ValidationError
	if _, err := svc.Create(ExamReq{Title: "  ", QuestionIDs: []uint{q.ID}}); !errors.As(err, &ve) {
		t.Errorf("blank title: err = %v, want ValidationError", err)
	}
	if _, err := svc.Create(ExamReq{Title: "t", QuestionIDs: nil}); !errors.As(err, &ve) {
		t.Errorf("no questions: err = %v, want ValidationError", err)
	}
	if _, err := svc.Create(ExamReq{Title: "t", QuestionIDs: []uint{q.ID, q.ID}}); !errors.As(err, &ve) {
		t.Errorf("duplicate question: err = %v, want ValidationError", err)
	}
	if _, err := svc.Create(ExamReq{Title: "t", TimeLimit: -1, QuestionIDs: []uint{q.ID}}); !errors.As(err, &ve) {
		t.Errorf("negative time limit: err = %v, want ValidationError", err)
	}
	if _, err := svc.Create(ExamReq{Title: "t", QuestionIDs: []uint{9999}}); !errors.Is(err, util.ErrQuestionNotFound) {
		t.Errorf("unknown question: err = %v, want ErrQuestionNotFound", err)
	}
}

func TestExamStatusAndDelete(t *testing.T) {
	db := openTestDB(t)
	svc := newExamService(db)

	prof := seedProfessor(t, db, "Silva", "Mathematics")
	q := seedQuestion(t, db, prof.ID, "algebra", 0)
	exam := seedExam(t, db, model.ExamDraft, 0, q)

	activated, err := svc.UpdateStatus(exam.ID, model.ExamActive)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if activated.Status != model.ExamActive {
		t.Errorf("status = %s, want active", activated.Status)
	}

	var ve *util.ValidationError
	if _, err := svc.UpdateStatus(exam.ID, "published"); !errors.As(err, &ve) {
		t.Errorf("bogus status: err = %v, want ValidationError", err)
	}
	if _, err := svc.UpdateStatus(9999, model.ExamActive); !errors.Is(err, util.ErrExamNotFound) {
		t.Errorf("missing exam: err = %v, want ErrExamNotFound", err)
	}

	if err := svc.Delete(exam.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := svc.Get(exam.ID); !errors.Is(err, util.ErrExamNotFound) {
		t.Errorf("get deleted: err = %v, want ErrExamNotFound", err)
	}

	// The question links go with the exam.
	var linkCount int64
	if err := db.Model(&model.ExamQuestion{}).Where("exam_id = ?", exam.ID).Count(&linkCount).Error; err != nil {
		t.Fatalf("count links: %v", err)
	}
	if linkCount != 0 {
		t.Errorf("links remaining = %d, want 0", linkCount)
	}
}

func TestExamListByStatus(t *testing.T) {
	db := openTestDB(t)
	svc := newExamService(db)

	prof := seedProfessor(t, db, "Silva", "Mathematics")
	q := seedQuestion(t, db, prof.ID, "algebra", 0)
	seedExam(t, db, model.ExamDraft, 0, q)
	seedExam(t, db, model.ExamActive, 0, q)
	seedExam(t, db, model.ExamActive, 0, q)

	active, total, err := svc.List(model.ExamActive, 1, 20)
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if total != 2 || len(active) != 2 {
		t.Errorf("active = %d/%d, want 2", len(active), total)
	}

	all, total, err := svc.List("", 1, 20)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if total != 3 || len(all) != 3 {
		t.Errorf("all = %d/%d, want 3", len(all), total)
	}
}
