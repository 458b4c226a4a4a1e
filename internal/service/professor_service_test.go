package service

import (
	"errors"
	"testing"

	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"

	"gorm.io/gorm"
)

func newProfessorService(db *gorm.DB) *ProfessorService {
	return NewProfessorService(
		repository.NewProfessorRepository(db),
		repository.NewQuestionRepository(db),
	)
}

func TestProfessorCreate(t *testing.T) {
	db := openTestDB(t)
	svc := newProfessorService(db)

	p, err := svc.Create(ProfessorReq{Name: "  Silva ", Subject: " Mathematics "})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if p.Name != "Silva" || p.Subject != "Mathematics" {
		t.Errorf("created = %s/%s, want trimmed Silva/Mathematics", p.Name, p.Subject)
	}
	if !p.IsActive {
		t.Error("new professor should default to active")
	}

	// Same name may teach another subject; same pair is a conflict.
	if _, err := svc.Create(ProfessorReq{Name: "Silva", Subject: "Physics"}); err != nil {
		t.Errorf("same name, other subject: %v", err)
	}
	if _, err := svc.Create(ProfessorReq{Name: "Silva", Subject: "Mathematics"}); !errors.Is(err, util.ErrProfessorExists) {
		t.Errorf("duplicate pair: err = %v, want ErrProfessorExists", err)
	}

	var ve *util.ValidationError
	if _, err := svc.Create(ProfessorReq{Name: "   ", Subject: "Math"}); !errors.As(err, &ve) {
		t.Errorf("blank name: err = %v, want ValidationError", err)
	}
}

func TestProfessorUpdate(t *testing.T) {
	db := openTestDB(t)
	svc := newProfessorService(db)

	silva := seedProfessor(t, db, "Silva", "Mathematics")
	seedProfessor(t, db, "Souza", "Logic")

	updated, err := svc.Update(silva.ID, ProfessorReq{Name: "Silva", Subject: "Algebra", Email: "silva@uni.edu"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Subject != "Algebra" || updated.Email != "silva@uni.edu" {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := svc.Update(silva.ID, ProfessorReq{Name: "Souza", Subject: "Logic"}); !errors.Is(err, util.ErrProfessorExists) {
		t.Errorf("rename onto existing pair: err = %v, want ErrProfessorExists", err)
	}
	if _, err := svc.Update(9999, ProfessorReq{Name: "X", Subject: "Y"}); !errors.Is(err, util.ErrProfessorNotFound) {
		t.Errorf("update missing: err = %v, want ErrProfessorNotFound", err)
	}
}

func TestProfessorDeleteGuard(t *testing.T) {
	db := openTestDB(t)
	svc := newProfessorService(db)

	referenced := seedProfessor(t, db, "Silva", "Mathematics")
	seedQuestion(t, db, referenced.ID, "algebra", 0)
	free := seedProfessor(t, db, "Souza", "Logic")

	if err := svc.Delete(referenced.ID); !errors.Is(err, util.ErrProfessorReferenced) {
		t.Errorf("delete referenced: err = %v, want ErrProfessorReferenced", err)
	}
	if err := svc.Delete(free.ID); err != nil {
		t.Errorf("delete unreferenced: %v", err)
	}
	if _, err := svc.Get(free.ID); !errors.Is(err, util.ErrProfessorNotFound) {
		t.Errorf("get deleted: err = %v, want ErrProfessorNotFound", err)
	}
}

func TestProfessorReferralLookup(t *testing.T) {
	db := openTestDB(t)
	repo := repository.NewProfessorRepository(db)

	seedProfessor(t, db, "Silva", "Applied Mathematics")
	inactive := seedProfessor(t, db, "Moraes", "Chemistry")
	inactive.IsActive = false
	if err := repo.Update(inactive); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Case-insensitive substring match over active professors only.
	p, err := repo.FindBySubjectContains("mathematics")
	if err != nil {
		t.Fatalf("FindBySubjectContains: %v", err)
	}
	if p.Name != "Silva" {
		t.Errorf("match = %s, want Silva", p.Name)
	}

	if _, err := repo.FindBySubjectContains("chemistry"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("inactive professor matched: err = %v, want ErrRecordNotFound", err)
	}
}
