package service

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/util"
)

func runAttempt(t *testing.T, svc *ExamSessionService, student *model.User, exam *model.Exam, picks map[uint]int) *model.ExamResult {
	t.Helper()

	session, err := svc.Start(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	for qid, selected := range picks {
		if _, err := svc.Answer(session.Result.ID, student.ID, qid, selected, 5); err != nil {
			t.Fatalf("Answer(%d): %v", qid, err)
		}
	}
	result, err := svc.Submit(session.Result.ID, student.ID)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	return result
}

func TestGenerateReport(t *testing.T) {
	db := openTestDB(t)
	sessions := newSessionService(db)
	reports := newReportService(db)

	student := seedUser(t, db, model.Student)
	mathProf := seedProfessor(t, db, "Silva", "Mathematics")
	logicProf := seedProfessor(t, db, "Souza", "Logic")

	// algebra: 4 of 5 correct (80, strength); logic: 1 of 5 correct (20, weakness).
	var algebra, logic []*model.Question
	for i := 0; i < 5; i++ {
		algebra = append(algebra, seedQuestion(t, db, mathProf.ID, "algebra", 0))
		logic = append(logic, seedQuestion(t, db, logicProf.ID, "logic", 0))
	}
	exam := seedExam(t, db, model.ExamActive, 0,
		algebra[0], algebra[1], algebra[2], algebra[3], algebra[4],
		logic[0], logic[1], logic[2], logic[3], logic[4])

	picks := map[uint]int{}
	for i, q := range algebra {
		if i < 4 {
			picks[q.ID] = 0
		} else {
			picks[q.ID] = 1
		}
	}
	for i, q := range logic {
		if i < 1 {
			picks[q.ID] = 0
		} else {
			picks[q.ID] = 1
		}
	}

	result := runAttempt(t, sessions, student, exam, picks)
	if result.Percentage != 50 {
		t.Fatalf("percentage = %d, want 50", result.Percentage)
	}

	report, err := reports.Generate(result.ID, student.ID, model.Student)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var breakdown map[string]interface{}
	if err := json.Unmarshal(report.ContentBreakdown, &breakdown); err != nil {
		t.Fatalf("breakdown json: %v", err)
	}
	if got := breakdown["algebra"]; got != float64(80) {
		t.Errorf("algebra = %v, want 80", got)
	}
	if got := breakdown["logic"]; got != float64(20) {
		t.Errorf("logic = %v, want 20", got)
	}
	subjects, ok := breakdown["subjects"].(map[string]interface{})
	if !ok {
		t.Fatalf("subjects missing from breakdown: %v", breakdown)
	}
	if subjects["Mathematics"] != float64(80) || subjects["Logic"] != float64(20) {
		t.Errorf("subjects = %v, want Mathematics:80 Logic:20", subjects)
	}

	var strengths, weaknesses, recommendations []string
	if err := json.Unmarshal(report.Strengths, &strengths); err != nil {
		t.Fatalf("strengths json: %v", err)
	}
	if err := json.Unmarshal(report.Weaknesses, &weaknesses); err != nil {
		t.Fatalf("weaknesses json: %v", err)
	}
	if err := json.Unmarshal(report.Recommendations, &recommendations); err != nil {
		t.Fatalf("recommendations json: %v", err)
	}

	if len(strengths) != 1 || strengths[0] != "algebra" {
		t.Errorf("strengths = %v, want [algebra]", strengths)
	}
	if len(weaknesses) != 1 || weaknesses[0] != "logic" {
		t.Errorf("weaknesses = %v, want [logic]", weaknesses)
	}

	// 50% lands in the third tier (3 strings) plus the referral line.
	if len(recommendations) != 4 {
		t.Fatalf("recommendations = %d entries, want 4: %v", len(recommendations), recommendations)
	}
	last := recommendations[len(recommendations)-1]
	if !strings.Contains(last, "Logic") || !strings.Contains(last, "Souza") {
		t.Errorf("referral line = %q, want Logic with Souza", last)
	}
	if report.AssignedProfessor != "Souza" || report.ProfessorSubject != "Logic" {
		t.Errorf("referral fields = %s/%s, want Souza/Logic", report.AssignedProfessor, report.ProfessorSubject)
	}

	// Exactly one report per result.
	if _, err := reports.Generate(result.ID, student.ID, model.Student); !errors.Is(err, util.ErrReportExists) {
		t.Errorf("second generate: err = %v, want ErrReportExists", err)
	}

	fetched, err := reports.Get(result.ID, student.ID, model.Student)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if fetched.ExamResultID != result.ID {
		t.Errorf("fetched report for %s, want %s", fetched.ExamResultID, result.ID)
	}
}

func TestGenerateReportHighScoreNoReferral(t *testing.T) {
	db := openTestDB(t)
	sessions := newSessionService(db)
	reports := newReportService(db)

	student := seedUser(t, db, model.Student)
	prof := seedProfessor(t, db, "Silva", "Mathematics")

	var qs []*model.Question
	for i := 0; i < 5; i++ {
		qs = append(qs, seedQuestion(t, db, prof.ID, "algebra", 0))
	}
	exam := seedExam(t, db, model.ExamActive, 0, qs[0], qs[1], qs[2], qs[3], qs[4])

	picks := map[uint]int{}
	for _, q := range qs {
		picks[q.ID] = 0
	}
	result := runAttempt(t, sessions, student, exam, picks)

	report, err := reports.Generate(result.ID, student.ID, model.Student)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	var recommendations []string
	if err := json.Unmarshal(report.Recommendations, &recommendations); err != nil {
		t.Fatalf("recommendations json: %v", err)
	}
	// 100% is the top tier: two strings, no referral.
	if len(recommendations) != 2 {
		t.Errorf("recommendations = %v, want the 2 top-tier entries", recommendations)
	}
	if report.AssignedProfessor != "" {
		t.Errorf("AssignedProfessor = %q, want empty", report.AssignedProfessor)
	}
}

func TestReportAccessControl(t *testing.T) {
	db := openTestDB(t)
	sessions := newSessionService(db)
	reports := newReportService(db)

	student := seedUser(t, db, model.Student)
	other := seedUser(t, db, model.Student)
	admin := seedUser(t, db, model.Admin)
	prof := seedProfessor(t, db, "Silva", "Mathematics")
	q := seedQuestion(t, db, prof.ID, "algebra", 0)
	exam := seedExam(t, db, model.ExamActive, 0, q)

	result := runAttempt(t, sessions, student, exam, map[uint]int{q.ID: 0})

	if _, err := reports.Generate(result.ID, other.ID, model.Student); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign generate: err = %v, want ErrPermissionDenied", err)
	}

	if _, err := reports.Generate(result.ID, admin.ID, model.Admin); err != nil {
		t.Fatalf("admin generate: %v", err)
	}

	if _, err := reports.Get(result.ID, other.ID, model.Student); !errors.Is(err, util.ErrPermissionDenied) {
		t.Errorf("foreign get: err = %v, want ErrPermissionDenied", err)
	}
	if _, err := reports.Get(result.ID, admin.ID, model.Admin); err != nil {
		t.Errorf("admin get: %v", err)
	}
}

func TestReportRequiresCompletedResult(t *testing.T) {
	db := openTestDB(t)
	sessions := newSessionService(db)
	reports := newReportService(db)

	student := seedUser(t, db, model.Student)
	prof := seedProfessor(t, db, "Silva", "Mathematics")
	q := seedQuestion(t, db, prof.ID, "algebra", 0)
	exam := seedExam(t, db, model.ExamActive, 0, q)

	session, err := sessions.Start(exam.ID, student.ID)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}

	if _, err := reports.Generate(session.Result.ID, student.ID, model.Student); !errors.Is(err, util.ErrResultNotCompleted) {
		t.Errorf("report for in-progress attempt: err = %v, want ErrResultNotCompleted", err)
	}
	if _, err := reports.Generate("no-such-result", student.ID, model.Student); !errors.Is(err, util.ErrResultNotFound) {
		t.Errorf("report for missing result: err = %v, want ErrResultNotFound", err)
	}
	if _, err := reports.Get(session.Result.ID, student.ID, model.Student); !errors.Is(err, util.ErrReportNotFound) {
		t.Errorf("get missing report: err = %v, want ErrReportNotFound", err)
	}
}
