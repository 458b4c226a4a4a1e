package service

import (
	"encoding/json"
	"errors"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"fmt"
	"sort"

	"gorm.io/gorm"
)

const (
	strengthThreshold = 80
	weaknessThreshold = 60
)

// recommendationTiers maps the overall percentage to fixed guidance.
// Selection is by the attempt's percentage, never per indicator.
var recommendationTiers = []struct {
	min  int
	recs []string
}{
	{90, []string{
		"Excellent performance. Keep the momentum with advanced practice sets.",
		"Consider mentoring classmates to consolidate your mastery.",
	}},
	{70, []string{
		"Solid result. Review the topics you missed before moving on.",
		"Schedule a weekly revision block for your weaker indicators.",
		"Redo the questions you got wrong and compare your reasoning.",
	}},
	{50, []string{
		"You passed, but several topics need reinforcement.",
		"Build a study plan that starts from your weakest indicators.",
		"Ask for guided exercises on the topics below 60%.",
	}},
	{0, []string{
		"This result needs attention. Revisit the fundamentals first.",
		"Work through the basics of each weak topic with short daily sessions.",
		"Book a tutoring session before attempting another exam.",
	}},
}

func recommendationsFor(percentage int) []string {
	for _, tier := range recommendationTiers {
		if percentage >= tier.min {
			out := make([]string, len(tier.recs))
			copy(out, tier.recs)
			return out
		}
	}
	return nil
}

type ReportService struct {
	ReportRepo    *repository.ExamReportRepository
	ResultRepo    *repository.ExamResultRepository
	ProfessorRepo *repository.ProfessorRepository
}

func NewReportService(
	reportRepo *repository.ExamReportRepository,
	resultRepo *repository.ExamResultRepository,
	professorRepo *repository.ProfessorRepository,
) *ReportService {
	return &ReportService{
		ReportRepo:    reportRepo,
		ResultRepo:    resultRepo,
		ProfessorRepo: professorRepo,
	}
}

type groupTally struct {
	correct int
	total   int
}

func pctOf(t groupTally) int {
	return Percentage(t.correct, t.total)
}

// Generate builds and persists the analysis of one completed attempt.
// Exactly one report may exist per result; the unique index backs that up
// under concurrent generation.
func (s *ReportService) Generate(resultID string, callerID uint, callerRole model.UserRole) (*model.ExamReport, error) {
	result, err := s.ResultRepo.FindByID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrResultNotFound
		}
		return nil, err
	}
	if callerRole != model.Admin && result.UserID != callerID {
		return nil, util.ErrPermissionDenied
	}
	if result.Status != model.ResultCompleted {
		return nil, util.ErrResultNotCompleted
	}

	if _, err := s.ReportRepo.FindByResultID(resultID); err == nil {
		return nil, util.ErrReportExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	answers, err := s.ResultRepo.GetAnswers(resultID)
	if err != nil {
		return nil, err
	}

	indicators := make(map[string]*groupTally)
	subjects := make(map[string]*groupTally)
	for _, a := range answers {
		if a.Question == nil {
			continue
		}
		ind := a.Question.EducationalIndicator
		if indicators[ind] == nil {
			indicators[ind] = &groupTally{}
		}
		indicators[ind].total++
		if a.IsCorrect {
			indicators[ind].correct++
		}

		if a.Question.Professor != nil && a.Question.Professor.Subject != "" {
			subj := a.Question.Professor.Subject
			if subjects[subj] == nil {
				subjects[subj] = &groupTally{}
			}
			subjects[subj].total++
			if a.IsCorrect {
				subjects[subj].correct++
			}
		}
	}

	// Iterate indicators in sorted order so strengths/weaknesses come out
	// deterministic.
	indicatorNames := make([]string, 0, len(indicators))
	for name := range indicators {
		indicatorNames = append(indicatorNames, name)
	}
	sort.Strings(indicatorNames)

	breakdown := make(map[string]interface{}, len(indicators)+1)
	strengths := make([]string, 0)
	weaknesses := make([]string, 0)
	for _, name := range indicatorNames {
		pct := pctOf(*indicators[name])
		breakdown[name] = pct
		switch {
		case pct >= strengthThreshold:
			strengths = append(strengths, name)
		case pct < weaknessThreshold:
			weaknesses = append(weaknesses, name)
		}
	}

	subjectPcts := make(map[string]int, len(subjects))
	for name, tally := range subjects {
		subjectPcts[name] = pctOf(*tally)
	}
	breakdown["subjects"] = subjectPcts

	recommendations := recommendationsFor(result.Percentage)

	report := &model.ExamReport{
		ExamResultID: resultID,
	}

	if len(weaknesses) > 0 {
		if weakest := weakestSubject(subjectPcts); weakest != "" {
			professor, err := s.ProfessorRepo.FindBySubjectContains(weakest)
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			if professor != nil {
				recommendations = append(recommendations, fmt.Sprintf(
					"We suggest review sessions on %s with professor %s.",
					professor.Subject, professor.Name))
				report.AssignedProfessor = professor.Name
				report.ProfessorSubject = professor.Subject
			}
		}
	}

	if report.ContentBreakdown, err = json.Marshal(breakdown); err != nil {
		return nil, err
	}
	if report.Strengths, err = json.Marshal(strengths); err != nil {
		return nil, err
	}
	if report.Weaknesses, err = json.Marshal(weaknesses); err != nil {
		return nil, err
	}
	if report.Recommendations, err = json.Marshal(recommendations); err != nil {
		return nil, err
	}

	if err := s.ReportRepo.Create(report); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, util.ErrReportExists
		}
		return nil, err
	}
	return report, nil
}

// weakestSubject picks the subject with the lowest percentage. Ties break
// on the lexicographically smallest name so the pick is deterministic.
func weakestSubject(subjectPcts map[string]int) string {
	names := make([]string, 0, len(subjectPcts))
	for name := range subjectPcts {
		names = append(names, name)
	}
	sort.Strings(names)

	weakest := ""
	lowest := 0
	for _, name := range names {
		if weakest == "" || subjectPcts[name] < lowest {
			weakest = name
			lowest = subjectPcts[name]
		}
	}
	return weakest
}

// Get returns the report of a result, visible to admins and the owner only.
func (s *ReportService) Get(resultID string, callerID uint, callerRole model.UserRole) (*model.ExamReport, error) {
	report, err := s.ReportRepo.FindByResultID(resultID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrReportNotFound
		}
		return nil, err
	}

	if callerRole != model.Admin {
		result, err := s.ResultRepo.FindByID(resultID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrReportNotFound
			}
			return nil, err
		}
		if result.UserID != callerID {
			return nil, util.ErrPermissionDenied
		}
	}

	return report, nil
}
