package service

import (
	"context"
	"encoding/json"
	"errors"
	"exam_admin_backend/internal/config"
	"exam_admin_backend/internal/model"
	"exam_admin_backend/internal/repository"
	"exam_admin_backend/internal/util"
	"math"
	"sort"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const adminStatisticsCacheKey = "stats:admin"

const (
	hardestQuestionCount = 10
	easiestQuestionCount = 5
)

// StatisticsService computes the cross-attempt aggregates. Every sub-query
// failure aborts the whole call; a partially zeroed aggregate is worse than
// an error.
type StatisticsService struct {
	StatsRepo  *repository.StatisticsRepository
	ResultRepo *repository.ExamResultRepository
	ReportRepo *repository.ExamReportRepository
	UserRepo   *repository.UserRepository
	Redis      *redis.Client
	Cfg        *config.Config
}

func NewStatisticsService(
	statsRepo *repository.StatisticsRepository,
	resultRepo *repository.ExamResultRepository,
	reportRepo *repository.ExamReportRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	cfg *config.Config,
) *StatisticsService {
	return &StatisticsService{
		StatsRepo:  statsRepo,
		ResultRepo: resultRepo,
		ReportRepo: reportRepo,
		UserRepo:   userRepo,
		Redis:      rdb,
		Cfg:        cfg,
	}
}

// decodedReport is an ExamReport with its JSON columns unpacked.
type decodedReport struct {
	resultID          string
	subjects          map[string]int
	strengths         []string
	weaknesses        []string
	recommendations   []string
	assignedProfessor string
	professorSubject  string
}

func decodeReport(report *model.ExamReport) (*decodedReport, error) {
	d := &decodedReport{resultID: report.ExamResultID}

	if len(report.ContentBreakdown) > 0 {
		var breakdown map[string]json.RawMessage
		if err := json.Unmarshal(report.ContentBreakdown, &breakdown); err != nil {
			return nil, err
		}
		if raw, ok := breakdown["subjects"]; ok {
			if err := json.Unmarshal(raw, &d.subjects); err != nil {
				return nil, err
			}
		}
	}
	if len(report.Strengths) > 0 {
		if err := json.Unmarshal(report.Strengths, &d.strengths); err != nil {
			return nil, err
		}
	}
	if len(report.Weaknesses) > 0 {
		if err := json.Unmarshal(report.Weaknesses, &d.weaknesses); err != nil {
			return nil, err
		}
	}
	if len(report.Recommendations) > 0 {
		if err := json.Unmarshal(report.Recommendations, &d.recommendations); err != nil {
			return nil, err
		}
	}
	d.assignedProfessor = report.AssignedProfessor
	d.professorSubject = report.ProfessorSubject
	return d, nil
}

// trendOf compares the two most recent results only.
func trendOf(results []model.ExamResult) model.Trend {
	if len(results) < 2 {
		return model.TrendStable
	}
	switch {
	case results[0].Percentage > results[1].Percentage:
		return model.TrendImproving
	case results[0].Percentage < results[1].Percentage:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}

// MyReportStats is the student-facing aggregate over their own attempts.
func (s *StatisticsService) MyReportStats(userID uint) (*model.ReportStats, error) {
	results, err := s.ResultRepo.ListCompletedByUser(userID, 0)
	if err != nil {
		return nil, err
	}

	stats := &model.ReportStats{
		TotalCompleted:  len(results),
		Trend:           model.TrendStable,
		SubjectAverages: map[string]int{},
	}
	if len(results) == 0 {
		return stats, nil
	}

	sum := 0
	best := 0
	resultIDs := make([]string, 0, len(results))
	for _, r := range results {
		sum += r.Percentage
		if r.Percentage > best {
			best = r.Percentage
		}
		resultIDs = append(resultIDs, r.ID)
	}
	stats.AveragePercentage = RoundedMean(sum, len(results))
	stats.BestPercentage = best
	stats.Trend = trendOf(results)

	reports, err := s.ReportRepo.ListByResultIDs(resultIDs)
	if err != nil {
		return nil, err
	}

	byResult := make(map[string]*decodedReport, len(reports))
	subjectSums := make(map[string]*groupTally)
	for i := range reports {
		d, err := decodeReport(&reports[i])
		if err != nil {
			return nil, err
		}
		byResult[d.resultID] = d
		for subject, pct := range d.subjects {
			if subjectSums[subject] == nil {
				subjectSums[subject] = &groupTally{}
			}
			subjectSums[subject].correct += pct
			subjectSums[subject].total++
		}
	}
	for subject, tally := range subjectSums {
		stats.SubjectAverages[subject] = RoundedMean(tally.correct, tally.total)
	}

	latest := results[0]
	snapshot := &model.LatestReportSnapshot{
		ExamResultID: latest.ID,
		Percentage:   latest.Percentage,
	}
	if latest.Exam != nil {
		snapshot.ExamTitle = latest.Exam.Title
	}
	if d, ok := byResult[latest.ID]; ok {
		snapshot.Strengths = d.strengths
		snapshot.Weaknesses = d.weaknesses
		snapshot.Recommendations = d.recommendations
		snapshot.AssignedProfessor = d.assignedProfessor
		snapshot.ProfessorSubject = d.professorSubject
	}
	stats.Latest = snapshot

	return stats, nil
}

// AdminStatistics is the admin dashboard aggregate. The computed value is
// cached in Redis for a short TTL; the cache is advisory, a Redis failure
// falls through to a fresh computation.
func (s *StatisticsService) AdminStatistics(ctx context.Context) (*model.AdminStatistics, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, adminStatisticsCacheKey).Result(); err == nil {
			var cached model.AdminStatistics
			if err := json.Unmarshal([]byte(val), &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats := &model.AdminStatistics{}
	var err error

	if stats.TotalExams, err = s.StatsRepo.CountExams(); err != nil {
		return nil, err
	}
	if stats.TotalCompletedResults, err = s.StatsRepo.CountCompletedResults(); err != nil {
		return nil, err
	}
	if stats.TotalStudents, err = s.StatsRepo.CountStudents(); err != nil {
		return nil, err
	}
	if stats.TotalActiveQuestions, err = s.StatsRepo.CountActiveQuestions(); err != nil {
		return nil, err
	}

	avg, err := s.StatsRepo.AverageCompletedPercentage()
	if err != nil {
		return nil, err
	}
	stats.AveragePercentage = int(math.Round(avg))

	if stats.ScoreDistribution, err = s.StatsRepo.ScoreDistribution(); err != nil {
		return nil, err
	}

	difficulties, err := s.StatsRepo.QuestionAnswerCounts()
	if err != nil {
		return nil, err
	}
	for i := range difficulties {
		difficulties[i].CorrectRate = Percentage(int(difficulties[i].CorrectAnswers), int(difficulties[i].TotalAnswers))
	}
	// Hardest first. Ties break on question id so the ranking is stable.
	sort.Slice(difficulties, func(i, j int) bool {
		if difficulties[i].CorrectRate != difficulties[j].CorrectRate {
			return difficulties[i].CorrectRate < difficulties[j].CorrectRate
		}
		return difficulties[i].QuestionID < difficulties[j].QuestionID
	})
	// Fixed slices off the sorted ranking. With fewer than 15 questions the
	// two slices overlap; that is accepted behavior.
	hardest := hardestQuestionCount
	if hardest > len(difficulties) {
		hardest = len(difficulties)
	}
	stats.HardestQuestions = append([]model.QuestionDifficulty{}, difficulties[:hardest]...)

	easiestFrom := len(difficulties) - easiestQuestionCount
	if easiestFrom < 0 {
		easiestFrom = 0
	}
	stats.EasiestQuestions = append([]model.QuestionDifficulty{}, difficulties[easiestFrom:]...)

	reports, err := s.ReportRepo.ListAll()
	if err != nil {
		return nil, err
	}
	subjectSums := make(map[string]*groupTally)
	for i := range reports {
		d, err := decodeReport(&reports[i])
		if err != nil {
			return nil, err
		}
		for subject, pct := range d.subjects {
			if subjectSums[subject] == nil {
				subjectSums[subject] = &groupTally{}
			}
			subjectSums[subject].correct += pct
			subjectSums[subject].total++
		}
	}
	ranking := make([]model.SubjectPerformance, 0, len(subjectSums))
	for subject, tally := range subjectSums {
		ranking = append(ranking, model.SubjectPerformance{
			Subject:           subject,
			AveragePercentage: RoundedMean(tally.correct, tally.total),
			Reports:           tally.total,
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].AveragePercentage != ranking[j].AveragePercentage {
			return ranking[i].AveragePercentage > ranking[j].AveragePercentage
		}
		return ranking[i].Subject < ranking[j].Subject
	})
	stats.SubjectRanking = ranking

	if s.Redis != nil {
		if payload, err := json.Marshal(stats); err == nil {
			ttl := time.Duration(s.Cfg.Stats.CacheTTLSeconds) * time.Second
			s.Redis.Set(ctx, adminStatisticsCacheKey, payload, ttl)
		}
	}

	return stats, nil
}

// StudentReport is the admin view over one student's completed attempts.
func (s *StatisticsService) StudentReport(userID uint) (*model.StudentReport, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	results, err := s.ResultRepo.ListCompletedByUser(userID, 0)
	if err != nil {
		return nil, err
	}

	resultIDs := make([]string, 0, len(results))
	sum := 0
	for _, r := range results {
		resultIDs = append(resultIDs, r.ID)
		sum += r.Percentage
	}

	reports, err := s.ReportRepo.ListByResultIDs(resultIDs)
	if err != nil {
		return nil, err
	}
	byResult := make(map[string]*model.ExamReport, len(reports))
	for i := range reports {
		byResult[reports[i].ExamResultID] = &reports[i]
	}

	rows := make([]model.ResultWithReport, 0, len(results))
	for _, r := range results {
		rows = append(rows, model.ResultWithReport{
			Result: r,
			Report: byResult[r.ID],
		})
	}

	report := &model.StudentReport{
		Student: user,
		Results: rows,
		Trend:   trendOf(results),
	}
	if len(results) > 0 {
		report.AverageScore = RoundedMean(sum, len(results))
	}
	return report, nil
}
