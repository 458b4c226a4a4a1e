package model

// Aggregate shapes returned by the statistics endpoints. Kept in model so
// controllers and services share them without import cycles.

type Trend string

const (
	TrendImproving Trend = "improving"
	TrendDeclining Trend = "declining"
	TrendStable    Trend = "stable"
)

// ReportStats is the student-facing view over their own completed attempts.
type ReportStats struct {
	TotalCompleted    int                   `json:"totalCompleted"`
	AveragePercentage int                   `json:"averagePercentage"`
	BestPercentage    int                   `json:"bestPercentage"`
	Trend             Trend                 `json:"trend"`
	SubjectAverages   map[string]int        `json:"subjectAverages"`
	Latest            *LatestReportSnapshot `json:"latest,omitempty"`
}

// LatestReportSnapshot mirrors the most recent exam's report highlights.
type LatestReportSnapshot struct {
	ExamResultID      string   `json:"examResultId"`
	ExamTitle         string   `json:"examTitle"`
	Percentage        int      `json:"percentage"`
	Strengths         []string `json:"strengths"`
	Weaknesses        []string `json:"weaknesses"`
	Recommendations   []string `json:"recommendations"`
	AssignedProfessor string   `json:"assignedProfessor,omitempty"`
	ProfessorSubject  string   `json:"professorSubject,omitempty"`
}

type ScoreBand struct {
	Band  string `json:"band"`
	Count int64  `json:"count"`
}

type QuestionDifficulty struct {
	QuestionID     uint   `json:"questionId"`
	Text           string `json:"text"`
	TotalAnswers   int64  `json:"totalAnswers"`
	CorrectAnswers int64  `json:"correctAnswers"`
	CorrectRate    int    `json:"correctRate"` // Percent of answers that were correct
}

type SubjectPerformance struct {
	Subject           string `json:"subject"`
	AveragePercentage int    `json:"averagePercentage"`
	Reports           int    `json:"reports"`
}

type AdminStatistics struct {
	TotalExams            int64                `json:"totalExams"`
	TotalCompletedResults int64                `json:"totalCompletedResults"`
	TotalStudents         int64                `json:"totalStudents"`
	TotalActiveQuestions  int64                `json:"totalActiveQuestions"`
	AveragePercentage     int                  `json:"averagePercentage"`
	ScoreDistribution     []ScoreBand          `json:"scoreDistribution"`
	HardestQuestions      []QuestionDifficulty `json:"hardestQuestions"`
	EasiestQuestions      []QuestionDifficulty `json:"easiestQuestions"`
	SubjectRanking        []SubjectPerformance `json:"subjectRanking"`
}

type ResultWithReport struct {
	Result ExamResult  `json:"result"`
	Report *ExamReport `json:"report,omitempty"`
}

// StudentReport is the admin view over a single student's history.
type StudentReport struct {
	Student      *User              `json:"student"`
	Results      []ResultWithReport `json:"results"`
	AverageScore int                `json:"averageScore"`
	Trend        Trend              `json:"trend"`
}
