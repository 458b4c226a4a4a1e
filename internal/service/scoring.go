package service

import (
	"exam_admin_backend/internal/model"
	"math"
)

// CorrectCount counts the correct answers of an attempt.
func CorrectCount(answers []model.ExamAnswer) int {
	count := 0
	for _, a := range answers {
		if a.IsCorrect {
			count++
		}
	}
	return count
}

// Percentage converts a correct count into a 0-100 integer score.
// Halves round up (66.67 -> 67, 62.5 -> 63). The total is whatever was
// captured on the result at start time, never the exam's current state.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(correct) * 100 / float64(total)))
}

// RoundedMean averages a sum of integer percentages with the same rounding
// as Percentage.
func RoundedMean(sum, n int) int {
	if n <= 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(n)))
}
