package service

import (
	"testing"

	"exam_admin_backend/internal/model"
)

func TestPercentage(t *testing.T) {
	cases := []struct {
		correct int
		total   int
		want    int
	}{
		{3, 5, 60},
		{2, 3, 67}, // 66.67 rounds up
		{1, 3, 33},
		{1, 2, 50},
		{5, 5, 100},
		{0, 5, 0},
		{0, 0, 0},
		{3, 0, 0},
	}

	for _, c := range cases {
		if got := Percentage(c.correct, c.total); got != c.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", c.correct, c.total, got, c.want)
		}
	}
}

func TestRoundedMean(t *testing.T) {
	cases := []struct {
		sum  int
		n    int
		want int
	}{
		{150, 2, 75},
		{200, 3, 67},
		{100, 3, 33},
		{0, 0, 0},
	}

	for _, c := range cases {
		if got := RoundedMean(c.sum, c.n); got != c.want {
			t.Errorf("RoundedMean(%d, %d) = %d, want %d", c.sum, c.n, got, c.want)
		}
	}
}

func TestCorrectCount(t *testing.T) {
	answers := []model.ExamAnswer{
		{IsCorrect: true},
		{IsCorrect: false},
		{IsCorrect: true},
		{IsCorrect: true},
	}

	if got := CorrectCount(answers); got != 3 {
		t.Errorf("CorrectCount = %d, want 3", got)
	}
	if got := CorrectCount(nil); got != 0 {
		t.Errorf("CorrectCount(nil) = %d, want 0", got)
	}
}
