package util

const (
	AlternativesPerQuestion = 4
)
