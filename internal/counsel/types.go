// Package counsel turns a quiz result into short career guidance.
package counsel

import (
	"github.com/abhisek/disha/internal/quiz"
	"github.com/abhisek/disha/internal/results"
	"github.com/abhisek/disha/internal/student"
)

// Source says where a piece of advice came from.
type Source string

const (
	SourceAI      Source = "ai"
	SourceOffline Source = "offline"
)

// Input is everything the counsellor knows about the student.
type Input struct {
	Name   string
	Class  student.Class
	Result results.Result
	// Recent holds earlier attempts, newest first.
	Recent []Attempt
}

// Attempt is a past quiz score.
type Attempt struct {
	QuizTitle string
	Category  quiz.Category
	Score     int
}

// Advice is what the results screen shows under "Counsellor says".
type Advice struct {
	Summary   string
	Strengths []string
	NextSteps []string
	Streams   []string
	Source    Source
}
