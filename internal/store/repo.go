package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("already exists")

// QueryOpts configures list queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// StudentRecord is a registered student as stored.
type StudentRecord struct {
	ID           string
	Name         string
	Class        string
	CollegeName  string
	ParentsName  string
	ParentsPhone string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// StudentRepo persists registered students.
type StudentRepo interface {
	// Create inserts a student. Returns ErrDuplicate if the email is taken.
	Create(ctx context.Context, s *StudentRecord) error

	// ByEmail returns ErrNotFound if no student has the email.
	ByEmail(ctx context.Context, email string) (*StudentRecord, error)

	// ByID returns ErrNotFound if no student has the ID.
	ByID(ctx context.Context, id string) (*StudentRecord, error)

	// List returns all students, oldest first.
	List(ctx context.Context) ([]StudentRecord, error)
}

// StateRepo is a small key/value store for app-level state such as the
// logged-in student.
type StateRepo interface {
	// Get returns ErrNotFound if the key is unset.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// AnswerRecord is one question outcome within an attempt.
type AnswerRecord struct {
	Position   int
	QuestionID string
	Selected   int
	Correct    bool
}

// AttemptRecord is a completed quiz attempt.
type AttemptRecord struct {
	ID          string
	Sequence    int64
	Timestamp   time.Time
	StudentID   string
	QuizID      string
	QuizTitle   string
	Category    string
	Score       int
	Correct     int
	Total       int
	TimeSpent   time.Duration
	StartedAt   time.Time
	CompletedAt time.Time

	// Answers is only populated by Get.
	Answers []AnswerRecord
}

// AttemptRepo persists completed quiz attempts.
type AttemptRepo interface {
	// Save stores the attempt and its answers atomically, assigning Sequence
	// and Timestamp.
	Save(ctx context.Context, a *AttemptRecord) error

	// List returns a student's attempts, newest first.
	List(ctx context.Context, studentID string, opts QueryOpts) ([]AttemptRecord, error)

	// Get returns one attempt with its answers, or ErrNotFound.
	Get(ctx context.Context, id string) (*AttemptRecord, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMRequestEvent is a stored LLMRequestEventData.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMRequests returns LLM request events, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)
}
