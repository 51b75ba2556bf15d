package quiz

import "fmt"

// Category groups quizzes on the quiz list screen.
type Category string

const (
	CategoryCoding   Category = "coding"
	CategoryAptitude Category = "aptitude"
	CategoryAcademic Category = "academic"
)

// Label returns a human-readable name for the category.
func (c Category) Label() string {
	switch c {
	case CategoryCoding:
		return "Coding"
	case CategoryAptitude:
		return "Aptitude"
	case CategoryAcademic:
		return "Academic"
	}
	return string(c)
}

// NoAnswer is recorded when a question's time ran out with nothing selected.
const NoAnswer = -1

// Question is a single multiple-choice question.
type Question struct {
	ID          string   `yaml:"id"`
	Prompt      string   `yaml:"question"`
	Options     []string `yaml:"options"`
	Correct     int      `yaml:"correct"`
	Explanation string   `yaml:"explanation,omitempty"`
}

// IsCorrect reports whether the given option index is the correct one.
func (q Question) IsCorrect(selected int) bool {
	return selected != NoAnswer && selected == q.Correct
}

// Quiz is an ordered set of questions sharing a per-question time budget.
type Quiz struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Category Category `yaml:"category"`

	// Subject and Class are only set for academic quizzes.
	Subject string `yaml:"subject,omitempty"`
	Class   string `yaml:"class,omitempty"`

	Questions []Question `yaml:"questions"`

	// TimePerQuestion is the countdown budget for each question, in seconds.
	TimePerQuestion int `yaml:"time_per_question"`
}

// Len returns the number of questions.
func (q *Quiz) Len() int { return len(q.Questions) }

// BadgeLabel is the short tag shown next to the quiz title.
func (q *Quiz) BadgeLabel() string {
	if q.Category == CategoryAcademic && q.Subject != "" {
		return q.Subject
	}
	return q.Category.Label()
}

// QuestionByID looks up a question. Returns false if no question has the ID.
func (q *Quiz) QuestionByID(id string) (Question, bool) {
	for _, qq := range q.Questions {
		if qq.ID == id {
			return qq, true
		}
	}
	return Question{}, false
}

// Answer is the recorded outcome for one question.
type Answer struct {
	QuestionID string
	Selected   int
}

// Skipped reports whether time ran out before anything was selected.
func (a Answer) Skipped() bool { return a.Selected == NoAnswer }

// InvalidQuizError describes why a quiz cannot be played.
type InvalidQuizError struct {
	QuizID string
	Reason string
}

func (e *InvalidQuizError) Error() string {
	if e.QuizID == "" {
		return "invalid quiz: " + e.Reason
	}
	return fmt.Sprintf("invalid quiz %q: %s", e.QuizID, e.Reason)
}

// Validate checks that the quiz can be driven by a session.
func (q *Quiz) Validate() error {
	if q == nil {
		return &InvalidQuizError{Reason: "quiz is nil"}
	}
	invalid := func(format string, args ...any) error {
		return &InvalidQuizError{QuizID: q.ID, Reason: fmt.Sprintf(format, args...)}
	}
	if len(q.Questions) == 0 {
		return invalid("no questions")
	}
	if q.TimePerQuestion <= 0 {
		return invalid("time per question must be positive, got %d", q.TimePerQuestion)
	}
	seen := make(map[string]bool, len(q.Questions))
	for i, qq := range q.Questions {
		if qq.ID == "" {
			return invalid("question %d has no id", i)
		}
		if seen[qq.ID] {
			return invalid("duplicate question id %q", qq.ID)
		}
		seen[qq.ID] = true
		if len(qq.Options) < 2 {
			return invalid("question %q needs at least 2 options, has %d", qq.ID, len(qq.Options))
		}
		if qq.Correct < 0 || qq.Correct >= len(qq.Options) {
			return invalid("question %q correct index %d out of range", qq.ID, qq.Correct)
		}
	}
	return nil
}
