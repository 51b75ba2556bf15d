package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions, laid out the way entc writes ent/migrate/schema.go for a
// generated client. There is no ent/schema package here: the repos query
// through ent's sql builders, so the tables are declared directly. The
// id and timestamp pair an event mixin would add is repeated on each event table.

var (
	// StudentsColumns holds the columns for the "students" table.
	StudentsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "name", Type: field.TypeString},
		{Name: "class", Type: field.TypeString},
		{Name: "college_name", Type: field.TypeString},
		{Name: "parents_name", Type: field.TypeString},
		{Name: "parents_phone", Type: field.TypeString},
		{Name: "email", Type: field.TypeString, Unique: true},
		{Name: "password_hash", Type: field.TypeString},
		{Name: "created_at", Type: field.TypeTime},
	}
	// StudentsTable holds the schema information for the "students" table.
	StudentsTable = &schema.Table{
		Name:       "students",
		Columns:    StudentsColumns,
		PrimaryKey: []*schema.Column{StudentsColumns[0]},
	}

	// AppStateColumns holds the columns for the "app_state" table.
	AppStateColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString, Unique: true},
		{Name: "value", Type: field.TypeString},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// AppStateTable holds the schema information for the "app_state" table.
	AppStateTable = &schema.Table{
		Name:       "app_state",
		Columns:    AppStateColumns,
		PrimaryKey: []*schema.Column{AppStateColumns[0]},
	}

	// QuizAttemptsColumns holds the columns for the "quiz_attempts" table.
	QuizAttemptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeString, Unique: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "quiz_id", Type: field.TypeString},
		{Name: "quiz_title", Type: field.TypeString},
		{Name: "category", Type: field.TypeString},
		{Name: "score", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeInt},
		{Name: "total", Type: field.TypeInt},
		{Name: "time_spent_ms", Type: field.TypeInt64},
		{Name: "started_at", Type: field.TypeTime},
		{Name: "completed_at", Type: field.TypeTime},
		{Name: "student_id", Type: field.TypeString},
	}
	// QuizAttemptsTable holds the schema information for the "quiz_attempts" table.
	QuizAttemptsTable = &schema.Table{
		Name:       "quiz_attempts",
		Columns:    QuizAttemptsColumns,
		PrimaryKey: []*schema.Column{QuizAttemptsColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "quiz_attempts_students_attempts",
				Columns:    []*schema.Column{QuizAttemptsColumns[12]},
				RefColumns: []*schema.Column{StudentsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "quizattempt_student_id_completed_at",
				Unique:  false,
				Columns: []*schema.Column{QuizAttemptsColumns[12], QuizAttemptsColumns[11]},
			},
		},
	}

	// AttemptAnswersColumns holds the columns for the "attempt_answers" table.
	AttemptAnswersColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "position", Type: field.TypeInt},
		{Name: "question_id", Type: field.TypeString},
		{Name: "selected", Type: field.TypeInt},
		{Name: "correct", Type: field.TypeBool},
		{Name: "attempt_id", Type: field.TypeString},
	}
	// AttemptAnswersTable holds the schema information for the "attempt_answers" table.
	AttemptAnswersTable = &schema.Table{
		Name:       "attempt_answers",
		Columns:    AttemptAnswersColumns,
		PrimaryKey: []*schema.Column{AttemptAnswersColumns[0]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "attempt_answers_quiz_attempts_answers",
				Columns:    []*schema.Column{AttemptAnswersColumns[5]},
				RefColumns: []*schema.Column{QuizAttemptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "attemptanswer_attempt_id_position",
				Unique:  true,
				Columns: []*schema.Column{AttemptAnswersColumns[5], AttemptAnswersColumns[1]},
			},
		},
	}

	// LlmRequestsColumns holds the columns for the "llm_requests" table.
	LlmRequestsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt},
		{Name: "output_tokens", Type: field.TypeInt},
		{Name: "latency_ms", Type: field.TypeInt64},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Nullable: true},
	}
	// LlmRequestsTable holds the schema information for the "llm_requests" table.
	LlmRequestsTable = &schema.Table{
		Name:       "llm_requests",
		Columns:    LlmRequestsColumns,
		PrimaryKey: []*schema.Column{LlmRequestsColumns[0]},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		StudentsTable,
		AppStateTable,
		QuizAttemptsTable,
		AttemptAnswersTable,
		LlmRequestsTable,
	}
)

func init() {
	QuizAttemptsTable.ForeignKeys[0].RefTable = StudentsTable
	AttemptAnswersTable.ForeignKeys[0].RefTable = QuizAttemptsTable
}

// migrate creates or upgrades every table. Columns are only ever added.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
