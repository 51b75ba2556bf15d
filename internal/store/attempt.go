package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type attemptRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var attemptFields = []string{
	"id", "sequence", "timestamp", "student_id", "quiz_id", "quiz_title",
	"category", "score", "correct", "total", "time_spent_ms",
	"started_at", "completed_at",
}

func (r *attemptRepo) Save(ctx context.Context, a *AttemptRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin attempt: %w", err)
	}
	defer tx.Rollback()

	seqNum, err := r.seq.next(ctx, tx)
	if err != nil {
		return err
	}
	ts := time.Now().UTC()

	query, args := builder().Insert(QuizAttemptsTable.Name).
		Columns(attemptFields...).
		Values(a.ID, seqNum, ts, a.StudentID, a.QuizID, a.QuizTitle,
			a.Category, a.Score, a.Correct, a.Total, a.TimeSpent.Milliseconds(),
			a.StartedAt, a.CompletedAt).
		Query()
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}

	if len(a.Answers) > 0 {
		ins := builder().Insert(AttemptAnswersTable.Name).
			Columns("attempt_id", "position", "question_id", "selected", "correct")
		for _, ans := range a.Answers {
			ins.Values(a.ID, ans.Position, ans.QuestionID, ans.Selected, ans.Correct)
		}
		query, args = ins.Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert attempt answers: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit attempt: %w", err)
	}
	a.Sequence = seqNum
	a.Timestamp = ts
	return nil
}

func (r *attemptRepo) List(ctx context.Context, studentID string, opts QueryOpts) ([]AttemptRecord, error) {
	preds := []*entsql.Predicate{entsql.EQ("student_id", studentID)}
	preds = append(preds, opts.predicates()...)

	sel := builder().Select(attemptFields...).
		From(entsql.Table(QuizAttemptsTable.Name)).
		Where(entsql.And(preds...)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptRecord
	for rows.Next() {
		a, err := scanAttempt(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Get(ctx context.Context, id string) (*AttemptRecord, error) {
	query, args := builder().Select(attemptFields...).
		From(entsql.Table(QuizAttemptsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	a, err := scanAttempt(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	query, args = builder().Select("position", "question_id", "selected", "correct").
		From(entsql.Table(AttemptAnswersTable.Name)).
		Where(entsql.EQ("attempt_id", id)).
		OrderBy("position").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("get attempt answers: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ans AnswerRecord
		if err := rows.Scan(&ans.Position, &ans.QuestionID, &ans.Selected, &ans.Correct); err != nil {
			return nil, fmt.Errorf("scan attempt answer: %w", err)
		}
		a.Answers = append(a.Answers, ans)
	}
	return a, rows.Err()
}

func scanAttempt(sc scanner) (*AttemptRecord, error) {
	var (
		a       AttemptRecord
		spentMs int64
	)
	err := sc.Scan(&a.ID, &a.Sequence, &a.Timestamp, &a.StudentID, &a.QuizID,
		&a.QuizTitle, &a.Category, &a.Score, &a.Correct, &a.Total, &spentMs,
		&a.StartedAt, &a.CompletedAt)
	if err != nil {
		return nil, err
	}
	a.TimeSpent = time.Duration(spentMs) * time.Millisecond
	return &a, nil
}

// predicates converts the sequence and timestamp bounds into WHERE clauses.
func (o QueryOpts) predicates() []*entsql.Predicate {
	var preds []*entsql.Predicate
	if o.After > 0 {
		preds = append(preds, entsql.GT("sequence", o.After))
	}
	if o.Before > 0 {
		preds = append(preds, entsql.LT("sequence", o.Before))
	}
	if !o.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", o.From))
	}
	if !o.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", o.To))
	}
	return preds
}
