package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	entsql "entgo.io/ent/dialect/sql"
)

type studentRepo struct {
	db *sql.DB
}

var studentFields = []string{
	"id", "name", "class", "college_name", "parents_name",
	"parents_phone", "email", "password_hash", "created_at",
}

func (r *studentRepo) Create(ctx context.Context, s *StudentRecord) error {
	query, args := builder().Insert(StudentsTable.Name).
		Columns(studentFields...).
		Values(s.ID, s.Name, s.Class, s.CollegeName, s.ParentsName,
			s.ParentsPhone, s.Email, s.PasswordHash, s.CreatedAt).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("student %s: %w", s.Email, ErrDuplicate)
		}
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (r *studentRepo) ByEmail(ctx context.Context, email string) (*StudentRecord, error) {
	return r.one(ctx, entsql.EQ("email", email))
}

func (r *studentRepo) ByID(ctx context.Context, id string) (*StudentRecord, error) {
	return r.one(ctx, entsql.EQ("id", id))
}

func (r *studentRepo) one(ctx context.Context, where *entsql.Predicate) (*StudentRecord, error) {
	query, args := builder().Select(studentFields...).
		From(entsql.Table(StudentsTable.Name)).
		Where(where).
		Limit(1).
		Query()
	row := r.db.QueryRowContext(ctx, query, args...)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query student: %w", err)
	}
	return s, nil
}

func (r *studentRepo) List(ctx context.Context) ([]StudentRecord, error) {
	query, args := builder().Select(studentFields...).
		From(entsql.Table(StudentsTable.Name)).
		OrderBy("created_at", "id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []StudentRecord
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan student: %w", err)
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStudent(sc scanner) (*StudentRecord, error) {
	var s StudentRecord
	err := sc.Scan(&s.ID, &s.Name, &s.Class, &s.CollegeName, &s.ParentsName,
		&s.ParentsPhone, &s.Email, &s.PasswordHash, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// isUniqueViolation matches SQLite's constraint error text, which is stable
// across driver versions.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
