package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type stateRepo struct {
	db *sql.DB
}

func (r *stateRepo) Get(ctx context.Context, key string) (string, error) {
	query, args := builder().Select("value").
		From(entsql.Table(AppStateTable.Name)).
		Where(entsql.EQ("key", key)).
		Query()
	var v string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get state %s: %w", key, err)
	}
	return v, nil
}

func (r *stateRepo) Set(ctx context.Context, key, value string) error {
	query, args := builder().Insert(AppStateTable.Name).
		Columns("key", "value", "updated_at").
		Values(key, value, time.Now().UTC()).
		OnConflict(
			entsql.ConflictColumns("key"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set state %s: %w", key, err)
	}
	return nil
}

func (r *stateRepo) Delete(ctx context.Context, key string) error {
	query, args := builder().Delete(AppStateTable.Name).
		Where(entsql.EQ("key", key)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete state %s: %w", key, err)
	}
	return nil
}
