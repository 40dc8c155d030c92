package samplework

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const sampleWorkColumns = `id, user_id, name, description, skill, image, created_at, updated_at`

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scan(row rowScanner, extra ...any) (*SampleWork, error) {
	var w SampleWork
	var image sql.NullString
	dest := []any{&w.ID, &w.UserID, &w.Name, &w.Description, &w.Skill, &image, &w.CreatedAt, &w.UpdatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	if image.Valid {
		w.Image = &image.String
	}
	return &w, nil
}

// List returns a page of live sample works matching f, ordered by id.
func (r *Repo) List(ctx context.Context, f Filter, limit, offset int) ([]SampleWork, int, error) {
	where, args := f.Conditions().SQL(1)
	if where != "" {
		where = " AND " + where
	}

	q := fmt.Sprintf(`
SELECT %s, count(*) OVER() AS total
FROM sample_works
WHERE deleted_at IS NULL%s
ORDER BY id
LIMIT $%d OFFSET $%d;`, sampleWorkColumns, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sample works: %w", err)
	}
	defer rows.Close()

	total := 0
	out := make([]SampleWork, 0, limit)
	for rows.Next() {
		w, err := scan(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(out) == 0 && offset > 0 {
		cq := `SELECT count(*) FROM sample_works WHERE deleted_at IS NULL` + where + `;`
		if err := r.db.QueryRowContext(ctx, cq, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count sample works: %w", err)
		}
	}
	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*SampleWork, error) {
	q := `SELECT ` + sampleWorkColumns + ` FROM sample_works WHERE id = $1 AND deleted_at IS NULL;`

	w, err := scan(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get sample work: %w", err)
	}
	return w, nil
}

func (r *Repo) Create(ctx context.Context, w *SampleWork) error {
	const q = `
INSERT INTO sample_works (user_id, name, description, skill, image)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at;
`
	err := r.db.QueryRowContext(ctx, q, w.UserID, w.Name, w.Description, w.Skill, w.Image).
		Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create sample work: %w", err)
	}
	return nil
}

func (r *Repo) Update(ctx context.Context, w *SampleWork) error {
	const q = `
UPDATE sample_works
SET name = $2, description = $3, skill = $4, image = $5, updated_at = now()
WHERE id = $1 AND deleted_at IS NULL
RETURNING updated_at;
`
	err := r.db.QueryRowContext(ctx, q, w.ID, w.Name, w.Description, w.Skill, w.Image).Scan(&w.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("update sample work: %w", err)
	}
	return nil
}

// SoftDelete hides the caller's sample work; the worker purges it later.
func (r *Repo) SoftDelete(ctx context.Context, userID, id int64) (bool, error) {
	const q = `
UPDATE sample_works
SET deleted_at = now(), updated_at = now()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	result, err := r.db.ExecContext(ctx, q, userID, id)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
