package categories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gigflow/gigflow-backend/internal/storage/postgres"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// List returns one page ordered by id and the total number of categories.
func (r *Repo) List(ctx context.Context, limit, offset int) (*ListResult, error) {
	const q = `
SELECT id, name, created_at, count(*) OVER() AS total
FROM categories
ORDER BY id
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	out := &ListResult{Results: make([]Category, 0, limit)}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt, &out.Count); err != nil {
			return nil, err
		}
		out.Results = append(out.Results, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// an offset past the end yields no rows and therefore no total
	if len(out.Results) == 0 && offset > 0 {
		if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM categories;`).Scan(&out.Count); err != nil {
			return nil, fmt.Errorf("count categories: %w", err)
		}
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*Category, error) {
	const q = `SELECT id, name, created_at FROM categories WHERE id = $1;`

	var c Category
	err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}

func (r *Repo) Create(ctx context.Context, name string) (*Category, error) {
	const q = `
INSERT INTO categories (name)
VALUES ($1)
RETURNING id, name, created_at;
`
	var c Category
	if err := r.db.QueryRowContext(ctx, q, name).Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &c, nil
}

func (r *Repo) Rename(ctx context.Context, id int64, name string) (*Category, error) {
	const q = `
UPDATE categories
SET name = $2
WHERE id = $1
RETURNING id, name, created_at;
`
	var c Category
	err := r.db.QueryRowContext(ctx, q, id, name).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("rename category: %w", err)
	}
	return &c, nil
}

// Delete removes a category. Skills and projects cascade; users block it.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1;`, id)
	if err != nil {
		if _, ok := postgres.ForeignKeyViolation(err); ok {
			return ErrInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
