package skills

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

// List returns one page of skills ordered by id and the total count.
func (r *Repo) List(ctx context.Context, limit, offset int) ([]Skill, int, error) {
	const q = `
SELECT id, name, category_id, created_at, count(*) OVER() AS total
FROM skills
ORDER BY id
LIMIT $1 OFFSET $2;
`
	rows, err := r.db.QueryContext(ctx, q, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list skills: %w", err)
	}
	defer rows.Close()

	total := 0
	out := make([]Skill, 0, limit)
	for rows.Next() {
		var s Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt, &total); err != nil {
			return nil, 0, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	if len(out) == 0 && offset > 0 {
		if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM skills;`).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count skills: %w", err)
		}
	}
	return out, total, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (*Skill, error) {
	const q = `SELECT id, name, category_id, created_at FROM skills WHERE id = $1;`

	var s Skill
	err := r.db.QueryRowContext(ctx, q, id).Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get skill: %w", err)
	}
	return &s, nil
}

func (r *Repo) Create(ctx context.Context, name string, categoryID int64) (*Skill, error) {
	const q = `
INSERT INTO skills (name, category_id)
VALUES ($1, $2)
RETURNING id, name, category_id, created_at;
`
	var s Skill
	err := r.db.QueryRowContext(ctx, q, name, categoryID).Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt)
	if err != nil {
		return nil, mapWriteError("create skill", err)
	}
	return &s, nil
}

func (r *Repo) Update(ctx context.Context, id int64, name string, categoryID int64) (*Skill, error) {
	const q = `
UPDATE skills
SET name = $2, category_id = $3
WHERE id = $1
RETURNING id, name, category_id, created_at;
`
	var s Skill
	err := r.db.QueryRowContext(ctx, q, id, name, categoryID).Scan(&s.ID, &s.Name, &s.CategoryID, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, mapWriteError("update skill", err)
	}
	return &s, nil
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM skills WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete skill: %w", err)
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

func mapWriteError(op string, err error) error {
	if _, ok := postgres.ForeignKeyViolation(err); ok {
		return ErrUnknownCategory
	}
	return fmt.Errorf("%s: %w", op, err)
}
