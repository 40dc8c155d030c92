package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/gigflow/gigflow-backend/internal/projects/domain"
	"github.com/gigflow/gigflow-backend/internal/storage/postgres"
)

// projectSelect reads live projects joined with their category. Callers
// append WHERE conditions after "p.deleted_at IS NULL".
const projectSelect = `
SELECT p.id, p.user_id, p.name, p.description, p.category_id, c.name,
       p.deadline, p.price::text, p.created_at, p.updated_at`

const projectFrom = `
FROM projects p
JOIN categories c ON c.id = p.category_id
WHERE p.deleted_at IS NULL`

// ProjectRepository provides persistence operations for projects
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner, extra ...any) (*domain.Project, error) {
	var p domain.Project
	dest := []any{
		&p.ID, &p.UserID, &p.Name, &p.Description, &p.CategoryID, &p.CategoryName,
		&p.Deadline, &p.Price, &p.CreatedAt, &p.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns one page of live projects matching f, ordered by id, and the
// total number of matches.
func (r *ProjectRepository) List(ctx context.Context, f domain.ProjectFilter, limit, offset int) ([]domain.Project, int, error) {
	where, args := f.Conditions().SQL(1)
	if where != "" {
		where = " AND " + where
	}

	q := fmt.Sprintf(`%s, count(*) OVER() AS total%s%s
ORDER BY p.id
LIMIT $%d OFFSET $%d;`, projectSelect, projectFrom, where, len(args)+1, len(args)+2)

	rows, err := r.db.QueryContext(ctx, q, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	total := 0
	out := make([]domain.Project, 0, limit)
	for rows.Next() {
		p, err := scanProject(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// past the last page the window count is not available
	if len(out) == 0 && offset > 0 {
		cq := `SELECT count(*)` + projectFrom + where + `;`
		if err := r.db.QueryRowContext(ctx, cq, args...).Scan(&total); err != nil {
			return nil, 0, fmt.Errorf("count projects: %w", err)
		}
	}
	return out, total, nil
}

// Get returns a live project by id.
func (r *ProjectRepository) Get(ctx context.Context, id int64) (*domain.Project, error) {
	q := projectSelect + projectFrom + ` AND p.id = $1;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// GetOwned returns a live project only when userID owns it.
func (r *ProjectRepository) GetOwned(ctx context.Context, userID, id int64) (*domain.Project, error) {
	q := projectSelect + projectFrom + ` AND p.id = $1 AND p.user_id = $2;`

	p, err := scanProject(r.db.QueryRowContext(ctx, q, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

// Create inserts a new project for the given user.
func (r *ProjectRepository) Create(ctx context.Context, userID int64, req *domain.CreateProjectRequest) (*domain.Project, error) {
	const q = `
WITH p AS (
	INSERT INTO projects (user_id, name, description, category_id, deadline, price)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING *
)
SELECT p.id, p.user_id, p.name, p.description, p.category_id, c.name,
       p.deadline, p.price::text, p.created_at, p.updated_at
FROM p
JOIN categories c ON c.id = p.category_id;
`
	p, err := scanProject(r.db.QueryRowContext(ctx, q,
		userID, req.Name, req.Description, req.CategoryID, req.Deadline, req.Price))
	if err != nil {
		return nil, mapWriteError("create project", err)
	}
	return p, nil
}

// Update writes the mutable columns of p if userID still owns it.
func (r *ProjectRepository) Update(ctx context.Context, userID int64, p *domain.Project) (*domain.Project, error) {
	const q = `
WITH p AS (
	UPDATE projects
	SET name = $3, description = $4, category_id = $5, deadline = $6, price = $7, updated_at = now()
	WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
	RETURNING *
)
SELECT p.id, p.user_id, p.name, p.description, p.category_id, c.name,
       p.deadline, p.price::text, p.created_at, p.updated_at
FROM p
JOIN categories c ON c.id = p.category_id;
`
	out, err := scanProject(r.db.QueryRowContext(ctx, q,
		p.ID, userID, p.Name, p.Description, p.CategoryID, p.Deadline, p.Price))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, mapWriteError("update project", err)
	}
	return out, nil
}

// SoftDelete marks a project as deleted (soft delete).
func (r *ProjectRepository) SoftDelete(ctx context.Context, userID, id int64) (bool, error) {
	const q = `
UPDATE projects
SET deleted_at = now(), updated_at = now()
WHERE user_id = $1 AND id = $2 AND deleted_at IS NULL;
`
	result, err := r.db.ExecContext(ctx, q, userID, id)
	if err != nil {
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func mapWriteError(op string, err error) error {
	if _, ok := postgres.ForeignKeyViolation(err); ok {
		return domain.ErrUnknownCategory
	}
	return fmt.Errorf("%s: %w", op, err)
}
