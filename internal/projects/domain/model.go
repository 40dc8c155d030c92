package domain

import (
	"errors"
	"time"

	"github.com/gigflow/gigflow-backend/internal/platform/filter"
)

var (
	ErrNotFound        = errors.New("project not found")
	ErrEmployersOnly   = errors.New("only employers may do this")
	ErrUnknownCategory = errors.New("category does not exist")
)

// Project is a job posted by an employer. Price is kept as the decimal
// text the database returns so no precision is lost in transit.
type Project struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"user"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	CategoryID   int64     `json:"category"`
	CategoryName string    `json:"category_name"`
	Deadline     string    `json:"deadline"`
	Price        string    `json:"price"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// Filter columns, as aliased by the repository's list query.
const (
	ColumnName     = "p.name"
	ColumnCategory = "c.name"
)

// ProjectFilter holds the optional list parameters. A nil field is not
// applied.
type ProjectFilter struct {
	Name     *string
	Category *string
	Search   *string
}

// Conditions converts the filter into predicate conditions: name and search
// both match the project name, category matches the category name.
func (f ProjectFilter) Conditions() *filter.Set {
	s := &filter.Set{}
	return s.
		Contains(ColumnName, f.Name).
		Contains(ColumnCategory, f.Category).
		Contains(ColumnName, f.Search)
}

// Matches evaluates the filter against a loaded project.
func (f ProjectFilter) Matches(p *Project) bool {
	return f.Conditions().Match(map[string]string{
		ColumnName:     p.Name,
		ColumnCategory: p.CategoryName,
	})
}

type CreateProjectRequest struct {
	Name        string
	Description string
	CategoryID  int64
	Deadline    string
	Price       string
}

// UpdateProjectRequest carries only the fields the caller sent.
type UpdateProjectRequest struct {
	Name        *string
	Description *string
	CategoryID  *int64
	Deadline    *string
	Price       *string
}

func (r *UpdateProjectRequest) Apply(p *Project) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Description != nil {
		p.Description = *r.Description
	}
	if r.CategoryID != nil {
		p.CategoryID = *r.CategoryID
	}
	if r.Deadline != nil {
		p.Deadline = *r.Deadline
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
}
