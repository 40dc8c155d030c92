package categories

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("category not found")
	ErrInUse    = errors.New("category is referenced by users")
)

// Category is a job field that skills and projects hang off.
type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ListResult is one page of categories plus the total row count.
type ListResult struct {
	Count   int        `json:"count"`
	Results []Category `json:"results"`
}

type createReq struct {
	Name string `json:"name" binding:"required,max=255"`
}

type patchReq struct {
	Name *string `json:"name" binding:"omitempty,max=255"`
}
