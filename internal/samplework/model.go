package samplework

import (
	"errors"
	"time"

	"github.com/gigflow/gigflow-backend/internal/platform/filter"
)

var (
	ErrNotFound        = errors.New("sample work not found")
	ErrFreelancersOnly = errors.New("only freelancers may do this")
	ErrNotOwner        = errors.New("sample work belongs to another user")
)

// SampleWork is a portfolio item a freelancer shows off.
type SampleWork struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Skill       string    `json:"skill"`
	Image       *string   `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`
}

const (
	columnName  = "name"
	columnSkill = "skill"
)

// Filter holds the optional list parameters: skill matches the skill text,
// search matches the name.
type Filter struct {
	Skill  *string
	Search *string
}

func (f Filter) Conditions() *filter.Set {
	s := &filter.Set{}
	return s.Contains(columnSkill, f.Skill).Contains(columnName, f.Search)
}

func (f Filter) Matches(w *SampleWork) bool {
	return f.Conditions().Match(map[string]string{columnName: w.Name, columnSkill: w.Skill})
}

type createReq struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description" binding:"required"`
	Skill       string  `json:"skill" binding:"required,max=255"`
	Image       *string `json:"image" binding:"omitempty,max=255"`
}

type updateReq struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	Skill       *string `json:"skill" binding:"omitempty,max=255"`
	Image       *string `json:"image" binding:"omitempty,max=255"`
}

func (r *updateReq) apply(w *SampleWork) {
	if r.Name != nil {
		w.Name = *r.Name
	}
	if r.Description != nil {
		w.Description = *r.Description
	}
	if r.Skill != nil {
		w.Skill = *r.Skill
	}
	if r.Image != nil {
		w.Image = r.Image
	}
}
