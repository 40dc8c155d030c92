package skills

import (
	"errors"
	"time"
)

var (
	ErrNotFound        = errors.New("skill not found")
	ErrUnknownCategory = errors.New("category does not exist")
)

type Skill struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	CategoryID int64     `json:"category"`
	CreatedAt  time.Time `json:"created_at"`
}

type createReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	Category int64  `json:"category" binding:"required,gt=0"`
}

type patchReq struct {
	Name     *string `json:"name" binding:"omitempty,max=255"`
	Category *int64  `json:"category" binding:"omitempty,gt=0"`
}
