package domain

import "errors"

const (
	UserTypeFreelancer = "freelancer"
	UserTypeEmployer   = "employer"
)

var (
	ErrInvalidCredentials = errors.New("no active account found with the given credentials")
	ErrInvalidToken       = errors.New("token is invalid")
	ErrExpiredToken       = errors.New("token is expired")
	ErrWrongTokenType     = errors.New("token has wrong type")
	ErrRevokedToken       = errors.New("token is revoked")
	ErrUserNotFound       = errors.New("user not found")
)

// Principal is the authenticated caller as seen by handlers.
type Principal struct {
	ID       int64
	Username string
	UserType string
	IsStaff  bool
}

func (p *Principal) IsFreelancer() bool {
	return p != nil && p.UserType == UserTypeFreelancer
}

func (p *Principal) IsEmployer() bool {
	return p != nil && p.UserType == UserTypeEmployer
}
