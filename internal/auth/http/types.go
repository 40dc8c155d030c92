package http

import (
	"context"
	"time"

	"github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/auth/token"
)

// CredentialChecker verifies a username/password pair.
type CredentialChecker interface {
	Authenticate(ctx context.Context, username, password string) (*domain.Principal, error)
}

// UserLookup confirms the subject of a refresh token still exists.
type UserLookup interface {
	PrincipalByID(ctx context.Context, id int64) (*domain.Principal, error)
}

// Revoker records and checks revoked token ids.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type Handler struct {
	issuer      *token.Issuer
	revocations Revoker
	credentials CredentialChecker
	users       UserLookup
}

// New builds the token endpoints. revocations may be nil when Redis is not
// configured; logout then only succeeds without recording anything.
func New(issuer *token.Issuer, revocations Revoker, credentials CredentialChecker, users UserLookup) *Handler {
	return &Handler{
		issuer:      issuer,
		revocations: revocations,
		credentials: credentials,
		users:       users,
	}
}

type tokenReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type refreshReq struct {
	Refresh string `json:"refresh" binding:"required"`
}

type accessResp struct {
	Access string `json:"access"`
}
