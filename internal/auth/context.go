package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/auth/token"
)

const (
	CtxUser        = "auth_user"
	CtxTokenClaims = "auth_token_claims"
)

// SetUser stores the authenticated principal and the claims of the access
// token it was resolved from.
func SetUser(c *gin.Context, p *domain.Principal, claims *token.Claims) {
	c.Set(CtxUser, p)
	c.Set(CtxTokenClaims, claims)
}

// CurrentUser returns the principal set by the Authenticate middleware.
func CurrentUser(c *gin.Context) (*domain.Principal, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	p, ok := v.(*domain.Principal)
	return p, ok && p != nil
}

// TokenClaims returns the claims of the access token used on this request.
func TokenClaims(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(CtxTokenClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok && claims != nil
}
