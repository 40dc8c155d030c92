package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth"
	"github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/auth/token"
	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
	"github.com/gigflow/gigflow-backend/internal/platform/logging"
)

type TokenParser interface {
	Parse(raw, typ string) (*token.Claims, error)
}

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type PrincipalLoader interface {
	PrincipalByID(ctx context.Context, id int64) (*domain.Principal, error)
}

const msgInvalidToken = "Given token not valid for any token type"

// Authenticate resolves an optional bearer token into a principal. Requests
// without an Authorization header pass through anonymously; a header that
// is present but does not carry a valid, unrevoked access token is a 401.
// revocations may be nil.
func Authenticate(parser TokenParser, revocations RevocationChecker, loader PrincipalLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		raw := extractToken(header)
		if raw == "" {
			httpx.AbortDetail(c, http.StatusUnauthorized, "Authorization header must contain a Bearer token")
			return
		}

		claims, err := parser.Parse(raw, token.TypeAccess)
		if err != nil {
			httpx.AbortDetail(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		ctx := c.Request.Context()
		if revocations != nil {
			revoked, err := revocations.IsRevoked(ctx, claims.ID)
			if err != nil {
				logging.NewLogger(ctx).LogError("auth.revocation_check", err)
				httpx.AbortDetail(c, http.StatusServiceUnavailable, "authentication temporarily unavailable")
				return
			}
			if revoked {
				httpx.AbortDetail(c, http.StatusUnauthorized, msgInvalidToken)
				return
			}
		}

		userID, err := claims.UserID()
		if err != nil {
			httpx.AbortDetail(c, http.StatusUnauthorized, msgInvalidToken)
			return
		}

		principal, err := loader.PrincipalByID(ctx, userID)
		if errors.Is(err, domain.ErrUserNotFound) {
			httpx.AbortDetail(c, http.StatusUnauthorized, "User not found")
			return
		}
		if err != nil {
			logging.NewLogger(ctx).LogError("auth.load_user", err)
			httpx.AbortDetail(c, http.StatusInternalServerError, "internal server error")
			return
		}

		auth.SetUser(c, principal, claims)
		c.Next()
	}
}

// RequireUser rejects anonymous requests with a 401.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.CurrentUser(c); !ok {
			httpx.AbortDetail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		c.Next()
	}
}

// StaffOrReadOnly lets safe methods through and requires a staff user for
// everything else.
func StaffOrReadOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		user, ok := auth.CurrentUser(c)
		if !ok {
			httpx.AbortDetail(c, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		if !user.IsStaff {
			httpx.AbortDetail(c, http.StatusForbidden, "You do not have permission to perform this action.")
			return
		}
		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(header string) string {
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}
