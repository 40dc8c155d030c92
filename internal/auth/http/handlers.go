package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth"
	"github.com/gigflow/gigflow-backend/internal/auth/domain"
	"github.com/gigflow/gigflow-backend/internal/auth/token"
	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
	"github.com/gigflow/gigflow-backend/internal/platform/logging"
)

const msgBadRefresh = "Token is invalid or expired"

// obtain exchanges credentials for an access/refresh pair.
func (h *Handler) obtain(c *gin.Context) {
	var req tokenReq
	if !httpx.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	user, err := h.credentials.Authenticate(ctx, req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		httpx.Detail(c, http.StatusUnauthorized, "No active account found with the given credentials")
		return
	}
	if err != nil {
		httpx.InternalError(c, "auth.obtain", err)
		return
	}

	pair, err := h.issuer.IssuePair(user.ID)
	if err != nil {
		httpx.InternalError(c, "auth.obtain", err)
		return
	}

	logging.NewLogger(ctx).LogInfof("auth.obtain", "user_id=%d", user.ID)
	c.JSON(http.StatusOK, pair)
}

// refresh issues a new access token for a valid, unrevoked refresh token.
func (h *Handler) refresh(c *gin.Context) {
	var req refreshReq
	if !httpx.BindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	claims, err := h.issuer.Parse(req.Refresh, token.TypeRefresh)
	if err != nil {
		httpx.Detail(c, http.StatusUnauthorized, msgBadRefresh)
		return
	}

	if h.revocations != nil {
		revoked, err := h.revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			logging.NewLogger(ctx).LogError("auth.refresh", err)
			httpx.Detail(c, http.StatusServiceUnavailable, "authentication temporarily unavailable")
			return
		}
		if revoked {
			httpx.Detail(c, http.StatusUnauthorized, msgBadRefresh)
			return
		}
	}

	userID, err := claims.UserID()
	if err != nil {
		httpx.Detail(c, http.StatusUnauthorized, msgBadRefresh)
		return
	}
	if _, err := h.users.PrincipalByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			httpx.Detail(c, http.StatusUnauthorized, "User not found")
			return
		}
		httpx.InternalError(c, "auth.refresh", err)
		return
	}

	access, _, err := h.issuer.Issue(userID, token.TypeAccess)
	if err != nil {
		httpx.InternalError(c, "auth.refresh", err)
		return
	}
	c.JSON(http.StatusOK, accessResp{Access: access})
}

// logout revokes the given refresh token and the access token used to call
// it. The refresh token must belong to the caller.
func (h *Handler) logout(c *gin.Context) {
	var req refreshReq
	if !httpx.BindJSON(c, &req) {
		return
	}

	user, _ := auth.CurrentUser(c)
	ctx := c.Request.Context()
	log := logging.NewLogger(ctx)

	claims, err := h.issuer.Parse(req.Refresh, token.TypeRefresh)
	if err != nil || claims.Subject != strconv.FormatInt(user.ID, 10) {
		httpx.Detail(c, http.StatusUnauthorized, msgBadRefresh)
		return
	}

	if h.revocations == nil {
		log.LogWarn("auth.logout", "revocation store disabled, tokens stay valid until expiry")
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.revocations.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		log.LogError("auth.logout", err)
		httpx.Detail(c, http.StatusServiceUnavailable, "authentication temporarily unavailable")
		return
	}
	if access, ok := auth.TokenClaims(c); ok {
		if err := h.revocations.Revoke(ctx, access.ID, access.ExpiresAt.Time); err != nil {
			log.LogError("auth.logout", err)
		}
	}

	log.LogInfof("auth.logout", "user_id=%d", user.ID)
	c.Status(http.StatusNoContent)
}
