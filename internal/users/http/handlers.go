package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth"
	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
	"github.com/gigflow/gigflow-backend/internal/platform/logging"
	"github.com/gigflow/gigflow-backend/internal/users/domain"
)

func (h *Handler) signup(c *gin.Context) {
	if _, ok := auth.CurrentUser(c); ok {
		httpx.Detail(c, http.StatusForbidden, "You cannot sign up because you already have an account.")
		return
	}

	var req signupReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	if strings.TrimSpace(req.Username) == "" {
		httpx.Invalid(c, httpx.FieldErrors{"username": {"This field may not be blank."}})
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req.toDomain())
	if err != nil {
		h.writeError(c, "users.signup", err)
		return
	}

	logging.NewLogger(c.Request.Context()).LogInfof("users.signup", "user_id=%d", user.ID)
	httpx.Data(c, http.StatusCreated, "User created successfully! Now you have an account.", user)
}

// me lists the caller as a one-element page.
func (h *Handler) me(c *gin.Context) {
	principal, ok := auth.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Please Sign-up")
		return
	}

	page, ok := httpx.PageRequest(c)
	if !ok {
		return
	}

	user, err := h.svc.Get(c.Request.Context(), principal.ID)
	if err != nil {
		h.writeError(c, "users.me", err)
		return
	}

	httpx.WritePage(c, page, 1, []*domain.User{user})
}

func (h *Handler) update(c *gin.Context) {
	principal, ok := auth.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	var req updateReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	if req.Username != nil && strings.TrimSpace(*req.Username) == "" {
		httpx.Invalid(c, httpx.FieldErrors{"username": {"This field may not be blank."}})
		return
	}

	user, err := h.svc.Update(c.Request.Context(), principal.ID, id, req.toDomain())
	if err != nil {
		h.writeError(c, "users.update", err)
		return
	}
	httpx.Data(c, http.StatusOK, "User updated successfully!", user)
}

func (h *Handler) delete(c *gin.Context) {
	principal, ok := auth.CurrentUser(c)
	if !ok {
		httpx.Detail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), principal.ID, id); err != nil {
		h.writeError(c, "users.delete", err)
		return
	}

	logging.NewLogger(c.Request.Context()).LogInfof("users.delete", "user_id=%d", id)
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	var fe *domain.FieldError
	switch {
	case errors.As(err, &fe):
		httpx.Invalid(c, httpx.FieldErrors{fe.Field: {fe.Message}})
	case errors.Is(err, domain.ErrNotFound):
		httpx.Detail(c, http.StatusNotFound, "User not found")
	case errors.Is(err, domain.ErrForbidden):
		httpx.Detail(c, http.StatusForbidden, "You are not authorized to modify this user.")
	default:
		httpx.InternalError(c, op, err)
	}
}
