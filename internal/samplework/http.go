package samplework

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth"
	"github.com/gigflow/gigflow-backend/internal/auth/middleware"
	"github.com/gigflow/gigflow-backend/internal/platform/filter"
	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)

	authed := rg.Group("", middleware.RequireUser())
	authed.POST("", h.create)
	authed.PUT("/:id", h.update)
	authed.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	page, ok := httpx.PageRequest(c)
	if !ok {
		return
	}
	f := Filter{
		Skill:  filter.Param(c.Query("skill")),
		Search: filter.Param(c.Query("search")),
	}
	items, total, err := h.svc.List(c.Request.Context(), f, page.Limit(), page.Offset())
	if err != nil {
		httpx.InternalError(c, "samplework.list", err)
		return
	}
	httpx.WritePage(c, page, total, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	w, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "samplework.get", err)
		return
	}
	c.JSON(http.StatusOK, w)
}

func (h *Handler) create(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req createReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	if fe := blank(map[string]*string{"name": &req.Name, "description": &req.Description, "skill": &req.Skill}); len(fe) > 0 {
		httpx.Invalid(c, fe)
		return
	}

	w, err := h.svc.Create(c.Request.Context(), user, &req)
	if err != nil {
		if errors.Is(err, ErrFreelancersOnly) {
			httpx.Detail(c, http.StatusForbidden, "Only freelancers can create sample projects")
			return
		}
		h.writeError(c, "samplework.create", err)
		return
	}
	httpx.Data(c, http.StatusCreated, "Sample project created successfully!", w)
}

func (h *Handler) update(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	var req updateReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	if fe := blank(map[string]*string{"name": req.Name, "description": req.Description, "skill": req.Skill}); len(fe) > 0 {
		httpx.Invalid(c, fe)
		return
	}

	w, err := h.svc.Update(c.Request.Context(), user, id, &req)
	if err != nil {
		h.writeError(c, "samplework.update", err)
		return
	}
	httpx.Data(c, http.StatusOK, "Sample project updated successfully!", w)
}

func (h *Handler) delete(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user, id); err != nil {
		if errors.Is(err, ErrFreelancersOnly) {
			httpx.Detail(c, http.StatusForbidden, "Only freelancers can delete their sample projects")
			return
		}
		h.writeError(c, "samplework.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Detail(c, http.StatusNotFound, "Sample project not found")
	case errors.Is(err, ErrNotOwner):
		httpx.Detail(c, http.StatusForbidden, "You can only update your own sample projects")
	default:
		httpx.InternalError(c, op, err)
	}
}

func blank(fields map[string]*string) httpx.FieldErrors {
	fe := httpx.FieldErrors{}
	for name, v := range fields {
		if v != nil && strings.TrimSpace(*v) == "" {
			fe.Add(name, "This field may not be blank.")
		}
	}
	return fe
}
