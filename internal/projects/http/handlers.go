package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/auth"
	"github.com/gigflow/gigflow-backend/internal/platform/filter"
	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
	"github.com/gigflow/gigflow-backend/internal/platform/logging"
	"github.com/gigflow/gigflow-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	page, ok := httpx.PageRequest(c)
	if !ok {
		return
	}

	f := domain.ProjectFilter{
		Name:     filter.Param(c.Query("name")),
		Category: filter.Param(c.Query("category")),
		Search:   filter.Param(c.Query("search")),
	}

	items, total, err := h.svc.List(c.Request.Context(), f, page.Limit(), page.Offset())
	if err != nil {
		httpx.InternalError(c, "projects.list", err)
		return
	}
	httpx.WritePage(c, page, total, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "projects.get", err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	user, _ := auth.CurrentUser(c)

	var req createReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	if fe := blankFields(map[string]*string{"name": &req.Name, "description": &req.Description, "deadline": &req.Deadline}); len(fe) > 0 {
		httpx.Invalid(c, fe)
		return
	}

	p, err := h.svc.Create(c.Request.Context(), user, req.toDomain())
	if err != nil {
		if errors.Is(err, domain.ErrEmployersOnly) {
			httpx.Detail(c, http.StatusForbidden, "Just employers can create a project")
			return
		}
		h.writeError(c, "projects.create", err)
		return
	}

	logging.NewLogger(c.Request.Context()).LogInfof("projects.create", "project_id=%d user_id=%d", p.ID, user.ID)
	httpx.Data(c, http.StatusCreated, "Project created successfully!", p)
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
	if fe := blankFields(map[string]*string{"name": req.Name, "description": req.Description, "deadline": req.Deadline}); len(fe) > 0 {
		httpx.Invalid(c, fe)
		return
	}

	p, err := h.svc.Update(c.Request.Context(), user, id, req.toDomain())
	if err != nil {
		h.writeError(c, "projects.update", err)
		return
	}
	httpx.Data(c, http.StatusOK, "Project updated successfully!", p)
}

func (h *Handler) delete(c *gin.Context) {
	user, _ := auth.CurrentUser(c)
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), user, id); err != nil {
		if errors.Is(err, domain.ErrEmployersOnly) {
			httpx.Detail(c, http.StatusForbidden, "Just employers can delete projects")
			return
		}
		h.writeError(c, "projects.delete", err)
		return
	}

	logging.NewLogger(c.Request.Context()).LogInfof("projects.delete", "project_id=%d user_id=%d", id, user.ID)
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httpx.Detail(c, http.StatusNotFound, "Project not found")
	case errors.Is(err, domain.ErrUnknownCategory):
		httpx.Invalid(c, httpx.FieldErrors{"category": {"Invalid pk - object does not exist."}})
	default:
		httpx.InternalError(c, op, err)
	}
}

// blankFields reports text values that are present but only whitespace.
func blankFields(fields map[string]*string) httpx.FieldErrors {
	fe := httpx.FieldErrors{}
	for field, v := range fields {
		if v != nil && strings.TrimSpace(*v) == "" {
			fe.Add(field, "This field may not be blank.")
		}
	}
	return fe
}
