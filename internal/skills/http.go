package skills

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
)

type Handler struct {
	repo *Repo
}

func NewHandler(repo *Repo) *Handler {
	return &Handler{repo: repo}
}

// Register attaches skill routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.POST("", h.create)
	rg.PUT("/:id", h.replace)
	rg.PATCH("/:id", h.patch)
	rg.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	page, ok := httpx.PageRequest(c)
	if !ok {
		return
	}
	items, total, err := h.repo.List(c.Request.Context(), page.Limit(), page.Offset())
	if err != nil {
		httpx.InternalError(c, "skills.list", err)
		return
	}
	httpx.WritePage(c, page, total, items)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	s, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "skills.get", 0, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		httpx.Invalid(c, httpx.FieldErrors{"name": {"This field may not be blank."}})
		return
	}

	s, err := h.repo.Create(c.Request.Context(), name, req.Category)
	if err != nil {
		h.writeError(c, "skills.create", req.Category, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) replace(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	var req createReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	h.save(c, id, req.Name, req.Category)
}

func (h *Handler) patch(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	var req patchReq
	if !httpx.BindJSON(c, &req) {
		return
	}

	current, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "skills.patch", 0, err)
		return
	}
	name, category := current.Name, current.CategoryID
	if req.Name != nil {
		name = *req.Name
	}
	if req.Category != nil {
		category = *req.Category
	}
	h.save(c, id, name, category)
}

func (h *Handler) save(c *gin.Context, id int64, rawName string, category int64) {
	name := strings.TrimSpace(rawName)
	if name == "" {
		httpx.Invalid(c, httpx.FieldErrors{"name": {"This field may not be blank."}})
		return
	}
	s, err := h.repo.Update(c.Request.Context(), id, name, category)
	if err != nil {
		h.writeError(c, "skills.update", category, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "skills.delete", 0, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, op string, category int64, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Detail(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, ErrUnknownCategory):
		httpx.Invalid(c, httpx.FieldErrors{
			"category": {fmt.Sprintf("Invalid pk %q - object does not exist.", fmt.Sprint(category))},
		})
	default:
		httpx.InternalError(c, op, err)
	}
}
