package categories

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gigflow/gigflow-backend/internal/platform/httpx"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Register attaches category routes. Write access is enforced by the
// caller's middleware on rg.
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
	res, err := h.svc.List(c.Request.Context(), page)
	if err != nil {
		httpx.InternalError(c, "categories.list", err)
		return
	}
	httpx.WritePage(c, page, res.Count, res.Results)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	cat, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, "categories.get", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if !httpx.BindJSON(c, &req) {
		return
	}
	name, ok := nonBlank(c, req.Name)
	if !ok {
		return
	}
	cat, err := h.svc.Create(c.Request.Context(), name)
	if err != nil {
		h.writeError(c, "categories.create", err)
		return
	}
	c.JSON(http.StatusCreated, cat)
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
	h.rename(c, id, req.Name)
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
	if req.Name == nil {
		// nothing to change
		h.get(c)
		return
	}
	h.rename(c, id, *req.Name)
}

func (h *Handler) rename(c *gin.Context, id int64, raw string) {
	name, ok := nonBlank(c, raw)
	if !ok {
		return
	}
	cat, err := h.svc.Rename(c.Request.Context(), id, name)
	if err != nil {
		h.writeError(c, "categories.update", err)
		return
	}
	c.JSON(http.StatusOK, cat)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := httpx.ParamID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, "categories.delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Detail(c, http.StatusNotFound, "Not found.")
	case errors.Is(err, ErrInUse):
		httpx.Detail(c, http.StatusConflict, "Cannot delete a category that users still reference.")
	default:
		httpx.InternalError(c, op, err)
	}
}

func nonBlank(c *gin.Context, raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		httpx.Invalid(c, httpx.FieldErrors{"name": {"This field may not be blank."}})
		return "", false
	}
	return name, true
}
