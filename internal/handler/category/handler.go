package category

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	categoryService "github.com/jwalitptl/restaurant-admin/internal/service/category"
	"github.com/jwalitptl/restaurant-admin/internal/session"
)

type Handler struct {
	service categoryService.CategoryServicer
}

func NewHandler(service categoryService.CategoryServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListCategories)
	r.POST("", h.CreateCategory)
	r.PUT("/:id", h.UpdateCategory)
	r.DELETE("/:id", h.DeleteCategory)
}

func current(c *gin.Context) (*session.Session, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
	}
	return sess, ok
}

func (h *Handler) ListCategories(c *gin.Context) {
	sess, ok := current(c)
	if !ok {
		return
	}
	items, err := h.service.ListCategories(c.Request.Context(), sess.API)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) CreateCategory(c *gin.Context) {
	var req model.CategoryInput
	if !handler.BindJSON(c, &req) {
		return
	}
	sess, ok := current(c)
	if !ok {
		return
	}
	if err := h.service.CreateCategory(c.Request.Context(), sess.API, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.ListCategories(c)
}

func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.CategoryInput
	if !handler.BindJSON(c, &req) {
		return
	}
	sess, ok := current(c)
	if !ok {
		return
	}
	if err := h.service.UpdateCategory(c.Request.Context(), sess.API, id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.ListCategories(c)
}

func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	sess, ok := current(c)
	if !ok {
		return
	}
	if err := h.service.DeleteCategory(c.Request.Context(), sess.API, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.ListCategories(c)
}
