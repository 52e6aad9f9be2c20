package role

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	roleService "github.com/jwalitptl/restaurant-admin/internal/service/role"
	"github.com/jwalitptl/restaurant-admin/internal/session"
)

type Handler struct {
	service roleService.RoleService
}

func NewHandler(service roleService.RoleService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.ListRoles)
	r.POST("", h.CreateRole)
	r.PUT("/:id", h.UpdateRole)
	r.DELETE("/:id", h.DeleteRole)
}

func current(c *gin.Context) (*session.Session, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
	}
	return sess, ok
}

func (h *Handler) ListRoles(c *gin.Context) {
	sess, ok := current(c)
	if !ok {
		return
	}
	items, err := h.service.ListRoles(c.Request.Context(), sess.API)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(items))
}

func (h *Handler) CreateRole(c *gin.Context) {
	var req model.RoleInput
	if !handler.BindJSON(c, &req) {
		return
	}
	sess, ok := current(c)
	if !ok {
		return
	}
	if err := h.service.CreateRole(c.Request.Context(), sess.API, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.ListRoles(c)
}

func (h *Handler) UpdateRole(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.RoleInput
	if !handler.BindJSON(c, &req) {
		return
	}
	sess, ok := current(c)
	if !ok {
		return
	}
	if err := h.service.UpdateRole(c.Request.Context(), sess.API, id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.ListRoles(c)
}

func (h *Handler) DeleteRole(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	sess, ok := current(c)
	if !ok {
		return
	}
	if err := h.service.DeleteRole(c.Request.Context(), sess.API, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	h.ListRoles(c)
}
