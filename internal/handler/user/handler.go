package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	screenhandler "github.com/jwalitptl/restaurant-admin/internal/handler/screen"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	userService "github.com/jwalitptl/restaurant-admin/internal/service/user"
)

type Handler struct {
	service userService.UserServicer
	screens *screenhandler.Handler[model.User]
}

func NewHandler(service userService.UserServicer, screens *screenhandler.Handler[model.User]) *Handler {
	return &Handler{service: service, screens: screens}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.screens.RegisterRoutes(r)
	r.POST("", h.CreateUser)
	r.PUT("/:id", h.UpdateUser)
	r.DELETE("/:id", h.DeleteUser)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req model.UserInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Open(c)
	if !ok {
		return
	}
	if err := h.service.CreateUser(c.Request.Context(), sess.API, scr, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nil))
}

func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.UserInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.UpdateUser(c.Request.Context(), sess.API, scr, id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.DeleteUser(c.Request.Context(), sess.API, scr, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
