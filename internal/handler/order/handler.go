package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	screenhandler "github.com/jwalitptl/restaurant-admin/internal/handler/screen"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	orderService "github.com/jwalitptl/restaurant-admin/internal/service/order"
)

type Handler struct {
	service orderService.OrderServicer
	screens *screenhandler.Handler[model.Order]
}

func NewHandler(service orderService.OrderServicer, screens *screenhandler.Handler[model.Order]) *Handler {
	return &Handler{service: service, screens: screens}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.screens.RegisterRoutes(r)
	r.PUT("/:id/status", h.UpdateStatus)
	r.PUT("/:id/items/:item/status", h.UpdateItemStatus)
	r.PUT("/:id/delivered", h.MarkDelivered)
	r.PUT("/:id/cancel", h.Cancel)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.StatusInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.UpdateStatus(c.Request.Context(), sess.API, scr, id, req.Status); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) UpdateItemStatus(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := handler.ParseID(c, "item")
	if !ok {
		return
	}
	var req model.StatusInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.UpdateItemStatus(c.Request.Context(), sess.API, scr, id, itemID, req.Status); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) MarkDelivered(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.MarkDelivered(c.Request.Context(), sess.API, scr, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.Cancel(c.Request.Context(), sess.API, scr, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
