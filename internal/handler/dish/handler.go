package dish

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	screenhandler "github.com/jwalitptl/restaurant-admin/internal/handler/screen"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	dishService "github.com/jwalitptl/restaurant-admin/internal/service/dish"
)

type Handler struct {
	service dishService.DishServicer
	screens *screenhandler.Handler[model.Dish]
}

func NewHandler(service dishService.DishServicer, screens *screenhandler.Handler[model.Dish]) *Handler {
	return &Handler{service: service, screens: screens}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.screens.RegisterRoutes(r)
	r.POST("", h.CreateDish)
	r.PUT("/:id", h.UpdateDish)
	r.DELETE("/:id", h.DeleteDish)
	r.POST("/:id/discount", h.ApplyDiscount)
	r.DELETE("/:id/discount", h.RemoveDiscount)
}

func (h *Handler) CreateDish(c *gin.Context) {
	var req model.DishInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Open(c)
	if !ok {
		return
	}
	if err := h.service.CreateDish(c.Request.Context(), sess.API, scr, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nil))
}

func (h *Handler) UpdateDish(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.DishInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.UpdateDish(c.Request.Context(), sess.API, scr, id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteDish(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.DeleteDish(c.Request.Context(), sess.API, scr, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.DiscountInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.ApplyDiscount(c.Request.Context(), sess.API, scr, id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) RemoveDiscount(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.RemoveDiscount(c.Request.Context(), sess.API, scr, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
