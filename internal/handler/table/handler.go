package table

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	screenhandler "github.com/jwalitptl/restaurant-admin/internal/handler/screen"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	tableService "github.com/jwalitptl/restaurant-admin/internal/service/table"
)

type Handler struct {
	service tableService.TableServicer
	screens *screenhandler.Handler[model.Table]
}

func NewHandler(service tableService.TableServicer, screens *screenhandler.Handler[model.Table]) *Handler {
	return &Handler{service: service, screens: screens}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.screens.RegisterRoutes(r)
	r.POST("", h.CreateTable)
	r.PUT("/:id", h.UpdateTable)
	r.DELETE("/:id", h.DeleteTable)
}

func (h *Handler) CreateTable(c *gin.Context) {
	var req model.TableInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Open(c)
	if !ok {
		return
	}
	if err := h.service.CreateTable(c.Request.Context(), sess.API, scr, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(nil))
}

func (h *Handler) UpdateTable(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	var req model.TableInput
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.UpdateTable(c.Request.Context(), sess.API, scr, id, &req); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}

func (h *Handler) DeleteTable(c *gin.Context) {
	id, ok := handler.ParseID(c, "id")
	if !ok {
		return
	}
	scr, sess, ok := h.screens.Mounted(c)
	if !ok {
		return
	}
	if err := h.service.DeleteTable(c.Request.Context(), sess.API, scr, id); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(nil))
}
