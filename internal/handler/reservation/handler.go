package reservation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	screenhandler "github.com/jwalitptl/restaurant-admin/internal/handler/screen"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	reservationService "github.com/jwalitptl/restaurant-admin/internal/service/reservation"
)

type Handler struct {
	service reservationService.ReservationServicer
	screens *screenhandler.Handler[model.Reservation]
}

func NewHandler(service reservationService.ReservationServicer, screens *screenhandler.Handler[model.Reservation]) *Handler {
	return &Handler{service: service, screens: screens}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	h.screens.RegisterRoutes(r)
	r.PUT("/:id/status", h.UpdateStatus)
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
