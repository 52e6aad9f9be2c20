package dashboard

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/session"
)

type DashboardServicer interface {
	Get(ctx context.Context, api *client.API) (*model.Dashboard, error)
}

type Handler struct {
	service DashboardServicer
}

func NewHandler(service DashboardServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.GetDashboard)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
		return
	}
	d, err := h.service.Get(c.Request.Context(), sess.API)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(d))
}
