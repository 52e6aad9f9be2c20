package menu

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/menu"
	"github.com/jwalitptl/restaurant-admin/internal/session"
)

type Handler struct{}

func NewHandler() *Handler { return &Handler{} }

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/menu", h.GetMenu)
	r.GET("/me", h.GetAccount)
}

// GetMenu lists the screens the signed-in role may open.
func (h *Handler) GetMenu(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
		return
	}
	entries := menu.Visible(sess.RoleID())
	if entries == nil {
		entries = []menu.Entry{}
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(entries))
}

func (h *Handler) GetAccount(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(sess.Account))
}
