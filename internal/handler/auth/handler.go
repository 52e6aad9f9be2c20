package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/session"
)

type AuthServicer interface {
	Login(ctx context.Context, creds *model.Credentials) (*client.Auth, error)
	Logout(ctx context.Context, sess *session.Session) error
}

type Handler struct {
	service AuthServicer
}

func NewHandler(service AuthServicer) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes registers the routes that need no session.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	r.POST("/auth/login", h.Login)
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
}

func (h *Handler) Login(c *gin.Context) {
	var req model.Credentials
	if !handler.BindJSON(c, &req) {
		return
	}
	auth, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(auth))
}

func (h *Handler) Logout(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
		return
	}
	if err := h.service.Logout(c.Request.Context(), sess); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, &handler.Response{Status: "success", Message: "logged out"})
}
