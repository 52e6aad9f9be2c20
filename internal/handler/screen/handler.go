// Package screen serves the list screens: the displayed view and the
// filter, search and sort state behind it.
package screen

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/restaurant-admin/internal/client"
	"github.com/jwalitptl/restaurant-admin/internal/handler"
	"github.com/jwalitptl/restaurant-admin/internal/model"
	"github.com/jwalitptl/restaurant-admin/internal/screen"
	"github.com/jwalitptl/restaurant-admin/internal/session"
	"github.com/jwalitptl/restaurant-admin/internal/view"
)

// Factory builds a fresh screen for one session.
type Factory[T model.Record] func(api *client.API) *screen.Screen[T]

type Handler[T model.Record] struct {
	name    string
	factory Factory[T]
}

func NewHandler[T model.Record](name string, f Factory[T]) *Handler[T] {
	return &Handler[T]{name: name, factory: f}
}

func (h *Handler[T]) key() string { return "screen:" + h.name }

// Open returns the session's screen, creating it on first use. It
// answers the request itself and returns false when no screen is
// available.
func (h *Handler[T]) Open(c *gin.Context) (*screen.Screen[T], *session.Session, bool) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
		return nil, nil, false
	}
	v, err := sess.Attach(h.key(), func() io.Closer { return h.factory(sess.API) })
	if err != nil {
		handler.RespondError(c, err)
		return nil, nil, false
	}
	return v.(*screen.Screen[T]), sess, true
}

// Mounted is Open followed by an initial fetch when needed, for
// mutations that need the current rows.
func (h *Handler[T]) Mounted(c *gin.Context) (*screen.Screen[T], *session.Session, bool) {
	scr, sess, ok := h.Open(c)
	if !ok {
		return nil, nil, false
	}
	if err := scr.Ensure(c.Request.Context()); err != nil {
		handler.RespondError(c, err)
		return nil, nil, false
	}
	return scr, sess, true
}

func (h *Handler[T]) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", h.GetView)
	r.GET("/state", h.GetState)
	r.PUT("/filters", h.SetFilters)
	r.PUT("/sort", h.SetSort)
	r.POST("/sort/toggle", h.ToggleSort)
	r.PUT("/search", h.SetSearch)
	r.POST("/refresh", h.Refresh)
	r.DELETE("/screen", h.Unmount)
}

func (h *Handler[T]) GetView(c *gin.Context) {
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	v, err := scr.View(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(v))
}

func (h *Handler[T]) GetState(c *gin.Context) {
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(scr.State()))
}

type filtersRequest struct {
	Filters view.FilterState `json:"filters"`
}

func (h *Handler[T]) SetFilters(c *gin.Context) {
	var req filtersRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	if err := scr.SetFilters(req.Filters); err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(scr.State()))
}

type sortRequest struct {
	Key       string `json:"key"`
	Direction string `json:"direction"`
}

func (h *Handler[T]) SetSort(c *gin.Context) {
	var req sortRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	st, err := scr.SetSort(view.SortState{
		Key:       view.SortKey(strings.TrimSpace(req.Key)),
		Direction: view.Direction(strings.ToLower(strings.TrimSpace(req.Direction))),
	})
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(st))
}

func (h *Handler[T]) ToggleSort(c *gin.Context) {
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(scr.ToggleSort()))
}

type searchRequest struct {
	Term string `json:"term"`
}

// SetSearch records the raw term. Views pick it up after the debounce
// window, so the response is 202.
func (h *Handler[T]) SetSearch(c *gin.Context) {
	var req searchRequest
	if !handler.BindJSON(c, &req) {
		return
	}
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	scr.Search(req.Term)
	c.JSON(http.StatusAccepted, handler.NewSuccessResponse(scr.State()))
}

func (h *Handler[T]) Refresh(c *gin.Context) {
	scr, _, ok := h.Open(c)
	if !ok {
		return
	}
	if err := scr.Refresh(c.Request.Context()); err != nil {
		handler.RespondError(c, err)
		return
	}
	v, err := scr.View(c.Request.Context())
	if err != nil {
		handler.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(v))
}

// Unmount discards the screen state of this session.
func (h *Handler[T]) Unmount(c *gin.Context) {
	sess, ok := session.FromContext(c.Request.Context())
	if !ok {
		handler.RespondError(c, session.ErrUnauthenticated)
		return
	}
	sess.Detach(h.key())
	c.Status(http.StatusNoContent)
}
