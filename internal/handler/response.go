package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// RespondError maps err to a status and writes the error envelope.
// Server-side failures are logged with the request logger.
func RespondError(c *gin.Context, err error) {
	appErr := AsAppError(err)
	status := appErr.Status()
	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Int("status", status).Msg("Request failed")
	}
	_ = c.Error(err)
	resp := NewErrorResponse(appErr.Message)
	resp.Errors = appErr.Details
	c.AbortWithStatusJSON(status, resp)
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid "+name))
		return 0, false
	}
	return id, true
}

// BindJSON decodes the request body, answering 400 on malformed JSON.
func BindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, NewErrorResponse("invalid request body"))
		return false
	}
	return true
}
