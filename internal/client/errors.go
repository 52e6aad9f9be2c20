package client

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// APIError is a non-2xx reply from the restaurant API.
type APIError struct {
	Status  int
	Message string
	// Fields holds per-field validation messages when the API sends them.
	Fields map[string][]string
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status}
	if !gjson.ValidBytes(body) {
		return e
	}
	e.Message = strings.TrimSpace(gjson.GetBytes(body, "message").String())
	if errs := gjson.GetBytes(body, "errors"); errs.IsObject() {
		e.Fields = make(map[string][]string)
		errs.ForEach(func(key, value gjson.Result) bool {
			if value.IsArray() {
				for _, msg := range value.Array() {
					e.Fields[key.String()] = append(e.Fields[key.String()], msg.String())
				}
			} else {
				e.Fields[key.String()] = []string{value.String()}
			}
			return true
		})
	}
	return e
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = http.StatusText(e.Status)
	}
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, msg)
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(e.Fields[k], ", "))
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.Status, msg, strings.Join(parts, "; "))
}

// UserMessage is the server-provided message, empty when there was none.
func (e *APIError) UserMessage() string { return e.Message }

func (e *APIError) Unauthorized() bool { return e.Status == http.StatusUnauthorized }
