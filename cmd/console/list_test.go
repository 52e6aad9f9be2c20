package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeRemote(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			fmt.Fprint(w, `{"data":{"token":"tok-9","user":{"id":4,"name":"Omar","role_id":2}}}`)
		case "/manager/tables":
			if r.Header.Get("Authorization") != "Bearer tok-9" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			fmt.Fprint(w, `{"tables":[
				{"id":1,"name":"Patio","capacity":4,"type":"family","status":"available","is_active":1},
				{"id":2,"name":"Bar","capacity":2,"type":"double","status":"occupied","is_active":1},
				{"id":3,"name":"Hall","capacity":8,"type":"special","status":"available","is_active":0}
			]}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestLogin(t *testing.T) {
	url := fakeRemote(t)
	out, err := run(t, "login", "--api", url, "--email", "omar@example.com", "--password", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-9\n", out)

	_, err = run(t, "login", "--api", url, "--email", "omar")
	assert.Error(t, err)
}

func TestListTable(t *testing.T) {
	url := fakeRemote(t)
	out, err := run(t, "list", "tables", "--api", url, "--token", "tok-9", "-f", "status=available", "--sort", "capacity", "--dir", "desc")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "Hall")
	assert.Contains(t, lines[2], "Patio")
}

func TestListJSON(t *testing.T) {
	url := fakeRemote(t)
	out, err := run(t, "list", "tables", "--api", url, "--token", "tok-9", "-s", "BAR", "-o", "json")
	require.NoError(t, err)

	var rows []struct {
		ID int64 `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 1)
	assert.EqualValues(t, 2, rows[0].ID)
}

func TestListErrors(t *testing.T) {
	url := fakeRemote(t)

	_, err := run(t, "list", "tables", "--api", url, "--token", "")
	assert.ErrorIs(t, err, errNoToken)

	_, err = run(t, "list", "kitchens", "--api", url, "--token", "tok-9")
	assert.Error(t, err)

	_, err = run(t, "list", "tables", "--api", url, "--token", "tok-9", "-f", "status")
	assert.Error(t, err)

	_, err = run(t, "list", "tables", "--api", url, "--token", "tok-9", "--sort", "weight")
	assert.Error(t, err)
}
