package api

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBaseServerHealth(t *testing.T) {
	bs := NewBaseServer(":0", quietLogger())

	rr := httptest.NewRecorder()
	bs.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, TotalCountHeader, rr.Header().Get("Access-Control-Expose-Headers"))
}

func TestRecoveryMiddleware(t *testing.T) {
	bs := NewBaseServer(":0", quietLogger())
	bs.Router.HandleFunc("/boom", func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	rr := httptest.NewRecorder()
	bs.Router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Internal server error")
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteNotFound(rr, "player 3 not found")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.JSONEq(t, `{"message":"player 3 not found","code":404}`, rr.Body.String())
}

func TestClientGetWithQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/things", r.URL.Path)
		assert.Equal(t, "blue", r.URL.Query().Get("color"))
		_ = WriteJSON(w, http.StatusOK, map[string]int{"count": 2})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", nil)
	var out map[string]int
	err := c.Get(context.Background(), "/things", url.Values{"color": {"blue"}}, &out)
	require.NoError(t, err)
	assert.Equal(t, 2, out["count"])
}

func TestClientMapsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			WriteNotFound(w, "no such thing")
		case "/bad":
			WriteBadRequest(w, "bad thing")
		case "/plain":
			http.Error(w, "upstream exploded", http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())
	ctx := context.Background()

	err := c.Get(ctx, "/missing", nil, nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, http.StatusNotFound, GetHTTPStatusCode(err))
	assert.Contains(t, err.Error(), "no such thing")

	err = c.Post(ctx, "/bad", map[string]string{"a": "b"}, nil)
	assert.ErrorIs(t, err, ErrBadRequest)

	err = c.Delete(ctx, "/plain")
	assert.ErrorIs(t, err, ErrInternalError)
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, "upstream exploded", httpErr.Message)
}
