package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipebox/frontend/config"
)

func TestNew(t *testing.T) {
	gin.SetMode(gin.TestMode)

	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"id":1,"title":"Soup","ingredients":"Water","instructions":"Boil","image":"soup.png","category":"Starter"}]`)
	}))
	defer api.Close()

	cfg := &config.Config{
		ServerHost:      "localhost",
		ServerPort:      "0",
		APIBaseURL:      api.URL,
		Categories:      []string{"Starter"},
		RateLimit:       10,
		RateLimitWindow: time.Minute,
	}

	srv, err := New(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, srv)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/", nil)
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Soup")

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/healthz", nil)
	srv.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	assert.NoError(t, srv.Shutdown(context.Background()))
}

func TestNewRejectsBadAPIURL(t *testing.T) {
	_, err := New(context.Background(), &config.Config{APIBaseURL: "not a url", ServerPort: "8080"})
	assert.Error(t, err)
}
