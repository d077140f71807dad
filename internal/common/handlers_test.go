package common

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAPIResponse(t *testing.T) {
	resp := CreateSuccessResponse(nil, gin.H{"ok": true})
	assert.Empty(t, resp.Errors)
	assert.NotNil(t, resp.Errors)
	assert.Equal(t, Version, resp.Metadata.Version)
	_, err := uuid.Parse(resp.Metadata.RequestID)
	assert.NoError(t, err)

	resp = CreateAPIResponse(nil, nil, "req-1")
	assert.Equal(t, "req-1", resp.Metadata.RequestID)
	assert.Equal(t, []string{}, resp.Errors)

	resp = CreateErrorResponse(nil, []string{"bad"})
	assert.Nil(t, resp.Data)
	assert.Equal(t, []string{"bad"}, resp.Errors)
}

func TestStatusAndHome(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", Home)
	RegisterRoutes(router.Group("/api"))

	for _, path := range []string{"/", "/api/status"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		require.Equal(t, http.StatusOK, w.Code, path)

		var body struct {
			Data map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "running", body.Data["status"], path)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", Home)

	decode := func(w *httptest.ResponseRecorder) string {
		t.Helper()
		var body APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body.Metadata.RequestID
	}

	t.Run("client id is reused", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "trace-42")
		router.ServeHTTP(w, req)

		assert.Equal(t, "trace-42", w.Header().Get(HeaderRequestID))
		assert.Equal(t, "trace-42", decode(w))
	})

	t.Run("generated when missing or malformed", func(t *testing.T) {
		for _, header := range []string{"", "has space", strings.Repeat("a", 65)} {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if header != "" {
				req.Header.Set(HeaderRequestID, header)
			}
			router.ServeHTTP(w, req)

			id := w.Header().Get(HeaderRequestID)
			_, err := uuid.Parse(id)
			assert.NoError(t, err, "header %q", header)
			assert.Equal(t, id, decode(w))
		}
	})
}
