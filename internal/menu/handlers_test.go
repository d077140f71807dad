package menu

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	mu    sync.Mutex
	doc   Document
	reads int
}

func (f *fakeSource) Latest(context.Context) (Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reads++
	return f.doc, nil
}

func (f *fakeSource) set(doc Document) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.doc = doc
}

type fakeRefresher struct {
	mu       sync.Mutex
	triggers int
	onStart  func()
}

func (f *fakeRefresher) Trigger() bool {
	f.mu.Lock()
	f.triggers++
	onStart := f.onStart
	f.mu.Unlock()
	if onStart != nil {
		onStart()
	}
	return true
}

type envelope struct {
	Data   json.RawMessage `json:"data"`
	Errors []string        `json:"errors"`
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/api"), h)
	return router
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func get(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestGetDiningHalls(t *testing.T) {
	source := &fakeSource{doc: Document{{Name: "John Jay", Source: "columbia", Status: StatusOpen, Meals: []MealBlock{}}}}
	refresher := &fakeRefresher{}
	router := newTestRouter(NewHandler(source, refresher, 10*time.Millisecond, discardLogger()))

	w, body := get(t, router, "/api/dining-halls")
	require.Equal(t, http.StatusOK, w.Code)

	var doc Document
	require.NoError(t, json.Unmarshal(body.Data, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "John Jay", doc[0].Name)
	assert.Equal(t, 0, refresher.triggers)
}

func TestGetDiningHallsWaitsForFirstRefresh(t *testing.T) {
	source := &fakeSource{}
	refresher := &fakeRefresher{}
	refresher.onStart = func() {
		go func() {
			time.Sleep(5 * time.Millisecond)
			source.set(Document{{Name: "Ferris", Source: "columbia", Meals: []MealBlock{}}})
		}()
	}
	router := newTestRouter(NewHandler(source, refresher, 100*time.Millisecond, discardLogger()))

	w, body := get(t, router, "/api/dining-halls")
	require.Equal(t, http.StatusOK, w.Code)

	var doc Document
	require.NoError(t, json.Unmarshal(body.Data, &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, "Ferris", doc[0].Name)
	assert.Equal(t, 1, refresher.triggers)
}

func TestGetDiningHallsUnavailable(t *testing.T) {
	source := &fakeSource{}
	refresher := &fakeRefresher{}
	router := newTestRouter(NewHandler(source, refresher, 20*time.Millisecond, discardLogger()))

	w, body := get(t, router, "/api/dining-halls")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, []string{"Menu data not available"}, body.Errors)
	assert.Equal(t, 1, refresher.triggers)
}

func TestRefreshAlwaysAccepted(t *testing.T) {
	router := newTestRouter(NewHandler(&fakeSource{}, &fakeRefresher{}, time.Millisecond, discardLogger()))

	for i := 0; i < 2; i++ {
		w, body := get(t, router, "/api/refresh")
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status": "success", "message": "Refresh started"}`, string(body.Data))
	}
}
