package nutrition

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"DiningAPI/internal/menu"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSearcher struct {
	foods   map[string]*Food
	errs    map[string]error
	queries []string
}

func (f *fakeSearcher) SearchFood(_ context.Context, query string) (*Food, error) {
	f.queries = append(f.queries, query)
	if err, ok := f.errs[query]; ok {
		return nil, err
	}
	return f.foods[query], nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func docWith(items ...menu.MenuItem) menu.Document {
	return menu.Document{{
		Name:   "John Jay",
		Source: "columbia",
		Meals: []menu.MealBlock{{
			MealType: "Lunch",
			Stations: []menu.Station{{Station: "Grill", Items: items}},
		}},
	}}
}

func TestEnrich(t *testing.T) {
	existing := 50.0
	search := &fakeSearcher{
		foods: map[string]*Food{
			"Eggs":   {Description: "Eggs", Calories: 143, Protein: 12.6, Carbs: 0.7, Fat: 9.5},
			"Omelet": {Description: "Egg omelet, plain", Calories: 154},
		},
		errs: map[string]error{"Broken": errors.New("timeout")},
	}
	doc := docWith(
		menu.MenuItem{Name: "Eggs"},
		menu.MenuItem{Name: "Omelet"},
		menu.MenuItem{Name: "eggs"},
		menu.MenuItem{Name: "Toast", Calories: &existing},
		menu.MenuItem{Name: "Broken"},
		menu.MenuItem{Name: "Unknown"},
	)

	require.NoError(t, NewEnricher(search, discardLogger()).Enrich(context.Background(), doc))
	items := doc[0].Meals[0].Stations[0].Items

	require.NotNil(t, items[0].Calories)
	assert.Equal(t, 143.0, *items[0].Calories)
	require.NotNil(t, items[0].Estimated)
	assert.False(t, *items[0].Estimated, "exact match is not an estimate")

	require.NotNil(t, items[1].Estimated)
	assert.True(t, *items[1].Estimated)

	require.NotNil(t, items[2].Calories, "same name served from the cache")
	assert.Equal(t, 50.0, *items[3].Calories, "already enriched items are left alone")
	assert.Nil(t, items[4].Calories)
	assert.Nil(t, items[5].Calories)

	assert.Equal(t, []string{"Eggs", "Omelet", "Broken", "Unknown"}, search.queries)
}

func TestEnrichAbortsOnUnauthorized(t *testing.T) {
	search := &fakeSearcher{errs: map[string]error{"Eggs": ErrUnauthorized}}
	doc := docWith(menu.MenuItem{Name: "Eggs"}, menu.MenuItem{Name: "Toast"})

	err := NewEnricher(search, discardLogger()).Enrich(context.Background(), doc)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, []string{"Eggs"}, search.queries)
}

func TestNopEnricher(t *testing.T) {
	doc := docWith(menu.MenuItem{Name: "Eggs"})
	require.NoError(t, NopEnricher{}.Enrich(context.Background(), doc))
	assert.Nil(t, doc[0].Meals[0].Stations[0].Items[0].Calories)
}

func TestSearchHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	search := &fakeSearcher{
		foods: map[string]*Food{"Eggs": {FDCID: 1, Description: "Eggs", Calories: 143}},
		errs:  map[string]error{"Broken": errors.New("timeout")},
	}

	newRouter := func(s Searcher) *gin.Engine {
		router := gin.New()
		RegisterRoutes(router.Group("/api"), NewHandler(s, discardLogger()))
		return router
	}

	tests := []struct {
		name     string
		searcher Searcher
		query    string
		want     int
		contains string
	}{
		{"match", search, "?q=Eggs", http.StatusOK, `"calories":143`},
		{"missing query", search, "", http.StatusBadRequest, "missing_query"},
		{"no match", search, "?q=Nothing", http.StatusNotFound, "not_found"},
		{"lookup failure", search, "?q=Broken", http.StatusInternalServerError, "search_failed"},
		{"not configured", nil, "?q=Eggs", http.StatusServiceUnavailable, "not configured"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			newRouter(tt.searcher).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/usda-search"+tt.query, nil))
			assert.Equal(t, tt.want, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.contains), w.Body.String())
		})
	}
}
