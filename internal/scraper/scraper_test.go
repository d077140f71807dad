package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DiningAPI/internal/menu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedScraperDecodesBothSchemas(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"name": "John Jay", "source": "Columbia", "status": "open", "meals": [
				{"meal_type": "Lunch", "time": "11:00 AM - 2:00 PM", "stations": []}
			], "operating_hours": null, "scraped_at": "2025-03-03T10:00:00.000000"},
			{"name": "Hewitt", "source": "barnard", "meal_period": "dinner", "food_items": ["Rice"]},
			{"name": "Ferris", "meal_period": "breakfast", "food_items": ["Eggs"]}
		]`))
	}))
	defer ts.Close()

	s := NewFeedScraper("Columbia", ts.URL, time.Second)
	assert.Equal(t, "columbia", s.University())

	doc, err := s.Scrape(context.Background())
	require.NoError(t, err)
	require.Len(t, doc, 3)

	assert.Equal(t, "columbia", doc[0].Source)
	assert.Equal(t, "barnard", doc[1].Source)
	assert.Equal(t, "Dinner", doc[1].Meals[0].MealType)
	assert.Equal(t, "columbia", doc[2].Source, "untagged halls take the feed's university")
	assert.Equal(t, menu.StatusOpen, doc[2].Status)
}

func TestFeedScraperErrors(t *testing.T) {
	t.Run("bad status", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer ts.Close()

		_, err := NewFeedScraper("cornell", ts.URL, time.Second).Scrape(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "502")
	})

	t.Run("malformed body", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not": "a list"}`))
		}))
		defer ts.Close()

		_, err := NewFeedScraper("cornell", ts.URL, time.Second).Scrape(context.Background())
		assert.Error(t, err)
	})
}

func TestFromFeeds(t *testing.T) {
	scrapers := FromFeeds(map[string]string{
		"cornell":  "https://example.edu/cornell.json",
		"columbia": "https://example.edu/columbia.json",
	}, time.Second)

	require.Len(t, scrapers, 2)
	assert.Equal(t, "columbia", scrapers[0].University())
	assert.Equal(t, "cornell", scrapers[1].University())
	assert.Empty(t, FromFeeds(nil, time.Second))
}
