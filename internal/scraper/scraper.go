// Package scraper adapts university dining sources into menu documents.
package scraper

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"DiningAPI/internal/menu"

	"github.com/pkg/errors"
)

// maxFeedBytes bounds a single feed response
const maxFeedBytes = 16 << 20

// Scraper produces the halls of one university
type Scraper interface {
	// University returns the lowercased source tag every produced hall carries
	University() string
	// Scrape fetches the current menus. Halls that could not be read are reported
	// with status "error" rather than failing the whole scrape.
	Scrape(ctx context.Context) (menu.Document, error)
}

// FeedScraper reads a university's menus from a JSON feed in either hall schema
type FeedScraper struct {
	university string
	url        string
	client     *http.Client
	now        func() time.Time
}

func NewFeedScraper(university, url string, timeout time.Duration) *FeedScraper {
	return &FeedScraper{
		university: strings.ToLower(strings.TrimSpace(university)),
		url:        url,
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

func (s *FeedScraper) University() string {
	return s.university
}

func (s *FeedScraper) Scrape(ctx context.Context) (menu.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s feed request", s.university)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s feed", s.university)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("%s feed returned status %d", s.university, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, errors.Wrapf(err, "read %s feed", s.university)
	}
	doc, err := menu.DecodeDocument(data, s.now())
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s feed", s.university)
	}

	for i := range doc {
		// Feeds do not always tag their halls
		if doc[i].Source == "" || doc[i].Source == "legacy" {
			doc[i].Source = s.university
		}
		doc[i].Source = strings.ToLower(doc[i].Source)
	}
	return doc, nil
}

// FromFeeds builds one FeedScraper per university=url pair, ordered by university
func FromFeeds(feeds map[string]string, timeout time.Duration) []Scraper {
	universities := make([]string, 0, len(feeds))
	for university := range feeds {
		universities = append(universities, university)
	}
	sort.Strings(universities)

	scrapers := make([]Scraper, 0, len(universities))
	for _, university := range universities {
		scrapers = append(scrapers, NewFeedScraper(university, feeds[university], timeout))
	}
	return scrapers
}
