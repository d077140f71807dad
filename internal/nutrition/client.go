package nutrition

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.nal.usda.gov"
	searchPageSize = 5
	searchPath     = "/fdc/v1/foods/search"
	headerAPIKey   = "X-Api-Key"
)

// ErrUnauthorized means the API key was rejected; retrying with the same key is pointless
var ErrUnauthorized = errors.New("usda: api key rejected")

// Food is the best FoodData Central match for a query, nutrients per 100g
type Food struct {
	FDCID       int64   `json:"fdc_id"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
}

type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	limiter    *rate.Limiter
}

// NewClient creates a FoodData Central client issuing at most rps requests per second
func NewClient(apiKey, baseURL string, rps float64, timeout time.Duration) *Client {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// SearchFood returns the first match for query, or nil when FoodData Central has none
func (c *Client) SearchFood(ctx context.Context, query string) (*Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return nil, ErrUnauthorized
	}
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, errors.Wrap(err, "wait for usda rate limit")
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	payload, err := json.Marshal(map[string]any{
		"query":    query,
		"dataType": []string{"Foundation", "SR Legacy", "Survey (FNDDS)"},
		"pageSize": searchPageSize,
	})
	if err != nil {
		return nil, errors.Wrap(err, "marshal usda search payload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+searchPath, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "create usda request")
	}
	req.Header.Set("Content-Type", "application/json")
	// The key travels in a header so request URLs quoted in errors never carry it
	req.Header.Set(headerAPIKey, c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "execute usda request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read usda response")
	}
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, ErrUnauthorized
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, errors.Errorf("usda request failed with status %d", resp.StatusCode)
	}

	var parsed searchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errors.Wrap(err, "decode usda response")
	}
	if len(parsed.Foods) == 0 {
		return nil, nil
	}

	food := parsed.Foods[0]
	out := &Food{
		FDCID:       food.FDCID,
		Description: strings.TrimSpace(food.Description),
	}
	for _, n := range food.FoodNutrients {
		switch strings.ToLower(strings.TrimSpace(n.NutrientName)) {
		case "energy":
			// Energy is reported in both kcal and kJ
			if n.UnitName == "" || strings.EqualFold(n.UnitName, "kcal") {
				out.Calories = n.Value
			}
		case "protein":
			out.Protein = n.Value
		case "carbohydrate, by difference":
			out.Carbs = n.Value
		case "total lipid (fat)":
			out.Fat = n.Value
		}
	}
	return out, nil
}

type searchResponse struct {
	Foods []usdaFood `json:"foods"`
}

type usdaFood struct {
	FDCID         int64          `json:"fdcId"`
	Description   string         `json:"description"`
	FoodNutrients []usdaNutrient `json:"foodNutrients"`
}

type usdaNutrient struct {
	NutrientName string  `json:"nutrientName"`
	UnitName     string  `json:"unitName"`
	Value        float64 `json:"value"`
}

//   This project is the dining hall menu and ratings backend. Menus are compiled from the university dining services and served alongside student ratings for every meal period.
//   API Copyright (C) 2025 OpenSourceDUTH
//       This program is free software: you can redistribute it and/or modify
//       it under the terms of the GNU General Public License as published by
//       the Free Software Foundation, either version 3 of the License, or
//       (at your option) any later version.

//       This program is distributed in the hope that it will be useful,
//       but WITHOUT ANY WARRANTY; without even the implied warranty of
//       MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
//       GNU General Public License for more details.

//       You should have received a copy of the GNU General Public License
//       along with this program.  If not, see <https://www.gnu.org/licenses/>.
