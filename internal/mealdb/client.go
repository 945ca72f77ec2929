// Package mealdb fetches recipes from TheMealDB public API and converts
// them into SmartChef recipes.
package mealdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://www.themealdb.com/api/json/v1/1"
	defaultTimeout = 10 * time.Second
)

// Meal is one entry of a search response. Ingredients and measures come as
// twenty numbered fields and are collected by UnmarshalJSON.
type Meal struct {
	ID           string
	Name         string
	Category     string
	Instructions string
	Thumb        string
	Ingredients  []string
	Measures     []string

	// CategoryMissing is set when the response has no strCategory key at
	// all. A null or empty category is present but unmapped.
	CategoryMissing bool
}

func (m *Meal) UnmarshalJSON(data []byte) error {
	var raw map[string]*string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	get := func(key string) string {
		if v := raw[key]; v != nil {
			return *v
		}
		return ""
	}

	m.ID = get("idMeal")
	m.Name = get("strMeal")
	m.Category = get("strCategory")
	_, hasCategory := raw["strCategory"]
	m.CategoryMissing = !hasCategory
	m.Instructions = get("strInstructions")
	m.Thumb = get("strMealThumb")
	m.Ingredients = make([]string, 20)
	m.Measures = make([]string, 20)
	for i := 1; i <= 20; i++ {
		m.Ingredients[i-1] = get(fmt.Sprintf("strIngredient%d", i))
		m.Measures[i-1] = get(fmt.Sprintf("strMeasure%d", i))
	}
	return nil
}

type searchResponse struct {
	Meals []Meal `json:"meals"`
}

// Client talks to TheMealDB.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for baseURL, or DefaultBaseURL when empty.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// Search returns the meals whose name matches term. No match is an empty
// slice, not an error.
func (c *Client) Search(ctx context.Context, term string) ([]Meal, error) {
	endpoint := c.baseURL + "/search.php?s=" + url.QueryEscape(term)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to search %q: %w", term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mealdb returned status %d for %q", resp.StatusCode, term)
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if result.Meals == nil {
		return []Meal{}, nil
	}
	return result.Meals, nil
}
