// Package tmdb wraps the TMDb HTTP API. All requests pass through a shared
// rate limiter enforcing a fixed minimum delay between dispatches, so
// concurrent callers serialize FIFO instead of bursting past the upstream
// rate limit.
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://api.themoviedb.org/3"

// Details is the subset of catalog metadata the backend cares about.
type Details struct {
	MediaID     int     `json:"media_id"`
	MediaType   string  `json:"media_type"`
	Title       string  `json:"title"`
	ReleaseYear int     `json:"release_year,omitempty"`
	PosterPath  string  `json:"poster_path,omitempty"`
	VoteAverage float64 `json:"vote_average,omitempty"`
	Overview    string  `json:"overview,omitempty"`
}

// Client is a rate-limited TMDb API client.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
}

// New creates a Client dispatching at most one request per minInterval.
func New(apiKey string, minInterval time.Duration) *Client {
	if minInterval <= 0 {
		minInterval = 250 * time.Millisecond
	}
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// SetBaseURL overrides the API endpoint, for tests.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

type detailsResponse struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`      // movies
	Name         string  `json:"name"`       // tv
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	Overview     string  `json:"overview"`
}

type searchResponse struct {
	Results []detailsResponse `json:"results"`
}

// GetDetails fetches metadata for one catalog item.
func (c *Client) GetDetails(ctx context.Context, mediaType string, mediaID int) (*Details, error) {
	path := fmt.Sprintf("/%s/%d", apiPath(mediaType), mediaID)
	var resp detailsResponse
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return toDetails(mediaType, resp), nil
}

// GetTitle satisfies the fan-out notifier's catalog interface.
func (c *Client) GetTitle(ctx context.Context, mediaType string, mediaID int) (string, error) {
	details, err := c.GetDetails(ctx, mediaType, mediaID)
	if err != nil {
		return "", err
	}
	return details.Title, nil
}

// Search queries the catalog by free text.
func (c *Client) Search(ctx context.Context, mediaType, query string) ([]Details, error) {
	path := "/search/" + apiPath(mediaType)
	var resp searchResponse
	if err := c.get(ctx, path, url.Values{"query": {query}}, &resp); err != nil {
		return nil, err
	}
	results := make([]Details, 0, len(resp.Results))
	for _, r := range resp.Results {
		results = append(results, *toDetails(mediaType, r))
	}
	return results, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("tmdb responded %d for %s", resp.StatusCode, path)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// apiPath maps the local media kind onto TMDb's path segment.
func apiPath(mediaType string) string {
	if mediaType == "series" {
		return "tv"
	}
	return "movie"
}

func toDetails(mediaType string, r detailsResponse) *Details {
	title := r.Title
	date := r.ReleaseDate
	if mediaType == "series" {
		title = r.Name
		date = r.FirstAirDate
	}
	year := 0
	if len(date) >= 4 {
		if _, err := fmt.Sscanf(date[:4], "%d", &year); err != nil {
			year = 0
		}
	}
	return &Details{
		MediaID:     r.ID,
		MediaType:   mediaType,
		Title:       title,
		ReleaseYear: year,
		PosterPath:  r.PosterPath,
		VoteAverage: r.VoteAverage,
		Overview:    r.Overview,
	}
}
