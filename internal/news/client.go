package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"news-app/internal/domain"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

// Client fetches article listings from the external news API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// NewClientWithBaseURL is used by tests to point the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = baseURL
	return c
}

type listingResponse struct {
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URLToImage  string `json:"urlToImage"`
		URL         string `json:"url"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Search queries the news API for articles matching the category and maps
// the upstream payload into Headline values.
func (c *Client) Search(ctx context.Context, category string) ([]domain.Headline, error) {
	params := url.Values{}
	params.Set("apiKey", c.apiKey)
	params.Set("language", "en")
	params.Set("q", category)
	params.Set("pageSize", "10")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: upstream returned status %d", domain.ErrUpstreamFetch, resp.StatusCode)
	}

	var payload listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFetch, err)
	}

	headlines := make([]domain.Headline, 0, len(payload.Articles))
	for i, article := range payload.Articles {
		headlines = append(headlines, domain.Headline{
			ID:          i,
			Title:       article.Title,
			Description: article.Description,
			Image:       article.URLToImage,
			Source:      article.Source.Name,
			URL:         article.URL,
		})
	}

	return headlines, nil
}
