package domain

// ArticleContent is the scraped body of a single article, keyed by its
// source URL in the article cache.
type ArticleContent struct {
	Title         string   `json:"title"`
	Text          string   `json:"text"`
	Image         string   `json:"image"`
	Authors       []string `json:"authors"`
	PublishedDate string   `json:"published_date"`
}

// Headline is one mapped item from the external news-listing API.
type Headline struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Source      string `json:"source"`
	URL         string `json:"url"`
}
