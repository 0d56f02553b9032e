package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"news-app/internal/domain"
	"news-app/pkg/datetime"

	"github.com/PuerkitoBio/goquery"
)

// Scraper extracts article content from a page URL.
type Scraper interface {
	Scrape(ctx context.Context, url string) (*domain.ArticleContent, error)
}

// HTMLScraper fetches a page over HTTP and pulls title, body text, lead
// image, authors and publication date out of its markup.
type HTMLScraper struct {
	client        *http.Client
	dateFormatter *datetime.Formatter
}

func NewHTMLScraper(dateFormatter *datetime.Formatter) *HTMLScraper {
	return &HTMLScraper{
		client:        &http.Client{Timeout: 15 * time.Second},
		dateFormatter: dateFormatter,
	}
}

func (s *HTMLScraper) Scrape(ctx context.Context, url string) (*domain.ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", "news-app/1.0")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch article page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("article page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse article page: %w", err)
	}

	content := &domain.ArticleContent{
		Title:         extractTitle(doc),
		Text:          extractText(doc),
		Image:         metaContent(doc, `meta[property="og:image"]`),
		Authors:       extractAuthors(doc),
		PublishedDate: s.extractPublishedDate(doc),
	}

	if content.Title == "" && content.Text == "" {
		return nil, fmt.Errorf("no article content found at %s", url)
	}

	return content, nil
}

func extractTitle(doc *goquery.Document) string {
	if title := metaContent(doc, `meta[property="og:title"]`); title != "" {
		return title
	}
	if title := strings.TrimSpace(doc.Find("h1").First().Text()); title != "" {
		return title
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractText(doc *goquery.Document) string {
	scope := doc.Find("article")
	if scope.Length() == 0 {
		scope = doc.Find("body")
	}

	var paragraphs []string
	scope.Find("p").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return strings.Join(paragraphs, "\n\n")
}

func extractAuthors(doc *goquery.Document) []string {
	seen := make(map[string]bool)
	var authors []string

	selectors := []string{
		`meta[name="author"]`,
		`meta[property="article:author"]`,
	}
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			name := strings.TrimSpace(sel.AttrOr("content", ""))
			if name != "" && !seen[name] {
				seen[name] = true
				authors = append(authors, name)
			}
		})
	}

	return authors
}

func (s *HTMLScraper) extractPublishedDate(doc *goquery.Document) string {
	selectors := []string{
		`meta[property="article:published_time"]`,
		`meta[name="date"]`,
		`meta[itemprop="datePublished"]`,
	}
	for _, selector := range selectors {
		if raw := metaContent(doc, selector); raw != "" {
			if normalized := s.dateFormatter.NormalizePublishedDate(raw); normalized != "" {
				return normalized
			}
			return raw
		}
	}

	if raw := strings.TrimSpace(doc.Find("time[datetime]").First().AttrOr("datetime", "")); raw != "" {
		if normalized := s.dateFormatter.NormalizePublishedDate(raw); normalized != "" {
			return normalized
		}
		return raw
	}

	return ""
}

func metaContent(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).First().AttrOr("content", ""))
}
