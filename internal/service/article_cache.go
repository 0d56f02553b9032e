package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"news-app/internal/domain"
	"news-app/internal/scraper"

	"golang.org/x/sync/singleflight"
)

// ArticleCache memoizes scraped article content by URL for the lifetime of
// the process. Failures are never cached, so a retry can succeed later.
type ArticleCache struct {
	scraper scraper.Scraper

	mu      sync.RWMutex
	entries map[string]*domain.ArticleContent
	group   singleflight.Group
}

func NewArticleCache(sc scraper.Scraper) *ArticleCache {
	return &ArticleCache{
		scraper: sc,
		entries: make(map[string]*domain.ArticleContent),
	}
}

// GetOrFetch returns the cached content for url, scraping it on first use.
// Concurrent misses for the same URL are coalesced into a single scrape.
func (c *ArticleCache) GetOrFetch(ctx context.Context, url string) (*domain.ArticleContent, error) {
	if url == "" {
		return nil, domain.ErrInvalidArticleURL
	}

	c.mu.RLock()
	content, ok := c.entries[url]
	c.mu.RUnlock()
	if ok {
		return content, nil
	}

	result, err, _ := c.group.Do(url, func() (interface{}, error) {
		// A racing caller may have populated the entry while this one
		// was waiting on the flight group.
		c.mu.RLock()
		cached, ok := c.entries[url]
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		scraped, err := c.scraper.Scrape(ctx, url)
		if err != nil {
			log.Printf("Error scraping article %s: %v", url, err)
			return nil, fmt.Errorf("%w: %v", domain.ErrScrapeFailed, err)
		}

		c.mu.Lock()
		c.entries[url] = scraped
		c.mu.Unlock()

		return scraped, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*domain.ArticleContent), nil
}

// Len reports the number of cached articles.
func (c *ArticleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
