package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"news-app/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeScraper counts calls and can be told to fail.
type fakeScraper struct {
	mu    sync.Mutex
	calls int64
	err   error
}

func (f *fakeScraper) Scrape(_ context.Context, url string) (*domain.ArticleContent, error) {
	atomic.AddInt64(&f.calls, 1)

	f.mu.Lock()
	err := f.err
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return &domain.ArticleContent{
		Title: "Title for " + url,
		Text:  "Body for " + url,
	}, nil
}

func (f *fakeScraper) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func (f *fakeScraper) callCount() int64 {
	return atomic.LoadInt64(&f.calls)
}

func TestArticleCache_GetOrFetch(t *testing.T) {
	sc := &fakeScraper{}
	cache := NewArticleCache(sc)
	ctx := context.Background()

	first, err := cache.GetOrFetch(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "Title for https://example.com/a", first.Title)

	second, err := cache.GetOrFetch(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Same(t, first, second, "a cache hit must return the stored value")
	assert.Equal(t, int64(1), sc.callCount(), "the second call must not scrape again")
}

func TestArticleCache_EmptyURL(t *testing.T) {
	cache := NewArticleCache(&fakeScraper{})

	_, err := cache.GetOrFetch(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArticleURL)
}

// A failed scrape must not be cached, so a later retry can succeed.
func TestArticleCache_FailureNotSticky(t *testing.T) {
	sc := &fakeScraper{}
	sc.setErr(errors.New("connection refused"))
	cache := NewArticleCache(sc)
	ctx := context.Background()

	_, err := cache.GetOrFetch(ctx, "https://example.com/a")
	assert.ErrorIs(t, err, domain.ErrScrapeFailed)
	assert.Equal(t, 0, cache.Len())

	sc.setErr(nil)
	content, err := cache.GetOrFetch(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "Title for https://example.com/a", content.Title)
	assert.Equal(t, 1, cache.Len())
}

// Concurrent misses for the same URL are coalesced into a single scrape,
// and every caller sees identical content.
func TestArticleCache_CoalescesConcurrentMisses(t *testing.T) {
	sc := &fakeScraper{}
	cache := NewArticleCache(sc)
	ctx := context.Background()

	const callers = 8
	results := make([]*domain.ArticleContent, callers)
	errs := make([]error, callers)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = cache.GetOrFetch(ctx, "https://example.com/hot")
		}(i)
	}
	start.Done()
	done.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
	assert.Equal(t, int64(1), sc.callCount(), "concurrent misses must trigger at most one scrape")
}

func TestArticleCache_DistinctKeysDoNotInterfere(t *testing.T) {
	sc := &fakeScraper{}
	cache := NewArticleCache(sc)
	ctx := context.Background()

	const keys = 16
	var wg sync.WaitGroup
	wg.Add(keys)
	for i := 0; i < keys; i++ {
		go func(i int) {
			defer wg.Done()
			url := fmt.Sprintf("https://example.com/%d", i)
			content, err := cache.GetOrFetch(ctx, url)
			assert.NoError(t, err)
			assert.Equal(t, "Title for "+url, content.Title)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, keys, cache.Len())
}
