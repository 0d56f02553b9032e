package handler

import (
	"log"
	"net/http"

	"news-app/internal/domain"
	"news-app/internal/news"
	"news-app/internal/service"

	"github.com/gorilla/mux"
)

type ArticleHandler struct {
	newsClient   *news.Client
	articleCache *service.ArticleCache
}

func NewArticleHandler(newsClient *news.Client, articleCache *service.ArticleCache) *ArticleHandler {
	return &ArticleHandler{
		newsClient:   newsClient,
		articleCache: articleCache,
	}
}

// List proxies the external news-listing API for a category.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	category := mux.Vars(r)["category"]

	headlines, err := h.newsClient.Search(r.Context(), category)
	if err != nil {
		log.Printf("Error fetching articles for %q: %v", category, err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, headlines)
}

// Detail returns the scraped content for an article URL, memoized for the
// process lifetime.
func (h *ArticleHandler) Detail(w http.ResponseWriter, r *http.Request) {
	articleURL := r.URL.Query().Get("article_url")
	if articleURL == "" {
		writeError(w, domain.ErrInvalidArticleURL)
		return
	}

	content, err := h.articleCache.GetOrFetch(r.Context(), articleURL)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, content)
}
