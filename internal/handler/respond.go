package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"news-app/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), map[string]string{"error": err.Error()})
}

// statusForError maps the domain error taxonomy to HTTP status codes. All
// authentication failures collapse to 401 so responses never reveal which
// check failed.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrDuplicateUser),
		errors.Is(err, domain.ErrWrongTokenType),
		errors.Is(err, domain.ErrInvalidArticleURL),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrInvalidUsername):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrInvalidSubject),
		errors.Is(err, domain.ErrTokenMismatch):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUpstreamFetch):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
