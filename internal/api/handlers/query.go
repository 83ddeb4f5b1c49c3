package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"github.com/streamhive/streamhive/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// parseListQuery builds the shared pagination/sort spec from query params.
// Page and limit must coerce to positive integers; the sort field must be in
// the endpoint's allow-list. There is no silent fallback for a bad sort
// field: that is always a client error.
func parseListQuery(r *http.Request, allowedSorts map[string]bool, defaultSort string) (repository.ListQuery, error) {
	q := repository.ListQuery{Page: defaultPage, Limit: defaultLimit, SortBy: defaultSort}

	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page <= 0 {
			return q, domain.BadRequest("page must be a positive integer")
		}
		q.Page = page
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			return q, domain.BadRequest("limit must be a positive integer")
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		q.Limit = limit
	}

	if raw := r.URL.Query().Get("sortBy"); raw != "" {
		if !allowedSorts[raw] {
			return q, domain.BadRequest("Invalid sortBy field")
		}
		q.SortBy = raw
	}

	q.SortAsc = r.URL.Query().Get("sortType") == "asc"
	return q, nil
}

// uuidParam parses a uuid path parameter, rejecting malformed ids as 400s
// before any query runs.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, domain.BadRequest("invalid " + name)
	}
	return id, nil
}
