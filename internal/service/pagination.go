package service

import (
	"math"
	"strings"

	"github.com/google/uuid"

	"bakehouse/internal/repository"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// Page is one page of a listing.
type Page[T any] struct {
	Items       []T
	Total       int64
	TotalPages  int
	CurrentPage int
}

func newPagination(page, limit int) repository.Pagination {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	// keeps (page-1)*limit inside a 32-bit SQL OFFSET
	if maxPage := math.MaxInt32 / limit; page > maxPage {
		page = maxPage
	}
	return repository.Pagination{Page: page, Limit: limit}
}

func newPage[T any](items []T, total int64, p repository.Pagination) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{
		Items:       items,
		Total:       total,
		TotalPages:  int((total + int64(p.Limit) - 1) / int64(p.Limit)),
		CurrentPage: p.Page,
	}
}

// filterValue treats an empty value or "All" as no filter.
func filterValue(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// parseID parses a path id, reporting notFound for anything that is not a UUID.
func parseID(raw string, notFound error) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, notFound
	}
	return id, nil
}
