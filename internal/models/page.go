package models

import "strings"

// SortDirection is the ordering applied to a page query
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// DefaultSortField is the API name of the column pages are ordered by
const DefaultSortField = "startedAt"

// PageRequest describes one page of a sorted query
type PageRequest struct {
	Page          int
	Size          int
	SortField     string
	SortDirection SortDirection
}

// ParseSortDirection accepts ASC or DESC in any case
func ParseSortDirection(raw string) (SortDirection, bool) {
	switch SortDirection(strings.ToUpper(strings.TrimSpace(raw))) {
	case SortAsc:
		return SortAsc, true
	case SortDesc:
		return SortDesc, true
	default:
		return "", false
	}
}

// Offset returns the number of rows skipped before this page
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}

// Descending reports whether the page is sorted in descending order
func (p PageRequest) Descending() bool {
	return p.SortDirection != SortAsc
}

// Page is a bounded, ordered slice of a larger result set
type Page[T any] struct {
	Content          []T   `json:"content"`
	TotalElements    int64 `json:"totalElements"`
	TotalPages       int   `json:"totalPages"`
	Number           int   `json:"number"`
	Size             int   `json:"size"`
	NumberOfElements int   `json:"numberOfElements"`
	First            bool  `json:"first"`
	Last             bool  `json:"last"`
}

// NewPage builds a page envelope for content fetched with req
func NewPage[T any](content []T, total int64, req PageRequest) *Page[T] {
	if content == nil {
		content = []T{}
	}

	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}

	return &Page[T]{
		Content:          content,
		TotalElements:    total,
		TotalPages:       totalPages,
		Number:           req.Page,
		Size:             req.Size,
		NumberOfElements: len(content),
		First:            req.Page == 0,
		Last:             req.Page+1 >= totalPages,
	}
}
