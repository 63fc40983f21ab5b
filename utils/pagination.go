package utils

import (
	"math"
	"net/http"
	"net/url"
	"strconv"
)

const (
	// DefaultPageSize is used when the request does not ask for a page size
	DefaultPageSize = 20

	// MaxPageSize caps the page_size query parameter
	MaxPageSize = 100

	// MaxPage caps the page query parameter so offsets and link math cannot overflow
	MaxPage = math.MaxInt / MaxPageSize
)

// PageRequest is the parsed page/page_size pair of a list request
type PageRequest struct {
	Page     int
	PageSize int
}

// Offset returns the number of rows to skip
func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// ParsePageRequest reads page and page_size from the query string.
// Missing or unparsable values fall back to page 1 and DefaultPageSize;
// page is clamped to MaxPage and page_size to MaxPageSize.
func ParsePageRequest(r *http.Request) PageRequest {
	q := r.URL.Query()

	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}

	pageSize, err := strconv.Atoi(q.Get("page_size"))
	if err != nil || pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	return PageRequest{Page: page, PageSize: pageSize}
}

// Page is the paginated list envelope
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// NewPage builds the envelope for one page of results, with absolute
// next/previous links derived from the incoming request
func NewPage[T any](r *http.Request, req PageRequest, count int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}

	page := Page[T]{
		Count:   count,
		Results: results,
	}

	if req.Page*req.PageSize < count {
		next := pageURL(r, req.Page+1)
		page.Next = &next
	}
	if req.Page > 1 {
		prevPage := req.Page - 1
		if last := lastPage(count, req.PageSize); prevPage > last {
			prevPage = last
		}
		prev := pageURL(r, prevPage)
		page.Previous = &prev
	}

	return page
}

func lastPage(count, pageSize int) int {
	if count == 0 {
		return 1
	}
	return (count + pageSize - 1) / pageSize
}

// pageURL rewrites the page parameter of the request URL. Page 1 drops the
// parameter entirely.
func pageURL(r *http.Request, page int) string {
	u := url.URL{
		Scheme: requestScheme(r),
		Host:   r.Host,
		Path:   r.URL.Path,
	}

	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u.RawQuery = q.Encode()

	return u.String()
}

func requestScheme(r *http.Request) string {
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "http" || proto == "https" {
		return proto
	}
	if r.TLS != nil {
		return "https"
	}
	return "http"
}
