package handlers

import (
	"net/http"
	"net/url"
	"strconv"
)

const maxPageSize = 100

// PaginatedResponse wraps one page of Data with links to its neighbours.
type PaginatedResponse[T any] struct {
	Page     int     `json:"page"`
	PageSize int     `json:"page_size"`
	Total    int     `json:"total"`
	Prev     *string `json:"prev"`
	Next     *string `json:"next"`
	Data     []T     `json:"data"`
}

// ReturnPaginatedData sets the total and builds absolute prev and next links
// from the request url. Query parameters other than the page are kept.
func (p *PaginatedResponse[T]) ReturnPaginatedData(r *http.Request, total int) {
	p.Total = total
	if p.Data == nil {
		p.Data = []T{}
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	link := func(page int) *string {
		query := url.Values{}
		for key, values := range r.URL.Query() {
			query[key] = values
		}
		query.Set("page", strconv.Itoa(page))
		query.Set("page_size", strconv.Itoa(p.PageSize))
		u := url.URL{Scheme: scheme, Host: r.Host, Path: r.URL.Path, RawQuery: query.Encode()}
		s := u.String()
		return &s
	}

	p.Prev = nil
	if p.Page > 1 {
		p.Prev = link(p.Page - 1)
	}

	p.Next = nil
	if p.Page*p.PageSize < total {
		p.Next = link(p.Page + 1)
	}
}

// ExtractPagination reads page and page_size from the query string, falling
// back to 1 and 10 when missing or invalid. The page size is capped.
func ExtractPagination(r *http.Request) (int, int, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		pageStr = "1"
	}
	pageSizeStr := r.URL.Query().Get("page_size")
	if pageSizeStr == "" {
		pageSizeStr = "10"
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, sizeErr := strconv.Atoi(pageSizeStr)
	if sizeErr != nil || pageSize < 1 {
		pageSize = 10
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	if err == nil {
		err = sizeErr
	}

	return page, pageSize, err
}
