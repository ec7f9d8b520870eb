package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReturnPaginatedData(t *testing.T) {
	t.Run("HTTP, page=1 => no prev, has next", func(t *testing.T) {
		resp := PaginatedResponse[string]{
			Page:     1,
			PageSize: 10,
		}
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/test", nil)
		resp.ReturnPaginatedData(req, 100)

		assert.Nil(t, resp.Prev)
		require.NotNil(t, resp.Next)
		assert.Equal(t, "http://example.com/api/v1/test?page=2&page_size=10", *resp.Next)
		assert.Equal(t, 100, resp.Total)
		assert.NotNil(t, resp.Data)
	})

	t.Run("HTTPS, page=2 => has prev, no next if offsetEnd >= total", func(t *testing.T) {
		resp := PaginatedResponse[string]{
			Page:     2,
			PageSize: 10,
		}
		req := httptest.NewRequest(http.MethodGet, "https://example.com/api/v1/test", nil)
		resp.ReturnPaginatedData(req, 20)

		require.NotNil(t, resp.Prev)
		assert.Equal(t, "https://example.com/api/v1/test?page=1&page_size=10", *resp.Prev)
		assert.Nil(t, resp.Next)
		assert.Equal(t, 20, resp.Total)
	})

	t.Run("filters are kept in links", func(t *testing.T) {
		resp := PaginatedResponse[string]{
			Page:     2,
			PageSize: 5,
		}
		req := httptest.NewRequest(http.MethodGet, "http://example.com/api/v1/actions?platform=zora&page=2&page_size=5", nil)
		resp.ReturnPaginatedData(req, 30)

		require.NotNil(t, resp.Next)
		next, err := url.Parse(*resp.Next)
		require.NoError(t, err)
		assert.Equal(t, "zora", next.Query().Get("platform"))
		assert.Equal(t, "3", next.Query().Get("page"))
		assert.Equal(t, "5", next.Query().Get("page_size"))
	})
}

func TestExtractPagination(t *testing.T) {
	t.Run("Valid page & page_size", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com?page=3&page_size=15", nil)
		page, pageSize, err := ExtractPagination(req)
		assert.NoError(t, err)
		assert.Equal(t, 3, page)
		assert.Equal(t, 15, pageSize)
	})

	t.Run("Missing params => defaults to 1 and 10", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
		page, pageSize, err := ExtractPagination(req)
		assert.NoError(t, err)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, pageSize)
	})

	t.Run("Invalid page => fallback to 1, but err is returned from Atoi", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com?page=abc&page_size=xyz", nil)
		page, pageSize, err := ExtractPagination(req)
		assert.Equal(t, 1, page)
		assert.Equal(t, 10, pageSize)
		assert.Error(t, err)
	})

	t.Run("Page size is capped", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "http://example.com?page_size=5000", nil)
		_, pageSize, err := ExtractPagination(req)
		assert.NoError(t, err)
		assert.Equal(t, maxPageSize, pageSize)
	})
}
