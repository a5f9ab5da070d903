package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Aidana2206/GrowthSpace/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestHandleServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: email is required", services.ErrInvalid), http.StatusBadRequest},
		{fmt.Errorf("%w: email already registered", services.ErrConflict), http.StatusBadRequest},
		{fmt.Errorf("%w: goal", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: not a member", services.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("mongo timeout"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		handleServiceError(rec, tc.err)
		assert.Equal(t, tc.status, rec.Code, "error: %v", tc.err)
	}
}

func TestHandleServiceErrorHidesInternalDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, fmt.Errorf("connection refused to mongodb://secret-host"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "secret-host")
}

func TestParsePaginationDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/communities", nil)
	skip, limit := parsePagination(req)

	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(defaultPageSize), limit)
}

func TestParsePagination(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/communities?page=3&limit=10", nil)
	skip, limit := parsePagination(req)

	assert.Equal(t, int64(20), skip)
	assert.Equal(t, int64(10), limit)
}

func TestParsePaginationCapsLimit(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/communities?limit=1000", nil)
	_, limit := parsePagination(req)

	assert.Equal(t, int64(maxPageSize), limit)
}

func TestParsePaginationIgnoresGarbage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/communities?page=abc&limit=-4", nil)
	skip, limit := parsePagination(req)

	assert.Equal(t, int64(0), skip)
	assert.Equal(t, int64(defaultPageSize), limit)
}
