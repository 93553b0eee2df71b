package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePaginationParams_Missing(t *testing.T) {
	r := httptest.NewRequest("GET", "/changes", nil)

	page, err := ParsePaginationParams(r)
	require.NoError(t, err)
	assert.Equal(t, 1, page)
}

func TestParsePaginationParams_Valid(t *testing.T) {
	r := httptest.NewRequest("GET", "/changes?page=7", nil)

	page, err := ParsePaginationParams(r)
	require.NoError(t, err)
	assert.Equal(t, 7, page)
}

func TestParsePaginationParams_NotANumber(t *testing.T) {
	r := httptest.NewRequest("GET", "/changes?page=abc", nil)

	_, err := ParsePaginationParams(r)
	assert.ErrorIs(t, err, ErrInvalidPageFormat)
}

func TestParsePaginationParams_Negative(t *testing.T) {
	r := httptest.NewRequest("GET", "/changes?page=-1", nil)

	_, err := ParsePaginationParams(r)
	assert.ErrorIs(t, err, ErrInvalidPageValue)
}
