package app

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
)

var (
	// ErrInvalidPageFormat is returned when the page parameter cannot be parsed as a number.
	ErrInvalidPageFormat = errors.New("invalid page parameter: must be a number")

	// ErrInvalidPageValue is returned when the page parameter is less than 1.
	ErrInvalidPageValue = errors.New("invalid page parameter: must be >= 1")
)

// ParsePaginationParams extracts and validates the page number from the
// request query. A missing or empty parameter defaults to page 1.
func ParsePaginationParams(r *http.Request) (int, error) {
	pageStr := r.URL.Query().Get("page")
	if pageStr == "" {
		return 1, nil
	}

	page, err := strconv.Atoi(pageStr)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidPageFormat, err)
	}
	if page < 1 {
		return 0, ErrInvalidPageValue
	}
	return page, nil
}
