package dto

// PaginationInfo holds pagination metadata for paginated results.
// Page numbers are 1-indexed; StartIndex and EndIndex are 0-indexed positions
// usable for slice operations like items[StartIndex:EndIndex].
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	PageSize    int   `json:"pageSize"`
	HasPrevious bool  `json:"hasPrevious"`
	HasNext     bool  `json:"hasNext"`
	StartIndex  int   `json:"startIndex"`
	EndIndex    int   `json:"endIndex"`
}

// NewPaginationInfo calculates all derived pagination fields.
// When totalItems is 0, TotalPages is 1 (not 0) so views always have a page
// to render.
func NewPaginationInfo(totalItems int64, pageSize, currentPage int) PaginationInfo {
	totalPages := 1
	if totalItems > 0 && pageSize > 0 {
		totalPages = int((totalItems + int64(pageSize) - 1) / int64(pageSize))
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > totalPages {
		currentPage = totalPages
	}

	startIndex := (currentPage - 1) * pageSize
	endIndex := min(startIndex+pageSize, int(totalItems))

	return PaginationInfo{
		CurrentPage: currentPage,
		TotalPages:  totalPages,
		TotalItems:  totalItems,
		PageSize:    pageSize,
		HasPrevious: currentPage > 1,
		HasNext:     currentPage < totalPages,
		StartIndex:  startIndex,
		EndIndex:    endIndex,
	}
}
