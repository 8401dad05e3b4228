package services

// Page is one page of a listing plus enough metadata for the client to
// render pagination controls.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}

// normalizePage clamps a requested page number to 1 or greater.
func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
