package dto

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse reports per-field messages for a rejected submission.
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// Page wraps a paginated listing.
type Page[T any] struct {
	Items   []T   `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
}
