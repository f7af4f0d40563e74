package common

// ErrorResponse is the error body the backend returns
// Detail is either a string or a list of validation entries
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// ListResponse is the envelope for every list endpoint
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// MessageResponse is returned by endpoints that only acknowledge
type MessageResponse struct {
	Message string `json:"message"`
}

// Pagination holds list paging query parameters
type Pagination struct {
	Skip  int `query:"skip" validate:"min=0"`
	Limit int `query:"limit" validate:"min=0,max=500"`
}
