package dto

// ErrorResponse is the uniform error body. Fields carries per-field
// validation messages when a write payload fails validation.
type ErrorResponse struct {
	Error   bool              `json:"error"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
