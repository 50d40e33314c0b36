package dto

// ErrorResponse is the error body used on every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewErrorResponse wraps a message in the wire error shape.
func NewErrorResponse(message string) ErrorResponse {
	return ErrorResponse{Error: message}
}

// DeleteStudentResponse acknowledges a successful delete, echoing the removed id.
type DeleteStudentResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// HealthResponse is the GET /health body.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
