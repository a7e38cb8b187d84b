package atlas

import "fmt"

// APIError is a non-2xx response from the atlas API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("atlas: %s (%d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("atlas: http %d", e.StatusCode)
}
