package central

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
)

// APIError is returned for every non-2xx API response.
type APIError struct {
	StatusCode int
	// Message is the human-readable reason reported by the API.
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// errorBody covers the error payload shapes the API is known to return.
type errorBody struct {
	Message          string `json:"message"`
	Detail           string `json:"detail"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// newAPIError decodes an error response body into an APIError.
func newAPIError(statusCode int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: statusCode}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		for _, candidate := range []string{eb.Message, eb.ErrorDescription, eb.Detail, eb.Error} {
			if strings.TrimSpace(candidate) != "" {
				apiErr.Message = strings.TrimSpace(candidate)
				break
			}
		}
	}
	if apiErr.Message == "" {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) <= 200 && !strings.HasPrefix(text, "{") {
			apiErr.Message = text
		} else {
			apiErr.Message = strings.ToLower(http.StatusText(statusCode))
		}
	}
	return apiErr
}

// Message returns the most user-friendly description of err: the API's own
// reason when err carries an APIError, otherwise err's text.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

// isStatus checks if the error is an API error with one of the given status codes.
func isStatus(err error, codes ...int) bool {
	if err == nil {
		return false
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		for _, code := range codes {
			if apiErr.StatusCode == code {
				return true
			}
		}
	}
	return false
}

// IsNotFound checks if an error indicates a resource was not found.
func IsNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}

// IsConflict checks if an error indicates a conflict occurred.
func IsConflict(err error) bool {
	return isStatus(err, http.StatusConflict)
}

// IsRateLimited checks if an error indicates rate limiting.
func IsRateLimited(err error) bool {
	return isStatus(err, http.StatusTooManyRequests)
}

// isRetryable reports whether a failed delete may succeed when repeated.
// Conflicts and locks usually mean a dependent resource is still being torn
// down. Transport failures are retried as well.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return true
	}
	switch apiErr.StatusCode {
	case http.StatusConflict, http.StatusLocked, http.StatusTooManyRequests:
		return true
	}
	return apiErr.StatusCode >= http.StatusInternalServerError
}
