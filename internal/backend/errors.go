package backend

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Message    string
	RequestID  string

	// BodyMessage is the body's "message" field, or "" when it had none.
	BodyMessage string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("backend API error (status %d, request_id %s): %s", e.StatusCode, e.RequestID, e.Message)
}

// HTTPStatus returns the response status code.
func (e *APIError) HTTPStatus() int {
	return e.StatusCode
}

// Unauthorized reports whether the backend rejected the credential.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// Forbidden reports whether the backend refused the operation for this operator.
func (e *APIError) Forbidden() bool {
	return e.StatusCode == http.StatusForbidden
}

// errorResponse covers the error shapes the backend produces.
type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Errors  []struct {
		Msg string `json:"msg"`
	} `json:"errors"`
}

func newAPIError(resp *http.Response, body []byte, requestID string) *APIError {
	if id := resp.Header.Get(RequestIDHeader); id != "" {
		requestID = id
	}

	apiErr := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  requestID,
	}

	var errResp errorResponse
	decoded := json.Unmarshal(body, &errResp) == nil
	if decoded {
		switch {
		case errResp.Message != "":
			apiErr.Message = errResp.Message
			apiErr.BodyMessage = errResp.Message
		case errResp.Error != "":
			apiErr.Message = errResp.Error
		case len(errResp.Errors) > 0 && errResp.Errors[0].Msg != "":
			apiErr.Message = errResp.Errors[0].Msg
		}
	}

	if apiErr.Message == "" {
		if text := strings.TrimSpace(string(body)); !decoded && text != "" && len(text) <= 200 && !strings.HasPrefix(text, "<") {
			apiErr.Message = text
		} else {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}

	return apiErr
}

// AsAPIError returns the APIError in err's chain, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
