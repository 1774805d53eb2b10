package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// NetworkError is a transport-level failure: the request never produced a
// usable response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServiceError is a non-success response from the habit service. Message is
// always a human-readable string, whatever shape the service's detail had.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// newServiceError normalises an error response body. A string detail is used
// as is, a structured detail is rendered as compact JSON, and anything else
// falls back to the HTTP status text.
func newServiceError(op string, status int, body []byte) *ServiceError {
	e := &ServiceError{Op: op, StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && len(eb.Detail) > 0 && !bytes.Equal(eb.Detail, []byte("null")) {
		var s string
		if err := json.Unmarshal(eb.Detail, &s); err == nil {
			e.Message = s
		} else {
			var buf bytes.Buffer
			if err := json.Compact(&buf, eb.Detail); err == nil {
				e.Message = buf.String()
			} else {
				e.Message = string(eb.Detail)
			}
		}
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("status %d", status)
	}
	return e
}
