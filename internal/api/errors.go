// Package api is the REST client for the back-office service. It normalizes
// transport and server failures into APIError before anything reaches the UI.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"
)

// APIError is the normalized failure shape: message, HTTP-ish status and a
// timestamp. Network-level failures carry status 0.
type APIError struct {
	Status    int
	Message   string
	Timestamp time.Time
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

// IsNotFound reports a vanished resource (listed a moment ago, gone now).
func (e *APIError) IsNotFound() bool { return e.Status == http.StatusNotFound }

// IsValidation reports a user-correctable 4xx other than 404.
func (e *APIError) IsValidation() bool {
	return e.Status >= 400 && e.Status < 500 && e.Status != http.StatusNotFound
}

// IsServer reports a 5xx.
func (e *APIError) IsServer() bool { return e.Status >= 500 }

// IsNetwork reports a failure before any HTTP status existed.
func (e *APIError) IsNetwork() bool { return e.Status == 0 }

// AsAPIError unwraps err into an *APIError, synthesizing a network-class one
// when err is something else entirely.
func AsAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return &APIError{Status: 0, Message: err.Error(), Timestamp: time.Now().UTC()}
}

// structuredError is the service's canonical error body.
type structuredError struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// parseErrorBody turns a non-2xx response body into an APIError. The service
// answers in several shapes, tried in order: the structured
// {status,message,timestamp} form, a field→message validation map, any JSON
// object with a message field, arbitrary JSON, raw text, and finally a
// synthesized message when the body is empty.
func parseErrorBody(status int, body []byte) *APIError {
	now := time.Now().UTC()
	text := strings.TrimSpace(string(body))
	if text == "" {
		return &APIError{Status: status, Message: fmt.Sprintf("request failed with status %d", status), Timestamp: now}
	}

	var structured structuredError
	if err := json.Unmarshal(body, &structured); err == nil &&
		structured.Status != 0 && structured.Message != "" && structured.Timestamp != "" {
		ts := now
		if parsed, err := time.Parse(time.RFC3339, structured.Timestamp); err == nil {
			ts = parsed
		}
		return &APIError{Status: structured.Status, Message: structured.Message, Timestamp: ts}
	}

	var generic map[string]json.RawMessage
	if err := json.Unmarshal(body, &generic); err == nil {
		if msg, ok := generic["message"]; ok {
			var s string
			if json.Unmarshal(msg, &s) == nil && s != "" {
				return &APIError{Status: status, Message: s, Timestamp: now}
			}
		}
		if fields := validationMessages(generic); fields != "" {
			return &APIError{Status: status, Message: "Validation failed: " + fields, Timestamp: now}
		}
		return &APIError{Status: status, Message: text, Timestamp: now}
	}

	return &APIError{Status: status, Message: text, Timestamp: now}
}

// validationMessages flattens a field→message map into one readable string,
// sorted by field name so the output is stable.
func validationMessages(body map[string]json.RawMessage) string {
	fields := make([]string, 0, len(body))
	for field, raw := range body {
		var msg string
		if json.Unmarshal(raw, &msg) != nil || msg == "" {
			return ""
		}
		fields = append(fields, field+": "+msg)
	}
	if len(fields) == 0 {
		return ""
	}
	sort.Strings(fields)
	return strings.Join(fields, ", ")
}
