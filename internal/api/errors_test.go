package api

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseErrorBodyStructured(t *testing.T) {
	body := []byte(`{"status":422,"message":"name: must not be blank","timestamp":"2024-01-01T00:00:00Z"}`)
	err := parseErrorBody(422, body)

	assert.Equal(t, 422, err.Status)
	assert.Equal(t, "name: must not be blank", err.Message)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), err.Timestamp)
	assert.True(t, err.IsValidation())
}

func TestParseErrorBodyValidationMap(t *testing.T) {
	body := []byte(`{"name":"must not be blank","email":"invalid format"}`)
	err := parseErrorBody(400, body)

	assert.Equal(t, 400, err.Status)
	assert.Equal(t, "Validation failed: email: invalid format, name: must not be blank", err.Message)
}

func TestParseErrorBodyMessageField(t *testing.T) {
	err := parseErrorBody(409, []byte(`{"message":"category already exists","code":"DUP"}`))
	assert.Equal(t, "category already exists", err.Message)
	assert.Equal(t, 409, err.Status)
}

func TestParseErrorBodyArbitraryJSON(t *testing.T) {
	err := parseErrorBody(500, []byte(`{"trace":"abc123"}`))
	assert.Equal(t, `{"trace":"abc123"}`, err.Message)
}

func TestParseErrorBodyRawText(t *testing.T) {
	err := parseErrorBody(502, []byte("Bad Gateway"))
	assert.Equal(t, "Bad Gateway", err.Message)
	assert.True(t, err.IsServer())
}

func TestParseErrorBodyEmpty(t *testing.T) {
	err := parseErrorBody(500, nil)
	assert.Equal(t, "request failed with status 500", err.Message)
}

func TestClassification(t *testing.T) {
	assert.True(t, (&APIError{Status: 404}).IsNotFound())
	assert.False(t, (&APIError{Status: 404}).IsValidation())
	assert.True(t, (&APIError{Status: 422}).IsValidation())
	assert.True(t, (&APIError{Status: 500}).IsServer())
	assert.True(t, (&APIError{Status: 0}).IsNetwork())
}

func TestAsAPIError(t *testing.T) {
	orig := &APIError{Status: 404, Message: "gone"}
	assert.Same(t, orig, AsAPIError(orig))

	wrapped := AsAPIError(errors.New("connection refused"))
	assert.Equal(t, 0, wrapped.Status)
	assert.Equal(t, "connection refused", wrapped.Message)
	assert.False(t, wrapped.Timestamp.IsZero())
}
