package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Envelope mirrors the API response wrapper
type Envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
	Errors     []string        `json:"errors"`
}

// AssertStatusCode verifies the HTTP response status code
func AssertStatusCode(t *testing.T, resp *http.Response, expected int) {
	t.Helper()
	assert.Equal(t, expected, resp.StatusCode, "unexpected status code")
}

// DecodeEnvelope reads the response body into the standard envelope
func DecodeEnvelope(t *testing.T, resp *http.Response) *Envelope {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	var env Envelope
	err = json.Unmarshal(body, &env)
	require.NoError(t, err, "failed to unmarshal envelope: %s", string(body))
	return &env
}

// DecodeData decodes the envelope and unmarshals its data payload into v,
// requiring a successful response.
func DecodeData(t *testing.T, resp *http.Response, v any) *Envelope {
	t.Helper()

	env := DecodeEnvelope(t, resp)
	require.True(t, env.Success, "expected success envelope, got message: %s", env.Message)
	require.NoError(t, json.Unmarshal(env.Data, v), "failed to unmarshal envelope data")
	return env
}

// AssertErrorEnvelope verifies an error response's status and message
func AssertErrorEnvelope(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	env := DecodeEnvelope(t, resp)
	assert.False(t, env.Success, "expected failure envelope")
	assert.Equal(t, expectedStatus, env.StatusCode, "envelope status mismatch")
	if expectedMessage != "" {
		assert.Equal(t, expectedMessage, env.Message, "error message mismatch")
	}
}

// PostJSON sends a JSON POST using the given client
func PostJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err, "failed to marshal payload")

	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	require.NoError(t, err, "request failed")
	return resp
}

// DoJSON sends a JSON request with an arbitrary method. An empty token
// leaves the request unauthenticated.
func DoJSON(t *testing.T, method, url, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err, "failed to marshal payload")
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "failed to build request")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request failed")
	return resp
}

// DoMultipart sends a multipart request with an optional bearer token
func DoMultipart(t *testing.T, method, url, token string, body io.Reader, contentType string) *http.Response {
	t.Helper()

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "failed to build request")
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err, "request failed")
	return resp
}
