package backend

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RequestError reports a backend call that did not succeed, either because the
// backend answered with a non-success HTTP status or because the request never
// produced a response at all. Callers only ever need to handle this one kind
// plus BuildError.
type RequestError struct {
	Op         string
	StatusCode int // 0 when the request failed before any HTTP response
	Payload    string
	cause      error
}

func (e *RequestError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("request to %s failed: %v", e.Op, e.cause)
	}
	return fmt.Sprintf("request to %s failed with status code %d: %s", e.Op, e.StatusCode, e.Payload)
}

func (e *RequestError) Unwrap() error { return e.cause }

func newStatusError(op string, status int, body []byte) *RequestError {
	return &RequestError{Op: op, StatusCode: status, Payload: errorPayload(body)}
}

func newTransportError(op string, err error) *RequestError {
	return &RequestError{Op: op, Payload: err.Error(), cause: err}
}

// errorPayload prefers the backend's JSON `detail` field, falling back to a
// trimmed snippet of the raw body.
func errorPayload(body []byte) string {
	var parsed struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Detail != "" {
		return parsed.Detail
	}
	return bodySnippet(body)
}

func bodySnippet(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	if len(body) > 512 {
		body = body[:512]
	}
	return strings.TrimSpace(string(body))
}

// BuildError reports an image build the backend accepted but could not serve
// (HTTP 500 from the build endpoint). The message carries the backend's build
// log plus remediation hints, since these failures are almost always caused by
// the build context rather than the client.
type BuildError struct {
	Log string
}

func (e *BuildError) Error() string {
	var b strings.Builder
	b.WriteString("Serving the variant failed.\n")
	fmt.Fprintf(&b, "Log: %s\n", e.Log)
	b.WriteString("Here's how you may be able to solve the issue:\n")
	b.WriteString("- First, make sure that the requirements.txt file has all the dependencies that you need.\n")
	b.WriteString("- Second, check the Docker logs for the backend image to see the error when running the Docker container.")
	return b.String()
}
