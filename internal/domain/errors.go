package domain

import (
	"fmt"
	"net/http"
)

// SearchError reports a failed search call. It is the only error that aborts
// a whole ask invocation.
type SearchError struct {
	Status  int
	Message string
}

func (e *SearchError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("search failed with status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("search failed with status %d", e.Status)
}

// CompletionKind is the closed set of completion failure categories. Kinds
// are assigned centrally by the provider adapters, never inferred downstream.
type CompletionKind string

const (
	CompletionAuth         CompletionKind = "auth"
	CompletionRateLimited  CompletionKind = "rate_limited"
	CompletionInvalidInput CompletionKind = "invalid_input"
	CompletionRemote       CompletionKind = "remote"
	CompletionNetwork      CompletionKind = "network"
	CompletionUnknown      CompletionKind = "unknown"
)

// CompletionError wraps a failed completion call. Completion failures are
// never fatal; the orchestrator falls back or degrades to search output.
type CompletionError struct {
	Provider string
	Kind     CompletionKind
	Status   int
	Message  string
}

func (e *CompletionError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s (%d): %s", e.Provider, e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// ClassifyStatus maps an HTTP status code to a completion failure kind.
func ClassifyStatus(status int) CompletionKind {
	switch status {
	case http.StatusUnauthorized:
		return CompletionAuth
	case http.StatusTooManyRequests:
		return CompletionRateLimited
	case http.StatusUnprocessableEntity:
		return CompletionInvalidInput
	default:
		return CompletionRemote
	}
}
