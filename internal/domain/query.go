package domain

import (
	"context"
	"time"
)

// Source identifies which path produced the final answer.
type Source string

const (
	SourceCache  Source = "cache"
	SourceOpenAI Source = "openai"
	SourceLlama  Source = "llama"
	SourceSearch Source = "search"
)

// AskRequest captures a single question originating from the CLI.
type AskRequest struct {
	Context  context.Context
	Question string
	// Quick asks for a cache-first lookup before any network call.
	Quick bool
	// Detailed requests a longer-form answer from the completion providers.
	Detailed bool
}

// AskResponse is the canonical response propagated back to the CLI.
type AskResponse struct {
	Response      string
	Source        Source
	SearchResults string
	ModelUsed     string
	// CachedAt is set only when Source is SourceCache.
	CachedAt time.Time
}

// AskService exposes the use-case boundary for answering a question.
type AskService interface {
	Run(AskRequest) (AskResponse, error)
}

// Suggestions groups follow-up hints generated for a query.
type Suggestions struct {
	RelatedQuestions []string `json:"relatedQuestions"`
	PowerOptions     []string `json:"powerOptions"`
	Approaches       []string `json:"approaches"`
}
