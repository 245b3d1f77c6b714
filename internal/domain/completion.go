package domain

import (
	"context"
	"encoding/json"
)

// Reasoning effort hints passed through to the completion provider.
const (
	EffortLow    = "low"
	EffortMedium = "medium"
	EffortHigh   = "high"
)

// OutputSchema is a structural contract imposed on a completion response:
// a JSON Schema document plus the name the provider registers it under.
type OutputSchema struct {
	Name   string
	Schema map[string]any
}

// CompletionRequest describes a single call to the external reasoning
// capability: steering instructions, the content to reason about, the
// output shape the response must conform to, and a reasoning-effort hint.
type CompletionRequest struct {
	Instructions string
	Input        string
	Schema       OutputSchema
	Effort       string
}

// CompletionClient is the external reasoning capability. Complete returns
// the raw JSON payload conforming to the request's schema, or an error.
// Implementations do not retry, cache, or rate-limit.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (json.RawMessage, error)
}
