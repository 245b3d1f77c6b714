package llm

import (
	"context"
	"encoding/json"

	"github.com/seeitmyway/perspective/internal/domain"
)

// MockClient is a configurable completion client for testing.
// Responses are keyed by output-schema name; set Err to fail every call.
type MockClient struct {
	Responses map[string]json.RawMessage
	Err       error

	// Call tracking for assertions
	Calls []domain.CompletionRequest
}

func NewMockClient() *MockClient {
	c := &MockClient{}
	c.Reset()
	return c
}

func (c *MockClient) Complete(ctx context.Context, req domain.CompletionRequest) (json.RawMessage, error) {
	c.Calls = append(c.Calls, req)
	if c.Err != nil {
		return nil, c.Err
	}
	return c.Responses[req.Schema.Name], nil
}

// CallsFor returns recorded calls whose schema matches the given name.
func (c *MockClient) CallsFor(schemaName string) []domain.CompletionRequest {
	var out []domain.CompletionRequest
	for _, call := range c.Calls {
		if call.Schema.Name == schemaName {
			out = append(out, call)
		}
	}
	return out
}

// Reset clears recorded calls and restores shape-valid default responses.
func (c *MockClient) Reset() {
	c.Err = nil
	c.Calls = nil
	c.Responses = map[string]json.RawMessage{
		"scope": json.RawMessage(`{"in_scope": true, "reason": "", "how_to_fix": ""}`),
		"questions": json.RawMessage(`{"questions": [
			"What course was this in?",
			"What was at stake for you?",
			"Had anything like this happened before?"
		]}`),
		"reconstruction": json.RawMessage(`{
			"hypotheses": [
				{"title": "Stretched thin", "reasoning": "They may have been juggling too much that week.", "signals_used": ["course context"]},
				{"title": "Different expectations", "reasoning": "They may have read the assignment differently than you did.", "signals_used": ["stakes"]},
				{"title": "Missed signal", "reasoning": "They may not have realized how this landed for you.", "signals_used": ["tone"]}
			],
			"bias_checks": [
				"It's easy to read silence as dismissal.",
				"First impressions tend to stick harder than they should."
			],
			"uncertainty_notes": ["We only have one side of this story."],
			"user_correction_prompt": "Does any of this feel off? Tell me what's missing.",
			"one_reflection_prompt": "Next time, try asking one open question before responding."
		}`),
	}
}
