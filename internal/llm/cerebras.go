package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/seeitmyway/perspective/internal/domain"
)

const (
	cerebrasAPIURL = "https://api.cerebras.ai/v1/chat/completions"
	cerebrasModel  = "llama-3.3-70b"
)

// CerebrasClient talks to Cerebras' OpenAI-compatible chat completions API,
// enforcing the output shape via response_format json_schema. The
// reasoning-effort hint is not supported and is ignored.
type CerebrasClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewCerebrasClient(apiKey string) *CerebrasClient {
	return &CerebrasClient{
		apiKey:     apiKey,
		baseURL:    cerebrasAPIURL,
		httpClient: &http.Client{},
	}
}

type cerebrasMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type cerebrasJSONSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type cerebrasResponseFormat struct {
	Type       string             `json:"type"`
	JSONSchema cerebrasJSONSchema `json:"json_schema"`
}

type cerebrasRequest struct {
	Model          string                 `json:"model"`
	Messages       []cerebrasMessage      `json:"messages"`
	ResponseFormat cerebrasResponseFormat `json:"response_format"`
}

type cerebrasResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *CerebrasClient) Complete(ctx context.Context, req domain.CompletionRequest) (json.RawMessage, error) {
	body, err := json.Marshal(cerebrasRequest{
		Model: cerebrasModel,
		Messages: []cerebrasMessage{
			{Role: "system", Content: req.Instructions},
			{Role: "user", Content: req.Input},
		},
		ResponseFormat: cerebrasResponseFormat{
			Type: "json_schema",
			JSONSchema: cerebrasJSONSchema{
				Name:   req.Schema.Name,
				Strict: true,
				Schema: req.Schema.Schema,
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshal completion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create completion request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read completion response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("completion API returned status %d: %s", resp.StatusCode, string(respBody))
	}

	var result cerebrasResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal completion response: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("completion API error: %s", result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("completion API returned no choices")
	}

	payload := stripFences(result.Choices[0].Message.Content)
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("completion output is not valid JSON (raw: %s)", payload)
	}

	return json.RawMessage(payload), nil
}
