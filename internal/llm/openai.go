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
	openAIResponsesURL = "https://api.openai.com/v1/responses"
	defaultOpenAIModel = "gpt-5"
)

type OpenAIClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewOpenAIClient(apiKey, model string) *OpenAIClient {
	if model == "" {
		model = defaultOpenAIModel
	}
	return &OpenAIClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    openAIResponsesURL,
		httpClient: &http.Client{},
	}
}

// request/response types for the OpenAI Responses API
type responsesTextFormat struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type responsesText struct {
	Format responsesTextFormat `json:"format"`
}

type responsesReasoning struct {
	Effort string `json:"effort"`
}

type responsesRequest struct {
	Model        string              `json:"model"`
	Instructions string              `json:"instructions"`
	Input        string              `json:"input"`
	Text         responsesText       `json:"text"`
	Reasoning    *responsesReasoning `json:"reasoning,omitempty"`
}

type responsesResponse struct {
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *OpenAIClient) Complete(ctx context.Context, req domain.CompletionRequest) (json.RawMessage, error) {
	var reasoning *responsesReasoning
	if req.Effort != "" {
		reasoning = &responsesReasoning{Effort: req.Effort}
	}

	body, err := json.Marshal(responsesRequest{
		Model:        c.model,
		Instructions: req.Instructions,
		Input:        req.Input,
		Text: responsesText{
			Format: responsesTextFormat{
				Type:   "json_schema",
				Name:   req.Schema.Name,
				Strict: true,
				Schema: req.Schema.Schema,
			},
		},
		Reasoning: reasoning,
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

	var result responsesResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal completion response: %w", err)
	}

	if result.Error != nil {
		return nil, fmt.Errorf("completion API error: %s", result.Error.Message)
	}

	text, err := outputText(result)
	if err != nil {
		return nil, err
	}

	payload := stripFences(text)
	if !json.Valid([]byte(payload)) {
		return nil, fmt.Errorf("completion output is not valid JSON (raw: %s)", payload)
	}

	return json.RawMessage(payload), nil
}

// outputText finds the first message output item's text content.
func outputText(resp responsesResponse) (string, error) {
	for _, item := range resp.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				return c.Text, nil
			}
		}
	}
	return "", fmt.Errorf("completion API returned no message output")
}
