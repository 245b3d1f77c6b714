package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/seeitmyway/perspective/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerateQuestions(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Responses["questions"] = json.RawMessage(`{"questions": [
		"What course was this in?",
		"What was at stake for you?",
		"How did the conversation end?",
		"Had anything like this happened before?"
	]}`)
	svc := NewQuestionService(mock, zap.NewNop())

	qs, err := svc.Generate(context.Background(), "My TA docked my grade after group presentation")
	require.NoError(t, err)
	assert.Len(t, qs.Questions, 4)
	assert.Equal(t, "What course was this in?", qs.Questions[0])

	require.Len(t, mock.Calls, 1)
	call := mock.Calls[0]
	assert.Equal(t, "questions", call.Schema.Name)
	assert.Contains(t, call.Input, "My TA docked my grade")
	assert.Contains(t, call.Instructions, "Do not infer identity.")
}

func TestGenerateQuestionsRejectsShapeViolations(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"too few", `{"questions": ["a?", "b?"]}`},
		{"too many", `{"questions": ["a?", "b?", "c?", "d?", "e?", "f?", "g?"]}`},
		{"blank entry", `{"questions": ["a?", "  ", "c?"]}`},
		{"missing key", `{}`},
		{"wrong type", `{"questions": "a?"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockClient()
			mock.Responses["questions"] = json.RawMessage(tt.payload)
			svc := NewQuestionService(mock, zap.NewNop())

			_, err := svc.Generate(context.Background(), "something on campus")
			require.Error(t, err)
		})
	}
}

func TestGenerateQuestionsPropagatesClientError(t *testing.T) {
	mock := llm.NewMockClient()
	mock.Err = errors.New("timeout")
	svc := NewQuestionService(mock, zap.NewNop())

	_, err := svc.Generate(context.Background(), "something on campus")
	require.Error(t, err)
}
