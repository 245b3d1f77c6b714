package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/seeitmyway/perspective/internal/domain"
	"github.com/seeitmyway/perspective/internal/llm"
	"github.com/seeitmyway/perspective/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupDialogueTest() (*chi.Mux, *llm.MockClient) {
	mock := llm.NewMockClient()
	logger := zap.NewNop()

	h := NewDialogueHandler(
		service.NewScopeService(mock, logger),
		service.NewQuestionService(mock, logger),
		service.NewReconstructionService(mock, logger),
		logger,
	)

	r := chi.NewRouter()
	r.Post("/api/questions", h.Questions)
	r.Post("/api/reconstruct", h.Reconstruct)
	return r, mock
}

func doRequest(t *testing.T, router *chi.Mux, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestQuestionsBlankDisagreement(t *testing.T) {
	router, mock := setupDialogueTest()

	for _, body := range []string{
		`{"disagreement": ""}`,
		`{"disagreement": "   "}`,
		`{}`,
	} {
		rec := doRequest(t, router, "/api/questions", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Please describe the disagreement.", decodeBody(t, rec)["error"])
	}

	// No completion call is ever made for invalid input.
	assert.Empty(t, mock.Calls)
}

func TestQuestionsOutOfScope(t *testing.T) {
	router, mock := setupDialogueTest()
	mock.Responses["scope"] = json.RawMessage(`{"in_scope": false, "reason": "Sounds like a workplace situation.", "how_to_fix": "Reframe it around campus life."}`)

	rec := doRequest(t, router, "/api/questions", `{"disagreement": "My coworker yelled at me in the break room"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "out_of_scope", body["error"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["how_to_fix"])

	// Only the scope call fired; no question generation after a denial.
	require.Len(t, mock.Calls, 1)
	assert.Equal(t, "scope", mock.Calls[0].Schema.Name)
}

func TestQuestionsInScope(t *testing.T) {
	router, mock := setupDialogueTest()

	rec := doRequest(t, router, "/api/questions", `{"disagreement": "My TA docked my grade after group presentation"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Questions []string `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.GreaterOrEqual(t, len(resp.Questions), 3)
	assert.LessOrEqual(t, len(resp.Questions), 6)
	for _, q := range resp.Questions {
		assert.NotEmpty(t, strings.TrimSpace(q))
	}

	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "scope", mock.Calls[0].Schema.Name)
	assert.Equal(t, "questions", mock.Calls[1].Schema.Name)
}

func TestQuestionsUpstreamFailure(t *testing.T) {
	router, mock := setupDialogueTest()
	mock.Err = errors.New("connection refused")

	rec := doRequest(t, router, "/api/questions", `{"disagreement": "My TA docked my grade"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	// Generic message, no internal detail leaked.
	body := decodeBody(t, rec)
	assert.Equal(t, "Something went wrong. Please try again later.", body["error"])
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestQuestionsShapeViolationFails(t *testing.T) {
	router, mock := setupDialogueTest()
	mock.Responses["questions"] = json.RawMessage(`{"questions": ["only one?"]}`)

	rec := doRequest(t, router, "/api/questions", `{"disagreement": "My TA docked my grade"}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestReconstructMissingDisagreement(t *testing.T) {
	router, mock := setupDialogueTest()

	rec := doRequest(t, router, "/api/reconstruct", `{"disagreement": "  ", "answers": {"q": "a"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing disagreement.", decodeBody(t, rec)["error"])
	assert.Empty(t, mock.Calls)
}

func TestReconstructRequiresAnswers(t *testing.T) {
	router, mock := setupDialogueTest()

	tests := []struct {
		name string
		body string
	}{
		{"answers missing", `{"disagreement": "My TA docked my grade"}`},
		{"answers empty", `{"disagreement": "My TA docked my grade", "answers": {}}`},
		{"answers blank after trim", `{"disagreement": "My TA docked my grade", "answers": {"q1": "   "}}`},
		{"answers not a mapping", `{"disagreement": "My TA docked my grade", "answers": ["a", "b"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, router, "/api/reconstruct", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Please answer at least one question.", decodeBody(t, rec)["error"])
		})
	}

	assert.Empty(t, mock.Calls)
}

func TestReconstructOutOfScope(t *testing.T) {
	router, mock := setupDialogueTest()
	mock.Responses["scope"] = json.RawMessage(`{"in_scope": false}`)

	rec := doRequest(t, router, "/api/reconstruct", `{"disagreement": "Family argument at dinner", "answers": {"q": "a"}}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	// Backfilled defaults keep the payload fully populated.
	body := decodeBody(t, rec)
	assert.Equal(t, "out_of_scope", body["error"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["how_to_fix"])

	require.Len(t, mock.Calls, 1)
}

func TestReconstructSuccess(t *testing.T) {
	router, mock := setupDialogueTest()

	rec := doRequest(t, router, "/api/reconstruct",
		`{"disagreement": "My TA docked my grade after group presentation", "answers": {"What was the grading rubric?": "Not shared with us"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	var result domain.ReconstructionResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Len(t, result.Hypotheses, 3)
	for _, h := range result.Hypotheses {
		assert.NotEmpty(t, h.Title)
		assert.NotEmpty(t, h.Reasoning)
		assert.NotNil(t, h.SignalsUsed)
	}
	assert.GreaterOrEqual(t, len(result.BiasChecks), 2)
	assert.LessOrEqual(t, len(result.BiasChecks), 4)
	assert.GreaterOrEqual(t, len(result.UncertaintyNotes), 1)
	assert.LessOrEqual(t, len(result.UncertaintyNotes), 3)
	assert.NotEmpty(t, result.UserCorrectionPrompt)
	assert.NotEmpty(t, result.OneReflectionPrompt)

	require.Len(t, mock.Calls, 2)
	assert.Equal(t, "scope", mock.Calls[0].Schema.Name)
	assert.Equal(t, "reconstruction", mock.Calls[1].Schema.Name)
}

func TestReconstructShapeViolationFails(t *testing.T) {
	// A test double returning a shape violation must fail the request
	// rather than be silently coerced.
	router, mock := setupDialogueTest()
	mock.Responses["reconstruction"] = json.RawMessage(`{"hypotheses": [], "bias_checks": [], "uncertainty_notes": [], "user_correction_prompt": "", "one_reflection_prompt": ""}`)

	rec := doRequest(t, router, "/api/reconstruct", `{"disagreement": "My TA docked my grade", "answers": {"q": "a"}}`)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
