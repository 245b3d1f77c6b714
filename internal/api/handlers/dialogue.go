package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/seeitmyway/perspective/internal/domain"
	"github.com/seeitmyway/perspective/internal/service"
	"go.uber.org/zap"
)

// User-facing messages. Validation and scope errors are actionable;
// upstream failures stay generic so no internal detail leaks.
const (
	msgDescribeDisagreement = "Please describe the disagreement."
	msgMissingDisagreement  = "Missing disagreement."
	msgAnswerOneQuestion    = "Please answer at least one question."
	msgUpstreamFailure      = "Something went wrong. Please try again later."
)

// DialogueHandler exposes the three-stage flow: scope check, clarifying
// questions, perspective reconstruction. Each request is validated, then
// gated on scope before any further completion call.
type DialogueHandler struct {
	scope          *service.ScopeService
	questions      *service.QuestionService
	reconstruction *service.ReconstructionService
	logger         *zap.Logger
}

func NewDialogueHandler(scope *service.ScopeService, questions *service.QuestionService, reconstruction *service.ReconstructionService, logger *zap.Logger) *DialogueHandler {
	return &DialogueHandler{
		scope:          scope,
		questions:      questions,
		reconstruction: reconstruction,
		logger:         logger,
	}
}

type questionsRequest struct {
	Disagreement string `json:"disagreement"`
}

type reconstructRequest struct {
	Disagreement string            `json:"disagreement"`
	Answers      domain.AnswerList `json:"answers"`
}

type outOfScopeResponse struct {
	Error    string `json:"error"`
	Message  string `json:"message"`
	HowToFix string `json:"how_to_fix"`
}

// Questions handles POST /api/questions.
func (h *DialogueHandler) Questions(w http.ResponseWriter, r *http.Request) {
	var req questionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgDescribeDisagreement)
		return
	}

	disagreement := strings.TrimSpace(req.Disagreement)
	if disagreement == "" {
		writeError(w, http.StatusBadRequest, msgDescribeDisagreement)
		return
	}

	decision, err := h.scope.Check(r.Context(), disagreement)
	if err != nil {
		h.logger.Error("scope check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgUpstreamFailure)
		return
	}
	if !decision.InScope {
		writeJSON(w, http.StatusUnprocessableEntity, outOfScopeResponse{
			Error:    "out_of_scope",
			Message:  decision.Reason,
			HowToFix: decision.HowToFix,
		})
		return
	}

	qs, err := h.questions.Generate(r.Context(), disagreement)
	if err != nil {
		h.logger.Error("question generation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgUpstreamFailure)
		return
	}

	writeJSON(w, http.StatusOK, qs)
}

// Reconstruct handles POST /api/reconstruct.
func (h *DialogueHandler) Reconstruct(w http.ResponseWriter, r *http.Request) {
	var req reconstructRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgAnswerOneQuestion)
		return
	}

	disagreement := strings.TrimSpace(req.Disagreement)
	if disagreement == "" {
		writeError(w, http.StatusBadRequest, msgMissingDisagreement)
		return
	}
	if len(req.Answers.Answered()) == 0 {
		writeError(w, http.StatusBadRequest, msgAnswerOneQuestion)
		return
	}

	decision, err := h.scope.Check(r.Context(), disagreement)
	if err != nil {
		h.logger.Error("scope check failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgUpstreamFailure)
		return
	}
	if !decision.InScope {
		writeJSON(w, http.StatusUnprocessableEntity, outOfScopeResponse{
			Error:    "out_of_scope",
			Message:  decision.Reason,
			HowToFix: decision.HowToFix,
		})
		return
	}

	result, err := h.reconstruction.Reconstruct(r.Context(), disagreement, req.Answers)
	if err != nil {
		h.logger.Error("reconstruction failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgUpstreamFailure)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
