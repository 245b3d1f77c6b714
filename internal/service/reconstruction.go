package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/seeitmyway/perspective/internal/domain"
	"github.com/seeitmyway/perspective/internal/schema"
	"go.uber.org/zap"
)

// ErrNoAnswers is returned when no answer survives blank filtering.
var ErrNoAnswers = errors.New("at least one answered question is required")

// ReconstructionService synthesizes the perspective hypotheses together
// with bias-awareness and uncertainty framing. Callers must scope-approve
// the text first. No partial or degraded result is synthesized locally:
// any upstream failure or shape violation propagates.
type ReconstructionService struct {
	client domain.CompletionClient
	logger *zap.Logger
}

func NewReconstructionService(client domain.CompletionClient, logger *zap.Logger) *ReconstructionService {
	return &ReconstructionService{client: client, logger: logger}
}

// Reconstruct builds the context block from the non-blank answers and
// requests the full reconstruction in one completion call.
func (s *ReconstructionService) Reconstruct(ctx context.Context, text string, answers domain.AnswerList) (*domain.ReconstructionResult, error) {
	answered := answers.Answered()
	if len(answered) == 0 {
		return nil, ErrNoAnswers
	}

	payload, err := s.client.Complete(ctx, domain.CompletionRequest{
		Instructions: reconstructionInstructions,
		Input:        fmt.Sprintf(reconstructionInputTemplate, text, contextLines(answered)),
		Schema:       schema.Reconstruction,
		Effort:       domain.EffortLow,
	})
	if err != nil {
		return nil, fmt.Errorf("reconstruct: %w", err)
	}

	var result domain.ReconstructionResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("parse reconstruction result: %w (raw: %s)", err, payload)
	}

	if err := result.Validate(); err != nil {
		return nil, fmt.Errorf("reconstruction violates shape contract: %w", err)
	}

	s.logger.Debug("reconstruction complete",
		zap.Int("answers", len(answered)),
		zap.Int("hypotheses", len(result.Hypotheses)),
	)
	return &result, nil
}

// contextLines renders answered questions as "- question: answer" lines,
// preserving the order they were given in.
func contextLines(answers domain.AnswerList) string {
	var sb strings.Builder
	for i, a := range answers {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("- ")
		sb.WriteString(a.Question)
		sb.WriteString(": ")
		sb.WriteString(a.Text)
	}
	return sb.String()
}
