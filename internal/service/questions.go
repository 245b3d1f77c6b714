package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/seeitmyway/perspective/internal/domain"
	"github.com/seeitmyway/perspective/internal/schema"
	"go.uber.org/zap"
)

// QuestionService produces a short, non-invasive list of clarifying
// questions aimed at reconstructing the other party's perspective.
// Callers must scope-approve the text first; this service does not
// re-check scope.
type QuestionService struct {
	client domain.CompletionClient
	logger *zap.Logger
}

func NewQuestionService(client domain.CompletionClient, logger *zap.Logger) *QuestionService {
	return &QuestionService{client: client, logger: logger}
}

// Generate returns 3-6 questions in presentation order. There is no
// fallback question set; failures propagate.
func (s *QuestionService) Generate(ctx context.Context, text string) (*domain.QuestionSet, error) {
	payload, err := s.client.Complete(ctx, domain.CompletionRequest{
		Instructions: questionInstructions,
		Input:        fmt.Sprintf(questionInputTemplate, text),
		Schema:       schema.Questions,
		Effort:       domain.EffortLow,
	})
	if err != nil {
		return nil, fmt.Errorf("generate questions: %w", err)
	}

	var qs domain.QuestionSet
	if err := json.Unmarshal(payload, &qs); err != nil {
		return nil, fmt.Errorf("parse question set: %w (raw: %s)", err, payload)
	}

	if err := qs.Validate(); err != nil {
		return nil, fmt.Errorf("question set violates shape contract: %w", err)
	}

	s.logger.Debug("generated clarifying questions", zap.Int("count", len(qs.Questions)))
	return &qs, nil
}
