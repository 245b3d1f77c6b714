package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/seeitmyway/perspective/internal/domain"
	"github.com/seeitmyway/perspective/internal/schema"
	"go.uber.org/zap"
)

// Fallback messages used when an out-of-scope verdict arrives without an
// explanation. The caller-facing payload must never have empty fields.
const (
	defaultScopeReason = "This prompt doesn't seem to be in a university/student context."
	defaultScopeFix    = "Try rewriting it as a situation involving students, classmates, professors, or campus life."
)

// ScopeService decides whether a disagreement falls within the university
// scope policy. Ambiguous or malformed verdicts are treated as out of
// scope; transport and parse failures propagate to the caller.
type ScopeService struct {
	client domain.CompletionClient
	logger *zap.Logger
}

func NewScopeService(client domain.CompletionClient, logger *zap.Logger) *ScopeService {
	return &ScopeService{client: client, logger: logger}
}

// Check classifies text against the scope policy. The caller is
// responsible for ensuring text is non-blank. The returned decision is
// always fully populated when out of scope.
func (s *ScopeService) Check(ctx context.Context, text string) (*domain.ScopeDecision, error) {
	payload, err := s.client.Complete(ctx, domain.CompletionRequest{
		Instructions: universityScopePolicy + "\nReturn JSON only.",
		Input:        fmt.Sprintf(scopeInputTemplate, text),
		Schema:       schema.Scope,
		Effort:       domain.EffortLow,
	})
	if err != nil {
		return nil, fmt.Errorf("scope check: %w", err)
	}

	var decision domain.ScopeDecision
	if err := json.Unmarshal(payload, &decision); err != nil {
		return nil, fmt.Errorf("parse scope decision: %w (raw: %s)", err, payload)
	}

	if !decision.InScope {
		if decision.Reason == "" {
			decision.Reason = defaultScopeReason
		}
		if decision.HowToFix == "" {
			decision.HowToFix = defaultScopeFix
		}
		s.logger.Info("disagreement rejected as out of scope", zap.String("reason", decision.Reason))
	}

	return &decision, nil
}
