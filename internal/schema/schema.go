// Package schema is the registry of output shapes passed to the completion
// provider. Each shape is a JSON Schema document with closed objects and
// fixed array bounds; the registry holds the contracts but performs no
// validation itself.
package schema

import "github.com/seeitmyway/perspective/internal/domain"

// Scope constrains the scope-gate verdict.
var Scope = domain.OutputSchema{
	Name: "scope",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"in_scope":   map[string]any{"type": "boolean"},
			"reason":     map[string]any{"type": "string"},
			"how_to_fix": map[string]any{"type": "string"},
		},
		"required":             []string{"in_scope", "reason", "how_to_fix"},
		"additionalProperties": false,
	},
}

// Questions constrains the clarifying-question set to 3-6 strings.
var Questions = domain.OutputSchema{
	Name: "questions",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": domain.MinQuestions,
				"maxItems": domain.MaxQuestions,
			},
		},
		"required":             []string{"questions"},
		"additionalProperties": false,
	},
}

// Reconstruction constrains the terminal result: exactly 3 hypotheses,
// 2-4 bias checks, 1-3 uncertainty notes, and the two caller-facing prompts.
var Reconstruction = domain.OutputSchema{
	Name: "reconstruction",
	Schema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"hypotheses": map[string]any{
				"type":     "array",
				"minItems": domain.HypothesisCount,
				"maxItems": domain.HypothesisCount,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title":     map[string]any{"type": "string"},
						"reasoning": map[string]any{"type": "string"},
						"signals_used": map[string]any{
							"type":  "array",
							"items": map[string]any{"type": "string"},
						},
					},
					"required":             []string{"title", "reasoning", "signals_used"},
					"additionalProperties": false,
				},
			},
			"bias_checks": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": domain.MinBiasChecks,
				"maxItems": domain.MaxBiasChecks,
			},
			"uncertainty_notes": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": domain.MinUncertaintyNotes,
				"maxItems": domain.MaxUncertaintyNotes,
			},
			"user_correction_prompt": map[string]any{"type": "string"},
			"one_reflection_prompt":  map[string]any{"type": "string"},
		},
		"required": []string{
			"hypotheses", "bias_checks", "uncertainty_notes",
			"user_correction_prompt", "one_reflection_prompt",
		},
		"additionalProperties": false,
	},
}
