package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

const (
	// MinQuestions and MaxQuestions bound the clarifying question set.
	MinQuestions = 3
	MaxQuestions = 6

	// HypothesisCount is the exact number of perspective hypotheses per reconstruction.
	HypothesisCount = 3

	MinBiasChecks       = 2
	MaxBiasChecks       = 4
	MinUncertaintyNotes = 1
	MaxUncertaintyNotes = 3
)

// ScopeDecision is the verdict of the university-scope policy check.
// Reason and HowToFix are always populated when InScope is false.
type ScopeDecision struct {
	InScope  bool   `json:"in_scope"`
	Reason   string `json:"reason"`
	HowToFix string `json:"how_to_fix"`
}

// QuestionSet is an ordered list of clarifying questions. Order is
// presentation order.
type QuestionSet struct {
	Questions []string `json:"questions"`
}

func (qs *QuestionSet) Validate() error {
	if len(qs.Questions) < MinQuestions || len(qs.Questions) > MaxQuestions {
		return fmt.Errorf("expected %d-%d questions, got %d", MinQuestions, MaxQuestions, len(qs.Questions))
	}
	for i, q := range qs.Questions {
		if strings.TrimSpace(q) == "" {
			return fmt.Errorf("question %d is empty", i+1)
		}
	}
	return nil
}

// Hypothesis is one plausible interpretation of the other party's
// perspective, framed as a possibility rather than a fact.
type Hypothesis struct {
	Title       string   `json:"title"`
	Reasoning   string   `json:"reasoning"`
	SignalsUsed []string `json:"signals_used"`
}

// ReconstructionResult is the terminal output of the flow: hypotheses plus
// bias-awareness and uncertainty framing and two caller-facing prompts.
type ReconstructionResult struct {
	Hypotheses           []Hypothesis `json:"hypotheses"`
	BiasChecks           []string     `json:"bias_checks"`
	UncertaintyNotes     []string     `json:"uncertainty_notes"`
	UserCorrectionPrompt string       `json:"user_correction_prompt"`
	OneReflectionPrompt  string       `json:"one_reflection_prompt"`
}

func (r *ReconstructionResult) Validate() error {
	if len(r.Hypotheses) != HypothesisCount {
		return fmt.Errorf("expected exactly %d hypotheses, got %d", HypothesisCount, len(r.Hypotheses))
	}
	for i, h := range r.Hypotheses {
		if strings.TrimSpace(h.Title) == "" {
			return fmt.Errorf("hypothesis %d has an empty title", i+1)
		}
		if strings.TrimSpace(h.Reasoning) == "" {
			return fmt.Errorf("hypothesis %d has empty reasoning", i+1)
		}
		if h.SignalsUsed == nil {
			return fmt.Errorf("hypothesis %d is missing signals_used", i+1)
		}
	}
	if len(r.BiasChecks) < MinBiasChecks || len(r.BiasChecks) > MaxBiasChecks {
		return fmt.Errorf("expected %d-%d bias checks, got %d", MinBiasChecks, MaxBiasChecks, len(r.BiasChecks))
	}
	if len(r.UncertaintyNotes) < MinUncertaintyNotes || len(r.UncertaintyNotes) > MaxUncertaintyNotes {
		return fmt.Errorf("expected %d-%d uncertainty notes, got %d", MinUncertaintyNotes, MaxUncertaintyNotes, len(r.UncertaintyNotes))
	}
	if strings.TrimSpace(r.UserCorrectionPrompt) == "" {
		return fmt.Errorf("user_correction_prompt is empty")
	}
	if strings.TrimSpace(r.OneReflectionPrompt) == "" {
		return fmt.Errorf("one_reflection_prompt is empty")
	}
	return nil
}

// Answer pairs a clarifying question with the caller's free-text answer.
type Answer struct {
	Question string
	Text     string
}

// AnswerList preserves the order answers appear in the request body.
// Go maps don't keep key order, so the JSON object is walked token by token.
type AnswerList []Answer

func (a *AnswerList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("answers must be an object")
	}

	var out AnswerList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("answers key is not a string")
		}
		var val string
		if err := dec.Decode(&val); err != nil {
			return fmt.Errorf("answer for %q is not a string: %w", key, err)
		}
		out = append(out, Answer{Question: key, Text: val})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	*a = out
	return nil
}

// Answered filters the list to entries whose answer is non-blank after
// trimming, preserving order.
func (a AnswerList) Answered() AnswerList {
	var out AnswerList
	for _, ans := range a {
		if strings.TrimSpace(ans.Text) != "" {
			out = append(out, ans)
		}
	}
	return out
}
