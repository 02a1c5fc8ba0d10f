package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/pharmetrics/askdb/internal/domain"
)

// TextGenerator is the single capability interface shared by all
// generation-backed stages. Implementations never return an error: failures
// degrade to domain.GenerationErrorText.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, temperature float32) string
}

// SecurityClassifier is the single security gate in front of the pipeline.
type SecurityClassifier struct {
	llm TextGenerator
}

func NewSecurityClassifier(llm TextGenerator) *SecurityClassifier {
	return &SecurityClassifier{llm: llm}
}

// Classify maps raw user text to a three-way verdict. The markers are
// checked in priority order with "injection" first, so an answer containing
// both "injection" and "valid" is still rejected. Anything that does not
// unambiguously match a category, including a failed model call, maps to
// the most restrictive verdict.
func (c *SecurityClassifier) Classify(ctx context.Context, userText string) domain.Verdict {
	response := c.llm.Generate(ctx, fmt.Sprintf(classificationPromptTemplate, userText), 0)
	if response == domain.GenerationErrorText {
		log.Printf("classifier: generation failed, rejecting query")
		return domain.VerdictUnrelated
	}

	answer := strings.ToLower(strings.TrimSpace(response))
	switch {
	case strings.Contains(answer, "injection"):
		return domain.VerdictInjection
	case strings.Contains(answer, "unrelated"):
		return domain.VerdictUnrelated
	case strings.Contains(answer, "valid"):
		return domain.VerdictValid
	default:
		log.Printf("classifier: unclear response %q, rejecting query", answer)
		return domain.VerdictUnrelated
	}
}
