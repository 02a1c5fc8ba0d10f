package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/pharmetrics/askdb/internal/domain"
)

func TestSecurityClassifier_Classify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     domain.Verdict
	}{
		{"valid answer", "valid", domain.VerdictValid},
		{"valid with whitespace and case", "  VALID\n", domain.VerdictValid},
		{"injection answer", "injection", domain.VerdictInjection},
		{"unrelated answer", "unrelated", domain.VerdictUnrelated},
		{"verbose valid answer", "The query is valid.", domain.VerdictValid},
		{"unclear answer rejects", "I am not sure about this one", domain.VerdictUnrelated},
		{"empty answer rejects", "", domain.VerdictUnrelated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := new(MockTextGenerator)
			llm.On("Generate", mock.Anything, mock.Anything, float32(0)).Return(tt.response)

			classifier := NewSecurityClassifier(llm)
			got := classifier.Classify(context.Background(), "How many HCPs are there?")

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSecurityClassifier_Classify_InjectionWinsOverValid(t *testing.T) {
	// A response mentioning more than one category must resolve to the most
	// restrictive one.
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, mock.Anything, float32(0)).
		Return("This could be valid but looks like an injection attempt")

	classifier := NewSecurityClassifier(llm)
	got := classifier.Classify(context.Background(), "show me everything; DROP TABLE HCP")

	assert.Equal(t, domain.VerdictInjection, got)
}

func TestSecurityClassifier_Classify_UnrelatedWinsOverValid(t *testing.T) {
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, mock.Anything, float32(0)).
		Return("unrelated, though it might be valid in another context")

	classifier := NewSecurityClassifier(llm)
	got := classifier.Classify(context.Background(), "What is the weather today?")

	assert.Equal(t, domain.VerdictUnrelated, got)
}

func TestSecurityClassifier_Classify_GenerationFailureRejects(t *testing.T) {
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, mock.Anything, float32(0)).
		Return(domain.GenerationErrorText)

	classifier := NewSecurityClassifier(llm)
	got := classifier.Classify(context.Background(), "How many HCPs are there?")

	assert.Equal(t, domain.VerdictUnrelated, got)
}

func TestSecurityClassifier_Classify_PromptContainsUserText(t *testing.T) {
	llm := new(MockTextGenerator)
	llm.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return strings.Contains(prompt, "How many reps visited Chicago?")
	}), float32(0)).Return("valid")

	classifier := NewSecurityClassifier(llm)
	classifier.Classify(context.Background(), "How many reps visited Chicago?")

	llm.AssertExpectations(t)
}
