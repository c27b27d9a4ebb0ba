package analysis

import (
	"context"
	"errors"
	"math"
	"testing"

	"assistant_server/core/domain"
	"assistant_server/pkg/apperr"
)

// fakeGenerator is a canned TextGenerator for stage tests. It records the
// last prompt and system instruction it was handed.
type fakeGenerator struct {
	response string
	err      error
	calls    int

	prompt string
	system string
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt, systemInstruction string, temperature float32) (string, error) {
	f.calls++
	f.prompt = prompt
	f.system = systemInstruction
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func workMessage() *domain.ParsedMessage {
	return &domain.ParsedMessage{
		Sender:  domain.Sender{Name: "Ann", Address: "ann@company.com"},
		Subject: "Project deadline moved",
		Body:    "The client meeting is now on Friday, please update the task board.",
	}
}

func TestClassifierAITier(t *testing.T) {
	gen := &fakeGenerator{response: `{"category": "Work", "confidence": 0.92, "reasoning": "deadline and meeting talk"}`}
	classifier := NewClassifier(gen, nil)

	result, tool, err := classifier.Classify(context.Background(), workMessage())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if tool != domain.ToolOpenAI {
		t.Errorf("tool = %q, want %q", tool, domain.ToolOpenAI)
	}
	if result.Category != "Work" || result.Confidence != 0.92 {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestClassifierStripsCodeFences(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n{\"category\": \"Financial\", \"confidence\": 0.8, \"reasoning\": \"invoice\"}\n```"}
	classifier := NewClassifier(gen, nil)

	result, tool, err := classifier.Classify(context.Background(), workMessage())
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if tool != domain.ToolOpenAI || result.Category != "Financial" {
		t.Errorf("got tool %q category %q", tool, result.Category)
	}
}

func TestClassifierMalformedResponseFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"not json at all", "Sure! This looks like a work email to me."},
		{"missing confidence", `{"category": "Work", "reasoning": "no confidence key"}`},
		{"empty category", `{"category": "", "confidence": 0.9}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: tt.response}
			classifier := NewClassifier(gen, nil)

			result, tool, err := classifier.Classify(context.Background(), workMessage())
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if tool != domain.ToolKeywordMatching {
				t.Errorf("tool = %q, want keyword fallback", tool)
			}
			if result.Category == "" {
				t.Error("fallback produced empty category")
			}
		})
	}
}

func TestClassifierServiceUnavailableIsFatal(t *testing.T) {
	gen := &fakeGenerator{err: apperr.ServiceUnavailable("generative service", errors.New("connection refused"))}
	classifier := NewClassifier(gen, nil)

	_, _, err := classifier.Classify(context.Background(), workMessage())
	if err == nil {
		t.Fatal("expected fatal error")
	}
	if !apperr.IsServiceUnavailable(err) {
		t.Errorf("expected service unavailable, got %v", err)
	}
}

func TestClassifierFallback(t *testing.T) {
	classifier := NewClassifier(nil, nil)

	tests := []struct {
		name           string
		msg            *domain.ParsedMessage
		wantCategory   string
		wantConfidence float64
		wantReasoning  string
	}{
		{
			name:           "work keywords",
			msg:            &domain.ParsedMessage{Subject: "Meeting about the project", Body: "deadline is friday"},
			wantCategory:   domain.CategoryWork,
			wantConfidence: 0.6,
			wantReasoning:  "Matched 3 keywords",
		},
		{
			name:           "no keywords defaults to Personal",
			msg:            &domain.ParsedMessage{Subject: "hello", Body: "just checking in"},
			wantCategory:   domain.DefaultCategory,
			wantConfidence: 0.5,
			wantReasoning:  "Default classification",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, tool, err := classifier.Classify(context.Background(), tt.msg)
			if err != nil {
				t.Fatalf("Classify failed: %v", err)
			}
			if tool != domain.ToolKeywordMatching {
				t.Errorf("tool = %q, want keyword fallback", tool)
			}
			if result.Category != tt.wantCategory {
				t.Errorf("Category = %q, want %q", result.Category, tt.wantCategory)
			}
			// Keyword confidence is matches*0.2 computed in floating
			// point, so compare within an epsilon.
			if math.Abs(result.Confidence-tt.wantConfidence) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", result.Confidence, tt.wantConfidence)
			}
			if result.Reasoning != tt.wantReasoning {
				t.Errorf("Reasoning = %q, want %q", result.Reasoning, tt.wantReasoning)
			}
		})
	}
}

func TestClassifierFallbackIsIdempotent(t *testing.T) {
	classifier := NewClassifier(nil, nil)
	msg := workMessage()

	first, _, _ := classifier.Classify(context.Background(), msg)
	second, _, _ := classifier.Classify(context.Background(), msg)

	if first.Category != second.Category || first.Confidence != second.Confidence {
		t.Errorf("fallback not stable: %+v vs %+v", first, second)
	}
}
