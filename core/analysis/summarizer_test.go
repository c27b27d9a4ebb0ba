package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"assistant_server/core/domain"
	"assistant_server/pkg/apperr"
)

func TestSummarizerAITier(t *testing.T) {
	gen := &fakeGenerator{response: `{"summary": "Client meeting moved to Friday.", "key_points": ["deadline change"], "action_items": ["update task board"]}`}
	summarizer := NewSummarizer(gen)

	result, tool, err := summarizer.Summarize(context.Background(), workMessage(), "Work")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if tool != domain.ToolOpenAI {
		t.Errorf("tool = %q, want %q", tool, domain.ToolOpenAI)
	}
	if result.Summary != "Client meeting moved to Friday." {
		t.Errorf("Summary = %q", result.Summary)
	}
	if len(result.KeyPoints) != 1 || len(result.ActionItems) != 1 {
		t.Errorf("unexpected points/items: %+v", result)
	}
}

func TestSummarizerMissingKeysFallsBack(t *testing.T) {
	// key_points absent entirely, not just empty.
	gen := &fakeGenerator{response: `{"summary": "something", "action_items": []}`}
	summarizer := NewSummarizer(gen)

	_, tool, err := summarizer.Summarize(context.Background(), workMessage(), "Work")
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if tool != domain.ToolTruncation {
		t.Errorf("tool = %q, want truncation fallback", tool)
	}
}

func TestSummarizerServiceUnavailableIsFatal(t *testing.T) {
	gen := &fakeGenerator{err: apperr.ServiceUnavailable("generative service", errors.New("timeout"))}
	summarizer := NewSummarizer(gen)

	_, _, err := summarizer.Summarize(context.Background(), workMessage(), "Work")
	if !apperr.IsServiceUnavailable(err) {
		t.Errorf("expected service unavailable, got %v", err)
	}
}

func TestSummarizerFallback(t *testing.T) {
	summarizer := NewSummarizer(nil)

	tests := []struct {
		name          string
		msg           *domain.ParsedMessage
		wantSummary   string
		wantKeyPoints int
	}{
		{
			name:          "first sentence of the body",
			msg:           &domain.ParsedMessage{Subject: "Plans", Body: "Dinner is at eight. Bring the projector."},
			wantSummary:   "Dinner is at eight.",
			wantKeyPoints: 1,
		},
		{
			name:          "body without a period gets one appended",
			msg:           &domain.ParsedMessage{Subject: "Ping", Body: "are you free tomorrow"},
			wantSummary:   "are you free tomorrow.",
			wantKeyPoints: 1,
		},
		{
			name:          "subject when body is empty",
			msg:           &domain.ParsedMessage{Subject: "Reminder: stand-up at 9", Body: ""},
			wantSummary:   "Reminder: stand-up at 9",
			wantKeyPoints: 1,
		},
		{
			name:          "long first sentence capped at 150 chars",
			msg:           &domain.ParsedMessage{Subject: "", Body: strings.Repeat("a", 300) + ". rest"},
			wantSummary:   strings.Repeat("a", 150),
			wantKeyPoints: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, tool, err := summarizer.Summarize(context.Background(), tt.msg, "Personal")
			if err != nil {
				t.Fatalf("Summarize failed: %v", err)
			}
			if tool != domain.ToolTruncation {
				t.Errorf("tool = %q, want truncation fallback", tool)
			}
			if result.Summary != tt.wantSummary {
				t.Errorf("Summary = %q, want %q", result.Summary, tt.wantSummary)
			}
			if len(result.KeyPoints) != tt.wantKeyPoints {
				t.Errorf("len(KeyPoints) = %d, want %d", len(result.KeyPoints), tt.wantKeyPoints)
			}
			if result.ActionItems == nil {
				t.Error("ActionItems should be an empty slice, not nil")
			}
		})
	}
}
