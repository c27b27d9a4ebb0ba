package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"assistant_server/core/agent/llm"
	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/apperr"
	"assistant_server/pkg/logger"
)

const summarizerTemperature = 0.5

// Summarizer condenses a message into a short summary with key points and
// action items. Falls back to first-sentence truncation when the AI tier
// returns something unusable.
type Summarizer struct {
	generator out.TextGenerator
}

// NewSummarizer creates a summarizer. A nil generator disables the AI tier.
func NewSummarizer(generator out.TextGenerator) *Summarizer {
	return &Summarizer{generator: generator}
}

type summaryResponse struct {
	Summary     string    `json:"summary"`
	KeyPoints   *[]string `json:"key_points"`
	ActionItems *[]string `json:"action_items"`
}

// Summarize returns the summary result plus the tool that produced it.
func (s *Summarizer) Summarize(ctx context.Context, msg *domain.ParsedMessage, category string) (*domain.SummaryResult, string, error) {
	if s.generator != nil {
		result, err := s.summarizeAI(ctx, msg, category)
		if err == nil {
			return result, domain.ToolOpenAI, nil
		}
		if apperr.IsServiceUnavailable(err) {
			return nil, "", err
		}
		logger.WithError(err).Debug("AI summary unusable, using truncation fallback")
	}

	return s.summarizeFallback(msg), domain.ToolTruncation, nil
}

func (s *Summarizer) summarizeAI(ctx context.Context, msg *domain.ParsedMessage, category string) (*domain.SummaryResult, error) {
	systemInstruction := `You are an expert email summarizer.
Create a concise summary of the email in 1-2 sentences.
Extract key points and action items if any.

IMPORTANT: Your response MUST be a valid JSON object with these exact fields:
{
  "summary": "1-2 sentence summary",
  "key_points": ["point 1", "point 2"],
  "action_items": ["action 1", "action 2"]
}

Use an empty array when there are no action items.
Do not include any text before or after the JSON.`

	prompt := fmt.Sprintf("Summarize this email:\n\nSubject: %s\nFrom: %s\nCategory: %s\n\nBody:\n%s",
		msg.Subject, msg.Sender.Name, category, msg.Body)

	resp, err := s.generator.Generate(ctx, prompt, systemInstruction, summarizerTemperature)
	if err != nil {
		return nil, err
	}

	var parsed summaryResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed summary response: %w", err)
	}
	if parsed.Summary == "" || parsed.KeyPoints == nil || parsed.ActionItems == nil {
		return nil, fmt.Errorf("summary response missing required fields")
	}

	return &domain.SummaryResult{
		Summary:     parsed.Summary,
		KeyPoints:   *parsed.KeyPoints,
		ActionItems: *parsed.ActionItems,
	}, nil
}

// summarizeFallback takes the first sentence of the body capped at 150
// characters, or the subject verbatim when the body is empty. A body with
// no period still gets one appended, so the summary always reads as a
// sentence.
func (s *Summarizer) summarizeFallback(msg *domain.ParsedMessage) *domain.SummaryResult {
	summary := msg.Subject
	if msg.Body != "" {
		firstSentence := msg.Body + "."
		if idx := strings.Index(msg.Body, "."); idx >= 0 {
			firstSentence = msg.Body[:idx+1]
		}
		if len(firstSentence) > 150 {
			firstSentence = firstSentence[:150]
		}
		summary = firstSentence
	}

	var keyPoints []string
	if msg.Subject != "" {
		keyPoints = []string{msg.Subject}
	}

	return &domain.SummaryResult{
		Summary:     summary,
		KeyPoints:   keyPoints,
		ActionItems: []string{},
	}
}
