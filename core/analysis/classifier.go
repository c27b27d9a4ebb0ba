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

const classifierTemperature = 0.3

// Classifier assigns a category to a parsed message. The AI tier asks the
// generative service for a JSON verdict; a malformed answer degrades to
// deterministic keyword matching, while service unavailability is fatal.
type Classifier struct {
	generator  out.TextGenerator
	categories *domain.CategoryTable
}

// NewClassifier creates a classifier. A nil generator disables the AI tier.
func NewClassifier(generator out.TextGenerator, categories *domain.CategoryTable) *Classifier {
	if categories.IsEmpty() {
		categories = domain.DefaultCategoryTable()
	}
	return &Classifier{generator: generator, categories: categories}
}

type classificationResponse struct {
	Category   string   `json:"category"`
	Confidence *float64 `json:"confidence"`
	Reasoning  string   `json:"reasoning"`
}

// Classify returns the classification result plus the tool that produced it.
func (c *Classifier) Classify(ctx context.Context, msg *domain.ParsedMessage) (*domain.ClassificationResult, string, error) {
	if c.generator != nil {
		result, err := c.classifyAI(ctx, msg)
		if err == nil {
			return result, domain.ToolOpenAI, nil
		}
		if apperr.IsServiceUnavailable(err) {
			return nil, "", err
		}
		logger.WithError(err).Debug("AI classification unusable, using keyword fallback")
	}

	return c.classifyFallback(msg), domain.ToolKeywordMatching, nil
}

func (c *Classifier) classifyAI(ctx context.Context, msg *domain.ParsedMessage) (*domain.ClassificationResult, error) {
	systemInstruction := fmt.Sprintf(`You are an email classification expert.
Analyze the email and classify it into ONE of these categories: %s

Consider:
- Subject line keywords
- Sender information
- Email content and context
- Tone and purpose

IMPORTANT: Your response MUST be a valid JSON object with these exact fields:
{
  "category": "category name",
  "confidence": 0.0-1.0,
  "reasoning": "brief explanation"
}

Do not include any text before or after the JSON.`, strings.Join(c.categories.Names(), ", "))

	prompt := fmt.Sprintf("Classify this email:\n\nFrom: %s\nSubject: %s\nBody: %s",
		msg.Sender.Address, msg.Subject, llm.TruncateBody(msg.Body, 500))

	resp, err := c.generator.Generate(ctx, prompt, systemInstruction, classifierTemperature)
	if err != nil {
		return nil, err
	}

	var parsed classificationResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed classification response: %w", err)
	}
	if parsed.Category == "" || parsed.Confidence == nil {
		return nil, fmt.Errorf("classification response missing required fields")
	}

	return &domain.ClassificationResult{
		Category:   parsed.Category,
		Confidence: *parsed.Confidence,
		Reasoning:  parsed.Reasoning,
	}, nil
}

// classifyFallback counts case-insensitive keyword occurrences per category;
// the first category with a match wins. Idempotent for a fixed table.
func (c *Classifier) classifyFallback(msg *domain.ParsedMessage) *domain.ClassificationResult {
	text := strings.ToLower(msg.Subject + " " + msg.Body)

	for _, category := range c.categories.Categories {
		matches := 0
		for _, keyword := range category.Keywords {
			if strings.Contains(text, strings.ToLower(keyword)) {
				matches++
			}
		}
		if matches > 0 {
			confidence := float64(matches) * 0.2
			if confidence > 1.0 {
				confidence = 1.0
			}
			return &domain.ClassificationResult{
				Category:   category.Name,
				Confidence: confidence,
				Reasoning:  fmt.Sprintf("Matched %d keywords", matches),
			}
		}
	}

	return &domain.ClassificationResult{
		Category:   domain.DefaultCategory,
		Confidence: 0.5,
		Reasoning:  "Default classification",
	}
}
