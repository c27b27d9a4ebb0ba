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

const (
	replyTemperature = 0.7
	replyBodyExcerpt = 800
)

// ReplyGenerator drafts suggested replies in three lengths. Runs only when
// the action set contains a reply trigger; falls back to category templates
// when the AI tier returns something unusable.
type ReplyGenerator struct {
	generator out.TextGenerator
	templates *domain.ReplyTemplateTable
}

// NewReplyGenerator creates a reply generator. A nil generator disables the
// AI tier; a nil table falls back to the built-in templates.
func NewReplyGenerator(generator out.TextGenerator, templates *domain.ReplyTemplateTable) *ReplyGenerator {
	if templates == nil {
		templates = domain.DefaultReplyTemplateTable()
	}
	return &ReplyGenerator{generator: generator, templates: templates}
}

type replyResponse struct {
	Brief        string `json:"brief"`
	Standard     string `json:"standard"`
	Detailed     string `json:"detailed"`
	SubjectReply string `json:"subject_reply"`
}

// Generate returns the reply bundle plus the tool that produced it. Tone,
// summary, and action items come from the earlier stages and steer the AI
// draft; the template fallback uses only sender, subject, and category.
func (g *ReplyGenerator) Generate(ctx context.Context, msg *domain.ParsedMessage, category, tone, summary string, actionItems []string) (*domain.ReplyBundle, string, error) {
	if g.generator != nil {
		bundle, err := g.generateAI(ctx, msg, category, tone, summary, actionItems)
		if err == nil {
			return bundle, domain.ToolOpenAI, nil
		}
		if apperr.IsServiceUnavailable(err) {
			return nil, "", err
		}
		logger.WithError(err).Debug("AI reply unusable, using template fallback")
	}

	return g.generateFallback(msg, category), domain.ToolTemplate, nil
}

func (g *ReplyGenerator) generateAI(ctx context.Context, msg *domain.ParsedMessage, category, tone, summary string, actionItems []string) (*domain.ReplyBundle, error) {
	systemInstruction := fmt.Sprintf(`You are an expert email reply writer.
Write three reply drafts matching the sender's language.
Match the tone: %s
- brief: 1-2 sentences, acknowledges and commits
- standard: a short professional reply, 3-5 sentences
- detailed: a thorough reply covering every point raised

IMPORTANT: Your response MUST be a valid JSON object with these exact fields:
{
  "brief": "...",
  "standard": "...",
  "detailed": "...",
  "subject_reply": "Re: ..."
}

Do not include any text before or after the JSON.`, tone)

	items := "None"
	if len(actionItems) > 0 {
		items = strings.Join(actionItems, ", ")
	}

	prompt := fmt.Sprintf("Write reply drafts for this email:\n\nFrom: %s\nSubject: %s\nCategory: %s\nTone: %s\nSummary: %s\nAction items identified: %s\n\nBody:\n%s",
		msg.Sender.Name, msg.Subject, category, tone, summary, items, llm.TruncateBody(msg.Body, replyBodyExcerpt))

	resp, err := g.generator.Generate(ctx, prompt, systemInstruction, replyTemperature)
	if err != nil {
		return nil, err
	}

	var parsed replyResponse
	if err := json.Unmarshal([]byte(llm.ExtractJSON(resp)), &parsed); err != nil {
		return nil, fmt.Errorf("malformed reply response: %w", err)
	}
	if parsed.Brief == "" || parsed.Standard == "" || parsed.Detailed == "" {
		return nil, fmt.Errorf("reply response missing required fields")
	}

	subject := parsed.SubjectReply
	if subject == "" {
		subject = "Re: " + msg.Subject
	}

	return &domain.ReplyBundle{
		Brief:    parsed.Brief,
		Standard: parsed.Standard,
		Detailed: parsed.Detailed,
		Subject:  subject,
	}, nil
}

func (g *ReplyGenerator) generateFallback(msg *domain.ParsedMessage, category string) *domain.ReplyBundle {
	tpl := g.templates.ForCategory(category)
	sender := msg.Sender.Name
	if sender == "" {
		sender = msg.Sender.Address
	}

	return &domain.ReplyBundle{
		Brief:    domain.RenderTemplate(tpl.Brief, sender, msg.Subject),
		Standard: domain.RenderTemplate(tpl.Standard, sender, msg.Subject),
		Detailed: domain.RenderTemplate(tpl.Detailed, sender, msg.Subject),
		Subject:  "Re: " + msg.Subject,
	}
}
