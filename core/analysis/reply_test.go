package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"assistant_server/core/domain"
	"assistant_server/pkg/apperr"
)

func TestReplyGeneratorAITier(t *testing.T) {
	gen := &fakeGenerator{response: `{"brief": "Got it, will do.", "standard": "Hi Ann, I will update the board today.", "detailed": "Hi Ann, thanks for the heads up. I will move the tasks and confirm with the client by Friday.", "subject_reply": "Re: Project deadline moved"}`}
	generator := NewReplyGenerator(gen, nil)

	bundle, tool, err := generator.Generate(context.Background(), workMessage(), "Work", "neutral", "Deadline moved to Friday", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if tool != domain.ToolOpenAI {
		t.Errorf("tool = %q, want %q", tool, domain.ToolOpenAI)
	}
	if bundle.Brief != "Got it, will do." {
		t.Errorf("Brief = %q", bundle.Brief)
	}
	if bundle.Subject != "Re: Project deadline moved" {
		t.Errorf("Subject = %q", bundle.Subject)
	}
}

func TestReplyGeneratorDefaultsSubject(t *testing.T) {
	gen := &fakeGenerator{response: `{"brief": "b", "standard": "s", "detailed": "d"}`}
	generator := NewReplyGenerator(gen, nil)

	bundle, _, err := generator.Generate(context.Background(), workMessage(), "Work", "neutral", "", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if bundle.Subject != "Re: Project deadline moved" {
		t.Errorf("Subject = %q, want Re: prefix on original subject", bundle.Subject)
	}
}

func TestReplyGeneratorPromptCarriesContext(t *testing.T) {
	gen := &fakeGenerator{response: `{"brief": "b", "standard": "s", "detailed": "d", "subject_reply": "Re: x"}`}
	generator := NewReplyGenerator(gen, nil)

	msg := workMessage()
	msg.Body = "Please review the budget figures. " + strings.Repeat("x", 900)

	_, _, err := generator.Generate(context.Background(), msg, "Work", "urgent", "Budget needs sign-off", []string{"approve budget", "book meeting room"})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !strings.Contains(gen.system, "Match the tone: urgent") {
		t.Error("system instruction missing tone directive")
	}
	if !strings.Contains(gen.prompt, "Tone: urgent") {
		t.Error("prompt missing tone")
	}
	if !strings.Contains(gen.prompt, "approve budget, book meeting room") {
		t.Error("prompt missing action items")
	}
	if !strings.Contains(gen.prompt, "Budget needs sign-off") {
		t.Error("prompt missing summary")
	}
	// The body excerpt is capped at 800 characters.
	if strings.Contains(gen.prompt, strings.Repeat("x", 800)) {
		t.Error("prompt carries the untruncated body")
	}
}

func TestReplyGeneratorEmptyActionItems(t *testing.T) {
	gen := &fakeGenerator{response: `{"brief": "b", "standard": "s", "detailed": "d", "subject_reply": "Re: x"}`}
	generator := NewReplyGenerator(gen, nil)

	if _, _, err := generator.Generate(context.Background(), workMessage(), "Work", "neutral", "", nil); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if !strings.Contains(gen.prompt, "Action items identified: None") {
		t.Errorf("prompt = %q, want None placeholder for empty action items", gen.prompt)
	}
}

func TestReplyGeneratorMalformedFallsBack(t *testing.T) {
	gen := &fakeGenerator{response: "Here are some reply suggestions for you!"}
	generator := NewReplyGenerator(gen, nil)

	bundle, tool, err := generator.Generate(context.Background(), workMessage(), "Work", "neutral", "", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if tool != domain.ToolTemplate {
		t.Errorf("tool = %q, want template fallback", tool)
	}
	if bundle.Brief == "" || bundle.Standard == "" || bundle.Detailed == "" {
		t.Errorf("fallback bundle incomplete: %+v", bundle)
	}
}

func TestReplyGeneratorServiceUnavailableIsFatal(t *testing.T) {
	gen := &fakeGenerator{err: apperr.ServiceUnavailable("generative service", errors.New("circuit open"))}
	generator := NewReplyGenerator(gen, nil)

	_, _, err := generator.Generate(context.Background(), workMessage(), "Work", "neutral", "", nil)
	if !apperr.IsServiceUnavailable(err) {
		t.Errorf("expected service unavailable, got %v", err)
	}
}

func TestReplyGeneratorTemplateFallback(t *testing.T) {
	generator := NewReplyGenerator(nil, nil)

	msg := &domain.ParsedMessage{
		Sender:  domain.Sender{Name: "Minh", Address: "minh@example.com"},
		Subject: "Team dinner",
	}

	bundle, tool, err := generator.Generate(context.Background(), msg, domain.CategoryPersonal, "friendly", "", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if tool != domain.ToolTemplate {
		t.Errorf("tool = %q, want template fallback", tool)
	}
	if !strings.Contains(bundle.Brief, "Minh") {
		t.Errorf("Brief missing sender interpolation: %q", bundle.Brief)
	}
	if !strings.Contains(bundle.Standard, "Team dinner") {
		t.Errorf("Standard missing subject interpolation: %q", bundle.Standard)
	}
	if bundle.Subject != "Re: Team dinner" {
		t.Errorf("Subject = %q, want %q", bundle.Subject, "Re: Team dinner")
	}
}

func TestReplyGeneratorAnnouncementSharesNewsletterTemplate(t *testing.T) {
	generator := NewReplyGenerator(nil, nil)
	msg := &domain.ParsedMessage{Sender: domain.Sender{Name: "HR"}, Subject: "New policy"}

	announcement, _, _ := generator.Generate(context.Background(), msg, domain.CategoryAnnouncement, "neutral", "", nil)
	newsletter, _, _ := generator.Generate(context.Background(), msg, domain.CategoryNewsletter, "neutral", "", nil)

	if announcement.Standard != newsletter.Standard {
		t.Error("announcement should render the newsletter template")
	}
}
