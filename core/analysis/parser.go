// Package analysis implements the message analysis pipeline: parsing,
// tone analysis, importance scoring, classification, summarization,
// action decision, and reply generation.
package analysis

import (
	"net/mail"
	"regexp"
	"strings"

	"assistant_server/core/domain"
	"assistant_server/pkg/apperr"
)

var (
	subjectPrefixPattern = regexp.MustCompile(`(?i)^(Re:|Fwd?:|FW:)\s*`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
	signaturePattern     = regexp.MustCompile(`(?s)-{2,}.*$`)
	linkPattern          = regexp.MustCompile(`https?://`)
	phonePattern         = regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`)
)

// Parser normalizes raw messages into structured records.
type Parser struct{}

// NewParser creates a message parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse validates and normalizes a raw message. A message with neither
// subject nor body is a validation failure, not a parse failure.
func (p *Parser) Parse(raw *domain.RawMessage) (*domain.ParsedMessage, error) {
	if strings.TrimSpace(raw.Subject) == "" && strings.TrimSpace(raw.Body) == "" {
		return nil, apperr.ValidationFailed("message must have either subject or body")
	}

	return &domain.ParsedMessage{
		Sender:         parseSender(raw.Sender),
		Subject:        cleanSubject(raw.Subject),
		Body:           cleanBody(raw.Body),
		Metadata:       extractMetadata(raw.Body),
		ReceivedAt:     raw.ReceivedAt,
		HasAttachments: raw.HasAttachments,
	}, nil
}

// parseSender splits a free-text address into display name and address.
// When no display name is present the local part of the address is used;
// when the address is unparseable the raw string is kept verbatim.
func parseSender(sender string) domain.Sender {
	if sender == "" {
		return domain.Sender{Name: "Unknown", Address: ""}
	}

	addr, err := mail.ParseAddress(sender)
	if err != nil {
		name := "Unknown"
		if at := strings.Index(sender, "@"); at > 0 {
			name = sender[:at]
		}
		return domain.Sender{Name: name, Address: sender}
	}

	name := addr.Name
	if name == "" {
		name = addr.Address
		if at := strings.Index(addr.Address, "@"); at > 0 {
			name = addr.Address[:at]
		}
	}
	return domain.Sender{Name: name, Address: addr.Address}
}

// cleanSubject strips a leading reply/forward marker and trims whitespace.
func cleanSubject(subject string) string {
	return strings.TrimSpace(subjectPrefixPattern.ReplaceAllString(subject, ""))
}

// cleanBody collapses whitespace runs and drops everything from the first
// signature delimiter (two or more dashes) onward.
func cleanBody(body string) string {
	body = whitespacePattern.ReplaceAllString(body, " ")
	body = signaturePattern.ReplaceAllString(body, "")
	return strings.TrimSpace(body)
}

// extractMetadata pulls lightweight signals from the raw body.
func extractMetadata(body string) domain.MessageMetadata {
	return domain.MessageMetadata{
		HasLinks:    linkPattern.MatchString(body),
		HasPhone:    phonePattern.MatchString(body),
		WordCount:   len(strings.Fields(body)),
		HasQuestion: strings.Contains(body, "?"),
	}
}
