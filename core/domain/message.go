// Package domain contains the core entities of the message analysis service.
package domain

import "time"

// RawMessage is the inbound message exactly as submitted. It is never
// mutated; every pipeline run derives its own ParsedMessage from it.
type RawMessage struct {
	Sender         string     `json:"sender"`
	Subject        string     `json:"subject"`
	Body           string     `json:"body"`
	ReceivedAt     *time.Time `json:"received_at,omitempty"`
	HasAttachments bool       `json:"has_attachments"`
}

// Sender is a parsed address split into display name and address part.
type Sender struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// MessageMetadata holds lightweight signals extracted from the body.
type MessageMetadata struct {
	HasLinks    bool `json:"has_links"`
	HasPhone    bool `json:"has_phone"`
	WordCount   int  `json:"word_count"`
	HasQuestion bool `json:"has_question"`
}

// ParsedMessage is the normalized form of a RawMessage, owned by a single
// pipeline run.
type ParsedMessage struct {
	Sender         Sender          `json:"sender"`
	Subject        string          `json:"subject"`
	Body           string          `json:"body"`
	Metadata       MessageMetadata `json:"metadata"`
	ReceivedAt     *time.Time      `json:"received_at,omitempty"`
	HasAttachments bool            `json:"has_attachments"`
}
