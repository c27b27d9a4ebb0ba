package domain

import "time"

// =============================================================================
// Stage Results
// =============================================================================

// ClassificationResult is produced exactly once per pipeline run.
type ClassificationResult struct {
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// Formality levels for ToneResult.
const (
	FormalityFormal  = "formal"
	FormalityCasual  = "casual"
	FormalityNeutral = "neutral"
)

// ToneResult holds the deterministic tone analysis of a message.
// AllTones is an unordered set; PrimaryTone is chosen by a fixed priority.
type ToneResult struct {
	PrimaryTone string   `json:"primary_tone"`
	Formality   string   `json:"formality"`
	AllTones    []string `json:"all_tones"`
	Confidence  float64  `json:"confidence"`
}

// HasTone reports whether the given tone flag was detected.
func (t *ToneResult) HasTone(tone string) bool {
	for _, v := range t.AllTones {
		if v == tone {
			return true
		}
	}
	return false
}

// Importance levels, keyed off the total score.
const (
	LevelCritical = "Critical" // score >= 70
	LevelHigh     = "High"     // score >= 50
	LevelMedium   = "Medium"   // score >= 30
	LevelLow      = "Low"
)

// ImportanceResult is the weighted additive importance score. Score is the
// sum of five independently capped factors (30+25+20+15+10), so it never
// exceeds 100.
type ImportanceResult struct {
	Score       int      `json:"score"`
	IsImportant bool     `json:"is_important"`
	Level       string   `json:"level"`
	Reasons     []string `json:"reasons"`
}

// SummaryResult holds the condensed form of a message.
type SummaryResult struct {
	Summary     string   `json:"summary"`
	KeyPoints   []string `json:"key_points"`
	ActionItems []string `json:"action_items"`
}

// ReplyBundle holds three reply drafts of increasing length plus a subject
// line. Produced only when the action set contains a reply trigger.
type ReplyBundle struct {
	Brief    string `json:"brief"`
	Standard string `json:"standard"`
	Detailed string `json:"detailed"`
	Subject  string `json:"subject"`
}

// =============================================================================
// Actions
// =============================================================================

// Recommended handling actions.
const (
	ActionDelete           = "delete"
	ActionUnsubscribe      = "unsubscribe"
	ActionHighlight        = "highlight"
	ActionPriorityInbox    = "priority_inbox"
	ActionReplyASAP        = "reply_asap"
	ActionFlag             = "flag"
	ActionNeedsReply       = "needs_reply"
	ActionTrack            = "track"
	ActionCalendarReminder = "calendar_reminder"
	ActionArchive          = "archive"
	ActionMarkAsRead       = "mark_as_read"
	ActionReadLater        = "read_later"
	ActionReview           = "review"
)

// ActionSet is an ordered list of recommended actions. It is never empty;
// the decision engine appends "review" when no rule fires.
type ActionSet []string

// Contains reports whether the set includes the given action.
func (a ActionSet) Contains(action string) bool {
	for _, v := range a {
		if v == action {
			return true
		}
	}
	return false
}

// NeedsReply reports whether any action in the set triggers reply generation.
func (a ActionSet) NeedsReply() bool {
	return a.Contains(ActionNeedsReply) || a.Contains(ActionReplyASAP)
}

// =============================================================================
// Provenance
// =============================================================================

// Stage names used as provenance keys.
const (
	StageParser     = "parser"
	StageClassifier = "classifier"
	StageSummarizer = "summarizer"
	StageDecision   = "decision"
	StageReply      = "reply"
)

// Tool names recorded as provenance values. "openai" marks the AI tier; the
// rest mark the deterministic fallback tier of each stage.
const (
	ToolOpenAI          = "openai"
	ToolKeywordMatching = "keyword_matching"
	ToolTruncation      = "text_truncation"
	ToolTemplate        = "template_fallback"
	ToolRegexParser     = "regex_parser"
	ToolRuleEngine      = "rule_engine"
)

// =============================================================================
// Final Record
// =============================================================================

// AnalysisRecord is the pipeline's final output for one message. It is
// assembled by the orchestrator and handed to persistence as a value.
type AnalysisRecord struct {
	ID     string `json:"id" bson:"id"`
	UserID string `json:"user_id" bson:"user_id"`

	Parsed ParsedMessage `json:"parsed_message" bson:"parsed_message"`

	Category                 string  `json:"category" bson:"category"`
	ClassificationConfidence float64 `json:"classification_confidence" bson:"classification_confidence"`
	ClassificationReasoning  string  `json:"classification_reasoning" bson:"classification_reasoning"`

	Summary     string   `json:"summary" bson:"summary"`
	KeyPoints   []string `json:"key_points" bson:"key_points"`
	ActionItems []string `json:"action_items" bson:"action_items"`

	ImportanceScore int    `json:"importance_score" bson:"importance_score"`
	IsImportant     bool   `json:"is_important" bson:"is_important"`
	ImportanceLevel string `json:"importance_level" bson:"importance_level"`

	Tone      string `json:"tone" bson:"tone"`
	Formality string `json:"formality" bson:"formality"`

	SuggestedActions ActionSet    `json:"suggested_actions" bson:"suggested_actions"`
	SuggestedReply   *ReplyBundle `json:"suggested_reply,omitempty" bson:"suggested_reply,omitempty"`

	// ToolsUsed maps each executed stage to the tool that produced its
	// result, so a degraded run is visible without being an error.
	ToolsUsed map[string]string `json:"tools_used" bson:"tools_used"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
