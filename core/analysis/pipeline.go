package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"assistant_server/core/domain"
	"assistant_server/core/port/out"
	"assistant_server/pkg/logger"
)

// Pipeline runs the fixed stage sequence over one raw message:
// parse, classify, summarize, decide, and optionally draft replies.
// Stage provenance is recorded in the result's ToolsUsed map.
type Pipeline struct {
	parser     *Parser
	classifier *Classifier
	summarizer *Summarizer
	tone       *ToneAnalyzer
	importance *ImportanceScorer
	decision   *DecisionEngine
	reply      *ReplyGenerator
}

// NewPipeline wires the full stage sequence. A nil generator runs every
// AI-assisted stage on its deterministic fallback.
func NewPipeline(generator out.TextGenerator, categories *domain.CategoryTable, templates *domain.ReplyTemplateTable) *Pipeline {
	return &Pipeline{
		parser:     NewParser(),
		classifier: NewClassifier(generator, categories),
		summarizer: NewSummarizer(generator),
		tone:       NewToneAnalyzer(),
		importance: NewImportanceScorer(),
		decision:   NewDecisionEngine(),
		reply:      NewReplyGenerator(generator, templates),
	}
}

// Analyze runs the pipeline and assembles the final record. Returns an
// error only for fatal failures: invalid input or an unavailable
// generative service. Fallback-tier results are not errors.
func (p *Pipeline) Analyze(ctx context.Context, userID string, raw *domain.RawMessage) (*domain.AnalysisRecord, error) {
	start := time.Now()
	tools := map[string]string{}

	parsed, err := p.parser.Parse(raw)
	if err != nil {
		return nil, err
	}
	tools[domain.StageParser] = domain.ToolRegexParser

	classification, tool, err := p.classifier.Classify(ctx, parsed)
	if err != nil {
		return nil, err
	}
	tools[domain.StageClassifier] = tool

	summary, tool, err := p.summarizer.Summarize(ctx, parsed, classification.Category)
	if err != nil {
		return nil, err
	}
	tools[domain.StageSummarizer] = tool

	// Importance and tone feed only the decision rules and are
	// independent of each other.
	var (
		wg         sync.WaitGroup
		importance *domain.ImportanceResult
		toneResult *domain.ToneResult
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		importance = p.importance.Score(parsed, classification.Category)
	}()
	go func() {
		defer wg.Done()
		toneResult = p.tone.Analyze(parsed.Subject, parsed.Body)
	}()
	wg.Wait()

	actions := p.decision.Decide(classification.Category, importance, toneResult)
	tools[domain.StageDecision] = domain.ToolRuleEngine

	var replyBundle *domain.ReplyBundle
	if actions.NeedsReply() {
		replyBundle, tool, err = p.reply.Generate(ctx, parsed, classification.Category, toneResult.PrimaryTone, summary.Summary, summary.ActionItems)
		if err != nil {
			return nil, err
		}
		tools[domain.StageReply] = tool
	}

	record := &domain.AnalysisRecord{
		ID:     uuid.New().String(),
		UserID: userID,

		Parsed: *parsed,

		Category:                 classification.Category,
		ClassificationConfidence: classification.Confidence,
		ClassificationReasoning:  classification.Reasoning,

		Summary:     summary.Summary,
		KeyPoints:   summary.KeyPoints,
		ActionItems: summary.ActionItems,

		ImportanceScore: importance.Score,
		IsImportant:     importance.IsImportant,
		ImportanceLevel: importance.Level,

		Tone:      toneResult.PrimaryTone,
		Formality: toneResult.Formality,

		SuggestedActions: actions,
		SuggestedReply:   replyBundle,

		ToolsUsed: tools,
		CreatedAt: time.Now().UTC(),
	}

	logger.WithFields(map[string]any{
		"user_id":     userID,
		"category":    record.Category,
		"importance":  record.ImportanceScore,
		"actions":     len(record.SuggestedActions),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Message analysis completed")

	return record, nil
}
