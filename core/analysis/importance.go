package analysis

import (
	"fmt"
	"strings"

	"assistant_server/core/domain"
)

// Factor keyword tables. Each factor is independently computed and capped;
// the five caps (30+25+20+15+10) bound the total at 100.
var (
	categoryWeights = map[string]int{
		"Work":         30,
		"Important":    30,
		"Financial":    25,
		"Support":      20,
		"Announcement": 15,
		"Personal":     10,
		"Newsletter":   5,
		"Spam":         0,
	}

	authorityIndicators = []string{"boss", "ceo", "manager", "director", "urgent", "important"}
	orgDomainSuffixes   = []string{".edu", ".gov", ".org"}

	highPrioritySubject   = []string{"urgent", "important", "asap", "critical", "action required"}
	mediumPrioritySubject = []string{"meeting", "deadline", "response needed", "reminder"}

	urgentBodyWords = []string{"urgent", "asap", "immediately"}
)

const importantThreshold = 50

// ImportanceScorer computes the weighted additive importance score.
type ImportanceScorer struct{}

// NewImportanceScorer creates an importance scorer.
func NewImportanceScorer() *ImportanceScorer {
	return &ImportanceScorer{}
}

// Score computes the importance of a parsed message for a given category.
// It never fails; reasons record, in evaluation order, the factors that
// contributed points.
func (s *ImportanceScorer) Score(msg *domain.ParsedMessage, category string) *domain.ImportanceResult {
	score := 0
	var reasons []string

	// Factor 1: category weight (0-30)
	if pts := scoreCategory(category); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("Category '%s' adds %d points", category, pts))
	}

	// Factor 2: sender (0-25)
	if pts := scoreSender(msg.Sender); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("Sender importance adds %d points", pts))
	}

	// Factor 3: subject keywords (0-20)
	if pts := scoreSubject(msg.Subject); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("Subject keywords add %d points", pts))
	}

	// Factor 4: body content (0-15)
	if pts := scoreBody(msg.Body); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("Body content adds %d points", pts))
	}

	// Factor 5: metadata (0-10)
	if pts := scoreMetadata(msg.Metadata); pts > 0 {
		score += pts
		reasons = append(reasons, fmt.Sprintf("Message metadata adds %d points", pts))
	}

	return &domain.ImportanceResult{
		Score:       score,
		IsImportant: score >= importantThreshold,
		Level:       importanceLevel(score),
		Reasons:     reasons,
	}
}

func scoreCategory(category string) int {
	if weight, ok := categoryWeights[category]; ok {
		return weight
	}
	return 10
}

// scoreSender evaluates checks in priority order: authority keyword,
// organizational domain, no-reply marker, default.
func scoreSender(sender domain.Sender) int {
	address := strings.ToLower(sender.Address)
	name := strings.ToLower(sender.Name)

	for _, indicator := range authorityIndicators {
		if strings.Contains(name, indicator) || strings.Contains(address, indicator) {
			return 25
		}
	}

	for _, suffix := range orgDomainSuffixes {
		if strings.Contains(address, suffix) {
			return 15
		}
	}

	if strings.Contains(address, "noreply") || strings.Contains(address, "no-reply") {
		return 0
	}

	return 10
}

func scoreSubject(subject string) int {
	lower := strings.ToLower(subject)

	if containsAny(lower, highPrioritySubject) {
		return 20
	}
	if containsAny(lower, mediumPrioritySubject) {
		return 15
	}
	if strings.Contains(subject, "?") {
		return 10
	}
	return 5
}

func scoreBody(body string) int {
	lower := strings.ToLower(body)

	if containsAny(lower, urgentBodyWords) {
		return 15
	}
	if strings.Contains(body, "?") {
		return 10
	}
	if len(strings.Fields(body)) < 50 {
		return 8
	}
	return 5
}

func scoreMetadata(meta domain.MessageMetadata) int {
	score := 0
	if meta.HasQuestion {
		score += 5
	}
	if meta.HasPhone {
		score += 3
	}
	if meta.WordCount < 50 {
		score += 2
	}
	return score
}

func importanceLevel(score int) string {
	switch {
	case score >= 70:
		return domain.LevelCritical
	case score >= 50:
		return domain.LevelHigh
	case score >= 30:
		return domain.LevelMedium
	default:
		return domain.LevelLow
	}
}
