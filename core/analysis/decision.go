package analysis

import "assistant_server/core/domain"

// DecisionEngine is the pure rule table mapping category, importance, and
// tone into an ordered action set. No external calls; cannot fail.
type DecisionEngine struct{}

// NewDecisionEngine creates a decision engine.
func NewDecisionEngine() *DecisionEngine {
	return &DecisionEngine{}
}

// Decide evaluates the rules in fixed order with first-match-append
// semantics. Spam short-circuits; every other matching rule fires.
func (e *DecisionEngine) Decide(category string, importance *domain.ImportanceResult, tone *domain.ToneResult) domain.ActionSet {
	var actions domain.ActionSet

	if category == domain.CategorySpam {
		return domain.ActionSet{domain.ActionDelete, domain.ActionUnsubscribe}
	}

	if importance.IsImportant {
		actions = append(actions, domain.ActionHighlight, domain.ActionPriorityInbox)
	}

	if tone.HasTone(toneUrgent) {
		actions = append(actions, domain.ActionReplyASAP, domain.ActionFlag)
	}

	if tone.HasTone(toneInquisitive) {
		actions = append(actions, domain.ActionNeedsReply)
	}

	if category == domain.CategoryWork {
		actions = append(actions, domain.ActionTrack)
		if importance.Score > 30 {
			actions = append(actions, domain.ActionCalendarReminder)
		}
	}

	if category == domain.CategoryFinancial {
		actions = append(actions, domain.ActionArchive, domain.ActionMarkAsRead)
	}

	if category == domain.CategoryNewsletter {
		actions = append(actions, domain.ActionReadLater, domain.ActionArchive)
	}

	if len(actions) == 0 {
		actions = append(actions, domain.ActionReview)
	}

	return actions
}
