package analysis

import (
	"reflect"
	"testing"

	"assistant_server/core/domain"
)

func TestDecisionRules(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		importance *domain.ImportanceResult
		tone       *domain.ToneResult
		want       domain.ActionSet
	}{
		{
			name:       "spam short-circuits every other rule",
			category:   domain.CategorySpam,
			importance: &domain.ImportanceResult{Score: 90, IsImportant: true},
			tone:       &domain.ToneResult{AllTones: []string{"urgent", "inquisitive"}},
			want:       domain.ActionSet{domain.ActionDelete, domain.ActionUnsubscribe},
		},
		{
			name:       "important urgent work message fires rules in order",
			category:   domain.CategoryWork,
			importance: &domain.ImportanceResult{Score: 75, IsImportant: true},
			tone:       &domain.ToneResult{AllTones: []string{"urgent"}},
			want: domain.ActionSet{
				domain.ActionHighlight, domain.ActionPriorityInbox,
				domain.ActionReplyASAP, domain.ActionFlag,
				domain.ActionTrack, domain.ActionCalendarReminder,
			},
		},
		{
			name:       "low scoring work message gets track only",
			category:   domain.CategoryWork,
			importance: &domain.ImportanceResult{Score: 30},
			tone:       &domain.ToneResult{},
			want:       domain.ActionSet{domain.ActionTrack},
		},
		{
			name:       "work above the calendar threshold",
			category:   domain.CategoryWork,
			importance: &domain.ImportanceResult{Score: 31},
			tone:       &domain.ToneResult{},
			want:       domain.ActionSet{domain.ActionTrack, domain.ActionCalendarReminder},
		},
		{
			name:       "question triggers needs_reply",
			category:   domain.CategoryPersonal,
			importance: &domain.ImportanceResult{Score: 20},
			tone:       &domain.ToneResult{AllTones: []string{"inquisitive"}},
			want:       domain.ActionSet{domain.ActionNeedsReply},
		},
		{
			name:       "financial gets filed",
			category:   domain.CategoryFinancial,
			importance: &domain.ImportanceResult{Score: 25},
			tone:       &domain.ToneResult{},
			want:       domain.ActionSet{domain.ActionArchive, domain.ActionMarkAsRead},
		},
		{
			name:       "newsletter gets deferred",
			category:   domain.CategoryNewsletter,
			importance: &domain.ImportanceResult{Score: 10},
			tone:       &domain.ToneResult{},
			want:       domain.ActionSet{domain.ActionReadLater, domain.ActionArchive},
		},
		{
			name:       "nothing fires defaults to review",
			category:   domain.CategoryPersonal,
			importance: &domain.ImportanceResult{Score: 15},
			tone:       &domain.ToneResult{AllTones: []string{"grateful"}},
			want:       domain.ActionSet{domain.ActionReview},
		},
	}

	engine := NewDecisionEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Decide(tt.category, tt.importance, tt.tone)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecisionIsPure(t *testing.T) {
	engine := NewDecisionEngine()
	importance := &domain.ImportanceResult{Score: 75, IsImportant: true}
	tone := &domain.ToneResult{AllTones: []string{"urgent"}}

	first := engine.Decide(domain.CategoryWork, importance, tone)
	second := engine.Decide(domain.CategoryWork, importance, tone)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same input produced different actions: %v vs %v", first, second)
	}
}
