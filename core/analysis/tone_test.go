package analysis

import "testing"

func TestToneAnalyzer(t *testing.T) {
	tests := []struct {
		name          string
		subject       string
		body          string
		wantPrimary   string
		wantFormality string
	}{
		{
			name:          "urgent beats everything",
			subject:       "URGENT: server down",
			body:          "Thank you for the heads up, please fix immediately",
			wantPrimary:   "urgent",
			wantFormality: "neutral",
		},
		{
			name:          "apologetic beats grateful",
			subject:       "About yesterday",
			body:          "I am so sorry about the mistake, and thank you for your patience",
			wantPrimary:   "apologetic",
			wantFormality: "neutral",
		},
		{
			name:          "question marks inquisitive",
			subject:       "Quick question",
			body:          "Could you send me the latest numbers?",
			wantPrimary:   "inquisitive",
			wantFormality: "neutral",
		},
		{
			name:          "positive sentiment reads friendly",
			subject:       "Well done",
			body:          "Excellent work on the launch, the team is very pleased",
			wantPrimary:   "friendly",
			wantFormality: "neutral",
		},
		{
			name:          "negative sentiment reads concerned",
			subject:       "Delivery problem",
			body:          "Unfortunately there is an issue with the last shipment",
			wantPrimary:   "concerned",
			wantFormality: "neutral",
		},
		{
			name:          "formal fallback when nothing fires",
			subject:       "Meeting minutes",
			body:          "Dear Sir, hereby the minutes from our last session. Sincerely, A.",
			wantPrimary:   "formal",
			wantFormality: "formal",
		},
		{
			name:          "casual fallback",
			subject:       "lunch",
			body:          "hey, wanna grab lunch at noon",
			wantPrimary:   "casual",
			wantFormality: "casual",
		},
		{
			name:          "empty text is neutral",
			subject:       "",
			body:          "",
			wantPrimary:   "neutral",
			wantFormality: "neutral",
		},
	}

	analyzer := NewToneAnalyzer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := analyzer.Analyze(tt.subject, tt.body)
			if result.PrimaryTone != tt.wantPrimary {
				t.Errorf("PrimaryTone = %q, want %q (all tones %v)", result.PrimaryTone, tt.wantPrimary, result.AllTones)
			}
			if result.Formality != tt.wantFormality {
				t.Errorf("Formality = %q, want %q", result.Formality, tt.wantFormality)
			}
			if result.Confidence != 0.8 {
				t.Errorf("Confidence = %v, want 0.8", result.Confidence)
			}
		})
	}
}

func TestToneAnalyzerCollectsAllTones(t *testing.T) {
	analyzer := NewToneAnalyzer()

	result := analyzer.Analyze("Urgent question", "Thank you, but could you respond asap?")

	for _, want := range []string{"urgent", "grateful", "inquisitive"} {
		if !result.HasTone(want) {
			t.Errorf("AllTones missing %q: %v", want, result.AllTones)
		}
	}
	if result.PrimaryTone != "urgent" {
		t.Errorf("PrimaryTone = %q, want urgent", result.PrimaryTone)
	}
}

func TestDetectSentimentTie(t *testing.T) {
	// One positive and one negative hit cancel out.
	if got := detectSentiment("thank you, but there is a problem"); got != "" {
		t.Errorf("detectSentiment = %q, want empty on tie", got)
	}
}
