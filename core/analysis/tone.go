package analysis

import (
	"strings"

	"assistant_server/core/domain"
)

// Tone flag names emitted into ToneResult.AllTones.
const (
	toneUrgent      = "urgent"
	toneGrateful    = "grateful"
	toneApologetic  = "apologetic"
	toneInquisitive = "inquisitive"
	tonePositive    = "positive"
	toneNegative    = "negative"
)

// Keyword lists are fixed; the analyzer is fully deterministic.
var (
	formalIndicators = []string{
		"dear sir", "dear madam", "to whom it may concern",
		"sincerely", "respectfully", "regards",
		"kindly", "hereby", "pursuant",
	}
	casualIndicators = []string{
		"hey", "hi there", "thanks", "cheers",
		"cool", "awesome", "gonna", "wanna",
	}
	urgentKeywords = []string{
		"urgent", "asap", "immediately", "critical",
		"emergency", "important", "time-sensitive",
		"action required", "respond now",
	}
	positiveWords = []string{
		"thank", "great", "excellent", "wonderful",
		"appreciate", "happy", "pleased", "glad",
	}
	negativeWords = []string{
		"sorry", "unfortunately", "disappointed", "concerned",
		"problem", "issue", "mistake", "error", "unhappy",
	}
	gratitudeWords     = []string{"thank", "appreciate", "grateful", "thanks"}
	apologyWords       = []string{"sorry", "apologize", "apologies", "regret"}
	questionIndicators = []string{"?", "could you", "would you", "can you", "please let me know"}
)

// ToneAnalyzer is the deterministic keyword-based tone classifier.
type ToneAnalyzer struct{}

// NewToneAnalyzer creates a tone analyzer.
func NewToneAnalyzer() *ToneAnalyzer {
	return &ToneAnalyzer{}
}

// Analyze classifies the tone of a message. It never fails; a message with
// no detectable tone comes back neutral.
func (a *ToneAnalyzer) Analyze(subject, body string) *domain.ToneResult {
	text := strings.ToLower(subject + " " + body)

	var tones []string

	formality := detectFormality(text)

	if containsAny(text, urgentKeywords) {
		tones = append(tones, toneUrgent)
	}

	if sentiment := detectSentiment(text); sentiment != "" {
		tones = append(tones, sentiment)
	}

	if containsAny(text, gratitudeWords) {
		tones = append(tones, toneGrateful)
	}
	if containsAny(text, apologyWords) {
		tones = append(tones, toneApologetic)
	}
	if containsAny(text, questionIndicators) {
		tones = append(tones, toneInquisitive)
	}

	return &domain.ToneResult{
		PrimaryTone: primaryTone(formality, tones),
		Formality:   formality,
		AllTones:    tones,
		Confidence:  0.8,
	}
}

// detectFormality counts formal vs casual indicator hits; ties are neutral.
func detectFormality(text string) string {
	formal := countMatches(text, formalIndicators)
	casual := countMatches(text, casualIndicators)

	switch {
	case formal > casual:
		return domain.FormalityFormal
	case casual > formal:
		return domain.FormalityCasual
	default:
		return domain.FormalityNeutral
	}
}

// detectSentiment emits a label only on a strict majority of one polarity.
func detectSentiment(text string) string {
	positive := countMatches(text, positiveWords)
	negative := countMatches(text, negativeWords)

	switch {
	case positive > negative && positive > 0:
		return tonePositive
	case negative > positive && negative > 0:
		return toneNegative
	default:
		return ""
	}
}

// primaryTone picks the dominant tone by fixed priority; the formality
// level is the fallback when no flag fired.
func primaryTone(formality string, tones []string) string {
	has := func(tone string) bool {
		for _, t := range tones {
			if t == tone {
				return true
			}
		}
		return false
	}

	switch {
	case has(toneUrgent):
		return toneUrgent
	case has(toneApologetic):
		return toneApologetic
	case has(toneGrateful):
		return toneGrateful
	case has(toneInquisitive):
		return toneInquisitive
	case has(tonePositive):
		return "friendly"
	case has(toneNegative):
		return "concerned"
	default:
		return formality
	}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func countMatches(text string, keywords []string) int {
	count := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			count++
		}
	}
	return count
}
