package score

import (
	"log/slog"
	"speakscore/internal/diagnostic"
	"strings"
	"unicode/utf8"
)

const (
	MinScore = 0
	MaxScore = 100

	// ExternalScoreMax is the top of the 0..20 scale produced by upstream matchers.
	ExternalScoreMax = 20
	externalFactor   = MaxScore / ExternalScoreMax
)

// Calculator converts a speaking transcription into a score in [MinScore, MaxScore].
//
// An externally computed score, when present, wins outright and is rescaled
// from the 0..20 scale. Otherwise the transcription itself is scored by a word
// counting heuristic. Each call emits one diagnostic entry on entry and one on
// the exit path taken; diagnostics never influence the returned value.
type Calculator struct {
	// diag receives decision-point entries. May be nil.
	diag *diagnostic.Logger
}

// NewCalculator creates a calculator that reports its decisions to diag.
// Passing nil disables diagnostics.
func NewCalculator(diag *diagnostic.Logger) *Calculator {
	return &Calculator{diag: diag}
}

// Score returns the speaking score for text. externalScore is optional; a
// non-nil value, zero included, is used instead of the heuristic.
//
// Values outside 0..20 are not rejected: the same linear formula applies and
// the result is clamped.
func (c *Calculator) Score(text string, externalScore *int) int {
	var external any
	if externalScore != nil {
		external = *externalScore
	}
	c.diag.Log("score/speaking.go:Score", "ai_entry", "calculate speaking score called", map[string]any{
		"external_score": external,
		"text_length":    utf8.RuneCountInString(text),
	})

	if externalScore != nil {
		if *externalScore < 0 || *externalScore > ExternalScoreMax {
			slog.Warn("External score out of range", "external_score", *externalScore, "max", ExternalScoreMax)
		}
		// bound the input first so the multiplication cannot overflow
		bounded := max(-1, min(*externalScore, ExternalScoreMax+1))
		final := clamp(bounded * externalFactor)
		c.diag.Log("score/speaking.go:external", "ai_external", "external score used for speaking", map[string]any{
			"external_score": *externalScore,
			"final_score":    final,
		})
		return final
	}

	if strings.TrimSpace(text) == "" {
		c.diag.Log("score/speaking.go:empty", "ai_empty", "fallback - empty text", map[string]any{
			"return_score": MinScore,
		})
		return MinScore
	}

	b := heuristic(text)
	c.diag.Log("score/speaking.go:fallback", "ai_fallback", "fallback speaking score calculated", map[string]any{
		"word_score":        b.WordScore,
		"recognition_score": b.Recognition,
		"final_score":       b.Total,
	})
	return b.Total
}

// Calculate scores text without diagnostics.
func Calculate(text string, externalScore *int) int {
	return NewCalculator(nil).Score(text, externalScore)
}

// External wraps an external score for passing to Score.
func External(v int) *int {
	return &v
}

func clamp(v int) int {
	return max(MinScore, min(MaxScore, v))
}
