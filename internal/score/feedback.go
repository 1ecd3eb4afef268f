package score

const (
	FeedbackSilent    = "No speech detected or completely off-topic."
	FeedbackWeak      = "Your pronunciation needs work. Some words were not recognized."
	FeedbackGood      = "Good pronunciation! You missed a few words but overall understandable."
	FeedbackExcellent = "Native-like pronunciation! Perfect match."
)

// Feedback describes a speaking result on the 0..20 scale.
func Feedback(external int) string {
	switch {
	case external <= 0:
		return FeedbackSilent
	case external < 10:
		return FeedbackWeak
	case external < 16:
		return FeedbackGood
	default:
		return FeedbackExcellent
	}
}

// ToExternal rescales a 0..100 score back to the 0..20 scale, rounding to the
// nearest step. Out-of-range input is clamped first.
func ToExternal(score int) int {
	// score/5 never lands on .5, so +2 rounds to nearest
	return (clamp(score) + externalFactor/2) / externalFactor
}
