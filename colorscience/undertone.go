package colorscience

import "strings"

// Undertone is the warm / neutral / cool bias of a skin colour
type Undertone string

const (
	Warm    Undertone = "warm"
	Neutral Undertone = "neutral"
	Cool    Undertone = "cool"
)

// ClassifyUndertone applies the chroma thresholds. The comparisons are strict:
// a colour sitting exactly on a threshold is not warm (or cool).
func ClassifyUndertone(lab LabColor) Undertone {
	if lab.B > 15 && lab.A > 8 {
		return Warm
	}
	if lab.B < 10 && lab.A < 8 {
		return Cool
	}
	return Neutral
}

// ParseUndertone reads a stored undertone label. Unknown or empty labels are
// treated as neutral.
func ParseUndertone(s string) Undertone {
	switch Undertone(strings.ToLower(strings.TrimSpace(s))) {
	case Warm:
		return Warm
	case Cool:
		return Cool
	default:
		return Neutral
	}
}
