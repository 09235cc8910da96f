package colorscience

import (
	"fmt"
	"math"
)

var depthBreakpoints = []float64{75, 65, 55, 45, 35, 25}

// ApproximatePantone builds a SkinTone-style "{depth}{letter}{value}" code,
// e.g. "2Y09". Depth runs 1 (lightest) to 7, the letter is Y, R, P or N and
// the value is clamped to 01-10.
func ApproximatePantone(lab LabColor) string {
	depth := len(depthBreakpoints) + 1
	for i, bp := range depthBreakpoints {
		if lab.L > bp {
			depth = i + 1
			break
		}
	}

	var letter string
	switch {
	case lab.B > 15:
		letter = "Y"
	case lab.A > 10:
		letter = "R"
	case lab.B < 8:
		letter = "P"
	default:
		letter = "N"
	}

	value := int(math.Floor((lab.A+lab.B)/4)) + 1
	if value < 1 {
		value = 1
	}
	if value > 10 {
		value = 10
	}

	return fmt.Sprintf("%d%s%02d", depth, letter, value)
}
