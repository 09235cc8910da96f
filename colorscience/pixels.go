package colorscience

import "fmt"

// PixelsFromTriples validates raw [r, g, b] arrays and converts them to pixels.
// Anything that is not exactly three channels in [0,255] is rejected before
// any conversion happens.
func PixelsFromTriples(raw [][]int) ([]Pixel, error) {
	if len(raw) == 0 {
		return nil, &InvalidColorInputError{Index: -1, Reason: "no pixel samples supplied"}
	}

	pixels := make([]Pixel, 0, len(raw))
	for i, triple := range raw {
		if len(triple) != 3 {
			return nil, &InvalidColorInputError{Index: i, Reason: fmt.Sprintf("expected 3 channels, got %d", len(triple))}
		}
		for _, v := range triple {
			if v < 0 || v > 255 {
				return nil, &InvalidColorInputError{Index: i, Reason: fmt.Sprintf("channel value %d outside 0-255", v)}
			}
		}
		pixels = append(pixels, Pixel{R: uint8(triple[0]), G: uint8(triple[1]), B: uint8(triple[2])})
	}

	return pixels, nil
}
