package radviz

import (
	"errors"
	"math"
)

var (
	// ErrTooFewAnchors is returned by [Layout] when fewer than two labels
	// are supplied. Placement on a circle is undefined below 2 points.
	ErrTooFewAnchors = errors.New("at least 2 anchors required")

	// ErrDuplicateLabel is returned by [Layout] when the ordering repeats
	// a label. An ordering must be a permutation of the variable set.
	ErrDuplicateLabel = errors.New("duplicate anchor label")
)

// labelPad is the distance of the label offset hint from the anchor,
// pointing away from the circle center.
const labelPad = 0.08

// Anchor is a fixed position on the unit circle representing one variable.
type Anchor struct {
	Label string  // variable name
	X, Y  float64 // position on the unit circle

	// OffsetX/OffsetY nudge the label away from the circle so it doesn't
	// overlap the anchor marker. Presentation only.
	OffsetX, OffsetY float64
}

// Angle returns the anchor's angle in radians in [0, 2π).
func (a Anchor) Angle() float64 {
	th := math.Atan2(a.Y, a.X)
	if th < 0 {
		th += 2 * math.Pi
	}
	return th
}

// Layout places n anchors equally spaced on the unit circle, one per label
// in order: anchor i sits at angle 2πi/n, the first at angle 0. The layout
// is deterministic and allocates a fresh slice on every call.
//
// Fewer than two labels is rejected with [ErrTooFewAnchors]; a repeated
// label with [ErrDuplicateLabel].
func Layout(ordering []string) ([]Anchor, error) {
	n := len(ordering)
	if n < 2 {
		return nil, ErrTooFewAnchors
	}

	seen := make(map[string]bool, n)
	anchors := make([]Anchor, n)
	for i, label := range ordering {
		if seen[label] {
			return nil, ErrDuplicateLabel
		}
		seen[label] = true

		theta := 2 * math.Pi * float64(i) / float64(n)
		x, y := math.Cos(theta), math.Sin(theta)
		anchors[i] = Anchor{
			Label:   label,
			X:       x,
			Y:       y,
			OffsetX: labelPad * sign(x),
			OffsetY: labelPad * sign(y),
		}
	}
	return anchors, nil
}

// Labels returns the anchor labels in layout order.
func Labels(anchors []Anchor) []string {
	labels := make([]string, len(anchors))
	for i, a := range anchors {
		labels[i] = a.Label
	}
	return labels
}

func sign(v float64) float64 {
	switch {
	case v > 1e-12:
		return 1
	case v < -1e-12:
		return -1
	}
	return 0
}
