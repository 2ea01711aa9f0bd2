// Package chart defines the serialized form of a finished radial
// projection: anchors, points, ordering metadata and the optimization
// trace, ready for rendering or caching.
package chart

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/spokechart/spoke/pkg/ordering"
	"github.com/spokechart/spoke/pkg/radviz"
)

// =============================================================================
// Chart - Unified Projection Format
// =============================================================================

// Chart is the unified serialization format for a radial projection. It
// carries everything a renderer or an inspecting user needs:
//
//   - Anchors: unit-circle positions with label offset hints
//   - Points: projected observations, invalid ones included
//   - Ordering / Metric / Measure: how the anchor arrangement was chosen
//   - Degenerate: variables that normalization reduced to NaN
//   - Trace: improvement history when an optimizer produced the ordering
//
// Charts round-trip through JSON and BSON. Invalid points carry NaN
// coordinates in memory; JSON encodes them as null.
type Chart struct {
	Anchors []Anchor `json:"anchors" bson:"anchors"`
	Points  []Point  `json:"points" bson:"points"`

	// Provenance
	Metric     string          `json:"metric" bson:"metric"`
	Ordering   string          `json:"ordering" bson:"ordering"`
	Degenerate []string        `json:"degenerate,omitempty" bson:"degenerate,omitempty"`
	Trace      *ordering.Trace `json:"trace,omitempty" bson:"trace,omitempty"`
}

// AnchorOrder returns the anchor labels in circle order.
func (c *Chart) AnchorOrder() []string {
	out := make([]string, len(c.Anchors))
	for i, a := range c.Anchors {
		out[i] = a.Label
	}
	return out
}

// ValidPoints returns how many points were successfully projected.
func (c *Chart) ValidPoints() int {
	n := 0
	for _, p := range c.Points {
		if p.Valid {
			n++
		}
	}
	return n
}

// =============================================================================
// Anchor and Point
// =============================================================================

// Anchor is a serialized anchor position.
type Anchor struct {
	Label   string  `json:"label" bson:"label"`
	X       float64 `json:"x" bson:"x"`
	Y       float64 `json:"y" bson:"y"`
	OffsetX float64 `json:"offset_x,omitempty" bson:"offset_x,omitempty"`
	OffsetY float64 `json:"offset_y,omitempty" bson:"offset_y,omitempty"`
}

// Point is a serialized observation. Invalid points keep their slot so
// point indices always line up with dataset rows.
type Point struct {
	X     float64 `bson:"x"`
	Y     float64 `bson:"y"`
	Valid bool    `bson:"valid"`
	Label string  `bson:"label,omitempty"`
}

// pointJSON is the wire form of Point. Coordinate pointers let invalid
// points serialize as null instead of tripping over NaN, which
// encoding/json cannot represent.
type pointJSON struct {
	X     *float64 `json:"x"`
	Y     *float64 `json:"y"`
	Valid bool     `json:"valid"`
	Label string   `json:"label,omitempty"`
}

// MarshalJSON implements [json.Marshaler].
func (p Point) MarshalJSON() ([]byte, error) {
	out := pointJSON{Valid: p.Valid, Label: p.Label}
	if p.Valid {
		out.X, out.Y = &p.X, &p.Y
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements [json.Unmarshaler].
func (p *Point) UnmarshalJSON(data []byte) error {
	var in pointJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Valid = in.Valid
	p.Label = in.Label
	p.X, p.Y = math.NaN(), math.NaN()
	if in.X != nil {
		p.X = *in.X
	}
	if in.Y != nil {
		p.Y = *in.Y
	}
	return nil
}

// =============================================================================
// Construction
// =============================================================================

// FromProjection assembles a Chart from a finished projection.
func FromProjection(proj *radviz.Projection, metric, orderStrategy string) *Chart {
	c := &Chart{
		Anchors:  make([]Anchor, len(proj.Anchors)),
		Points:   make([]Point, len(proj.Points)),
		Metric:   metric,
		Ordering: orderStrategy,
	}
	for i, a := range proj.Anchors {
		c.Anchors[i] = Anchor{
			Label:   a.Label,
			X:       a.X,
			Y:       a.Y,
			OffsetX: a.OffsetX,
			OffsetY: a.OffsetY,
		}
	}
	for i, p := range proj.Points {
		c.Points[i] = Point{X: p.X, Y: p.Y, Valid: p.Valid, Label: p.Label}
	}
	return c
}

// =============================================================================
// Chart Serialization API
// =============================================================================

// Marshal serializes a Chart to pretty-printed JSON bytes.
func Marshal(c *Chart) ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// Unmarshal deserializes JSON bytes into a Chart and validates the
// structural minimum: at least two anchors.
func Unmarshal(data []byte) (*Chart, error) {
	var c Chart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal chart: %w", err)
	}
	if len(c.Anchors) < 2 {
		return nil, fmt.Errorf("chart must contain at least two anchors")
	}
	return &c, nil
}
