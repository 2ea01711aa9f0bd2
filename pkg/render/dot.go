package render

import (
	"bytes"
	"fmt"
	"math"
	"strings"

	"github.com/spokechart/spoke/pkg/chart"
)

// Options configures DOT generation.
type Options struct {
	// Scale is the circle radius in points. Defaults to 200.
	Scale float64

	// PointSize is the diameter of an observation dot in inches.
	// Defaults to 0.08.
	PointSize float64

	// Detailed annotates points with their row labels in addition to
	// coloring them.
	Detailed bool
}

const (
	defaultScale     = 200.0
	defaultPointSize = 0.08
)

// palette colors observation groups in first-seen order. Unlabeled points
// and overflow groups fall back to grey.
var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd",
	"#8c564b", "#e377c2", "#17becf", "#bcbd22", "#7f7f7f",
}

const fallbackColor = "#7f7f7f"

// ToDOT converts a chart to Graphviz DOT for the neato engine. Every node
// carries a pinned position ("x,y!"), so neato only rasterizes; the
// geometry stays exactly as projected. Invalid points have no position
// and are left out of the drawing.
func ToDOT(c *chart.Chart, opts Options) string {
	scale := opts.Scale
	if scale <= 0 {
		scale = defaultScale
	}
	pointSize := opts.PointSize
	if pointSize <= 0 {
		pointSize = defaultPointSize
	}

	var buf bytes.Buffer
	buf.WriteString("graph radial {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  outputorder=edgesfirst;\n")
	buf.WriteString("  node [fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	// The unit circle, drawn as one fixed-size unfilled node behind
	// everything else.
	fmt.Fprintf(&buf, "  _circle [shape=circle, label=\"\", width=%s, fixedsize=true, color=\"#333333\", pos=\"0,0!\"];\n",
		fmtFloat(2*scale/72))
	buf.WriteString("\n")

	for i, a := range c.Anchors {
		fmt.Fprintf(&buf, "  anchor%d [shape=point, width=0.1, color=\"#111111\", pos=%q];\n",
			i, pinned(a.X, a.Y, scale))
		fmt.Fprintf(&buf, "  anchorlabel%d [shape=plaintext, label=%q, fontsize=14, pos=%q];\n",
			i, a.Label, pinned(a.X+a.OffsetX, a.Y+a.OffsetY, scale))
	}
	buf.WriteString("\n")

	colors := groupColors(c)
	for i, p := range c.Points {
		if !p.Valid {
			continue
		}
		attrs := []string{
			"shape=point",
			fmt.Sprintf("width=%s", fmtFloat(pointSize)),
			fmt.Sprintf("color=%q", colors[p.Label]),
			fmt.Sprintf("pos=%q", pinned(p.X, p.Y, scale)),
		}
		if opts.Detailed && p.Label != "" {
			attrs = append(attrs, fmt.Sprintf("xlabel=%q", p.Label), "fontsize=8")
		}
		fmt.Fprintf(&buf, "  p%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("}\n")
	return buf.String()
}

// groupColors assigns palette colors to point labels in first-seen order.
func groupColors(c *chart.Chart) map[string]string {
	colors := make(map[string]string)
	next := 0
	for _, p := range c.Points {
		if _, ok := colors[p.Label]; ok {
			continue
		}
		if p.Label == "" || next >= len(palette) {
			colors[p.Label] = fallbackColor
			continue
		}
		colors[p.Label] = palette[next]
		next++
	}
	return colors
}

// pinned formats a unit-circle coordinate as a fixed neato position.
func pinned(x, y, scale float64) string {
	return fmt.Sprintf("%s,%s!", fmtFloat(x*scale), fmtFloat(y*scale))
}

func fmtFloat(v float64) string {
	if math.Abs(v) < 1e-9 {
		v = 0 // avoid "-0.00"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.4f", v), "0"), ".")
}
