package render

import (
	"math"
	"strings"
	"testing"

	"github.com/spokechart/spoke/pkg/chart"
)

func testChart() *chart.Chart {
	return &chart.Chart{
		Anchors: []chart.Anchor{
			{Label: "a", X: 1, Y: 0, OffsetX: 0.08},
			{Label: "b", X: -1, Y: 0, OffsetX: -0.08},
		},
		Points: []chart.Point{
			{X: 0.5, Y: 0, Valid: true, Label: "red"},
			{X: -0.25, Y: 0, Valid: true, Label: "blue"},
			{X: math.NaN(), Y: math.NaN(), Valid: false, Label: "red"},
		},
		Metric:   "cosine",
		Ordering: "none",
	}
}

func TestToDOTPinsPositions(t *testing.T) {
	dot := ToDOT(testChart(), Options{})

	wants := []string{
		"layout=neato",
		`pos="200,0!"`,  // anchor a at scale 200
		`pos="-200,0!"`, // anchor b
		`pos="100,0!"`,  // first point
		`pos="-50,0!"`,  // second point
		`label="a"`,
		`label="b"`,
	}
	for _, want := range wants {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTSkipsInvalidPoints(t *testing.T) {
	dot := ToDOT(testChart(), Options{})

	if strings.Contains(dot, "p2 ") {
		t.Errorf("invalid point should not be drawn:\n%s", dot)
	}
	if strings.Contains(dot, "NaN") {
		t.Errorf("NaN leaked into DOT:\n%s", dot)
	}
}

func TestToDOTScale(t *testing.T) {
	dot := ToDOT(testChart(), Options{Scale: 100})
	if !strings.Contains(dot, `pos="100,0!"`) || !strings.Contains(dot, `pos="50,0!"`) {
		t.Errorf("custom scale not applied:\n%s", dot)
	}
}

func TestToDOTGroupColors(t *testing.T) {
	dot := ToDOT(testChart(), Options{})

	// First-seen groups take palette order
	if !strings.Contains(dot, palette[0]) || !strings.Contains(dot, palette[1]) {
		t.Errorf("group colors not assigned:\n%s", dot)
	}
}

func TestToDOTDetailed(t *testing.T) {
	plain := ToDOT(testChart(), Options{})
	detailed := ToDOT(testChart(), Options{Detailed: true})

	if strings.Contains(plain, `xlabel="red"`) {
		t.Error("plain output should not annotate points")
	}
	if !strings.Contains(detailed, `xlabel="red"`) {
		t.Error("detailed output should annotate points")
	}
}

func TestFmtFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0000000001, "0"},
		{1.5, "1.5"},
		{-200, "-200"},
		{0.1234567, "0.1235"},
	}
	for _, tt := range tests {
		if got := fmtFloat(tt.in); got != tt.want {
			t.Errorf("fmtFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	svg := []byte(`<svg width="8pt" height="6pt" viewBox="0.00 0.00 432.00 288.00">rest</svg>`)
	got := string(normalizeViewBox(svg))

	if !strings.Contains(got, `viewBox="0 0 432.00 288.00"`) {
		t.Errorf("viewBox not normalized: %s", got)
	}
	if !strings.Contains(got, `width="432"`) {
		t.Errorf("width not rewritten: %s", got)
	}

	// No viewBox: passthrough
	plain := []byte(`<svg>nope</svg>`)
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("SVG without viewBox should pass through")
	}
}
