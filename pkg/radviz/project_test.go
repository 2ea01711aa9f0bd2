package radviz

import (
	"math"
	"testing"

	"github.com/spokechart/spoke/pkg/dataset"
)

func mustDataset(t *testing.T, columns []string, values map[string][]float64) *dataset.Dataset {
	t.Helper()
	d, err := dataset.New(columns, values)
	if err != nil {
		t.Fatal(err)
	}
	return d
}

func TestProjectTwoAnchors(t *testing.T) {
	// Anchors at angle 0 and π; observations [[1,0],[0,1],[0.5,0.5]]
	// project to (1,0), (-1,0), (0,0).
	d := mustDataset(t, []string{"a", "b"}, map[string][]float64{
		"a": {1, 0, 0.5},
		"b": {0, 1, 0.5},
	})
	anchors, err := Layout([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}

	proj, err := Project(d, anchors)
	if err != nil {
		t.Fatalf("Project: %v", err)
	}

	want := [][2]float64{{1, 0}, {-1, 0}, {0, 0}}
	for i, w := range want {
		p := proj.Points[i]
		if !p.Valid {
			t.Fatalf("point %d invalid", i)
		}
		if math.Abs(p.X-w[0]) > tol || math.Abs(p.Y-w[1]) > tol {
			t.Errorf("point %d = (%v,%v), want (%v,%v)", i, p.X, p.Y, w[0], w[1])
		}
	}
}

func TestProjectBoundedByUnitCircle(t *testing.T) {
	d := mustDataset(t, []string{"a", "b", "c", "d", "e"}, map[string][]float64{
		"a": {0.1, 1, 0.3, 0.9},
		"b": {0.7, 0.2, 0.3, 0.1},
		"c": {0.5, 0.5, 0.3, 0},
		"d": {0.9, 0, 0.3, 0.2},
		"e": {0.2, 0.8, 0.3, 0.6},
	})
	anchors, err := Layout(d.Columns())
	if err != nil {
		t.Fatal(err)
	}

	proj, err := Project(d, anchors)
	if err != nil {
		t.Fatal(err)
	}
	for i, p := range proj.Points {
		if !p.Valid {
			t.Fatalf("point %d unexpectedly invalid", i)
		}
		if r := math.Hypot(p.X, p.Y); r > 1+tol {
			t.Errorf("point %d outside unit circle: norm %v", i, r)
		}
	}
}

func TestProjectZeroSumObservation(t *testing.T) {
	d := mustDataset(t, []string{"a", "b"}, map[string][]float64{
		"a": {0, 1},
		"b": {0, 1},
	})
	anchors, _ := Layout([]string{"a", "b"})

	proj, err := Project(d, anchors)
	if err != nil {
		t.Fatal(err)
	}

	// The zero-sum row is marked invalid with NaN coordinates, not dropped
	if len(proj.Points) != 2 {
		t.Fatalf("points = %d, want 2", len(proj.Points))
	}
	p := proj.Points[0]
	if p.Valid || !math.IsNaN(p.X) || !math.IsNaN(p.Y) {
		t.Errorf("zero-sum point = %+v, want invalid NaN point", p)
	}
	if !proj.Points[1].Valid {
		t.Error("healthy row should remain valid")
	}
	if proj.Invalid != 1 {
		t.Errorf("Invalid = %d, want 1", proj.Invalid)
	}
	if proj.AllInvalid() {
		t.Error("AllInvalid should be false with one valid point")
	}
}

func TestProjectNaNObservation(t *testing.T) {
	d := mustDataset(t, []string{"a", "b"}, map[string][]float64{
		"a": {math.NaN(), 0.5},
		"b": {0.5, 0.5},
	})
	anchors, _ := Layout([]string{"a", "b"})

	proj, err := Project(d, anchors)
	if err != nil {
		t.Fatal(err)
	}
	if proj.Points[0].Valid {
		t.Error("NaN observation should be invalid")
	}
	if !proj.Points[1].Valid {
		t.Error("finite observation should be valid")
	}
}

func TestProjectAllInvalid(t *testing.T) {
	d := mustDataset(t, []string{"a", "b"}, map[string][]float64{
		"a": {0, 0},
		"b": {0, 0},
	})
	anchors, _ := Layout([]string{"a", "b"})

	proj, err := Project(d, anchors)
	if err != nil {
		t.Fatal(err)
	}
	if !proj.AllInvalid() {
		t.Error("AllInvalid should report a fully invalid projection")
	}
}

func TestProjectCarriesLabels(t *testing.T) {
	d := mustDataset(t, []string{"a", "b"}, map[string][]float64{
		"a": {1, 0.5},
		"b": {0, 0.5},
	})
	d, err := d.WithLabels([]string{"red", "blue"})
	if err != nil {
		t.Fatal(err)
	}
	anchors, _ := Layout([]string{"a", "b"})

	proj, err := Project(d, anchors)
	if err != nil {
		t.Fatal(err)
	}
	if proj.Points[0].Label != "red" || proj.Points[1].Label != "blue" {
		t.Errorf("labels not carried: %+v", proj.Points)
	}
}

func TestProjectUnknownColumn(t *testing.T) {
	d := mustDataset(t, []string{"a", "b"}, map[string][]float64{
		"a": {1}, "b": {2},
	})
	anchors, _ := Layout([]string{"a", "z"})
	if _, err := Project(d, anchors); err == nil {
		t.Error("projection over unknown column should fail")
	}
}
