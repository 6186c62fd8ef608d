package logic

import (
	"math"
	"testing"
)

func TestFilterBoundedness(t *testing.T) {
	// Both averages start at 0 and must stay inside the hull of the
	// inputs (0 included) for any finite sequence.
	inputs := []float64{0, 12, -3, 47.5, 47.5, -20, 0.01, 33, -20, 5}
	lo, hi := 0.0, 0.0
	for _, v := range inputs {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	f := NewFilter(0.01, 0.2)
	for i, v := range inputs {
		f.Update(v)
		longAvg, shortAvg := f.Averages()
		if longAvg < lo || longAvg > hi {
			t.Errorf("sample %d: long average %f outside [%f, %f]", i, longAvg, lo, hi)
		}
		if shortAvg < lo || shortAvg > hi {
			t.Errorf("sample %d: short average %f outside [%f, %f]", i, shortAvg, lo, hi)
		}
	}
}

func TestFilterAveragesFinite(t *testing.T) {
	f := NewFilter(0.01, 0.2)
	for i := 0; i < 1000; i++ {
		f.Update(float64(i%7) * 100)
	}
	longAvg, shortAvg := f.Averages()
	if math.IsNaN(longAvg) || math.IsInf(longAvg, 0) {
		t.Errorf("long average not finite: %f", longAvg)
	}
	if math.IsNaN(shortAvg) || math.IsInf(shortAvg, 0) {
		t.Errorf("short average not finite: %f", shortAvg)
	}
}

func TestFilterRisingEdge(t *testing.T) {
	f := NewFilter(0.01, 0.2)

	// Flat zero input: no crossing.
	for i := 0; i < 10; i++ {
		if f.Update(0) {
			t.Fatalf("sample %d: crossing on flat input", i)
		}
	}

	// A positive step lifts the fast average over the slow one.
	if !f.Update(100) {
		t.Fatal("expected crossing on positive step")
	}

	// Holding high keeps the fast average above; no re-trigger.
	for i := 0; i < 5; i++ {
		if f.Update(100) {
			t.Fatalf("sample %d: re-trigger while fast average held above", i)
		}
	}
}

func TestFilterCrossingAfterDip(t *testing.T) {
	f := NewFilter(0.01, 0.2)
	f.Update(100) // first crossing

	// Drive the fast average below the slow one, then back above.
	for i := 0; i < 50; i++ {
		f.Update(-100)
	}
	crossed := false
	for i := 0; i < 20; i++ {
		if f.Update(100) {
			crossed = true
			break
		}
	}
	if !crossed {
		t.Error("expected a second crossing after the dip")
	}
}

func TestFilterSlowTracksSlower(t *testing.T) {
	f := NewFilter(0.01, 0.2)
	f.Update(100)
	longAvg, shortAvg := f.Averages()
	if longAvg >= shortAvg {
		t.Errorf("slow average %f should lag the fast average %f on a step", longAvg, shortAvg)
	}
	if math.Abs(longAvg-1.0) > 1e-12 {
		t.Errorf("expected long average 1.0 after one 100 sample, got %f", longAvg)
	}
	if math.Abs(shortAvg-20.0) > 1e-12 {
		t.Errorf("expected short average 20.0 after one 100 sample, got %f", shortAvg)
	}
}

func TestSampleMagnitude(t *testing.T) {
	s := Sample{X: 3, Y: 4, Z: 12}
	if got := s.Magnitude(); got != 13 {
		t.Errorf("expected magnitude 13, got %f", got)
	}
}
