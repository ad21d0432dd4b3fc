package ina2xx

import "testing"

func TestTSeries(t *testing.T) {
	ts := newTSeries(3)
	if ts.mean() != 0 || ts.len() != 0 {
		t.Fatal("empty series not zero")
	}

	ts.add(-2)
	if ts.min != -2 || ts.max != -2 {
		t.Errorf("single value range %g..%g", ts.min, ts.max)
	}

	ts.add(3, 1)
	if ts.min != -2 || ts.max != 3 || ts.last() != 1 {
		t.Errorf("range %g..%g last %g", ts.min, ts.max, ts.last())
	}
	if ts.mean() != 2.0/3 {
		t.Errorf("mean = %g", ts.mean())
	}

	// Evicts -2, the minimum.
	ts.add(2)
	if ts.min != 1 || ts.max != 3 || ts.len() != 3 {
		t.Errorf("after eviction range %g..%g len %d", ts.min, ts.max, ts.len())
	}
	if ts.mean() != 2 {
		t.Errorf("mean = %g, want 2", ts.mean())
	}
}

func TestMovingAverage(t *testing.T) {
	var m movingAverage
	m.add(8)
	if m.mean != 8 {
		t.Fatalf("first value not pre-filled: %g", m.mean)
	}
	m.add(4)
	if m.mean != 7 {
		t.Errorf("mean = %g, want 7", m.mean)
	}
	m.reset()
	m.add(1)
	if m.mean != 1 {
		t.Errorf("mean after reset = %g", m.mean)
	}
}
