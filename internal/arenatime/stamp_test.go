package arenatime

import (
	"math"
	"testing"
)

func TestNewClamps(t *testing.T) {
	cases := []struct {
		in   float32
		want Stamp
	}{
		{-5, Zero},
		{0, Zero},
		{65.5, Stamp(65.5)},
		{150, Max},
		{120, Max},
	}
	for _, c := range cases {
		if got := New(c.in); got != c.want {
			t.Errorf("New(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewNaNCoercedToZero(t *testing.T) {
	if got := New(float32(math.NaN())); got != Zero {
		t.Errorf("New(NaN) = %v, want Zero", got)
	}
}

func TestWrapped(t *testing.T) {
	cases := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{119.9, 119.9},
		{120, 0},
		{121, 1},
		{-1, 119},
		{-120, 0},
		{240, 0},
	}
	for _, c := range cases {
		got := Wrapped(c.in)
		if diff := math.Abs(float64(got.Seconds() - c.want)); diff > 1e-4 {
			t.Errorf("Wrapped(%v) = %v, want ~%v", c.in, got, c.want)
		}
	}
}

func TestWrappedNaNCoercedToZero(t *testing.T) {
	if got := Wrapped(float32(math.NaN())); got != Zero {
		t.Errorf("Wrapped(NaN) = %v, want Zero", got)
	}
}

func TestOrdering(t *testing.T) {
	a := New(1.0)
	b := New(2.0)
	if !a.Less(b) {
		t.Fatalf("expected %v < %v", a, b)
	}
	if a.Compare(b) != -1 {
		t.Fatalf("expected Compare(a,b) == -1")
	}
	if b.Compare(a) != 1 {
		t.Fatalf("expected Compare(b,a) == 1")
	}
	if a.Compare(a) != 0 {
		t.Fatalf("expected Compare(a,a) == 0")
	}
	if !a.Equal(New(1.0)) {
		t.Fatalf("expected equal stamps to compare equal")
	}
}
