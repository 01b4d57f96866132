package grid

import "testing"

func TestVectorAdd(t *testing.T) {
	got := Vector{X: 1, Y: -1}.Add(Vector{X: 2, Y: 3})
	want := Vector{X: 3, Y: 2}
	if got != want {
		t.Fatalf("Add() = %v, want %v", got, want)
	}
}

func TestLocationTranslate(t *testing.T) {
	loc := Location{X: 5, Y: 5}
	moved := loc.Translate(Vector{X: -1, Y: 0})
	want := Location{X: 4, Y: 5}
	if moved != want {
		t.Fatalf("Translate() = %v, want %v", moved, want)
	}
}

func TestConversionRoundTrip(t *testing.T) {
	v := Vector{X: 7, Y: -2}
	loc := FromVector(v)
	if loc.Position() != v {
		t.Fatalf("round trip mismatch: %v -> %v -> %v", v, loc, loc.Position())
	}
}
