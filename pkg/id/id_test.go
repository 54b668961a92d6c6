package id

import "testing"

func TestGenerateIsUnique(t *testing.T) {
	seen := make(map[Id]bool)
	for i := 0; i < 1000; i++ {
		got := Generate()
		if seen[got] {
			t.Fatalf("Generate returned duplicate id %v", got)
		}
		seen[got] = true
	}
}

func TestGenerateIsMonotonic(t *testing.T) {
	a := Generate()
	b := Generate()
	if !(b > a) {
		t.Fatalf("expected %v > %v", b, a)
	}
}
