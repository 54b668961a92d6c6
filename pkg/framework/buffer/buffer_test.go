package buffer

import "testing"

func TestOwnedClear(t *testing.T) {
	b := NewOwned(4, 2, 44100)
	b.SetSample(SampleLocation{Channel: 0, Frame: 1}, 0.5)
	b.Clear()
	if got := b.GetSample(SampleLocation{Channel: 0, Frame: 1}); got != 0 {
		t.Fatalf("expected cleared sample, got %v", got)
	}
}

func TestAddFromSums(t *testing.T) {
	dst := NewOwned(4, 1, 44100)
	src := NewOwned(4, 1, 44100)

	dst.SetSample(SampleLocation{Frame: 0}, 0.2)
	src.SetSample(SampleLocation{Frame: 0}, 0.3)

	dst.AddFrom(src, SampleLocation{}, SampleLocation{}, 1, 4)

	if got, want := dst.GetSample(SampleLocation{Frame: 0}), float32(0.5); got != want {
		t.Fatalf("AddFrom sum = %v, want %v", got, want)
	}
}

func TestSlicePassesThrough(t *testing.T) {
	underlying := NewOwned(10, 1, 44100)
	s := NewSlice(underlying, 4, 3)

	s.SetSample(SampleLocation{Frame: 0}, 0.9)

	if got := underlying.GetSample(SampleLocation{Frame: 4}); got != 0.9 {
		t.Fatalf("expected write through slice to land at frame 4, got %v", got)
	}
	if s.NumFrames() != 3 {
		t.Fatalf("NumFrames() = %d, want 3", s.NumFrames())
	}
}

func TestSliceClearOnlyAffectsRange(t *testing.T) {
	underlying := NewOwned(10, 1, 44100)
	underlying.FillWithValue(1)

	s := NewSlice(underlying, 2, 3)
	s.Clear()

	for frame := 0; frame < 10; frame++ {
		got := underlying.GetSample(SampleLocation{Frame: frame})
		inRange := frame >= 2 && frame < 5
		if inRange && got != 0 {
			t.Fatalf("frame %d should be cleared, got %v", frame, got)
		}
		if !inRange && got != 1 {
			t.Fatalf("frame %d should be untouched, got %v", frame, got)
		}
	}
}
