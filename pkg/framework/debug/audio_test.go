package debug

import "testing"

func TestAssertPanicsWhenEnabled(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected Assert to panic on a false condition")
		}
	}()
	Assert(false, "this should panic")
}

func TestAssertDisabled(t *testing.T) {
	DisableAssertions()
	defer func() { audioThreadAsserts = true }()

	defer func() {
		if recover() != nil {
			t.Fatal("DisableAssertions should suppress the panic")
		}
	}()
	Assert(false, "should not panic once disabled")
}

func TestAnalyzeSilence(t *testing.T) {
	a := NewAudioAnalyzer()
	result := a.Analyze(make([]float32, 256))

	if !result.Silent {
		t.Fatal("expected an all-zero buffer to be reported silent")
	}
	if result.Peak != 0 || result.RMS != 0 {
		t.Fatalf("expected zero peak/RMS, got peak=%v rms=%v", result.Peak, result.RMS)
	}
}

func TestAnalyzeClipping(t *testing.T) {
	a := NewAudioAnalyzer()
	samples := []float32{1.0, -1.0, 0.995, -0.995, 0.5}
	result := a.Analyze(samples)

	if !result.Clipping {
		t.Fatal("expected clipping to be detected")
	}
	if result.ClippedSamples != 4 {
		t.Fatalf("ClippedSamples = %d, want 4", result.ClippedSamples)
	}
}

func TestAnalyzeNaN(t *testing.T) {
	a := NewAudioAnalyzer()
	nan := float32(0)
	nan = nan / nan

	result := a.Analyze([]float32{0.1, nan, 0.2})
	if !result.HasNaN || result.NaNCount != 1 {
		t.Fatalf("expected exactly one NaN to be detected, got HasNaN=%v count=%d", result.HasNaN, result.NaNCount)
	}
}

func TestAnalyzeZeroCrossings(t *testing.T) {
	a := NewAudioAnalyzer()
	samples := []float32{1, -1, 1, -1, 1}
	result := a.Analyze(samples)

	if result.ZeroCrossings != 4 {
		t.Fatalf("ZeroCrossings = %d, want 4", result.ZeroCrossings)
	}
}
