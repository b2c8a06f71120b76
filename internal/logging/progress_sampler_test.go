package logging

import "testing"

func TestNewProgressSamplerDefaults(t *testing.T) {
	tests := []struct {
		name       string
		bucketSize float64
		wantSize   float64
	}{
		{"zero uses default", 0, 10},
		{"negative uses default", -1, 10},
		{"custom", 25, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewProgressSampler(tt.bucketSize)
			if s.bucketSize != tt.wantSize {
				t.Errorf("bucketSize = %v, want %v", s.bucketSize, tt.wantSize)
			}
			if s.lastBucket != -1 {
				t.Errorf("lastBucket = %d, want -1", s.lastBucket)
			}
		})
	}
}

func TestProgressSamplerNil(t *testing.T) {
	var s *ProgressSampler
	if !s.ShouldLog(50, "moving") {
		t.Error("nil sampler should always log")
	}
	s.Reset()
}

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(10)
	var emitted []float64
	for i := 1; i <= 40; i++ {
		pct := float64(i) / 40 * 100
		if s.ShouldLog(pct, "moving") {
			emitted = append(emitted, pct)
		}
	}
	// Buckets 0 through 10 each emit once.
	if len(emitted) != 11 {
		t.Fatalf("expected 11 emissions, got %d: %v", len(emitted), emitted)
	}
	if emitted[len(emitted)-1] != 100 {
		t.Fatalf("expected final emission at 100, got %v", emitted[len(emitted)-1])
	}
}

func TestProgressSamplerPhaseChangeResets(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog(55, "moving") {
		t.Fatal("first call should log")
	}
	if s.ShouldLog(56, "moving") {
		t.Fatal("same bucket should not log")
	}
	if !s.ShouldLog(56, "summary") {
		t.Fatal("phase change should log")
	}
	s.Reset()
	if !s.ShouldLog(56, "summary") {
		t.Fatal("reset should allow logging again")
	}
}

func TestProgressSamplerUnknownPercent(t *testing.T) {
	s := NewProgressSampler(10)
	if !s.ShouldLog(-1, "scan") {
		t.Fatal("phase change should log even with unknown percent")
	}
	if s.ShouldLog(-1, "scan") {
		t.Fatal("unknown percent without phase change should not log")
	}
}
