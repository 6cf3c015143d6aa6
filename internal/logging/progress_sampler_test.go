package logging

import "testing"

func TestProgressSamplerBuckets(t *testing.T) {
	s := NewProgressSampler(25)
	steps := []struct {
		done, total int
		want        bool
	}{
		{0, 8, true},
		{1, 8, false},
		{2, 8, true},
		{3, 8, false},
		{4, 8, true},
		{8, 8, true},
		{9, 8, false},
	}
	for _, step := range steps {
		if got := s.ShouldLog(step.done, step.total); got != step.want {
			t.Errorf("ShouldLog(%d, %d) = %v, want %v", step.done, step.total, got, step.want)
		}
	}
}

func TestProgressSamplerUnknownTotalAndReset(t *testing.T) {
	s := NewProgressSampler(0)
	if s.ShouldLog(5, 0) {
		t.Error("unknown total should not log")
	}
	if !s.ShouldLog(10, 10) {
		t.Error("completion should log")
	}
	s.Reset()
	if !s.ShouldLog(0, 10) {
		t.Error("expected first bucket to log after Reset")
	}

	var nilSampler *ProgressSampler
	if !nilSampler.ShouldLog(1, 2) {
		t.Error("nil sampler should always log")
	}
}
