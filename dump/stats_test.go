package dump

import (
	"strings"
	"testing"
	"time"
)

func TestStatsFprint(t *testing.T) {
	s := NewStats()
	s.session()
	for _, p := range []int{1, 1, 2, 3, 1, 5} {
		s.poll(p)
		s.chunk(ChunkSize)
	}
	s.elapsed(time.Second)

	var sb strings.Builder
	if err := s.Fprint(&sb); err != nil {
		t.Fatal(err)
	}
	out := sb.String()
	if !strings.Contains(out, "chunks: 6") || !strings.Contains(out, "max polls: 5") {
		t.Errorf("Fprint() summary got = %q", out)
	}
	if !strings.Contains(out, "polls per chunk:") {
		t.Errorf("Fprint() missing histogram: %q", out)
	}
}

func TestStatsNilSafe(t *testing.T) {
	var s *Stats
	s.session()
	s.poll(3)
	s.chunk(128)
	s.elapsed(time.Second)
}
