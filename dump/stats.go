package dump

import (
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
)

// Stats accumulates dump throughput and polling figures.
type Stats struct {
	Sessions int
	Chunks   int
	Bytes    int
	Elapsed  time.Duration

	polls []float64
}

func NewStats() *Stats {
	return &Stats{}
}

func (s *Stats) session() {
	if s != nil {
		s.Sessions++
	}
}

func (s *Stats) poll(attempts int) {
	if s != nil && attempts > 0 {
		s.polls = append(s.polls, float64(attempts))
	}
}

func (s *Stats) chunk(n int) {
	if s != nil {
		s.Chunks++
		s.Bytes += n
	}
}

func (s *Stats) elapsed(d time.Duration) {
	if s != nil {
		s.Elapsed += d
	}
}

// Polls returns the poll count of every chunk so far.
func (s *Stats) Polls() []float64 {
	return s.polls
}

// MaxPolls is the worst poll count of any chunk.
func (s *Stats) MaxPolls() (max int) {
	for _, p := range s.polls {
		if int(p) > max {
			max = int(p)
		}
	}
	return
}

// Fprint writes a summary and a histogram of polls per chunk.
func (s *Stats) Fprint(w io.Writer) error {
	rate := 0.0
	if s.Elapsed > 0 {
		rate = float64(s.Bytes) / 1024 / s.Elapsed.Seconds()
	}
	if _, err := fmt.Fprintf(w, "sessions: %d  chunks: %d  bytes: %d  elapsed: %v  rate: %.1f KB/s  max polls: %d\n",
		s.Sessions, s.Chunks, s.Bytes, s.Elapsed.Round(time.Millisecond), rate, s.MaxPolls()); err != nil {
		return err
	}
	if len(s.polls) == 0 {
		return nil
	}

	min, max := s.polls[0], s.polls[0]
	for _, p := range s.polls {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if min == max {
		_, err := fmt.Fprintf(w, "every chunk took %d polls\n", int(max))
		return err
	}

	bins := int(max - min + 1)
	if bins > 10 {
		bins = 10
	}
	fmt.Fprintln(w, "polls per chunk:")
	h := histogram.Hist(bins, s.polls)
	return histogram.Fprint(w, h, histogram.Linear(40))
}
