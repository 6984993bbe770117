package util

import (
	"log"
	"testing"
)

func NewTestingLogger(tb testing.TB) *CommitLogger {
	return &CommitLogger{
		Committer: func(p []byte) {
			tb.Log(string(p))
		},
		buf: nil,
	}
}

// RedirectLog sends the standard logger to tb until the test ends.
func RedirectLog(tb testing.TB) {
	prev := log.Writer()
	l := NewTestingLogger(tb)
	l.Reserve(256)
	log.SetOutput(l)
	tb.Cleanup(func() {
		l.Commit()
		log.SetOutput(prev)
	})
}
