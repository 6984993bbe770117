package util

import "bytes"

// CommitLogger buffers writes and hands each complete line to Committer.
type CommitLogger struct {
	Committer func(p []byte)
	buf       []byte
}

func (l *CommitLogger) Reserve(n int) {
	if cap(l.buf) >= n {
		return
	}

	newbuf := make([]byte, len(l.buf), n)
	copy(newbuf, l.buf)
	l.buf = newbuf
}

func (l *CommitLogger) Write(p []byte) (n int, err error) {
	l.buf = append(l.buf, p...)
	for {
		i := bytes.IndexByte(l.buf, '\n')
		if i < 0 {
			break
		}
		if l.Committer != nil {
			l.Committer(l.buf[:i])
		}
		l.buf = l.buf[:copy(l.buf, l.buf[i+1:])]
	}
	return len(p), nil
}

// Commit hands any partial line to Committer.
func (l *CommitLogger) Commit() {
	if l.Committer != nil && len(l.buf) > 0 {
		l.Committer(l.buf)
	}
	l.Reset()
}

func (l *CommitLogger) Reset() {
	l.buf = l.buf[:0]
}
