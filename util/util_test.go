package util

import (
	"errors"
	"strings"
	"testing"
)

func TestCommitLoggerLines(t *testing.T) {
	var lines []string
	l := &CommitLogger{Committer: func(p []byte) { lines = append(lines, string(p)) }}

	_, _ = l.Write([]byte("dump: chunk 1\ndump: ch"))
	_, _ = l.Write([]byte("unk 2\n"))
	_, _ = l.Write([]byte("tail"))
	l.Commit()

	want := []string{"dump: chunk 1", "dump: chunk 2", "tail"}
	if strings.Join(lines, "|") != strings.Join(want, "|") {
		t.Errorf("lines got = %q, want %q", lines, want)
	}
}

func TestIsTruthy(t *testing.T) {
	tests := []struct {
		v    string
		want bool
	}{
		{"1", true},
		{"TRUE", true},
		{" yes ", true},
		{"0", false},
		{"", false},
		{"off", false},
	}
	for _, tt := range tests {
		t.Run(tt.v, func(t *testing.T) {
			if got := IsTruthy(tt.v); got != tt.want {
				t.Errorf("IsTruthy() got = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLockNameExclusive(t *testing.T) {
	name := "inlretro-test-" + strings.ReplaceAll(t.Name(), "/", "_")
	a, err := LockName(name)
	if err != nil {
		t.Fatal(err)
	}
	defer a.Unlock()

	_, err = LockName(name)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("second LockName() err = %v, want ErrLocked", err)
	}

	if err = a.Unlock(); err != nil {
		t.Fatal(err)
	}
	b, err := LockName(name)
	if err != nil {
		t.Fatalf("LockName() after Unlock err = %v", err)
	}
	_ = b.Unlock()
}
