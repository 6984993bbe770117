package util

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"
)

// PanicSafeLogger tees log output to a file and stderr and can flush the
// file before the process dies.
type PanicSafeLogger struct {
	f    *os.File
	mw   io.Writer
	Path string
}

var std *PanicSafeLogger

func NewPanicSafeLogger(f *os.File) *PanicSafeLogger {
	std = &PanicSafeLogger{
		f:    f,
		mw:   io.MultiWriter(f, os.Stderr),
		Path: f.Name(),
	}
	return std
}

// OpenLogFile creates a timestamped log file named after prefix in dir
// (the temp dir when empty) and routes the standard logger through it.
func OpenLogFile(dir, prefix string) (l *PanicSafeLogger, err error) {
	if dir == "" {
		dir = os.TempDir()
	}

	ts := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.ReplaceAll(ts, ":", "-")
	ts = strings.ReplaceAll(ts, ".", "-")
	path := filepath.Join(dir, fmt.Sprintf("%s-%s.log", prefix, ts))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("util: could not open log file '%s': %w", path, err)
	}

	l = NewPanicSafeLogger(f)
	log.SetOutput(l)
	return
}

func (l *PanicSafeLogger) Write(p []byte) (n int, err error) {
	return l.mw.Write(p)
}

func (l *PanicSafeLogger) Flush() error {
	return l.f.Sync()
}

func (l *PanicSafeLogger) Close() error {
	_ = l.f.Sync()
	return l.f.Close()
}

func FlushLogger() error {
	if std == nil {
		return nil
	}
	return std.Flush()
}

func LogPanic(err any) {
	log.Printf("paniced with %v\n%s\n", err, string(debug.Stack()))
	_ = FlushLogger()
}
