// Package romfile writes dump images to disk and checks them against
// known-good references.
package romfile

import (
	"bufio"
	"fmt"
	"hash"
	"io"
	"log"
	"os"

	"github.com/cespare/xxhash"
)

// File is a dump being written. Exactly one of Commit or Abort must be
// called.
type File struct {
	Path string

	f    *os.File
	w    *bufio.Writer
	hash hash.Hash64
	n    int64
}

func Create(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("romfile: %w", err)
	}
	return &File{
		Path: path,
		f:    f,
		w:    bufio.NewWriterSize(f, 64*1024),
		hash: xxhash.New(),
	}, nil
}

func (f *File) Write(p []byte) (int, error) {
	n, err := f.w.Write(p)
	f.hash.Write(p[:n])
	f.n += int64(n)
	return n, err
}

var _ io.Writer = (*File)(nil)

func (f *File) Size() int64   { return f.n }
func (f *File) Sum64() uint64 { return f.hash.Sum64() }

func (f *File) close() error {
	err := f.w.Flush()
	if cerr := f.f.Close(); err == nil {
		err = cerr
	}
	return err
}

// Commit flushes and closes the file and logs its fingerprint.
func (f *File) Commit() error {
	if err := f.close(); err != nil {
		return fmt.Errorf("romfile: close %s: %w", f.Path, err)
	}
	log.Printf("romfile: wrote %s (%d bytes, xxhash %016x)\n", f.Path, f.n, f.Sum64())
	return nil
}

// Abort keeps what was written so far and warns that it is incomplete.
// It returns cause.
func (f *File) Abort(cause error) error {
	if err := f.close(); err != nil {
		log.Printf("romfile: close %s: %v\n", f.Path, err)
	}
	log.Printf("romfile: warning: %s is incomplete (%d bytes written): %v\n", f.Path, f.n, cause)
	return cause
}
