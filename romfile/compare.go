package romfile

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
	"github.com/edsrzf/mmap-go"
)

// Result describes how a dump differs from a reference image.
type Result struct {
	DumpSize, RefSize int64
	DumpHash, RefHash uint64
	// FirstDiff is -1 when the common prefix matches.
	FirstDiff int64
	Differing int64
}

func (r *Result) Equal() bool {
	return r.DumpSize == r.RefSize && r.Differing == 0
}

func (r *Result) String() string {
	if r.Equal() {
		return fmt.Sprintf("match (%d bytes, xxhash %016x)", r.DumpSize, r.DumpHash)
	}
	s := fmt.Sprintf("mismatch: %d differing bytes", r.Differing)
	if r.FirstDiff >= 0 {
		s += fmt.Sprintf(", first at 0x%06x", r.FirstDiff)
	}
	if r.DumpSize != r.RefSize {
		s += fmt.Sprintf(", size %d vs reference %d", r.DumpSize, r.RefSize)
	}
	return s
}

// image is file contents that must be released after use.
type image struct {
	data    []byte
	release func() error
}

func loadMapped(path string) (img image, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return
	}
	if st.Size() == 0 {
		return image{release: f.Close}, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return
	}
	return image{data: m, release: func() error {
		err := m.Unmap()
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		return err
	}}, nil
}

// load7z reads the first file in a 7-Zip archive.
func load7z(path string) (img image, err error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return
	}
	defer r.Close()
	if len(r.File) == 0 {
		return img, fmt.Errorf("%s: empty archive", path)
	}
	rc, err := r.File[0].Open()
	if err != nil {
		return
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return
	}
	return image{data: data, release: func() error { return nil }}, nil
}

func load(path string) (image, error) {
	if strings.EqualFold(filepath.Ext(path), ".7z") {
		return load7z(path)
	}
	return loadMapped(path)
}

// Compare checks a dump against a reference ROM. The reference may be a
// .7z archive, in which case its first file is used.
func Compare(dumpPath, refPath string) (r *Result, err error) {
	got, err := loadMapped(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("romfile: open dump: %w", err)
	}
	defer got.release()

	want, err := load(refPath)
	if err != nil {
		return nil, fmt.Errorf("romfile: open reference: %w", err)
	}
	defer want.release()

	r = compareBytes(got.data, want.data)
	log.Printf("romfile: %s vs %s: %v\n", dumpPath, refPath, r)
	return r, nil
}

func compareBytes(got, want []byte) *Result {
	r := &Result{
		DumpSize:  int64(len(got)),
		RefSize:   int64(len(want)),
		DumpHash:  xxhash.Sum64(got),
		RefHash:   xxhash.Sum64(want),
		FirstDiff: -1,
	}
	n := len(got)
	if len(want) < n {
		n = len(want)
	}
	for i := 0; i < n; i++ {
		if got[i] != want[i] {
			if r.FirstDiff < 0 {
				r.FirstDiff = int64(i)
			}
			r.Differing++
		}
	}
	return r
}
