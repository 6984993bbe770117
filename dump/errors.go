package dump

import (
	"errors"
	"fmt"

	"inlretro/device"
)

// PollTimeoutError is returned when a buffer never reported DUMPED.
type PollTimeoutError struct {
	Chunk      int
	Attempts   int
	LastStatus uint8
}

func (e *PollTimeoutError) Error() string {
	return fmt.Sprintf("dump: chunk %d: buffer not dumped after %d polls (last status 0x%02x)", e.Chunk, e.Attempts, e.LastStatus)
}

// IsConfiguration reports whether err is a host-side configuration error.
func IsConfiguration(err error) bool {
	var cerr *device.ConfigurationError
	return errors.As(err, &cerr)
}
