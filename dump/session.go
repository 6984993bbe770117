package dump

import (
	"context"
	"time"

	"inlretro/device"
	"inlretro/opcodes"
)

const DefaultMaxAttempts = 20

// Options bound the status polling of each chunk.
type Options struct {
	MaxAttempts int
	Backoff     time.Duration
}

func (o Options) maxAttempts() int {
	if o.MaxAttempts <= 0 {
		return DefaultMaxAttempts
	}
	return o.MaxAttempts
}

// Session drives the firmware buffer manager. It tracks which raw banks
// it has handed out so invalid allocations never reach the device.
type Session struct {
	c    *device.Conn
	opts Options

	banks [opcodes.NumRawBanks]bool
	chunk int
}

func NewSession(c *device.Conn, opts Options) *Session {
	return &Session{c: c, opts: opts}
}

func (s *Session) exec(opcode uint8, operand uint16, misc uint8) error {
	return s.c.Exec(opcodes.DictBuffer, opcode, operand, misc)
}

// ResetAll releases every buffer and raw bank.
func (s *Session) ResetAll() error {
	for i := range s.banks {
		s.banks[i] = false
	}
	return s.exec(opcodes.RawBufferReset, 0, 0)
}

// Allocate hands numBanks raw banks starting at baseBank to buffer.
func (s *Session) Allocate(buffer int, id, baseBank, numBanks uint8) error {
	if buffer < 0 || buffer >= opcodes.NumBuffers {
		return device.Configf("buffer %d does not exist", buffer)
	}
	if numBanks == 0 {
		return device.Configf("buffer %d: zero raw banks", buffer)
	}
	if int(baseBank)+int(numBanks) > opcodes.NumRawBanks {
		return device.Configf("buffer %d: banks %d..%d exceed the %d-bank pool",
			buffer, baseBank, int(baseBank)+int(numBanks)-1, opcodes.NumRawBanks)
	}
	for i := int(baseBank); i < int(baseBank)+int(numBanks); i++ {
		if s.banks[i] {
			return device.Configf("buffer %d: raw bank %d already allocated", buffer, i)
		}
	}

	err := s.exec(opcodes.AllocateBuffer0+uint8(buffer), uint16(id)<<8|uint16(baseBank), numBanks)
	if err != nil {
		return err
	}
	for i := int(baseBank); i < int(baseBank)+int(numBanks); i++ {
		s.banks[i] = true
	}
	return nil
}

func (s *Session) SetMemoryAndPart(buffer int, mem, part uint8) error {
	return s.exec(opcodes.SetMemNPart, uint16(mem)<<8|uint16(part), uint8(buffer))
}

func (s *Session) SetMapperAndVariant(buffer int, mapper, variant uint8) error {
	return s.exec(opcodes.SetMapNMapVar, uint16(mapper)<<8|uint16(variant), uint8(buffer))
}

func (s *Session) SetReloadAndPage(buffer int, firstPage uint16, reload uint8) error {
	if buffer < 0 || buffer >= opcodes.NumBuffers {
		return device.Configf("buffer %d does not exist", buffer)
	}
	return s.exec(opcodes.SetReloadPagenum0+uint8(buffer), firstPage, reload)
}

func (s *Session) SetOperation(code uint8) error {
	return s.c.Exec(opcodes.DictOperation, opcodes.SetOperation, uint16(code), 0)
}

// ApplyLayout allocates and pages every buffer of l.
func (s *Session) ApplyLayout(l Layout) (err error) {
	for i, b := range l.Buffers {
		if err = s.Allocate(i, b.ID, b.BaseBank, b.NumBanks); err != nil {
			return
		}
		if err = s.SetReloadAndPage(i, b.FirstPage, b.Reload); err != nil {
			return
		}
	}
	return
}

// PollUntilDumped polls the current buffer until it reports DUMPED and
// returns the number of polls it took.
func (s *Session) PollUntilDumped(ctx context.Context) (attempts int, err error) {
	max := s.opts.maxAttempts()
	var status uint8
	for attempts = 1; attempts <= max; attempts++ {
		status, err = s.c.Read8(opcodes.DictBuffer, opcodes.GetCurBuffStatus, 0, 0)
		if err != nil {
			return
		}
		if status == opcodes.StatusDumped {
			return
		}
		if attempts == max {
			break
		}
		if s.opts.Backoff > 0 {
			t := time.NewTimer(s.opts.Backoff)
			select {
			case <-ctx.Done():
				t.Stop()
				return attempts, ctx.Err()
			case <-t.C:
			}
		}
	}
	return max, &PollTimeoutError{Chunk: s.chunk, Attempts: max, LastStatus: status}
}

// DrainPayload reads one buffer's worth of payload into p. The response
// carries no status byte.
func (s *Session) DrainPayload(p []byte) error {
	buf, err := s.c.TransferNoCheck(device.Request{
		Dict:   opcodes.DictBuffer,
		Opcode: opcodes.BuffPayload,
		Length: len(p),
	})
	if err != nil {
		return err
	}
	copy(p, buf)
	s.chunk++
	return nil
}
