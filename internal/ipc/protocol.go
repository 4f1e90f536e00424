// Package ipc implements the binary-framed Unix socket protocol cutter
// and the core loop speak: a length-prefixed frame carrying a
// command.Data request, answered by a length-prefixed frame carrying a
// plain-text result message (empty if the command produced none).
package ipc

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxFrameSize bounds a single frame's payload, guarding the server
// against a client sending a bogus, huge length prefix.
const MaxFrameSize = 1 << 20 // 1 MiB

// ErrMalformedFrame is wrapped into every error ReadFrame returns,
// transport failures included, so errors.Is matches it for any failed
// read; it does not tell a bad frame apart from an I/O error.
var ErrMalformedFrame = errors.New("ipc: malformed frame")

// unableToReceive is sent back verbatim when a frame cannot be parsed,
// matching the one-shot request/response contract: the connection is
// closed immediately after.
const unableToReceive = "Unable to receive data"

// WriteFrame writes a length-prefixed frame: a little-endian uint32
// byte count followed by payload.
func WriteFrame(w io.Writer, payload []byte) error {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := w.Write(lenBuf[:]); err != nil {
		return fmt.Errorf("ipc: write frame header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("ipc: write frame payload: %w", err)
	}
	return nil
}

// ReadFrame reads one length-prefixed frame, rejecting lengths beyond
// MaxFrameSize.
func ReadFrame(r io.Reader) ([]byte, error) {
	var lenBuf [4]byte
	if _, err := io.ReadFull(r, lenBuf[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n > MaxFrameSize {
		return nil, fmt.Errorf("%w: length %d exceeds maximum %d", ErrMalformedFrame, n, MaxFrameSize)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return payload, nil
}
