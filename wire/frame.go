// Package wire defines the SAPIENT length-prefixed frame codec and the
// top-level wrapper message exchanged with the DMM, along with the
// binary/debug-JSON codec used by every message builder.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// MaxBodySize is the largest frame body this client will encode or accept.
const MaxBodySize = 32 * 1024 * 1024 // 32 MiB

// ErrEmptyBody and ErrBodyTooLarge are the two framing-level protocol
// errors; both are also reachable via errors.Is against ErrFrame.
var (
	ErrFrame        = errors.New("wire: frame error")
	ErrEmptyBody    = fmt.Errorf("wire: empty body: %w", ErrFrame)
	ErrBodyTooLarge = fmt.Errorf("wire: body exceeds %d bytes: %w", MaxBodySize, ErrFrame)
)

// WriteFrame writes a length-prefixed frame: a 4-byte little-endian body
// length followed by body itself. It does not synchronize concurrent
// writers; callers sharing a single io.Writer across goroutines must
// serialize calls themselves (see the client's send lock).
func WriteFrame(w io.Writer, body []byte) error {
	if len(body) == 0 {
		return ErrEmptyBody
	}
	if len(body) > MaxBodySize {
		return ErrBodyTooLarge
	}
	var hdr [4]byte
	binary.LittleEndian.PutUint32(hdr[:], uint32(len(body)))
	if _, err := w.Write(hdr[:]); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// ReadFrame reads one length-prefixed frame from r, returning its body.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := binary.LittleEndian.Uint32(hdr[:])
	if n == 0 {
		return nil, ErrEmptyBody
	}
	if n > MaxBodySize {
		return nil, ErrBodyTooLarge
	}
	body := make([]byte, n)
	if _, err := io.ReadFull(r, body); err != nil {
		return nil, err
	}
	return body, nil
}
