// Package frame reads and writes EPP data units: a 4-byte big-endian total
// length (header included) followed by one complete XML document.
package frame

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const HeaderLen uint32 = 4

var (
	ErrShortHeader     = errors.New("frame: short length header")
	ErrLengthTooSmall  = errors.New("frame: total length smaller than header")
	ErrPayloadTooLarge = errors.New("frame: payload too large")
	ErrTruncated       = errors.New("frame: truncated payload")
)

// Limits constrains frame decode/encode memory use.
type Limits struct {
	MaxPayloadBytes uint32
}

func DefaultLimits() Limits {
	return Limits{
		MaxPayloadBytes: 8 * 1024 * 1024,
	}
}

// ReadFrame reads one data unit from r and returns its XML payload.
func ReadFrame(r io.Reader, limits Limits) ([]byte, error) {
	var head [HeaderLen]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrShortHeader
		}
		return nil, err
	}

	total := binary.BigEndian.Uint32(head[:])
	if total < HeaderLen {
		return nil, ErrLengthTooSmall
	}
	payloadLen := total - HeaderLen
	if payloadLen > limits.MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}

	payload := make([]byte, payloadLen)
	if payloadLen > 0 {
		if _, err := io.ReadFull(r, payload); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
				return nil, ErrTruncated
			}
			return nil, err
		}
	}
	return payload, nil
}

// WriteFrame writes payload to w as one data unit.
func WriteFrame(w io.Writer, payload []byte, limits Limits) error {
	if uint64(len(payload)) > uint64(limits.MaxPayloadBytes) {
		return ErrPayloadTooLarge
	}
	if _, err := w.Write(EncodeHeader(uint32(len(payload)))); err != nil {
		return err
	}
	if len(payload) == 0 {
		return nil
	}
	_, err := w.Write(payload)
	return err
}

// EncodeHeader returns the length header for a payload of payloadLen bytes.
func EncodeHeader(payloadLen uint32) []byte {
	buf := make([]byte, HeaderLen)
	binary.BigEndian.PutUint32(buf, payloadLen+HeaderLen)
	return buf
}

// DecodeHeader returns the payload length announced by a length header.
func DecodeHeader(b []byte) (uint32, error) {
	if len(b) != int(HeaderLen) {
		return 0, fmt.Errorf("frame: invalid header length: %d", len(b))
	}
	total := binary.BigEndian.Uint32(b)
	if total < HeaderLen {
		return 0, ErrLengthTooSmall
	}
	return total - HeaderLen, nil
}
