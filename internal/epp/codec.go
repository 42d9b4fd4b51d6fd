package epp

import (
	"errors"
	"time"

	"github.com/danmuck/eppwire/internal/observability"
	"github.com/danmuck/eppwire/internal/protocol"
	"github.com/rs/zerolog/log"
)

// Encode renders m as a complete <epp> document with the fixed namespace
// declarations on the root.
func Encode(m *Message) ([]byte, error) {
	start := time.Now()
	out, err := Schema().EncodeDocument(m)
	if err != nil {
		observability.RecordCodecError(observability.DirectionEncode, ErrorClass(err), time.Since(start))
		log.Debug().Err(err).Str("kind", m.Detail()).Msg("epp.Encode failed")
		return nil, err
	}
	observability.RecordCodec(observability.DirectionEncode, m.Detail(), time.Since(start))
	return out, nil
}

// Decode parses a complete <epp> document. No partial message is returned on
// error.
func Decode(data []byte) (*Message, error) {
	start := time.Now()
	var m Message
	if err := Schema().DecodeDocument(data, &m); err != nil {
		observability.RecordCodecError(observability.DirectionDecode, ErrorClass(err), time.Since(start))
		log.Debug().Err(err).Int("bytes", len(data)).Msg("epp.Decode failed")
		return nil, err
	}
	observability.RecordCodec(observability.DirectionDecode, m.Detail(), time.Since(start))
	return &m, nil
}

func EncodeCommand(c *Command) ([]byte, error) { return Encode(&Message{Command: c}) }

func EncodeResponse(r *Response) ([]byte, error) { return Encode(&Message{Response: r}) }

// EncodeHello renders the bare <hello/> document.
func EncodeHello() ([]byte, error) { return Encode(NewHello()) }

// ErrorClass names the error family of err for metrics and API replies.
func ErrorClass(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, protocol.ErrParse):
		return "parse"
	case errors.Is(err, protocol.ErrFormat):
		return "format"
	case errors.Is(err, protocol.ErrSchema):
		return "schema"
	case errors.Is(err, protocol.ErrTarget):
		return "target"
	}
	return "io"
}
