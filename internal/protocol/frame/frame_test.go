package frame

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/danmuck/eppwire/internal/testutil/testlog"
)

func TestReadWriteFrameRoundTrip(t *testing.T) {
	testlog.Start(t)
	payload := []byte(`<?xml version="1.0" encoding="UTF-8"?><epp><hello/></epp>`)
	var buf bytes.Buffer
	if err := WriteFrame(&buf, payload, DefaultLimits()); err != nil {
		t.Fatalf("write frame: %v", err)
	}
	if got := binary.BigEndian.Uint32(buf.Bytes()[:4]); got != uint32(len(payload))+HeaderLen {
		t.Fatalf("total length mismatch: got=%d want=%d", got, len(payload)+4)
	}
	out, err := ReadFrame(&buf, DefaultLimits())
	if err != nil {
		t.Fatalf("read frame: %v", err)
	}
	if !bytes.Equal(out, payload) {
		t.Fatalf("payload mismatch: %q", out)
	}
}

func TestReadFrameBackToBack(t *testing.T) {
	testlog.Start(t)
	var buf bytes.Buffer
	for _, p := range []string{"<epp><hello/></epp>", "<epp/>"} {
		if err := WriteFrame(&buf, []byte(p), DefaultLimits()); err != nil {
			t.Fatalf("write frame: %v", err)
		}
	}
	first, err := ReadFrame(&buf, DefaultLimits())
	if err != nil || string(first) != "<epp><hello/></epp>" {
		t.Fatalf("first frame: %q %v", first, err)
	}
	second, err := ReadFrame(&buf, DefaultLimits())
	if err != nil || string(second) != "<epp/>" {
		t.Fatalf("second frame: %q %v", second, err)
	}
}

func TestReadFrameMalformedHeaderIsDeterministic(t *testing.T) {
	testlog.Start(t)
	_, err := ReadFrame(bytes.NewReader([]byte{1, 2, 3}), DefaultLimits())
	if !errors.Is(err, ErrShortHeader) {
		t.Fatalf("expected ErrShortHeader, got %v", err)
	}
}

func TestReadFrameLengthTooSmall(t *testing.T) {
	testlog.Start(t)
	_, err := ReadFrame(bytes.NewReader([]byte{0, 0, 0, 3}), DefaultLimits())
	if !errors.Is(err, ErrLengthTooSmall) {
		t.Fatalf("expected ErrLengthTooSmall, got %v", err)
	}
}

func TestReadFrameTruncatedPayload(t *testing.T) {
	testlog.Start(t)
	buf := append(EncodeHeader(10), []byte("<epp/")...)
	_, err := ReadFrame(bytes.NewReader(buf), DefaultLimits())
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestFrameLimitsEnforced(t *testing.T) {
	testlog.Start(t)
	limits := Limits{MaxPayloadBytes: 4}
	if err := WriteFrame(&bytes.Buffer{}, []byte("<epp/>"), limits); !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge on write, got %v", err)
	}
	_, err := ReadFrame(bytes.NewReader(EncodeHeader(64)), limits)
	if !errors.Is(err, ErrPayloadTooLarge) {
		t.Fatalf("expected ErrPayloadTooLarge on read, got %v", err)
	}
}

func TestDecodeHeader(t *testing.T) {
	testlog.Start(t)
	n, err := DecodeHeader(EncodeHeader(42))
	if err != nil || n != 42 {
		t.Fatalf("decode header: n=%d err=%v", n, err)
	}
	if _, err := DecodeHeader([]byte{0, 0}); err == nil {
		t.Fatalf("expected error for short header")
	}
	if _, err := DecodeHeader([]byte{0, 0, 0, 1}); !errors.Is(err, ErrLengthTooSmall) {
		t.Fatalf("expected ErrLengthTooSmall, got %v", err)
	}
}
