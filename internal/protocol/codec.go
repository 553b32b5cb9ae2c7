package protocol

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// MaxMessageSize caps a single frame. The original protocol had no limit;
// the cap protects the reader from a hostile or broken peer.
const MaxMessageSize = 16 << 20

var (
	// ErrFraming means the stream closed mid-prefix: fewer than 4 bytes were
	// available for the length header.
	ErrFraming = errors.New("framing error")

	// ErrTruncated means the stream closed before the declared payload
	// length was satisfied.
	ErrTruncated = errors.New("truncated message")

	// ErrDecode means the payload bytes are not valid JSON.
	ErrDecode = errors.New("malformed message")

	// ErrMessageTooLarge means a frame exceeded MaxMessageSize on either
	// the encode or decode side.
	ErrMessageTooLarge = errors.New("message too large")
)

// Encode writes v as one frame: u32 little-endian payload length, then the
// UTF-8 JSON payload.
func Encode(w io.Writer, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if len(payload) > MaxMessageSize {
		return fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(payload))
	}

	frame := make([]byte, 4+len(payload))
	binary.LittleEndian.PutUint32(frame[:4], uint32(len(payload)))
	copy(frame[4:], payload)

	_, err = w.Write(frame)
	return err
}

// Decode reads exactly one frame from r and unmarshals the payload into v.
//
// A clean close before any prefix byte yields io.EOF so connection loops can
// exit quietly. A close mid-prefix yields ErrFraming, a close mid-payload
// ErrTruncated, and invalid JSON ErrDecode.
func Decode(r io.Reader, v any) error {
	var prefix [4]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: stream closed mid-prefix", ErrFraming)
		}
		return err
	}

	length := binary.LittleEndian.Uint32(prefix[:])
	if length > MaxMessageSize {
		return fmt.Errorf("%w: declared %d bytes", ErrMessageTooLarge, length)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: got fewer than %d bytes", ErrTruncated, length)
		}
		return err
	}

	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}
