package types

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spacemeshos/go-scale"

	"github.com/pegfed/go-pegfed/log"
)

const (
	// Hash32Length is 32, the expected length of the hash.
	Hash32Length = 32

	shortStringSize = 5
)

// ErrWrongHashLength is returned when a hex string does not decode to Hash32Length bytes.
var ErrWrongHashLength = errors.New("wrong hash length")

// Hash32 represents a 32-byte digest of arbitrary data.
type Hash32 [Hash32Length]byte

// EmptyHash32 is the zero digest.
var EmptyHash32 = Hash32{}

// BytesToHash sets b to hash.
// If b is larger than len(h), b will be cropped from the left.
func BytesToHash(b []byte) Hash32 {
	var h Hash32
	if len(b) > len(h) {
		b = b[len(b)-Hash32Length:]
	}
	copy(h[Hash32Length-len(b):], b)
	return h
}

// HexToHash32 parses a hex string, with or without 0x prefix, into a Hash32.
func HexToHash32(s string) (Hash32, error) {
	var h Hash32
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return h, fmt.Errorf("decode hash %q: %w", s, err)
	}
	if len(raw) != Hash32Length {
		return h, fmt.Errorf("%w: expected %d bytes, got %d", ErrWrongHashLength, Hash32Length, len(raw))
	}
	copy(h[:], raw)
	return h, nil
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash32) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash32) Hex() string { return hex.EncodeToString(h[:]) }

// String implements the stringer interface.
func (h Hash32) String() string { return h.Hex() }

// ShortString returns the first 5 characters of the hash, for logging purposes.
func (h Hash32) ShortString() string { return h.Hex()[:shortStringSize] }

// Empty returns true if the hash is all zeroes.
func (h Hash32) Empty() bool { return h == EmptyHash32 }

// Field returns a log field. Implements the LoggableField interface.
func (h Hash32) Field() log.Field { return log.String("hash", h.Hex()) }

// Format implements fmt.Formatter, forcing the byte slice to be formatted as is,
// without going through the stringer interface used for logging.
func (h Hash32) Format(s fmt.State, c rune) {
	_, _ = fmt.Fprintf(s, "%"+string(c), h[:])
}

// MarshalText returns the hex representation of h.
func (h Hash32) MarshalText() ([]byte, error) {
	return []byte(h.Hex()), nil
}

// UnmarshalText parses a hash in hex syntax.
func (h *Hash32) UnmarshalText(input []byte) error {
	parsed, err := HexToHash32(string(input))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// EncodeScale implements scale codec interface.
func (h *Hash32) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, h[:])
}

// DecodeScale implements scale codec interface.
func (h *Hash32) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, h[:])
}
