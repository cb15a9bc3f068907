package types

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/spacemeshos/go-scale"

	"github.com/pegfed/go-pegfed/log"
)

// AddressLength is the expected length of a host chain address.
const AddressLength = 20

// ErrWrongAddressLength is returned when the length of the address is not correct.
var ErrWrongAddressLength = errors.New("wrong address length")

// Address is a host chain account address, derived from a member's host signing key.
type Address [AddressLength]byte

// HexToAddress parses a hex string, with or without 0x prefix, into an Address.
func HexToAddress(s string) (Address, error) {
	var addr Address
	raw, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return addr, fmt.Errorf("decode address %q: %w", s, err)
	}
	if len(raw) != AddressLength {
		return addr, fmt.Errorf("expected %d bytes, got %d: %w", AddressLength, len(raw), ErrWrongAddressLength)
	}
	copy(addr[:], raw)
	return addr, nil
}

// BytesToAddress returns the Address with the trailing AddressLength bytes of b.
func BytesToAddress(b []byte) Address {
	var addr Address
	if len(b) > AddressLength {
		b = b[len(b)-AddressLength:]
	}
	copy(addr[AddressLength-len(b):], b)
	return addr
}

// Bytes returns the address as a byte slice.
func (a Address) Bytes() []byte { return a[:] }

// Hex returns the 0x prefixed hex encoding of the address.
func (a Address) Hex() string { return "0x" + hex.EncodeToString(a[:]) }

// String implements fmt.Stringer.
func (a Address) String() string { return a.Hex() }

// Compare orders addresses by their bytes.
func (a Address) Compare(o Address) int { return bytes.Compare(a[:], o[:]) }

// Field returns a log field. Implements the LoggableField interface.
func (a Address) Field() log.Field { return log.String("address", a.Hex()) }

// EncodeScale implements scale codec interface.
func (a *Address) EncodeScale(e *scale.Encoder) (int, error) {
	return scale.EncodeByteArray(e, a[:])
}

// DecodeScale implements scale codec interface.
func (a *Address) DecodeScale(d *scale.Decoder) (int, error) {
	return scale.DecodeByteArray(d, a[:])
}
