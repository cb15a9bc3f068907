package signing

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/hash"
	"github.com/pegfed/go-pegfed/log"
)

// PublicKeySize is the size of a compressed secp256k1 public key.
const PublicKeySize = btcec.PubKeyBytesLenCompressed

// ErrInvalidPublicKey is returned when key material is not a point on secp256k1.
var ErrInvalidPublicKey = errors.New("invalid public key")

// PublicKey is an immutable secp256k1 public key.
// The same curve is used for custody keys on the pegged chain and for
// host chain keys.
type PublicKey struct {
	key        *btcec.PublicKey
	compressed [PublicKeySize]byte
}

// NewPublicKey parses a compressed or uncompressed secp256k1 public key.
func NewPublicKey(pub []byte) (*PublicKey, error) {
	key, err := btcec.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPublicKey, err)
	}
	return fromBtcec(key), nil
}

// PublicKeyFromHex parses a hex encoded public key.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: decode hex: %w", ErrInvalidPublicKey, err)
	}
	return NewPublicKey(raw)
}

func fromBtcec(key *btcec.PublicKey) *PublicKey {
	p := &PublicKey{key: key}
	copy(p.compressed[:], key.SerializeCompressed())
	return p
}

// Bytes returns the compressed serialization of the key.
// The returned slice is a copy.
func (p *PublicKey) Bytes() []byte {
	// Prevent segfault if unset
	if p == nil {
		return nil
	}
	out := make([]byte, PublicKeySize)
	copy(out, p.compressed[:])
	return out
}

// Uncompressed returns the 65 byte uncompressed serialization of the key.
func (p *PublicKey) Uncompressed() []byte {
	return p.key.SerializeUncompressed()
}

// Unwrap returns the underlying btcec key.
func (p *PublicKey) Unwrap() *btcec.PublicKey {
	return p.key
}

// Address returns the host chain address controlled by this key:
// the last 20 bytes of keccak256 over the uncompressed point without its prefix.
func (p *PublicKey) Address() types.Address {
	digest := hash.Keccak256(p.Uncompressed()[1:])
	return types.BytesToAddress(digest[:])
}

// String returns the compressed public key as a hex representation string.
func (p *PublicKey) String() string {
	return hex.EncodeToString(p.compressed[:])
}

const shortStringSize = 10

// ShortString returns a representative sub string.
func (p *PublicKey) ShortString() string {
	return p.String()[:shortStringSize]
}

// Field returns a log field. Implements the LoggableField interface.
func (p *PublicKey) Field() log.Field {
	return log.String("public_key", p.ShortString())
}

// Equals returns true iff the public keys are equal.
func (p *PublicKey) Equals(o *PublicKey) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.compressed == o.compressed
}

// Compare orders keys by their compressed serialization.
func (p *PublicKey) Compare(o *PublicKey) int {
	return bytes.Compare(p.compressed[:], o.compressed[:])
}
