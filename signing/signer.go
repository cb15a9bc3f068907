package signing

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"
)

// PrivateKeySize size of the private key in bytes.
const PrivateKeySize = btcec.PrivKeyBytesLen

// ErrInvalidPrivateKey is returned when a scalar is zero or not below the curve order.
var ErrInvalidPrivateKey = errors.New("invalid private key")

type keyOption struct {
	priv *btcec.PrivateKey
}

// KeyOptionFunc modifies key creation.
type KeyOptionFunc func(*keyOption) error

// WithPrivateKey sets the raw 32 byte scalar of the key.
func WithPrivateKey(raw []byte) KeyOptionFunc {
	return func(opt *keyOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithPrivateKey: private key already set")
		}
		if len(raw) != PrivateKeySize {
			return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidPrivateKey, PrivateKeySize, len(raw))
		}
		var scalar btcec.ModNScalar
		if overflow := scalar.SetByteSlice(raw); overflow || scalar.IsZero() {
			return fmt.Errorf("%w: scalar out of range", ErrInvalidPrivateKey)
		}
		opt.priv = btcec.PrivKeyFromScalar(&scalar)
		return nil
	}
}

// WithSeed derives the key from a small integer, encoded big-endian into the scalar.
// Only fixtures and regtest setups should use it.
func WithSeed(seed uint64) KeyOptionFunc {
	raw := make([]byte, PrivateKeySize)
	binary.BigEndian.PutUint64(raw[PrivateKeySize-8:], seed)
	return WithPrivateKey(raw)
}

// WithKeyFromRand generates the key using the given randomness source.
func WithKeyFromRand(rand io.Reader) KeyOptionFunc {
	return func(opt *keyOption) error {
		if opt.priv != nil {
			return errors.New("invalid option WithKeyFromRand: private key already set")
		}
		raw := make([]byte, PrivateKeySize)
		for {
			if _, err := io.ReadFull(rand, raw); err != nil {
				return fmt.Errorf("could not generate key: %w", err)
			}
			var scalar btcec.ModNScalar
			if overflow := scalar.SetByteSlice(raw); !overflow && !scalar.IsZero() {
				opt.priv = btcec.PrivKeyFromScalar(&scalar)
				return nil
			}
		}
	}
}

// FromFile loads a hex encoded private key from a file.
func FromFile(path string) KeyOptionFunc {
	return func(opt *keyOption) error {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to open key file at %s: %w", path, err)
		}
		raw, err := hex.DecodeString(strings.TrimSpace(string(data)))
		if err != nil {
			return fmt.Errorf("decoding private key in %s: %w", filepath.Base(path), err)
		}
		return WithPrivateKey(raw)(opt)
	}
}

// PrivateKey is a secp256k1 private key. It is only used to derive member
// public keys; this module never signs transactions.
type PrivateKey struct {
	priv *btcec.PrivateKey
}

// NewPrivateKey creates a private key. Without options a random key is generated.
func NewPrivateKey(opts ...KeyOptionFunc) (*PrivateKey, error) {
	cfg := &keyOption{}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	if cfg.priv == nil {
		if err := WithKeyFromRand(rand.Reader)(cfg); err != nil {
			return nil, err
		}
	}
	return &PrivateKey{priv: cfg.priv}, nil
}

// Public returns the public key of this private key.
func (k *PrivateKey) Public() *PublicKey {
	return fromBtcec(k.priv.PubKey())
}

// Bytes returns the 32 byte scalar.
func (k *PrivateKey) Bytes() []byte {
	return k.priv.Serialize()
}

// ToFile writes the hex encoded scalar to path, refusing to overwrite an existing file.
func (k *PrivateKey) ToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory for key file: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create key file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(hex.EncodeToString(k.Bytes())); err != nil {
		return fmt.Errorf("failed to write key file: %w", err)
	}
	return nil
}
