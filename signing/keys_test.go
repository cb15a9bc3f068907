package signing

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func seeded(tb testing.TB, seed uint64) *PrivateKey {
	tb.Helper()
	key, err := NewPrivateKey(WithSeed(seed))
	require.NoError(tb, err)
	return key
}

func TestPublicKeyRoundTrip(t *testing.T) {
	pub := seeded(t, 100).Public()
	require.Len(t, pub.Bytes(), PublicKeySize)

	parsed, err := NewPublicKey(pub.Bytes())
	require.NoError(t, err)
	require.True(t, pub.Equals(parsed))

	fromUncompressed, err := NewPublicKey(pub.Uncompressed())
	require.NoError(t, err)
	require.True(t, pub.Equals(fromUncompressed))

	fromHex, err := PublicKeyFromHex(pub.String())
	require.NoError(t, err)
	require.True(t, pub.Equals(fromHex))
}

func TestPublicKeyBytesIsCopy(t *testing.T) {
	pub := seeded(t, 200).Public()
	b := pub.Bytes()
	b[0] ^= 0xff
	require.NotEqual(t, b, pub.Bytes())
}

func TestInvalidPublicKey(t *testing.T) {
	_, err := NewPublicKey([]byte{0x02, 0x01})
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = PublicKeyFromHex("not hex")
	require.ErrorIs(t, err, ErrInvalidPublicKey)
}

func TestPublicKeyCompare(t *testing.T) {
	a := seeded(t, 1).Public()
	b := seeded(t, 2).Public()
	require.Equal(t, bytes.Compare(a.Bytes(), b.Bytes()), a.Compare(b))
	require.Equal(t, -a.Compare(b), b.Compare(a))
	require.Zero(t, a.Compare(seeded(t, 1).Public()))
	require.False(t, a.Equals(b))
	require.False(t, a.Equals(nil))
}

func TestAddress(t *testing.T) {
	// Well known host chain address of the private key 1.
	require.Equal(t,
		"0x7e5f4552091a69125d5dfcb7b8c2659029395bdf",
		seeded(t, 1).Public().Address().Hex(),
	)
}

func TestPrivateKeyValidation(t *testing.T) {
	_, err := NewPrivateKey(WithPrivateKey(make([]byte, PrivateKeySize)))
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = NewPrivateKey(WithPrivateKey([]byte{1, 2, 3}))
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	overflow := bytes.Repeat([]byte{0xff}, PrivateKeySize)
	_, err = NewPrivateKey(WithPrivateKey(overflow))
	require.ErrorIs(t, err, ErrInvalidPrivateKey)

	_, err = NewPrivateKey(WithSeed(1), WithSeed(2))
	require.Error(t, err)
}

func TestRandomPrivateKey(t *testing.T) {
	a, err := NewPrivateKey()
	require.NoError(t, err)
	b, err := NewPrivateKey()
	require.NoError(t, err)
	require.False(t, a.Public().Equals(b.Public()))
}

func TestPrivateKeyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keys", "custody.key")
	key := seeded(t, 300)
	require.NoError(t, key.ToFile(path))
	require.Error(t, key.ToFile(path), "must not overwrite")

	loaded, err := NewPrivateKey(FromFile(path))
	require.NoError(t, err)
	require.True(t, key.Public().Equals(loaded.Public()))

	require.NoError(t, os.WriteFile(path+".bad", []byte("zz"), 0o600))
	_, err = NewPrivateKey(FromFile(path + ".bad"))
	require.Error(t, err)
}
