package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHexToHash32(t *testing.T) {
	h := Hash32{0xaa, 0xbb}
	parsed, err := HexToHash32(h.Hex())
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	parsed, err = HexToHash32("0x" + h.Hex())
	require.NoError(t, err)
	require.Equal(t, h, parsed)

	_, err = HexToHash32("aabb")
	require.ErrorIs(t, err, ErrWrongHashLength)

	_, err = HexToHash32("zz")
	require.Error(t, err)
}

func TestBytesToHash(t *testing.T) {
	require.Equal(t, Hash32{31: 1}, BytesToHash([]byte{1}))
	long := make([]byte, 40)
	long[39] = 7
	require.Equal(t, Hash32{31: 7}, BytesToHash(long))
}

func TestHashText(t *testing.T) {
	h := Hash32{1, 2, 3}
	text, err := h.MarshalText()
	require.NoError(t, err)

	var decoded Hash32
	require.NoError(t, decoded.UnmarshalText(text))
	require.Equal(t, h, decoded)
	require.Equal(t, "01020", h.ShortString())
	require.False(t, h.Empty())
	require.True(t, EmptyHash32.Empty())
}

func TestAddress(t *testing.T) {
	addr := BytesToAddress([]byte{0xde, 0xad})
	require.Equal(t, "0x000000000000000000000000000000000000dead", addr.String())

	parsed, err := HexToAddress(addr.Hex())
	require.NoError(t, err)
	require.Equal(t, addr, parsed)

	_, err = HexToAddress("0xdead")
	require.ErrorIs(t, err, ErrWrongAddressLength)
}

func TestAddressCompare(t *testing.T) {
	low := BytesToAddress([]byte{0x01})
	high := BytesToAddress([]byte{0x02})
	require.Negative(t, low.Compare(high))
	require.Positive(t, high.Compare(low))
	require.Zero(t, low.Compare(low))
}
