package hash

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	t.Parallel()
	for _, tc := range []struct {
		desc   string
		chunks [][]byte
		expect string
	}{
		{
			desc:   "empty",
			expect: "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470",
		},
		{
			desc:   "abc",
			chunks: [][]byte{[]byte("abc")},
			expect: "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
		{
			desc:   "chunked abc",
			chunks: [][]byte{[]byte("a"), []byte("bc")},
			expect: "4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45",
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			digest := Keccak256(tc.chunks...)
			require.Equal(t, tc.expect, hex.EncodeToString(digest[:]))
		})
	}
}

func TestKeccak256PoolReuse(t *testing.T) {
	first := Keccak256([]byte{0xaa})
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Keccak256([]byte{0xaa}))
	}
}

func TestSum256(t *testing.T) {
	digest := Sum256([]byte("abc"))
	require.Equal(t,
		"ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad",
		hex.EncodeToString(digest[:]),
	)
}
