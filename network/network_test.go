package network

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/stretchr/testify/require"
)

func TestFromID(t *testing.T) {
	t.Parallel()
	for _, id := range IDs() {
		t.Run(id.String(), func(t *testing.T) {
			t.Parallel()
			p, err := FromID(id)
			require.NoError(t, err)
			require.Equal(t, id, p.ID())
			require.Equal(t, string(id), p.Chain().Name)
			require.NoError(t, Validate(p))
			require.True(t, p.Equal(MustFromID(id)))
		})
	}
}

func TestUnknownNetwork(t *testing.T) {
	_, err := FromID("org.bitcoin.unknown")
	require.ErrorIs(t, err, ErrInvalidNetworkContext)
	require.Panics(t, func() { MustFromID("nope") })
}

func TestValidate(t *testing.T) {
	require.ErrorIs(t, Validate(nil), ErrInvalidNetworkContext)
	require.ErrorIs(t, Validate(&Params{}), ErrInvalidNetworkContext)

	forged := &Params{id: RegTest, chain: &chaincfg.MainNetParams}
	require.ErrorIs(t, Validate(forged), ErrInvalidNetworkContext)
}

func TestEqual(t *testing.T) {
	require.False(t, MustFromID(MainNet).Equal(MustFromID(RegTest)))
	require.False(t, MustFromID(MainNet).Equal(nil))
	var p *Params
	require.True(t, p.Equal(nil))
}
