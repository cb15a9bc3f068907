// Package fedtest builds federation fixtures from small integer private keys.
package fedtest

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pegfed/go-pegfed/federation"
	"github.com/pegfed/go-pegfed/signing"
)

// Key returns the public key of the private key seed.
func Key(tb testing.TB, seed uint64) *signing.PublicKey {
	tb.Helper()
	priv, err := signing.NewPrivateKey(signing.WithSeed(seed))
	require.NoError(tb, err)
	return priv.Public()
}

// Member creates a member from explicit custody, host and auth seeds.
func Member(tb testing.TB, custody, host, auth uint64) federation.Member {
	tb.Helper()
	m, err := federation.NewMember(Key(tb, custody), Key(tb, host), Key(tb, auth))
	require.NoError(tb, err)
	return m
}

// Members creates one member per seed s, with custody key s, host key s+1
// and auth key s+2.
func Members(tb testing.TB, seeds ...uint64) []federation.Member {
	tb.Helper()
	members := make([]federation.Member, 0, len(seeds))
	for _, s := range seeds {
		members = append(members, Member(tb, s, s+1, s+2))
	}
	return members
}

// Pending creates a pending federation from member seeds.
func Pending(tb testing.TB, seeds []uint64, opts ...federation.PendingOpt) *federation.Pending {
	tb.Helper()
	p, err := federation.NewPending(Members(tb, seeds...), opts...)
	require.NoError(tb, err)
	return p
}
