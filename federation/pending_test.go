package federation_test

import (
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/federation"
	"github.com/pegfed/go-pegfed/federation/fedtest"
	"github.com/pegfed/go-pegfed/hash"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/log/logtest"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/signing"
)

var (
	sixSeeds  = []uint64{100, 200, 300, 400, 500, 600}
	nineSeeds = []uint64{100, 200, 300, 400, 500, 600, 700, 800, 900}
)

func TestPendingRejectsInvalidMembers(t *testing.T) {
	for _, tc := range []struct {
		desc    string
		members func(testing.TB) []federation.Member
	}{
		{
			desc:    "nil",
			members: func(testing.TB) []federation.Member { return nil },
		},
		{
			desc:    "empty",
			members: func(testing.TB) []federation.Member { return []federation.Member{} },
		},
		{
			desc: "absent member",
			members: func(tb testing.TB) []federation.Member {
				return append(fedtest.Members(tb, 100, 200), federation.Member{})
			},
		},
		{
			desc: "duplicate custody key",
			members: func(tb testing.TB) []federation.Member {
				return []federation.Member{fedtest.Member(tb, 100, 1, 2), fedtest.Member(tb, 100, 3, 4)}
			},
		},
		{
			desc: "too many members",
			members: func(tb testing.TB) []federation.Member {
				seeds := make([]uint64, federation.MaxMembers+1)
				for i := range seeds {
					seeds[i] = uint64(i+1) * 10
				}
				return fedtest.Members(tb, seeds...)
			},
		},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			p, err := federation.NewPending(tc.members(t))
			require.ErrorIs(t, err, federation.ErrInvalidMembers)
			require.Nil(t, p)
		})
	}
}

func TestPendingMaxMembers(t *testing.T) {
	seeds := make([]uint64, federation.MaxMembers)
	for i := range seeds {
		seeds[i] = uint64(i+1) * 10
	}
	p := fedtest.Pending(t, seeds)
	require.Equal(t, federation.MaxMembers, p.Size())
	_, err := p.BuildFederation(time.UnixMilli(1234), 0, network.MustFromID(network.RegTest))
	require.NoError(t, err)
}

func TestPendingMembersAreReadOnly(t *testing.T) {
	p := fedtest.Pending(t, sixSeeds)
	view := p.Members()

	require.ErrorIs(t, view.Append(fedtest.Member(t, 700, 701, 702)), federation.ErrUnsupportedOperation)
	require.ErrorIs(t, view.RemoveAt(0), federation.ErrUnsupportedOperation)
	require.ErrorIs(t, view.Set(0, fedtest.Member(t, 700, 701, 702)), federation.ErrUnsupportedOperation)
	require.Equal(t, 6, p.Size())

	copied := view.Slice()
	copied[0] = fedtest.Member(t, 700, 701, 702)
	require.False(t, p.Members().Contains(copied[0]))
}

func TestPendingCopiesInput(t *testing.T) {
	members := fedtest.Members(t, sixSeeds...)
	p, err := federation.NewPending(members)
	require.NoError(t, err)
	before, err := p.Hash()
	require.NoError(t, err)

	members[0] = fedtest.Member(t, 700, 701, 702)
	require.False(t, p.Members().Contains(members[0]))
	after, err := p.Hash()
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestPendingCanonicalOrder(t *testing.T) {
	members := fedtest.Members(t, sixSeeds...)
	reversed := slices.Clone(members)
	slices.Reverse(reversed)

	a, err := federation.NewPending(members)
	require.NoError(t, err)
	b, err := federation.NewPending(reversed)
	require.NoError(t, err)
	require.True(t, a.Equal(b))

	keys := a.CustodyKeys()
	require.True(t, slices.IsSortedFunc(keys, func(x, y *signing.PublicKey) int { return x.Compare(y) }))
	for i, m := range a.Members().All() {
		require.True(t, keys[i].Equals(m.CustodyKey()))
		require.True(t, a.Members().At(i).Equal(m))
	}
}

func TestPendingIsComplete(t *testing.T) {
	require.True(t, fedtest.Pending(t, sixSeeds).IsComplete())
	require.True(t, fedtest.Pending(t, []uint64{100, 200}).IsComplete())
	require.False(t, fedtest.Pending(t, []uint64{100}).IsComplete())

	strict := fedtest.Pending(t, []uint64{100, 200}, federation.WithMinMembers(3))
	require.False(t, strict.IsComplete())
	require.True(t, fedtest.Pending(t, []uint64{100, 200, 300}, federation.WithMinMembers(3)).IsComplete())

	_, err := federation.NewPending(fedtest.Members(t, 100), federation.WithMinMembers(0))
	require.Error(t, err)

	full := fedtest.Members(t, 100, 200, 300)
	_, err = federation.NewPending(full, federation.WithMinMembers(federation.MaxMembers))
	require.NoError(t, err)
	_, err = federation.NewPending(full, federation.WithMinMembers(federation.MaxMembers+1))
	require.ErrorContains(t, err, "minimum members must be within 1..15")
}

func TestPendingEqual(t *testing.T) {
	p := fedtest.Pending(t, sixSeeds)
	require.True(t, p.Equal(p))
	require.False(t, p.Equal(nil))
	var none *federation.Pending
	require.True(t, none.Equal(nil))

	t.Run("different count", func(t *testing.T) {
		other := fedtest.Pending(t, []uint64{100, 200, 300, 400, 500, 600, 700})
		require.False(t, p.Equal(other))
		require.False(t, other.Equal(p))
	})
	t.Run("different members", func(t *testing.T) {
		base := fedtest.Members(t, 100, 200, 300, 400, 500)
		a, err := federation.NewPending(append(slices.Clone(base), fedtest.Member(t, 610, 600, 620)))
		require.NoError(t, err)
		b, err := federation.NewPending(append(slices.Clone(base), fedtest.Member(t, 600, 610, 630)))
		require.NoError(t, err)
		require.False(t, a.Equal(b))
		require.False(t, b.Equal(a))
	})
	t.Run("same members", func(t *testing.T) {
		a := fedtest.Pending(t, sixSeeds)
		b := fedtest.Pending(t, sixSeeds)
		c := fedtest.Pending(t, sixSeeds)
		require.True(t, a.Equal(b))
		require.True(t, b.Equal(a))
		require.True(t, b.Equal(c))
		require.True(t, a.Equal(c))
	})
}

func TestPendingString(t *testing.T) {
	require.Equal(t, "6 signatures pending federation (complete)", fedtest.Pending(t, sixSeeds).String())
	require.Equal(t, "1 signatures pending federation (incomplete)", fedtest.Pending(t, []uint64{100}).String())
}

func TestBuildFederation(t *testing.T) {
	for _, tc := range []struct {
		desc     string
		seeds    []uint64
		required int
	}{
		{desc: "six members", seeds: sixSeeds, required: 4},
		{desc: "nine members", seeds: nineSeeds, required: 5},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()
			net := network.MustFromID(network.RegTest)
			activation := time.UnixMilli(1234)
			p := fedtest.Pending(t, tc.seeds, federation.WithLogger(logtest.New(t)))

			built, err := p.BuildFederation(activation, 0, net)
			require.NoError(t, err)

			expected, err := federation.New(fedtest.Members(t, tc.seeds...), activation, 0, net)
			require.NoError(t, err)
			require.True(t, expected.Equal(built))
			require.Equal(t, tc.required, built.RequiredSignatures())
			for i, m := range built.Members().All() {
				require.True(t, p.Members().At(i).Equal(m))
			}
		})
	}
}

func TestBuildIncompleteFederation(t *testing.T) {
	p := fedtest.Pending(t, []uint64{100}, federation.WithLogger(logtest.New(t)))
	fed, err := p.BuildFederation(time.UnixMilli(1234), 0, network.MustFromID(network.RegTest))
	require.ErrorIs(t, err, federation.ErrIncompleteFederation)
	require.EqualError(t, err, "PendingFederation is incomplete")
	require.Nil(t, fed)
}

func TestBuildIncompleteIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	p := fedtest.Pending(t, []uint64{100}, federation.WithLogger(log.NewFromLog(zap.New(core))))
	_, err := p.BuildFederation(time.UnixMilli(1234), 0, network.MustFromID(network.RegTest))
	require.Error(t, err)
	require.Equal(t, 1, logs.FilterMessage("pending federation is incomplete").Len())
}

func TestBuildIncompleteChecksBeforeNetwork(t *testing.T) {
	p := fedtest.Pending(t, []uint64{100})
	_, err := p.BuildFederation(time.UnixMilli(1234), 0, nil)
	require.ErrorIs(t, err, federation.ErrIncompleteFederation)
}

func TestBuildInvalidNetwork(t *testing.T) {
	p := fedtest.Pending(t, sixSeeds)
	_, err := p.BuildFederation(time.UnixMilli(1234), 0, &network.Params{})
	require.ErrorIs(t, err, federation.ErrInvalidNetworkContext)
}

func TestPendingHash(t *testing.T) {
	t.Run("uses serializer", func(t *testing.T) {
		serializer := federation.NewMockSerializer(gomock.NewController(t))
		p := fedtest.Pending(t, sixSeeds, federation.WithSerializer(serializer))
		serializer.EXPECT().SerializeCustodyKeys(p).Return([]byte{0xaa}, nil)
		h, err := p.Hash()
		require.NoError(t, err)
		require.Equal(t, types.Hash32(hash.Keccak256([]byte{0xaa})), h)
	})
	t.Run("uses hasher", func(t *testing.T) {
		fixed := types.Hash32{1, 2, 3}
		p := fedtest.Pending(t, sixSeeds, federation.WithHasher(func([]byte) types.Hash32 { return fixed }))
		h, err := p.Hash()
		require.NoError(t, err)
		require.Equal(t, fixed, h)
	})
	t.Run("serializer failure", func(t *testing.T) {
		boom := errors.New("boom")
		p := fedtest.Pending(t, sixSeeds, federation.WithSerializer(federation.SerializerFunc(
			func(*federation.Pending) ([]byte, error) { return nil, boom },
		)))
		_, err := p.Hash()
		require.ErrorIs(t, err, boom)
	})
	t.Run("deterministic", func(t *testing.T) {
		a, err := fedtest.Pending(t, sixSeeds).Hash()
		require.NoError(t, err)
		b, err := fedtest.Pending(t, sixSeeds).Hash()
		require.NoError(t, err)
		require.Equal(t, a, b)
		require.False(t, a.Empty())
	})
	t.Run("only custody keys", func(t *testing.T) {
		a, err := federation.NewPending([]federation.Member{fedtest.Member(t, 100, 1, 2), fedtest.Member(t, 200, 3, 4)})
		require.NoError(t, err)
		b, err := federation.NewPending([]federation.Member{fedtest.Member(t, 100, 5, 6), fedtest.Member(t, 200, 7, 8)})
		require.NoError(t, err)
		require.False(t, a.Equal(b))
		ha, err := a.Hash()
		require.NoError(t, err)
		hb, err := b.Hash()
		require.NoError(t, err)
		require.Equal(t, ha, hb)
	})
	t.Run("custody key change", func(t *testing.T) {
		a, err := fedtest.Pending(t, sixSeeds).Hash()
		require.NoError(t, err)
		b, err := fedtest.Pending(t, []uint64{100, 200, 300, 400, 500, 601}).Hash()
		require.NoError(t, err)
		require.NotEqual(t, a, b)
	})
}

func TestScaleSerializer(t *testing.T) {
	p := fedtest.Pending(t, sixSeeds)
	buf, err := federation.ScaleSerializer{}.SerializeCustodyKeys(p)
	require.NoError(t, err)
	// compact length prefix for 6 is a single byte: 6 << 2.
	require.Len(t, buf, 1+6*33)
	require.Equal(t, byte(6<<2), buf[0])
	for i, key := range p.CustodyKeys() {
		require.Equal(t, key.Bytes(), buf[1+i*33:1+(i+1)*33])
	}
}

func TestPendingConcurrentReaders(t *testing.T) {
	p := fedtest.Pending(t, nineSeeds)
	expected, err := p.Hash()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h, err := p.Hash()
			assert.NoError(t, err)
			assert.Equal(t, expected, h)
			assert.True(t, p.IsComplete())
			assert.Equal(t, 9, p.Members().Len())
		}()
	}
	wg.Wait()
}
