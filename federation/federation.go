package federation

import (
	"bytes"
	"fmt"
	"slices"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/hash"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/signing"
)

type conf struct {
	threshold ThresholdPolicy
}

// Opt configures a Federation.
type Opt func(*conf)

// WithThresholdPolicy overrides MajorityThreshold.
func WithThresholdPolicy(policy ThresholdPolicy) Opt {
	return func(c *conf) {
		c.threshold = policy
	}
}

// Federation is an active federation: the members, the moment it becomes
// effective and the custody scripts derived from its custody keys.
// It is immutable and safe for concurrent use.
type Federation struct {
	members          []Member
	activationTime   time.Time
	activationHeight uint64
	network          *network.Params
	required         int

	redeemScript []byte
	pkScript     []byte
	address      *btcutil.AddressScriptHash
	witness      *btcutil.AddressWitnessScriptHash
}

// New creates a federation and derives its custody scripts and addresses.
// Members are copied and kept in canonical order.
func New(
	members []Member,
	activationTime time.Time,
	activationHeight uint64,
	net *network.Params,
	opts ...Opt,
) (*Federation, error) {
	c := conf{threshold: MajorityThreshold}
	for _, opt := range opts {
		opt(&c)
	}
	sorted, err := canonicalize(members)
	if err != nil {
		return nil, err
	}
	if err := network.Validate(net); err != nil {
		return nil, err
	}
	required := c.threshold(len(sorted))
	if required < 1 || required > len(sorted) {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidThreshold, required, len(sorted))
	}
	script, err := redeemScript(sorted, required)
	if err != nil {
		return nil, err
	}
	address, err := btcutil.NewAddressScriptHash(script, net.Chain())
	if err != nil {
		return nil, fmt.Errorf("derive p2sh address: %w", err)
	}
	pkScript, err := txscript.PayToAddrScript(address)
	if err != nil {
		return nil, fmt.Errorf("derive output script: %w", err)
	}
	digest := hash.Sum256(script)
	witness, err := btcutil.NewAddressWitnessScriptHash(digest[:], net.Chain())
	if err != nil {
		return nil, fmt.Errorf("derive p2wsh address: %w", err)
	}
	return &Federation{
		members:          sorted,
		activationTime:   activationTime.Round(0),
		activationHeight: activationHeight,
		network:          net,
		required:         required,
		redeemScript:     script,
		pkScript:         pkScript,
		address:          address,
		witness:          witness,
	}, nil
}

// Members returns a read-only view of the members in canonical order.
func (f *Federation) Members() MemberView { return MemberView{members: f.members} }

// Size returns the number of members.
func (f *Federation) Size() int { return len(f.members) }

// RequiredSignatures returns the number of custody signatures needed to spend.
func (f *Federation) RequiredSignatures() int { return f.required }

// ActivationTime returns the moment the federation becomes effective.
func (f *Federation) ActivationTime() time.Time { return f.activationTime }

// ActivationHeight returns the host chain height the federation was created at.
func (f *Federation) ActivationHeight() uint64 { return f.activationHeight }

// Network returns the network the custody addresses are encoded for.
func (f *Federation) Network() *network.Params { return f.network }

// RedeemScript returns a copy of the multisig redeem script.
func (f *Federation) RedeemScript() []byte { return slices.Clone(f.redeemScript) }

// PkScript returns a copy of the pay-to-script-hash output script.
func (f *Federation) PkScript() []byte { return slices.Clone(f.pkScript) }

// Address returns the encoded pay-to-script-hash custody address.
func (f *Federation) Address() string { return f.address.EncodeAddress() }

// WitnessAddress returns the encoded pay-to-witness-script-hash custody address.
func (f *Federation) WitnessAddress() string { return f.witness.EncodeAddress() }

// CustodyKeys returns the custody keys in redeem script order.
func (f *Federation) CustodyKeys() []*signing.PublicKey { return f.Members().CustodyKeys() }

// HasCustodyKey reports whether key is a custody key of a member.
func (f *Federation) HasCustodyKey(key *signing.PublicKey) bool {
	return f.CustodyKeyIndex(key) >= 0
}

// CustodyKeyIndex returns the position of key in the redeem script or -1.
func (f *Federation) CustodyKeyIndex(key *signing.PublicKey) int {
	return slices.IndexFunc(f.members, func(m Member) bool {
		return m.custody.Equals(key)
	})
}

// HasMemberWithHostAddress reports whether a member's host key controls address.
func (f *Federation) HasMemberWithHostAddress(address types.Address) bool {
	return slices.ContainsFunc(f.members, func(m Member) bool {
		return m.HostAddress() == address
	})
}

// ID identifies the federation by its network and redeem script.
func (f *Federation) ID() types.Hash32 {
	return types.Hash32(hash.Keccak256([]byte(f.network.ID()), f.redeemScript))
}

// Equal compares members, activation and network.
func (f *Federation) Equal(o *Federation) bool {
	if f == nil || o == nil {
		return f == o
	}
	if f == o {
		return true
	}
	if len(f.members) != len(o.members) ||
		f.required != o.required ||
		f.activationHeight != o.activationHeight ||
		!f.activationTime.Equal(o.activationTime) ||
		!f.network.Equal(o.network) ||
		!bytes.Equal(f.redeemScript, o.redeemScript) {
		return false
	}
	for i := range f.members {
		if !f.members[i].Equal(o.members[i]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (f *Federation) String() string {
	return fmt.Sprintf("%d of %d signatures federation", f.required, len(f.members))
}

// Field returns a log field. Implements the LoggableField interface.
func (f *Federation) Field() log.Field {
	return log.String("federation", f.ID().ShortString())
}
