package federation

import (
	"fmt"
	"slices"

	"github.com/spacemeshos/go-scale"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/signing"
)

const (
	// DefaultMinMembers is the smallest member count of a complete pending federation.
	DefaultMinMembers = 2
	// MaxMembers is the largest federation whose redeem script fits the
	// 520 byte script push limit with compressed custody keys.
	MaxMembers = 15
)

// Member is one custodian of a federation.
// The zero value is an absent member and is rejected by every constructor.
type Member struct {
	custody *signing.PublicKey
	host    *signing.PublicKey
	auth    *signing.PublicKey
}

// NewMember creates a member from its custody key (pegged chain), host signing
// key (host chain) and authorization key.
func NewMember(custody, host, auth *signing.PublicKey) (Member, error) {
	if custody == nil || host == nil || auth == nil {
		return Member{}, fmt.Errorf("%w: member is missing a key", ErrInvalidMembers)
	}
	return Member{custody: custody, host: host, auth: auth}, nil
}

// CustodyKey is the key used in the multisig redeem script on the pegged chain.
func (m Member) CustodyKey() *signing.PublicKey { return m.custody }

// HostKey is the member's signing key on the host chain.
func (m Member) HostKey() *signing.PublicKey { return m.host }

// AuthKey is the member's key for change authorization votes.
func (m Member) AuthKey() *signing.PublicKey { return m.auth }

// HostAddress is the host chain address controlled by the host key.
func (m Member) HostAddress() types.Address { return m.host.Address() }

// IsZero returns true for the absent member.
func (m Member) IsZero() bool {
	return m.custody == nil || m.host == nil || m.auth == nil
}

// Equal compares all three keys.
func (m Member) Equal(o Member) bool {
	return m.custody.Equals(o.custody) && m.host.Equals(o.host) && m.auth.Equals(o.auth)
}

// Compare orders members by custody key, then host key, then auth key.
func (m Member) Compare(o Member) int {
	if c := m.custody.Compare(o.custody); c != 0 {
		return c
	}
	if c := m.host.Compare(o.host); c != 0 {
		return c
	}
	return m.auth.Compare(o.auth)
}

// String implements fmt.Stringer.
func (m Member) String() string {
	if m.IsZero() {
		return "member{}"
	}
	return fmt.Sprintf("member{custody: %s, host: %s, auth: %s}",
		m.custody.ShortString(), m.host.ShortString(), m.auth.ShortString())
}

// Field returns a log field. Implements the LoggableField interface.
func (m Member) Field() log.Field {
	return log.String("member", m.custody.ShortString())
}

// EncodeScale implements scale codec interface.
func (m *Member) EncodeScale(e *scale.Encoder) (total int, err error) {
	for _, key := range []*signing.PublicKey{m.custody, m.host, m.auth} {
		n, err := scale.EncodeByteArray(e, key.Bytes())
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// DecodeScale implements scale codec interface.
func (m *Member) DecodeScale(d *scale.Decoder) (total int, err error) {
	keys := make([]*signing.PublicKey, 3)
	for i := range keys {
		var raw [signing.PublicKeySize]byte
		n, err := scale.DecodeByteArray(d, raw[:])
		if err != nil {
			return total, err
		}
		total += n
		keys[i], err = signing.NewPublicKey(raw[:])
		if err != nil {
			return total, err
		}
	}
	m.custody, m.host, m.auth = keys[0], keys[1], keys[2]
	return total, nil
}

// canonicalize validates members and returns a sorted copy.
func canonicalize(members []Member) ([]Member, error) {
	if len(members) == 0 {
		return nil, fmt.Errorf("%w: no members", ErrInvalidMembers)
	}
	if len(members) > MaxMembers {
		return nil, fmt.Errorf("%w: %d members, at most %d allowed", ErrInvalidMembers, len(members), MaxMembers)
	}
	for i, m := range members {
		if m.IsZero() {
			return nil, fmt.Errorf("%w: absent member at position %d", ErrInvalidMembers, i)
		}
	}
	sorted := slices.Clone(members)
	slices.SortFunc(sorted, Member.Compare)
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].custody.Equals(sorted[i].custody) {
			return nil, fmt.Errorf("%w: duplicate custody key %s", ErrInvalidMembers, sorted[i].custody.ShortString())
		}
	}
	return sorted, nil
}
