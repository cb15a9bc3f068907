package federation

import (
	"fmt"
	"time"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/network"
	"github.com/pegfed/go-pegfed/signing"
)

type pendingConf struct {
	minMembers int
	serializer Serializer
	hasher     Hasher
	logger     log.Log
}

// PendingOpt configures a Pending federation.
type PendingOpt func(*pendingConf)

// WithMinMembers overrides DefaultMinMembers.
func WithMinMembers(n int) PendingOpt {
	return func(c *pendingConf) {
		c.minMembers = n
	}
}

// WithSerializer overrides the custody key serializer used by Hash.
func WithSerializer(s Serializer) PendingOpt {
	return func(c *pendingConf) {
		c.serializer = s
	}
}

// WithHasher overrides the hash function used by Hash.
func WithHasher(h Hasher) PendingOpt {
	return func(c *pendingConf) {
		c.hasher = h
	}
}

// WithLogger sets the logger used when building a federation.
func WithLogger(logger log.Log) PendingOpt {
	return func(c *pendingConf) {
		c.logger = logger
	}
}

// Pending is a proposed federation that members are still being gathered for.
// It is immutable and safe for concurrent use.
type Pending struct {
	members []Member
	conf    pendingConf
}

// NewPending creates a pending federation. Members are copied and kept in
// canonical order, so the input order has no effect on equality or hash.
func NewPending(members []Member, opts ...PendingOpt) (*Pending, error) {
	conf := pendingConf{
		minMembers: DefaultMinMembers,
		serializer: ScaleSerializer{},
		hasher:     Keccak256Hasher,
		logger:     log.NewNop(),
	}
	for _, opt := range opts {
		opt(&conf)
	}
	if conf.minMembers < 1 || conf.minMembers > MaxMembers {
		return nil, fmt.Errorf("minimum members must be within 1..%d, got %d", MaxMembers, conf.minMembers)
	}
	sorted, err := canonicalize(members)
	if err != nil {
		return nil, err
	}
	return &Pending{members: sorted, conf: conf}, nil
}

// Members returns a read-only view of the members.
func (p *Pending) Members() MemberView { return MemberView{members: p.members} }

// Size returns the number of members.
func (p *Pending) Size() int { return len(p.members) }

// CustodyKeys returns the custody keys in canonical order.
func (p *Pending) CustodyKeys() []*signing.PublicKey { return p.Members().CustodyKeys() }

// IsComplete returns true once the pending federation has enough members
// to be built.
func (p *Pending) IsComplete() bool { return len(p.members) >= p.conf.minMembers }

// Equal compares member lists. Two pending federations with the same
// members in any input order are equal.
func (p *Pending) Equal(o *Pending) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p == o {
		return true
	}
	if len(p.members) != len(o.members) {
		return false
	}
	for i := range p.members {
		if !p.members[i].Equal(o.members[i]) {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (p *Pending) String() string {
	state := "incomplete"
	if p.IsComplete() {
		state = "complete"
	}
	return fmt.Sprintf("%d signatures pending federation (%s)", len(p.members), state)
}

// Hash returns the identity hash of the pending federation, computed over
// the serialized custody keys. Host and auth keys do not contribute.
func (p *Pending) Hash() (types.Hash32, error) {
	buf, err := p.conf.serializer.SerializeCustodyKeys(p)
	if err != nil {
		return types.EmptyHash32, fmt.Errorf("serialize custody keys: %w", err)
	}
	return p.conf.hasher(buf), nil
}

// BuildFederation creates the active federation with the pending members.
func (p *Pending) BuildFederation(
	activationTime time.Time,
	activationHeight uint64,
	net *network.Params,
	opts ...Opt,
) (*Federation, error) {
	logger := p.conf.logger.WithName("build")
	if !p.IsComplete() {
		buildsTotal.WithLabelValues(outcomeIncomplete).Inc()
		logger.With().Warning("pending federation is incomplete",
			log.Int("members", len(p.members)),
			log.Int("min_members", p.conf.minMembers),
		)
		return nil, ErrIncompleteFederation
	}
	fed, err := New(p.members, activationTime, activationHeight, net, opts...)
	if err != nil {
		buildsTotal.WithLabelValues(outcomeInvalid).Inc()
		logger.With().Warning("failed to build federation", log.Err(err))
		return nil, err
	}
	buildsTotal.WithLabelValues(outcomeOK).Inc()
	logger.With().Info("federation built",
		log.Int("members", fed.Size()),
		log.Int("required", fed.RequiredSignatures()),
		fed.Network(),
		log.Uint64("activation_height", activationHeight),
		log.String("address", fed.Address()),
	)
	return fed, nil
}
