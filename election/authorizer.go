package election

import (
	"errors"
	"slices"

	"github.com/pegfed/go-pegfed/common/types"
)

// Authorizer is the fixed set of host addresses allowed to vote on
// federation changes.
type Authorizer struct {
	voters map[types.Address]struct{}
}

// NewAuthorizer creates an authorizer. Duplicate addresses are counted once.
func NewAuthorizer(voters []types.Address) (*Authorizer, error) {
	if len(voters) == 0 {
		return nil, errors.New("at least one voter is required")
	}
	a := &Authorizer{voters: make(map[types.Address]struct{}, len(voters))}
	for _, v := range voters {
		a.voters[v] = struct{}{}
	}
	return a, nil
}

// IsAuthorized reports whether voter may vote.
func (a *Authorizer) IsAuthorized(voter types.Address) bool {
	_, ok := a.voters[voter]
	return ok
}

// Size returns the number of distinct voters.
func (a *Authorizer) Size() int { return len(a.voters) }

// RequiredVotes is the simple majority of the voters.
func (a *Authorizer) RequiredVotes() int { return len(a.voters)/2 + 1 }

// Voters returns the authorized addresses in ascending order.
func (a *Authorizer) Voters() []types.Address {
	out := make([]types.Address, 0, len(a.voters))
	for v := range a.voters {
		out = append(out, v)
	}
	slices.SortFunc(out, types.Address.Compare)
	return out
}
