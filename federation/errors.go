package federation

import (
	"errors"

	"github.com/pegfed/go-pegfed/network"
)

var (
	// ErrInvalidMembers is returned for an empty member list, an absent member,
	// duplicate custody keys or more members than a redeem script can hold.
	ErrInvalidMembers = errors.New("invalid federation members")
	// ErrUnsupportedOperation is returned by every mutating method of a MemberView.
	ErrUnsupportedOperation = errors.New("unsupported operation on read-only members")
	// ErrIncompleteFederation is returned when building a pending federation
	// that does not have enough members yet.
	ErrIncompleteFederation = errors.New("PendingFederation is incomplete")
	// ErrInvalidThreshold is returned when a threshold policy yields a signature
	// count outside of [1, members].
	ErrInvalidThreshold = errors.New("invalid signature threshold")
	// ErrInvalidNetworkContext is returned for an unknown network.
	ErrInvalidNetworkContext = network.ErrInvalidNetworkContext
)
