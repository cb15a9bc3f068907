package federation

import (
	"iter"
	"slices"

	"github.com/pegfed/go-pegfed/signing"
)

// MemberView is a read-only view over the members of a federation.
// It never exposes the backing array: Slice returns a copy and every
// mutating method fails with ErrUnsupportedOperation.
type MemberView struct {
	members []Member
}

// Len returns the number of members.
func (v MemberView) Len() int { return len(v.members) }

// At returns the i-th member in canonical order.
func (v MemberView) At(i int) Member { return v.members[i] }

// All iterates over members in canonical order.
func (v MemberView) All() iter.Seq2[int, Member] {
	return func(yield func(int, Member) bool) {
		for i, m := range v.members {
			if !yield(i, m) {
				return
			}
		}
	}
}

// Slice returns a copy of the members.
func (v MemberView) Slice() []Member { return slices.Clone(v.members) }

// CustodyKeys returns the custody keys in canonical order.
func (v MemberView) CustodyKeys() []*signing.PublicKey {
	keys := make([]*signing.PublicKey, len(v.members))
	for i, m := range v.members {
		keys[i] = m.custody
	}
	return keys
}

// Contains reports whether m is one of the members.
func (v MemberView) Contains(m Member) bool {
	return slices.ContainsFunc(v.members, m.Equal)
}

// Append always fails: members of a federation are fixed at construction.
func (v MemberView) Append(...Member) error { return ErrUnsupportedOperation }

// RemoveAt always fails: members of a federation are fixed at construction.
func (v MemberView) RemoveAt(int) error { return ErrUnsupportedOperation }

// Set always fails: members of a federation are fixed at construction.
func (v MemberView) Set(int, Member) error { return ErrUnsupportedOperation }
