package election

import "errors"

var (
	// ErrUnauthorized is returned for a voter outside of the authorized set.
	ErrUnauthorized = errors.New("voter is not authorized")
	// ErrNotVotable is returned for an incomplete pending federation.
	ErrNotVotable = errors.New("pending federation is not votable")
	// ErrAlreadyVoted is returned when a voter votes twice for the same proposal.
	ErrAlreadyVoted = errors.New("already voted for this proposal")
	// ErrAlreadyActivated is returned for a proposal that was built before.
	ErrAlreadyActivated = errors.New("proposal was already activated")
	// ErrConflictingProposal is returned for a vote on a pending federation
	// whose custody keys match an open proposal but whose members differ.
	ErrConflictingProposal = errors.New("conflicting proposal for the same custody keys")
	// ErrNoWinner is returned by Activate when no proposal has enough votes.
	ErrNoWinner = errors.New("no proposal has enough votes")
)
