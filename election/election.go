// Package election tallies authorized votes on pending federations and
// activates the winning proposal at most once.
package election

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/federation"
	"github.com/pegfed/go-pegfed/log"
	"github.com/pegfed/go-pegfed/network"
)

type proposal struct {
	pending *federation.Pending
	voters  map[types.Address]struct{}
}

// Opt configures an Election.
type Opt func(*Election)

// WithLogger sets the election logger.
func WithLogger(logger log.Log) Opt {
	return func(e *Election) {
		e.logger = logger
	}
}

// WithFederationOpts sets the options used when building the winner.
func WithFederationOpts(opts ...federation.Opt) Opt {
	return func(e *Election) {
		e.fedOpts = opts
	}
}

// Election collects votes for pending federations, identified by their hash.
// It is safe for concurrent use.
type Election struct {
	logger  log.Log
	auth    *Authorizer
	fedOpts []federation.Opt

	mu        sync.Mutex
	proposals map[types.Hash32]*proposal
	activated map[types.Hash32]struct{}
}

// New creates an election over the voters of auth.
func New(auth *Authorizer, opts ...Opt) *Election {
	e := &Election{
		logger:    log.NewNop(),
		auth:      auth,
		proposals: map[types.Hash32]*proposal{},
		activated: map[types.Hash32]struct{}{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Vote records a vote of voter for pending and returns the number of votes
// the proposal has.
func (e *Election) Vote(voter types.Address, pending *federation.Pending) (int, error) {
	if !e.auth.IsAuthorized(voter) {
		votesTotal.WithLabelValues("unauthorized").Inc()
		return 0, fmt.Errorf("%w: %s", ErrUnauthorized, voter)
	}
	if pending == nil || !pending.IsComplete() {
		votesTotal.WithLabelValues("not_votable").Inc()
		return 0, ErrNotVotable
	}
	id, err := pending.Hash()
	if err != nil {
		return 0, fmt.Errorf("hash proposal: %w", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.activated[id]; ok {
		votesTotal.WithLabelValues("activated").Inc()
		return 0, fmt.Errorf("%w: %s", ErrAlreadyActivated, id.ShortString())
	}
	p, ok := e.proposals[id]
	if !ok {
		p = &proposal{pending: pending, voters: map[types.Address]struct{}{}}
		e.proposals[id] = p
		openProposals.Set(float64(len(e.proposals)))
	} else if !p.pending.Equal(pending) {
		votesTotal.WithLabelValues("conflicting").Inc()
		return 0, fmt.Errorf("%w: %s", ErrConflictingProposal, id.ShortString())
	}
	if _, ok := p.voters[voter]; ok {
		votesTotal.WithLabelValues("duplicate").Inc()
		return len(p.voters), fmt.Errorf("%w: %s", ErrAlreadyVoted, voter)
	}
	p.voters[voter] = struct{}{}
	votesTotal.WithLabelValues("accepted").Inc()
	e.logger.With().Debug("vote accepted",
		voter,
		id,
		log.Int("votes", len(p.voters)),
		log.Int("required", e.auth.RequiredVotes()),
	)
	return len(p.voters), nil
}

// Tally returns the number of votes for the proposal with the given hash.
func (e *Election) Tally(id types.Hash32) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if p, ok := e.proposals[id]; ok {
		return len(p.voters)
	}
	return 0
}

// Winner returns the proposal with at least the required votes.
// When several qualify the one with most votes wins, ties go to the lowest hash.
func (e *Election) Winner() (*federation.Pending, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, p := e.winner()
	if p == nil {
		return nil, false
	}
	return p.pending, true
}

func (e *Election) winner() (types.Hash32, *proposal) {
	var (
		best   *proposal
		bestID types.Hash32
	)
	required := e.auth.RequiredVotes()
	for id, p := range e.proposals {
		if len(p.voters) < required {
			continue
		}
		if best == nil ||
			len(p.voters) > len(best.voters) ||
			len(p.voters) == len(best.voters) && bytes.Compare(id[:], bestID[:]) < 0 {
			best, bestID = p, id
		}
	}
	return bestID, best
}

// Activate builds the winning proposal, clears all open votes and marks
// the proposal as activated so that it is never built again.
func (e *Election) Activate(activationTime time.Time, activationHeight uint64, net *network.Params) (*federation.Federation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	id, p := e.winner()
	if p == nil {
		return nil, ErrNoWinner
	}
	fed, err := p.pending.BuildFederation(activationTime, activationHeight, net, e.fedOpts...)
	if err != nil {
		return nil, fmt.Errorf("activate %s: %w", id.ShortString(), err)
	}
	e.activated[id] = struct{}{}
	clear(e.proposals)
	openProposals.Set(0)
	activations.Inc()
	e.logger.With().Info("federation activated",
		id,
		fed,
		log.Int("votes", len(p.voters)),
		log.Uint64("activation_height", activationHeight),
	)
	return fed, nil
}

// IsActivated reports whether the proposal with the given hash was activated.
func (e *Election) IsActivated(id types.Hash32) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.activated[id]
	return ok
}
