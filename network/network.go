// Package network resolves network identifiers to the parameters of the
// pegged chain. Custody addresses are encoded differently on each network.
package network

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"

	"github.com/pegfed/go-pegfed/log"
)

// ErrInvalidNetworkContext is returned for an unknown network identifier
// or for parameters that do not come from this package.
var ErrInvalidNetworkContext = errors.New("invalid network context")

// ID identifies a network of the pegged chain.
type ID string

const (
	MainNet ID = "mainnet"
	TestNet ID = "testnet3"
	RegTest ID = "regtest"
	SigNet  ID = "signet"
	SimNet  ID = "simnet"
)

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Field returns a log field. Implements the LoggableField interface.
func (id ID) Field() log.Field { return log.String("network", string(id)) }

// Params is the network context: the identifier and the chain parameters
// used for address encoding.
type Params struct {
	id    ID
	chain *chaincfg.Params
}

var known = map[ID]*Params{
	MainNet: {id: MainNet, chain: &chaincfg.MainNetParams},
	TestNet: {id: TestNet, chain: &chaincfg.TestNet3Params},
	RegTest: {id: RegTest, chain: &chaincfg.RegressionNetParams},
	SigNet:  {id: SigNet, chain: &chaincfg.SigNetParams},
	SimNet:  {id: SimNet, chain: &chaincfg.SimNetParams},
}

// FromID resolves a network identifier.
func FromID(id ID) (*Params, error) {
	p, ok := known[id]
	if !ok {
		return nil, fmt.Errorf("%w: unknown network %q", ErrInvalidNetworkContext, id)
	}
	return p, nil
}

// MustFromID resolves a network identifier and panics if it is unknown.
func MustFromID(id ID) *Params {
	p, err := FromID(id)
	if err != nil {
		panic(err)
	}
	return p
}

// IDs returns every supported network identifier.
func IDs() []ID {
	return []ID{MainNet, TestNet, RegTest, SigNet, SimNet}
}

// Validate checks that p is one of the known network contexts.
func Validate(p *Params) error {
	if p == nil {
		return fmt.Errorf("%w: missing network", ErrInvalidNetworkContext)
	}
	resolved, err := FromID(p.id)
	if err != nil {
		return err
	}
	if resolved.chain != p.chain {
		return fmt.Errorf("%w: parameters of %q do not match", ErrInvalidNetworkContext, p.id)
	}
	return nil
}

// ID returns the network identifier.
func (p *Params) ID() ID { return p.id }

// Chain returns the chain parameters used for address encoding.
func (p *Params) Chain() *chaincfg.Params { return p.chain }

// Equal returns true if both refer to the same network.
func (p *Params) Equal(o *Params) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.id == o.id && p.chain == o.chain
}

// String implements fmt.Stringer.
func (p *Params) String() string { return string(p.id) }

// Field returns a log field. Implements the LoggableField interface.
func (p *Params) Field() log.Field { return p.id.Field() }
