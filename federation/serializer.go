package federation

import (
	"github.com/spacemeshos/go-scale"

	"github.com/pegfed/go-pegfed/codec"
	"github.com/pegfed/go-pegfed/common/types"
	"github.com/pegfed/go-pegfed/hash"
	"github.com/pegfed/go-pegfed/signing"
)

// SerializerFunc adapts a function to the Serializer interface.
type SerializerFunc func(*Pending) ([]byte, error)

// SerializeCustodyKeys calls f(p).
func (f SerializerFunc) SerializeCustodyKeys(p *Pending) ([]byte, error) { return f(p) }

// ScaleSerializer encodes custody keys as a compact length followed by
// the 33 byte compressed keys, in canonical order.
type ScaleSerializer struct{}

// SerializeCustodyKeys implements Serializer.
func (ScaleSerializer) SerializeCustodyKeys(p *Pending) ([]byte, error) {
	return codec.Encode(custodyKeys(p.Members().CustodyKeys()))
}

type custodyKeys []*signing.PublicKey

// EncodeScale implements scale codec interface.
func (c custodyKeys) EncodeScale(e *scale.Encoder) (total int, err error) {
	{
		n, err := scale.EncodeCompact32(e, uint32(len(c)))
		if err != nil {
			return total, err
		}
		total += n
	}
	for _, key := range c {
		n, err := scale.EncodeByteArray(e, key.Bytes())
		if err != nil {
			return total, err
		}
		total += n
	}
	return total, nil
}

// Hasher computes the identity hash from the serialized custody keys.
type Hasher func([]byte) types.Hash32

// Keccak256Hasher is the default Hasher.
func Keccak256Hasher(data []byte) types.Hash32 {
	return types.Hash32(hash.Keccak256(data))
}
