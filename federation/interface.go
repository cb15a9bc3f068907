package federation

//go:generate mockgen -typed -package=federation -destination=./mocks.go -source=./interface.go

// Serializer encodes the custody keys of a pending federation into the
// canonical byte sequence its identity hash is computed over.
type Serializer interface {
	SerializeCustodyKeys(*Pending) ([]byte, error)
}
