package id

import "github.com/google/uuid"

// UUIDGenerator issues opaque identifiers for catalog entries, carts, and
// orders.
type UUIDGenerator struct{}

func NewUUIDGenerator() UUIDGenerator { return UUIDGenerator{} }

func (UUIDGenerator) NewID() string { return uuid.NewString() }
