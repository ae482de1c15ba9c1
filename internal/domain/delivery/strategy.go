package delivery

import (
	"context"
	"errors"
	"fmt"

	"github.com/yavorskyi/shopcore/internal/domain/order"
)

var ErrUnknownMethod = errors.New("delivery: unknown delivery method")

// Method enumerates the selectable carriers.
type Method string

const (
	MethodNovaPoshta Method = "nova_poshta"
	MethodUkrposhta  Method = "ukrposhta"
)

// AddressSource supplies the destination post office. As with payment
// credentials, the interactive collection happens outside the core.
type AddressSource interface {
	Address(ctx context.Context) (string, error)
}

// StaticAddressSource is an AddressSource over an already collected address.
type StaticAddressSource string

func (s StaticAddressSource) Address(ctx context.Context) (string, error) {
	return string(s), nil
}

// Resolve maps a method to its carrier strategy, fixed per order.
func Resolve(method Method, addresses AddressSource) (order.DeliveryStrategy, error) {
	switch method {
	case MethodNovaPoshta:
		return &carrier{method: MethodNovaPoshta, addresses: addresses}, nil
	case MethodUkrposhta:
		return &carrier{method: MethodUkrposhta, addresses: addresses}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
}

// carrier collects a post office reference and retains it for display. Both
// carriers share the mechanics and differ only in name.
type carrier struct {
	method     Method
	addresses  AddressSource
	postOffice string
}

func (c *carrier) CollectAddress(ctx context.Context) (string, error) {
	address, err := c.addresses.Address(ctx)
	if err != nil {
		return "", fmt.Errorf("delivery: collect post office: %w", err)
	}
	c.postOffice = address
	return c.postOffice, nil
}

func (c *carrier) Name() string { return string(c.method) }
