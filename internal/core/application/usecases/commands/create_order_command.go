package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errs.NewValueIsRequiredError("CreateOrderCommand")

// CreateOrderCommand registers a new order. The id comes from the caller (the
// basket id upstream) so that repeated requests can be detected.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(basketID, "Nesterova St.", 5)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck // pointer receivers only on private setters
	orderID kernel.UUID
	street  string
	volume  kernel.Volume

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(orderID kernel.UUID, street string, volume int) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setStreet(street),
		cmd.setVolume(volume),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Street is kept for the geocoding step; locations are currently drawn at random.
func (c CreateOrderCommand) Street() string {
	return c.street
}

func (c CreateOrderCommand) Volume() kernel.Volume {
	return c.volume
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("orderID", err)
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setStreet(street string) error {
	if strings.TrimSpace(street) == "" {
		return errs.NewValueIsRequiredError("street")
	}
	c.street = street
	return nil
}

func (c *CreateOrderCommand) setVolume(volume int) error {
	v, err := kernel.NewVolume(volume)
	if err != nil {
		return err
	}
	c.volume = v
	return nil
}
