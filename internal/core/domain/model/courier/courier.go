package courier

import (
	"errors"

	"medrush/internal/core/domain/model/kernel"
	"medrush/internal/pkg/errs"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through NewCourier or RestoreCourier.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier")

// Courier represents a registered delivery courier. For route assignment the
// courier is the vehicle: batch optimization builds one optimizer vehicle per
// courier, labelled by the courier's ID.
//
// Courier selection for a batch run is a bounded "first N in region" lookup
// with no fairness or rotation guarantee.
type Courier struct {
	id     kernel.UUID
	name   string
	region string

	isConstructed bool
}

// NewCourier creates a courier registered in a dispatch region.
func NewCourier(id kernel.UUID, name string, region string) (*Courier, error) {
	c := &Courier{
		isConstructed: true,
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setRegion(region),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(id kernel.UUID, name string, region string) (*Courier, error) {
	return NewCourier(id, name, region)
}

// Validate ensures the Courier was built through a constructor.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

// IsEqual compares two couriers by identity.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Region returns the dispatch region the courier serves.
func (c *Courier) Region() string {
	return c.region
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) setRegion(region string) error {
	if region == "" {
		return errs.NewValueIsRequiredError("region")
	}
	c.region = region
	return nil
}
