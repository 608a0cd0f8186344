package devices

import "fmt"

// ID identifies a device.
// The upper 16 bits hold the vendor id.
// The lower 16 bits hold the product number.
type ID uint32

// NewID creates a new id with the given components.
func NewID(vendor, product int) ID {
	return ID(vendor&0xffff)<<16 | ID(product&0xffff)
}

// Vendor returns the vendor component of the id.
func (id ID) Vendor() int {
	return int(id>>16) & 0xffff
}

// Product returns the product number component of the id.
func (id ID) Product() int {
	return int(id) & 0xffff
}

func (id ID) String() string {
	return fmt.Sprintf("%04x:%04x", id.Vendor(), id.Product())
}
