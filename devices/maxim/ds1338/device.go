// Package ds1338 emulates the Maxim DS1338, a battery-backed two-wire
// real-time clock with 56 bytes of general nvram.
package ds1338

import (
	"sync"

	"github.com/hexaflex/rtc/devices"
	"github.com/hexaflex/rtc/i2c"
	"github.com/hexaflex/rtc/timedate"
)

// DefaultAddress is the chip's fixed 7-bit bus address.
const DefaultAddress = 0x68

// Device defines all internal doodads for the clock chip.
type Device struct {
	m    sync.Mutex
	regs registers
}

var _ devices.Device = &Device{}
var _ i2c.Slave = &Device{}

// New creates a new device reading time from the given source.
func New(src timedate.Source) *Device {
	return &Device{regs: registers{src: src}}
}

// ID returns the device id.
func (d *Device) ID() devices.ID {
	return devices.NewID(0x19b8, 0x1338)
}

// Startup initializes device resources.
func (d *Device) Startup() error {
	return nil
}

// Shutdown cleans up device resources.
func (d *Device) Shutdown() error {
	return nil
}

// Reset returns the chip to its power-on state: pointer at zero, all
// storage cleared and the clock tracking the host again.
func (d *Device) Reset() {
	d.m.Lock()
	defer d.m.Unlock()

	d.regs.reset()
}

// Event handles a bus state transition.
func (d *Device) Event(ev i2c.Event) i2c.Result {
	d.m.Lock()
	defer d.m.Unlock()

	switch ev {
	case i2c.StartRecv:
		// Latch a fresh snapshot for the read burst to come.
		d.regs.captureTime()
	case i2c.StartSend:
		d.regs.addrByte = true
	}

	return i2c.ACK
}

// Send handles a data byte written by the master. The first byte
// after a send start sets the register pointer; every later byte is a
// register write at the pointer, which then advances. The chip never
// declines a write.
func (d *Device) Send(data byte) i2c.Result {
	d.m.Lock()
	defer d.m.Unlock()

	if d.regs.addrByte {
		d.regs.setPtr(data)
		d.regs.addrByte = false
		return i2c.ACK
	}

	switch {
	case d.regs.ptr < RegControl:
		d.regs.writeTime(d.regs.ptr, data)
	case d.regs.ptr == RegControl:
		d.regs.writeControl(data)
	default:
		d.regs.writeNvram(data)
	}

	d.regs.incPtr()
	return i2c.ACK
}

// Recv handles a data byte requested by the master. It returns the
// register at the pointer, which then advances.
func (d *Device) Recv() byte {
	d.m.Lock()
	defer d.m.Unlock()

	data := d.regs.readReg()
	d.regs.incPtr()
	return data
}
