package ds1338

import "github.com/hexaflex/rtc/timedate"

// Register addresses. Everything past RegControl is general nvram.
const (
	RegSeconds = iota
	RegMinutes
	RegHours
	RegWday
	RegMday
	RegMonth
	RegYear
	RegControl
)

// NVRAMSize is the size of the chip's addressable storage, time and
// control registers included.
const NVRAMSize = 64

const (
	// Hours12 selects 12-hour mode in the hour register.
	Hours12 = 0x40

	// HoursPM marks the afternoon in 12-hour mode.
	HoursPM = 0x20

	// CtrlOSF is the oscillator stop flag in the control register.
	CtrlOSF = 0x20

	// ctrlMask covers the implemented control register bits.
	ctrlMask = 0xb3
)

// registers is the chip's addressable state: seven time/calendar
// registers, the control byte and 56 bytes of general nvram, plus the
// register pointer and the clock anchoring values.
//
// The chip keeps no running clock of its own. It stores offset, the
// distance in seconds between the host clock and the time the master
// last wrote, and renders the time registers from host clock + offset
// on demand. wdayOffset likewise shifts the host's weekday to whatever
// numbering the master assigned.
type registers struct {
	src timedate.Source

	offset     int64 // Seconds between host clock and chip time.
	wdayOffset uint8 // Weekday numbering shift, mod 7.
	nvram      [NVRAMSize]byte
	ptr        int  // Current register address.
	addrByte   bool // Next master byte sets ptr instead of data.
}

// captureTime latches host clock + offset into the time registers.
// The control byte and general nvram are left alone.
func (r *registers) captureTime() {
	now := r.src.Now(r.offset)

	r.nvram[RegSeconds] = ToBCD(now.Sec)
	r.nvram[RegMinutes] = ToBCD(now.Min)

	if r.nvram[RegHours]&Hours12 != 0 {
		hour := now.Hour
		if hour%12 == 0 {
			hour += 12
		}
		if hour <= 12 {
			r.nvram[RegHours] = Hours12 | ToBCD(hour)
		} else {
			r.nvram[RegHours] = Hours12 | HoursPM | ToBCD(hour-12)
		}
	} else {
		r.nvram[RegHours] = ToBCD(now.Hour)
	}

	r.nvram[RegWday] = byte((now.Wday+int(r.wdayOffset))%7 + 1)
	r.nvram[RegMday] = ToBCD(now.Mday)
	r.nvram[RegMonth] = ToBCD(now.Mon + 1)
	r.nvram[RegYear] = ToBCD(now.Year - 100)
}

// incPtr advances the register pointer, wrapping past the end.
// A wrap latches the time registers anew, like the real chip
// re-latching the clock after a full pass over the address space.
func (r *registers) incPtr() {
	r.ptr = (r.ptr + 1) & (NVRAMSize - 1)
	if r.ptr == 0 {
		r.captureTime()
	}
}

// readReg returns the register at the pointer, without side effects.
func (r *registers) readReg() byte {
	return r.nvram[r.ptr]
}

// setPtr moves the register pointer.
func (r *registers) setPtr(data byte) {
	r.ptr = int(data & (NVRAMSize - 1))
}

// writeTime applies a master write to one time/calendar register.
// Each write re-anchors offset so the mutated field holds while the
// remaining fields keep following the host clock. Weekday writes only
// move the weekday numbering, never the clock.
func (r *registers) writeTime(addr int, data byte) {
	now := r.src.Now(r.offset)

	switch addr {
	case RegSeconds:
		now.Sec = FromBCD(data & 0x7f)
	case RegMinutes:
		now.Min = FromBCD(data & 0x7f)
	case RegHours:
		if data&Hours12 != 0 {
			hour := FromBCD(data & (HoursPM - 1))
			if data&HoursPM != 0 {
				hour += 12
			}
			if hour%12 == 0 {
				hour -= 12
			}
			now.Hour = hour
		} else {
			now.Hour = FromBCD(data & (Hours12 - 1))
		}
	case RegWday:
		user := int(data&7) - 1
		r.wdayOffset = uint8((user - now.Wday + 7) % 7)
		return
	case RegMday:
		now.Mday = FromBCD(data & 0x3f)
	case RegMonth:
		now.Mon = FromBCD(data&0x1f) - 1
	case RegYear:
		now.Year = FromBCD(data) + 100
	}

	r.offset = r.src.Diff(now)
}

// writeControl applies a master write to the control register.
// Unimplemented bits read back as zero. The oscillator stop flag is a
// latch: a write can set it or leave it set, never clear it.
func (r *registers) writeControl(data byte) {
	data &= ctrlMask
	data = (data &^ CtrlOSF) | ((r.nvram[r.ptr] | data) & CtrlOSF)
	r.nvram[r.ptr] = data
}

// writeNvram applies a master write to general nvram.
func (r *registers) writeNvram(data byte) {
	r.nvram[r.ptr] = data
}

// reset returns the register file to its power-on state.
func (r *registers) reset() {
	r.offset = 0
	r.wdayOffset = 0
	r.ptr = 0
	r.addrByte = false
	for i := range r.nvram {
		r.nvram[i] = 0
	}
}
