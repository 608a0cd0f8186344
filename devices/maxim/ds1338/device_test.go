package ds1338

import (
	"testing"

	"github.com/hexaflex/rtc/i2c"
)

// newTestBus wires a device to a bus at its default address.
func newTestBus(t *testing.T) (*i2c.Bus, *Device) {
	t.Helper()

	d := New(newTestSource())
	b := i2c.NewBus()
	if !b.Connect(DefaultAddress, d) {
		t.Fatal("failed to connect device")
	}
	return b, d
}

// setPointer runs the addressing transaction that moves the register
// pointer.
func setPointer(t *testing.T, b *i2c.Bus, ptr byte) {
	t.Helper()

	if r := b.Start(DefaultAddress, false); r != i2c.ACK {
		t.Fatalf("Start = %v; want ACK", r)
	}
	if r := b.Write(ptr); r != i2c.ACK {
		t.Fatalf("pointer Write = %v; want ACK", r)
	}
	b.Stop()
}

func TestNvramWriteRead(t *testing.T) {
	//   START  W 0x09      ; pointer to nvram
	//          W 0x7f      ; plain data byte
	//   START  R           ; read it back

	b, _ := newTestBus(t)

	if r := b.Start(DefaultAddress, false); r != i2c.ACK {
		t.Fatalf("Start = %v; want ACK", r)
	}
	if r := b.Write(0x09); r != i2c.ACK {
		t.Fatalf("pointer Write = %v; want ACK", r)
	}
	if r := b.Write(0x7f); r != i2c.ACK {
		t.Fatalf("data Write = %v; want ACK", r)
	}
	b.Stop()

	setPointer(t, b, 0x09)
	b.Start(DefaultAddress, true)
	if data, _ := b.Read(); data != 0x7f {
		t.Fatalf("nvram read = %#02x; want 0x7f", data)
	}
	b.Stop()
}

func TestWeekdayAssignment(t *testing.T) {
	// Assign weekday 5 to the pinned Wednesday, then read it back.

	b, _ := newTestBus(t)

	b.Start(DefaultAddress, false)
	b.Write(RegWday)
	b.Write(5)
	b.Stop()

	setPointer(t, b, RegWday)
	b.Start(DefaultAddress, true)
	if data, _ := b.Read(); data != 5 {
		t.Fatalf("weekday read = %d; want 5", data)
	}
	b.Stop()
}

func TestReadBurst(t *testing.T) {
	// A receive start latches the clock; a full-length burst walks
	// the whole address space and wraps back to the time registers.

	b, d := newTestBus(t)
	d.regs.nvram[0x3f] = 0xab

	b.Start(DefaultAddress, true)
	var burst [NVRAMSize]byte
	for i := range burst {
		burst[i], _ = b.Read()
	}
	b.Stop()

	if burst[RegSeconds] != 0x45 || burst[RegHours] != 0x14 {
		t.Fatalf("time registers = %#02x %#02x; want 0x45 0x14",
			burst[RegSeconds], burst[RegHours])
	}
	if burst[0x3f] != 0xab {
		t.Fatalf("last byte = %#02x; want 0xab", burst[0x3f])
	}
	if d.regs.ptr != 0 {
		t.Fatalf("pointer = %d after full burst; want 0", d.regs.ptr)
	}
}

func TestControlWriteOverBus(t *testing.T) {
	b, d := newTestBus(t)

	b.Start(DefaultAddress, false)
	b.Write(RegControl)
	b.Write(0xff)
	b.Stop()

	if d.regs.nvram[RegControl] != ctrlMask {
		t.Fatalf("control = %#02x; want %#02x", d.regs.nvram[RegControl], ctrlMask)
	}

	b.Start(DefaultAddress, false)
	b.Write(RegControl)
	b.Write(0x00)
	b.Stop()

	if d.regs.nvram[RegControl] != CtrlOSF {
		t.Fatalf("control = %#02x; want %#02x", d.regs.nvram[RegControl], CtrlOSF)
	}
}

func TestReset(t *testing.T) {
	b, d := newTestBus(t)

	b.Start(DefaultAddress, false)
	b.Write(40)
	b.Write(0xab)
	b.Stop()
	setPointer(t, b, 40)

	if d.regs.nvram[40] != 0xab || d.regs.ptr != 40 {
		t.Fatalf("setup failed: nvram[40] = %#02x, ptr = %d", d.regs.nvram[40], d.regs.ptr)
	}

	d.Reset()

	if d.regs.ptr != 0 {
		t.Fatalf("ptr = %d after reset; want 0", d.regs.ptr)
	}
	if d.regs.nvram[40] != 0 {
		t.Fatalf("nvram[40] = %#02x after reset; want 0", d.regs.nvram[40])
	}
	if d.regs.addrByte {
		t.Fatal("addrByte still set after reset")
	}
	if d.regs.offset != 0 || d.regs.wdayOffset != 0 {
		t.Fatalf("clock anchors = %d, %d after reset; want 0, 0",
			d.regs.offset, d.regs.wdayOffset)
	}
}

func TestResetDuringAddressing(t *testing.T) {
	b, d := newTestBus(t)

	b.Start(DefaultAddress, false)
	d.Reset()

	// The byte that would have set the pointer is a plain register
	// write now.
	b.Write(0x09)
	if d.regs.ptr != 1 {
		t.Fatalf("ptr = %d; want 1", d.regs.ptr)
	}
	b.Stop()
}

func TestAlwaysAck(t *testing.T) {
	// The chip never declines anything it can interpret.
	b, _ := newTestBus(t)

	b.Start(DefaultAddress, false)
	for i := 0; i < NVRAMSize+8; i++ {
		if r := b.Write(byte(i)); r != i2c.ACK {
			t.Fatalf("Write %d = %v; want ACK", i, r)
		}
	}
	b.Stop()
}
