package i2c

import "log"

// Bus contains the slaves connected to a two-wire bus and drives
// transfers on behalf of the master.
type Bus struct {
	slaves  map[byte]Slave
	current Slave
}

// NewBus creates a new, empty bus.
func NewBus() *Bus {
	return &Bus{slaves: make(map[byte]Slave)}
}

// Connect attaches the given slave at the given 7-bit address.
// Returns false if the address is already in use.
func (b *Bus) Connect(addr byte, s Slave) bool {
	addr &= 0x7f

	if _, ok := b.slaves[addr]; ok {
		return false
	}

	log.Printf("i2c: slave connected at %#02x", addr)
	b.slaves[addr] = s
	return true
}

// Find returns the slave at the given address, or nil.
func (b *Bus) Find(addr byte) Slave {
	return b.slaves[addr&0x7f]
}

// Start opens a transfer with the slave at the given address.
// When recv is true the master intends to read from the slave.
// Returns NACK if no slave answers at the address.
func (b *Bus) Start(addr byte, recv bool) Result {
	s := b.Find(addr)
	if s == nil {
		return NACK
	}

	ev := StartSend
	if recv {
		ev = StartRecv
	}

	b.current = s
	return s.Event(ev)
}

// Write sends a data byte to the slave addressed by the open transfer.
func (b *Bus) Write(data byte) Result {
	if b.current == nil {
		return NACK
	}
	return b.current.Send(data)
}

// Read requests a data byte from the slave addressed by the open transfer.
func (b *Bus) Read() (byte, Result) {
	if b.current == nil {
		return 0xff, NACK
	}
	return b.current.Recv(), ACK
}

// Stop closes the open transfer, if any.
func (b *Bus) Stop() {
	if b.current == nil {
		return
	}
	b.current.Event(Finish)
	b.current = nil
}
