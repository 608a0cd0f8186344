// Package i2c implements a byte-level two-wire bus with addressable
// slave peripherals. Transactions are already decoded into discrete
// events; electrical and framing semantics are not modelled.
package i2c

// Event represents a bus state transition delivered to a slave.
type Event int

// Known bus events.
const (
	// StartRecv opens a transfer in which the master reads from the slave.
	StartRecv Event = iota

	// StartSend opens a transfer in which the master writes to the slave.
	StartSend

	// Finish closes the current transfer.
	Finish
)

// Result is a slave's acknowledgement of a bus interaction.
type Result int

// Known acknowledgement results.
const (
	ACK Result = iota
	NACK
)

func (r Result) String() string {
	if r == ACK {
		return "ACK"
	}
	return "NACK"
}

// Slave represents an addressable bus peripheral.
// All calls are delivered serially with respect to a given slave.
type Slave interface {
	// Event notifies the slave of a bus state transition.
	Event(Event) Result

	// Send delivers a data byte written by the master.
	Send(data byte) Result

	// Recv yields the next data byte requested by the master.
	Recv() byte
}
