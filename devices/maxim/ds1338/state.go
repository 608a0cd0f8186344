package ds1338

import (
	"encoding/binary"
	"fmt"
	"io"
	"runtime"

	"github.com/pkg/errors"
)

// Snapshot schema versions. Version 1 predates the weekday numbering
// shift; loading it leaves wdayOffset at zero.
const (
	stateVersion1 = 1
	stateVersion2 = 2
)

// SaveState writes the device state to the given stream.
func (d *Device) SaveState(w io.Writer) (err error) {
	d.m.Lock()
	defer d.m.Unlock()
	defer recoverOnPanic(&err)

	writeU8(w, stateVersion2)
	writeI64(w, d.regs.offset)
	writeU8(w, d.regs.wdayOffset)
	writeRaw(w, d.regs.nvram[:])
	writeI32(w, int32(d.regs.ptr))
	writeBool(w, d.regs.addrByte)
	return
}

// LoadState restores device state from the given stream.
// Current and version 1 snapshots are both accepted; any other
// version is an error and leaves the device untouched.
func (d *Device) LoadState(r io.Reader) (err error) {
	d.m.Lock()
	defer d.m.Unlock()
	defer recoverOnPanic(&err)

	regs := registers{src: d.regs.src}

	switch version := readU8(r); version {
	case stateVersion1:
		regs.offset = readI64(r)
		readRaw(r, regs.nvram[:])
		regs.ptr = int(readI32(r))
		regs.addrByte = readBool(r)
	case stateVersion2:
		regs.offset = readI64(r)
		regs.wdayOffset = readU8(r)
		readRaw(r, regs.nvram[:])
		regs.ptr = int(readI32(r))
		regs.addrByte = readBool(r)
	default:
		return errors.Errorf("ds1338: unknown snapshot version %d", version)
	}

	regs.ptr &= NVRAMSize - 1
	d.regs = regs
	return
}

func recoverOnPanic(err *error) {
	x := recover()
	if x == nil {
		return
	}

	switch tx := x.(type) {
	case runtime.Error:
		panic(tx)
	case error:
		*err = errors.Wrapf(tx, "ds1338")
	default:
		*err = fmt.Errorf("ds1338: %v", tx)
	}
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

var endian = binary.LittleEndian

func readU8(r io.Reader) (v uint8) {
	check(binary.Read(r, endian, &v))
	return
}

func readI32(r io.Reader) (v int32) {
	check(binary.Read(r, endian, &v))
	return
}

func readI64(r io.Reader) (v int64) {
	check(binary.Read(r, endian, &v))
	return
}

func readBool(r io.Reader) bool {
	return readU8(r) != 0
}

func readRaw(r io.Reader, p []byte) {
	_, err := io.ReadFull(r, p)
	check(err)
}

func writeU8(w io.Writer, v uint8) {
	check(binary.Write(w, endian, v))
}

func writeI32(w io.Writer, v int32) {
	check(binary.Write(w, endian, v))
}

func writeI64(w io.Writer, v int64) {
	check(binary.Write(w, endian, v))
}

func writeBool(w io.Writer, v bool) {
	if v {
		writeU8(w, 1)
	} else {
		writeU8(w, 0)
	}
}

func writeRaw(w io.Writer, p []byte) {
	_, err := w.Write(p)
	check(err)
}
