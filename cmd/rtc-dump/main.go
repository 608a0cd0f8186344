package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/hexaflex/rtc/devices"
	"github.com/hexaflex/rtc/devices/maxim/ds1338"
	"github.com/hexaflex/rtc/i2c"
	"github.com/hexaflex/rtc/timedate"
)

func main() {
	config := parseArgs()

	dev := ds1338.New(timedate.System{})

	var dm devices.Map
	dm.Connect(dev)

	if err := dm.Startup(); err != nil {
		log.Fatal(err)
	}
	defer dm.Shutdown()

	bus := i2c.NewBus()
	bus.Connect(ds1338.DefaultAddress, dev)

	if len(config.Load) > 0 {
		if err := loadState(dev, config.Load); err != nil {
			log.Fatal(err)
		}
	}

	if !config.Set.IsZero() {
		setTime(bus, config.Set)
	}

	dump(bus)

	if len(config.Save) > 0 {
		if err := saveState(dev, config.Save); err != nil {
			log.Fatal(err)
		}
	}
}

// setTime writes the given instant into the time registers, the way a
// host driver would: one addressing byte, then a burst over all seven
// calendar registers.
func setTime(bus *i2c.Bus, t time.Time) {
	b := timedate.FromTime(t)

	bus.Start(ds1338.DefaultAddress, false)
	bus.Write(ds1338.RegSeconds)
	bus.Write(ds1338.ToBCD(b.Sec))
	bus.Write(ds1338.ToBCD(b.Min))
	bus.Write(ds1338.ToBCD(b.Hour))
	bus.Write(byte(b.Wday + 1))
	bus.Write(ds1338.ToBCD(b.Mday))
	bus.Write(ds1338.ToBCD(b.Mon + 1))
	bus.Write(ds1338.ToBCD(b.Year - 100))
	bus.Stop()
}

// dump reads the full address space over the bus and prints it, along
// with the decoded calendar time.
func dump(bus *i2c.Bus) {
	bus.Start(ds1338.DefaultAddress, false)
	bus.Write(ds1338.RegSeconds)
	bus.Stop()

	bus.Start(ds1338.DefaultAddress, true)
	var regs [ds1338.NVRAMSize]byte
	for i := range regs {
		regs[i], _ = bus.Read()
	}
	bus.Stop()

	fmt.Print(hex.Dump(regs[:]))
	spew.Dump(decode(regs[:]))
}

// decode unpacks the time registers for display.
func decode(regs []byte) timedate.Breakdown {
	hreg := regs[ds1338.RegHours]
	hour := ds1338.FromBCD(hreg & 0x3f)
	if hreg&ds1338.Hours12 != 0 {
		hour = ds1338.FromBCD(hreg & (ds1338.HoursPM - 1))
		if hreg&ds1338.HoursPM != 0 {
			hour += 12
		}
		if hour%12 == 0 {
			hour -= 12
		}
	}

	return timedate.Breakdown{
		Sec:  ds1338.FromBCD(regs[ds1338.RegSeconds] & 0x7f),
		Min:  ds1338.FromBCD(regs[ds1338.RegMinutes] & 0x7f),
		Hour: hour,
		Wday: int(regs[ds1338.RegWday]&7) - 1,
		Mday: ds1338.FromBCD(regs[ds1338.RegMday] & 0x3f),
		Mon:  ds1338.FromBCD(regs[ds1338.RegMonth]&0x1f) - 1,
		Year: ds1338.FromBCD(regs[ds1338.RegYear]) + 100,
	}
}

// loadState restores a device snapshot from file.
func loadState(dev *ds1338.Device, file string) error {
	fd, err := os.Open(file)
	if err != nil {
		return err
	}
	defer fd.Close()

	return errors.Wrapf(dev.LoadState(fd), "load %s", file)
}

// saveState writes a device snapshot to file.
func saveState(dev *ds1338.Device, file string) error {
	fd, err := os.Create(file)
	if err != nil {
		return err
	}
	defer fd.Close()

	return errors.Wrapf(dev.SaveState(fd), "save %s", file)
}
