package main

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// Config defines program configuration.
type Config struct {
	Load string    // Optional snapshot file to restore before dumping.
	Save string    // Optional snapshot file to write after dumping.
	Set  time.Time // Optional instant to write into the chip.
}

// parseArgs parses command line arguments as applicable.
//
// If an error occurred, this exits the program with an appropriate message.
// When version information is requested, it is printed to stdout and the program ends cleanly.
func parseArgs() *Config {
	var c Config
	var set string

	flag.Usage = func() {
		fmt.Printf("%s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}

	flag.StringVar(&c.Load, "load", c.Load, "Snapshot file to restore before dumping.")
	flag.StringVar(&c.Save, "save", c.Save, "Snapshot file to write after dumping.")
	flag.StringVar(&set, "set", "", "RFC3339 instant to write into the clock registers.")
	version := flag.Bool("version", false, "Display version information.")
	flag.Parse()

	if *version {
		fmt.Println(Version())
		os.Exit(0)
	}

	if len(set) > 0 {
		t, err := time.Parse(time.RFC3339, set)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		c.Set = t
	}

	return &c
}
