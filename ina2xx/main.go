// Command ina2xx prints the voltage, current and power measured by an INA219.
//
// Usage:
//
//	ina2xx -bus /dev/i2c-1 -addr 0x40
//	ina2xx -config ina2xx.yml -debug
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/d2r2/go-logger"

	"github.com/cgxeiji/ina2xx"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	configPath := flag.String("config", "", "YAML config file")
	bus := flag.String("bus", "", "I²C bus name, overrides config")
	addr := flag.String("addr", "", "I²C address, e.g. 0x40, overrides config")
	interval := flag.Duration("interval", 0, "sampling interval, overrides config")
	count := flag.Int("n", 0, "stop after n readings, 0 runs until interrupted")
	debug := flag.Bool("debug", false, "trace register accesses")
	flag.Parse()

	defer logger.FinalizeLogger()
	level := logger.InfoLevel
	if *debug {
		level = logger.DebugLevel
	}
	lg := logger.NewPackageLogger("ina2xx", level)

	cfg := ina2xx.DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = ina2xx.LoadConfig(*configPath); err != nil {
			return err
		}
	}
	if *bus != "" {
		cfg.Bus = *bus
	}
	if *addr != "" {
		a, err := strconv.ParseUint(*addr, 0, 7)
		if err != nil {
			return fmt.Errorf("invalid address %q: %w", *addr, err)
		}
		cfg.Address = uint16(a)
	}
	period, err := cfg.Period()
	if err != nil {
		return err
	}
	if *interval > 0 {
		period = *interval
	}

	sensor, err := ina2xx.New(append(cfg.Options(), ina2xx.WithLogger(lg))...)
	if err != nil {
		return err
	}
	defer func() {
		if err := sensor.Close(); err != nil {
			lg.Warnf("%v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	t := time.NewTicker(period)
	defer t.Stop()

loop:
	for n := 0; *count == 0 || n < *count; n++ {
		r, err := sensor.Read()
		if err != nil {
			lg.Warnf("%v", err)
		} else {
			fmt.Printf("voltage = %s, current = %s, power = %s\n", r.Voltage, r.Current, r.Power)
		}
		if n+1 == *count {
			break
		}

		select {
		case <-stop:
			break loop
		case <-t.C:
		}
	}

	s := sensor.Stats()
	fmt.Printf("%d samples: voltage %s..%s, current %s..%s, average power %s\n",
		s.Samples, s.MinVoltage, s.MaxVoltage, s.MinCurrent, s.MaxCurrent, s.MeanPower)

	return nil
}
