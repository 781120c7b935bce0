// Command lm77mon scans an I²C bus for LM77 sensors, applies configured
// setpoints and logs readings once per tick.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
	"tinygo.org/x/drivers"

	"lm77-go/drivers/lm77"
	"lm77-go/drivers/lm77/lm77sim"
	"lm77-go/errcode"
	"lm77-go/services/hwmon"
	"lm77-go/x/logx"
)

func main() {
	cfgPath := flag.String("config", "", "YAML config file (defaults are used if empty)")
	busName := flag.String("bus", "", "override the configured bus; \"sim\" uses the simulator")
	level := flag.String("loglevel", "", "override the configured log level")
	once := flag.Bool("once", false, "print one snapshot per device and exit")
	flag.Parse()

	cfg := hwmon.DefaultConfig()
	if *cfgPath != "" {
		var err error
		if cfg, err = hwmon.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "lm77mon:", err)
			os.Exit(2)
		}
	}
	if *busName != "" {
		cfg.Bus = *busName
	}
	if *level != "" {
		cfg.LogLevel = *level
	}
	lvl, err := logx.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lm77mon:", err)
		os.Exit(2)
	}
	log := logx.Component(logx.New(lvl, nil), "lm77mon")

	if err := run(cfg, *once, log); err != nil {
		log.WithError(err).Error("exiting")
		os.Exit(1)
	}
}

func run(cfg hwmon.Config, once bool, log *logrus.Entry) error {
	bus, closeBus, err := openBus(cfg.Bus)
	if err != nil {
		return err
	}
	defer closeBus()

	svc, err := hwmon.New(bus, cfg, nil, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	found, err := svc.Scan(ctx)
	if err != nil {
		return err
	}
	if len(found) == 0 {
		log.WithField("bus", cfg.Bus).Warn("no LM77 found")
		return nil
	}
	if err := svc.ApplyConfigured(); err != nil {
		log.WithError(err).Warn("configured setpoints not fully applied")
	}

	results := make(chan hwmon.Result, 2*len(found))
	poller := hwmon.NewPoller(svc, cfg.Tick, results)
	if once {
		poller.PollOnce()
		close(results)
		for r := range results {
			if r.Err != nil {
				fmt.Printf("0x%02x error: %v\n", r.Addr, r.Err)
				continue
			}
			printSnapshot(r.Addr, r.Snapshot)
		}
		return nil
	}

	poller.Start(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case r := <-results:
			if r.Err != nil {
				continue // already logged by the poller
			}
			log.WithFields(logrus.Fields{
				"addr":   fmt.Sprintf("0x%02x", r.Addr),
				"temp":   milli(r.Snapshot.Temp_mC),
				"low":    milli(r.Snapshot.Low_mC),
				"high":   milli(r.Snapshot.High_mC),
				"crit":   milli(r.Snapshot.Crit_mC),
				"hyst":   milli(r.Snapshot.Hyst_mC),
				"alarms": uint8(r.Snapshot.Alarms),
			}).Info("reading")
		}
	}
}

// openBus returns the simulator for "sim", otherwise a host bus via periph.
func openBus(name string) (drivers.I2C, func(), error) {
	if name == "sim" {
		bus := lm77sim.NewBus()
		bus.Attach(lm77.AddressMin, lm77sim.New())
		bus.Attach(lm77.AddressMin+2, lm77sim.New()).SetTemp(-4500, uint8(lm77.AlarmLow))
		return bus, func() {}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, &errcode.E{C: errcode.UnknownBus, Op: "open_bus", Msg: "periph init: " + err.Error(), Err: err}
	}
	b, err := i2creg.Open(name)
	if err != nil {
		return nil, nil, &errcode.E{C: errcode.UnknownBus, Op: "open_bus", Msg: name + ": " + err.Error(), Err: err}
	}
	return b, func() { _ = b.Close() }, nil
}

func milli(v int32) string {
	sign := ""
	if v < 0 {
		sign, v = "-", -v
	}
	return fmt.Sprintf("%s%d.%03d", sign, v/1000, v%1000)
}

func printSnapshot(addr uint16, s lm77.Snapshot) {
	fmt.Printf("0x%02x temp=%s low=%s high=%s crit=%s hyst=%s alarms=0x%x\n",
		addr, milli(s.Temp_mC), milli(s.Low_mC), milli(s.High_mC),
		milli(s.Crit_mC), milli(s.Hyst_mC), uint8(s.Alarms))
}
