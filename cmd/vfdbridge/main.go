// cmd/vfdbridge/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/tamzrod/vfd-bridge/internal/config"
	"github.com/tamzrod/vfd-bridge/internal/cycle"
	"github.com/tamzrod/vfd-bridge/internal/hal"
	"github.com/tamzrod/vfd-bridge/internal/modbus"
)

func main() {
	flags := pflag.NewFlagSet("vfdbridge", pflag.ContinueOnError)

	var (
		cfgPath  = flags.String("config", "", "optional YAML config file; flags override it")
		device   = flags.StringP("device", "d", "/dev/ttyUSB0", "serial device node")
		rate     = flags.StringP("rate", "r", "19200", "baud rate (2400, 4800, 9600, 19200, 38400)")
		parity   = flags.StringP("parity", "p", "none", "serial parity (even, odd, none)")
		stopBits = flags.StringP("stopbits", "s", "1", "serial stop bits (1, 2)")
		target   = flags.IntP("target", "t", 1, "Modbus target (slave) number")
		name     = flags.StringP("name", "n", "nowforever_vfd", "signal component name")
		maxFreq  = flags.Float64("max-frequency", 400.0, "drive frequency at full scale, Hz")
		maxSpeed = flags.Float64("max-speed", 24000.0, "mechanical speed at max frequency, RPM")
		verbose  = flags.BoolP("verbose", "v", false, "verbose mode")
		debug    = flags.BoolP("debug", "g", false, "print all Modbus frames in hex")
		disable  = flags.BoolP("disable", "X", false, "start with the spindle-on input off")
		help     = flags.BoolP("help", "h", false, "show usage")
	)

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Bridges a Nowforever D100/E100 VFD to a motion-control signal surface over Modbus RTU.")
		fmt.Fprintln(os.Stderr, "Enumerated options accept any unique prefix: --rate 4 selects 4800 baud.")
		fmt.Fprint(os.Stderr, flags.FlagUsages())
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}
	if *help {
		flags.Usage()
		os.Exit(0)
	}

	// --------------------
	// Assemble config: defaults, then file, then explicit flags
	// --------------------

	cfg := config.Default()
	if *cfgPath != "" {
		if err := config.Load(*cfgPath, &cfg); err != nil {
			log.Fatalf("config load failed: %v", err)
		}
	}

	if flags.Changed("device") {
		cfg.Device = *device
	}
	if flags.Changed("rate") {
		cfg.Rate = *rate
	}
	if flags.Changed("parity") {
		cfg.Parity = *parity
	}
	if flags.Changed("stopbits") {
		cfg.StopBits = *stopBits
	}
	if flags.Changed("target") {
		cfg.Target = *target
	}
	if flags.Changed("name") {
		cfg.Name = *name
	}
	if flags.Changed("max-frequency") {
		cfg.MaxFreq = *maxFreq
	}
	if flags.Changed("max-speed") {
		cfg.MaxSpeed = *maxSpeed
	}
	if flags.Changed("verbose") {
		cfg.Verbose = *verbose
	}
	if flags.Changed("debug") {
		cfg.Debug = *debug
	}
	if flags.Changed("disable") {
		cfg.Disable = *disable
	}

	if err := config.Normalize(&cfg); err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	fmt.Printf("%s: device='%s', baud=%s, parity='%s', stopbits=%s, target=%d\n",
		cfg.Name, cfg.Device, cfg.Rate, cfg.ParityCode(), cfg.StopBits, cfg.Target)

	// --------------------
	// Open the serial transport (fail fast at startup)
	// --------------------

	var trace *log.Logger
	if cfg.Debug {
		trace = log.New(os.Stderr, cfg.Name+": ", log.LstdFlags)
	}

	bus, closeBus, err := modbus.NewRTUClient(modbus.Config{
		Device:   cfg.Device,
		BaudRate: cfg.BaudRate(),
		Parity:   cfg.ParityCode(),
		StopBits: cfg.StopBitCount(),
		SlaveID:  byte(cfg.Target),
		Timeout:  time.Duration(cfg.TimeoutMs) * time.Millisecond,
		Trace:    trace,
	})
	if err != nil {
		log.Fatalf("serial open failed (device=%s): %v", cfg.Device, err)
	}
	defer closeBus()

	// --------------------
	// Register the signal surface and build the loop
	// --------------------

	surface, err := hal.NewSurface(cfg.Name, !cfg.Disable)
	if err != nil {
		log.Fatalf("signal surface failed: %v", err)
	}
	if cfg.Verbose {
		log.Printf("%s: signals registered: %v", cfg.Name, surface.Component().Signals())
	}

	loop, err := cycle.New(cycle.Config{
		MaxFreq:  cfg.MaxFreq,
		MaxSpeed: cfg.MaxSpeed,
		Verbose:  cfg.Verbose,
	}, bus, surface)
	if err != nil {
		log.Fatalf("cycle build failed: %v", err)
	}

	// --------------------
	// Run until SIGINT/SIGTERM
	// --------------------

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loop.Run(ctx)

	log.Printf("%s: shutting down (modbus errors: %d)", cfg.Name, bus.Errors())
}
