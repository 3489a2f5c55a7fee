package pulse

/*
 * LiteEx - Interval interrupt pulse source.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	config "github.com/rcornwell/LiteEx/config/configparser"
	"github.com/rcornwell/LiteEx/emu/event"
	"github.com/rcornwell/LiteEx/emu/master"
	"github.com/rcornwell/LiteEx/emu/sysbus"
	"github.com/rcornwell/LiteEx/util/debug"
)

// Debug mask options.
const (
	debugPulse = 1 << iota // Trace pulse delivery
)

var debugOption = map[string]int{
	"PULSE": debugPulse,
}

// Pulse raises a bus interrupt line at a fixed rate. In cycle mode the
// pulse rides the event scheduler and fires as simulation time
// advances; in interval mode a wall clock ticker posts to the master
// channel and the core raises the line.
type Pulse struct {
	wg       sync.WaitGroup
	line     int           // Bus interrupt line to pulse
	cycles   int           // Cycles between pulses, cycle mode
	interval time.Duration // Tick period, interval mode
	master   chan master.Packet
	done     chan struct{} // Stop ticker task
	debugMsk int           // Debug options mask
}

var masterChannel chan master.Packet

// Give created pulse devices a master channel to post on. Must be
// called before the configuration file is loaded.
func SetMaster(master chan master.Packet) {
	masterChannel = master
}

// Event callback for cycle mode. Raise the line and rearm.
func (pulse *Pulse) tick(line int) {
	debug.DebugIrqf(line, pulse.debugMsk, debugPulse, "pulse")
	if err := sysbus.RaiseIrq(line); err != nil {
		slog.Warn(err.Error())
		return
	}
	event.AddEvent(pulse, pulse.tick, pulse.cycles, line)
}

// Ticker task for interval mode.
func (pulse *Pulse) run() {
	defer pulse.wg.Done()
	ticker := time.NewTicker(pulse.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			debug.DebugIrqf(pulse.line, pulse.debugMsk, debugPulse, "pulse")
			pulse.master <- master.Packet{Msg: master.IrqPulse, Line: pulse.line}
		case <-pulse.done:
			return
		}
	}
}

// Bus device interface. The pulse source has no registers; it only
// exists on the interrupt side of the bus.
func (pulse *Pulse) Read(_ uint64) uint64 {
	return 0
}

func (pulse *Pulse) Write(_ uint64, _ uint64) {
}

func (pulse *Pulse) IrqRequest(_ int, _ int) {
}

// Arm the first pulse on reset in cycle mode.
func (pulse *Pulse) InitDev() error {
	if pulse.cycles != 0 {
		event.CancelEvent(pulse, pulse.line)
		event.AddEvent(pulse, pulse.tick, pulse.cycles, pulse.line)
	}
	return nil
}

// Stop the ticker task if running.
func (pulse *Pulse) Shutdown() {
	if pulse.interval != 0 {
		close(pulse.done)
		done := make(chan struct{})
		go func() {
			pulse.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			return
		case <-time.After(time.Second):
			slog.Warn("Timed out waiting for pulse to finish.")
			return
		}
	}
}

// Enable a debug option.
func (pulse *Pulse) Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("pulse debug option invalid: " + opt)
	}
	pulse.debugMsk |= flag
	return nil
}

// Create a pulse source on a bus interrupt line. Exactly one of
// cycles or interval must be given.
func Create(line int, cycles int, interval time.Duration) (*Pulse, error) {
	if line < 0 || line >= sysbus.MaxIrqLines {
		return nil, fmt.Errorf("pulse line %d out of range", line)
	}
	if (cycles == 0) == (interval == 0) {
		return nil, errors.New("pulse requires either CYCLES or INTERVAL")
	}
	pulse := &Pulse{
		line:     line,
		cycles:   cycles,
		interval: interval,
		master:   masterChannel,
		done:     make(chan struct{}),
	}
	if interval != 0 {
		if pulse.master == nil {
			return nil, errors.New("pulse has no master channel")
		}
		pulse.wg.Add(1)
		go pulse.run()
	}
	_ = pulse.InitDev()
	pulses = append(pulses, pulse)
	return pulse, nil
}

var pulses []*Pulse

// Shutdown all pulse sources.
func ShutdownAll() {
	for _, pulse := range pulses {
		pulse.Shutdown()
	}
	pulses = nil
}

// register a pulse create on initialize.
func init() {
	config.RegisterModel("PULSE", config.TypeModel, create)
}

// Create a pulse source from a config line. The address field names
// the interrupt line.
func create(line uint64, _ string, options []config.Option) error {
	cycles := 0
	interval := time.Duration(0)
	debugOpts := []string{}
	for _, option := range options {
		switch strings.ToUpper(option.Name) {
		case "CYCLES":
			value, err := strconv.ParseUint(option.EqualOpt, 10, 32)
			if err != nil || value == 0 {
				return errors.New("pulse cycles invalid: " + option.EqualOpt)
			}
			cycles = int(value)
		case "INTERVAL":
			value, err := strconv.ParseUint(option.EqualOpt, 10, 32)
			if err != nil || value == 0 {
				return errors.New("pulse interval invalid: " + option.EqualOpt)
			}
			interval = time.Duration(value) * time.Millisecond
		case "DEBUG":
			debugOpts = append(debugOpts, strings.ToUpper(option.EqualOpt))
		default:
			return errors.New("pulse invalid option: " + option.Name)
		}
		if option.Value != nil {
			return errors.New("extra options not supported on: " + option.Name)
		}
	}

	pulse, err := Create(int(line), cycles, interval)
	if err != nil {
		return err
	}
	for _, opt := range debugOpts {
		if err := pulse.Debug(opt); err != nil {
			return err
		}
	}
	return nil
}
