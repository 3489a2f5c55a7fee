package core

/*
 * LiteEx - Simulation core loop.
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
	"log/slog"
	"sync"
	"time"

	"github.com/rcornwell/LiteEx/emu/event"
	"github.com/rcornwell/LiteEx/emu/master"
	"github.com/rcornwell/LiteEx/emu/sysbus"
)

// The core loop owns the bus. All device access, simulation time and
// interrupt delivery is funneled through this one goroutine; devices
// and front ends post packets on the master channel.
type Core struct {
	wg      sync.WaitGroup
	done    chan struct{} // Signal to shutdown simulator.
	running bool          // Indicate when simulator should run or not.
	master  chan master.Packet
	request chan func() // Console requests run on the core goroutine.
}

// Create instance of core loop.
func NewCore(master chan master.Packet) *Core {
	return &Core{
		master:  master,
		done:    make(chan struct{}),
		request: make(chan func(), 1),
	}
}

// Run the simulation loop.
func (core *Core) Start() {
	core.wg.Add(1)
	defer core.wg.Done()
	for {
		if core.running && event.AnyEvent() {
			event.Advance(1)
		}
		select {
		case <-core.done:
			// Shutdown all devices.
			sysbus.Shutdown()
			slog.Info("Shutdown core")
			return
		case packet := <-core.master:
			core.processPacket(packet)
		case fn := <-core.request:
			fn()
		default:
		}
	}
}

// Stop a running server.
func (core *Core) Stop() {
	close(core.done)
	done := make(chan struct{})
	go func() {
		core.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return
	case <-time.After(time.Second):
		slog.Warn("Timed out waiting for core to finish.")
		return
	}
}

// Run a console request on the core goroutine and wait for it. Keeps
// bus access serialized with interrupt delivery.
func (core *Core) Call(fn func()) {
	done := make(chan struct{})
	core.request <- func() {
		fn()
		close(done)
	}
	<-done
}

// Start advancing simulation time.
func (core *Core) SendStart() {
	core.master <- master.Packet{Msg: master.Start}
}

// Stop advancing simulation time.
func (core *Core) SendStop() {
	core.master <- master.Packet{Msg: master.Stop}
}

// Raise a bus interrupt line from the console.
func (core *Core) PostIrq(line int) {
	core.master <- master.Packet{Msg: master.IrqPulse, Line: line}
}

// Whether simulation time is advancing.
func (core *Core) Running() bool {
	return core.running
}

// Process a packet sent to system simulation.
func (core *Core) processPacket(packet master.Packet) {
	switch packet.Msg {
	case master.IrqPulse:
		if err := sysbus.RaiseIrq(packet.Line); err != nil {
			slog.Warn(err.Error())
		}
	case master.Start:
		core.running = true
	case master.Stop:
		core.running = false
	}
}
