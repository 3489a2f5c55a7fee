package pulse

/*
 * LiteEx - Interval pulse source tests.
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
	"testing"
	"time"

	"github.com/rcornwell/LiteEx/emu/event"
	"github.com/rcornwell/LiteEx/emu/executor"
	"github.com/rcornwell/LiteEx/emu/master"
	"github.com/rcornwell/LiteEx/emu/sysbus"
)

// Invalid pulse configurations are rejected.
func TestPulseCreate(t *testing.T) {
	sysbus.InitializeBus()
	if _, err := Create(-1, 10, 0); err == nil {
		t.Error("Pulse with negative line did not fail")
	}
	if _, err := Create(sysbus.MaxIrqLines, 10, 0); err == nil {
		t.Error("Pulse with out of range line did not fail")
	}
	if _, err := Create(0, 0, 0); err == nil {
		t.Error("Pulse with no rate did not fail")
	}
	if _, err := Create(0, 10, time.Millisecond); err == nil {
		t.Error("Pulse with both rates did not fail")
	}
}

// Cycle mode pulse drives the executor dispatch path as simulation
// time advances: registered handler moves to scheduler band 0.
func TestPulseCycleDispatch(t *testing.T) {
	sysbus.InitializeBus()
	if _, err := executor.Create(0, 8); err != nil {
		t.Fatalf("executor create failed: %v", err)
	}

	pulse, err := Create(3, 5, 0)
	if err != nil {
		t.Fatalf("pulse create failed: %v", err)
	}
	defer pulse.Shutdown()

	// Register two handlers for line 3.
	eihOffset := uint64(0x900) + 3*8
	if err := sysbus.Write(eihOffset, 0xAB); err != nil {
		t.Fatalf("bus write failed: %v", err)
	}
	if err := sysbus.Write(eihOffset, 0xCD); err != nil {
		t.Fatalf("bus write failed: %v", err)
	}

	// First pulse at cycle 5 dispatches the first handler.
	for range 5 {
		event.Advance(1)
	}
	r, err := sysbus.Read(0)
	if err != nil {
		t.Fatalf("bus read failed: %v", err)
	}
	if r != 0xAB {
		t.Errorf("Dispatch not correct got: %016x expected: %016x", r, 0xAB)
	}

	// Second pulse dispatches the second handler.
	for range 5 {
		event.Advance(1)
	}
	r, err = sysbus.Read(0)
	if err != nil {
		t.Fatalf("bus read failed: %v", err)
	}
	if r != 0xCD {
		t.Errorf("Dispatch not correct got: %016x expected: %016x", r, 0xCD)
	}

	// No more handlers, further pulses are discarded.
	for range 5 {
		event.Advance(1)
	}
	r, err = sysbus.Read(0)
	if err != nil {
		t.Fatalf("bus read failed: %v", err)
	}
	if r != 0 {
		t.Errorf("Dequeue not correct got: %016x expected: %016x", r, 0)
	}
}

// Interval mode posts pulse packets on the master channel.
func TestPulseInterval(t *testing.T) {
	sysbus.InitializeBus()
	masterChan := make(chan master.Packet, 4)
	SetMaster(masterChan)

	pulse, err := Create(7, 0, 5*time.Millisecond)
	if err != nil {
		t.Fatalf("pulse create failed: %v", err)
	}

	select {
	case packet := <-masterChan:
		if packet.Msg != master.IrqPulse {
			t.Errorf("Packet type not correct got: %d expected: %d", packet.Msg, master.IrqPulse)
		}
		if packet.Line != 7 {
			t.Errorf("Packet line not correct got: %d expected: %d", packet.Line, 7)
		}
	case <-time.After(time.Second):
		t.Error("No pulse packet received")
	}
	pulse.Shutdown()
}
