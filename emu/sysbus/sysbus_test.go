package sysbus

/*
 * LiteEx - System bus tests.
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
)

// Stub device recording accesses.
type testDev struct {
	lastRead  uint64
	lastWrite uint64
	lastValue uint64
	lastLine  int
	lastLevel int
	inits     int
	shutdowns int
	value     uint64
}

func (d *testDev) Read(offset uint64) uint64 {
	d.lastRead = offset
	return d.value
}

func (d *testDev) Write(offset uint64, value uint64) {
	d.lastWrite = offset
	d.lastValue = value
}

func (d *testDev) IrqRequest(line int, level int) {
	d.lastLine = line
	d.lastLevel = level
}

func (d *testDev) InitDev() error {
	d.inits++
	return nil
}

func (d *testDev) Shutdown() {
	d.shutdowns++
}

func (d *testDev) Debug(_ string) error {
	return nil
}

// Accesses route to the right device with base relative offsets.
func TestBusRouting(t *testing.T) {
	InitializeBus()
	devA := &testDev{value: 0x0a}
	devB := &testDev{value: 0x0b}
	if err := AddDevice(devA, 0x1000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	if err := AddDevice(devB, 0x4000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}

	r, err := Read(0x1008)
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if r != 0x0a {
		t.Errorf("Read not correct got: %016x expected: %016x", r, 0x0a)
	}
	if devA.lastRead != 8 {
		t.Errorf("Read offset not correct got: %x expected: %x", devA.lastRead, 8)
	}

	err = Write(0x4ff8, 0x42)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if devB.lastWrite != 0xff8 {
		t.Errorf("Write offset not correct got: %x expected: %x", devB.lastWrite, 0xff8)
	}
	if devB.lastValue != 0x42 {
		t.Errorf("Write value not correct got: %016x expected: %016x", devB.lastValue, 0x42)
	}
}

// Access off the mapped ranges fails.
func TestBusUnmapped(t *testing.T) {
	InitializeBus()
	dev := &testDev{}
	if err := AddDevice(dev, 0x1000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	if _, err := Read(0x3000); err == nil {
		t.Error("Read of unmapped address did not fail")
	}
	if err := Write(0x0, 1); err == nil {
		t.Error("Write of unmapped address did not fail")
	}
}

// Unaligned access is rejected before it reaches a device.
func TestBusAlignment(t *testing.T) {
	InitializeBus()
	dev := &testDev{}
	dev.lastRead = 0xdead
	if err := AddDevice(dev, 0x1000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	if _, err := Read(0x1004); err == nil {
		t.Error("Unaligned read did not fail")
	}
	if err := Write(0x1001, 1); err == nil {
		t.Error("Unaligned write did not fail")
	}
	if dev.lastRead != 0xdead {
		t.Error("Unaligned access reached device")
	}
}

// Overlapping apertures are rejected.
func TestBusOverlap(t *testing.T) {
	InitializeBus()
	devA := &testDev{}
	devB := &testDev{}
	if err := AddDevice(devA, 0x1000, 0x2000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	if err := AddDevice(devB, 0x2000, 0x1000); err == nil {
		t.Error("Overlapping device did not fail")
	}
	if err := AddDevice(devB, 0x0, 0x1008); err == nil {
		t.Error("Overlapping device did not fail")
	}
	if err := AddDevice(devB, 0x3000, 0x1000); err != nil {
		t.Errorf("Adjacent device failed: %v", err)
	}
}

// Device lookup and removal by base address.
func TestBusDeviceTable(t *testing.T) {
	InitializeBus()
	dev := &testDev{}
	if err := AddDevice(dev, 0x8000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	found, err := GetDevice(0x8000)
	if err != nil {
		t.Fatalf("GetDevice failed: %v", err)
	}
	if found != dev {
		t.Error("GetDevice returned wrong device")
	}
	if _, err := GetDevice(0x9000); err == nil {
		t.Error("GetDevice of unknown address did not fail")
	}
	DelDevice(0x8000)
	if _, err := GetDevice(0x8000); err == nil {
		t.Error("GetDevice of removed device did not fail")
	}
}

// Interrupt lines route to the registered device.
func TestBusIrq(t *testing.T) {
	InitializeBus()
	dev := &testDev{lastLine: -1}
	if err := RegisterIrq(5, dev); err != nil {
		t.Fatalf("RegisterIrq failed: %v", err)
	}
	if err := RegisterIrq(5, dev); err == nil {
		t.Error("Double interrupt registration did not fail")
	}
	if err := RaiseIrq(5); err != nil {
		t.Fatalf("RaiseIrq failed: %v", err)
	}
	if dev.lastLine != 5 {
		t.Errorf("Interrupt line not correct got: %d expected: %d", dev.lastLine, 5)
	}
	if err := RaiseIrq(6); err == nil {
		t.Error("Raise of unconnected line did not fail")
	}
	if err := RaiseIrq(MaxIrqLines); err == nil {
		t.Error("Raise of out of range line did not fail")
	}
}

// Reset and shutdown reach every mapped device.
func TestBusResetShutdown(t *testing.T) {
	InitializeBus()
	devA := &testDev{}
	devB := &testDev{}
	if err := AddDevice(devA, 0x1000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	if err := AddDevice(devB, 0x2000, 0x1000); err != nil {
		t.Fatalf("AddDevice failed: %v", err)
	}
	if err := ResetBus(); err != nil {
		t.Fatalf("ResetBus failed: %v", err)
	}
	if devA.inits != 1 || devB.inits != 1 {
		t.Errorf("Reset counts not correct got: %d %d expected: 1 1", devA.inits, devB.inits)
	}
	Shutdown()
	if devA.shutdowns != 1 || devB.shutdowns != 1 {
		t.Errorf("Shutdown counts not correct got: %d %d expected: 1 1", devA.shutdowns, devB.shutdowns)
	}
}
