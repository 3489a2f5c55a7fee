package sysbus

/*
 * LiteEx - System bus and interrupt routing.
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
	"fmt"

	dev "github.com/rcornwell/LiteEx/emu/device"
)

// Maximum number of bus interrupt lines.
const MaxIrqLines = 64

// One device aperture on the bus.
type busSlot struct {
	base uint64     // Base physical address
	size uint64     // Size of aperture
	dev  dev.Device // Device interface
}

// Bus state. All access is serialized through the core loop, so no
// locking is needed here.
type busState struct {
	slots  []busSlot               // Mapped device apertures
	irqTab [MaxIrqLines]dev.Device // Interrupt line routing
}

var bus busState

// Clear all device and interrupt mappings.
func InitializeBus() {
	bus.slots = nil
	for i := range bus.irqTab {
		bus.irqTab[i] = nil
	}
}

// Map a device aperture at a base address. Apertures may not overlap
// and must be 8 byte aligned.
func AddDevice(device dev.Device, base uint64, size uint64) error {
	if device == nil {
		return fmt.Errorf("No device given for %08x", base)
	}
	if (base&7) != 0 || (size&7) != 0 {
		return fmt.Errorf("Device %08x not 8 byte aligned", base)
	}
	if size == 0 {
		return fmt.Errorf("Device %08x has zero size", base)
	}
	for i := range bus.slots {
		slot := &bus.slots[i]
		if base < (slot.base+slot.size) && slot.base < (base+size) {
			return fmt.Errorf("Device %08x overlaps device %08x", base, slot.base)
		}
	}
	bus.slots = append(bus.slots, busSlot{base: base, size: size, dev: device})
	return nil
}

// Remove the device mapped at a base address.
func DelDevice(base uint64) {
	for i := range bus.slots {
		if bus.slots[i].base == base {
			bus.slots = append(bus.slots[:i], bus.slots[i+1:]...)
			return
		}
	}
}

// Get the device mapped at a base address.
func GetDevice(base uint64) (dev.Device, error) {
	for i := range bus.slots {
		if bus.slots[i].base == base {
			return bus.slots[i].dev, nil
		}
	}
	return nil, fmt.Errorf("Device %08x doesn't exist", base)
}

// Return base addresses of all mapped devices.
func DeviceList() []uint64 {
	list := []uint64{}
	for i := range bus.slots {
		list = append(list, bus.slots[i].base)
	}
	return list
}

// Route a bus interrupt line to a device input.
func RegisterIrq(line int, device dev.Device) error {
	if line < 0 || line >= MaxIrqLines {
		return fmt.Errorf("Interrupt line %d out of range", line)
	}
	if bus.irqTab[line] != nil {
		return fmt.Errorf("Interrupt line %d already registered", line)
	}
	bus.irqTab[line] = device
	return nil
}

// Assert a bus interrupt line. An out of range or unrouted line is
// returned as an error.
func RaiseIrq(line int) error {
	if line < 0 || line >= MaxIrqLines {
		return fmt.Errorf("Interrupt line %d out of range", line)
	}
	if bus.irqTab[line] == nil {
		return fmt.Errorf("Interrupt line %d not connected", line)
	}
	bus.irqTab[line].IrqRequest(line, dev.IrqHigh)
	return nil
}

// Find the slot covering an address.
func findSlot(addr uint64) *busSlot {
	for i := range bus.slots {
		slot := &bus.slots[i]
		if addr >= slot.base && addr < (slot.base+slot.size) {
			return slot
		}
	}
	return nil
}

// Read 8 bytes from the bus. Addresses must be 8 byte aligned.
func Read(addr uint64) (uint64, error) {
	if (addr & 7) != 0 {
		return 0, fmt.Errorf("Unaligned bus read at %08x", addr)
	}
	slot := findSlot(addr)
	if slot == nil {
		return 0, fmt.Errorf("Bus read to unmapped address %08x", addr)
	}
	return slot.dev.Read(addr - slot.base), nil
}

// Write 8 bytes to the bus. Addresses must be 8 byte aligned.
func Write(addr uint64, value uint64) error {
	if (addr & 7) != 0 {
		return fmt.Errorf("Unaligned bus write at %08x", addr)
	}
	slot := findSlot(addr)
	if slot == nil {
		return fmt.Errorf("Bus write to unmapped address %08x", addr)
	}
	slot.dev.Write(addr-slot.base, value)
	return nil
}

// Reinitialize all mapped devices.
func ResetBus() error {
	for i := range bus.slots {
		if err := bus.slots[i].dev.InitDev(); err != nil {
			return err
		}
	}
	return nil
}

// Shutdown all mapped devices.
func Shutdown() {
	for i := range bus.slots {
		bus.slots[i].dev.Shutdown()
	}
}
