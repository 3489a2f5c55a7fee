/*
LiteEx system bus device interface

	Copyright (c) 2024, Richard Cornwell

	Permission is hereby granted, free of charge, to any person obtaining a
	copy of this software and associated documentation files (the "Software"),
	to deal in the Software without restriction, including without limitation
	the rights to use, copy, modify, merge, publish, distribute, sublicense,
	and/or sell copies of the Software, and to permit persons to whom the
	Software is furnished to do so, subject to the following conditions:

	The above copyright notice and this permission notice shall be included in
	all copies or substantial portions of the Software.

	THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
	IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
	FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT.  IN NO EVENT SHALL
	RICHARD CORNWELL BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
	IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
	CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.
*/
package device

// Interface for devices mapped on the system bus. All bus accesses are
// 8 bytes wide; the bus rejects anything else before a device sees it.
type Device interface {
	Read(offset uint64) uint64         // Handle MMIO read at offset from device base.
	Write(offset uint64, value uint64) // Handle MMIO write at offset from device base.
	IrqRequest(line int, level int)    // Input interrupt line changed state.
	InitDev() error                    // Initialize device.
	Shutdown()                         // Shutdown device, close any open files.
	Debug(debug string) error          // Enable debug option.
}

// Interrupt line states.
const (
	IrqLow  int = 0 // Line deasserted
	IrqHigh int = 1 // Line asserted
)

const (
	NoDev uint64 = 0xffffffffffffffff // Code for no device address
)
