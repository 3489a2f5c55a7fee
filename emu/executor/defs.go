package executor

/*
 * LiteEx - Lite Executor register layout definitions.
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

// Aperture and table sizes. The register layout is the ABI between the
// emulator and guest software and can't be changed without breaking
// existing guests.
const (
	MMIOSize uint64 = 0x1000000 // Size of executor MMIO aperture, 16M

	ProcessMMIOSize uint64 = 0x1000 // Size of one per process slot
	MaxProcess      int    = 16     // Number of populated process slots
	MaxOnlineGroup  int    = 4      // Live scheduler/interrupt group pool
	MaxTaskQueue    int    = 8      // Priority bands per scheduler
	MaxTaskPerQueue int    = 0x100  // Advertised queue capacity, not enforced
	MaxExternalIntr int    = 16     // External interrupt lines per group
)

// Offsets within one process slot. Three register blocks: priority
// scheduler, IPC handler and external interrupt handler.
const (
	psEnqueueOffset uint64 = 0x8   // Start of scheduler enqueue array
	psEnqueueSize   uint64 = 0x8   // Bytes per enqueue element
	ipcOffset       uint64 = 0x800 // Start of IPC handler block
	ihBqOffset      uint64 = 0x8   // Start of bound queue array within IPC block
	ihBqSize        uint64 = 0x8   // Bytes per bound queue element
	ihBqCount       int    = 31    // Bound queue elements per process
	eihOffset       uint64 = 0x900 // Start of interrupt handler block
	eihEnqueueSize  uint64 = 0x8   // Bytes per interrupt enqueue element
)

// Debug mask options.
const (
	debugTrace = 1 << iota // Trace register decode
	debugIrq               // Trace interrupt dispatch
	debugQueue             // Trace queue operations
)

var debugOption = map[string]int{
	"TRACE": debugTrace,
	"IRQ":   debugIrq,
	"QUEUE": debugQueue,
}

// Default number of interrupt sources if none configured.
const defSources = 1
