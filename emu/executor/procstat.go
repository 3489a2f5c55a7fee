package executor

/*
 * LiteEx - Process status table.
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

// Online flag, bit 0 of the scheduler mailbox.
const psOnline uint64 = 0x1

// Status record for one guest process slot. The index field selects
// which entry of the live scheduler/interrupt group pool backs the
// process; only online processes have a meaningful index.
type procStatus struct {
	psMbuf  uint64 // Scheduler mailbox, bit 0 is the online flag
	ipcMbuf uint64 // IPC mailbox scratch
	index   int    // Backing group in the online pool
}

// Clear all fields.
func (ps *procStatus) init() {
	ps.psMbuf = 0
	ps.ipcMbuf = 0
	ps.index = 0
}

// Mark process online.
func (ps *procStatus) setOnline() {
	ps.psMbuf |= psOnline
}

// Mark process offline.
func (ps *procStatus) setOffline() {
	ps.psMbuf &= ^psOnline
}

// Test the online flag. Read only; must never modify the mailbox.
func (ps *procStatus) isOnline() bool {
	return (ps.psMbuf & psOnline) != 0
}

// Assign the backing group for this process.
func (ps *procStatus) addMap(index int) {
	ps.index = index
}
