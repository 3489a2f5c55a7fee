package executor

/*
 * LiteEx - Task queue engines.
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

// Queue entries hold opaque 64 bit values the guest stores. The device
// never looks inside them.
type queueEntry struct {
	data uint64
	next *queueEntry
}

// Simple FIFO of 64 bit words. A pop of an empty queue returns 0; the
// ABI reserves 0 as "no value", so a stored 0 can't be told apart from
// an empty queue by the guest.
type taskQueue struct {
	head  *taskQueueHead
	count int
}

type taskQueueHead struct {
	first *queueEntry
	last  *queueEntry
}

// Reset a queue to empty.
func (queue *taskQueue) init() {
	queue.head = &taskQueueHead{}
	queue.count = 0
}

// Append a value to the tail of the queue.
func (queue *taskQueue) push(data uint64) {
	entry := &queueEntry{data: data}
	if queue.head.last == nil {
		queue.head.first = entry
	} else {
		queue.head.last.next = entry
	}
	queue.head.last = entry
	queue.count++
}

// Remove and return head of queue, 0 if empty.
func (queue *taskQueue) pop() uint64 {
	entry := queue.head.first
	if entry == nil {
		return 0
	}
	queue.head.first = entry.next
	if queue.head.first == nil {
		queue.head.last = nil
	}
	queue.count--
	return entry.data
}

// Check if queue has any entries.
func (queue *taskQueue) empty() bool {
	return queue.head.first == nil
}

// Number of entries currently queued.
func (queue *taskQueue) length() int {
	return queue.count
}

// Priority scheduler. Fixed array of task queues, one per priority
// band, band 0 highest. Pops drain the lowest numbered non empty band
// first; strict priority, no aging.
type priorityScheduler struct {
	taskQueues [MaxTaskQueue]taskQueue
}

// Reset all bands to empty.
func (ps *priorityScheduler) init() {
	for i := range ps.taskQueues {
		ps.taskQueues[i].init()
	}
}

// Append a value to one priority band. Caller validates the band.
func (ps *priorityScheduler) push(priority int, data uint64) {
	ps.taskQueues[priority].push(data)
}

// Return head of highest priority non empty band, 0 if all empty.
func (ps *priorityScheduler) pop() uint64 {
	for i := range ps.taskQueues {
		if !ps.taskQueues[i].empty() {
			return ps.taskQueues[i].pop()
		}
	}
	return 0
}

// Per band queue depths, for the console.
func (ps *priorityScheduler) depths() [MaxTaskQueue]int {
	var depths [MaxTaskQueue]int
	for i := range ps.taskQueues {
		depths[i] = ps.taskQueues[i].length()
	}
	return depths
}

// External interrupt handler. One task queue of handler values per
// interrupt line. Handlers for a line are delivered in FIFO order
// across successive interrupt arrivals.
type extIntrHandler struct {
	intrQueues [MaxExternalIntr]taskQueue
}

// Reset all interrupt queues to empty.
func (eih *extIntrHandler) init() {
	for i := range eih.intrQueues {
		eih.intrQueues[i].init()
	}
}

// Register a handler value for an interrupt line. Caller validates the line.
func (eih *extIntrHandler) push(intrNum int, data uint64) {
	eih.intrQueues[intrNum].push(data)
}

// Remove and return next handler for an interrupt line, 0 if none.
func (eih *extIntrHandler) pop(intrNum int) uint64 {
	return eih.intrQueues[intrNum].pop()
}

// Per line queue depths, for the console.
func (eih *extIntrHandler) depths() [MaxExternalIntr]int {
	var depths [MaxExternalIntr]int
	for i := range eih.intrQueues {
		depths[i] = eih.intrQueues[i].length()
	}
	return depths
}
