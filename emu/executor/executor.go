package executor

/*
 * LiteEx - Lite Executor accelerator device.
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

	command "github.com/rcornwell/LiteEx/command/command"
	config "github.com/rcornwell/LiteEx/config/configparser"
	"github.com/rcornwell/LiteEx/emu/sysbus"
	"github.com/rcornwell/LiteEx/util/debug"
)

// The Lite Executor offloads ready queue scheduling, IPC delivery and
// external interrupt dispatch from the guest CPU. The guest sees
// MaxProcess register slots; only MaxOnlineGroup scheduler/interrupt
// group pairs exist, shared by whichever processes are online. The
// process status table maps slot to group.
type LiteExec struct {
	addr        uint64                            // Base bus address
	numSources  int                               // Configured interrupt inputs
	pst         [MaxProcess]procStatus            // Process status table
	pschedulers [MaxOnlineGroup]priorityScheduler // Live scheduler pool
	eihs        [MaxOnlineGroup]extIntrHandler    // Live interrupt handler pool
	debugMsk    int                               // Debug options mask
}

// One register block within a process slot. Decode walks this table;
// the block handler gets the offset relative to the block start.
type slotRegion struct {
	name  string
	start uint64 // Offset of block within process slot
	end   uint64 // End of block, exclusive
	read  func(ex *LiteExec, proc int, offset uint64) uint64
	write func(ex *LiteExec, proc int, offset uint64, value uint64)
}

var slotRegions = []slotRegion{
	{"scheduler dequeue", 0, psEnqueueOffset, (*LiteExec).psDequeueRead, (*LiteExec).psDequeueWrite},
	{"scheduler enqueue", psEnqueueOffset, ipcOffset, (*LiteExec).psEnqueueRead, (*LiteExec).psEnqueueWrite},
	{"ipc send", ipcOffset, ipcOffset + ihBqOffset, (*LiteExec).ipcSendRead, (*LiteExec).ipcSendWrite},
	{"ipc bound queue", ipcOffset + ihBqOffset, eihOffset, (*LiteExec).ipcBqRead, (*LiteExec).ipcBqWrite},
	{"interrupt enqueue", eihOffset, ProcessMMIOSize, (*LiteExec).eihEnqueueRead, (*LiteExec).eihEnqueueWrite},
}

// Find register block covering a slot offset. The table covers the
// whole slot, so a miss can't happen.
func findRegion(procAddr uint64) *slotRegion {
	for i := range slotRegions {
		if procAddr >= slotRegions[i].start && procAddr < slotRegions[i].end {
			return &slotRegions[i]
		}
	}
	panic(fmt.Sprintf("lite executor: no register block for offset %03x", procAddr))
}

// Decode a slot offset to process index and in slot offset. Access
// outside the populated process table is a guest programming error and
// halts the emulator.
func (ex *LiteExec) decodeSlot(offset uint64) (int, uint64) {
	proc := int(offset / ProcessMMIOSize)
	if proc >= MaxProcess {
		panic(fmt.Sprintf("lite executor: access beyond process table: offset %06x", offset))
	}
	return proc, offset % ProcessMMIOSize
}

// Handle 8 byte read from the executor aperture.
func (ex *LiteExec) Read(offset uint64) uint64 {
	proc, procAddr := ex.decodeSlot(offset)
	if !ex.pst[proc].isOnline() {
		debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "read %06x: process %d offline", offset, proc)
		return 0
	}
	region := findRegion(procAddr)
	return region.read(ex, proc, procAddr-region.start)
}

// Handle 8 byte write to the executor aperture.
func (ex *LiteExec) Write(offset uint64, value uint64) {
	proc, procAddr := ex.decodeSlot(offset)
	if !ex.pst[proc].isOnline() {
		debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "write %06x: process %d offline", offset, proc)
		return
	}
	region := findRegion(procAddr)
	region.write(ex, proc, procAddr-region.start, value)
}

// Scheduler dequeue register. Read pops the highest priority entry of
// the process's backing scheduler group.
func (ex *LiteExec) psDequeueRead(proc int, _ uint64) uint64 {
	group := ex.pst[proc].index
	value := ex.pschedulers[group].pop()
	debug.DebugDevf(ex.addr, ex.debugMsk, debugQueue, "scheduler dequeue process %d group %d value %016x", proc, group, value)
	return value
}

// Writes to the dequeue register have no effect.
func (ex *LiteExec) psDequeueWrite(proc int, _ uint64, value uint64) {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "scheduler dequeue write dropped process %d value %016x", proc, value)
}

// Reads of enqueue registers return nothing.
func (ex *LiteExec) psEnqueueRead(proc int, offset uint64) uint64 {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "scheduler enqueue read process %d queue %d", proc, int(offset/psEnqueueSize))
	return 0
}

// Scheduler enqueue register. The element index is the priority band.
func (ex *LiteExec) psEnqueueWrite(proc int, offset uint64, value uint64) {
	band := int(offset / psEnqueueSize)
	if band >= MaxTaskQueue {
		panic(fmt.Sprintf("lite executor: scheduler band %d out of range, process %d", band, proc))
	}
	group := ex.pst[proc].index
	ex.pschedulers[group].push(band, value)
	debug.DebugDevf(ex.addr, ex.debugMsk, debugQueue, "scheduler enqueue process %d group %d band %d value %016x", proc, group, band, value)
}

// IPC send register. Layout is fixed but delivery is reserved; accept
// and log only.
func (ex *LiteExec) ipcSendRead(proc int, _ uint64) uint64 {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "ipc send read process %d", proc)
	return 0
}

func (ex *LiteExec) ipcSendWrite(proc int, _ uint64, value uint64) {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "ipc send write process %d value %016x", proc, value)
}

// IPC bound queue array. Reserved like the send register.
func (ex *LiteExec) ipcBqRead(proc int, offset uint64) uint64 {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "ipc bound queue read process %d element %d", proc, int(offset/ihBqSize))
	return 0
}

func (ex *LiteExec) ipcBqWrite(proc int, offset uint64, value uint64) {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "ipc bound queue write process %d element %d value %016x", proc, int(offset/ihBqSize), value)
}

// Reads of interrupt enqueue registers return nothing.
func (ex *LiteExec) eihEnqueueRead(proc int, offset uint64) uint64 {
	debug.DebugDevf(ex.addr, ex.debugMsk, debugTrace, "interrupt enqueue read process %d line %d", proc, int(offset/eihEnqueueSize))
	return 0
}

// Interrupt enqueue register. The element index is the interrupt line;
// the value is an opaque handler the guest wants run when that line
// fires.
func (ex *LiteExec) eihEnqueueWrite(proc int, offset uint64, value uint64) {
	intr := int(offset / eihEnqueueSize)
	if intr >= MaxExternalIntr {
		panic(fmt.Sprintf("lite executor: interrupt line %d out of range, process %d", intr, proc))
	}
	group := ex.pst[proc].index
	ex.eihs[group].push(intr, value)
	debug.DebugDevf(ex.addr, ex.debugMsk, debugQueue, "interrupt enqueue process %d group %d line %d value %016x", proc, group, intr, value)
}

// Input interrupt line from the platform. Any assertion counts as one
// dispatch event; the level is otherwise ignored. Process 0 is the
// designated interrupt dispatcher: pop its next handler for the line
// and enqueue it at highest priority. A line with no registered
// handler is silently discarded.
func (ex *LiteExec) IrqRequest(line int, _ int) {
	if line < 0 || line >= MaxExternalIntr {
		panic(fmt.Sprintf("lite executor: interrupt request %d out of range", line))
	}
	group := ex.pst[0].index
	handler := ex.eihs[group].pop(line)
	if handler == 0 {
		debug.DebugIrqf(line, ex.debugMsk, debugIrq, "no handler registered")
		return
	}
	ex.pschedulers[group].push(0, handler)
	debug.DebugIrqf(line, ex.debugMsk, debugIrq, "dispatch handler %016x process 0", handler)
}

// Initialize tables and seed the online set. Until the guest manages
// onlining itself the first MaxOnlineGroup processes come up online,
// each backed by its own group.
func (ex *LiteExec) InitDev() error {
	for i := range ex.pst {
		ex.pst[i].init()
		if i < MaxOnlineGroup {
			ex.pst[i].setOnline()
			ex.pst[i].addMap(i)
		}
	}
	for i := range ex.pschedulers {
		ex.pschedulers[i].init()
	}
	for i := range ex.eihs {
		ex.eihs[i].init()
	}
	return nil
}

// Shutdown device. Queue contents are not persisted.
func (ex *LiteExec) Shutdown() {
}

// Enable a debug option.
func (ex *LiteExec) Debug(opt string) error {
	flag, ok := debugOption[opt]
	if !ok {
		return errors.New("executor debug option invalid: " + opt)
	}
	ex.debugMsk |= flag
	return nil
}

// Mark a process online, backed by a group from the live pool.
func (ex *LiteExec) SetOnline(proc int, group int) error {
	if proc < 0 || proc >= MaxProcess {
		return fmt.Errorf("process %d out of range", proc)
	}
	if group < 0 || group >= MaxOnlineGroup {
		return fmt.Errorf("group %d out of range", group)
	}
	ex.pst[proc].addMap(group)
	ex.pst[proc].setOnline()
	return nil
}

// Mark a process offline. Accesses to its slot read zero and drop
// writes until it is onlined again.
func (ex *LiteExec) SetOffline(proc int) error {
	if proc < 0 || proc >= MaxProcess {
		return fmt.Errorf("process %d out of range", proc)
	}
	ex.pst[proc].setOffline()
	return nil
}

// Console option list.
func (ex *LiteExec) Options(_ string) []command.Options {
	return []command.Options{
		{Name: "ONLINE", OptionType: command.OptionNumber, OptionValid: command.ValidSet},
		{Name: "GROUP", OptionType: command.OptionNumber, OptionValid: command.ValidSet},
		{Name: "PST", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
		{Name: "QUEUES", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
		{Name: "IRQ", OptionType: command.OptionSwitch, OptionValid: command.ValidShow},
	}
}

// Handle console set/unset. "set <dev> online=<proc> group=<n>" maps
// and onlines a process; "unset <dev> online=<proc>" offlines it.
func (ex *LiteExec) Set(set bool, options []*command.CmdOption) error {
	proc := -1
	group := 0
	for _, option := range options {
		switch strings.ToUpper(option.Name) {
		case "ONLINE":
			value, err := strconv.ParseUint(option.EqualOpt, 10, 8)
			if err != nil {
				return errors.New("online requires a process number: " + option.EqualOpt)
			}
			proc = int(value)
		case "GROUP":
			value, err := strconv.ParseUint(option.EqualOpt, 10, 8)
			if err != nil {
				return errors.New("group requires a group number: " + option.EqualOpt)
			}
			group = int(value)
		default:
			return errors.New("executor invalid option: " + option.Name)
		}
	}
	if proc < 0 {
		return errors.New("executor set requires an ONLINE option")
	}
	if !set {
		return ex.SetOffline(proc)
	}
	return ex.SetOnline(proc, group)
}

// Handle console show.
func (ex *LiteExec) Show(options []*command.CmdOption) (string, error) {
	showPst := false
	showQueues := false
	showIrq := false
	for _, option := range options {
		switch strings.ToUpper(option.Name) {
		case "PST":
			showPst = true
		case "QUEUES":
			showQueues = true
		case "IRQ":
			showIrq = true
		default:
			return "", errors.New("executor invalid option: " + option.Name)
		}
	}
	if !showPst && !showQueues && !showIrq {
		showPst = true
		showQueues = true
		showIrq = true
	}

	out := fmt.Sprintf("EXEC %08x sources=%d\n", ex.addr, ex.numSources)
	if showPst {
		for i := range ex.pst {
			if !ex.pst[i].isOnline() {
				continue
			}
			out += fmt.Sprintf("  process %2d online group %d\n", i, ex.pst[i].index)
		}
	}
	if showQueues {
		for i := range ex.pschedulers {
			depths := ex.pschedulers[i].depths()
			out += fmt.Sprintf("  scheduler %d bands %v\n", i, depths)
		}
	}
	if showIrq {
		for i := range ex.eihs {
			depths := ex.eihs[i].depths()
			out += fmt.Sprintf("  interrupt %d lines %v\n", i, depths)
		}
	}
	return out, nil
}

// Create a Lite Executor mapped at a base address with the given
// number of interrupt inputs, and connect its input lines to the bus.
func Create(base uint64, numSources int) (*LiteExec, error) {
	if numSources < 1 || numSources > MaxExternalIntr {
		return nil, fmt.Errorf("executor sources %d out of range", numSources)
	}
	ex := &LiteExec{addr: base, numSources: numSources}
	if err := ex.InitDev(); err != nil {
		return nil, err
	}
	if err := sysbus.AddDevice(ex, base, MMIOSize); err != nil {
		return nil, err
	}
	for line := 0; line < numSources; line++ {
		if err := sysbus.RegisterIrq(line, ex); err != nil {
			sysbus.DelDevice(base)
			return nil, err
		}
	}
	slog.Info("Lite executor mapped", "base", fmt.Sprintf("%08x", base), "sources", numSources)
	return ex, nil
}

// register an executor create on initialize.
func init() {
	config.RegisterModel("EXEC", config.TypeModel, create)
}

// Create an executor from a config line.
func create(base uint64, _ string, options []config.Option) error {
	numSources := defSources
	for _, option := range options {
		switch strings.ToUpper(option.Name) {
		case "SOURCES":
			value, err := strconv.ParseUint(option.EqualOpt, 10, 8)
			if err != nil {
				return errors.New("sources must be a number: " + option.EqualOpt)
			}
			numSources = int(value)
		default:
			return errors.New("executor invalid option: " + option.Name)
		}
		if option.Value != nil {
			return errors.New("extra options not supported on: " + option.Name)
		}
	}

	_, err := Create(base, numSources)
	return err
}
