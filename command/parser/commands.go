/*
 * LiteEx - Console commands.
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

package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	command "github.com/rcornwell/LiteEx/command/command"
	core "github.com/rcornwell/LiteEx/emu/core"
	"github.com/rcornwell/LiteEx/emu/sysbus"
)

var cmdList = []cmd{
	{Name: "examine", Min: 2, Process: examine},
	{Name: "deposit", Min: 2, Process: deposit},
	{Name: "irq", Min: 2, Process: irq},
	{Name: "online", Min: 2, Process: online, Complete: DeviceComplete},
	{Name: "offline", Min: 3, Process: offline, Complete: DeviceComplete},
	{Name: "show", Min: 2, Process: show, Complete: DeviceComplete},
	{Name: "set", Min: 3, Process: set, Complete: DeviceComplete},
	{Name: "unset", Min: 4, Process: unset, Complete: DeviceComplete},
	{Name: "debug", Min: 3, Process: debugCmd, Complete: DeviceComplete},
	{Name: "start", Min: 3, Process: start},
	{Name: "stop", Min: 3, Process: stop},
	{Name: "continue", Min: 1, Process: cont},
	{Name: "reset", Min: 5, Process: reset},
	{Name: "quit", Min: 4, Process: quit},
}

// Process control interface, implemented by devices that keep a
// process status table.
type procControl interface {
	SetOnline(proc int, group int) error
	SetOffline(proc int) error
}

// Handle examine command. Reads go through the core loop so they
// interleave cleanly with interrupt delivery.
func examine(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Examine")

	addr, err := line.getAddress()
	if err != nil {
		return false, err
	}
	count := 1
	line.skipSpace()
	if !line.isEOL() {
		count, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}

	for i := 0; i < count; i++ {
		var value uint64
		var rerr error
		core.Call(func() {
			value, rerr = sysbus.Read(addr)
		})
		if rerr != nil {
			return false, rerr
		}
		fmt.Printf("%08x: %016x\n", addr, value)
		addr += 8
	}
	return false, nil
}

// Handle deposit command.
func deposit(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Deposit")

	addr, err := line.getAddress()
	if err != nil {
		return false, err
	}
	value, err := line.getValue()
	if err != nil {
		return false, err
	}

	var werr error
	core.Call(func() {
		werr = sysbus.Write(addr, value)
	})
	return false, werr
}

// Handle irq command. Raise a bus interrupt line.
func irq(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Irq")

	number, err := line.getNumber()
	if err != nil {
		return false, err
	}
	core.PostIrq(number)
	return false, nil
}

// Handle online command. Map a process to a group and mark it online.
func online(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Online")

	device, addr, err := line.getDevice()
	if err != nil {
		return false, err
	}
	ctl, ok := device.(procControl)
	if !ok {
		return false, fmt.Errorf("device %08x has no process table", addr)
	}
	proc, err := line.getNumber()
	if err != nil {
		return false, err
	}
	group := 0
	line.skipSpace()
	if !line.isEOL() {
		group, err = line.getNumber()
		if err != nil {
			return false, err
		}
	}

	var serr error
	core.Call(func() {
		serr = ctl.SetOnline(proc, group)
	})
	return false, serr
}

// Handle offline command.
func offline(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Offline")

	device, addr, err := line.getDevice()
	if err != nil {
		return false, err
	}
	ctl, ok := device.(procControl)
	if !ok {
		return false, fmt.Errorf("device %08x has no process table", addr)
	}
	proc, err := line.getNumber()
	if err != nil {
		return false, err
	}

	var serr error
	core.Call(func() {
		serr = ctl.SetOffline(proc)
	})
	return false, serr
}

// Handle show command.
func show(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Show")

	device, addr, err := line.getDevice()
	if err != nil {
		return false, err
	}
	cmdDev, ok := device.(command.Command)
	if !ok {
		return false, fmt.Errorf("device %08x has no show command", addr)
	}
	options := line.getOptions()

	var out string
	var serr error
	core.Call(func() {
		out, serr = cmdDev.Show(options)
	})
	if serr != nil {
		return false, serr
	}
	fmt.Print(out)
	return false, nil
}

// Handle set commands.
func set(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Set")
	return setUnset(line, core, true)
}

// Handle unset commands.
func unset(line *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Unset")
	return setUnset(line, core, false)
}

func setUnset(line *cmdLine, core *core.Core, setFlag bool) (bool, error) {
	device, addr, err := line.getDevice()
	if err != nil {
		return false, err
	}
	cmdDev, ok := device.(command.Command)
	if !ok {
		return false, fmt.Errorf("device %08x has no set command", addr)
	}
	options := line.getOptions()
	if len(options) == 0 {
		return false, errors.New("no options given to set command")
	}

	var serr error
	core.Call(func() {
		serr = cmdDev.Set(setFlag, options)
	})
	return false, serr
}

// Handle debug command. Enable debug options on a device.
func debugCmd(line *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Debug")

	device, _, err := line.getDevice()
	if err != nil {
		return false, err
	}
	for {
		token := line.getToken()
		if token == "" {
			return false, nil
		}
		if err := device.Debug(strings.ToUpper(token)); err != nil {
			return false, err
		}
	}
}

// Handle start command.
func start(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Start")
	core.SendStart()
	return false, nil
}

// Handle stop command.
func stop(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Stop")
	core.SendStop()
	return false, nil
}

// Handle continue command.
func cont(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Continue")
	core.SendStart()
	return false, nil
}

// Handle reset command. Reinitialize all devices.
func reset(_ *cmdLine, core *core.Core) (bool, error) {
	slog.Debug("Command Reset")

	var rerr error
	core.Call(func() {
		rerr = sysbus.ResetBus()
	})
	return false, rerr
}

// Handle quit command.
func quit(_ *cmdLine, _ *core.Core) (bool, error) {
	slog.Debug("Command Quit")
	return true, nil
}
