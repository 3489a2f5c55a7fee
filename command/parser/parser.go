/*
 * LiteEx - Console command parser.
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
	"strconv"
	"strings"
	"unicode"

	command "github.com/rcornwell/LiteEx/command/command"
	core "github.com/rcornwell/LiteEx/emu/core"
	dev "github.com/rcornwell/LiteEx/emu/device"
	"github.com/rcornwell/LiteEx/emu/sysbus"
)

// One console command.
type cmd struct {
	Name     string                                   // Full command name.
	Min      int                                      // Minimum characters to match.
	Process  func(*cmdLine, *core.Core) (bool, error) // Handler.
	Complete func(*cmdLine) []string                  // Argument completion.
}

// Current command line being parsed.
type cmdLine struct {
	line string // Full command line.
	pos  int    // Current position in line.
}

// Skip forward over line until none whitespace character found.
func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

// Check if at end of line.
func (line *cmdLine) isEOL() bool {
	return line.pos >= len(line.line)
}

// Grab next whitespace delimited token, empty string at end of line.
func (line *cmdLine) getToken() string {
	line.skipSpace()
	start := line.pos
	for line.pos < len(line.line) && !unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
	return line.line[start:line.pos]
}

// Get a hex bus address argument.
func (line *cmdLine) getAddress() (uint64, error) {
	token := line.getToken()
	if token == "" {
		return 0, errors.New("address argument missing")
	}
	addr, err := strconv.ParseUint(token, 16, 64)
	if err != nil {
		return 0, errors.New("invalid address: " + token)
	}
	return addr, nil
}

// Get a decimal number argument.
func (line *cmdLine) getNumber() (int, error) {
	token := line.getToken()
	if token == "" {
		return -1, errors.New("number argument missing")
	}
	value, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return -1, errors.New("invalid number: " + token)
	}
	return int(value), nil
}

// Get a 64 bit hex value argument.
func (line *cmdLine) getValue() (uint64, error) {
	token := line.getToken()
	if token == "" {
		return 0, errors.New("value argument missing")
	}
	value, err := strconv.ParseUint(token, 16, 64)
	if err != nil {
		return 0, errors.New("invalid value: " + token)
	}
	return value, nil
}

// Look up the device argument on the bus.
func (line *cmdLine) getDevice() (dev.Device, uint64, error) {
	addr, err := line.getAddress()
	if err != nil {
		return nil, 0, err
	}
	device, err := sysbus.GetDevice(addr)
	if err != nil {
		return nil, 0, err
	}
	return device, addr, nil
}

// Collect remaining tokens as name=value options.
func (line *cmdLine) getOptions() []*command.CmdOption {
	options := []*command.CmdOption{}
	for {
		token := line.getToken()
		if token == "" {
			return options
		}
		option := command.CmdOption{Name: token}
		if eq := strings.Index(token, "="); eq >= 0 {
			option.Name = token[:eq]
			option.EqualOpt = token[eq+1:]
			if value, err := strconv.ParseInt(option.EqualOpt, 0, 32); err == nil {
				option.Value = int(value)
			}
		}
		options = append(options, &option)
	}
}

// Process one console command line. Returns true when the console
// should exit.
func ProcessCommand(input string, core *core.Core) (bool, error) {
	line := &cmdLine{line: input}
	name := strings.ToLower(line.getToken())
	if name == "" {
		return false, nil
	}

	var match *cmd
	for i := range cmdList {
		entry := &cmdList[i]
		if len(name) < entry.Min || !strings.HasPrefix(entry.Name, name) {
			continue
		}
		if match != nil {
			return false, errors.New("ambiguous command: " + name)
		}
		match = entry
	}
	if match == nil {
		return false, errors.New("unknown command: " + name)
	}
	return match.Process(line, core)
}
