/*
 * LiteEx - Console command completion.
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
	"fmt"
	"strings"

	"github.com/rcornwell/LiteEx/emu/sysbus"
)

// Complete a partial console line. First word completes against the
// command table, device arguments against mapped bus addresses.
func CompleteCmd(input string) []string {
	line := &cmdLine{line: input}
	name := strings.ToLower(line.getToken())
	if name == "" {
		return nil
	}

	// Still typing the command name.
	if line.isEOL() && !strings.HasSuffix(input, " ") {
		matches := []string{}
		for i := range cmdList {
			if strings.HasPrefix(cmdList[i].Name, name) {
				matches = append(matches, cmdList[i].Name+" ")
			}
		}
		return matches
	}

	// Find the command and hand off argument completion.
	for i := range cmdList {
		entry := &cmdList[i]
		if len(name) < entry.Min || !strings.HasPrefix(entry.Name, name) {
			continue
		}
		if entry.Complete == nil {
			return nil
		}
		matches := []string{}
		for _, match := range entry.Complete(line) {
			matches = append(matches, entry.Name+" "+match)
		}
		return matches
	}
	return nil
}

// Complete a device argument against mapped bus addresses.
func DeviceComplete(line *cmdLine) []string {
	partial := strings.ToLower(line.getToken())
	matches := []string{}
	for _, base := range sysbus.DeviceList() {
		name := fmt.Sprintf("%x", base)
		if strings.HasPrefix(name, partial) {
			matches = append(matches, name)
		}
	}
	return matches
}
