package memory

/*
 * LiteEx - Low level memory
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
	"strconv"
	"strings"

	config "github.com/rcornwell/LiteEx/config/configparser"
	"github.com/rcornwell/LiteEx/emu/sysbus"
)

type mem struct {
	mem  []uint64 // Backing store, one entry per 8 byte word
	size uint64   // Size in bytes
}

var memory mem

const (
	maxSize uint64 = 64 * 1024 * 1024 // Largest RAM allowed, 64M
)

// Set size in K.
func SetSize(k int) {
	size := uint64(k) * 1024
	if size > maxSize {
		size = maxSize
	}
	memory.size = size
	memory.mem = make([]uint64, size>>3)
}

// Return size of memory in bytes.
func GetSize() uint64 {
	return memory.size
}

// Get memory value without range check.
func GetMemory(addr uint64) uint64 {
	return memory.mem[addr>>3]
}

// Set memory to a value, without range check.
func SetMemory(addr uint64, data uint64) {
	memory.mem[addr>>3] = data
}

// Check if address out of range.
func CheckAddr(addr uint64) bool {
	return addr < memory.size
}

// Get a word from memory.
func GetWord(addr uint64) (value uint64, error bool) {
	if addr >= memory.size {
		return 0, true
	}
	return memory.mem[addr>>3], false
}

// Put a word to memory.
func PutWord(addr uint64, data uint64) bool {
	if addr >= memory.size {
		return true
	}
	memory.mem[addr>>3] = data
	return false
}

// Bus adapter presenting RAM as a device aperture.
type ramDev struct {
	base uint64
}

func (ram *ramDev) Read(offset uint64) uint64 {
	value, _ := GetWord(offset)
	return value
}

func (ram *ramDev) Write(offset uint64, value uint64) {
	_ = PutWord(offset, value)
}

func (ram *ramDev) IrqRequest(_ int, _ int) {
}

// Clear memory on reset.
func (ram *ramDev) InitDev() error {
	for i := range memory.mem {
		memory.mem[i] = 0
	}
	return nil
}

func (ram *ramDev) Shutdown() {
}

func (ram *ramDev) Debug(_ string) error {
	return errors.New("memory has no debug options")
}

// register memory on initialize.
func init() {
	config.RegisterModel("MEMORY", config.TypeModel, create)
}

// Create main memory from a config line.
func create(base uint64, _ string, options []config.Option) error {
	size := 0
	for _, option := range options {
		switch strings.ToUpper(option.Name) {
		case "SIZE":
			if size != 0 {
				return errors.New("memory size given more then once")
			}
			value := strings.ToUpper(option.EqualOpt)
			mult := 1
			if strings.HasSuffix(value, "M") {
				mult = 1024
				value = strings.TrimSuffix(value, "M")
			} else {
				value = strings.TrimSuffix(value, "K")
			}
			k, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return errors.New("memory size invalid: " + option.EqualOpt)
			}
			size = int(k) * mult
		default:
			return errors.New("memory invalid option: " + option.Name)
		}
		if option.Value != nil {
			return errors.New("extra options not supported on: " + option.Name)
		}
	}

	if size == 0 {
		return errors.New("memory requires a SIZE option")
	}
	SetSize(size)
	return sysbus.AddDevice(&ramDev{base: base}, base, GetSize())
}
