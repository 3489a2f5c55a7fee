package memory

/*
 * LiteEx - Low level memory tests.
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
	"testing"
)

// Set size in K.
func TestSetSize(t *testing.T) {
	SetSize(64)
	if GetSize() != 64*1024 {
		t.Errorf("Memory size not correct got: %d expected: %d", GetSize(), 64*1024)
	}
	SetSize(128 * 1024)
	if GetSize() != 64*1024*1024 {
		t.Errorf("Memory size not capped got: %d expected: %d", GetSize(), 64*1024*1024)
	}
}

// Check get and set memory.
func TestGetSetMemory(t *testing.T) {
	SetSize(8)
	for i := uint64(0); i < 256; i++ {
		SetMemory(i*8, i+0x1000)
	}
	for i := uint64(0); i < 256; i++ {
		r := GetMemory(i * 8)
		if r != i+0x1000 {
			t.Errorf("GetMemory not correct got: %016x expected: %016x", r, i+0x1000)
		}
	}
}

// Check ranged word access.
func TestGetPutWord(t *testing.T) {
	SetSize(8)
	if PutWord(0x100, 0x55) {
		t.Error("PutWord in range failed")
	}
	r, fault := GetWord(0x100)
	if fault {
		t.Error("GetWord in range failed")
	}
	if r != 0x55 {
		t.Errorf("GetWord not correct got: %016x expected: %016x", r, 0x55)
	}
	if !PutWord(8*1024, 0x55) {
		t.Error("PutWord out of range did not fail")
	}
	if _, fault := GetWord(8 * 1024); !fault {
		t.Error("GetWord out of range did not fail")
	}
	if !CheckAddr(0x100) {
		t.Error("CheckAddr in range failed")
	}
	if CheckAddr(8 * 1024) {
		t.Error("CheckAddr out of range did not fail")
	}
}

// RAM bus adapter round trips words and clears on reset.
func TestRAMDevice(t *testing.T) {
	SetSize(8)
	ram := ramDev{}
	ram.Write(0x40, 0xdeadbeef)
	r := ram.Read(0x40)
	if r != 0xdeadbeef {
		t.Errorf("RAM read not correct got: %016x expected: %016x", r, 0xdeadbeef)
	}
	if err := ram.InitDev(); err != nil {
		t.Fatalf("InitDev failed: %v", err)
	}
	r = ram.Read(0x40)
	if r != 0 {
		t.Errorf("RAM not cleared got: %016x expected: %016x", r, 0)
	}
	// Out of range access reads zero and drops the write.
	ram.Write(8*1024, 1)
	r = ram.Read(8 * 1024)
	if r != 0 {
		t.Errorf("RAM out of range read not correct got: %016x expected: %016x", r, 0)
	}
}
