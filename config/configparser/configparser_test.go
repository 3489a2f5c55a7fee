/*
 * LiteEx - Configuration file parser tests.
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

package configparser

import (
	"testing"

	D "github.com/rcornwell/LiteEx/emu/device"
)

var testOptions []Option
var testDevAddr uint64
var testValue string
var testType string

func resetTest() {
	testOptions = []Option{}
	testDevAddr = D.NoDev
	testValue = "error"
	testType = ""
}

func cleanUpConfig() {
	models = map[string]modelDef{}
	resetTest()
}

// Create a device.
func modDevice(devAddr uint64, value string, options []Option) error {
	testDevAddr = devAddr
	testValue = value
	testType = "model"
	testOptions = options
	return nil
}

// Create a switch.
func modSwitch(devAddr uint64, value string, options []Option) error {
	testDevAddr = devAddr
	testValue = value
	testType = "switch"
	testOptions = options
	return nil
}

// Create a Option type.
func modOption(devAddr uint64, value string, options []Option) error {
	testDevAddr = devAddr
	testValue = value
	testType = "option"
	testOptions = options
	return nil
}

// Create a file type.
func modFile(devAddr uint64, value string, options []Option) error {
	testDevAddr = devAddr
	testValue = value
	testType = "file"
	testOptions = options
	return nil
}

// Test registering a model.
func TestRegisterModel(t *testing.T) {
	cleanUpConfig()

	RegisterModel("testdev", TypeModel, modDevice)
	fTest := FirstOption{devAddr: 0x1000000, isAddr: true, value: "test"}
	err := createModel("test", &fTest, nil)
	if err == nil {
		t.Errorf("Create non existent model succeeded")
	}
	err = createModel("testdev", &fTest, nil)
	if err != nil {
		t.Errorf("Unable to create model")
	}
	if testDevAddr != 0x1000000 {
		t.Errorf("Device address not valid: %x", testDevAddr)
	}
	if testValue != "" {
		t.Errorf("Device value not valid: %s", testValue)
	}
	err = createSwitch("testdev")
	if err == nil {
		t.Errorf("Create device as switch succeeded")
	}
}

// Test register a switch.
func TestRegisterSwitch(t *testing.T) {
	cleanUpConfig()

	RegisterSwitch("testswitch", modSwitch)
	err := createSwitch("test")
	if err == nil {
		t.Errorf("Create non existent switch succeeded")
	}
	err = createSwitch("testswitch")
	if err != nil {
		t.Errorf("Unable to create switch")
	}
	if testType != "switch" {
		t.Errorf("Switch type not valid: %s", testType)
	}
}

// Test register a file option.
func TestRegisterFile(t *testing.T) {
	cleanUpConfig()

	RegisterFile("testfile", modFile)
	err := createFile("test", "trace.log")
	if err == nil {
		t.Errorf("Create non existent file option succeeded")
	}
	err = createFile("testfile", "trace.log")
	if err != nil {
		t.Errorf("Unable to create file option")
	}
	if testType != "file" {
		t.Errorf("File type not valid: %s", testType)
	}
	if testValue != "trace.log" {
		t.Errorf("File name not valid: %s", testValue)
	}
}

// Test parsing of switch types.
func TestParseLineSwitch(t *testing.T) {
	cleanUpConfig()

	RegisterOption("testoption", modOption)
	RegisterSwitch("testswitch", modSwitch)
	RegisterModel("testDevice", TypeModel, modDevice)

	line := optionLine{line: "testSwitch", pos: 0}
	err := line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed to parse switch")
	}
	if testType != "switch" {
		t.Errorf("ParseLine did not create a switch")
	}

	resetTest()
	line = optionLine{line: "testSwitch  # Comment", pos: 0}
	err = line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed to parse switch and comment")
	}
	if testType != "switch" {
		t.Errorf("ParseLine did not create a switch")
	}

	resetTest()
	line = optionLine{line: "testSwitch 0", pos: 0}
	err = line.parseLine()
	if err == nil {
		t.Errorf("ParseLine succeeded in parsing switch with address")
	}
	if testType == "switch" {
		t.Errorf("ParseLine created a switch with argument")
	}
}

// Test parsing of model parameter types.
func TestParseLineModel(t *testing.T) {
	cleanUpConfig()

	RegisterModel("testDevice", TypeModel, modDevice)

	line := optionLine{line: "TESTdevice", pos: 0}
	err := line.parseLine()
	if err == nil {
		t.Errorf("ParseLine created model without argument")
	}

	resetTest()
	line = optionLine{line: "testDevice enable", pos: 0}
	err = line.parseLine()
	if err == nil {
		t.Errorf("ParseLine created device with invalid address")
	}

	resetTest()
	line = optionLine{line: "testDevice 2000000", pos: 0}
	err = line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed to parse device: %v", err)
	}
	if testType != "model" {
		t.Errorf("ParseLine did not create a device")
	}
	if testDevAddr != 0x2000000 {
		t.Errorf("Device address not valid: %x", testDevAddr)
	}
	if len(testOptions) != 0 {
		t.Errorf("ParseLine gave device some extra options")
	}
}

// Test parsing of model options.
func TestParseLineOptions(t *testing.T) {
	cleanUpConfig()

	RegisterModel("testDevice", TypeModel, modDevice)

	line := optionLine{line: "testDevice 2000000 sources=16 trace", pos: 0}
	err := line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed to parse device: %v", err)
	}
	if len(testOptions) != 2 {
		t.Fatalf("ParseLine options not correct got: %d expected: %d", len(testOptions), 2)
	}
	if testOptions[0].Name != "sources" {
		t.Errorf("Option name not valid: %s", testOptions[0].Name)
	}
	if testOptions[0].EqualOpt != "16" {
		t.Errorf("Option value not valid: %s", testOptions[0].EqualOpt)
	}
	if testOptions[1].Name != "trace" {
		t.Errorf("Option name not valid: %s", testOptions[1].Name)
	}

	resetTest()
	line = optionLine{line: "testDevice 2000000 debug=trace,irq,queue", pos: 0}
	err = line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed to parse device: %v", err)
	}
	if len(testOptions) != 1 {
		t.Fatalf("ParseLine options not correct got: %d expected: %d", len(testOptions), 1)
	}
	if testOptions[0].EqualOpt != "trace" {
		t.Errorf("Option value not valid: %s", testOptions[0].EqualOpt)
	}
	if len(testOptions[0].Value) != 2 {
		t.Fatalf("Option list not correct got: %d expected: %d", len(testOptions[0].Value), 2)
	}
	if *testOptions[0].Value[0] != "irq" {
		t.Errorf("Option list value not valid: %s", *testOptions[0].Value[0])
	}
	if *testOptions[0].Value[1] != "queue" {
		t.Errorf("Option list value not valid: %s", *testOptions[0].Value[1])
	}
}

// Test parsing of file option lines.
func TestParseLineFile(t *testing.T) {
	cleanUpConfig()

	RegisterFile("testfile", modFile)

	line := optionLine{line: "testFile \"debug trace.log\"", pos: 0}
	err := line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed to parse file option: %v", err)
	}
	if testType != "file" {
		t.Errorf("ParseLine did not create a file option")
	}
	if testValue != "debug trace.log" {
		t.Errorf("File name not valid: %s", testValue)
	}

	resetTest()
	line = optionLine{line: "testFile", pos: 0}
	err = line.parseLine()
	if err == nil {
		t.Errorf("ParseLine created file option without name")
	}
}

// Blank lines and comments are ignored.
func TestParseLineComment(t *testing.T) {
	cleanUpConfig()

	line := optionLine{line: "# full line comment", pos: 0}
	err := line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed on comment: %v", err)
	}
	line = optionLine{line: "   ", pos: 0}
	err = line.parseLine()
	if err != nil {
		t.Errorf("ParseLine failed on blank line: %v", err)
	}
	if testType != "" {
		t.Errorf("ParseLine created something from comment")
	}
}
