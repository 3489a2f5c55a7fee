/*
 * LiteEx - Debug options configuration.
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

package debugconfig

import (
	"errors"
	"strings"

	config "github.com/rcornwell/LiteEx/config/configparser"
	dev "github.com/rcornwell/LiteEx/emu/device"
	"github.com/rcornwell/LiteEx/emu/sysbus"
)

// register debug option handling on initialize.
func init() {
	config.RegisterModel("DEBUG", config.TypeOptions, setDebug)
}

// Enable debug options on a device named by its bus address.
func setDebug(devAddr uint64, device string, options []config.Option) error {
	if devAddr == dev.NoDev {
		return errors.New("debug requires a device address: " + device)
	}
	target, err := sysbus.GetDevice(devAddr)
	if err != nil {
		return err
	}

	for _, opt := range options {
		err := target.Debug(strings.ToUpper(opt.Name))
		if err != nil {
			return err
		}
		if len(opt.Value) != 0 {
			for _, value := range opt.Value {
				err = target.Debug(strings.ToUpper(*value))
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
