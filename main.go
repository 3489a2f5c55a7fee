/*
 * LiteEx - Main process.
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

package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	getopt "github.com/pborman/getopt/v2"
	reader "github.com/rcornwell/LiteEx/command/reader"
	config "github.com/rcornwell/LiteEx/config/configparser"
	core "github.com/rcornwell/LiteEx/emu/core"
	master "github.com/rcornwell/LiteEx/emu/master"
	pulse "github.com/rcornwell/LiteEx/emu/pulse"
	sysbus "github.com/rcornwell/LiteEx/emu/sysbus"
	logger "github.com/rcornwell/LiteEx/util/logger"

	_ "github.com/rcornwell/LiteEx/config/debugconfig"
	_ "github.com/rcornwell/LiteEx/emu/executor"
	_ "github.com/rcornwell/LiteEx/emu/memory"
	_ "github.com/rcornwell/LiteEx/util/debug"
)

var Logger *slog.Logger

func main() {
	optConfig := getopt.StringLong("config", 'c', "LiteEx.cfg", "Configuration file")
	optLogFile := getopt.StringLong("log", 'l', "", "Log file")
	optDebug := getopt.BoolLong("debug", 'd', "Echo debug log to stderr")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	var file *os.File
	if *optLogFile != "" {
		file, _ = os.Create(*optLogFile)
	}
	programLevel := new(slog.LevelVar)
	programLevel.Set(slog.LevelDebug)
	Logger = slog.New(logger.NewHandler(file, &slog.HandlerOptions{Level: programLevel, AddSource: false}, optDebug))
	slog.SetDefault(Logger)

	Logger.Info("LiteEx Started")

	_, err := os.Stat(*optConfig)
	if os.IsNotExist(err) {
		Logger.Error("Configuration file " + *optConfig + " can't be found")
		os.Exit(0)
	}

	sysbus.InitializeBus()

	masterChannel := make(chan master.Packet)
	pulse.SetMaster(masterChannel)

	err = config.LoadConfigFile(*optConfig)
	if err != nil {
		Logger.Error(err.Error())
		os.Exit(0)
	}

	// Create the core loop and start it running.
	core := core.NewCore(masterChannel)
	go core.Start()
	core.SendStart()

	// Shut down cleanly on SIGINT or SIGTERM.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Println("Received signal:", sig)
		pulse.ShutdownAll()
		core.Stop()
		os.Exit(0)
	}()

	// Run operator console until quit.
	reader.ConsoleReader(core)

	pulse.ShutdownAll()
	core.Stop()
	Logger.Info("LiteEx Shutdown")
}
