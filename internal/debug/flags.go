// Copyright 2016 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package debug configures the process wide logger from command line flags
// and the [Log] section of the configuration file.
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/sunyihoo/go-web3/log"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig is the [Log] section of the configuration file. Command line
// flags take precedence over it.
type LogConfig struct {
	Verbosity  int    // 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail
	Format     string // json|logfmt|terminal
	Vmodule    string
	File       string
	Rotate     bool
	MaxSizeMBs int
}

// DefaultLogConfig is used when neither a file nor a flag says otherwise.
var DefaultLogConfig = LogConfig{
	Verbosity:  2,
	Format:     "terminal",
	MaxSizeMBs: 100,
}

var (
	VerbosityFlag = &cli.IntFlag{
		Name:     "verbosity",
		Usage:    "Logging verbosity: 0=silent, 1=error, 2=warn, 3=info, 4=debug, 5=detail",
		Value:    DefaultLogConfig.Verbosity,
		Category: flags.LoggingCategory,
	}
	LogVmoduleFlag = &cli.StringFlag{
		Name:     "log.vmodule",
		Usage:    "Per-module verbosity: comma-separated list of <pattern>=<level> (e.g. abi=5)",
		Category: flags.LoggingCategory,
	}
	LogFormatFlag = &cli.StringFlag{
		Name:     "log.format",
		Usage:    "Log format to use (json|logfmt|terminal)",
		Value:    DefaultLogConfig.Format,
		Category: flags.LoggingCategory,
	}
	LogFileFlag = &flags.PathFlag{
		Name:     "log.file",
		Usage:    "Write logs to a file",
		Category: flags.LoggingCategory,
	}
	LogRotateFlag = &cli.BoolFlag{
		Name:     "log.rotate",
		Usage:    "Enables log file rotation",
		Category: flags.LoggingCategory,
	}
	LogMaxSizeMBsFlag = &cli.IntFlag{
		Name:     "log.maxsize",
		Usage:    "Maximum size in MBs of a single log file",
		Value:    DefaultLogConfig.MaxSizeMBs,
		Category: flags.LoggingCategory,
	}
)

// Flags holds all command-line flags required for debugging.
var Flags = []cli.Flag{
	VerbosityFlag,
	LogVmoduleFlag,
	LogFormatFlag,
	LogFileFlag,
	LogRotateFlag,
	LogMaxSizeMBsFlag,
}

var logOutputFile io.WriteCloser

// ApplyFlags overrides the fields of cfg for every logging flag set on the
// command line.
func ApplyFlags(ctx *cli.Context, cfg *LogConfig) {
	if ctx.IsSet(VerbosityFlag.Name) {
		cfg.Verbosity = ctx.Int(VerbosityFlag.Name)
	}
	if ctx.IsSet(LogVmoduleFlag.Name) {
		cfg.Vmodule = ctx.String(LogVmoduleFlag.Name)
	}
	if ctx.IsSet(LogFormatFlag.Name) {
		cfg.Format = ctx.String(LogFormatFlag.Name)
	}
	if ctx.IsSet(LogFileFlag.Name) {
		cfg.File = ctx.String(LogFileFlag.Name)
	}
	if ctx.IsSet(LogRotateFlag.Name) {
		cfg.Rotate = ctx.Bool(LogRotateFlag.Name)
	}
	if ctx.IsSet(LogMaxSizeMBsFlag.Name) {
		cfg.MaxSizeMBs = ctx.Int(LogMaxSizeMBsFlag.Name)
	}
}

// Setup initializes the root logger from cfg. Terminal output is colored when
// stderr is a terminal.
func Setup(cfg LogConfig) error {
	var (
		handler        slog.Handler
		terminalOutput = io.Writer(os.Stderr)
		output         io.Writer
	)
	if len(cfg.File) > 0 {
		if err := validateLogLocation(filepath.Dir(cfg.File)); err != nil {
			return fmt.Errorf("failed to initialize file logger: %v", err)
		}
	}
	// 日志输出目标：轮转文件、普通文件，或仅终端。
	switch {
	case cfg.Rotate && cfg.File != "":
		logOutputFile = &lumberjack.Logger{
			Filename: cfg.File,
			MaxSize:  cfg.MaxSizeMBs,
		}
		output = io.MultiWriter(terminalOutput, logOutputFile)
	case cfg.File != "":
		var err error
		if logOutputFile, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644); err != nil {
			return err
		}
		output = io.MultiWriter(logOutputFile, terminalOutput)
	default:
		output = terminalOutput
	}

	switch cfg.Format {
	case "json":
		handler = log.JSONHandler(output)
	case "logfmt":
		handler = log.LogfmtHandler(output)
	case "", "terminal":
		useColor := (isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd())) && os.Getenv("TERM") != "dumb"
		if useColor {
			terminalOutput = colorable.NewColorableStderr()
			if logOutputFile != nil {
				output = io.MultiWriter(logOutputFile, terminalOutput)
			} else {
				output = terminalOutput
			}
		}
		handler = log.NewTerminalHandler(output, useColor)
	default:
		return fmt.Errorf("unknown log format: %v", cfg.Format)
	}

	glogger := log.NewGlogHandler(handler)
	glogger.Verbosity(log.FromLegacyLevel(cfg.Verbosity))
	if err := glogger.Vmodule(cfg.Vmodule); err != nil {
		return fmt.Errorf("invalid log.vmodule: %v", err)
	}
	log.SetDefault(log.NewLogger(glogger))

	if len(cfg.File) > 0 {
		log.Debug("Logging configured", "format", cfg.Format, "location", cfg.File, "rotate", cfg.Rotate)
	}
	return nil
}

// Exit closes the log file, if any.
func Exit() {
	if logOutputFile != nil {
		logOutputFile.Close()
		logOutputFile = nil
	}
}

func validateLogLocation(path string) error {
	if err := os.MkdirAll(path, os.ModePerm); err != nil {
		return fmt.Errorf("error creating the directory: %w", err)
	}
	// Check if the path is writable by trying to create a temporary file
	tmp := filepath.Join(path, "tmp")
	if f, err := os.Create(tmp); err != nil {
		return err
	} else {
		f.Close()
	}
	return os.Remove(tmp)
}
