// Copyright 2014 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

// abicodec encodes and decodes Ethereum contract ABI data from the command line.
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/sunyihoo/go-web3/internal/debug"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/urfave/cli/v2"
)

const configKey = "abicodec.config"

func newApp() *cli.App {
	app := flags.NewApp("the Ethereum contract ABI codec")
	app.Flags = slices.Concat(debug.Flags, []cli.Flag{configFileFlag})
	app.Commands = []*cli.Command{
		selectorCommand,
		encodeCommand,
		decodeCommand,
		eventCommand,
		revertCommand,
		lookupCommand,
		registerCommand,
		typedHashCommand,
		dumpConfigCommand,
	}
	app.Before = func(ctx *cli.Context) error {
		cfg, err := loadBaseConfig(ctx)
		if err != nil {
			return err
		}
		if err := debug.Setup(cfg.Log); err != nil {
			return err
		}
		ctx.App.Metadata[configKey] = &cfg
		return nil
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
	return app
}

// appConfig returns the configuration loaded before the command started.
func appConfig(ctx *cli.Context) *abicodecConfig {
	if cfg, ok := ctx.App.Metadata[configKey].(*abicodecConfig); ok {
		return cfg
	}
	return &abicodecConfig{Log: debug.DefaultLogConfig}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
