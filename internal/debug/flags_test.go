// Copyright 2024 The go-ethereum Authors
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

package debug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/log"
	"github.com/urfave/cli/v2"
)

func resetRoot(t *testing.T) {
	t.Cleanup(func() {
		Exit()
		log.SetDefault(log.NewLogger(log.DiscardHandler()))
	})
}

func TestSetupLogFile(t *testing.T) {
	resetRoot(t)
	file := filepath.Join(t.TempDir(), "logs", "abicodec.log")

	cfg := DefaultLogConfig
	cfg.Format = "logfmt"
	cfg.Verbosity = 3
	cfg.File = file
	require.NoError(t, Setup(cfg))

	log.Info("Decoded call", "method", "transfer")
	log.Debug("Filtered out")
	Exit()

	out, err := os.ReadFile(file)
	require.NoError(t, err)
	require.Contains(t, string(out), "lvl=info")
	require.Contains(t, string(out), "method=transfer")
	require.NotContains(t, string(out), "Filtered out")
}

func TestSetupErrors(t *testing.T) {
	resetRoot(t)

	cfg := DefaultLogConfig
	cfg.Format = "xml"
	require.ErrorContains(t, Setup(cfg), "unknown log format")

	cfg = DefaultLogConfig
	cfg.Vmodule = "abi"
	require.ErrorContains(t, Setup(cfg), "invalid log.vmodule")
}

func TestApplyFlags(t *testing.T) {
	var got LogConfig
	app := &cli.App{
		Flags: Flags,
		Action: func(ctx *cli.Context) error {
			got = LogConfig{Verbosity: 1, Format: "json", Vmodule: "abi=5"}
			ApplyFlags(ctx, &got)
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"abicodec", "--verbosity", "5", "--log.format", "logfmt"}))
	require.Equal(t, LogConfig{Verbosity: 5, Format: "logfmt", Vmodule: "abi=5"}, got)
}
