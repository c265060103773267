// Copyright 2015 The go-ethereum Authors
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

package flags

import (
	"math/big"
	"os"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestPathExpansion(t *testing.T) {
	home := HomeDir()
	tests := map[string]string{
		"/home/someuser/tmp": "/home/someuser/tmp",
		"~/tmp":              home + "/tmp",
		"~thisOtherUser/b/":  "~thisOtherUser/b",
		"$DDDXXX/a/b":        "/tmp/a/b",
		"/a/b/":              "/a/b",
	}
	if runtime.GOOS == "windows" {
		t.Skip("posix paths only")
	}
	os.Setenv("DDDXXX", "/tmp")
	defer os.Unsetenv("DDDXXX")
	for test, expected := range tests {
		require.Equal(t, expected, expandPath(test), test)
	}
}

func TestBigFlag(t *testing.T) {
	var (
		chainID = &BigFlag{Name: "chainid", Usage: "chain id", Value: big.NewInt(1)}
		config  = &PathFlag{Name: "config", Usage: "config file"}
		got     *big.Int
		path    string
	)
	app := &cli.App{
		Flags: []cli.Flag{chainID, config},
		Action: func(ctx *cli.Context) error {
			got = GlobalBig(ctx, chainID.Name)
			path = ctx.String(config.Name)
			return nil
		},
	}
	require.NoError(t, app.Run([]string{"abicodec", "--chainid", "0x89", "--config", "/etc/../abicodec.toml"}))
	require.Equal(t, big.NewInt(137), got)
	require.Equal(t, "/abicodec.toml", path)
	require.Equal(t, "1", chainID.GetDefaultText())

	bad := &cli.App{
		Flags:  []cli.Flag{&BigFlag{Name: "chainid", Value: big.NewInt(1)}},
		Action: func(*cli.Context) error { return nil },
	}
	require.Error(t, bad.Run([]string{"abicodec", "--chainid", "twelve"}))
}
