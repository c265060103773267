// Copyright 2024 The go-ethereum Authors
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

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/common/math"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/sunyihoo/go-web3/signer/eip712"
	"github.com/urfave/cli/v2"
)

var (
	chainIDFlag = &flags.BigFlag{
		Name:     "chainid",
		Usage:    "Override the chainId of the signing domain",
		Category: flags.TypedDataCategory,
	}
	showFlag = &cli.BoolFlag{
		Name:     "show",
		Usage:    "Print the typed data in readable form before the digest",
		Category: flags.TypedDataCategory,
	}

	typedHashCommand = &cli.Command{
		Action:    typedHash,
		Name:      "typedhash",
		Usage:     "Compute the EIP-712 digest of a typed data JSON file",
		ArgsUsage: "<file.json>",
		Flags:     []cli.Flag{chainIDFlag, showFlag},
		Description: `
The file holds the JSON object passed to eth_signTypedData_v4, with the keys
types, primaryType, domain and message.`,
	}
)

func typedHash(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a single typed data file argument")
	}
	raw, err := os.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}
	var typedData eip712.TypedData
	if err := json.Unmarshal(raw, &typedData); err != nil {
		return fmt.Errorf("invalid typed data: %v", err)
	}
	if ctx.IsSet(chainIDFlag.Name) {
		typedData.Domain.ChainId = (*math.HexOrDecimal256)(flags.GlobalBig(ctx, chainIDFlag.Name))
	}
	digest, _, err := eip712.TypedDataAndHash(typedData)
	if err != nil {
		return err
	}
	if ctx.Bool(showFlag.Name) {
		nvts, err := typedData.Format()
		if err != nil {
			return err
		}
		for _, nvt := range nvts {
			fmt.Fprint(ctx.App.Writer, nvt.Pprint(0))
		}
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(digest))
	return nil
}
