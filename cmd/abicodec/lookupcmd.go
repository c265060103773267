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
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common/compiler"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/sunyihoo/go-web3/log"
	"github.com/sunyihoo/go-web3/signer/fourbyte"
	"github.com/urfave/cli/v2"
)

var (
	customDBFlag = &flags.PathFlag{
		Name:     "4bytedb.custom",
		Usage:    "File used for writing new 4byte-identifiers submitted via the register command",
		Category: flags.CodecCategory,
	}

	combinedJSONFlag = &flags.PathFlag{
		Name:     "combined-json",
		Usage:    "Register the method hashes of a solc --combined-json output file",
		Category: flags.CodecCategory,
	}

	lookupCommand = &cli.Command{
		Action:    lookup,
		Name:      "lookup",
		Usage:     "Identify a selector or call data using the 4byte database",
		ArgsUsage: "<selector|calldata>",
		Flags:     []cli.Flag{customDBFlag},
		Description: `
A 4-byte argument prints the known signature. Longer input is decoded as a call
of that signature and rejected if it does not re-encode to the same bytes.`,
	}
	registerCommand = &cli.Command{
		Action:    register,
		Name:      "register",
		Usage:     "Add function signatures to the custom 4byte database",
		ArgsUsage: "<signature> [<signature>...]",
		Flags:     []cli.Flag{customDBFlag, combinedJSONFlag},
	}
)

// openSignatureDB opens the embedded database together with the custom file
// from the flag or, failing that, the configuration file.
func openSignatureDB(ctx *cli.Context) (*fourbyte.Database, error) {
	path := appConfig(ctx).SignatureDB
	if ctx.IsSet(customDBFlag.Name) {
		path = ctx.String(customDBFlag.Name)
	}
	db, err := fourbyte.NewWithFile(path)
	if err != nil {
		return nil, err
	}
	embedded, custom := db.Size()
	log.Debug("Loaded 4byte database", "embedded", embedded, "custom", custom, "path", path)
	return db, nil
}

func lookup(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a single selector or call data argument")
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %v", abi.ErrInvalidValue, err)
	}
	db, err := openSignatureDB(ctx)
	if err != nil {
		return err
	}
	if len(data) == abi.SelectorLength {
		sig, err := db.Selector(data)
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, sig)
		return nil
	}
	call, err := db.ParseCallData(data)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, call.Function.Sig)
	printValues(ctx.App.Writer, call.Values)
	return nil
}

func register(ctx *cli.Context) error {
	sigs := ctx.Args().Slice()
	if ctx.IsSet(combinedJSONFlag.Name) {
		hashed, err := combinedSignatures(ctx.String(combinedJSONFlag.Name))
		if err != nil {
			return err
		}
		sigs = append(sigs, hashed...)
	}
	if len(sigs) == 0 {
		return errors.New("expected at least one signature")
	}
	db, err := openSignatureDB(ctx)
	if err != nil {
		return err
	}
	for _, sig := range sigs {
		fn, err := db.AddSelector(appConfig(ctx).resolveSignature(sig))
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s %s\n", hexutil.Encode(fn.ID), fn.Sig)
	}
	return nil
}

// combinedSignatures returns the method signatures of every contract in a
// solc combined-json file, sorted. The selectors solc computed must agree
// with ours.
func combinedSignatures(path string) ([]string, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	contracts, err := compiler.ParseCombinedJSON(blob, "", "", "", "")
	if err != nil {
		return nil, err
	}
	var sigs []string
	for name, contract := range contracts {
		fns, err := contract.Functions()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		for _, fn := range fns {
			sigs = append(sigs, fn.Sig)
		}
	}
	sort.Strings(sigs)
	return sigs, nil
}
