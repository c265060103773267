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
	"io"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/internal/flags"
	"github.com/sunyihoo/go-web3/log"
	"github.com/urfave/cli/v2"
)

var (
	sigFlag = &cli.StringFlag{
		Name:     "sig",
		Usage:    "Function, event or error signature (or a configured alias), e.g. transfer(address,uint256)",
		Category: flags.CodecCategory,
	}
	packedFlag = &cli.BoolFlag{
		Name:     "packed",
		Usage:    "Produce the tightly packed encoding without selector",
		Category: flags.CodecCategory,
	}
	noSelectorFlag = &cli.BoolFlag{
		Name:     "noselector",
		Usage:    "Omit the 4-byte selector, e.g. for constructor arguments",
		Category: flags.CodecCategory,
	}
	typesFlag = &cli.StringFlag{
		Name:     "types",
		Usage:    "Comma separated list of types to decode, e.g. uint256,string[]",
		Category: flags.CodecCategory,
	}
	callFlag = &cli.StringFlag{
		Name:     "call",
		Usage:    "Decode the input as a call of this function signature",
		Category: flags.CodecCategory,
	}
	eventFlag = &cli.BoolFlag{
		Name:     "event",
		Usage:    "Print the 32-byte event topic instead of the 4-byte selector",
		Category: flags.CodecCategory,
	}
	indexedFlag = &cli.IntSliceFlag{
		Name:     "indexed",
		Usage:    "Zero based positions of the indexed event parameters",
		Category: flags.CodecCategory,
	}
	anonymousFlag = &cli.BoolFlag{
		Name:     "anonymous",
		Usage:    "The event is anonymous, topics carry no signature hash",
		Category: flags.CodecCategory,
	}
	topicFlag = &cli.StringSliceFlag{
		Name:     "topic",
		Usage:    "Log topic as 0x hex, repeated in order",
		Category: flags.CodecCategory,
	}
	dataFlag = &cli.StringFlag{
		Name:     "data",
		Usage:    "Log data as 0x hex",
		Category: flags.CodecCategory,
	}
	errorSigFlag = &cli.StringSliceFlag{
		Name:     "error",
		Usage:    "Custom error signature to try, repeatable",
		Category: flags.CodecCategory,
	}

	selectorCommand = &cli.Command{
		Action:    selector,
		Name:      "selector",
		Usage:     "Print the selector of a function signature",
		ArgsUsage: "<signature>",
		Flags:     []cli.Flag{eventFlag},
	}
	encodeCommand = &cli.Command{
		Action:    encode,
		Name:      "encode",
		Usage:     "Encode call data for a function signature",
		ArgsUsage: "<value> [<value>...]",
		Flags:     []cli.Flag{sigFlag, packedFlag, noSelectorFlag},
		Description: `
Values are given in their textual form: integers in decimal or 0x hex, booleans
as true/false, addresses and byte strings as 0x hex, strings verbatim, arrays
and tuples as JSON arrays.`,
	}
	decodeCommand = &cli.Command{
		Action:    decode,
		Name:      "decode",
		Usage:     "Decode ABI data into values",
		ArgsUsage: "<hexdata>",
		Flags:     []cli.Flag{typesFlag, callFlag},
	}
	eventCommand = &cli.Command{
		Action: decodeEvent,
		Name:   "event",
		Usage:  "Decode the topics and data of a log",
		Flags:  []cli.Flag{sigFlag, indexedFlag, anonymousFlag, topicFlag, dataFlag},
	}
	revertCommand = &cli.Command{
		Action:    revert,
		Name:      "revert",
		Usage:     "Decode revert data of a failed call",
		ArgsUsage: "<hexdata>",
		Flags:     []cli.Flag{errorSigFlag},
	}
)

func selector(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a single signature argument")
	}
	sig := appConfig(ctx).resolveSignature(ctx.Args().First())
	if ctx.Bool(eventFlag.Name) {
		ev, err := abi.ParseEvent(sig, false)
		if err != nil {
			return err
		}
		fmt.Fprintf(ctx.App.Writer, "%s %s\n", ev.ID.Hex(), ev.Sig)
		return nil
	}
	fn, err := abi.ParseFunction(sig)
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.App.Writer, "%s %s\n", hexutil.Encode(fn.ID), fn.Sig)
	return nil
}

func encode(ctx *cli.Context) error {
	if !ctx.IsSet(sigFlag.Name) {
		return fmt.Errorf("--%s is required", sigFlag.Name)
	}
	fn, err := abi.ParseFunction(appConfig(ctx).resolveSignature(ctx.String(sigFlag.Name)))
	if err != nil {
		return err
	}
	if ctx.NArg() != len(fn.Inputs) {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", abi.ErrIncorrectParameterCount, fn.Sig, len(fn.Inputs), ctx.NArg())
	}
	values := make([]abi.EncodedValue, len(fn.Inputs))
	for i, input := range fn.Inputs {
		if values[i], err = abi.ParseValue(input.Type, ctx.Args().Get(i)); err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
	}
	var out []byte
	switch {
	case ctx.Bool(packedFlag.Name):
		if out, err = abi.EncodePackedValues(values...); err != nil {
			return err
		}
	case ctx.Bool(noSelectorFlag.Name):
		out = abi.Compose(values)
	default:
		out = append(common.CopyBytes(fn.ID), abi.Compose(values)...)
	}
	log.Debug("Encoded arguments", "sig", fn.Sig, "size", len(out))
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(out))
	return nil
}

func decode(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a single hex data argument")
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %v", abi.ErrInvalidValue, err)
	}
	var values []abi.DecodedValue
	switch {
	case ctx.IsSet(typesFlag.Name) && ctx.IsSet(callFlag.Name):
		return fmt.Errorf("flags --%s and --%s can't be used at the same time", typesFlag.Name, callFlag.Name)
	case ctx.IsSet(callFlag.Name):
		fn, err := abi.ParseFunction(appConfig(ctx).resolveSignature(ctx.String(callFlag.Name)))
		if err != nil {
			return err
		}
		if values, err = fn.DecodeCall(data); err != nil {
			return err
		}
	case ctx.IsSet(typesFlag.Name):
		types, err := abi.ParseTypes(ctx.String(typesFlag.Name))
		if err != nil {
			return err
		}
		if values, err = abi.DecodeData(data, types, false); err != nil {
			return err
		}
	default:
		return fmt.Errorf("one of --%s or --%s is required", typesFlag.Name, callFlag.Name)
	}
	printValues(ctx.App.Writer, values)
	return nil
}

func decodeEvent(ctx *cli.Context) error {
	if !ctx.IsSet(sigFlag.Name) {
		return fmt.Errorf("--%s is required", sigFlag.Name)
	}
	sig := appConfig(ctx).resolveSignature(ctx.String(sigFlag.Name))
	ev, err := abi.ParseEvent(sig, ctx.Bool(anonymousFlag.Name), ctx.IntSlice(indexedFlag.Name)...)
	if err != nil {
		return err
	}
	var topics []common.Hash
	for _, topic := range ctx.StringSlice(topicFlag.Name) {
		b, err := hexutil.Decode(topic)
		if err != nil || len(b) != common.HashLength {
			return fmt.Errorf("%w: topic %q is not 32 bytes of hex", abi.ErrInvalidValue, topic)
		}
		topics = append(topics, common.BytesToHash(b))
	}
	var data []byte
	if ctx.IsSet(dataFlag.Name) {
		if data, err = hexutil.Decode(ctx.String(dataFlag.Name)); err != nil {
			return fmt.Errorf("%w: %v", abi.ErrInvalidValue, err)
		}
	}
	values, err := ev.DecodeLog(topics, data)
	if err != nil {
		return err
	}
	fmt.Fprintln(ctx.App.Writer, ev.String())
	printValues(ctx.App.Writer, values)
	return nil
}

func revert(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected a single hex data argument")
	}
	data, err := hexutil.Decode(ctx.Args().First())
	if err != nil {
		return fmt.Errorf("%w: %v", abi.ErrInvalidValue, err)
	}
	reason, err := abi.UnpackRevert(data)
	if err == nil {
		fmt.Fprintln(ctx.App.Writer, reason)
		return nil
	}
	// Not a builtin error, try the custom errors given on the command line.
	for _, sig := range ctx.StringSlice(errorSigFlag.Name) {
		name, types, perr := abi.ParseSignature(appConfig(ctx).resolveSignature(sig))
		if perr != nil {
			return perr
		}
		custom := abi.NewError(name, abi.NewArguments(types...))
		values, derr := custom.Decode(data)
		if errors.Is(derr, abi.ErrInvalidSignature) {
			continue
		}
		if derr != nil {
			return derr
		}
		fmt.Fprintln(ctx.App.Writer, custom.String())
		printValues(ctx.App.Writer, values)
		return nil
	}
	return err
}

// printValues writes one line per decoded value.
func printValues(w io.Writer, values []abi.DecodedValue) {
	for i, v := range values {
		fmt.Fprintf(w, "[%d] %s: %s\n", i, v.Type, formatValue(v.Interface()))
	}
}

func formatValue(v interface{}) string {
	switch v := v.(type) {
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = formatValue(item)
		}
		return "[" + strings.Join(items, ", ") + "]"
	case []byte:
		return hexutil.Encode(v)
	case common.Address:
		return v.Hex()
	case string:
		return strconv.Quote(v)
	default:
		return fmt.Sprint(v)
	}
}
