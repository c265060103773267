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

package abi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"

	"github.com/sunyihoo/go-web3/common"
)

// The ABI holds information about a contract's context and available
// invocable methods. It will allow you to type check function calls and
// packs data accordingly.
type ABI struct {
	Constructor Constructor
	Methods     map[string]Function
	Events      map[string]Event
	Errors      map[string]Error
}

// JSON returns a parsed ABI interface and error if it failed.
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, jsonErr(err)
	}
	return abi, nil
}

// Pack packs the call data of the named method. An empty name packs the
// constructor arguments without bytecode.
func (abi ABI) Pack(name string, args ...Value) ([]byte, error) {
	if name == "" {
		return abi.Constructor.Inputs.Pack(args...)
	}
	method, exist := abi.Methods[name]
	if !exist {
		return nil, fmt.Errorf("%w: method '%s' not found", ErrInvalidSignature, name)
	}
	return method.Pack(args...)
}

// PackValues is Pack for loosely typed Go values.
func (abi ABI) PackValues(name string, args ...interface{}) ([]byte, error) {
	if name == "" {
		return abi.Constructor.Inputs.PackValues(args...)
	}
	method, exist := abi.Methods[name]
	if !exist {
		return nil, fmt.Errorf("%w: method '%s' not found", ErrInvalidSignature, name)
	}
	return method.PackValues(args...)
}

// Unpack decodes the output of the named method, or the data of the named
// event.
func (abi ABI) Unpack(name string, data []byte) ([]interface{}, error) {
	if method, ok := abi.Methods[name]; ok {
		return method.Outputs.Unpack(data)
	}
	if event, ok := abi.Events[name]; ok {
		return event.Inputs.NonIndexed().Unpack(data)
	}
	return nil, fmt.Errorf("%w: could not locate named method or event %q", ErrInvalidSignature, name)
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var fields []struct {
		Type    string
		Name    string
		Inputs  []Argument
		Outputs []Argument

		// Status indicator which can be: "pure", "view",
		// "nonpayable" or "payable".
		StateMutability string

		// Event relevant indicator represents the event is
		// declared as anonymous.
		Anonymous bool
	}
	if err := json.Unmarshal(data, &fields); err != nil {
		return jsonErr(err)
	}
	abi.Methods = make(map[string]Function)
	abi.Events = make(map[string]Event)
	abi.Errors = make(map[string]Error)
	for _, field := range fields {
		switch field.Type {
		case "constructor":
			abi.Constructor = Constructor{Inputs: field.Inputs}
		case "function":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Methods[s]; return ok })
			abi.Methods[name] = NewFunction(name, field.Name, field.StateMutability, field.Inputs, field.Outputs)
		case "fallback", "receive":
			// 回退与接收函数没有参数，也没有选择器。
		case "event":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Events[s]; return ok })
			abi.Events[name] = NewEvent(name, field.Name, field.Anonymous, field.Inputs)
		case "error":
			// Errors cannot be overloaded or overridden but are inherited,
			// no need to resolve the name conflict here.
			abi.Errors[field.Name] = NewError(field.Name, field.Inputs)
		default:
			return fmt.Errorf("%w: could not recognize type %v of field %v", ErrInvalidType, field.Type, field.Name)
		}
	}
	return nil
}

// MethodById looks up a method by the 4-byte id.
func (abi *ABI) MethodById(sigdata []byte) (*Function, error) {
	if len(sigdata) < SelectorLength {
		return nil, fmt.Errorf("%w: data too short (%d bytes) for abi method lookup", ErrInvalidSignature, len(sigdata))
	}
	for _, method := range abi.Methods {
		if bytes.Equal(method.ID, sigdata[:SelectorLength]) {
			return &method, nil
		}
	}
	return nil, fmt.Errorf("%w: no method with id: %#x", ErrInvalidSignature, sigdata[:SelectorLength])
}

// EventByID looks an event up by its topic hash in the ABI.
func (abi *ABI) EventByID(topic common.Hash) (*Event, error) {
	for _, event := range abi.Events {
		if event.ID == topic {
			return &event, nil
		}
	}
	return nil, fmt.Errorf("%w: no event with id: %v", ErrInvalidSignature, topic.Hex())
}

// ErrorByID looks up an error by the 4-byte id.
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Error, error) {
	for _, errABI := range abi.Errors {
		if bytes.Equal(errABI.ID[:SelectorLength], sigdata[:]) {
			return &errABI, nil
		}
	}
	return nil, fmt.Errorf("%w: no error with id: %#x", ErrInvalidSignature, sigdata[:])
}

var (
	// revertError is the error raised by require(cond, "reason") and revert("reason").
	revertError = NewError("Error", NewArguments(StringType))

	// panicError is raised by failing assertions and arithmetic checks.
	panicError = NewError("Panic", NewArguments(UintType(256)))
)

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// spec https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`.
// UnpackRevert 解析 ABI 编码的 revert 原因。
func UnpackRevert(data []byte) (string, error) {
	if len(data) < SelectorLength {
		return "", fmt.Errorf("%w: invalid data for unpacking", ErrInvalidSignature)
	}
	switch {
	case bytes.Equal(data[:SelectorLength], revertError.ID[:SelectorLength]):
		unpacked, err := revertError.Unpack(data)
		if err != nil {
			return "", err
		}
		return unpacked[0].(string), nil
	case bytes.Equal(data[:SelectorLength], panicError.ID[:SelectorLength]):
		unpacked, err := panicError.Unpack(data)
		if err != nil {
			return "", err
		}
		pCode := unpacked[0].(*big.Int)
		if pCode.IsUint64() {
			if reason, ok := panicReasons[pCode.Uint64()]; ok {
				return reason, nil
			}
		}
		return fmt.Sprintf("unknown panic code: %#x", pCode), nil
	default:
		return "", fmt.Errorf("%w: invalid data for unpacking", ErrInvalidSignature)
	}
}
