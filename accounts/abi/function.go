// Copyright 2022 The go-ethereum Authors
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
	"fmt"
	"strings"

	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/crypto"
	"github.com/sunyihoo/go-web3/log"
)

// SelectorLength is the byte length of a function selector.
const SelectorLength = 4

// Signature returns the canonical signature name(t1,t2,...) of a function
// with the given parameter types.
func Signature(name string, types []RawType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return name + "(" + strings.Join(names, ",") + ")"
}

// Selector returns the first four bytes of the Keccak-256 hash of the
// function's canonical signature.
// 例如 transfer(address,uint256) 的选择器是 0xa9059cbb。
func Selector(name string, types []RawType) []byte {
	return crypto.Keccak256([]byte(Signature(name, types)))[:SelectorLength]
}

// Function represents a callable contract function.
type Function struct {
	// Name is the method name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of a function overload.
	Name    string
	RawName string // raw method name as declared in the ABI

	// StateMutability indicates the mutability state of method,
	// the default value is nonpayable. It can be empty if the abi
	// is generated by legacy compiler.
	StateMutability string

	Inputs  Arguments
	Outputs Arguments
	str     string

	// Sig returns the methods string signature according to the ABI spec.
	// e.g.		function foo(uint32 a, int b) = "foo(uint32,int256)"
	// Please note that "int" is substitute for its canonical representation "int256"
	Sig string

	// ID returns the canonical representation of the method's signature used by the
	// abi definition to identify method names and types.
	ID []byte
}

// NewFunction creates a new Function. Unnamed inputs are named arg<i>; the
// signature, selector and string representation are precomputed.
func NewFunction(name, rawName, mutability string, inputs, outputs Arguments) Function {
	inputs, inputNames, types := sanitizeArguments(inputs)
	outputNames := make([]string, len(outputs))
	for i, output := range outputs {
		outputNames[i] = output.Type.String()
		if len(output.Name) > 0 {
			outputNames[i] += " " + output.Name
		}
	}
	sig := fmt.Sprintf("%v(%v)", rawName, types)
	str := fmt.Sprintf("function %v(%v)", rawName, inputNames)
	if mutability != "" && mutability != "nonpayable" {
		str += " " + mutability
	}
	if len(outputs) > 0 {
		str += fmt.Sprintf(" returns(%v)", strings.Join(outputNames, ", "))
	}
	return Function{
		Name:            name,
		RawName:         rawName,
		StateMutability: mutability,
		Inputs:          inputs,
		Outputs:         outputs,
		str:             str,
		Sig:             sig,
		ID:              crypto.Keccak256([]byte(sig))[:SelectorLength],
	}
}

// ParseFunction builds a Function from a textual signature such as
// "transfer(address,uint256)" and the types it returns.
func ParseFunction(signature string, outputs ...RawType) (Function, error) {
	name, types, err := ParseSignature(signature)
	if err != nil {
		return Function{}, err
	}
	return NewFunction(name, name, "", NewArguments(types...), NewArguments(outputs...)), nil
}

// String returns the human-readable form of the function.
func (f Function) String() string {
	return f.str
}

// Pack returns the call data: the selector followed by the composed
// arguments.
func (f Function) Pack(values ...Value) ([]byte, error) {
	args, err := f.Inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", f.Sig, err)
	}
	return append(common.CopyBytes(f.ID), args...), nil
}

// PackValues is Pack for loosely typed Go values.
func (f Function) PackValues(values ...interface{}) ([]byte, error) {
	args, err := f.Inputs.PackValues(values...)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", f.Sig, err)
	}
	return append(common.CopyBytes(f.ID), args...), nil
}

// DecodeCall verifies that data is a call to f and decodes its arguments.
func (f Function) DecodeCall(data []byte) ([]DecodedValue, error) {
	if len(data) < SelectorLength {
		return nil, fmt.Errorf("%w: data too short (%d bytes) for %v", ErrInvalidSignature, len(data), f.Sig)
	}
	if !bytes.Equal(data[:SelectorLength], f.ID) {
		if log.TraceEnabled() {
			log.Trace("Call selector mismatch", "want", common.Bytes2Hex(f.ID), "have", common.Bytes2Hex(data[:SelectorLength]))
		}
		return nil, fmt.Errorf("%w: have %#x want %#x", ErrInvalidSignature, data[:SelectorLength], f.ID)
	}
	return f.Inputs.UnpackValues(data[SelectorLength:])
}

// DecodeOutput decodes the return data of a call to f.
func (f Function) DecodeOutput(data []byte) ([]DecodedValue, error) {
	return f.Outputs.UnpackValues(data)
}

// Constructor describes contract creation: deployment bytecode followed by
// the composed constructor arguments.
type Constructor struct {
	Bytecode []byte
	Inputs   Arguments
}

// Pack returns the deployment payload.
func (c Constructor) Pack(values ...Value) ([]byte, error) {
	args, err := c.Inputs.Pack(values...)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	return append(common.CopyBytes(c.Bytecode), args...), nil
}

// PackValues is Pack for loosely typed Go values.
func (c Constructor) PackValues(values ...interface{}) ([]byte, error) {
	args, err := c.Inputs.PackValues(values...)
	if err != nil {
		return nil, fmt.Errorf("constructor: %w", err)
	}
	return append(common.CopyBytes(c.Bytecode), args...), nil
}
