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

package abi

import (
	"bytes"
	"fmt"

	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/crypto"
)

// Error represents a custom error defined in the ABI, raised by revert
// statements as if it were a call to a function of the same signature.
type Error struct {
	Name   string
	Inputs Arguments
	str    string

	// Sig contains the string signature according to the ABI spec.
	// e.g. error foo(uint32 a, int b) = "foo(uint32,int256)"
	Sig string

	// ID is the Keccak-256 hash of Sig; its first four bytes prefix the
	// revert data.
	ID common.Hash
}

// NewError creates a new Error instance with the given name and inputs.
func NewError(name string, inputs Arguments) Error {
	inputs, names, types := sanitizeArguments(inputs)
	sig := fmt.Sprintf("%v(%v)", name, types)
	return Error{
		Name:   name,
		Inputs: inputs,
		str:    fmt.Sprintf("error %v(%v)", name, names),
		Sig:    sig,
		ID:     crypto.Keccak256Hash([]byte(sig)),
	}
}

// String returns the string representation of the error.
func (e Error) String() string {
	return e.str
}

// Decode checks that data carries the error's selector and decodes the
// error's inputs from the rest.
func (e Error) Decode(data []byte) ([]DecodedValue, error) {
	if len(data) < SelectorLength {
		return nil, fmt.Errorf("%w: insufficient data for unpacking: have %d, want at least 4", ErrInvalidSignature, len(data))
	}
	if !bytes.Equal(data[:SelectorLength], e.ID[:SelectorLength]) {
		return nil, fmt.Errorf("%w: invalid identifier, have %#x want %#x", ErrInvalidSignature, data[:SelectorLength], e.ID[:SelectorLength])
	}
	return e.Inputs.UnpackValues(data[SelectorLength:])
}

// Unpack decodes the provided data into Go values of the error's inputs.
func (e Error) Unpack(data []byte) ([]interface{}, error) {
	values, err := e.Decode(data)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out, nil
}
