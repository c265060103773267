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
	"errors"
	"fmt"
)

// The five error kinds of the codec. Every error returned by this package wraps
// exactly one of them; match with errors.Is.
var (
	// ErrInvalidSignature is returned when call data does not start with the
	// selector of the function it is decoded against.
	ErrInvalidSignature = errors.New("abi: invalid signature")

	// ErrInvalidType is returned for type descriptors that cannot be parsed or
	// shapes that a code path does not accept.
	ErrInvalidType = errors.New("abi: invalid type")

	// ErrInvalidValue is returned for malformed input: bad hex, out of range
	// integers, truncated or out of bounds payloads.
	ErrInvalidValue = errors.New("abi: invalid value")

	// ErrIncorrectParameterCount is returned when the number of values does not
	// match the number of declared types.
	ErrIncorrectParameterCount = errors.New("abi: incorrect parameter count")

	// ErrNotCurrentlySupported is returned for packed encodings of tuples and
	// arrays of compound types.
	ErrNotCurrentlySupported = errors.New("abi: not currently supported")
)

var errorKinds = []error{ErrInvalidSignature, ErrInvalidType, ErrInvalidValue, ErrIncorrectParameterCount, ErrNotCurrentlySupported}

// jsonErr classifies an error from decoding a JSON ABI. Errors raised by this
// package pass through; syntax and shape errors become ErrInvalidType.
func jsonErr(err error) error {
	for _, kind := range errorKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrInvalidType, err)
}

// 严格解码：不符合规范编码的字会被拒绝，而不是被截断。
var (
	errBadBool = fmt.Errorf("%w: improperly encoded boolean value", ErrInvalidValue)
	errBadUint = fmt.Errorf("%w: improperly encoded unsigned integer", ErrInvalidValue)
	errBadInt  = fmt.Errorf("%w: improperly encoded signed integer", ErrInvalidValue)
	errBadAddr = fmt.Errorf("%w: improperly encoded address", ErrInvalidValue)
)

// typeErr returns a formatted type mismatch error.
func typeErr(expected, got interface{}) error {
	return fmt.Errorf("%w: cannot use %v as type %v as argument", ErrInvalidType, got, expected)
}

// boundsErr reports a read past the end of the input.
func boundsErr(what string, start, length, have int) error {
	return fmt.Errorf("%w: %s at offset %d (length %d) exceeds input of %d bytes", ErrInvalidValue, what, start, length, have)
}
