// Copyright 2017 The go-ethereum Authors
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
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/common/math"
)

// EncodeValue encodes a loosely typed Go value against t.
//
// Accepted inputs per kind:
//
//	uint/int  *big.Int, *uint256.Int, any Go integer kind
//	bool      bool
//	address   common.Address, [20]byte
//	bytesN    []byte, [N]byte, common.Hash (bytes32)
//	bytes     []byte
//	string    string
//	arrays    []interface{} or any slice/array whose elements are accepted
//	tuples    []interface{} with one entry per field
func EncodeValue(t RawType, v interface{}) (EncodedValue, error) {
	if err := t.Validate(); err != nil {
		return EncodedValue{}, err
	}
	return encodeValue(t, v, 0)
}

func encodeValue(t RawType, v interface{}, depth int) (EncodedValue, error) {
	if depth > MaxNestingDepth {
		return EncodedValue{}, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxNestingDepth)
	}
	switch t.T {
	case UintTy, IntTy:
		n, err := toBig(v)
		if err != nil {
			return EncodedValue{}, err
		}
		return EncodeInteger(t, n)
	case BoolTy:
		b, ok := v.(bool)
		if !ok {
			return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
		}
		return EncodeBool(b), nil
	case AddressTy:
		switch a := v.(type) {
		case common.Address:
			return EncodeAddress(a), nil
		case [common.AddressLength]byte:
			return EncodeAddress(a), nil
		}
		return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
	case FixedBytesTy:
		b, err := toBytes(v)
		if err != nil {
			return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
		}
		return EncodeFixedBytes(t.Size, b)
	case BytesTy:
		b, err := toBytes(v)
		if err != nil {
			return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
		}
		return EncodeBytes(b), nil
	case StringTy:
		s, ok := v.(string)
		if !ok {
			return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
		}
		return EncodeString(s), nil
	case ArrayTy, SliceTy:
		items, err := toList(v)
		if err != nil {
			return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
		}
		if t.T == ArrayTy && len(items) != t.Size {
			return EncodedValue{}, fmt.Errorf("%w: %d elements for %v", ErrIncorrectParameterCount, len(items), t)
		}
		elems := make([]EncodedValue, len(items))
		for i, item := range items {
			if elems[i], err = encodeValue(*t.Elem, item, depth+1); err != nil {
				return EncodedValue{}, err
			}
		}
		if t.T == SliceTy {
			return NewDynamicArray(elems), nil
		}
		return NewFixedArrayValue(elems, t.IsDynamic()), nil
	case TupleTy:
		items, err := toList(v)
		if err != nil {
			return EncodedValue{}, typeErr(t, reflect.TypeOf(v))
		}
		if len(items) != len(t.TupleElems) {
			return EncodedValue{}, fmt.Errorf("%w: %d fields for %v", ErrIncorrectParameterCount, len(items), t)
		}
		fields := make([]EncodedValue, len(items))
		for i, item := range items {
			if fields[i], err = encodeValue(t.TupleElems[i], item, depth+1); err != nil {
				return EncodedValue{}, err
			}
		}
		return NewTupleValue(fields, t.IsDynamic()), nil
	}
	return EncodedValue{}, fmt.Errorf("%w: unknown kind %d", ErrInvalidType, t.T)
}

func toBig(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrInvalidValue)
		}
		return n, nil
	case big.Int:
		return &n, nil
	case *uint256.Int:
		if n == nil {
			return nil, fmt.Errorf("%w: nil integer", ErrInvalidValue)
		}
		return n.ToBig(), nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	return nil, typeErr("integer", reflect.TypeOf(v))
}

func toBytes(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case common.Hash:
		return b.Bytes(), nil
	case hexutil.Bytes:
		return b, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out, nil
	}
	return nil, typeErr("bytes", reflect.TypeOf(v))
}

func toList(v interface{}) ([]interface{}, error) {
	if list, ok := v.([]interface{}); ok {
		return list, nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, typeErr("list", reflect.TypeOf(v))
	}
	out := make([]interface{}, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// Interface converts a decoded value to a Go value:
//
//	uint<N>, int<N>  *big.Int
//	bool             bool
//	address          common.Address
//	bytesN, bytes    []byte
//	string           string
//	arrays, tuples   []interface{}
func (d DecodedValue) Interface() interface{} {
	switch d.Type.T {
	case UintTy:
		return new(big.Int).SetBytes(d.Entry[0])
	case IntTy:
		return math.S256(new(big.Int).SetBytes(d.Entry[0]))
	case BoolTy:
		return d.Entry[0][31] == 1
	case AddressTy:
		return common.BytesToAddress(d.Entry[0][12:])
	case FixedBytesTy, BytesTy:
		return common.CopyBytes(d.Entry[0])
	case StringTy:
		return string(d.Entry[0])
	}
	out := make([]interface{}, len(d.Elements))
	for i, e := range d.Elements {
		out[i] = e.Interface()
	}
	return out
}

// ParseValue parses the textual form of a value of type t and encodes it.
//
// Integers are decimal or 0x hex, booleans are true or false, addresses and
// byte strings are 0x hex, strings are taken verbatim. Arrays and tuples are
// JSON arrays whose items are either JSON strings holding the textual form or
// nested JSON arrays, e.g. ["0x21397c1a1f4acd9132fe36df011610564b87e24b", ["1","2"]].
func ParseValue(t RawType, text string) (EncodedValue, error) {
	if err := t.Validate(); err != nil {
		return EncodedValue{}, err
	}
	v, err := parseText(t, text, 0)
	if err != nil {
		return EncodedValue{}, err
	}
	return encodeValue(t, v, 0)
}

// parseText turns text into a value accepted by encodeValue.
func parseText(t RawType, text string, depth int) (interface{}, error) {
	if depth > MaxNestingDepth {
		return nil, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxNestingDepth)
	}
	switch t.T {
	case UintTy, IntTy:
		n, ok := math.ParseBig256(strings.TrimSpace(text))
		if !ok {
			// -0x prefixed quantities.
			if s := strings.TrimSpace(text); strings.HasPrefix(s, "-") {
				if m, ok := math.ParseBig256(s[1:]); ok {
					return m.Neg(m), nil
				}
			}
			return nil, fmt.Errorf("%w: invalid integer %q", ErrInvalidValue, text)
		}
		return n, nil
	case BoolTy:
		switch strings.TrimSpace(text) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, fmt.Errorf("%w: invalid boolean %q", ErrInvalidValue, text)
	case AddressTy:
		s := strings.TrimSpace(text)
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("%w: invalid address %q", ErrInvalidValue, text)
		}
		return common.HexToAddress(s), nil
	case FixedBytesTy, BytesTy:
		b, err := hexutil.Decode(strings.TrimSpace(text))
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidValue, text, err)
		}
		return b, nil
	case StringTy:
		return text, nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v expects a JSON array: %v", ErrInvalidValue, t, err)
	}
	items := make([]interface{}, len(raw))
	for i, r := range raw {
		var et RawType
		if t.T == TupleTy {
			if i >= len(t.TupleElems) {
				return nil, fmt.Errorf("%w: %d fields for %v", ErrIncorrectParameterCount, len(raw), t)
			}
			et = t.TupleElems[i]
		} else {
			et = *t.Elem
		}
		item := string(r)
		var s string
		if err := json.Unmarshal(r, &s); err == nil {
			item = s
		}
		v, err := parseText(et, item, depth+1)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return items, nil
}
