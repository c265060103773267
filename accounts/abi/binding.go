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
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/math"
)

// Codec binds a Go type to one ABI type. Codecs are stateless and safe for
// concurrent use.
type Codec[T any] interface {
	// RawType returns the ABI type the codec reads and writes.
	RawType() RawType
	// Encode converts v to its encoded form.
	Encode(v T) (EncodedValue, error)
	// Parse converts a decoded value of RawType back to T.
	Parse(d DecodedValue) (T, error)
}

// codec is the function-table implementation behind every Codec.
type codec[T any] struct {
	typ    RawType
	encode func(T) (EncodedValue, error)
	parse  func(DecodedValue) (T, error)
}

func (c codec[T]) RawType() RawType { return c.typ }

func (c codec[T]) Encode(v T) (EncodedValue, error) { return c.encode(v) }

func (c codec[T]) Parse(d DecodedValue) (T, error) {
	if !d.Type.Equal(c.typ) {
		var zero T
		return zero, typeErr(c.typ, d.Type)
	}
	return c.parse(d)
}

// Integer codecs.
var (
	Uint256 = UintN(256)
	Int256  = IntN(256)

	Uint8  = SmallUint[uint8](8)
	Uint16 = SmallUint[uint16](16)
	Uint32 = SmallUint[uint32](32)
	Uint64 = SmallUint[uint64](64)

	Int8  = SmallInt[int8](8)
	Int16 = SmallInt[int16](16)
	Int32 = SmallInt[int32](32)
	Int64 = SmallInt[int64](64)
)

// Codecs of the parameterless types.
var (
	AddressCodec Codec[common.Address] = codec[common.Address]{
		typ:    AddressType,
		encode: func(a common.Address) (EncodedValue, error) { return EncodeAddress(a), nil },
		parse: func(d DecodedValue) (common.Address, error) {
			return common.BytesToAddress(d.Entry[0][12:]), nil
		},
	}
	Bool Codec[bool] = codec[bool]{
		typ:    BoolType,
		encode: func(b bool) (EncodedValue, error) { return EncodeBool(b), nil },
		parse:  func(d DecodedValue) (bool, error) { return d.Entry[0][31] == 1, nil },
	}
	Bytes Codec[[]byte] = codec[[]byte]{
		typ:    BytesType,
		encode: func(b []byte) (EncodedValue, error) { return EncodeBytes(b), nil },
		parse:  func(d DecodedValue) ([]byte, error) { return common.CopyBytes(d.Entry[0]), nil },
	}
	String Codec[string] = codec[string]{
		typ:    StringType,
		encode: func(s string) (EncodedValue, error) { return EncodeString(s), nil },
		parse:  func(d DecodedValue) (string, error) { return string(d.Entry[0]), nil },
	}
	// Hash binds common.Hash to bytes32.
	Hash Codec[common.Hash] = codec[common.Hash]{
		typ:    FixedBytesType(common.HashLength),
		encode: func(h common.Hash) (EncodedValue, error) { return EncodeFixedBytes(common.HashLength, h[:]) },
		parse:  func(d DecodedValue) (common.Hash, error) { return common.BytesToHash(d.Entry[0]), nil },
	}
	// U256 binds holiman/uint256 values to uint256.
	U256 Codec[*uint256.Int] = codec[*uint256.Int]{
		typ: UintType(256),
		encode: func(v *uint256.Int) (EncodedValue, error) {
			if v == nil {
				return EncodedValue{}, fmt.Errorf("%w: nil integer", ErrInvalidValue)
			}
			word := v.Bytes32()
			return newLeaf(word[:], word[:], false), nil
		},
		parse: func(d DecodedValue) (*uint256.Int, error) {
			return new(uint256.Int).SetBytes32(d.Entry[0]), nil
		},
	}
)

// UintN returns the *big.Int codec of uint<bits>.
func UintN(bits int) Codec[*big.Int] {
	t := UintType(bits)
	return codec[*big.Int]{
		typ:    t,
		encode: func(v *big.Int) (EncodedValue, error) { return EncodeInteger(t, v) },
		parse:  func(d DecodedValue) (*big.Int, error) { return new(big.Int).SetBytes(d.Entry[0]), nil },
	}
}

// IntN returns the *big.Int codec of int<bits>. Decoded values are sign
// extended.
func IntN(bits int) Codec[*big.Int] {
	t := IntType(bits)
	return codec[*big.Int]{
		typ:    t,
		encode: func(v *big.Int) (EncodedValue, error) { return EncodeInteger(t, v) },
		parse: func(d DecodedValue) (*big.Int, error) {
			return math.S256(new(big.Int).SetBytes(d.Entry[0])), nil
		},
	}
}

// SmallUint binds a native unsigned integer type to uint<bits>. bits may be
// narrower than T; out of range values are rejected in both directions.
func SmallUint[T ~uint8 | ~uint16 | ~uint32 | ~uint64](bits int) Codec[T] {
	t := UintType(bits)
	return codec[T]{
		typ: t,
		encode: func(v T) (EncodedValue, error) {
			return EncodeInteger(t, new(big.Int).SetUint64(uint64(v)))
		},
		parse: func(d DecodedValue) (T, error) {
			n := new(big.Int).SetBytes(d.Entry[0])
			if !n.IsUint64() || uint64(T(n.Uint64())) != n.Uint64() {
				return 0, fmt.Errorf("%w: %v overflows %T", ErrInvalidValue, n, T(0))
			}
			return T(n.Uint64()), nil
		},
	}
}

// SmallInt binds a native signed integer type to int<bits>.
func SmallInt[T ~int8 | ~int16 | ~int32 | ~int64](bits int) Codec[T] {
	t := IntType(bits)
	return codec[T]{
		typ: t,
		encode: func(v T) (EncodedValue, error) {
			return EncodeInteger(t, big.NewInt(int64(v)))
		},
		parse: func(d DecodedValue) (T, error) {
			n := math.S256(new(big.Int).SetBytes(d.Entry[0]))
			if !n.IsInt64() || int64(T(n.Int64())) != n.Int64() {
				return 0, fmt.Errorf("%w: %v overflows %T", ErrInvalidValue, n, T(0))
			}
			return T(n.Int64()), nil
		},
	}
}

// FixedBytes returns the codec of bytes<size>.
func FixedBytes(size int) Codec[[]byte] {
	return codec[[]byte]{
		typ:    FixedBytesType(size),
		encode: func(b []byte) (EncodedValue, error) { return EncodeFixedBytes(size, b) },
		parse:  func(d DecodedValue) ([]byte, error) { return common.CopyBytes(d.Entry[0]), nil },
	}
}

// Encode returns the padded ABI encoding of v on its own.
//
// A dynamic value is encoded as it appears when it is the only argument of a
// call, i.e. preceded by its offset word.
func Encode[T any](c Codec[T], v T) ([]byte, error) {
	enc, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	return Compose([]EncodedValue{enc}), nil
}

// EncodePacked returns the packed (non-standard) encoding of v.
func EncodePacked[T any](c Codec[T], v T) ([]byte, error) {
	enc, err := c.Encode(v)
	if err != nil {
		return nil, err
	}
	return enc.Packed()
}

// Decode decodes a single value of c's type from data.
func Decode[T any](c Codec[T], data []byte) (T, error) {
	var zero T
	values, err := DecodeData(data, []RawType{c.RawType()}, false)
	if err != nil {
		return zero, err
	}
	return c.Parse(values[0])
}

// Value is an argument ready to be composed into a call: a value together
// with the ABI type it is encoded as.
type Value interface {
	RawType() RawType
	Encode() (EncodedValue, error)
}

type boundValue[T any] struct {
	c Codec[T]
	v T
}

func (b boundValue[T]) RawType() RawType              { return b.c.RawType() }
func (b boundValue[T]) Encode() (EncodedValue, error) { return b.c.Encode(b.v) }

// ValueOf binds v to its codec.
func ValueOf[T any](c Codec[T], v T) Value {
	return boundValue[T]{c: c, v: v}
}

type dynamicValue struct {
	t RawType
	v interface{}
}

func (d dynamicValue) RawType() RawType              { return d.t }
func (d dynamicValue) Encode() (EncodedValue, error) { return EncodeValue(d.t, d.v) }

// Dynamic binds a loosely typed value to t; see EncodeValue for the accepted
// Go types.
func Dynamic(t RawType, v interface{}) Value {
	return dynamicValue{t: t, v: v}
}
