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
	"fmt"
	"strconv"
	"strings"
)

// Kind enumerates the closed set of ABI type shapes.
type Kind byte

// Type enumerator
const (
	UintTy Kind = iota
	IntTy
	AddressTy
	BoolTy
	FixedBytesTy
	BytesTy
	StringTy
	ArrayTy
	SliceTy
	TupleTy
)

// MaxNestingDepth bounds how deeply arrays and tuples may nest inside each
// other. Decoding input that would recurse further fails with ErrInvalidType.
const MaxNestingDepth = 16

// MaxStaticWords bounds the head size of a static type, e.g. uint256[1048576].
const MaxStaticWords = 1 << 20

// RawType describes one ABI type.
//
//   - UintTy, IntTy: Size is the bit width (8..256, multiple of 8).
//   - FixedBytesTy: Size is the byte width (1..32).
//   - ArrayTy: Size is the element count, Elem the element type.
//   - SliceTy: Elem is the element type.
//   - TupleTy: TupleElems lists the field types in order.
//
// RawType 是一个封闭的标签联合；是否动态以及占用的字数都由结构推导，不单独存储。
type RawType struct {
	T          Kind
	Size       int
	Elem       *RawType
	TupleElems []RawType
}

// Shared descriptors for the parameterless types.
var (
	AddressType = RawType{T: AddressTy}
	BoolType    = RawType{T: BoolTy}
	BytesType   = RawType{T: BytesTy}
	StringType  = RawType{T: StringTy}
)

// UintType returns the descriptor of uint<bits>.
func UintType(bits int) RawType { return RawType{T: UintTy, Size: bits} }

// IntType returns the descriptor of int<bits>.
func IntType(bits int) RawType { return RawType{T: IntTy, Size: bits} }

// FixedBytesType returns the descriptor of bytes<size>.
func FixedBytesType(size int) RawType { return RawType{T: FixedBytesTy, Size: size} }

// ArrayType returns the descriptor of elem[count].
func ArrayType(elem RawType, count int) RawType {
	return RawType{T: ArrayTy, Size: count, Elem: &elem}
}

// SliceType returns the descriptor of elem[].
func SliceType(elem RawType) RawType {
	return RawType{T: SliceTy, Elem: &elem}
}

// TupleType returns the descriptor of (fields...).
func TupleType(fields ...RawType) RawType {
	return RawType{T: TupleTy, TupleElems: fields}
}

// IsDynamic reports whether the encoding of t has a variable length.
// The following types are called “dynamic”:
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
func (t RawType) IsDynamic() bool {
	switch t.T {
	case BytesTy, StringTy, SliceTy:
		return true
	case ArrayTy:
		return t.Elem.IsDynamic()
	case TupleTy:
		for _, elem := range t.TupleElems {
			if elem.IsDynamic() {
				return true
			}
		}
	}
	return false
}

// MemoryWords returns the number of 32 byte words t occupies in the head of
// its enclosing encoding. Dynamic types always occupy a single pointer word.
func (t RawType) MemoryWords() int {
	if t.IsDynamic() {
		return 1
	}
	switch t.T {
	case ArrayTy:
		return t.Size * t.Elem.MemoryWords()
	case TupleTy:
		total := 0
		for _, elem := range t.TupleElems {
			total += elem.MemoryWords()
		}
		return total
	}
	return 1
}

// headSize returns the number of bytes t occupies in the head region.
func (t RawType) headSize() int {
	return t.MemoryWords() * 32
}

// String returns the canonical ABI name of t, as used in signatures.
func (t RawType) String() string {
	switch t.T {
	case UintTy:
		return "uint" + strconv.Itoa(t.Size)
	case IntTy:
		return "int" + strconv.Itoa(t.Size)
	case AddressTy:
		return "address"
	case BoolTy:
		return "bool"
	case FixedBytesTy:
		return "bytes" + strconv.Itoa(t.Size)
	case BytesTy:
		return "bytes"
	case StringTy:
		return "string"
	case ArrayTy:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case SliceTy:
		return t.Elem.String() + "[]"
	case TupleTy:
		names := make([]string, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			names[i] = elem.String()
		}
		return "(" + strings.Join(names, ",") + ")"
	}
	return fmt.Sprintf("<invalid kind %d>", t.T)
}

// Equal reports whether t and other describe the same ABI type.
func (t RawType) Equal(other RawType) bool {
	if t.T != other.T || t.Size != other.Size {
		return false
	}
	switch t.T {
	case ArrayTy, SliceTy:
		return t.Elem.Equal(*other.Elem)
	case TupleTy:
		if len(t.TupleElems) != len(other.TupleElems) {
			return false
		}
		for i := range t.TupleElems {
			if !t.TupleElems[i].Equal(other.TupleElems[i]) {
				return false
			}
		}
	}
	return true
}

// Validate checks the size invariants of t and every type nested in it.
func (t RawType) Validate() error {
	return t.validate(0)
}

func (t RawType) validate(depth int) error {
	if depth > MaxNestingDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxNestingDepth)
	}
	switch t.T {
	case UintTy, IntTy:
		if t.Size < 8 || t.Size > 256 || t.Size%8 != 0 {
			return fmt.Errorf("%w: invalid integer width %d", ErrInvalidType, t.Size)
		}
	case FixedBytesTy:
		if t.Size < 1 || t.Size > 32 {
			return fmt.Errorf("%w: invalid fixed bytes width %d", ErrInvalidType, t.Size)
		}
	case AddressTy, BoolTy, BytesTy, StringTy:
	case ArrayTy, SliceTy:
		if t.Elem == nil {
			return fmt.Errorf("%w: array without element type", ErrInvalidType)
		}
		if t.T == ArrayTy && t.Size < 1 {
			return fmt.Errorf("%w: invalid array length %d", ErrInvalidType, t.Size)
		}
		if err := t.Elem.validate(depth + 1); err != nil {
			return err
		}
		if t.T == ArrayTy && !t.IsDynamic() && t.Size > MaxStaticWords/t.Elem.MemoryWords() {
			return fmt.Errorf("%w: %v exceeds %d words", ErrInvalidType, t, MaxStaticWords)
		}
	case TupleTy:
		if len(t.TupleElems) == 0 {
			return fmt.Errorf("%w: empty tuple", ErrInvalidType)
		}
		for _, elem := range t.TupleElems {
			if err := elem.validate(depth + 1); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidType, t.T)
	}
	if words := t.MemoryWords(); words > MaxStaticWords {
		return fmt.Errorf("%w: %v exceeds %d words", ErrInvalidType, t, MaxStaticWords)
	}
	return nil
}

// isArray reports whether t is a fixed or dynamic array.
func (t RawType) isArray() bool {
	return t.T == ArrayTy || t.T == SliceTy
}

// byteWidth is the own width of a scalar in packed mode.
func (t RawType) byteWidth() int {
	switch t.T {
	case UintTy, IntTy:
		return t.Size / 8
	case AddressTy:
		return 20
	case BoolTy:
		return 1
	case FixedBytesTy:
		return t.Size
	}
	return 32
}
