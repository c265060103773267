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
	"math/big"

	"github.com/sunyihoo/go-web3/common/math"
)

// EncodedValue is the output of the encoder before the final layout pass.
//
// A leaf holds the padded encoding of one atomic value (and its own-width
// packed form). A container holds child values that are laid out with the
// head/tail rule when its bytes are requested; dynamic arrays additionally
// carry an element count that is written in front of the children.
type EncodedValue struct {
	leaf     bool
	data     []byte
	packed   []byte
	children []EncodedValue
	dynamic  bool
	tuple    bool
	length   int // explicit element count, -1 if absent
}

// newLeaf wraps an atomic encoding.
func newLeaf(data, packed []byte, dynamic bool) EncodedValue {
	return EncodedValue{leaf: true, data: data, packed: packed, dynamic: dynamic, length: -1}
}

// NewTupleValue groups encoded tuple fields. dynamic states whether the
// tuple type is dynamic.
func NewTupleValue(fields []EncodedValue, dynamic bool) EncodedValue {
	return EncodedValue{children: fields, dynamic: dynamic, tuple: true, length: -1}
}

// NewFixedArrayValue groups the encoded elements of a T[k] value. dynamic
// states whether the element type is dynamic.
func NewFixedArrayValue(elems []EncodedValue, dynamic bool) EncodedValue {
	return EncodedValue{children: elems, dynamic: dynamic, length: -1}
}

// NewDynamicArray returns the container of a T[] value: a length word followed
// by the head/tail composition of its elements.
func NewDynamicArray(elems []EncodedValue) EncodedValue {
	return EncodedValue{children: elems, dynamic: true, length: len(elems)}
}

// IsDynamic reports whether the value is placed in the tail of its parent.
func (e EncodedValue) IsDynamic() bool { return e.dynamic }

// StaticWords returns the number of words the value occupies in the head of
// its parent: one pointer word for dynamic values, its full size otherwise.
func (e EncodedValue) StaticWords() int {
	return e.headWidth() / 32
}

// Children returns the child values of a container, nil for leaves.
func (e EncodedValue) Children() []EncodedValue { return e.children }

func (e EncodedValue) headWidth() int {
	if e.dynamic {
		return 32
	}
	if e.leaf {
		return len(e.data)
	}
	size := 0
	for _, child := range e.children {
		size += child.headWidth()
	}
	return size
}

// Bytes returns the padded ABI encoding of the value on its own, i.e. what is
// written into the tail when the value is dynamic, or inline when it is static.
func (e EncodedValue) Bytes() []byte {
	if e.leaf {
		return e.data
	}
	body := Compose(e.children)
	if e.length < 0 {
		return body
	}
	return append(packWord(e.length), body...)
}

// Packed returns the tight, unpadded encoding of the value. Only atomic values
// and arrays of atomic values can be packed.
func (e EncodedValue) Packed() ([]byte, error) {
	if e.leaf {
		return e.packed, nil
	}
	if e.tuple {
		return nil, fmt.Errorf("%w: packed encoding of tuples", ErrNotCurrentlySupported)
	}
	if !e.childrenAreLeaves() {
		return nil, fmt.Errorf("%w: packed encoding of nested arrays", ErrNotCurrentlySupported)
	}
	var out []byte
	for _, child := range e.children {
		out = append(out, child.packed...)
	}
	return out, nil
}

func (e EncodedValue) childrenAreLeaves() bool {
	for _, child := range e.children {
		if !child.leaf {
			return false
		}
	}
	return true
}

// Compose lays values out with the head/tail rule:
//
//	enc(X) = head(X(1)) ... head(X(k)) tail(X(1)) ... tail(X(k))
//
// Static values are written to the head in place. Each dynamic value writes
// a pointer to the head, holding the offset of its tail entry measured from
// the start of the head, and its own bytes to the tail.
// Compose 同时用于函数参数列表、元组字段以及数组元素。
func Compose(values []EncodedValue) []byte {
	headSize := 0
	for _, v := range values {
		headSize += v.headWidth()
	}
	head := make([]byte, 0, headSize)
	var tail []byte
	for _, v := range values {
		if !v.dynamic {
			head = append(head, v.Bytes()...)
			continue
		}
		head = append(head, packWord(headSize+len(tail))...)
		tail = append(tail, v.Bytes()...)
	}
	return append(head, tail...)
}

// packWord encodes a non-negative length or offset as a 32 byte word.
func packWord(n int) []byte {
	return math.U256Bytes(new(big.Int).SetUint64(uint64(n)))
}
