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

	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/log"
)

// DecodedValue is the decoder's output for one value.
//
// Entry holds the raw byte groups of the value in order: the 32 byte word of a
// scalar, the N bytes of a bytesN, the content of a string or bytes value, and
// for arrays and tuples the entries of every element concatenated. Elements
// keeps the per element (or per field) structure of arrays and tuples.
type DecodedValue struct {
	Type     RawType
	Entry    [][]byte
	Elements []DecodedValue
}

// Hex returns every entry as a 0x prefixed hex string.
func (d DecodedValue) Hex() []string {
	out := make([]string, len(d.Entry))
	for i, e := range d.Entry {
		out[i] = hexutil.Encode(e)
	}
	return out
}

// DecodeHex decodes a 0x prefixed hex payload, e.g. the result of an eth_call.
// The empty-data marker "0x" is handled as described on DecodeData.
func DecodeHex(input string, types []RawType, asArray bool) ([]DecodedValue, error) {
	data, err := hexutil.Decode(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return DecodeData(data, types, asArray)
}

// DecodeData decodes data against the expected types, returning one value per
// type. The i-th value starts at the sum of the head sizes of the types before
// it.
//
// Empty data is the empty-data marker. It decodes to the zero value when a
// single non-array type is expected and asArray is false; it is
// ErrIncorrectParameterCount when several types are expected and
// ErrInvalidValue when an array was requested.
func DecodeData(data []byte, types []RawType, asArray bool) ([]DecodedValue, error) {
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	if len(types) == 0 {
		return []DecodedValue{}, nil
	}
	if len(data) == 0 {
		return decodeEmpty(types, asArray)
	}
	var (
		dec    = newDecoder(len(data))
		values = make([]DecodedValue, 0, len(types))
		offset = 0
	)
	for _, t := range types {
		v, err := dec.decodeAt(t, data, offset, 0)
		if err != nil {
			log.Trace("ABI decode rejected", "type", t, "offset", offset, "size", len(data), "err", err)
			return nil, err
		}
		values = append(values, v)
		offset += t.headSize()
	}
	log.Trace("ABI decoded", "types", len(types), "size", len(data), "leaves", len(dec.leaves))
	return values, nil
}

func decodeEmpty(types []RawType, asArray bool) ([]DecodedValue, error) {
	if len(types) > 1 {
		return nil, fmt.Errorf("%w: empty data for %d types", ErrIncorrectParameterCount, len(types))
	}
	t := types[0]
	if asArray || t.isArray() {
		return nil, fmt.Errorf("%w: empty data for array %v", ErrInvalidValue, t)
	}
	switch {
	case t.T == StringTy || t.T == BytesTy:
		return []DecodedValue{{Type: t, Entry: [][]byte{{}}}}, nil
	case t.IsDynamic():
		return nil, fmt.Errorf("%w: empty data for %v", ErrInvalidValue, t)
	}
	zero := make([]byte, t.headSize())
	v, err := newDecoder(len(zero)).decodeAt(t, zero, 0, 0)
	if err != nil {
		return nil, err
	}
	return []DecodedValue{v}, nil
}

// decoder holds the state of a single DecodeData call.
//
// Every leaf and every followed pointer is charged against budget. A
// canonical encoding spends at most one unit per 32 byte word it contains
// (plus one for a trailing bytesN without padding), so running out means
// several head slots point at the same tail and the output would outgrow
// the input.
//
// leaves collects the entries of all leaves in decoding order. A compound's
// Entry is the window of leaves appended while its children were decoded.
type decoder struct {
	budget int
	leaves [][]byte
}

func newDecoder(size int) *decoder {
	return &decoder{budget: size/32 + 1}
}

func (d *decoder) charge(t RawType) error {
	if d.budget == 0 {
		return fmt.Errorf("%w: %v: decoded content exceeds input, offsets overlap", ErrInvalidValue, t)
	}
	d.budget--
	return nil
}

// leaf records b as the single entry of a value of type t.
func (d *decoder) leaf(t RawType, b []byte) (DecodedValue, error) {
	if err := d.charge(t); err != nil {
		return DecodedValue{}, err
	}
	n := len(d.leaves)
	d.leaves = append(d.leaves, b)
	return DecodedValue{Type: t, Entry: d.leaves[n : n+1 : n+1]}, nil
}

// follow reads the pointer stored at offset and returns the view it leads to.
func (d *decoder) follow(t RawType, view []byte, offset int) ([]byte, error) {
	if err := d.charge(t); err != nil {
		return nil, err
	}
	ptr, err := readSize(view, offset, "offset")
	if err != nil {
		return nil, err
	}
	return view[ptr:], nil
}

// decodeAt decodes one value of type t whose head starts at offset in view.
//
// A view is the byte region that offsets of the current composition are
// relative to: the whole input at the top level, the region a pointer leads
// to for dynamic tuples and arrays, and the region right after the length
// word for T[]. Static values are read in place; dynamic ones follow the
// pointer found in their head slot.
func (d *decoder) decodeAt(t RawType, view []byte, offset int, depth int) (DecodedValue, error) {
	if depth > MaxNestingDepth {
		return DecodedValue{}, fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxNestingDepth)
	}
	switch t.T {
	case UintTy, IntTy, BoolTy, AddressTy:
		word, err := readBytes(view, offset, 32, "word")
		if err != nil {
			return DecodedValue{}, err
		}
		if err := checkWord(t, word); err != nil {
			return DecodedValue{}, err
		}
		return d.leaf(t, word)

	case FixedBytesTy:
		// bytesN 只读取自身宽度，末尾的填充可以缺失。
		b, err := readBytes(view, offset, t.Size, t.String())
		if err != nil {
			return DecodedValue{}, err
		}
		return d.leaf(t, b)

	case StringTy, BytesTy:
		sub, err := d.follow(t, view, offset)
		if err != nil {
			return DecodedValue{}, err
		}
		length, err := readSize(sub, 0, "length")
		if err != nil {
			return DecodedValue{}, err
		}
		if length == 0 {
			return d.leaf(t, []byte{})
		}
		content, err := readBytes(sub, 32, length, "content")
		if err != nil {
			return DecodedValue{}, err
		}
		return d.leaf(t, content)

	case SliceTy:
		// enc(T[]) = enc(k) enc((X[0], ..., X[k-1])): element offsets count
		// from the first byte after the length word.
		sub, err := d.follow(t, view, offset)
		if err != nil {
			return DecodedValue{}, err
		}
		count, err := readSize(sub, 0, "array length")
		if err != nil {
			return DecodedValue{}, err
		}
		first := len(d.leaves)
		elems, err := d.decodeElements(*t.Elem, sub[32:], count, depth+1)
		if err != nil {
			return DecodedValue{}, err
		}
		return d.compound(t, first, elems), nil

	case ArrayTy:
		if t.IsDynamic() {
			sub, err := d.follow(t, view, offset)
			if err != nil {
				return DecodedValue{}, err
			}
			view, offset = sub, 0
		}
		rest, err := readBytes(view, offset, len(view)-offset, t.String())
		if err != nil {
			return DecodedValue{}, err
		}
		first := len(d.leaves)
		elems, err := d.decodeElements(*t.Elem, rest, t.Size, depth+1)
		if err != nil {
			return DecodedValue{}, err
		}
		return d.compound(t, first, elems), nil

	case TupleTy:
		if t.IsDynamic() {
			sub, err := d.follow(t, view, offset)
			if err != nil {
				return DecodedValue{}, err
			}
			view, offset = sub, 0
		}
		first := len(d.leaves)
		fields := make([]DecodedValue, 0, len(t.TupleElems))
		for _, ft := range t.TupleElems {
			f, err := d.decodeAt(ft, view, offset, depth+1)
			if err != nil {
				return DecodedValue{}, err
			}
			fields = append(fields, f)
			offset += ft.headSize()
		}
		return d.compound(t, first, fields), nil
	}
	return DecodedValue{}, fmt.Errorf("%w: cannot decode kind %d", ErrInvalidType, t.T)
}

// decodeElements decodes count consecutive elements starting at the front of
// view. The count is checked against the room left in view before anything is
// decoded.
func (d *decoder) decodeElements(elem RawType, view []byte, count int, depth int) ([]DecodedValue, error) {
	// The last element of a bytesN array may omit its padding.
	stride := elem.headSize()
	if count > 0 && stride > 0 && count-1 > len(view)/stride {
		return nil, boundsErr(fmt.Sprintf("%d elements of %v", count, elem), 0, count*stride, len(view))
	}
	elems := make([]DecodedValue, 0, count)
	for i := 0; i < count; i++ {
		v, err := d.decodeAt(elem, view, i*stride, depth)
		if err != nil {
			return nil, err
		}
		elems = append(elems, v)
	}
	return elems, nil
}

// compound builds an array or tuple value whose leaves start at index first.
func (d *decoder) compound(t RawType, first int, elems []DecodedValue) DecodedValue {
	last := len(d.leaves)
	return DecodedValue{Type: t, Entry: d.leaves[first:last:last], Elements: elems}
}

// readBytes returns view[start:start+length] after checking the bounds.
func readBytes(view []byte, start, length int, what string) ([]byte, error) {
	if start < 0 || length < 0 || start > len(view) || length > len(view)-start {
		return nil, boundsErr(what, start, length, len(view))
	}
	return view[start : start+length], nil
}

// readSize reads a word that holds an offset or a length. Any value larger
// than the view cannot be valid and is rejected before it is used.
func readSize(view []byte, start int, what string) (int, error) {
	word, err := readBytes(view, start, 32, what)
	if err != nil {
		return 0, err
	}
	v := new(big.Int).SetBytes(word)
	if !v.IsUint64() || v.Uint64() > uint64(len(view)) {
		return 0, fmt.Errorf("%w: %s %v larger than input of %d bytes", ErrInvalidValue, what, v, len(view))
	}
	return int(v.Uint64()), nil
}

// checkWord rejects words that are not a canonical encoding of t.
func checkWord(t RawType, word []byte) error {
	switch t.T {
	case BoolTy:
		for _, b := range word[:31] {
			if b != 0 {
				return errBadBool
			}
		}
		if word[31] > 1 {
			return errBadBool
		}
	case UintTy:
		for _, b := range word[:32-t.Size/8] {
			if b != 0 {
				return fmt.Errorf("%w for %v", errBadUint, t)
			}
		}
	case AddressTy:
		for _, b := range word[:32-common.AddressLength] {
			if b != 0 {
				return errBadAddr
			}
		}
	case IntTy:
		// 高位字节必须是符号扩展。
		width := t.Size / 8
		fill := byte(0)
		if word[32-width]&0x80 != 0 {
			fill = 0xff
		}
		for _, b := range word[:32-width] {
			if b != fill {
				return fmt.Errorf("%w for %v", errBadInt, t)
			}
		}
	}
	return nil
}
