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

import "fmt"

// Array returns the codec of elem[], bound to Go slices.
func Array[T any](elem Codec[T]) Codec[[]T] {
	return codec[[]T]{
		typ: SliceType(elem.RawType()),
		encode: func(values []T) (EncodedValue, error) {
			elems, err := encodeAll(elem, values)
			if err != nil {
				return EncodedValue{}, err
			}
			return NewDynamicArray(elems), nil
		},
		parse: func(d DecodedValue) ([]T, error) { return parseAll(elem, d.Elements) },
	}
}

// FixedArray returns the codec of elem[n]. Encoding a slice whose length is
// not n fails with ErrIncorrectParameterCount.
func FixedArray[T any](elem Codec[T], n int) Codec[[]T] {
	t := ArrayType(elem.RawType(), n)
	return codec[[]T]{
		typ: t,
		encode: func(values []T) (EncodedValue, error) {
			if len(values) != n {
				return EncodedValue{}, fmt.Errorf("%w: %d elements for %v", ErrIncorrectParameterCount, len(values), t)
			}
			elems, err := encodeAll(elem, values)
			if err != nil {
				return EncodedValue{}, err
			}
			return NewFixedArrayValue(elems, t.IsDynamic()), nil
		},
		parse: func(d DecodedValue) ([]T, error) { return parseAll(elem, d.Elements) },
	}
}

func encodeAll[T any](c Codec[T], values []T) ([]EncodedValue, error) {
	out := make([]EncodedValue, len(values))
	for i, v := range values {
		enc, err := c.Encode(v)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = enc
	}
	return out, nil
}

func parseAll[T any](c Codec[T], decoded []DecodedValue) ([]T, error) {
	out := make([]T, len(decoded))
	for i, d := range decoded {
		v, err := c.Parse(d)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// TupleField describes one field of a tuple bound to the struct type S.
type TupleField[S any] struct {
	typ    RawType
	encode func(S) (EncodedValue, error)
	parse  func(DecodedValue, *S) error
}

// Field binds a struct member through explicit accessors, e.g.
//
//	abi.Field(abi.AddressCodec,
//		func(t Transfer) common.Address { return t.To },
//		func(t *Transfer, v common.Address) { t.To = v })
func Field[S, F any](c Codec[F], get func(S) F, set func(*S, F)) TupleField[S] {
	return TupleField[S]{
		typ:    c.RawType(),
		encode: func(s S) (EncodedValue, error) { return c.Encode(get(s)) },
		parse: func(d DecodedValue, s *S) error {
			v, err := c.Parse(d)
			if err != nil {
				return err
			}
			set(s, v)
			return nil
		},
	}
}

// NewTuple returns the codec of the tuple made of fields, in order.
func NewTuple[S any](fields ...TupleField[S]) Codec[S] {
	types := make([]RawType, len(fields))
	for i, f := range fields {
		types[i] = f.typ
	}
	t := TupleType(types...)
	return codec[S]{
		typ: t,
		encode: func(s S) (EncodedValue, error) {
			encoded := make([]EncodedValue, len(fields))
			for i, f := range fields {
				enc, err := f.encode(s)
				if err != nil {
					return EncodedValue{}, fmt.Errorf("field %d: %w", i, err)
				}
				encoded[i] = enc
			}
			return NewTupleValue(encoded, t.IsDynamic()), nil
		},
		parse: func(d DecodedValue) (S, error) {
			var s S
			if len(d.Elements) != len(fields) {
				return s, fmt.Errorf("%w: %d fields for %v", ErrIncorrectParameterCount, len(d.Elements), t)
			}
			for i, f := range fields {
				if err := f.parse(d.Elements[i], &s); err != nil {
					return s, fmt.Errorf("field %d: %w", i, err)
				}
			}
			return s, nil
		},
	}
}
