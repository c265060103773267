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
	"encoding/json"
	"fmt"
	"strings"
)

// 参数编码：
// 参数列表按元组处理，静态值直接写入头部，动态值在头部写入偏移量、在尾部写入内容。
// 索引参数仅适用于事件日志，它们作为主题（topics）存储，不出现在事件数据中。

// Argument holds the name of the argument and the corresponding type.
type Argument struct {
	Name    string
	Type    RawType
	Indexed bool // indexed is only used by events
}

type Arguments []Argument

// ArgumentMarshaling is the JSON form of an argument in a contract ABI.
type ArgumentMarshaling struct {
	Name         string
	Type         string
	InternalType string
	Components   []ArgumentMarshaling
	Indexed      bool
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("%w: argument json: %v", ErrInvalidType, err)
	}
	argument.Type, err = NewType(arg.Type, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	argument.Indexed = arg.Indexed
	return nil
}

// NewType builds the descriptor of a JSON ABI type. Tuples are spelled
// "tuple" followed by optional array suffixes, with their fields given as
// components.
func NewType(typ string, components []ArgumentMarshaling) (RawType, error) {
	if !strings.HasPrefix(typ, "tuple") {
		return ParseType(typ)
	}
	fields := make([]RawType, len(components))
	for i, c := range components {
		t, err := NewType(c.Type, c.Components)
		if err != nil {
			return RawType{}, fmt.Errorf("component %q: %w", c.Name, err)
		}
		fields[i] = t
	}
	t, rest, err := parseArraySuffixes(TupleType(fields...), typ[len("tuple"):])
	if err != nil {
		return RawType{}, err
	}
	if len(rest) > 0 {
		return RawType{}, fmt.Errorf("%w: unexpected string '%s' in %q", ErrInvalidType, rest, typ)
	}
	if err := t.Validate(); err != nil {
		return RawType{}, err
	}
	return t, nil
}

// NewArguments returns unnamed arguments of the given types.
func NewArguments(types ...RawType) Arguments {
	args := make(Arguments, len(types))
	for i, t := range types {
		args[i] = Argument{Type: t}
	}
	return args
}

// Types returns the type of every argument, in order.
func (arguments Arguments) Types() []RawType {
	types := make([]RawType, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// NonIndexed returns the arguments with indexed arguments filtered out.
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// signature returns the comma separated canonical type names.
func (arguments Arguments) signature() string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return strings.Join(types, ",")
}

// Pack composes values into the head/tail encoding of the argument list.
// The values must match the arguments in number and type.
func (arguments Arguments) Pack(values ...Value) ([]byte, error) {
	if len(values) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrIncorrectParameterCount, len(values), len(arguments))
	}
	encoded := make([]EncodedValue, len(values))
	for i, v := range values {
		if !v.RawType().Equal(arguments[i].Type) {
			return nil, typeErr(arguments[i].Type, v.RawType())
		}
		enc, err := v.Encode()
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		encoded[i] = enc
	}
	return Compose(encoded), nil
}

// PackValues is Pack for loosely typed Go values; see EncodeValue.
func (arguments Arguments) PackValues(values ...interface{}) ([]byte, error) {
	if len(values) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrIncorrectParameterCount, len(values), len(arguments))
	}
	bound := make([]Value, len(values))
	for i, v := range values {
		bound[i] = Dynamic(arguments[i].Type, v)
	}
	return arguments.Pack(bound...)
}

// UnpackValues decodes data into one DecodedValue per argument.
func (arguments Arguments) UnpackValues(data []byte) ([]DecodedValue, error) {
	return DecodeData(data, arguments.Types(), false)
}

// Unpack performs the operation hexdata -> Go format. See
// DecodedValue.Interface for the resulting Go types.
func (arguments Arguments) Unpack(data []byte) ([]interface{}, error) {
	values, err := arguments.UnpackValues(data)
	if err != nil {
		return nil, err
	}
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v.Interface()
	}
	return out, nil
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to argument value.
func (arguments Arguments) UnpackIntoMap(v map[string]interface{}, data []byte) error {
	if v == nil {
		return fmt.Errorf("%w: cannot unpack into a nil map", ErrInvalidValue)
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments {
		v[arg.Name] = values[i]
	}
	return nil
}
