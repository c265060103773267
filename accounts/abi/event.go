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
	"fmt"

	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/crypto"
	"github.com/sunyihoo/go-web3/log"
)

// Event is an event potentially triggered by the EVM's LOG mechanism. The Event
// holds type information (inputs) about the yielded output. Anonymous events
// don't get the signature canonical representation as the first LOG topic.
// 匿名事件不会将签名的规范表示作为第一个 LOG 主题。
type Event struct {
	// Name is the event name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of event overloading.
	Name string

	// RawName is the raw event name parsed from ABI.
	RawName   string
	Anonymous bool
	Inputs    Arguments
	str       string

	// Sig contains the string signature according to the ABI spec.
	// e.g.	 event foo(uint32 a, int b) = "foo(uint32,int256)"
	Sig string

	// ID is the Keccak-256 hash of Sig, the first topic of non-anonymous
	// events.
	ID common.Hash
}

// NewEvent creates a new Event.
// It names unnamed arguments and precomputes the id, signature and string
// representation of the event.
func NewEvent(name, rawName string, anonymous bool, inputs Arguments) Event {
	inputs, names, types := sanitizeArguments(inputs)
	sig := fmt.Sprintf("%v(%v)", rawName, types)
	return Event{
		Name:      name,
		RawName:   rawName,
		Anonymous: anonymous,
		Inputs:    inputs,
		str:       fmt.Sprintf("event %v(%v)", rawName, names),
		Sig:       sig,
		ID:        crypto.Keccak256Hash([]byte(sig)),
	}
}

// ParseEvent builds an event from a textual signature and the positions of
// its indexed parameters.
func ParseEvent(signature string, anonymous bool, indexed ...int) (Event, error) {
	name, types, err := ParseSignature(signature)
	if err != nil {
		return Event{}, err
	}
	inputs := NewArguments(types...)
	for _, i := range indexed {
		if i < 0 || i >= len(inputs) {
			return Event{}, fmt.Errorf("%w: indexed position %d of %d parameters", ErrIncorrectParameterCount, i, len(inputs))
		}
		inputs[i].Indexed = true
	}
	return NewEvent(name, name, anonymous, inputs), nil
}

// String returns the string representation of the event.
func (e Event) String() string {
	return e.str
}

// DecodeLog decodes the topics and data of a log emitted by e. The result
// holds one value per input, in declaration order.
//
// Indexed value types are decoded from their topic. Indexed strings, bytes,
// arrays and tuples are stored as the Keccak-256 hash of their encoding, so
// they come back as that hash, typed bytes32.
func (e Event) DecodeLog(topics []common.Hash, data []byte) ([]DecodedValue, error) {
	indexed := 0
	for _, input := range e.Inputs {
		if input.Indexed {
			indexed++
		}
	}
	if !e.Anonymous {
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: log without topics for %v", ErrIncorrectParameterCount, e.Sig)
		}
		if topics[0] != e.ID {
			log.Trace("Log topic mismatch", "event", e.Sig, "want", e.ID, "have", topics[0])
			return nil, fmt.Errorf("%w: have topic %v want %v", ErrInvalidSignature, topics[0], e.ID)
		}
		topics = topics[1:]
	}
	if len(topics) != indexed {
		return nil, fmt.Errorf("%w: %d topics for %d indexed inputs", ErrIncorrectParameterCount, len(topics), indexed)
	}
	// 非索引参数按元组从 data 中解码；有参数时 data 不能为空。
	nonIndexed := e.Inputs.NonIndexed()
	unindexed, err := DecodeData(data, nonIndexed.Types(), true)
	if err != nil {
		return nil, err
	}
	out := make([]DecodedValue, 0, len(e.Inputs))
	for _, input := range e.Inputs {
		if !input.Indexed {
			out = append(out, unindexed[0])
			unindexed = unindexed[1:]
			continue
		}
		v, err := decodeTopic(input.Type, topics[0])
		if err != nil {
			return nil, fmt.Errorf("topic %v: %w", input.Name, err)
		}
		out = append(out, v)
		topics = topics[1:]
	}
	return out, nil
}

// UnpackIntoMap decodes a log into a map keyed by input name.
func (e Event) UnpackIntoMap(v map[string]interface{}, topics []common.Hash, data []byte) error {
	values, err := e.DecodeLog(topics, data)
	if err != nil {
		return err
	}
	for i, input := range e.Inputs {
		v[input.Name] = values[i].Interface()
	}
	return nil
}

func decodeTopic(t RawType, topic common.Hash) (DecodedValue, error) {
	if !isValueType(t) {
		return DecodedValue{Type: FixedBytesType(common.HashLength), Entry: [][]byte{topic.Bytes()}}, nil
	}
	return newDecoder(common.HashLength).decodeAt(t, topic.Bytes(), 0, 0)
}

// isValueType reports whether t fits a single word on its own.
func isValueType(t RawType) bool {
	switch t.T {
	case UintTy, IntTy, AddressTy, BoolTy, FixedBytesTy:
		return true
	}
	return false
}
