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
)

// MakeTopic converts an indexed event value into its filter topic. Value
// types are stored as their padded word; strings and bytes as the Keccak-256
// hash of their content.
func MakeTopic(v Value) (common.Hash, error) {
	t := v.RawType()
	enc, err := v.Encode()
	if err != nil {
		return common.Hash{}, err
	}
	switch {
	case isValueType(t):
		return common.BytesToHash(enc.Bytes()), nil
	case t.T == StringTy || t.T == BytesTy:
		packed, err := enc.Packed()
		if err != nil {
			return common.Hash{}, err
		}
		return crypto.Keccak256Hash(packed), nil
	}
	// TODO: Solidity hashes the in-place encoding of indexed arrays and
	// structs; derive that encoding from EncodedValue to support them.
	return common.Hash{}, fmt.Errorf("%w: indexed %v topic", ErrNotCurrentlySupported, t)
}

// MakeTopics converts a filter query argument list into a filter topic set.
// An empty rule list matches any topic at that position.
func MakeTopics(query ...[]Value) ([][]common.Hash, error) {
	topics := make([][]common.Hash, len(query))
	for i, filter := range query {
		for _, rule := range filter {
			topic, err := MakeTopic(rule)
			if err != nil {
				return nil, err
			}
			topics[i] = append(topics[i], topic)
		}
	}
	return topics, nil
}
