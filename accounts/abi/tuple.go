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

import "fmt"

// SplitTuples groups a flat list of entries into tuples of fieldCount
// entries each, e.g. the Entry list decoded for a (address,uint256)[] value.
// A list that does not divide evenly fails with ErrIncorrectParameterCount.
func SplitTuples(entries [][]byte, fieldCount int) ([][][]byte, error) {
	if fieldCount <= 0 {
		return nil, fmt.Errorf("%w: tuple of %d fields", ErrIncorrectParameterCount, fieldCount)
	}
	if len(entries)%fieldCount != 0 {
		return nil, fmt.Errorf("%w: %d entries do not split into tuples of %d", ErrIncorrectParameterCount, len(entries), fieldCount)
	}
	tuples := make([][][]byte, 0, len(entries)/fieldCount)
	for start := 0; start < len(entries); start += fieldCount {
		tuples = append(tuples, entries[start:start+fieldCount])
	}
	return tuples, nil
}
