// Copyright 2022 The go-ethereum Authors
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
	"strings"
)

// ResolveNameConflict returns the next available name for a given thing.
// Solidity supports function overloading, so an ABI may declare several
// methods or events with the same raw name.
//
// Name conflicts are resolved by adding number suffix. e.g. if the abi contains
// Methods "send" and "send1", ResolveNameConflict would return "send0" for input "send".
// 名称冲突通过添加数字后缀来解决。
func ResolveNameConflict(rawName string, used func(string) bool) string {
	name := rawName
	ok := used(name)
	for idx := 0; ok; idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
		ok = used(name)
	}
	return name
}

// sanitizeArguments names unnamed inputs "arg<i>" and returns the
// human-readable parameter list together with the canonical signature list.
func sanitizeArguments(inputs Arguments) (Arguments, string, string) {
	out := make(Arguments, len(inputs))
	names := make([]string, len(inputs))
	for i, input := range inputs {
		out[i] = input
		if input.Name == "" {
			out[i].Name = fmt.Sprintf("arg%d", i)
		}
		names[i] = fmt.Sprintf("%v %v", input.Type, out[i].Name)
		if input.Indexed {
			names[i] = fmt.Sprintf("%v indexed %v", input.Type, out[i].Name)
		}
	}
	return out, strings.Join(names, ", "), out.signature()
}
