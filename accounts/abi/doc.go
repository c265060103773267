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

// Package abi implements the Ethereum contract ABI (Application Binary
// Interface): the byte layout of function call data, return values and
// event logs.
//
// Types are explicit RawType descriptors, built with the constructors in
// this package or parsed from canonical names ("uint256", "(address,bytes)[]").
// Values are encoded without reflection through Codec bindings, or from
// loosely typed Go values with EncodeValue, into EncodedValue trees that
// Compose lays out with the head/tail rule. DecodeData walks the same layout
// back into DecodedValue trees, checking every offset and length against the
// input. Overlapping offsets that would make the result larger than the input
// are rejected.
//
// abi 包实现了以太坊合约 ABI 的编码与解码。
//
// 静态类型在头部原地编码；动态类型（string、bytes、T[]，以及包含动态类型的
// 数组和元组）在头部写入偏移量，内容写入尾部。
package abi
