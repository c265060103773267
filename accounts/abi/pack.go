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
	"github.com/sunyihoo/go-web3/common/math"
)

// 字节对齐：
// 整数与地址右对齐（左侧补零，负数补 0xff），bytesN 左对齐（右侧补零）。
// 动态类型（string、bytes）带长度字，内容右侧补零到 32 字节边界。

// EncodeInteger encodes v as a uint<bits> or int<bits> value. Negative values
// are written in two's complement, so their padding bytes are 0xff. Values that
// do not fit the declared width are rejected.
func EncodeInteger(t RawType, v *big.Int) (EncodedValue, error) {
	if t.T != UintTy && t.T != IntTy {
		return EncodedValue{}, typeErr("integer", t)
	}
	if err := t.Validate(); err != nil {
		return EncodedValue{}, err
	}
	if err := checkIntegerRange(t, v); err != nil {
		return EncodedValue{}, err
	}
	word := math.U256Bytes(new(big.Int).Set(v))
	return newLeaf(word, word[32-t.Size/8:], false), nil
}

func checkIntegerRange(t RawType, v *big.Int) error {
	if v == nil {
		return fmt.Errorf("%w: nil integer", ErrInvalidValue)
	}
	if v.BitLen() > 256 {
		return fmt.Errorf("%w: integer %v exceeds 256 bits", ErrInvalidValue, v)
	}
	if t.T == UintTy {
		if v.Sign() < 0 {
			return fmt.Errorf("%w: negative value %v for %v", ErrInvalidValue, v, t)
		}
		if v.BitLen() > t.Size {
			return fmt.Errorf("%w: %v overflows %v", ErrInvalidValue, v, t)
		}
		return nil
	}
	// int<N> holds [-2^(N-1), 2^(N-1)-1]; for negative v check -v-1 instead.
	mag := v
	if v.Sign() < 0 {
		mag = new(big.Int).Not(v)
	}
	if mag.BitLen() > t.Size-1 {
		return fmt.Errorf("%w: %v overflows %v", ErrInvalidValue, v, t)
	}
	return nil
}

// EncodeBool encodes a boolean as the uint8 value 0 or 1.
func EncodeBool(v bool) EncodedValue {
	word := make([]byte, 32)
	if v {
		word[31] = 1
	}
	return newLeaf(word, word[31:], false)
}

// EncodeAddress encodes an address right-aligned in its word.
func EncodeAddress(addr common.Address) EncodedValue {
	return newLeaf(common.LeftPadBytes(addr.Bytes(), 32), common.CopyBytes(addr.Bytes()), false)
}

// EncodeFixedBytes encodes a bytes<size> value left-aligned in its word.
// Input shorter than size is zero extended on the right; longer input is an
// error.
func EncodeFixedBytes(size int, b []byte) (EncodedValue, error) {
	if err := FixedBytesType(size).Validate(); err != nil {
		return EncodedValue{}, err
	}
	if len(b) > size {
		return EncodedValue{}, fmt.Errorf("%w: %d bytes do not fit bytes%d", ErrInvalidValue, len(b), size)
	}
	packed := common.RightPadBytes(common.CopyBytes(b), size)
	return newLeaf(common.RightPadBytes(packed, 32), packed, false), nil
}

// EncodeBytes encodes a dynamic byte string as [length][content][padding].
func EncodeBytes(b []byte) EncodedValue {
	return newLeaf(packBytesSlice(b, len(b)), common.CopyBytes(b), true)
}

// EncodeString encodes a string as the dynamic bytes of its UTF-8 form.
func EncodeString(s string) EncodedValue {
	return newLeaf(packBytesSlice([]byte(s), len(s)), []byte(s), true)
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice. An empty slice is a single zero word.
func packBytesSlice(bytes []byte, l int) []byte {
	len := packWord(l)
	return append(len, common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// EncodePackedValues concatenates the packed encodings of values.
func EncodePackedValues(values ...EncodedValue) ([]byte, error) {
	var out []byte
	for _, v := range values {
		b, err := v.Packed()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}
