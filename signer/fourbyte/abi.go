// Copyright 2019 The go-ethereum Authors
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

package fourbyte

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
)

// DecodedCall is a method call parsed according to the signature found for
// its selector.
//
// DecodedCall 表示根据选择器查到的签名解析出的方法调用。
type DecodedCall struct {
	Function abi.Function
	Values   []abi.DecodedValue
}

// String renders the call as name(type: value,...), e.g.
// transfer(address: 0x..., uint256: 100).
func (cd DecodedCall) String() string {
	args := make([]string, len(cd.Values))
	for i, v := range cd.Values {
		args[i] = fmt.Sprintf("%v: %v", v.Type, formatArgument(v.Interface()))
	}
	return fmt.Sprintf("%s(%s)", cd.Function.RawName, strings.Join(args, ","))
}

func formatArgument(v interface{}) string {
	switch v := v.(type) {
	case []byte:
		return hexutil.Encode(v)
	case []interface{}:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = formatArgument(item)
		}
		return "[" + strings.Join(items, ",") + "]"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ParseCallData identifies calldata by its selector and decodes the
// arguments. Data that decodes but does not re-encode to the same bytes is
// rejected, since extra content could otherwise be stuffed between the
// arguments.
func (db *Database) ParseCallData(calldata []byte) (*DecodedCall, error) {
	if len(calldata) < abi.SelectorLength {
		return nil, fmt.Errorf("%w: incomplete method signature (%d bytes < 4)", abi.ErrInvalidSignature, len(calldata))
	}
	argdata := calldata[abi.SelectorLength:]
	if len(argdata)%32 != 0 {
		return nil, fmt.Errorf("%w: length should be a multiple of 32 bytes (was %d)", abi.ErrInvalidValue, len(argdata))
	}
	fn, err := db.Function(calldata[:abi.SelectorLength])
	if err != nil {
		return nil, err
	}
	values, err := fn.DecodeCall(calldata)
	if err != nil {
		return nil, fmt.Errorf("signature %q matches, but arguments mismatch: %w", fn.Sig, err)
	}
	// Re-encode the decoded values and require the original bytes back.
	// 重新编码并与原始数据比较，以发现夹带的额外数据。
	encoded := make([]abi.EncodedValue, len(values))
	for i, v := range values {
		if encoded[i], err = abi.EncodeValue(v.Type, v.Interface()); err != nil {
			return nil, err
		}
	}
	if have := abi.Compose(encoded); !bytes.Equal(have, argdata) {
		return nil, fmt.Errorf("%w: supplied data is stuffed with extra data\nwant %s\nhave %s\nfor method %v",
			abi.ErrInvalidValue, common.Bytes2Hex(argdata), common.Bytes2Hex(have), fn.Sig)
	}
	return &DecodedCall{Function: fn, Values: values}, nil
}
