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
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
)

func TestSelectors(t *testing.T) {
	tests := []struct {
		sig string
		id  string
	}{
		{"deposit()", "0xd0e30db0"},
		{"transfer(address,uint256)", "0xa9059cbb"},
		{"balanceOf(address)", "0x70a08231"},
		{"approve(address,uint256)", "0x095ea7b3"},
		{"balanceOf(address,uint256)", "0x00fdd58e"},
		{"getCurrencyReserves(uint256[])", "0x209b96c5"},
		{"Error(string)", "0x08c379a0"},
		{"Panic(uint256)", "0x4e487b71"},
		{"submit((uint256,bool)[],bytes32)", "0x976e5498"},
	}
	for _, test := range tests {
		name, types, err := ParseSignature(test.sig)
		require.NoError(t, err, test.sig)
		require.Equal(t, test.sig, Signature(name, types))
		require.Equal(t, test.id, hexutil.Encode(Selector(name, types)), test.sig)
	}
}

func TestSelectorStability(t *testing.T) {
	deposit := Selector("deposit", nil)
	require.Equal(t, "0xd0e30db0", hexutil.Encode(deposit))
	require.NotEqual(t, deposit, Selector("deposit", []RawType{UintType(256)}))
	require.NotEqual(t, Selector("f", []RawType{UintType(256)}), Selector("f", []RawType{IntType(256)}))
}

func TestParseSignatureErrors(t *testing.T) {
	for _, sig := range []string{"", "()", "1f()", "f", "f(", "f(uint256", "f(uint256))", "f(uint7)", "f()x"} {
		_, _, err := ParseSignature(sig)
		require.ErrorIs(t, err, ErrInvalidType, sig)
	}
}

func TestFunctionPack(t *testing.T) {
	fn, err := ParseFunction("transfer(address,uint256)", BoolType)
	require.NoError(t, err)
	require.Equal(t, "function transfer(address arg0, uint256 arg1) returns(bool)", fn.String())

	to := common.HexToAddress("0x21397c1a1f4acd9132fe36df011610564b87e24b")
	data, err := fn.Pack(ValueOf(AddressCodec, to), ValueOf(Uint256, big.NewInt(1000)))
	require.NoError(t, err)
	require.Equal(t, "0xa9059cbb"+
		"00000000000000000000000021397c1a1f4acd9132fe36df011610564b87e24b"+
		"00000000000000000000000000000000000000000000000000000000000003e8", hexutil.Encode(data))

	loose, err := fn.PackValues(to, 1000)
	require.NoError(t, err)
	require.Equal(t, data, loose)

	args, err := fn.DecodeCall(data)
	require.NoError(t, err)
	require.Equal(t, to, args[0].Interface())
	require.Equal(t, big.NewInt(1000), args[1].Interface())

	out, err := fn.DecodeOutput(word(1))
	require.NoError(t, err)
	require.Equal(t, true, out[0].Interface())
}

func TestFunctionPackErrors(t *testing.T) {
	fn, err := ParseFunction("transfer(address,uint256)")
	require.NoError(t, err)

	_, err = fn.Pack(ValueOf(AddressCodec, common.Address{}))
	require.ErrorIs(t, err, ErrIncorrectParameterCount)

	_, err = fn.Pack(ValueOf(Bool, true), ValueOf(Uint256, big.NewInt(1)))
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = fn.Pack(ValueOf(AddressCodec, common.Address{}), ValueOf(Uint32, uint32(1)))
	require.ErrorIs(t, err, ErrInvalidType)

	_, err = fn.PackValues(common.Address{}, 1, 2)
	require.ErrorIs(t, err, ErrIncorrectParameterCount)
}

func TestFunctionDecodeCallErrors(t *testing.T) {
	fn, err := ParseFunction("balanceOf(address)")
	require.NoError(t, err)

	_, err = fn.DecodeCall([]byte{0x70, 0xa0})
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = fn.DecodeCall(append(hexutil.MustDecode("0xa9059cbb"), word(1)...))
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = fn.DecodeCall(append(hexutil.MustDecode("0x70a08231"), 1, 2))
	require.ErrorIs(t, err, ErrInvalidValue)

	deposit, err := ParseFunction("deposit()")
	require.NoError(t, err)
	data, err := deposit.Pack()
	require.NoError(t, err)
	require.Equal(t, "0xd0e30db0", hexutil.Encode(data))
	args, err := deposit.DecodeCall(data)
	require.NoError(t, err)
	require.Empty(t, args)
}

func TestTwoDynamicArrays(t *testing.T) {
	args := NewArguments(SliceType(UintType(256)), SliceType(UintType(256)))
	data, err := args.Pack(
		ValueOf(Array(Uint256), []*big.Int{big.NewInt(0x2c)}),
		ValueOf(Array(Uint256), []*big.Int{big.NewInt(0x16)}),
	)
	require.NoError(t, err)
	require.Equal(t, concat(word(0x40), word(0x80), word(1), word(0x2c), word(1), word(0x16)), data)

	values, err := args.Unpack(data)
	require.NoError(t, err)
	require.Equal(t, []interface{}{big.NewInt(0x2c)}, values[0])
	require.Equal(t, []interface{}{big.NewInt(0x16)}, values[1])
}

func TestConstructorPack(t *testing.T) {
	ctor := Constructor{
		Bytecode: hexutil.MustDecode("0x6080604052"),
		Inputs:   NewArguments(StringType, StringType, UintType(8)),
	}
	data, err := ctor.Pack(
		ValueOf(String, "BokkyPooBah Test Token"),
		ValueOf(String, "BOKKY"),
		ValueOf(Uint8, uint8(18)),
	)
	require.NoError(t, err)
	require.Equal(t, hexutil.MustDecode("0x6080604052"), data[:5])

	args := data[5:]
	require.Equal(t, word(0x60), args[0:32])
	require.Equal(t, word(0xa0), args[32:64])
	require.Equal(t, word(0x12), args[64:96])
	require.Equal(t, word(22), args[96:128])
	require.Equal(t, common.RightPadBytes([]byte("BokkyPooBah Test Token"), 32), args[128:160])
	require.Equal(t, word(5), args[160:192])
	require.Len(t, args, 224)

	loose, err := ctor.PackValues("BokkyPooBah Test Token", "BOKKY", 18)
	require.NoError(t, err)
	require.Equal(t, data, loose)
}
