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
	"errors"
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/common"
)

// word returns n as a 32 byte big endian word.
func word(n uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(n).Bytes(), 32)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func mustParseTypes(t *testing.T, s string) []RawType {
	t.Helper()
	types, err := ParseTypes(s)
	require.NoError(t, err)
	return types
}

func TestDecodeScalars(t *testing.T) {
	values, err := DecodeData(word(42), mustParseTypes(t, "uint32"), false)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(42), values[0].Interface())

	addr := common.HexToAddress("0x21397c1a1f4acd9132fe36df011610564b87e24b")
	values, err = DecodeData(common.LeftPadBytes(addr.Bytes(), 32), mustParseTypes(t, "address"), false)
	require.NoError(t, err)
	require.Equal(t, addr, values[0].Interface())

	minusOne := common.RightPadBytes(nil, 32)
	for i := range minusOne {
		minusOne[i] = 0xff
	}
	values, err = DecodeData(minusOne, mustParseTypes(t, "int8"), false)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(-1), values[0].Interface())
	require.Equal(t, []string{"0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff"}, values[0].Hex())
}

func TestDecodeEmptyData(t *testing.T) {
	values, err := DecodeData(nil, nil, false)
	require.NoError(t, err)
	require.Empty(t, values)

	values, err = DecodeHex("0x", nil, true)
	require.NoError(t, err)
	require.Empty(t, values)

	for _, typ := range []string{"uint256", "int256"} {
		values, err = DecodeHex("0x", mustParseTypes(t, typ), false)
		require.NoError(t, err, typ)
		require.Len(t, values, 1)
		require.Equal(t, 0, values[0].Interface().(*big.Int).Sign())
	}

	values, err = DecodeHex("0x", mustParseTypes(t, "string"), false)
	require.NoError(t, err)
	require.Equal(t, "", values[0].Interface())

	values, err = DecodeHex("0x", mustParseTypes(t, "(uint256,bool)"), false)
	require.NoError(t, err)
	require.Len(t, values[0].Elements, 2)

	tests := []struct {
		types   string
		asArray bool
		err     error
	}{
		{"string,string", false, ErrIncorrectParameterCount},
		{"uint256,uint256", true, ErrIncorrectParameterCount},
		{"uint256", true, ErrInvalidValue},
		{"uint256[]", false, ErrInvalidValue},
		{"address[2]", false, ErrInvalidValue},
		{"(uint256,string)", false, ErrInvalidValue},
	}
	for _, test := range tests {
		_, err := DecodeHex("0x", mustParseTypes(t, test.types), test.asArray)
		require.ErrorIs(t, err, test.err, test.types)
	}
}

func TestDecodeNestedArrays(t *testing.T) {
	enc, err := ParseValue(mustParseTypes(t, "uint256[][][]")[0], `[[["1"],["2","3"]],[["4"]]]`)
	require.NoError(t, err)

	values, err := DecodeData(Compose([]EncodedValue{enc}), mustParseTypes(t, "uint256[][][]"), false)
	require.NoError(t, err)
	got := values[0]
	require.Len(t, got.Entry, 4)
	require.Len(t, got.Elements, 2)
	require.Equal(t, [][]byte{word(1), word(2), word(3)}, got.Elements[0].Entry)
	require.Equal(t, [][]byte{word(4)}, got.Elements[1].Entry)
	require.Len(t, got.Elements[0].Elements, 2)
	require.Equal(t, big.NewInt(3), got.Elements[0].Elements[1].Elements[1].Interface())
	require.Equal(t, big.NewInt(4), got.Elements[1].Elements[0].Elements[0].Interface())

	want := []interface{}{
		[]interface{}{[]interface{}{big.NewInt(1)}, []interface{}{big.NewInt(2), big.NewInt(3)}},
		[]interface{}{[]interface{}{big.NewInt(4)}},
	}
	bigEq := cmp.Comparer(func(a, b *big.Int) bool { return a.Cmp(b) == 0 })
	if diff := cmp.Diff(want, got.Interface(), bigEq); diff != "" {
		t.Fatalf("decoded value mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeArrayOfTuples(t *testing.T) {
	typ := mustParseTypes(t, "(address,uint256)[]")
	enc, err := ParseValue(typ[0], `[["0x21397c1a1f4acd9132fe36df011610564b87e24b","1"],["0xa77b0f3aae325cb2ec1bdb4a3548d816a83b8ca3","2"]]`)
	require.NoError(t, err)

	values, err := DecodeData(Compose([]EncodedValue{enc}), typ, false)
	require.NoError(t, err)
	tuples, err := SplitTuples(values[0].Entry, 2)
	require.NoError(t, err)
	require.Len(t, tuples, 2)
	require.Equal(t, common.HexToAddress("0xa77b0f3aae325cb2ec1bdb4a3548d816a83b8ca3").Bytes(), tuples[1][0][12:])
	require.Equal(t, word(2), tuples[1][1])
}

// A bytes4[] payload may end right after the last element.
func TestDecodeUnpaddedFixedBytesArray(t *testing.T) {
	data := concat(word(0x20), word(2), common.RightPadBytes([]byte{1, 2, 3, 4}, 32), []byte{0xaa, 0xbb, 0xcc, 0xdd})
	values, err := DecodeData(data, mustParseTypes(t, "bytes4[]"), false)
	require.NoError(t, err)
	require.Equal(t, []string{"0x01020304", "0xaabbccdd"}, values[0].Hex())
}

func TestDecodeOutOfBounds(t *testing.T) {
	huge := make([]byte, 32)
	for i := range huge {
		huge[i] = 0xff
	}
	tests := []struct {
		name  string
		types string
		data  []byte
	}{
		{"short word", "uint256", make([]byte, 31)},
		{"second value missing", "uint256,uint256", word(1)},
		{"pointer past end", "string", word(0x40)},
		{"huge pointer", "bytes", huge},
		{"content past end", "string", concat(word(0x20), word(0x40), word(0))},
		{"huge length", "string", concat(word(0x20), huge)},
		{"huge array length", "uint256[]", concat(word(0x20), huge)},
		{"array longer than data", "uint256[]", concat(word(0x20), word(3), word(1))},
		{"nested pointer past end", "string[]", concat(word(0x20), word(1), word(0x100))},
		{"static array past end", "uint256[3]", concat(word(1), word(2))},
		{"tuple pointer past end", "(uint256,string)", concat(word(0x20), word(1), word(0x80))},
		{"short bytes4", "bytes4", []byte{1, 2, 3}},
	}
	for _, test := range tests {
		_, err := DecodeData(test.data, mustParseTypes(t, test.types), false)
		require.ErrorIs(t, err, ErrInvalidValue, test.name)
	}
}

// Element count does not grow the call stack.
func TestDecodeLongArray(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 64MB decode in short mode")
	}
	const n = 2 << 20
	data := make([]byte, 64+n*32)
	copy(data, word(0x20))
	copy(data[32:], word(n))
	for i := 0; i < n; i++ {
		data[64+i*32+31] = byte(i)
	}
	values, err := DecodeData(data, mustParseTypes(t, "uint8[]"), false)
	require.NoError(t, err)
	require.Len(t, values[0].Elements, n)
	require.Len(t, values[0].Entry, n)
	require.Equal(t, big.NewInt(0xff), values[0].Elements[n-1].Interface())
}

// aliasedStringMatrix encodes a string[][] of n rows whose heads all point at
// one row, whose heads in turn all point at one string.
func aliasedStringMatrix(n int) []byte {
	heads := func() []byte {
		var out []byte
		for i := 0; i < n; i++ {
			out = append(out, word(uint64(n*32))...)
		}
		return out
	}
	return concat(
		word(0x20),
		word(uint64(n)), heads(),
		word(uint64(n)), heads(),
		word(1), common.RightPadBytes([]byte("a"), 32),
	)
}

func TestDecodeAliasedOffsets(t *testing.T) {
	_, err := DecodeData(aliasedStringMatrix(2000), mustParseTypes(t, "string[][]"), false)
	require.ErrorIs(t, err, ErrInvalidValue)
	require.ErrorContains(t, err, "offsets overlap")

	// The canonical encoding of the same shape decodes.
	enc, err := ParseValue(mustParseTypes(t, "string[][]")[0], `[["a","a"],["a","a"]]`)
	require.NoError(t, err)
	values, err := DecodeData(Compose([]EncodedValue{enc}), mustParseTypes(t, "string[][]"), false)
	require.NoError(t, err)
	require.Equal(t, []string{"0x61", "0x61", "0x61", "0x61"}, values[0].Hex())
}

func TestDecodeStrictWords(t *testing.T) {
	tests := []struct {
		types string
		data  []byte
		err   error
	}{
		{"bool", word(2), errBadBool},
		{"bool", common.LeftPadBytes([]byte{1, 0}, 32), errBadBool},
		{"uint8", word(0x100), errBadUint},
		{"uint32", word(1 << 32), errBadUint},
		{"int8", word(0x80), errBadInt},
		{"int16", common.LeftPadBytes([]byte{0x01, 0x00, 0x00}, 32), errBadInt},
		{"address", common.LeftPadBytes(append([]byte{0x01}, make([]byte, 20)...), 32), errBadAddr},
	}
	for _, test := range tests {
		_, err := DecodeData(test.data, mustParseTypes(t, test.types), false)
		require.True(t, errors.Is(err, test.err), "%s %x: %v", test.types, test.data, err)
		require.ErrorIs(t, err, ErrInvalidValue)
	}
}

func TestDecodeHexErrors(t *testing.T) {
	for _, in := range []string{"", "1234", "0xzz", "0x123"} {
		_, err := DecodeHex(in, mustParseTypes(t, "uint256"), false)
		require.ErrorIs(t, err, ErrInvalidValue, in)
	}
}

// Decoding must reject forged input quickly, never panic.
func FuzzDecodeData(f *testing.F) {
	f.Add([]byte{}, "uint256")
	f.Add(concat(word(0x20), word(1), word(0x20), word(1), word(0x20)), "string[][]")
	f.Add(concat(word(0x40), word(0x80), word(1), word(0x2c), word(1), word(0x16)), "uint256[],uint256[]")
	f.Fuzz(func(t *testing.T, data []byte, types string) {
		parsed, err := ParseTypes(types)
		if err != nil {
			return
		}
		DecodeData(data, parsed, false)
	})
}
