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

package compiler

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/accounts/abi"
)

const combinedV8 = `{
  "contracts": {
    "greeter.sol:Greeter": {
      "abi": [{"inputs":[],"name":"greet","outputs":[{"internalType":"string","name":"","type":"string"}],"stateMutability":"view","type":"function"}],
      "bin": "6080",
      "bin-runtime": "6080",
      "hashes": {"greet()": "cfae3217", "setGreeting(string)": "a4136862"}
    }
  },
  "version": "0.8.26+commit.8a97fa7a.Linux.g++"
}`

const combinedLegacy = `{
  "contracts": {
    "greeter.sol:Greeter": {
      "abi": "[{\"constant\":true,\"inputs\":[],\"name\":\"greet\",\"outputs\":[{\"name\":\"\",\"type\":\"string\"}],\"type\":\"function\"}]",
      "devdoc": "{\"methods\":{}}",
      "userdoc": "{\"methods\":{}}",
      "bin": "6060",
      "bin-runtime": "6060",
      "hashes": {"greet()": "cfae3217"}
    }
  },
  "version": "0.4.26"
}`

func TestParseCombinedJSON(t *testing.T) {
	contracts, err := ParseCombinedJSON([]byte(combinedV8), "", "", "0.8.26", "")
	require.NoError(t, err)
	require.Len(t, contracts, 1)

	c := contracts["greeter.sol:Greeter"]
	require.NotNil(t, c)
	require.Equal(t, "0x6080", c.Code)
	require.Equal(t, map[string]string{"greet()": "cfae3217", "setGreeting(string)": "a4136862"}, c.Hashes)
	require.Equal(t, "Solidity", c.Info.Language)
	require.IsType(t, []interface{}{}, c.Info.AbiDefinition)
}

func TestParseCombinedJSONLegacy(t *testing.T) {
	contracts, err := ParseCombinedJSON([]byte(combinedLegacy), "contract Greeter {}", "0.4.26", "0.4.26", "")
	require.NoError(t, err)

	c := contracts["greeter.sol:Greeter"]
	require.NotNil(t, c)
	require.Equal(t, "contract Greeter {}", c.Info.Source)
	require.Equal(t, "cfae3217", c.Hashes["greet()"])
	require.Len(t, c.Info.AbiDefinition, 1)

	_, err = ParseCombinedJSON([]byte(`{"contracts": 1}`), "", "", "", "")
	require.Error(t, err)
}

func TestContractFunctions(t *testing.T) {
	contracts, err := ParseCombinedJSON([]byte(combinedV8), "", "", "", "")
	require.NoError(t, err)

	fns, err := contracts["greeter.sol:Greeter"].Functions()
	require.NoError(t, err)
	require.Len(t, fns, 2)
	require.Equal(t, "greet()", fns[0].Sig)
	require.Equal(t, "setGreeting(string)", fns[1].Sig)
	require.Equal(t, []byte{0xa4, 0x13, 0x68, 0x62}, fns[1].ID)

	bad := &Contract{Hashes: map[string]string{"greet()": "00000000"}}
	_, err = bad.Functions()
	require.ErrorIs(t, err, abi.ErrInvalidSignature)

	bad = &Contract{Hashes: map[string]string{"greet(uint7)": "00000000"}}
	_, err = bad.Functions()
	require.ErrorIs(t, err, abi.ErrInvalidType)
}
