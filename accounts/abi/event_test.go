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
	"github.com/sunyihoo/go-web3/crypto"
)

var (
	fromAddr = common.HexToAddress("0x21397c1a1f4acd9132fe36df011610564b87e24b")
	toAddr   = common.HexToAddress("0xa77b0f3aae325cb2ec1bdb4a3548d816a83b8ca3")
)

func transferEvent(t *testing.T) Event {
	t.Helper()
	ev, err := ParseEvent("Transfer(address,address,uint256)", false, 0, 1)
	require.NoError(t, err)
	return ev
}

func TestEventID(t *testing.T) {
	ev := transferEvent(t)
	require.Equal(t, "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef", ev.ID.Hex())
	require.Equal(t, "event Transfer(address indexed arg0, address indexed arg1, uint256 arg2)", ev.String())
}

func TestEventDecodeLog(t *testing.T) {
	ev := transferEvent(t)
	topics := []common.Hash{ev.ID, common.BytesToHash(fromAddr.Bytes()), common.BytesToHash(toAddr.Bytes())}

	values, err := ev.DecodeLog(topics, word(1000))
	require.NoError(t, err)
	require.Len(t, values, 3)
	require.Equal(t, fromAddr, values[0].Interface())
	require.Equal(t, toAddr, values[1].Interface())
	require.Equal(t, big.NewInt(1000), values[2].Interface())

	out := make(map[string]interface{})
	require.NoError(t, ev.UnpackIntoMap(out, topics, word(1000)))
	require.Equal(t, toAddr, out["arg1"])
}

func TestEventDecodeLogErrors(t *testing.T) {
	ev := transferEvent(t)
	from := common.BytesToHash(fromAddr.Bytes())

	_, err := ev.DecodeLog([]common.Hash{common.HexToHash("0x01"), from, from}, word(1))
	require.ErrorIs(t, err, ErrInvalidSignature)

	_, err = ev.DecodeLog([]common.Hash{ev.ID, from}, word(1))
	require.ErrorIs(t, err, ErrIncorrectParameterCount)

	_, err = ev.DecodeLog(nil, word(1))
	require.ErrorIs(t, err, ErrIncorrectParameterCount)

	_, err = ev.DecodeLog([]common.Hash{ev.ID, from, from}, nil)
	require.ErrorIs(t, err, ErrInvalidValue)

	_, err = ev.DecodeLog([]common.Hash{ev.ID, from, from}, concat(word(1), word(2)[:16]))
	require.NoError(t, err)
}

func TestEventIndexedDynamic(t *testing.T) {
	ev, err := ParseEvent("Message(string,bytes)", false, 0)
	require.NoError(t, err)
	require.Equal(t, crypto.Keccak256Hash([]byte("Message(string,bytes)")), ev.ID)

	topic, err := MakeTopic(ValueOf(String, "hello"))
	require.NoError(t, err)
	require.Equal(t, "0x1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8", topic.Hex())

	data, err := Encode(Bytes, []byte{0xca, 0xfe})
	require.NoError(t, err)
	values, err := ev.DecodeLog([]common.Hash{ev.ID, topic}, data)
	require.NoError(t, err)
	require.Equal(t, FixedBytesType(32), values[0].Type)
	require.Equal(t, topic.Bytes(), values[0].Interface())
	require.Equal(t, []byte{0xca, 0xfe}, values[1].Interface())
}

func TestAnonymousEvent(t *testing.T) {
	ev, err := ParseEvent("Ping(uint64,bool)", true, 0)
	require.NoError(t, err)

	values, err := ev.DecodeLog([]common.Hash{common.BigToHash(big.NewInt(9))}, word(1))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(9), values[0].Interface())
	require.Equal(t, true, values[1].Interface())

	_, err = ParseEvent("Ping(uint64,bool)", true, 2)
	require.ErrorIs(t, err, ErrIncorrectParameterCount)
}

func TestEventWithoutData(t *testing.T) {
	ev, err := ParseEvent("Approval(address,address)", false, 0, 1)
	require.NoError(t, err)
	topics := []common.Hash{ev.ID, common.BytesToHash(fromAddr.Bytes()), common.BytesToHash(toAddr.Bytes())}
	values, err := ev.DecodeLog(topics, nil)
	require.NoError(t, err)
	require.Len(t, values, 2)
}

func TestMakeTopics(t *testing.T) {
	minusOne := make([]byte, 32)
	for i := range minusOne {
		minusOne[i] = 0xff
	}
	topics, err := MakeTopics(
		[]Value{ValueOf(AddressCodec, fromAddr), ValueOf(AddressCodec, toAddr)},
		nil,
		[]Value{ValueOf(Int8, int8(-1)), ValueOf(Bool, true), ValueOf(Hash, common.Hash{0xaa})},
	)
	require.NoError(t, err)
	require.Len(t, topics, 3)
	require.Equal(t, common.BytesToHash(fromAddr.Bytes()), topics[0][0])
	require.Equal(t, common.BytesToHash(toAddr.Bytes()), topics[0][1])
	require.Empty(t, topics[1])
	require.Equal(t, common.BytesToHash(minusOne), topics[2][0])
	require.Equal(t, common.BigToHash(big.NewInt(1)), topics[2][1])
	require.Equal(t, common.Hash{0xaa}, topics[2][2])

	_, err = MakeTopics([]Value{ValueOf(Array(Uint256), []*big.Int{big.NewInt(1)})})
	require.ErrorIs(t, err, ErrNotCurrentlySupported)
}

func TestSplitTuples(t *testing.T) {
	entries := [][]byte{{1}, {2}, {3}, {4}}
	tuples, err := SplitTuples(entries, 2)
	require.NoError(t, err)
	require.Equal(t, [][][]byte{{{1}, {2}}, {{3}, {4}}}, tuples)

	_, err = SplitTuples(entries, 3)
	require.ErrorIs(t, err, ErrIncorrectParameterCount)
	_, err = SplitTuples(entries, 0)
	require.ErrorIs(t, err, ErrIncorrectParameterCount)

	tuples, err = SplitTuples(nil, 2)
	require.NoError(t, err)
	require.Empty(t, tuples)
}
