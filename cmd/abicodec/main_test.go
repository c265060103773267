// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/log"
)

const (
	approveCall  = "0x095ea7b300000000000000000000000000000000000000000000000000000000000000010000000000000000000000000000000000000000000000000000000000000010"
	transferID   = "0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"
	stringsValue = "0x00000000000000000000000000000000000000000000000000000000000000200000000000000000000000000000000000000000000000000000000000000003000000000000000000000000000000000000000000000000000000000000006000000000000000000000000000000000000000000000000000000000000000a000000000000000000000000000000000000000000000000000000000000000e0000000000000000000000000000000000000000000000000000000000000000568656c6c6f000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000362696700000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000000005776f726c64000000000000000000000000000000000000000000000000000000"
)

// runAbicodec runs the command line app in process and returns what it wrote.
func runAbicodec(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() { log.SetDefault(log.NewLogger(log.DiscardHandler())) })

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"abicodec"}, args...))
	return out.String(), err
}

func word(n string) string {
	return strings.Repeat("0", 64-len(n)) + n
}

func TestSelectorCommand(t *testing.T) {
	out, err := runAbicodec(t, "selector", "transfer(address,uint)")
	require.NoError(t, err)
	require.Equal(t, "0xa9059cbb transfer(address,uint256)\n", out)

	out, err = runAbicodec(t, "selector", "--event", "Transfer(address,address,uint256)")
	require.NoError(t, err)
	require.Equal(t, transferID+" Transfer(address,address,uint256)\n", out)

	_, err = runAbicodec(t, "selector", "transfer(address,uint7)")
	require.ErrorIs(t, err, abi.ErrInvalidType)
}

func TestEncodeCommand(t *testing.T) {
	out, err := runAbicodec(t, "encode", "--sig", "deposit()")
	require.NoError(t, err)
	require.Equal(t, "0xd0e30db0\n", out)

	out, err = runAbicodec(t, "encode", "--sig", "approve(address,uint256)", "0x0000000000000000000000000000000000000001", "0x10")
	require.NoError(t, err)
	require.Equal(t, approveCall+"\n", out)

	out, err = runAbicodec(t, "encode", "--sig", "f(string[])", "--noselector", `["hello","big","world"]`)
	require.NoError(t, err)
	require.Equal(t, stringsValue+"\n", out)

	out, err = runAbicodec(t, "encode", "--sig", "f(uint32)", "--packed", "25639")
	require.NoError(t, err)
	require.Equal(t, "0x00006427\n", out)

	_, err = runAbicodec(t, "encode", "--sig", "approve(address,uint256)", "0x01")
	require.ErrorIs(t, err, abi.ErrIncorrectParameterCount)

	_, err = runAbicodec(t, "encode", "--sig", "f(uint8)", "256")
	require.ErrorIs(t, err, abi.ErrInvalidValue)

	_, err = runAbicodec(t, "encode", "--sig", "f((uint8,bool))", "--packed", `["1","true"]`)
	require.ErrorIs(t, err, abi.ErrNotCurrentlySupported)

	_, err = runAbicodec(t, "encode", "1")
	require.ErrorContains(t, err, "--sig is required")
}

func TestDecodeCommand(t *testing.T) {
	out, err := runAbicodec(t, "decode", "--call", "approve(address,uint256)", approveCall)
	require.NoError(t, err)
	require.Equal(t, "[0] address: 0x0000000000000000000000000000000000000001\n[1] uint256: 16\n", out)

	data := "0x" + word("a") + word("40") + word("5") + "68656c6c6f" + strings.Repeat("0", 54)
	out, err = runAbicodec(t, "decode", "--types", "uint256,string", data)
	require.NoError(t, err)
	require.Equal(t, "[0] uint256: 10\n[1] string: \"hello\"\n", out)

	out, err = runAbicodec(t, "decode", "--types", "string[]", stringsValue)
	require.NoError(t, err)
	require.Equal(t, "[0] string[]: [\"hello\", \"big\", \"world\"]\n", out)

	_, err = runAbicodec(t, "decode", "--call", "approve(address,uint256)", "0xa9059cbb")
	require.ErrorIs(t, err, abi.ErrInvalidSignature)

	_, err = runAbicodec(t, "decode", "--types", "uint256", "0x1234")
	require.ErrorIs(t, err, abi.ErrInvalidValue)

	_, err = runAbicodec(t, "decode", "--types", "uint256", "--call", "f(uint256)", approveCall)
	require.ErrorContains(t, err, "can't be used at the same time")

	_, err = runAbicodec(t, "decode", approveCall)
	require.ErrorContains(t, err, "is required")
}

func TestEventCommand(t *testing.T) {
	out, err := runAbicodec(t, "event",
		"--sig", "Transfer(address,address,uint256)",
		"--indexed", "0", "--indexed", "1",
		"--topic", transferID,
		"--topic", "0x"+word("1"),
		"--topic", "0x"+word("2"),
		"--data", "0x"+word("5"),
	)
	require.NoError(t, err)
	require.Contains(t, out, "[0] address: 0x0000000000000000000000000000000000000001\n")
	require.Contains(t, out, "[1] address: 0x0000000000000000000000000000000000000002\n")
	require.Contains(t, out, "[2] uint256: 5\n")

	_, err = runAbicodec(t, "event", "--sig", "Transfer(address,address,uint256)", "--indexed", "0", "--topic", transferID)
	require.ErrorIs(t, err, abi.ErrIncorrectParameterCount)

	_, err = runAbicodec(t, "event", "--sig", "Transfer(address,address,uint256)", "--topic", "0x01")
	require.ErrorIs(t, err, abi.ErrInvalidValue)
}

func TestRevertCommand(t *testing.T) {
	reason := "0x08c379a0" + word("20") + word("12") + "696e73756666696369656e742066756e6473" + strings.Repeat("0", 28)
	out, err := runAbicodec(t, "revert", reason)
	require.NoError(t, err)
	require.Equal(t, "insufficient funds\n", out)

	out, err = runAbicodec(t, "revert", "0x4e487b71"+word("11"))
	require.NoError(t, err)
	require.Equal(t, "arithmetic underflow or overflow\n", out)

	custom := "0xcf479181" + word("1") + word("2")
	out, err = runAbicodec(t, "revert", "--error", "Unauthorized(address)", "--error", "InsufficientBalance(uint256,uint256)", custom)
	require.NoError(t, err)
	require.Contains(t, out, "[0] uint256: 1\n[1] uint256: 2\n")

	_, err = runAbicodec(t, "revert", custom)
	require.ErrorIs(t, err, abi.ErrInvalidSignature)
}

func TestTypedHashCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "mail.json")
	require.NoError(t, os.WriteFile(file, []byte(mailTypedData), 0644))

	out, err := runAbicodec(t, "typedhash", file)
	require.NoError(t, err)
	require.Equal(t, "0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2\n", out)

	out, err = runAbicodec(t, "typedhash", "--show", "--chainid", "0x1", file)
	require.NoError(t, err)
	require.Contains(t, out, `contents [string]: "Hello, Bob!"`)
	require.True(t, strings.HasSuffix(out, "0xbe609aee343fb3c4b28e1df9e632fca64fcfaede20f02e86244efddf30957bd2\n"))

	out, err = runAbicodec(t, "typedhash", "--chainid", "5", file)
	require.NoError(t, err)
	require.NotContains(t, out, "0xbe609aee")

	_, err = runAbicodec(t, "typedhash", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
}

func TestLookupCommand(t *testing.T) {
	out, err := runAbicodec(t, "lookup", "0xa9059cbb")
	require.NoError(t, err)
	require.Equal(t, "transfer(address,uint256)\n", out)

	out, err = runAbicodec(t, "lookup", approveCall)
	require.NoError(t, err)
	require.Equal(t, "approve(address,uint256)\n"+
		"[0] address: 0x0000000000000000000000000000000000000001\n"+
		"[1] uint256: 16\n", out)

	_, err = runAbicodec(t, "lookup", approveCall+word("1"))
	require.ErrorIs(t, err, abi.ErrInvalidValue)

	_, err = runAbicodec(t, "lookup", "0x12345678")
	require.ErrorContains(t, err, "not found")
}

func TestRegisterCommand(t *testing.T) {
	db := filepath.Join(t.TempDir(), "4byte.json")

	out, err := runAbicodec(t, "register", "--4bytedb.custom", db, "setGreeting(string)", "transfer(address,uint)")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasSuffix(lines[0], " setGreeting(string)"))
	require.Equal(t, "0xa9059cbb transfer(address,uint256)", lines[1])

	id := strings.Fields(lines[0])[0]
	out, err = runAbicodec(t, "lookup", "--4bytedb.custom", db, id)
	require.NoError(t, err)
	require.Equal(t, "setGreeting(string)\n", out)

	// The database can also come from the configuration file.
	config := filepath.Join(t.TempDir(), "abicodec.toml")
	require.NoError(t, os.WriteFile(config, []byte("SignatureDB = \""+filepath.ToSlash(db)+"\"\n"), 0644))
	out, err = runAbicodec(t, "--config", config, "lookup", id)
	require.NoError(t, err)
	require.Equal(t, "setGreeting(string)\n", out)

	_, err = runAbicodec(t, "register")
	require.ErrorContains(t, err, "expected at least one signature")
}

func TestRegisterCombinedJSON(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "4byte.json")
	combined := filepath.Join(dir, "combined.json")
	require.NoError(t, os.WriteFile(combined, []byte(`{
  "contracts": {
    "greeter.sol:Greeter": {
      "abi": [],
      "bin": "6080",
      "hashes": {"setGreeting(string)": "a4136862", "greet()": "cfae3217"}
    }
  }
}`), 0644))

	out, err := runAbicodec(t, "register", "--4bytedb.custom", db, "--combined-json", combined)
	require.NoError(t, err)
	require.Equal(t, "0xcfae3217 greet()\n0xa4136862 setGreeting(string)\n", out)

	require.NoError(t, os.WriteFile(combined, []byte(`{"contracts": {"A": {"abi": [], "hashes": {"greet()": "00000000"}}}}`), 0644))
	_, err = runAbicodec(t, "register", "--4bytedb.custom", db, "--combined-json", combined)
	require.ErrorIs(t, err, abi.ErrInvalidSignature)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "abicodec.toml")
	config := `
[Log]
Verbosity = 1
Format = "logfmt"

[Signatures]
xfer = "transfer(address,uint256)"
`
	require.NoError(t, os.WriteFile(file, []byte(config), 0644))

	out, err := runAbicodec(t, "--config", file, "selector", "xfer")
	require.NoError(t, err)
	require.Equal(t, "0xa9059cbb transfer(address,uint256)\n", out)

	out, err = runAbicodec(t, "--config", file, "--verbosity", "4", "dumpconfig")
	require.NoError(t, err)
	require.Contains(t, out, "[Log]")
	require.Contains(t, out, "Verbosity = 4")
	require.Contains(t, out, `"transfer(address,uint256)"`)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("[Log]\nColour = true\n"), 0644))
	_, err = runAbicodec(t, "--config", bad, "selector", "deposit()")
	require.ErrorContains(t, err, "field 'Colour' is not defined")
}

const mailTypedData = `{
  "types": {
    "EIP712Domain": [
      {"name": "name", "type": "string"},
      {"name": "version", "type": "string"},
      {"name": "chainId", "type": "uint256"},
      {"name": "verifyingContract", "type": "address"}
    ],
    "Person": [
      {"name": "name", "type": "string"},
      {"name": "wallet", "type": "address"}
    ],
    "Mail": [
      {"name": "from", "type": "Person"},
      {"name": "to", "type": "Person"},
      {"name": "contents", "type": "string"}
    ]
  },
  "primaryType": "Mail",
  "domain": {
    "name": "Ether Mail",
    "version": "1",
    "chainId": 1,
    "verifyingContract": "0xCcCCccccCCCCcCCCCCCcCcCccCcCCCcCcccccccC"
  },
  "message": {
    "from": {"name": "Cow", "wallet": "0xCD2a3d9F938E13CD947Ec05AbC7FE734Df8DD826"},
    "to": {"name": "Bob", "wallet": "0xbBbBBBBbbBBBbbbBbbBbbbbBBbBbbbbBbBbbBBbB"},
    "contents": "Hello, Bob!"
  }
}`
