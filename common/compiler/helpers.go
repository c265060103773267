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

// Package compiler reads the output of the Solidity compiler.
package compiler

import (
	"fmt"
	"sort"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common/hexutil"
)

// Contract contains information about a compiled contract, alongside its code and runtime code.
type Contract struct {
	Code        string            `json:"code"`
	RuntimeCode string            `json:"runtime-code"`
	Info        ContractInfo      `json:"info"`
	Hashes      map[string]string `json:"hashes"` // signature -> hex selector
}

// ContractInfo contains information about a compiled contract, including access
// to the ABI definition, source mapping, user and developer docs, and metadata.
//
// Depending on the source, language version, compiler version, and compiler
// options will provide information about how the contract was compiled.
type ContractInfo struct {
	Source          string      `json:"source"`
	Language        string      `json:"language"`
	LanguageVersion string      `json:"languageVersion"`
	CompilerVersion string      `json:"compilerVersion"`
	CompilerOptions string      `json:"compilerOptions"`
	SrcMap          interface{} `json:"srcMap"`
	SrcMapRuntime   string      `json:"srcMapRuntime"`
	AbiDefinition   interface{} `json:"abiDefinition"`
	UserDoc         interface{} `json:"userDoc"`
	DeveloperDoc    interface{} `json:"developerDoc"`
	Metadata        string      `json:"metadata"`
}

// Functions parses the method signatures solc listed for the contract and
// returns them sorted by signature. Every selector must match the one solc
// computed, otherwise ErrInvalidSignature is returned.
//
// Functions 解析 solc 输出的方法签名，并校验选择器与 solc 计算的一致。
func (c *Contract) Functions() ([]abi.Function, error) {
	fns := make([]abi.Function, 0, len(c.Hashes))
	for sig, hash := range c.Hashes {
		fn, err := abi.ParseFunction(sig)
		if err != nil {
			return nil, err
		}
		if have := hexutil.Encode(fn.ID); have != "0x"+hash {
			return nil, fmt.Errorf("%w: solc selector 0x%s for %s, computed %s", abi.ErrInvalidSignature, hash, sig, have)
		}
		fns = append(fns, fn)
	}
	sort.Slice(fns, func(i, j int) bool { return fns[i].Sig < fns[j].Sig })
	return fns, nil
}
