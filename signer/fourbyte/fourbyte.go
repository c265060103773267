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

// Package fourbyte maps 4-byte function selectors back to the signatures they
// were derived from.
package fourbyte

import (
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/log"
)

//go:embed 4byte.json
var embeddedJSON []byte

// parsedCacheSize bounds the number of parsed signatures kept around.
const parsedCacheSize = 256

// Database is a 4byte database with an immutable set embedded into the process
// and a mutable set loaded from and written to a file.
//
// Database 包含嵌入进程的不可变集合和可从文件加载、写回文件的可变集合。
type Database struct {
	embedded   map[string]string // hex selector -> signature, 内置的常用签名
	custom     map[string]string // hex selector -> signature, 用户添加的签名
	customPath string            // 可变集合的持久化路径，为空时不写盘

	parsed *lru.Cache[string, abi.Function] // signature -> parsed function
}

func newEmpty() *Database {
	parsed, _ := lru.New[string, abi.Function](parsedCacheSize)
	return &Database{
		embedded: make(map[string]string),
		custom:   make(map[string]string),
		parsed:   parsed,
	}
}

// New loads the standard signature database embedded in the package.
func New() (*Database, error) {
	return NewWithFile("")
}

// NewFromFile loads signature database from file, and errors if the file is not
// valid JSON. The constructor does no other validation of contents. This method
// does not load the embedded 4byte database.
func NewFromFile(path string) (*Database, error) {
	raw, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer raw.Close()

	db := newEmpty()
	if err := json.NewDecoder(raw).Decode(&db.embedded); err != nil {
		return nil, err
	}
	return db, nil
}

// NewWithFile loads both the standard signature database (embedded resource
// file) as well as a custom database. The latter will be used to write new
// values into when they are added with AddSelector.
func NewWithFile(path string) (*Database, error) {
	db := newEmpty()
	db.customPath = path

	if err := json.Unmarshal(embeddedJSON, &db.embedded); err != nil {
		return nil, err
	}
	// Custom file may not exist. Will be created during save, if needed.
	// 自定义文件可能不存在，需要时在保存时创建。
	if path == "" {
		return db, nil
	}
	if _, err := os.Stat(path); err == nil {
		var blob []byte
		if blob, err = os.ReadFile(path); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(blob, &db.custom); err != nil {
			return nil, fmt.Errorf("invalid signature database %s: %v", path, err)
		}
	}
	return db, nil
}

// Size returns the number of 4byte entries in the embedded and custom datasets.
func (db *Database) Size() (int, int) {
	return len(db.embedded), len(db.custom)
}

// Selector returns the signature stored for the first four bytes of id.
//
// This method does not validate the match, it's assumed the caller will do.
func (db *Database) Selector(id []byte) (string, error) {
	if len(id) < abi.SelectorLength {
		return "", fmt.Errorf("expected 4-byte id, got %d", len(id))
	}
	sig := hex.EncodeToString(id[:abi.SelectorLength])
	if selector, exists := db.embedded[sig]; exists {
		return selector, nil
	}
	if selector, exists := db.custom[sig]; exists {
		return selector, nil
	}
	return "", fmt.Errorf("signature %v not found", sig)
}

// Function looks up the signature for id and parses it. Parsed signatures
// are cached.
func (db *Database) Function(id []byte) (abi.Function, error) {
	sig, err := db.Selector(id)
	if err != nil {
		return abi.Function{}, err
	}
	if fn, ok := db.parsed.Get(sig); ok {
		return fn, nil
	}
	fn, err := abi.ParseFunction(sig)
	if err != nil {
		return abi.Function{}, fmt.Errorf("stored signature %q: %w", sig, err)
	}
	db.parsed.Add(sig, fn)
	return fn, nil
}

// AddSelector parses signature and inserts it under its selector. Known
// selectors are left untouched. If custom database saving is enabled, the new
// dataset is also persisted to disk.
//
// AddSelector 解析签名并以其选择器为键插入；已知选择器不会被覆盖。
func (db *Database) AddSelector(signature string) (abi.Function, error) {
	fn, err := abi.ParseFunction(signature)
	if err != nil {
		return abi.Function{}, err
	}
	// If the selector is already known, skip duplicating it
	if known, err := db.Selector(fn.ID); err == nil {
		if known != fn.Sig {
			log.Warn("Selector collision, keeping stored signature", "id", hex.EncodeToString(fn.ID), "stored", known, "new", fn.Sig)
		}
		return fn, nil
	}
	db.custom[hex.EncodeToString(fn.ID)] = fn.Sig
	db.parsed.Add(fn.Sig, fn)
	if db.customPath == "" {
		return fn, nil
	}
	blob, err := json.MarshalIndent(db.custom, "", " ")
	if err != nil {
		return abi.Function{}, err
	}
	log.Debug("Persisting custom signatures", "path", db.customPath, "count", len(db.custom))
	return fn, os.WriteFile(db.customPath, blob, 0600)
}
