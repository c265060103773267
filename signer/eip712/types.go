// Copyright 2018 The go-ethereum Authors
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

// Package eip712 hashes EIP-712 typed structured data. Leaf fields are written
// with the padded atomic encoders of the abi package; structs and arrays are
// replaced by their keccak256 digests.
package eip712

import (
	"bytes"
	"fmt"
	"math/big"
	"reflect"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
	"github.com/sunyihoo/go-web3/common/hexutil"
	"github.com/sunyihoo/go-web3/common/math"
	"github.com/sunyihoo/go-web3/crypto"
	"github.com/sunyihoo/go-web3/log"
)

// DomainType is the name of the struct type describing the signing domain.
const DomainType = "EIP712Domain"

var typedDataReferenceTypeRegexp = regexp.MustCompile(`^[A-Za-z](\w*)(\[\d*\])*$`)

// TypedData is a type to encapsulate EIP-712 typed messages
// TypedData 封装 EIP-712 类型化消息的全部组成部分。
type TypedData struct {
	Types       Types            `json:"types"`       // 定义所有类型
	PrimaryType string           `json:"primaryType"` // 消息的根类型
	Domain      TypedDataDomain  `json:"domain"`      // 域分隔符，区分不同应用或链
	Message     TypedDataMessage `json:"message"`     // 实际消息内容
}

// Type is the inner type of an EIP-712 message
type Type struct {
	Name string `json:"name"`
	Type string `json:"type"` // 如 string, uint256, Person[]
}

// typeName returns the canonical name of the type. If the type is 'Person[]' or 'Person[2]', then
// this method returns 'Person'
func (t *Type) typeName() string {
	return strings.Split(t.Type, "[")[0]
}

type Types map[string][]Type

type TypedDataMessage = map[string]interface{}

// TypedDataDomain represents the domain part of an EIP-712 message.
// 域分隔符确保签名只在特定应用和链上有效，防止跨应用或跨链重放。
type TypedDataDomain struct {
	Name              string                `json:"name"`
	Version           string                `json:"version"`
	ChainId           *math.HexOrDecimal256 `json:"chainId"`
	VerifyingContract string                `json:"verifyingContract"`
	Salt              string                `json:"salt"`
}

// TypedDataAndHash calculates the EIP-712 digest of typedData and returns it
// together with the raw preimage.
//
// hash = keccak256("\x19\x01" ‖ domainSeparator ‖ hashStruct(message))
func TypedDataAndHash(typedData TypedData) ([]byte, string, error) {
	domainSeparator, err := typedData.HashStruct(DomainType, typedData.Domain.Map())
	if err != nil {
		return nil, "", err
	}
	typedDataHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, "", err
	}
	rawData := fmt.Sprintf("\x19\x01%s%s", string(domainSeparator), string(typedDataHash))
	digest := crypto.Keccak256([]byte(rawData))
	if log.TraceEnabled() {
		log.Trace("Hashed typed data", "primary", typedData.PrimaryType, "digest", hexutil.Encode(digest))
	}
	return digest, rawData, nil
}

// HashStruct generates a keccak256 hash of the encoding of the provided data
func (typedData *TypedData) HashStruct(primaryType string, data TypedDataMessage) (hexutil.Bytes, error) {
	encodedData, err := typedData.EncodeData(primaryType, data, 1)
	if err != nil {
		return nil, err
	}
	return crypto.Keccak256(encodedData), nil
}

// Dependencies returns an array of custom types ordered by their hierarchical reference tree
// 按引用层次返回 primaryType 依赖的自定义类型，primaryType 自身排在第一位。
func (typedData *TypedData) Dependencies(primaryType string, found []string) []string {
	primaryType = strings.Split(primaryType, "[")[0]

	if slices.Contains(found, primaryType) {
		return found
	}
	if typedData.Types[primaryType] == nil {
		return found
	}
	found = append(found, primaryType)
	for _, field := range typedData.Types[primaryType] {
		for _, dep := range typedData.Dependencies(field.Type, found) {
			if !slices.Contains(found, dep) {
				found = append(found, dep)
			}
		}
	}
	return found
}

// EncodeType generates the following encoding:
// `name ‖ "(" ‖ member₁ ‖ "," ‖ member₂ ‖ "," ‖ … ‖ memberₙ ")"`
//
// each member is written as `type ‖ " " ‖ name`; referenced struct types are
// appended after the primary type, sorted by name.
func (typedData *TypedData) EncodeType(primaryType string) hexutil.Bytes {
	// Get dependencies primary first, then alphabetical
	deps := typedData.Dependencies(primaryType, []string{})
	if len(deps) > 0 {
		slicedDeps := deps[1:]
		sort.Strings(slicedDeps)
		deps = append([]string{primaryType}, slicedDeps...)
	}

	var buffer bytes.Buffer
	for _, dep := range deps {
		buffer.WriteString(dep)
		buffer.WriteString("(")
		for i, obj := range typedData.Types[dep] {
			if i > 0 {
				buffer.WriteString(",")
			}
			buffer.WriteString(obj.Type)
			buffer.WriteString(" ")
			buffer.WriteString(obj.Name)
		}
		buffer.WriteString(")")
	}
	return buffer.Bytes()
}

// TypeHash creates the keccak256 hash of the type encoding
func (typedData *TypedData) TypeHash(primaryType string) hexutil.Bytes {
	return crypto.Keccak256(typedData.EncodeType(primaryType))
}

// EncodeData generates the following encoding:
// `typeHash ‖ enc(value₁) ‖ enc(value₂) ‖ … ‖ enc(valueₙ)`
//
// each encoded member is 32-byte long
func (typedData *TypedData) EncodeData(primaryType string, data map[string]interface{}, depth int) (hexutil.Bytes, error) {
	if err := typedData.validate(); err != nil {
		return nil, err
	}
	if depth > abi.MaxNestingDepth {
		return nil, fmt.Errorf("%w: struct %s nested deeper than %d", abi.ErrInvalidType, primaryType, abi.MaxNestingDepth)
	}
	fields, ok := typedData.Types[primaryType]
	if !ok {
		return nil, fmt.Errorf("%w: undefined struct type %q", abi.ErrInvalidType, primaryType)
	}
	// Verify extra data
	if exp, got := len(fields), len(data); exp < got {
		return nil, fmt.Errorf("%w: there is extra data provided in the message (%d < %d)", abi.ErrIncorrectParameterCount, exp, got)
	}

	buffer := bytes.Buffer{}
	buffer.Write(typedData.TypeHash(primaryType))

	// Add field contents. Structs and arrays have special handlers.
	for _, field := range fields {
		encodedData, err := typedData.encodeField(field.Type, data[field.Name], depth)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", primaryType, field.Name, err)
		}
		buffer.Write(encodedData)
	}
	return buffer.Bytes(), nil
}

// encodeField returns the 32-byte member encoding of a single value.
func (typedData *TypedData) encodeField(encType string, encValue interface{}, depth int) ([]byte, error) {
	if strings.HasSuffix(encType, "]") {
		return typedData.encodeArrayValue(encValue, encType, depth+1)
	}
	if typedData.Types[encType] != nil {
		mapValue, ok := encValue.(map[string]interface{})
		if !ok {
			return nil, dataMismatchError(encType, encValue)
		}
		encodedData, err := typedData.EncodeData(encType, mapValue, depth+1)
		if err != nil {
			return nil, err
		}
		return crypto.Keccak256(encodedData), nil
	}
	return EncodePrimitiveValue(encType, encValue)
}

// encodeArrayValue hashes the concatenated member encodings of an array.
func (typedData *TypedData) encodeArrayValue(encValue interface{}, encType string, depth int) (hexutil.Bytes, error) {
	if depth > abi.MaxNestingDepth {
		return nil, fmt.Errorf("%w: array %s nested deeper than %d", abi.ErrInvalidType, encType, abi.MaxNestingDepth)
	}
	arrayValue, err := convertDataToSlice(encValue)
	if err != nil {
		return nil, dataMismatchError(encType, encValue)
	}
	elemType, size, err := splitArrayType(encType)
	if err != nil {
		return nil, err
	}
	if size >= 0 && len(arrayValue) != size {
		return nil, fmt.Errorf("%w: %s holds %d elements, got %d", abi.ErrIncorrectParameterCount, encType, size, len(arrayValue))
	}
	arrayBuffer := new(bytes.Buffer)
	for _, item := range arrayValue {
		encodedData, err := typedData.encodeField(elemType, item, depth)
		if err != nil {
			return nil, err
		}
		arrayBuffer.Write(encodedData)
	}
	return crypto.Keccak256(arrayBuffer.Bytes()), nil
}

// splitArrayType strips the outermost array suffix of encType. The returned
// size is -1 for dynamic arrays.
func splitArrayType(encType string) (string, int, error) {
	open := strings.LastIndexByte(encType, '[')
	if open <= 0 {
		return "", 0, fmt.Errorf("%w: malformed array type %q", abi.ErrInvalidType, encType)
	}
	elem, suffix := encType[:open], encType[open+1:len(encType)-1]
	if suffix == "" {
		return elem, -1, nil
	}
	size, err := strconv.Atoi(suffix)
	if err != nil || size < 1 {
		return "", 0, fmt.Errorf("%w: malformed array size in %q", abi.ErrInvalidType, encType)
	}
	return elem, size, nil
}

// Attempt to parse bytes in different formats: byte array, hex string, hexutil.Bytes.
// 尝试以不同格式解析字节：字节数组、十六进制字符串、hexutil.Bytes。
func parseBytes(encType interface{}) ([]byte, bool) {
	// Handle array types.
	val := reflect.ValueOf(encType)
	if val.Kind() == reflect.Array && val.Type().Elem().Kind() == reflect.Uint8 {
		v := reflect.MakeSlice(reflect.TypeOf([]byte{}), val.Len(), val.Len())
		reflect.Copy(v, val)
		return v.Bytes(), true
	}

	switch v := encType.(type) {
	case []byte:
		return v, true
	case hexutil.Bytes:
		return v, true
	case string:
		bytes, err := hexutil.Decode(v)
		if err != nil {
			return nil, false
		}
		return bytes, true
	default:
		return nil, false
	}
}

func parseInteger(t abi.RawType, encValue interface{}) (*big.Int, error) {
	var b *big.Int
	switch v := encValue.(type) {
	case *math.HexOrDecimal256:
		b = (*big.Int)(v)
	case *big.Int:
		b = v
	case string:
		var hexIntValue math.HexOrDecimal256
		if err := hexIntValue.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("%w: %v", abi.ErrInvalidValue, err)
		}
		b = (*big.Int)(&hexIntValue)
	case float64:
		// JSON parses non-strings as float64. Fail if we cannot
		// convert it losslessly
		if float64(int64(v)) == v {
			b = big.NewInt(int64(v))
		} else {
			return nil, fmt.Errorf("%w: invalid float value %v for type %v", abi.ErrInvalidValue, v, t)
		}
	case int:
		b = big.NewInt(int64(v))
	case int64:
		b = big.NewInt(v)
	case uint64:
		b = new(big.Int).SetUint64(v)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: invalid integer value %v/%v for type %v", abi.ErrInvalidValue, encValue, reflect.TypeOf(encValue), t)
	}
	return b, nil
}

// EncodePrimitiveValue encodes a leaf member. Atomic types use the padded ABI
// word; string and bytes are replaced by the keccak256 hash of their content.
func EncodePrimitiveValue(encType string, encValue interface{}) ([]byte, error) {
	t, err := abi.ParseType(encType)
	if err != nil {
		return nil, err
	}
	switch t.T {
	case abi.AddressTy:
		switch val := encValue.(type) {
		case string:
			if common.IsHexAddress(val) {
				return abi.EncodeAddress(common.HexToAddress(val)).Bytes(), nil
			}
		case []byte:
			if len(val) == common.AddressLength {
				return abi.EncodeAddress(common.BytesToAddress(val)).Bytes(), nil
			}
		case [20]byte:
			return abi.EncodeAddress(val).Bytes(), nil
		case common.Address:
			return abi.EncodeAddress(val).Bytes(), nil
		}
		return nil, dataMismatchError(encType, encValue)
	case abi.BoolTy:
		boolValue, ok := encValue.(bool)
		if !ok {
			return nil, dataMismatchError(encType, encValue)
		}
		return abi.EncodeBool(boolValue).Bytes(), nil
	case abi.StringTy:
		strVal, ok := encValue.(string)
		if !ok {
			return nil, dataMismatchError(encType, encValue)
		}
		return crypto.Keccak256([]byte(strVal)), nil
	case abi.BytesTy:
		bytesValue, ok := parseBytes(encValue)
		if !ok {
			return nil, dataMismatchError(encType, encValue)
		}
		return crypto.Keccak256(bytesValue), nil
	case abi.FixedBytesTy:
		byteValue, ok := parseBytes(encValue)
		if !ok || len(byteValue) != t.Size {
			return nil, dataMismatchError(encType, encValue)
		}
		enc, err := abi.EncodeFixedBytes(t.Size, byteValue)
		if err != nil {
			return nil, err
		}
		return enc.Bytes(), nil
	case abi.UintTy, abi.IntTy:
		b, err := parseInteger(t, encValue)
		if err != nil {
			return nil, err
		}
		enc, err := abi.EncodeInteger(t, b)
		if err != nil {
			return nil, err
		}
		return enc.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: unrecognized type '%s'", abi.ErrInvalidType, encType)
}

// dataMismatchError generates an error for a mismatch between
// the provided type and data
func dataMismatchError(encType string, encValue interface{}) error {
	return fmt.Errorf("%w: provided data '%v' doesn't match type '%s'", abi.ErrInvalidValue, encValue, encType)
}

func convertDataToSlice(encValue interface{}) ([]interface{}, error) {
	var outEncValue []interface{}
	rv := reflect.ValueOf(encValue)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		for i := 0; i < rv.Len(); i++ {
			outEncValue = append(outEncValue, rv.Index(i).Interface())
		}
	} else {
		return outEncValue, fmt.Errorf("provided data '%v' is not slice", encValue)
	}
	return outEncValue, nil
}

// validate makes sure the types are sound
func (typedData *TypedData) validate() error {
	if err := typedData.Types.validate(); err != nil {
		return err
	}
	if err := typedData.Domain.validate(); err != nil {
		return err
	}
	return nil
}

// Map generates a map version of the typed data
func (typedData *TypedData) Map() map[string]interface{} {
	dataMap := map[string]interface{}{
		"types":       typedData.Types,
		"domain":      typedData.Domain.Map(),
		"primaryType": typedData.PrimaryType,
		"message":     typedData.Message,
	}
	return dataMap
}

// validate checks if the types object is conformant to the specs
func (t Types) validate() error {
	for typeKey, typeArr := range t {
		if len(typeKey) == 0 {
			return fmt.Errorf("%w: empty type key", abi.ErrInvalidType)
		}
		for i, typeObj := range typeArr {
			if len(typeObj.Type) == 0 {
				return fmt.Errorf("%w: type %q:%d: empty Type", abi.ErrInvalidType, typeKey, i)
			}
			if len(typeObj.Name) == 0 {
				return fmt.Errorf("%w: type %q:%d: empty Name", abi.ErrInvalidType, typeKey, i)
			}
			if typeKey == typeObj.Type {
				return fmt.Errorf("%w: type %q cannot reference itself", abi.ErrInvalidType, typeObj.Type)
			}
			if isPrimitiveTypeValid(typeObj.Type) {
				continue
			}
			// Must be reference type
			if _, exist := t[typeObj.typeName()]; !exist {
				return fmt.Errorf("%w: reference type %q is undefined", abi.ErrInvalidType, typeObj.Type)
			}
			if !typedDataReferenceTypeRegexp.MatchString(typeObj.Type) {
				return fmt.Errorf("%w: unknown reference type %q", abi.ErrInvalidType, typeObj.Type)
			}
		}
	}
	return nil
}

// isPrimitiveTypeValid reports whether the type is an atomic ABI type or an
// array of one. Tuple syntax is not part of EIP-712.
func isPrimitiveTypeValid(primitiveType string) bool {
	t, err := abi.ParseType(primitiveType)
	if err != nil {
		return false
	}
	for t.T == abi.ArrayTy || t.T == abi.SliceTy {
		t = *t.Elem
	}
	return t.T != abi.TupleTy
}

// validate checks if the given domain is valid, i.e. contains at least
// the minimum viable keys and values
func (domain *TypedDataDomain) validate() error {
	if domain.ChainId == nil && len(domain.Name) == 0 && len(domain.Version) == 0 && len(domain.VerifyingContract) == 0 && len(domain.Salt) == 0 {
		return fmt.Errorf("%w: domain is undefined", abi.ErrInvalidValue)
	}
	return nil
}

// Map is a helper function to generate a map version of the domain
func (domain *TypedDataDomain) Map() map[string]interface{} {
	dataMap := map[string]interface{}{}

	if domain.ChainId != nil {
		dataMap["chainId"] = domain.ChainId
	}
	if len(domain.Name) > 0 {
		dataMap["name"] = domain.Name
	}
	if len(domain.Version) > 0 {
		dataMap["version"] = domain.Version
	}
	if len(domain.VerifyingContract) > 0 {
		dataMap["verifyingContract"] = domain.VerifyingContract
	}
	if len(domain.Salt) > 0 {
		dataMap["salt"] = domain.Salt
	}
	return dataMap
}
