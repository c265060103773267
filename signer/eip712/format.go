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

package eip712

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sunyihoo/go-web3/accounts/abi"
	"github.com/sunyihoo/go-web3/common"
)

// NameValueType is a very simple struct with Name, Value and Type. It's meant for simple
// json structures used to show typed data to a user before it is hashed.
type NameValueType struct {
	Name  string      `json:"name"`
	Value interface{} `json:"value"`
	Typ   string      `json:"type"`
}

// Format returns a representation of typedData, which can be easily displayed
// without in-depth knowledge about 712 rules
func (typedData *TypedData) Format() ([]*NameValueType, error) {
	domain, err := typedData.formatData(DomainType, typedData.Domain.Map())
	if err != nil {
		return nil, err
	}
	ptype, err := typedData.formatData(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return nil, err
	}
	return []*NameValueType{
		{Name: DomainType, Value: domain, Typ: "domain"},
		{Name: typedData.PrimaryType, Value: ptype, Typ: "primary type"},
	}, nil
}

func (typedData *TypedData) formatData(primaryType string, data map[string]interface{}) ([]*NameValueType, error) {
	var output []*NameValueType

	for _, field := range typedData.Types[primaryType] {
		item := &NameValueType{Name: field.Name, Typ: field.Type}
		value, err := typedData.formatValue(field.Type, data[field.Name])
		if err != nil {
			return nil, err
		}
		item.Value = value
		output = append(output, item)
	}
	return output, nil
}

func (typedData *TypedData) formatValue(encType string, encValue interface{}) (interface{}, error) {
	if strings.HasSuffix(encType, "]") {
		elemType, _, err := splitArrayType(encType)
		if err != nil {
			return nil, err
		}
		arrayValue, err := convertDataToSlice(encValue)
		if err != nil {
			return nil, dataMismatchError(encType, encValue)
		}
		items := make([]*NameValueType, 0, len(arrayValue))
		for i, v := range arrayValue {
			value, err := typedData.formatValue(elemType, v)
			if err != nil {
				return nil, err
			}
			items = append(items, &NameValueType{Name: fmt.Sprintf("[%d]", i), Value: value, Typ: elemType})
		}
		return items, nil
	}
	if typedData.Types[encType] != nil {
		mapValue, ok := encValue.(map[string]interface{})
		if !ok {
			return "<nil>", nil
		}
		return typedData.formatData(encType, mapValue)
	}
	return formatPrimitiveValue(encType, encValue)
}

func formatPrimitiveValue(encType string, encValue interface{}) (string, error) {
	t, err := abi.ParseType(encType)
	if err != nil {
		return "", err
	}
	switch t.T {
	case abi.AddressTy:
		if stringValue, ok := encValue.(string); !ok {
			return "", fmt.Errorf("%w: could not format value %v as address", abi.ErrInvalidValue, encValue)
		} else {
			return common.HexToAddress(stringValue).String(), nil
		}
	case abi.BoolTy:
		if boolValue, ok := encValue.(bool); !ok {
			return "", fmt.Errorf("%w: could not format value %v as bool", abi.ErrInvalidValue, encValue)
		} else {
			return fmt.Sprintf("%t", boolValue), nil
		}
	case abi.BytesTy, abi.StringTy, abi.FixedBytesTy:
		return fmt.Sprintf("%s", encValue), nil
	case abi.UintTy, abi.IntTy:
		if b, err := parseInteger(t, encValue); err != nil {
			return "", err
		} else {
			return fmt.Sprintf("%d (%#x)", b, b), nil
		}
	}
	return "", fmt.Errorf("%w: unhandled type %v", abi.ErrInvalidType, encType)
}

// Pprint returns a pretty-printed version of nvt
func (nvt *NameValueType) Pprint(depth int) string {
	output := bytes.Buffer{}
	output.WriteString(strings.Repeat(" ", depth*2))
	output.WriteString(fmt.Sprintf("%s [%s]: ", nvt.Name, nvt.Typ))
	if nvts, ok := nvt.Value.([]*NameValueType); ok {
		output.WriteString("\n")
		for _, next := range nvts {
			sublevel := next.Pprint(depth + 1)
			output.WriteString(sublevel)
		}
	} else {
		if nvt.Value != nil {
			output.WriteString(fmt.Sprintf("%q\n", nvt.Value))
		} else {
			output.WriteString("\n")
		}
	}
	return output.String()
}
