// Copyright 2022 The go-ethereum Authors
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
	"fmt"
	"strconv"
	"strings"
)

// isDigit checks if the given byte is a digit (0-9).
func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// isAlpha checks if the given byte is an alphabet character (a-z or A-Z).
func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// isIdentifierSymbol checks if the given byte is a valid identifier symbol ($ or _).
func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

// parseToken parses a token from the selector string based on whether it's an identifier.
// parseToken 从字符串开头解析一个标记，返回标记和剩余部分。
func parseToken(selector string, isIdent bool) (string, string, error) {
	if len(selector) == 0 {
		return "", "", fmt.Errorf("%w: empty token", ErrInvalidType)
	}
	firstChar := selector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", fmt.Errorf("%w: invalid token start: %c", ErrInvalidType, firstChar)
	}
	for position < len(selector) {
		char := selector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return selector[:position], selector[position:], nil
}

// parseElementaryType maps an elementary type name to its descriptor.
// uint, int and byte are accepted as aliases of uint256, int256 and bytes1.
func parseElementaryType(name string) (RawType, error) {
	switch name {
	case "address":
		return AddressType, nil
	case "bool":
		return BoolType, nil
	case "string":
		return StringType, nil
	case "bytes":
		return BytesType, nil
	case "byte":
		return FixedBytesType(1), nil
	case "uint":
		return UintType(256), nil
	case "int":
		return IntType(256), nil
	}
	var (
		t    RawType
		full = name
	)
	switch {
	case strings.HasPrefix(name, "uint"):
		t = RawType{T: UintTy}
		name = name[4:]
	case strings.HasPrefix(name, "int"):
		t = RawType{T: IntTy}
		name = name[3:]
	case strings.HasPrefix(name, "bytes"):
		t = RawType{T: FixedBytesTy}
		name = name[5:]
	default:
		return RawType{}, fmt.Errorf("%w: unknown type %q", ErrInvalidType, name)
	}
	// 位宽不允许前导零，例如 uint08。
	if len(name) == 0 || name[0] == '0' {
		return RawType{}, fmt.Errorf("%w: invalid size in %q", ErrInvalidType, full)
	}
	size, err := strconv.Atoi(name)
	if err != nil {
		return RawType{}, fmt.Errorf("%w: invalid size in %q", ErrInvalidType, full)
	}
	t.Size = size
	if err := t.Validate(); err != nil {
		return RawType{}, err
	}
	return t, nil
}

// parseArraySuffixes wraps t in every trailing [] or [k].
func parseArraySuffixes(t RawType, rest string) (RawType, string, error) {
	for len(rest) > 0 && rest[0] == '[' {
		rest = rest[1:]
		digits := 0
		for digits < len(rest) && isDigit(rest[digits]) {
			digits++
		}
		if digits == len(rest) || rest[digits] != ']' {
			return RawType{}, "", fmt.Errorf("%w: failed to parse array: expected ']'", ErrInvalidType)
		}
		if digits == 0 {
			t = SliceType(t)
		} else {
			n, err := strconv.Atoi(rest[:digits])
			if err != nil {
				return RawType{}, "", fmt.Errorf("%w: invalid array length %q", ErrInvalidType, rest[:digits])
			}
			t = ArrayType(t, n)
		}
		rest = rest[digits+1:]
	}
	return t, rest, nil
}

// parseCompositeType parses a parenthesised type list, e.g. (uint256,(bool,string)[]).
func parseCompositeType(selector string, depth int) ([]RawType, string, error) {
	if len(selector) == 0 || selector[0] != '(' {
		return nil, "", fmt.Errorf("%w: expected '(' in %q", ErrInvalidType, selector)
	}
	rest := selector[1:]
	if len(rest) > 0 && rest[0] == ')' {
		return []RawType{}, rest[1:], nil
	}
	var result []RawType
	for {
		t, r, err := parseType(rest, depth)
		if err != nil {
			return nil, "", err
		}
		result = append(result, t)
		rest = r
		if len(rest) == 0 {
			return nil, "", fmt.Errorf("%w: expected ')' in %q", ErrInvalidType, selector)
		}
		if rest[0] == ')' {
			return result, rest[1:], nil
		}
		if rest[0] != ',' {
			return nil, "", fmt.Errorf("%w: unexpected %q", ErrInvalidType, rest)
		}
		rest = rest[1:]
	}
}

// parseType determines whether the type is elementary or composite and delegates parsing accordingly.
func parseType(selector string, depth int) (RawType, string, error) {
	if depth > MaxNestingDepth {
		return RawType{}, "", fmt.Errorf("%w: nesting deeper than %d", ErrInvalidType, MaxNestingDepth)
	}
	if len(selector) == 0 {
		return RawType{}, "", fmt.Errorf("%w: empty type", ErrInvalidType)
	}
	var (
		t    RawType
		rest string
	)
	if selector[0] == '(' {
		fields, r, err := parseCompositeType(selector, depth+1)
		if err != nil {
			return RawType{}, "", err
		}
		t, rest = TupleType(fields...), r
	} else {
		name, r, err := parseToken(selector, false)
		if err != nil {
			return RawType{}, "", err
		}
		if t, err = parseElementaryType(name); err != nil {
			return RawType{}, "", err
		}
		rest = r
	}
	t, rest, err := parseArraySuffixes(t, rest)
	if err != nil {
		return RawType{}, "", err
	}
	if err := t.Validate(); err != nil {
		return RawType{}, "", err
	}
	return t, rest, nil
}

// ParseType parses a canonical type name such as "uint256", "bytes4[]" or
// "(address,uint256)[2]".
func ParseType(s string) (RawType, error) {
	t, rest, err := parseType(s, 0)
	if err != nil {
		return RawType{}, fmt.Errorf("failed to parse type '%s': %w", s, err)
	}
	if len(rest) > 0 {
		return RawType{}, fmt.Errorf("%w: failed to parse type '%s': unexpected string '%s'", ErrInvalidType, s, rest)
	}
	return t, nil
}

// ParseTypes parses a comma separated list of type names. Commas inside
// tuples do not split.
func ParseTypes(s string) ([]RawType, error) {
	if strings.TrimSpace(s) == "" {
		return []RawType{}, nil
	}
	types, rest, err := parseCompositeType("("+strings.ReplaceAll(s, " ", "")+")", 0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse types '%s': %w", s, err)
	}
	if len(rest) > 0 {
		return nil, fmt.Errorf("%w: failed to parse types '%s': unexpected string '%s'", ErrInvalidType, s, rest)
	}
	return types, nil
}

// ParseSignature splits a signature such as "transfer(address,uint256)" into
// the function name and its parameter types.
// Note, although uppercase letters are not part of the ABI spec, this function
// still accepts it as the general format is valid.
func ParseSignature(signature string) (string, []RawType, error) {
	name, rest, err := parseToken(signature, true)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse selector '%s': %w", signature, err)
	}
	types, rest, err := parseCompositeType(rest, 0)
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse selector '%s': %w", signature, err)
	}
	if len(rest) > 0 {
		return "", nil, fmt.Errorf("%w: failed to parse selector '%s': unexpected string '%s'", ErrInvalidType, signature, rest)
	}
	return name, types, nil
}
