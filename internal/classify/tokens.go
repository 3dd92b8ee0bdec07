// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package classify

import "unicode"

// Sentinel tokens emitted for literal types.
const (
	stringLiteralToken = "<string-literal>"
	numberLiteralToken = "<number-literal>"
)

var (
	stringTokens  = []string{"string", "String", stringLiteralToken}
	numberTokens  = []string{"number", "Number", "bigint", numberLiteralToken}
	booleanTokens = []string{"boolean", "Boolean", "true", "false"}
	dateTokens    = []string{"Date"}
)

type tokenSet map[string]struct{}

func (s tokenSet) any(candidates []string) bool {
	for _, c := range candidates {
		if _, ok := s[c]; ok {
			return true
		}
	}
	return false
}

// tokenize splits a rendered type into identifier tokens. Quoted literals
// become a single string-literal token and numeric literals a number-literal
// token, so "'number'" is a string and "PhoneNumber" is not a number.
func tokenize(t string) tokenSet {
	toks := make(tokenSet)
	runes := []rune(t)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == '"' || r == '\'' || r == '`':
			j := i + 1
			for j < len(runes) && runes[j] != r {
				if runes[j] == '\\' {
					j++
				}
				j++
			}
			toks[stringLiteralToken] = struct{}{}
			i = j + 1
		case unicode.IsDigit(r) || (r == '-' && i+1 < len(runes) && unicode.IsDigit(runes[i+1])):
			j := i + 1
			for j < len(runes) && (unicode.IsDigit(runes[j]) || runes[j] == '.' || runes[j] == '_') {
				j++
			}
			toks[numberLiteralToken] = struct{}{}
			i = j
		case isIdentStart(r):
			j := i + 1
			for j < len(runes) && isIdentPart(runes[j]) {
				j++
			}
			toks[string(runes[i:j])] = struct{}{}
			i = j
		default:
			i++
		}
	}
	return toks
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r)
}
