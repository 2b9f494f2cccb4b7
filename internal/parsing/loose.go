// Package parsing decodes the loosely formatted JSON documents published by
// techfolio owners: trailing commas, comments, unquoted keys and single quotes
// are all accepted.
package parsing

import (
	"bytes"
	"os"

	"github.com/titanous/json5"
)

// utf8BOM is stripped before decoding; editors on some platforms prepend it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loose decodes data into v using JSON5 rules.
func Loose(data []byte, v any) error {
	return decode("", data, v)
}

// LooseFile reads path and decodes it into v using JSON5 rules.
func LooseFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &ReadError{Path: path, Cause: err}
	}
	return decode(path, data, v)
}

// LooseSource decodes data read from source (a URL or path used in error messages).
func LooseSource(source string, data []byte, v any) error {
	return decode(source, data, v)
}

func decode(source string, data []byte, v any) error {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return &ParseError{Source: source, Message: "document is empty"}
	}
	if err := json5.Unmarshal(data, v); err != nil {
		return &ParseError{Source: source, Message: "invalid JSON5", Cause: err}
	}
	return nil
}
