// Package jsonutil provides a thin JSON encoding/decoding wrapper over
// github.com/go-json-experiment/json. Adapter parsers decode every
// scanner's raw output through this package, so the JSON backend can be
// swapped in one place.
//
// The API matches the standard library for easy migration.
package jsonutil

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
)

// Unmarshal parses the JSON-encoded data and stores the result in v.
func Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Marshal returns the JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent returns the indented JSON encoding of v.
func MarshalIndent(v any, indent string) ([]byte, error) {
	return json.Marshal(v, jsontext.WithIndent(indent))
}

// Valid reports whether data is a valid JSON encoding. Adapters use
// this to distinguish "tool wrote garbage" from "tool wrote an
// unexpected but well-formed schema".
func Valid(data []byte) bool {
	return jsontext.Value(data).IsValid()
}
