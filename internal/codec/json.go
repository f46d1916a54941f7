package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"proxytray/internal/document"
)

var ErrMalformedJSON = errors.New("malformed json")

// DecodeJSON parses a JSON object, keeping the order of its keys.
func DecodeJSON(s string) (document.Document, error) {
	d, err := document.Parse([]byte(s))
	if err != nil {
		return document.Empty(), fmt.Errorf("%w: %v", ErrMalformedJSON, err)
	}
	return d, nil
}

// EncodeJSON emits compact UTF-8 JSON without escaping '/' or HTML characters.
// Documents keep their key order.
func EncodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
