package entity

import (
	"bytes"
	"encoding/json"
)

// MarshalIndent encodes v with two-space indentation and without escaping
// HTML characters, so labels like "Languages & Compilers" are served as written.
func MarshalIndent(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
