package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID converts a JSON category identifier to its canonical string form.
// Strings are unquoted, numbers keep their literal text, null is empty.
func ID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("parsing id %s: %w", raw, err)
		}
		return s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("parsing id %s: %w", raw, err)
		}
		return n.String(), nil
	default:
		return "", fmt.Errorf("unsupported id %s", raw)
	}
}
