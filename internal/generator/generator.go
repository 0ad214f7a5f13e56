package generator

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mcncl/jsonpeek/internal/models"
)

const indent = "  "

// GenerateJSON renders doc as an indented JSON object, keeping entry order.
// HTML characters are written as-is. An empty document renders as {}.
func GenerateJSON(doc models.Document) (string, error) {
	entries := doc.Entries()
	if len(entries) == 0 {
		return "{}", nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")

	for i, entry := range entries {
		key, err := encodeString(entry.Key)
		if err != nil {
			return "", fmt.Errorf("failed to encode key %q: %w", entry.Key, err)
		}
		value, err := encodeValue(entry.Value)
		if err != nil {
			return "", fmt.Errorf("failed to encode value of key %q: %w", entry.Key, err)
		}

		buf.WriteString(indent)
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(value)
		if i < len(entries)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}

	buf.WriteString("}")
	return buf.String(), nil
}

func encodeValue(v models.Value) ([]byte, error) {
	if v.Kind() == models.String {
		return encodeString(v.Text())
	}
	return v.MarshalJSON()
}

// encodeString quotes s the way encoding/json does, without HTML escaping.
func encodeString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
