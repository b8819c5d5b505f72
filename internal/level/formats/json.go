package formats

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a JSON level file, the format levels were first saved in.
func ParseJSON(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("json unmarshal: %w", err)
	}
	return doc, nil
}

// EncodeJSON writes doc indented, with a trailing newline.
func EncodeJSON(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return append(data, '\n'), nil
}
