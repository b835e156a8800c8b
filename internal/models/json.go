package models

import (
	"encoding/json"
)

// JSONMap represents an arbitrary structured payload attached to a record,
// such as a plan-line rationale or a ticket priority reason.
type JSONMap map[string]interface{}

// EncodeJSON serializes a payload for storage in a text column.
func EncodeJSON(payload interface{}) (string, error) {
	if payload == nil {
		return "", nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeJSON returns the decoded payload for a stored blob. A blob that fails
// to parse is surfaced unchanged as the raw string rather than failing the
// read.
func DecodeJSON(raw string) interface{} {
	if raw == "" {
		return nil
	}
	var payload interface{}
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return raw
	}
	return payload
}
