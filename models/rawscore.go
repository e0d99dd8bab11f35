package models

import (
	"bytes"
	"encoding/json"
)

// RawScore is a score exactly as typed into the form. It decodes from a JSON
// string, a JSON number or null so that validation sees the original text.
type RawScore string

func (r *RawScore) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = RawScore(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*r = RawScore(n.String())
	return nil
}

// Strings converts a raw score form into plain strings
func Strings(in map[string]RawScore) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = string(v)
	}
	return out
}
