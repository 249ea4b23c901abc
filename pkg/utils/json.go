package utils

import (
	json "github.com/goccy/go-json"
)

// PrettyJson serializa in com indentação de dois espaços.
func PrettyJson(in any) (string, error) {
	if raw, ok := in.([]byte); ok {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return "", err
		}
		in = v
	}

	out, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return "", err
	}

	return string(out), nil
}
