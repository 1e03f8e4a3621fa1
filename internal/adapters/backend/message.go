package backend

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

var messageKeys = []string{"message", "error", "detail", "non_field_errors", "errors"}

// extractMessage pulls a human readable reason out of an error body.
// Django REST replies carry it under one of messageKeys or as per-field arrays.
func extractMessage(raw []byte) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return flatten(v)
	}
	for _, k := range messageKeys {
		if m := flatten(obj[k]); m != "" {
			return m
		}
	}
	return fieldMessages(obj)
}

func fieldMessages(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		if k == "success" {
			continue
		}
		if m := flatten(obj[k]); m != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", k, m))
		}
	}
	return strings.Join(parts, "; ")
}

func flatten(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case []any:
		var parts []string
		for _, e := range t {
			if m := flatten(e); m != "" {
				parts = append(parts, m)
			}
		}
		return strings.Join(parts, " ")
	case map[string]any:
		return fieldMessages(t)
	}
	return ""
}
