package resolver

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// flexInt lê um placar que pode vir como número, string numérica ou null
func flexInt(raw json.RawMessage) *int {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		v := int(n)
		return &v
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return &v
		}
	}
	return nil
}

// asFloat converte números e strings numéricas; demais tipos não são estatística
func asFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case json.Number:
		f, err := val.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return f, err == nil
	}
	return 0, false
}

// asString normaliza ids que chegam como número ou string
func asString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case json.Number:
		return val.String()
	}
	return ""
}

// decodeEntries aceita uma lista de objetos ou um objeto único
func decodeEntries(b []byte) ([]map[string]any, bool) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return nil, false
	}
	switch b[0] {
	case '[':
		var out []map[string]any
		if err := json.Unmarshal(b, &out); err != nil {
			return nil, false
		}
		return out, true
	case '{':
		var one map[string]any
		if err := json.Unmarshal(b, &one); err != nil {
			return nil, false
		}
		return []map[string]any{one}, true
	}
	return nil, false
}

// firstString retorna o primeiro campo string não vazio entre as chaves
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// flatten extrai os campos numéricos de uma entrada de boxscore
func flatten(m map[string]any) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		if f, ok := asFloat(v); ok {
			out[k] = f
		}
	}
	return out
}
