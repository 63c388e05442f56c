package recipe

import (
	"encoding/json"
	"maps"
	"slices"
)

// decodeList decodes a JSON array whose elements must all be T. A null
// element does not decode to T's zero value; it fails the whole list.
func decodeList[T any](data []byte) ([]T, bool) {
	var ptrs []*T
	if err := json.Unmarshal(data, &ptrs); err != nil || ptrs == nil {
		return nil, false
	}
	out := make([]T, len(ptrs))
	for i, p := range ptrs {
		if p == nil {
			return nil, false
		}
		out[i] = *p
	}
	return out, true
}

// exactKeys re-encodes a JSON object keeping only the listed keys, spelled
// exactly. encoding/json folds case when matching struct fields, so
// "Name" or "@TYPE" would otherwise be read as "name" and "@type".
func exactKeys(data []byte, keys ...string) ([]byte, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return data, nil
	}
	maps.DeleteFunc(fields, func(k string, _ json.RawMessage) bool {
		return !slices.Contains(keys, k)
	})
	return json.Marshal(fields)
}
