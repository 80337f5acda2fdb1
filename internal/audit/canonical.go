// Package audit fingerprints verification results so receipts and diffs can
// refer to a result by a stable content hash.
package audit

import (
	"encoding/json"
	"sort"
)

// CanonicalizeJSON renders v as JSON with all object keys sorted, so the
// same logical result always serializes to the same bytes.
func CanonicalizeJSON(v interface{}) ([]byte, error) {
	// round-trip through generic JSON values to strip struct field order
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(canonicalizeValue(generic))
}

func canonicalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		return canonicalizeMap(val)
	case []interface{}:
		result := make([]interface{}, len(val))
		for i, elem := range val {
			result[i] = canonicalizeValue(elem)
		}
		return result
	default:
		return v
	}
}

func canonicalizeMap(m map[string]interface{}) *orderedMap {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	om := &orderedMap{
		keys:   keys,
		values: make(map[string]interface{}, len(m)),
	}
	for k, v := range m {
		om.values[k] = canonicalizeValue(v)
	}
	return om
}

type orderedMap struct {
	keys   []string
	values map[string]interface{}
}

func (om *orderedMap) MarshalJSON() ([]byte, error) {
	if len(om.keys) == 0 {
		return []byte("{}"), nil
	}

	result := "{"
	for i, key := range om.keys {
		if i > 0 {
			result += ","
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		valueJSON, err := json.Marshal(om.values[key])
		if err != nil {
			return nil, err
		}
		result += string(keyJSON) + ":" + string(valueJSON)
	}
	result += "}"
	return []byte(result), nil
}
