package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/govproof/govproof/internal/observability/logging"
)

// parseJSON turns a top-level JSON object into a uniform fact list: each
// key/value pair becomes one access-control fact predicate key(value).
// Arrays fan out into one fact per element; nested objects are carried as a
// single compact-JSON argument.
func parseJSON(ctx context.Context, text string) Result {
	log := logging.From(ctx)

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		log.Warn("parser", "skipping malformed json policy", "error", err.Error())
		return Result{Skipped: 1}
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var res Result
	for _, k := range keys {
		switch v := obj[k].(type) {
		case []any:
			for _, elem := range v {
				res.Clauses = append(res.Clauses, jsonFact(k, elem))
			}
		default:
			res.Clauses = append(res.Clauses, jsonFact(k, v))
		}
	}
	return res
}

func jsonFact(key string, value any) Clause {
	arg := jsonScalar(value)
	atom := Atom{Name: key, ArgKey: arg, Raw: key + "(" + arg + ")"}
	return Clause{Head: atom, Raw: atom.Raw}
}

func jsonScalar(v any) string {
	switch val := v.(type) {
	case nil:
		return "null"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		// nested object: compact JSON as the argument key
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%v", val)
		}
		return string(b)
	}
}
