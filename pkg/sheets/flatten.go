// Package sheets exports structured records to a Google Sheet through
// the sheets/v4 API, flattening nested JSON into spreadsheet columns.
package sheets

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// MaxCellChars keeps cells safely under the Sheets 50k character limit.
const MaxCellChars = 49000

// TruncateCell caps a cell value, marking the cut.
func TruncateCell(value string) string {
	if len(value) > MaxCellChars {
		return value[:MaxCellChars] + "… [TRUNCATED]"
	}
	return value
}

// FlattenRecord marshals any value through JSON and flattens the
// resulting object into sheet columns.
func FlattenRecord(v any) (map[string]string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: marshal record")
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, eris.Wrap(err, "sheets: record is not an object")
	}
	return Flatten(m, ""), nil
}

// Flatten collapses a nested object into a single-level map. Nested
// objects contribute parent_child keys, lists become " | " joined
// strings, and object list items render as "k:v; …" pairs.
func Flatten(data map[string]any, parentKey string) map[string]string {
	items := make(map[string]string)

	for key, value := range data {
		newKey := key
		if parentKey != "" {
			newKey = parentKey + "_" + key
		}

		switch v := value.(type) {
		case map[string]any:
			for k, flat := range Flatten(v, newKey) {
				items[k] = flat
			}
		case []any:
			parts := make([]string, 0, len(v))
			for _, elem := range v {
				if obj, ok := elem.(map[string]any); ok {
					parts = append(parts, joinPairs(obj))
				} else {
					parts = append(parts, stringify(elem))
				}
			}
			items[newKey] = strings.Join(parts, " | ")
		default:
			items[newKey] = stringify(value)
		}
	}
	return items
}

// joinPairs renders an object list item as "k:v; k:v" with keys sorted
// for stable output.
func joinPairs(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+":"+stringify(obj[k]))
	}
	return strings.Join(pairs, "; ")
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		if t == float64(int64(t)) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		raw, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(raw)
	}
}
