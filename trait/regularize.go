package trait

import (
	"encoding/json"
	"strings"
)

// Regularize validates and normalizes a raw model response into a flat record
// set. It is pure: the same input always classifies the same way.
//
// Classification:
//   - response that does not decode as JSON       → KindInvalidJSON, Raw = response text
//   - JSON that is not an array of {characteristic, value} objects
//     with exactly those keys                     → KindBadStructure, Raw = stringified value
//   - otherwise → KindSuccess; names lowercased, values coerced to string,
//     elements with a null value dropped.
func Regularize(resp string) Outcome {
	payload := extractArray(resp)
	if payload == "" {
		payload = resp
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return InvalidJSON(resp)
	}

	elems, ok := decoded.([]any)
	if !ok {
		return BadStructure(stringify(decoded))
	}

	records := make([]Record, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok || !hasExactKeys(obj, "characteristic", "value") {
			return BadStructure(stringify(decoded))
		}

		// Null values mean the model had nothing to report; drop the
		// element rather than keeping a null record.
		if obj["value"] == nil {
			continue
		}

		records = append(records, Record{
			Name:  strings.ToLower(stringify(obj["characteristic"])),
			Value: stringify(obj["value"]),
		})
	}

	return Success(records)
}

// RegularizeTable validates and normalizes a raw model response into a
// per-sample table. Every row's value map must cover exactly the given sample
// IDs; any missing or extra sample key fails the whole table.
func RegularizeTable(resp string, sampleIDs []string) TableOutcome {
	payload := extractArray(resp)
	if payload == "" {
		payload = resp
	}

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return TableOutcome{Kind: KindInvalidJSON, Raw: resp}
	}

	elems, ok := decoded.([]any)
	if !ok {
		return TableOutcome{Kind: KindBadStructure, Raw: stringify(decoded)}
	}

	table := make([]TableRecord, 0, len(elems))
	for _, elem := range elems {
		obj, ok := elem.(map[string]any)
		if !ok || !hasExactKeys(obj, "characteristic", "values") {
			return TableOutcome{Kind: KindBadStructure, Raw: stringify(decoded)}
		}

		values, ok := obj["values"].(map[string]any)
		if !ok || !coversSamples(values, sampleIDs) {
			return TableOutcome{Kind: KindBadStructure, Raw: stringify(decoded)}
		}

		row := TableRecord{
			Name:   strings.ToLower(stringify(obj["characteristic"])),
			Values: make(map[string]string, len(values)),
		}
		for id, v := range values {
			row.Values[id] = stringify(v)
		}
		table = append(table, row)
	}

	return TableOutcome{Kind: KindSuccess, Table: table}
}

// hasExactKeys reports whether obj's key set is exactly the given keys.
func hasExactKeys(obj map[string]any, keys ...string) bool {
	if len(obj) != len(keys) {
		return false
	}
	for _, k := range keys {
		if _, ok := obj[k]; !ok {
			return false
		}
	}
	return true
}

// coversSamples reports whether the value map's key set equals the sample ID set.
func coversSamples(values map[string]any, sampleIDs []string) bool {
	if len(values) != len(sampleIDs) {
		return false
	}
	for _, id := range sampleIDs {
		if _, ok := values[id]; !ok {
			return false
		}
	}
	return true
}

// stringify coerces a decoded JSON value to its string form. Strings pass
// through unquoted; everything else re-marshals compactly.
func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
