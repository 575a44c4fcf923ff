package models

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// fieldMaps caches JSON tag -> struct field index mappings per row type
var fieldMaps sync.Map

func fieldMapFor(t reflect.Type) map[string]int {
	if m, ok := fieldMaps.Load(t); ok {
		return m.(map[string]int)
	}
	m := make(map[string]int, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("json")
		if tag == "" || tag == "-" {
			continue
		}
		m[strings.Split(tag, ",")[0]] = i
	}
	fieldMaps.Store(t, m)
	return m
}

// columnAliases maps the column names used by common World Cup exports onto our keys.
var columnAliases = map[string]string{
	"home_score":    "home_goals",
	"away_score":    "away_goals",
	"host_country":  "host",
	"runner-up":     "runner_up",
	"runnerup":      "runner_up",
	"total_matches": "matches",
	"total_goals":   "goals",
	"goals_scored":  "goals",
}

// CanonicalColumn normalises a header or JSON key: lower case, spaces to underscores, aliases
// resolved.
func CanonicalColumn(name string) string {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.ReplaceAll(key, " ", "_")
	if alias, ok := columnAliases[key]; ok {
		return alias
	}
	return key
}

// UnmarshalJSON accepts both native and string-encoded values, and the aliased keys above.
// Spreadsheet exports frequently quote every cell.
func (m *Match) UnmarshalJSON(data []byte) error {
	type alias Match
	return unmarshalFlex(data, reflect.ValueOf((*alias)(m)).Elem())
}

func (t *Tournament) UnmarshalJSON(data []byte) error {
	type alias Tournament
	return unmarshalFlex(data, reflect.ValueOf((*alias)(t)).Elem())
}

func unmarshalFlex(data []byte, v reflect.Value) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	fieldMap := fieldMapFor(v.Type())
	for key, rawVal := range raw {
		idx, ok := fieldMap[CanonicalColumn(key)]
		if !ok {
			continue
		}
		fv := v.Field(idx)

		// Try direct unmarshal first
		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			if fv.Kind() == reflect.String {
				fv.SetString(strings.TrimSpace(fv.String()))
			}
			continue
		}

		// Quoted numbers, or native floats such as 3.0 headed for an int field
		s := string(rawVal)
		if len(rawVal) > 1 && rawVal[0] == '"' {
			if err := json.Unmarshal(rawVal, &s); err != nil {
				return fmt.Errorf("field %q: %w", key, err)
			}
		}
		if err := coerceStringToField(fv, s); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
	}
	return nil
}

// DecodeRecord fills dst (a *Match or *Tournament) from one CSV record.
// Unknown columns are ignored; empty cells leave the zero value.
func DecodeRecord(dst interface{}, header, record []string) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode record: %T is not a struct pointer", dst)
	}
	v = v.Elem()
	fieldMap := fieldMapFor(v.Type())

	for i, column := range header {
		if i >= len(record) {
			break
		}
		idx, ok := fieldMap[CanonicalColumn(column)]
		if !ok {
			continue
		}
		if err := coerceStringToField(v.Field(idx), record[i]); err != nil {
			return fmt.Errorf("column %q: %w", column, err)
		}
	}
	return nil
}

// coerceStringToField converts a string value to the field's native type.
func coerceStringToField(fv reflect.Value, s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("not a number: %q", s)
		}
		fv.SetFloat(n)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// "3.0" is common in exports, "2.5" is not a goal count
		n, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
		if err != nil || n != math.Trunc(n) {
			return fmt.Errorf("not an integer: %q", s)
		}
		fv.SetInt(int64(n))
	case reflect.String:
		fv.SetString(s)
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}
