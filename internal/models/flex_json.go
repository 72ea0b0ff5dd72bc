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

// gameLogEventFieldMap caches JSON tag -> struct field index mappings
var (
	gameLogEventFieldMap     map[string]int
	gameLogEventFieldMapOnce sync.Once
)

func getGameLogEventFieldMap() map[string]int {
	gameLogEventFieldMapOnce.Do(func() {
		t := reflect.TypeOf(GameLogEvent{})
		gameLogEventFieldMap = make(map[string]int, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			tag := t.Field(i).Tag.Get("json")
			if tag == "" || tag == "-" {
				continue
			}
			name := strings.Split(tag, ",")[0]
			gameLogEventFieldMap[name] = i
		}
	})
	return gameLogEventFieldMap
}

// UnmarshalJSON accepts both native JSON types and string-encoded values.
// Game log exports write every cell as a string ("24", "Inactive", ""), so
// stat fields that do not parse as a finite number are left nil.
func (e *GameLogEvent) UnmarshalJSON(data []byte) error {
	// Alias prevents infinite recursion
	type Alias GameLogEvent
	a := (*Alias)(e)

	// Fast path: all types match natively
	if err := json.Unmarshal(data, a); err == nil {
		e.dropNonFinite()
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("flex unmarshal: %w", err)
	}

	// The failed fast path may have filled some fields already
	*e = GameLogEvent{}

	fieldMap := getGameLogEventFieldMap()
	v := reflect.ValueOf(a).Elem()

	for key, rawVal := range raw {
		idx, ok := fieldMap[key]
		if !ok {
			continue
		}

		fv := v.Field(idx)
		if !fv.CanSet() {
			continue
		}

		ptr := reflect.New(fv.Type())
		if err := json.Unmarshal(rawVal, ptr.Interface()); err == nil {
			fv.Set(ptr.Elem())
			continue
		}

		// Value is a JSON string but target is numeric; coerce
		if len(rawVal) > 1 && rawVal[0] == '"' {
			var s string
			if err := json.Unmarshal(rawVal, &s); err != nil {
				continue
			}
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			coerceStringToField(fv, s)
		}
	}

	e.dropNonFinite()
	return nil
}

func (e *GameLogEvent) dropNonFinite() {
	for _, p := range []**float64{&e.Points, &e.Assists, &e.Rebounds} {
		if *p != nil && (math.IsNaN(**p) || math.IsInf(**p, 0)) {
			*p = nil
		}
	}
}

// coerceStringToField converts a string value to the field's native type.
// Pointer fields are allocated only when the string parses.
func coerceStringToField(fv reflect.Value, s string) {
	if fv.Kind() == reflect.Ptr {
		elem := reflect.New(fv.Type().Elem())
		coerceStringToField(elem.Elem(), s)
		if !elem.Elem().IsZero() || isZeroLiteral(s) {
			fv.Set(elem)
		}
		return
	}

	switch fv.Kind() {
	case reflect.Float32, reflect.Float64:
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetFloat(n)
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		// ParseFloat handles "28.0" → truncate to int
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			fv.SetInt(int64(n))
		}
	case reflect.String:
		fv.SetString(s)
	}
}

func isZeroLiteral(s string) bool {
	n, err := strconv.ParseFloat(s, 64)
	return err == nil && n == 0
}
