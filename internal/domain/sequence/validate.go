package sequence

import (
	"encoding/json"
	"math"
	"reflect"
	"slices"
)

// MinLength is the shortest sequence the analyzer accepts.
const MinLength = 2

// Validate checks that seq can be classified: at least MinLength elements,
// all finite.
func Validate(seq []float64) error {
	if len(seq) < MinLength {
		return invalidInput("sequence must contain at least %d numbers, got %d", MinLength, len(seq))
	}
	for i, v := range seq {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return invalidInput("element %d must be a finite number, got %v", i, v)
		}
	}
	return nil
}

// Coerce converts an arbitrary caller value into a validated sequence.
// It accepts numeric slices and []any holding numbers or json.Number, as
// produced by decoding JSON into interface values. The result never aliases v.
func Coerce(v any) ([]float64, error) {
	var seq []float64
	switch t := v.(type) {
	case nil:
		return nil, invalidInput("sequence must be an array of numbers")
	case []float64:
		seq = slices.Clone(t)
	case []any:
		seq = make([]float64, len(t))
		for i, el := range t {
			f, ok := toFloat(el)
			if !ok {
				return nil, invalidInput("element %d must be a number, got %s", i, describe(el))
			}
			seq[i] = f
		}
	default:
		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return nil, invalidInput("sequence must be an array of numbers, got %s", describe(v))
		}
		seq = make([]float64, rv.Len())
		for i := range seq {
			f, ok := toFloat(rv.Index(i).Interface())
			if !ok {
				return nil, invalidInput("element %d must be a number, got %s", i, describe(rv.Index(i).Interface()))
			}
			seq[i] = f
		}
	}
	if err := Validate(seq); err != nil {
		return nil, err
	}
	return seq, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func describe(v any) string {
	if v == nil {
		return "null"
	}
	switch v.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	}
	return reflect.TypeOf(v).String()
}
