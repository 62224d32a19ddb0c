// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package codec converts setting values to and from their stored form.
//
// Every value is stored as a single string (or NULL) together with a
// [models.ValueType] tag. Booleans become "1"/"0", numbers their decimal
// representation, and structured values (maps, slices, structs) are
// serialized as JSON. [Parse] uses the tag to restore the original kind, so a
// boolean written through [Prepare] comes back as a bool and not as the
// string "1".
package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-settings/models"
)

var (
	// ErrUnsupportedValue is returned by [Prepare] for kinds that cannot be
	// stored (functions, channels, complex numbers, unsafe pointers).
	ErrUnsupportedValue = errors.New("unsupported setting value")

	// ErrCorruptValue is returned by [Parse] when the encoded value does not
	// match its type tag.
	ErrCorruptValue = errors.New("corrupt stored setting value")
)

// Prepare encodes value for storage and reports the type tag it was stored
// under.
//
// Pointers are dereferenced; a nil pointer is stored as NULL. A []byte is
// stored as a string.
func Prepare(value any) (models.StoredValue, error) {
	if value == nil {
		return models.StoredValue{Type: models.TypeNull}, nil
	}

	if b, ok := value.([]byte); ok {
		return stored(string(b), models.TypeString), nil
	}

	rv := reflect.ValueOf(value)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return models.StoredValue{Type: models.TypeNull}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return stored("1", models.TypeBoolean), nil
		}
		return stored("0", models.TypeBoolean), nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return stored(strconv.FormatInt(rv.Int(), 10), models.TypeInteger), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		// integers are read back as int
		if rv.Uint() > math.MaxInt {
			return models.StoredValue{}, fmt.Errorf("%w: %T %d overflows int", ErrUnsupportedValue, value, rv.Uint())
		}
		return stored(strconv.FormatUint(rv.Uint(), 10), models.TypeInteger), nil

	case reflect.Float32:
		return stored(strconv.FormatFloat(rv.Float(), 'g', -1, 32), models.TypeDouble), nil

	case reflect.Float64:
		return stored(strconv.FormatFloat(rv.Float(), 'g', -1, 64), models.TypeDouble), nil

	case reflect.String:
		return stored(rv.String(), models.TypeString), nil

	case reflect.Map:
		if rv.IsNil() {
			return stored("{}", models.TypeArray), nil
		}
		return marshal(rv.Interface(), models.TypeArray)

	case reflect.Slice:
		if rv.IsNil() {
			return stored("[]", models.TypeArray), nil
		}
		return marshal(rv.Interface(), models.TypeArray)

	case reflect.Array:
		return marshal(rv.Interface(), models.TypeArray)

	case reflect.Struct:
		return marshal(rv.Interface(), models.TypeObject)
	}

	return models.StoredValue{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
}

// Parse decodes a stored value back to its original kind.
//
// Integers decode to int, doubles to float64, and structured values to
// map[string]any or []any with the numbers inside restored by
// [NormalizeNumbers]. Values tagged as strings are never deserialized, even
// when they look like JSON.
func Parse(sv models.StoredValue) (any, error) {
	if sv.Raw == nil {
		return nil, nil
	}
	raw := *sv.Raw

	var (
		decoded    any = raw
		structured bool
	)
	if sv.Type != models.TypeString && IsSerialized(raw) {
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&decoded); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptValue, err)
		}
		decoded = NormalizeNumbers(decoded)
		structured = true
	}

	switch sv.Type {
	case models.TypeBoolean:
		return parseBool(raw)

	case models.TypeInteger:
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("%w: integer %q", ErrCorruptValue, raw)
		}
		return i, nil

	case models.TypeDouble:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("%w: double %q", ErrCorruptValue, raw)
		}
		return f, nil

	case models.TypeString:
		return raw, nil

	case models.TypeNull:
		return nil, nil

	case models.TypeArray, models.TypeObject:
		if !structured {
			return nil, fmt.Errorf("%w: %s without serialized structure", ErrCorruptValue, sv.Type)
		}
		return decoded, nil
	}

	// unknown tag: best effort
	return decoded, nil
}

// IsSerialized reports whether s carries the signature of a serialized
// structure: a JSON object or array.
func IsSerialized(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return false
	}

	first, last := s[0], s[len(s)-1]
	if !(first == '{' && last == '}') && !(first == '[' && last == ']') {
		return false
	}

	return json.Valid([]byte(s))
}

// NormalizeNumbers replaces every [json.Number] in value, including those
// nested in maps and slices, with an int when it is integral and fits, a
// uint64 when it only fits unsigned, and a float64 otherwise. Maps and slices
// are updated in place.
func NormalizeNumbers(value any) any {
	switch v := value.(type) {
	case json.Number:
		if i, err := strconv.ParseInt(v.String(), 10, strconv.IntSize); err == nil {
			return int(i)
		}
		if u, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case map[string]any:
		for k, item := range v {
			v[k] = NormalizeNumbers(item)
		}
		return v
	case []any:
		for i, item := range v {
			v[i] = NormalizeNumbers(item)
		}
		return v
	}
	return value
}

func parseBool(raw string) (bool, error) {
	switch strings.TrimSpace(raw) {
	case "1", "true":
		return true, nil
	case "0", "false", "":
		return false, nil
	}

	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: boolean %q", ErrCorruptValue, raw)
	}
	return b, nil
}

func marshal(v any, t models.ValueType) (models.StoredValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return models.StoredValue{}, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
	}

	// types with their own MarshalJSON (time.Time...) may encode to a scalar
	if !IsSerialized(string(data)) {
		var scalar any
		if err = json.Unmarshal(data, &scalar); err != nil {
			return models.StoredValue{}, fmt.Errorf("%w: %w", ErrUnsupportedValue, err)
		}
		return Prepare(scalar)
	}

	return stored(string(data), t), nil
}

func stored(raw string, t models.ValueType) models.StoredValue {
	return models.StoredValue{Raw: &raw, Type: t}
}
