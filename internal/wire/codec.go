package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const codecNameJSON = "json"

// A Codec marshals typed records to and from bytes. Implementations must
// be pure: identical input produces identical output on every call.
type Codec interface {
	Name() string
	Marshal(any) ([]byte, error)
	Unmarshal([]byte, any) error
}

// JSON is the default codec: canonical JSON with the strict decode policy
// documented in the package comment.
var JSON Codec = &canonicalJSON{}

// Encode serializes v with the default codec.
//
// Encoding cannot fail for the record shapes this system supports (flat
// structs of string fields). A marshal error is a contract violation in
// the codec adapter, not a runtime condition, so Encode panics rather
// than forcing every call site to thread an impossible error.
func Encode[T any](v T) []byte {
	data, err := JSON.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("wire: encode %T: %v", v, err))
	}
	return data
}

// Decode deserializes data into schema T with the default codec.
// Failures are always a *DecodeError.
func Decode[T any](data []byte) (T, error) {
	var v T
	if err := JSON.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}

// DecodeFields validates data against a dynamic field set under the same
// policy as typed decoding: unknown fields are ignored, every required
// field must be present. It exists for callers that work from revision
// descriptors instead of Go types, such as the audit CLI.
func DecodeFields(data []byte, schema string, required []string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewMalformedError(schema, err)
	}
	for _, field := range required {
		if _, ok := raw[field]; !ok {
			return NewMissingFieldError(schema, field)
		}
	}
	return nil
}

// canonicalJSON implements Codec with canonical output and strict,
// reflection-driven decoding.
type canonicalJSON struct{}

var _ Codec = (*canonicalJSON)(nil)

func (c *canonicalJSON) Name() string { return codecNameJSON }

func (c *canonicalJSON) Marshal(v any) ([]byte, error) {
	return marshalCanonical(reflect.ValueOf(v))
}

func (c *canonicalJSON) Unmarshal(data []byte, v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return fmt.Errorf("wire: unmarshal target must be a non-nil pointer, got %T", v)
	}
	return unmarshalStrict(data, rv.Elem())
}

// marshalCanonical emits canonical JSON: sorted object keys, NFC-normalized
// strings, no HTML escaping.
func marshalCanonical(rv reflect.Value) ([]byte, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("null is forbidden in canonical output")
		}
		return marshalCanonical(rv.Elem())
	case reflect.String:
		return marshalCanonicalString(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.AppendInt(nil, rv.Int(), 10), nil
	case reflect.Bool:
		return strconv.AppendBool(nil, rv.Bool()), nil
	case reflect.Struct:
		return marshalCanonicalStruct(rv)
	case reflect.Slice, reflect.Array:
		return marshalCanonicalArray(rv)
	case reflect.Map:
		return marshalCanonicalMap(rv)
	default:
		// Floats in particular are rejected: they break deterministic
		// round-trips, which the verifier depends on.
		return nil, fmt.Errorf("unsupported type for canonical output: %s", rv.Type())
	}
}

func marshalCanonicalStruct(rv reflect.Value) ([]byte, error) {
	fields := recordFields(rv.Type())

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalCanonicalString(f.name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", f.name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalCanonical(rv.Field(f.index))
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", f.name, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func marshalCanonicalArray(rv reflect.Value) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		elem, err := marshalCanonical(rv.Index(i))
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elem)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalMap(rv reflect.Value) ([]byte, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("map keys must be strings, got %s", rv.Type().Key())
	}

	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')

		val, err := marshalCanonical(rv.MapIndex(reflect.ValueOf(k)))
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalCanonicalString emits a JSON string with NFC normalization and no
// HTML escaping (< > & stay literal).
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder adds a trailing newline, remove it.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

// unmarshalStrict decodes data into rv, enforcing the codec policy:
// every record field is required, unknown fields are ignored.
func unmarshalStrict(data []byte, rv reflect.Value) error {
	if rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		if err := json.Unmarshal(data, rv.Addr().Interface()); err != nil {
			return NewMalformedError(rv.Type().String(), err)
		}
		return nil
	}

	schema := rv.Type().Name()

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return NewMalformedError(schema, err)
	}

	for _, f := range recordFields(rv.Type()) {
		fieldData, ok := raw[f.name]
		if !ok {
			return NewMissingFieldError(schema, f.name)
		}
		field := rv.Field(f.index)
		if isRecordKind(field) {
			if err := unmarshalStrict(fieldData, field); err != nil {
				return err
			}
			continue
		}
		if err := json.Unmarshal(fieldData, field.Addr().Interface()); err != nil {
			return NewMalformedError(schema, err)
		}
	}
	return nil
}

func isRecordKind(rv reflect.Value) bool {
	k := rv.Kind()
	return k == reflect.Struct || (k == reflect.Pointer && rv.Type().Elem().Kind() == reflect.Struct)
}

// recordField is one named, encodable field of a record type.
type recordField struct {
	name  string
	index int
}

// recordFields returns the encodable fields of t in sorted key order.
// Field names come from json tags; untagged exported fields use the Go
// field name. Fields tagged "-" are excluded.
func recordFields(t reflect.Type) []recordField {
	fields := make([]recordField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		fields = append(fields, recordField{name: name, index: i})
	}
	slices.SortFunc(fields, func(a, b recordField) int {
		return strings.Compare(a.name, b.name)
	})
	return fields
}
