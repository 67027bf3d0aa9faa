package varcfg

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"
	"unicode"
)

// Marshal converts a Go value to a configuration document. The value must
// be a struct or a map: fields (or entries) holding structs or maps become
// [section]s, everything else becomes a key in the default section.
//
// Struct fields are named by a `varcfg:"name"` tag, then a `json:"name"`
// tag, then the field name. A tag of "-" skips the field and the omitempty
// option drops zero values. Map entries are emitted in sorted key order so
// output is deterministic.
//
// It returns an error if the value contains something that cannot be
// represented (for example a channel or a func).
func Marshal(v any) ([]byte, error) {
	store := NewStore()
	if err := marshalTop(store, reflect.ValueOf(v)); err != nil {
		return nil, err
	}
	return []byte(Encode(store)), nil
}

func marshalTop(store *Store, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return fmt.Errorf("cannot marshal nil")
		}
		return marshalTop(store, rv.Elem())

	case reflect.Struct:
		for name, fv := range structFields(rv) {
			if err := marshalEntry(store, name, fv); err != nil {
				return err
			}
		}
		return nil

	case reflect.Map:
		keys, err := sortedKeys(rv)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := marshalEntry(store, key, rv.MapIndex(reflect.ValueOf(key))); err != nil {
				return err
			}
		}
		return nil

	default:
		return fmt.Errorf("unsupported top-level type: %s", rv.Type())
	}
}

// marshalEntry routes one named value: structs and maps become a section of
// keys, anything else a key in the default section.
func marshalEntry(store *Store, name string, rv reflect.Value) error {
	elem := rv
	for elem.Kind() == reflect.Pointer || elem.Kind() == reflect.Interface {
		if elem.IsNil() {
			return nil
		}
		elem = elem.Elem()
	}

	switch elem.Kind() {
	case reflect.Struct:
		for key, fv := range structFields(elem) {
			val, err := toValue(fv.Interface())
			if err != nil {
				return err
			}
			store.Set(name, key, val)
		}
	case reflect.Map:
		keys, err := sortedKeys(elem)
		if err != nil {
			return err
		}
		for _, key := range keys {
			val, err := toValue(elem.MapIndex(reflect.ValueOf(key)).Interface())
			if err != nil {
				return err
			}
			store.Set(name, key, val)
		}
	default:
		val, err := toValue(elem.Interface())
		if err != nil {
			return err
		}
		store.Set("", name, val)
	}
	return nil
}

// toValue converts a Go value into the Value model.
func toValue(v any) (Value, error) {
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return nil, fmt.Errorf("cannot represent nil")
	}

	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, fmt.Errorf("cannot represent nil")
		}
		return toValue(rv.Elem().Interface())
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > 1<<63-1 {
			return nil, fmt.Errorf("%d overflows int64", u)
		}
		return Int(u), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Slice, reflect.Array:
		arr := make(Array, 0, rv.Len())
		for i := range rv.Len() {
			elem, err := toValue(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			arr = append(arr, elem)
		}
		return arr, nil
	case reflect.Map:
		keys, err := sortedKeys(rv)
		if err != nil {
			return nil, err
		}
		dict := NewDict()
		for _, key := range keys {
			elem, err := toValue(rv.MapIndex(reflect.ValueOf(key)).Interface())
			if err != nil {
				return nil, err
			}
			dict.Set(key, elem)
		}
		return dict, nil
	case reflect.Struct:
		dict := NewDict()
		for name, fv := range structFields(rv) {
			elem, err := toValue(fv.Interface())
			if err != nil {
				return nil, err
			}
			dict.Set(name, elem)
		}
		return dict, nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", rv.Type())
	}
}

// SetAny converts a Go value via reflection and stores it under
// section/key. It is the typed counterpart of Set for callers that do not
// build Value trees themselves.
func (s *Store) SetAny(section, key string, v any) error {
	val, err := toValue(v)
	if err != nil {
		return err
	}
	s.Set(section, key, val)
	return nil
}

// sortedKeys renders a map's keys sorted so encoding is deterministic.
// Only string keys are supported.
func sortedKeys(rv reflect.Value) ([]string, error) {
	if rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("unsupported map key type: %s", rv.Type().Key())
	}
	keys := make([]string, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		keys = append(keys, key.String())
	}
	slices.Sort(keys)
	return keys, nil
}

// structFields yields the exported, non-skipped fields of a struct in
// declaration order, honoring varcfg/json tags and omitempty.
func structFields(rv reflect.Value) iter.Seq2[string, reflect.Value] {
	return func(yield func(string, reflect.Value) bool) {
		t := rv.Type()
		for i := range t.NumField() {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			tag, ok := field.Tag.Lookup("varcfg")
			if !ok {
				tag, _ = field.Tag.Lookup("json")
			}
			if tag == "-" {
				continue
			}
			name, options, _ := strings.Cut(tag, ",")
			if name == "" {
				name = field.Name
			}
			fv := rv.Field(i)
			if strings.Contains(options, "omitempty") && fv.IsZero() {
				continue
			}
			if !yield(name, fv) {
				return
			}
		}
	}
}

// Unmarshal parses a configuration document into v, which must be a
// non-nil pointer to a struct, map, or interface.
//
// For a struct, each [section] is matched to a struct or map field of that
// name, and default-section keys are matched to the remaining fields; names
// come from `varcfg:"name"` tags, then `json:"name"` tags, then the field
// name or its snake_case form. Unknown sections or keys are an error, as is
// a value that cannot be coerced into the field's type.
func Unmarshal(data []byte, v any) error {
	value := reflect.ValueOf(v)
	if value.Kind() != reflect.Ptr || value.IsNil() {
		return fmt.Errorf("invalid target, must be a non-nil pointer")
	}
	store := Parse(string(data))
	return unmarshalStore(store, value.Elem())
}

func unmarshalStore(store *Store, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return unmarshalStore(store, rv.Elem())

	case reflect.Struct:
		fields := fieldMap(rv)
		for _, section := range store.Sections() {
			d := store.sections[section]
			if section == "" {
				for _, key := range d.Keys() {
					field, ok := fields[key]
					if !ok {
						return fmt.Errorf("unknown key %s", key)
					}
					elem, _ := d.Get(key)
					if !coerceValue(elem, field) {
						return fmt.Errorf("cannot unmarshal %s into %s", key, field.Type())
					}
				}
				continue
			}
			field, ok := fields[section]
			if !ok {
				return fmt.Errorf("unknown section %s", section)
			}
			if err := unmarshalSection(d, field); err != nil {
				return fmt.Errorf("[%s]: %w", section, err)
			}
		}
		return nil

	case reflect.Map, reflect.Interface:
		// the whole document as a two-level mapping
		root := NewDict()
		for _, section := range store.Sections() {
			root.Set(section, store.sections[section])
		}
		if !coerceValue(root, rv) {
			return fmt.Errorf("cannot unmarshal document into %s", rv.Type())
		}
		return nil

	default:
		return fmt.Errorf("unsupported type: %s", rv.Type())
	}
}

func unmarshalSection(d *Dict, rv reflect.Value) error {
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		if !coerceValue(d, rv) {
			return fmt.Errorf("cannot unmarshal section into %s", rv.Type())
		}
		return nil
	}

	fields := fieldMap(rv)
	for _, key := range d.Keys() {
		field, ok := fields[key]
		if !ok {
			return fmt.Errorf("unknown key %s", key)
		}
		elem, _ := d.Get(key)
		if !coerceValue(elem, field) {
			return fmt.Errorf("cannot unmarshal %s into %s", key, field.Type())
		}
	}
	return nil
}

func fieldMap(rv reflect.Value) map[string]reflect.Value {
	t := rv.Type()
	fields := make(map[string]reflect.Value)

	for i := 0; i < t.NumField(); i++ {
		field := rv.Field(i)
		fieldType := t.Field(i)

		if fieldType.PkgPath != "" {
			continue
		}

		if tag, ok := fieldType.Tag.Lookup("varcfg"); ok {
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			fields[name] = field
			continue
		}

		if tag, ok := fieldType.Tag.Lookup("json"); ok {
			if tag == "-" {
				continue
			}
			name, _, _ := strings.Cut(tag, ",")
			fields[name] = field
			continue
		}

		fields[fieldType.Name] = field
		fields[toSnakeCase(fieldType.Name)] = field
	}
	return fields
}

func toSnakeCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && unicode.IsUpper(r) {
			result.WriteRune('_')
		}
		result.WriteRune(unicode.ToLower(r))
	}
	return result.String()
}
