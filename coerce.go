package varcfg

import (
	"reflect"
	"strconv"
)

// As converts a stored value to T, returning def when the value cannot be
// coerced. T may be a scalar, a slice, a map, or any nesting of those;
// container elements are coerced independently, with elements that fail
// keeping their zero value.
func As[T any](v Value, def T) T {
	rv := reflect.New(reflect.TypeOf((*T)(nil)).Elem()).Elem()
	if !CoerceInto(v, rv.Addr().Interface()) {
		return def
	}
	return rv.Interface().(T)
}

// CoerceInto fills target, which must be a non-nil pointer, from a stored
// value and reports whether the conversion succeeded. It never panics on a
// shape mismatch and never partially reports: a false return leaves no
// claim about target's contents.
func CoerceInto(v Value, target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return false
	}
	return coerceValue(v, rv.Elem())
}

func coerceValue(v Value, rv reflect.Value) bool {
	if v == nil || !rv.CanSet() {
		return false
	}

	switch rv.Kind() {
	case reflect.Bool:
		b, ok := toBool(v)
		if !ok {
			return false
		}
		rv.SetBool(b)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := toInt(v)
		if !ok || rv.OverflowInt(n) {
			return false
		}
		rv.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, ok := toInt(v)
		if !ok || n < 0 || rv.OverflowUint(uint64(n)) {
			return false
		}
		rv.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		f, ok := toFloat(v)
		if !ok || rv.OverflowFloat(f) {
			return false
		}
		rv.SetFloat(f)

	case reflect.String:
		s, ok := toText(v)
		if !ok {
			return false
		}
		rv.SetString(s)

	case reflect.Slice:
		arr, ok := v.(Array)
		if !ok {
			return false
		}
		out := reflect.MakeSlice(rv.Type(), len(arr), len(arr))
		for i, elem := range arr {
			coerceValue(elem, out.Index(i))
		}
		rv.Set(out)

	case reflect.Array:
		arr, ok := v.(Array)
		if !ok {
			return false
		}
		for i := 0; i < len(arr) && i < rv.Len(); i++ {
			coerceValue(arr[i], rv.Index(i))
		}

	case reflect.Map:
		d, ok := v.(*Dict)
		if !ok {
			return false
		}
		out := reflect.MakeMapWithSize(rv.Type(), d.Len())
		for _, key := range d.Keys() {
			mk := reflect.New(rv.Type().Key()).Elem()
			if !coerceKey(key, mk) {
				continue
			}
			mv := reflect.New(rv.Type().Elem()).Elem()
			elem, _ := d.Get(key)
			coerceValue(elem, mv)
			out.SetMapIndex(mk, mv)
		}
		rv.Set(out)

	case reflect.Interface:
		if rv.NumMethod() != 0 {
			return false
		}
		rv.Set(reflect.ValueOf(toAny(v)))

	case reflect.Ptr:
		if rv.IsNil() {
			rv.Set(reflect.New(rv.Type().Elem()))
		}
		return coerceValue(v, rv.Elem())

	default:
		return false
	}
	return true
}

// coerceKey applies the scalar conversion rule to a dictionary key string,
// parsing it with strconv when the target key type is not a string.
func coerceKey(key string, rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.String:
		rv.SetString(key)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(key, 10, 64)
		if err != nil || rv.OverflowInt(n) {
			return false
		}
		rv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(key, 10, 64)
		if err != nil || rv.OverflowUint(n) {
			return false
		}
		rv.SetUint(n)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(key, 64)
		if err != nil || rv.OverflowFloat(f) {
			return false
		}
		rv.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(key)
		if err != nil {
			return false
		}
		rv.SetBool(b)
	default:
		return false
	}
	return true
}

func toBool(v Value) (bool, bool) {
	switch x := v.(type) {
	case Bool:
		return bool(x), true
	case Int:
		return x != 0, true
	case Float:
		return x != 0, true
	}
	return false, false
}

func toInt(v Value) (int64, bool) {
	switch x := v.(type) {
	case Int:
		return int64(x), true
	case Float:
		return int64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat(v Value) (float64, bool) {
	switch x := v.(type) {
	case Float:
		return float64(x), true
	case Int:
		return float64(x), true
	case Bool:
		if x {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// toText renders a scalar in its canonical encoded form. Containers do not
// flatten to strings.
func toText(v Value) (string, bool) {
	switch x := v.(type) {
	case String:
		return string(x), true
	case Bool:
		if x {
			return "true", true
		}
		return "false", true
	case Int:
		return strconv.FormatInt(int64(x), 10), true
	case Float:
		return formatFloat(float64(x)), true
	}
	return "", false
}

// toAny maps a value tree onto plain Go types: bool, int64, float64,
// string, []any and map[string]any.
func toAny(v Value) any {
	switch x := v.(type) {
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Float:
		return float64(x)
	case String:
		return string(x)
	case Array:
		out := make([]any, len(x))
		for i, elem := range x {
			out[i] = toAny(elem)
		}
		return out
	case *Dict:
		out := make(map[string]any, x.Len())
		for _, key := range x.Keys() {
			elem, _ := x.Get(key)
			out[key] = toAny(elem)
		}
		return out
	}
	return nil
}

// GetBool returns section/key coerced to bool, or def when the key is
// missing or incompatible.
func (s *Store) GetBool(section, key string, def bool) bool {
	if v, ok := s.Get(section, key); ok {
		return As(v, def)
	}
	return def
}

// GetInt returns section/key coerced to int64, or def.
func (s *Store) GetInt(section, key string, def int64) int64 {
	if v, ok := s.Get(section, key); ok {
		return As(v, def)
	}
	return def
}

// GetFloat returns section/key coerced to float64, or def.
func (s *Store) GetFloat(section, key string, def float64) float64 {
	if v, ok := s.Get(section, key); ok {
		return As(v, def)
	}
	return def
}

// GetString returns section/key coerced to string, or def.
func (s *Store) GetString(section, key, def string) string {
	if v, ok := s.Get(section, key); ok {
		return As(v, def)
	}
	return def
}
