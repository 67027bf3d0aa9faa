package varcfg

// Value is a parsed configuration value. Concrete types:
//
//   - Bool
//   - Int
//   - Float
//   - String
//   - Array
//   - *Dict
//
// A Value tree is always fully owned by its Store (or by the caller that
// built it); the grammar cannot produce shared nodes or cycles.
type Value interface {
	value() // sealed: only types in this package implement Value
}

// Bool is a boolean value, written as the bare literals true or false.
type Bool bool

// Int is a signed 64-bit integer value.
type Int int64

// Float is a 64-bit floating point value.
type Float float64

// String is a text value. Constructor-call literals like Vector2(1, 2)
// are stored as String containing the exact source text.
type String string

// Array is an ordered sequence of values, written [a, b, c].
type Array []Value

// Dict is an ordered mapping from string keys to values, written
// { "a": 1, "b": 2 }. Iteration order is insertion order; setting an
// existing key overwrites its value in place.
type Dict struct {
	keys   []string
	values map[string]Value
}

func (Bool) value()   {}
func (Int) value()    {}
func (Float) value()  {}
func (String) value() {}
func (Array) value()  {}
func (*Dict) value()  {}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{values: make(map[string]Value)}
}

// Set stores v under key. If the key already exists its value is replaced
// and the key keeps its original position.
func (d *Dict) Set(key string, v Value) {
	if d.values == nil {
		d.values = make(map[string]Value)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = v
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Has reports whether key is present.
func (d *Dict) Has(key string) bool {
	_, ok := d.values[key]
	return ok
}

// Delete removes key and reports whether it was present.
func (d *Dict) Delete(key string) bool {
	if _, ok := d.values[key]; !ok {
		return false
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Keys returns the keys in insertion order. The returned slice is shared;
// callers must not modify it.
func (d *Dict) Keys() []string {
	return d.keys
}
