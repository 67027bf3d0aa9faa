package varcfg

// Store holds parsed configuration values, grouped by section. The empty
// section name "" is the default section, whose keys are written before any
// [section] header. Section order and key order within a section are
// insertion order, so that encoding a Store is deterministic.
//
// A Store is not safe for concurrent mutation; callers that share one must
// serialize access themselves.
type Store struct {
	order    []string
	sections map[string]*Dict
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{sections: make(map[string]*Dict)}
}

// Set stores v under section/key, creating the section if needed.
// Overwriting an existing key preserves its position.
func (s *Store) Set(section, key string, v Value) {
	if s.sections == nil {
		s.sections = make(map[string]*Dict)
	}
	d, ok := s.sections[section]
	if !ok {
		d = NewDict()
		s.sections[section] = d
		s.order = append(s.order, section)
	}
	d.Set(key, v)
}

// Get returns the raw value stored under section/key.
func (s *Store) Get(section, key string) (Value, bool) {
	d, ok := s.sections[section]
	if !ok {
		return nil, false
	}
	return d.Get(key)
}

// HasSection reports whether the section exists (it exists only while it
// holds at least one key).
func (s *Store) HasSection(section string) bool {
	_, ok := s.sections[section]
	return ok
}

// HasKey reports whether section/key exists.
func (s *Store) HasKey(section, key string) bool {
	d, ok := s.sections[section]
	return ok && d.Has(key)
}

// Sections returns the section names in insertion order. The returned slice
// is shared; callers must not modify it.
func (s *Store) Sections() []string {
	return s.order
}

// Keys returns the keys of a section in insertion order, or nil if the
// section does not exist.
func (s *Store) Keys(section string) []string {
	d, ok := s.sections[section]
	if !ok {
		return nil
	}
	return d.Keys()
}

// Len returns the number of sections.
func (s *Store) Len() int {
	return len(s.order)
}

// DeleteKey removes section/key and reports whether it was present. A
// section whose last key is erased is removed with it.
func (s *Store) DeleteKey(section, key string) bool {
	d, ok := s.sections[section]
	if !ok || !d.Delete(key) {
		return false
	}
	if d.Len() == 0 {
		s.removeSection(section)
	}
	return true
}

// DeleteSection removes a whole section and reports whether it existed.
func (s *Store) DeleteSection(section string) bool {
	if _, ok := s.sections[section]; !ok {
		return false
	}
	s.removeSection(section)
	return true
}

func (s *Store) removeSection(section string) {
	delete(s.sections, section)
	for i, name := range s.order {
		if name == section {
			s.order = append(s.order[:i], s.order[i+1:]...)
			return
		}
	}
}

// Clear removes all sections and keys.
func (s *Store) Clear() {
	s.order = nil
	s.sections = make(map[string]*Dict)
}
