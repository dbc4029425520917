package document

// Flags stores arbitrary values namespaced by module.
type Flags map[string]map[string]any

// Lookup returns a flag value and whether it is set.
func (f Flags) Lookup(ns, key string) (any, bool) {
	m, ok := f[ns]
	if !ok {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

// Bool returns a boolean flag, falling back to def when it is missing or not a bool.
func (f Flags) Bool(ns, key string, def bool) bool {
	v, ok := f.Lookup(ns, key)
	if !ok {
		return def
	}
	b, ok := v.(bool)
	if !ok {
		return def
	}
	return b
}

// Float returns a numeric flag.
func (f Flags) Float(ns, key string) (float64, bool) {
	v, ok := f.Lookup(ns, key)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Set stores a flag value, creating the namespace if needed.
func (f Flags) Set(ns, key string, v any) {
	m, ok := f[ns]
	if !ok {
		m = make(map[string]any)
		f[ns] = m
	}
	m[key] = v
}

// Merge copies every flag from other into f.
func (f Flags) Merge(other Flags) {
	for ns, m := range other {
		for k, v := range m {
			f.Set(ns, k, v)
		}
	}
}
