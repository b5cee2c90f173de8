package attrdict

// NewDefault builds a Map whose missing-key reads invoke factory to
// produce a value, store it at the key, and return it wrapped. This
// materialization happens on Index, Attr, and Fetch misses only; Get
// never invokes the factory. A nil factory yields a Map that behaves
// exactly like the core. Use WithKeyDefault instead when the factory
// needs the missing key.
func NewDefault(factory func() any, src any, opts ...Option) (*Map, error) {
	opts = append([]Option{WithDefault(factory)}, opts...)
	return From(src, opts...)
}

// materialize runs the default factory for a missing key. The produced
// value is stored raw and returned wrapped, the one deliberate case of
// a read mutating the backing store. Frozen instances never
// materialize.
func (m *Map) materialize(key any) (any, bool, error) {
	if m.config.factory == nil || !m.config.Mutable {
		return nil, false, nil
	}
	v := m.config.factory(key)
	if err := m.store.Set(key, v); err != nil {
		return nil, true, err
	}
	emitDefaultApplied(m.config, key)
	return wrapValue(v, m.config), true, nil
}
