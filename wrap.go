package attrdict

import "reflect"

// Tuple is the sequence kind produced under SequenceTuple. It is a
// fresh slice built on every read; treat it as immutable.
type Tuple []any

// wrapValue is the on-read transformation: nested mappings become a
// Map of the same kind and configuration (adopted in place, no copy),
// sequences are rebuilt per the sequence policy with each element
// wrapped, and everything else passes through unchanged. Strings and
// byte slices are scalars here, never sequences of characters. Values
// are stored raw, so wrapping happens fresh on every access.
func wrapValue(v any, cfg Config) any {
	if v == nil {
		return nil
	}

	if m, ok := v.(*Map); ok {
		if m.config.same(cfg) {
			return m
		}
		return &Map{store: m.store, config: cfg}
	}

	if view, ok := asView(v); ok {
		return &Map{store: adoptView(cfg.Store, view), config: cfg}
	}

	switch v.(type) {
	case string, []byte:
		return v
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return v
	}

	switch cfg.Sequence {
	case SequenceRaw:
		return v
	case SequenceSlice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = wrapValue(rv.Index(i).Interface(), cfg)
		}
		return out
	default:
		out := make(Tuple, rv.Len())
		for i := range out {
			out[i] = wrapValue(rv.Index(i).Interface(), cfg)
		}
		return out
	}
}
