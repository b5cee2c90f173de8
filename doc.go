// Package attrdict provides an attribute-style facade over ordered
// key-value mappings, applied recursively to nested mappings and
// sequences.
//
// A Map wraps exactly one backing store plus an immutable configuration
// describing how sequence values are rewrapped on read. Member-access
// syntax and key-subscript syntax are interchangeable for keys that
// qualify as identifiers; everything else stays reachable by subscript.
//
// # Accessors
//
// Four read paths with distinct contracts:
//
//	m.Index(key)      - subscript read; LookupError on miss
//	m.Attr(name)      - attribute read; classifier-gated, AttrError on
//	                    miss, hidden, or reserved names
//	m.Fetch(key)      - subscript semantics, attribute-style error; the
//	                    canonical accessor for keys that can never be
//	                    attributes (numeric, emoji, composite)
//	m.Get(key, def)   - never fails, returns the raw stored value
//
// Values are stored raw and rewrapped fresh on every Index/Attr/Fetch:
// nested mappings come back as a Map of the same kind and
// configuration, sequences come back per the sequence policy. The
// backing store never contains wrapper types, so its serialized form
// stays plain.
//
// # Key classification
//
// A key is attribute-safe when it is a string, matches
// [A-Za-z_][A-Za-z0-9_]*, does not start with the hidden marker "_",
// and does not collide with a method of Map. Hidden and reserved keys
// remain fully usable through Index/Fetch/Get.
//
// # Construction
//
//	m := attrdict.New()
//	m, err := attrdict.From(map[string]any{"a": map[string]any{"b": 1}})
//	m, err := attrdict.From(src, attrdict.WithStore(attrdict.StoreHash),
//		attrdict.WithSequence(attrdict.SequenceSlice))
//
// Constructing from a raw Go map adopts it in place: mutations through
// the Map mutate the original mapping. Constructing from []Item copies.
// Two store kinds ship by default: StoreOrdered (insertion-ordered) and
// StoreHash (plain Go map); custom kinds register via RegisterStore.
//
// # Merging
//
//	merged, err := a.Merge(b)
//
// produces a new Map of a's kind and configuration containing every key
// from both operands. Keys present in both with mapping values on both
// sides deep-merge recursively; otherwise the right operand wins.
//
// # Default variant
//
//	d, _ := attrdict.NewDefault(func() any { return []any{} }, nil)
//	v, _ := d.Index("missing") // materializes and stores []any{}
//
// A Map built with a default factory materializes missing keys on
// Index/Attr/Fetch reads. Get never invokes the factory.
//
// # Serialization
//
// State/FromState round-trip the complete instance: items in store
// order plus the configuration, nothing else. MarshalBinary and
// UnmarshalBinary use deterministic CBOR. The json, yaml, cbor,
// msgpack, and bson subpackages provide Codec implementations for
// Encode/Decode.
//
// # Observability
//
// Construction, merges, default materialization, and state restoration
// emit capitan signals; see signals.go for the signal and key set.
package attrdict
