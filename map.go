package attrdict

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"strings"
)

// Map is the attribute proxy: one exclusively owned backing Store plus
// an immutable Config. The store is the single source of truth; the
// proxy holds no duplicate state beyond the optional instance-local
// side map used by the invalid-attribute escape hatch.
//
// Maps are not safe for concurrent mutation; see the package
// documentation.
type Map struct {
	store  Store
	config Config
	locals map[string]any
}

// New returns an empty Map with the given options applied.
func New(opts ...Option) *Map {
	m, err := From(nil, opts...)
	if err != nil {
		// From only fails on unrecognized sources; nil never is.
		panic("attrdict: " + err.Error())
	}
	return m
}

// From builds a Map from src, which may be nil, another *Map (the
// backing store is shared, not copied, and the source's configuration
// carries over unless options override it), a raw Go map of any key
// and value types (adopted in place: mutations through the Map mutate
// the original), or a []Item pair list (copied in order). Values
// supplied via WithValues merge last, override-wins, preserving
// insertion order on ordered stores.
func From(src any, opts ...Option) (*Map, error) {
	set := settings{cfg: defaultConfig()}
	if s, ok := src.(*Map); ok {
		set.cfg = s.config
	}
	for _, opt := range opts {
		opt(&set)
	}

	st, err := sourceStore(src, &set)
	if err != nil {
		return nil, err
	}

	if len(set.values) > 0 {
		names := make([]string, 0, len(set.values))
		for name := range set.values {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := st.Set(name, set.values[name]); err != nil {
				return nil, err
			}
		}
	}

	m := &Map{store: st, config: set.cfg}
	emitMapCreated(m.config, m.Len())
	return m, nil
}

// FromKeys builds a Map with every key bound to value.
func FromKeys(keys []any, value any, opts ...Option) (*Map, error) {
	items := make([]Item, len(keys))
	for i, k := range keys {
		items[i] = Item{Key: k, Value: value}
	}
	return From(items, opts...)
}

// sourceStore resolves the construction source into a backing store.
func sourceStore(src any, set *settings) (Store, error) {
	switch s := src.(type) {
	case nil:
		return newStore(set.cfg.Store), nil
	case *Map:
		if set.storeSet && set.cfg.Store != s.store.Kind() {
			st := newStore(set.cfg.Store)
			for _, it := range storeItems(s.store) {
				if err := st.Set(it.Key, it.Value); err != nil {
					return nil, err
				}
			}
			return st, nil
		}
		set.cfg.Store = s.store.Kind()
		return s.store, nil
	case []Item:
		st := newStore(set.cfg.Store)
		for _, it := range s {
			if err := st.Set(it.Key, it.Value); err != nil {
				return nil, err
			}
		}
		return st, nil
	}
	if view, ok := asView(src); ok {
		return adoptView(set.cfg.Store, view), nil
	}
	return nil, newMutationError(ErrNotMapping, "construct", fmt.Sprintf("%T", src))
}

// Config returns the instance configuration.
func (m *Map) Config() Config { return m.config }

// Index returns the value stored at key, wrapped per the sequence
// policy. The classifier is never consulted: hidden, reserved, and
// non-identifier keys all resolve. Misses fail with a LookupError
// unless a default factory materializes the key.
func (m *Map) Index(key any) (any, error) {
	if v, ok := m.store.Get(key); ok {
		return wrapValue(v, m.config), nil
	}
	if v, ok, err := m.materialize(key); ok || err != nil {
		return v, err
	}
	return nil, newLookupError(key)
}

// Attr returns the value stored at name when the classifier approves
// it. Hidden and reserved names fail with an AttrError even when the
// key is present; they stay reachable through Index and Fetch.
func (m *Map) Attr(name string) (any, error) {
	if v, ok := m.locals[name]; ok {
		return v, nil
	}
	if !ValidAttrKey(name, isReserved) {
		return nil, newAttrError(ErrAttrNotFound, name, rejectReason(name))
	}
	if v, ok := m.store.Get(name); ok {
		return wrapValue(v, m.config), nil
	}
	if v, ok, err := m.materialize(name); ok || err != nil {
		return v, err
	}
	return nil, newAttrError(ErrAttrNotFound, name, "")
}

// Fetch behaves like Index for any key shape but reports misses as
// attribute-style errors. It is the canonical accessor for keys that
// can never be valid attributes.
func (m *Map) Fetch(key any) (any, error) {
	if v, ok := m.store.Get(key); ok {
		return wrapValue(v, m.config), nil
	}
	if v, ok, err := m.materialize(key); ok || err != nil {
		return v, err
	}
	return nil, newAttrError(ErrAttrNotFound, fmt.Sprint(key), "")
}

// Get returns the raw stored value at key, or the optional default on
// absence. It never fails and never invokes a default factory.
func (m *Map) Get(key any, def ...any) any {
	if v, ok := m.store.Get(key); ok {
		return v
	}
	if len(def) > 0 {
		return def[0]
	}
	return nil
}

// Member tags the outcome of Resolve.
type Member int

const (
	// MemberMissing means the name classified fine but no entry exists.
	MemberMissing Member = iota

	// MemberData means the name resolved to a stored value.
	MemberData

	// MemberMethod means the name is part of the proxy surface itself.
	MemberMethod

	// MemberRejected means the classifier refused the name (hidden, not
	// an identifier, or a reserved internal slot); the key may still
	// exist for subscript access.
	MemberRejected
)

// Resolve is the explicit member-dispatch surface: given a name it
// reports whether the name denotes stored data, a method of the proxy,
// or nothing attribute-access may touch. Data results come back
// wrapped, method results as bound reflect-derived values.
func (m *Map) Resolve(name string) (any, Member) {
	if isReserved(name) {
		if mv := reflect.ValueOf(m).MethodByName(name); mv.IsValid() {
			return mv.Interface(), MemberMethod
		}
		// Reserved internal slots are not callable members.
		return nil, MemberRejected
	}
	if !ValidAttrKey(name, isReserved) {
		return nil, MemberRejected
	}
	if v, ok := m.store.Get(name); ok {
		return wrapValue(v, m.config), MemberData
	}
	return nil, MemberMissing
}

// Set stores value at key. Any key the backing store accepts works;
// the classifier is not consulted. Frozen instances fail with
// ErrImmutable and stay unchanged.
func (m *Map) Set(key, value any) error {
	if !m.config.Mutable {
		return newMutationError(ErrImmutable, "set", key)
	}
	return m.store.Set(key, value)
}

// SetAttr stores value at name when the classifier approves it.
// Rejected names fail with ErrInvalidAttr unless the escape hatch is
// on, in which case the value lands in the instance-local side map and
// the backing store is untouched.
func (m *Map) SetAttr(name string, value any) error {
	if !ValidAttrKey(name, isReserved) {
		if m.config.allowLocal {
			if m.locals == nil {
				m.locals = make(map[string]any)
			}
			m.locals[name] = value
			return nil
		}
		return newMutationError(ErrInvalidAttr, "set", name)
	}
	if !m.config.Mutable {
		return newMutationError(ErrImmutable, "set", name)
	}
	return m.store.Set(name, value)
}

// Delete removes key from the backing store, failing with a
// LookupError when absent.
func (m *Map) Delete(key any) error {
	if !m.config.Mutable {
		return newMutationError(ErrImmutable, "delete", key)
	}
	return m.store.Delete(key)
}

// DelAttr removes name when the classifier approves it, symmetric to
// SetAttr. With the escape hatch on, rejected names delete from the
// instance-local side map instead.
func (m *Map) DelAttr(name string) error {
	if !ValidAttrKey(name, isReserved) {
		if m.config.allowLocal {
			if _, ok := m.locals[name]; ok {
				delete(m.locals, name)
				return nil
			}
			return newAttrError(ErrAttrNotFound, name, rejectReason(name))
		}
		return newMutationError(ErrInvalidAttr, "delete", name)
	}
	if !m.config.Mutable {
		return newMutationError(ErrImmutable, "delete", name)
	}
	if err := m.store.Delete(name); err != nil {
		return newAttrError(ErrAttrNotFound, name, "")
	}
	return nil
}

// Len returns the number of entries.
func (m *Map) Len() int { return m.store.Len() }

// Contains reports whether key is present.
func (m *Map) Contains(key any) bool {
	_, ok := m.store.Get(key)
	return ok
}

// Keys returns every key in store order.
func (m *Map) Keys() []any { return m.store.Keys() }

// Values returns every value in store order, wrapped.
func (m *Map) Values() []any {
	keys := m.store.Keys()
	values := make([]any, 0, len(keys))
	for _, k := range keys {
		if v, ok := m.store.Get(k); ok {
			values = append(values, wrapValue(v, m.config))
		}
	}
	return values
}

// Items returns every entry in store order with wrapped values.
func (m *Map) Items() []Item {
	keys := m.store.Keys()
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		if v, ok := m.store.Get(k); ok {
			items = append(items, Item{Key: k, Value: wrapValue(v, m.config)})
		}
	}
	return items
}

// All iterates entries in store order, wrapping each value lazily.
func (m *Map) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for _, k := range m.store.Keys() {
			v, ok := m.store.Get(k)
			if !ok {
				continue
			}
			if !yield(k, wrapValue(v, m.config)) {
				return
			}
		}
	}
}

// Equal reports content equality against another *Map or a raw Go
// mapping: same key set, per-key value equality. Iteration order and
// configuration are ignored, and numeric values compare loosely across
// integer and float representations.
func (m *Map) Equal(other any) bool {
	return equalValue(m, other)
}

// Copy returns a shallow copy backed by a fresh store of the same
// kind; values are shared with the original.
func (m *Map) Copy() *Map {
	return &Map{store: m.store.Copy(), config: m.config}
}

// DeepCopy returns a fully isolated copy: nested mappings and
// sequences are cloned recursively.
func (m *Map) DeepCopy() *Map {
	st := newStore(m.config.Store)
	for _, it := range storeItems(m.store) {
		_ = st.Set(it.Key, deepCopyValue(it.Value))
	}
	return &Map{store: st, config: m.config}
}

// Freeze returns an immutable view sharing this Map's backing store.
// Reads are unaffected; writes and deletes fail with ErrImmutable.
func (m *Map) Freeze() *Map {
	cfg := m.config
	cfg.Mutable = false
	return &Map{store: m.store, config: cfg}
}

// Update merges entries from src (a *Map, raw Go mapping, or []Item)
// into m in place, right-wins, without recursing into nested mappings.
func (m *Map) Update(src any) error {
	if !m.config.Mutable {
		return newMutationError(ErrImmutable, "update", nil)
	}
	items, err := sourceItems(src)
	if err != nil {
		return err
	}
	for _, it := range items {
		if err := m.store.Set(it.Key, it.Value); err != nil {
			return err
		}
	}
	return nil
}

// SetDefault returns the wrapped value at key, storing and returning
// def when the key is absent.
func (m *Map) SetDefault(key, def any) (any, error) {
	if v, ok := m.store.Get(key); ok {
		return wrapValue(v, m.config), nil
	}
	if !m.config.Mutable {
		return nil, newMutationError(ErrImmutable, "set", key)
	}
	if err := m.store.Set(key, def); err != nil {
		return nil, err
	}
	return wrapValue(def, m.config), nil
}

// Pop removes key and returns its raw value, or the optional default
// when absent. Absence without a default is a LookupError.
func (m *Map) Pop(key any, def ...any) (any, error) {
	v, ok := m.store.Get(key)
	if !ok {
		if len(def) > 0 {
			return def[0], nil
		}
		return nil, newLookupError(key)
	}
	if !m.config.Mutable {
		return nil, newMutationError(ErrImmutable, "pop", key)
	}
	if err := m.store.Delete(key); err != nil {
		return nil, err
	}
	return v, nil
}

// PopItem removes and returns the last entry in store order.
func (m *Map) PopItem() (Item, error) {
	if !m.config.Mutable {
		return Item{}, newMutationError(ErrImmutable, "pop", nil)
	}
	keys := m.store.Keys()
	if len(keys) == 0 {
		return Item{}, newLookupError(nil)
	}
	key := keys[len(keys)-1]
	v, _ := m.store.Get(key)
	if err := m.store.Delete(key); err != nil {
		return Item{}, err
	}
	return Item{Key: key, Value: v}, nil
}

// Clear removes every entry.
func (m *Map) Clear() error {
	if !m.config.Mutable {
		return newMutationError(ErrImmutable, "clear", nil)
	}
	for _, k := range m.store.Keys() {
		if err := m.store.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

// String renders entries in store order, for debugging.
func (m *Map) String() string {
	var b strings.Builder
	b.WriteString("Map{")
	for i, it := range storeItems(m.store) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v: %v", it.Key, it.Value)
	}
	b.WriteString("}")
	return b.String()
}

// sourceItems snapshots a mapping-like source as raw items.
func sourceItems(src any) ([]Item, error) {
	switch s := src.(type) {
	case nil:
		return nil, nil
	case *Map:
		return storeItems(s.store), nil
	case []Item:
		return s, nil
	}
	if view, ok := asView(src); ok {
		keys := view.rawKeys()
		sortKeys(keys)
		items := make([]Item, 0, len(keys))
		for _, k := range keys {
			if v, ok := view.get(k); ok {
				items = append(items, Item{Key: k, Value: v})
			}
		}
		return items, nil
	}
	return nil, newMutationError(ErrNotMapping, "update", fmt.Sprintf("%T", src))
}

// asMapping adapts a value to a Store for comparison and merging:
// Maps expose their backing store, raw Go maps get an unordered view.
func asMapping(v any) (Store, bool) {
	if m, ok := v.(*Map); ok {
		return m.store, true
	}
	if view, ok := asView(v); ok {
		return &hashStore{view: view}, true
	}
	return nil, false
}

// equalValue implements recursive content equality: mappings by key
// set, sequences elementwise, numbers by value, everything else by
// reflect.DeepEqual.
func equalValue(a, b any) bool {
	if am, ok := asMapping(a); ok {
		bm, ok := asMapping(b)
		if !ok {
			return false
		}
		if am.Len() != bm.Len() {
			return false
		}
		for _, k := range am.Keys() {
			bv, ok := bm.Get(k)
			if !ok {
				return false
			}
			av, _ := am.Get(k)
			if !equalValue(av, bv) {
				return false
			}
		}
		return true
	}
	if as, ok := asSequence(a); ok {
		bs, ok := asSequence(b)
		if !ok {
			return false
		}
		if len(as) != len(bs) {
			return false
		}
		for i := range as {
			if !equalValue(as[i], bs[i]) {
				return false
			}
		}
		return true
	}
	if an, ok := asNumber(a); ok {
		bn, ok := asNumber(b)
		return ok && an == bn
	}
	return reflect.DeepEqual(a, b)
}

// asSequence flattens sequence values ([]any, Tuple, other slices and
// arrays) for comparison. Strings and byte slices are not sequences.
func asSequence(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return s, true
	case Tuple:
		return s, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asNumber converts any integer or float value to float64 so codec
// round-trips (JSON float64, CBOR uint64) compare equal.
func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// deepCopyValue clones nested mappings and sequences recursively,
// preserving concrete Go types where it can.
func deepCopyValue(v any) any {
	if m, ok := v.(*Map); ok {
		return m.DeepCopy()
	}
	switch v.(type) {
	case nil, string, []byte:
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		it := rv.MapRange()
		for it.Next() {
			cv := deepCopyValue(it.Value().Interface())
			if cv == nil {
				out.SetMapIndex(it.Key(), reflect.Zero(rv.Type().Elem()))
				continue
			}
			out.SetMapIndex(it.Key(), reflect.ValueOf(cv))
		}
		return out.Interface()
	case reflect.Slice:
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			cv := deepCopyValue(rv.Index(i).Interface())
			if cv == nil {
				continue
			}
			out.Index(i).Set(reflect.ValueOf(cv))
		}
		return out.Interface()
	}
	return v
}
