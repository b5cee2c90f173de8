package attrdict

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// StoreKind identifies a backing store implementation.
type StoreKind string

const (
	// StoreOrdered preserves insertion order across iteration. This is
	// the default.
	StoreOrdered StoreKind = "ordered"

	// StoreHash is a plain Go map with no iteration order guarantee.
	StoreHash StoreKind = "hash"
)

// Item is a single key-value entry.
type Item struct {
	Key   any
	Value any
}

// Store is the mutable key-value store a Map delegates every data
// operation to. A Map owns its Store exclusively; the Store holds the
// only copy of the data.
type Store interface {
	// Kind identifies the store implementation.
	Kind() StoreKind

	// Get returns the raw value at key.
	Get(key any) (any, bool)

	// Set stores value at key. Adding a new key appends it to the
	// iteration order on ordered kinds.
	Set(key, value any) error

	// Delete removes key, reporting a LookupError on absence.
	Delete(key any) error

	// Len returns the number of entries.
	Len() int

	// Keys returns every key in iteration order.
	Keys() []any

	// Copy returns an independent store with the same entries. Values
	// are shared, not cloned.
	Copy() Store
}

// StoreFactory builds an empty store of a kind. Registered factories
// satisfy the construct-from-items contract: New/From fill the empty
// store entry by entry in source order.
type StoreFactory func() Store

var (
	storesMu sync.RWMutex
	stores   = map[StoreKind]StoreFactory{}
)

func init() {
	RegisterStore(StoreOrdered, func() Store { return &orderedStore{view: anyMap{}} })
	RegisterStore(StoreHash, func() Store { return &hashStore{view: anyMap{}} })
}

// RegisterStore makes a store kind available to Map construction and
// recursive wrapping. A nil factory is a programming error and panics
// immediately.
func RegisterStore(kind StoreKind, factory StoreFactory) {
	if factory == nil {
		panic("attrdict: nil store factory for kind " + string(kind))
	}
	storesMu.Lock()
	defer storesMu.Unlock()
	stores[kind] = factory
}

// newStore builds an empty store of the given kind, panicking on
// unregistered kinds. A missing constructor is a construction-contract
// violation, surfaced at the first use of the kind.
func newStore(kind StoreKind) Store {
	storesMu.RLock()
	factory, ok := stores[kind]
	storesMu.RUnlock()
	if !ok {
		panic("attrdict: no store registered for kind " + string(kind))
	}
	return factory()
}

// mapview is the minimal read/write surface over a raw mapping value.
// Views adopt the mapping in place: mutations flow through to it.
type mapview interface {
	get(key any) (any, bool)
	set(key, value any) error
	del(key any)
	length() int
	rawKeys() []any
}

// asView adapts a raw Go mapping to a mapview without copying.
func asView(v any) (mapview, bool) {
	switch m := v.(type) {
	case map[string]any:
		return stringMap(m), true
	case map[any]any:
		return anyMap(m), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map {
		return reflectMap{rv: rv}, true
	}
	return nil, false
}

// anyMap views a map[any]any.
type anyMap map[any]any

func (m anyMap) get(key any) (any, bool) {
	if key != nil && !reflect.TypeOf(key).Comparable() {
		return nil, false
	}
	v, ok := m[key]
	return v, ok
}

func (m anyMap) set(key, value any) error {
	if key != nil && !reflect.TypeOf(key).Comparable() {
		return &LookupError{Err: ErrKeyType, Key: key}
	}
	m[key] = value
	return nil
}

func (m anyMap) del(key any) {
	if key != nil && !reflect.TypeOf(key).Comparable() {
		return
	}
	delete(m, key)
}
func (m anyMap) length() int { return len(m) }

func (m anyMap) rawKeys() []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// stringMap views a map[string]any, the common shape of decoded JSON
// and YAML documents.
type stringMap map[string]any

func (m stringMap) get(key any) (any, bool) {
	s, ok := key.(string)
	if !ok {
		return nil, false
	}
	v, ok := m[s]
	return v, ok
}

func (m stringMap) set(key, value any) error {
	s, ok := key.(string)
	if !ok {
		return &LookupError{Err: ErrKeyType, Key: key}
	}
	m[s] = value
	return nil
}

func (m stringMap) del(key any) {
	if s, ok := key.(string); ok {
		delete(m, s)
	}
}

func (m stringMap) length() int { return len(m) }

func (m stringMap) rawKeys() []any {
	keys := make([]any, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// reflectMap views any other Go map kind (map[string]int, bson.M, ...)
// through reflection.
type reflectMap struct {
	rv reflect.Value
}

func (m reflectMap) get(key any) (any, bool) {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() || !kv.Type().AssignableTo(m.rv.Type().Key()) {
		return nil, false
	}
	v := m.rv.MapIndex(kv)
	if !v.IsValid() {
		return nil, false
	}
	return v.Interface(), true
}

func (m reflectMap) set(key, value any) error {
	kv := reflect.ValueOf(key)
	if !kv.IsValid() || !kv.Type().AssignableTo(m.rv.Type().Key()) {
		return &LookupError{Err: ErrKeyType, Key: key}
	}
	elem := m.rv.Type().Elem()
	vv := reflect.ValueOf(value)
	switch {
	case value == nil:
		vv = reflect.Zero(elem)
	case !vv.Type().AssignableTo(elem):
		return &LookupError{Err: ErrValueType, Key: key}
	}
	m.rv.SetMapIndex(kv, vv)
	return nil
}

func (m reflectMap) del(key any) {
	kv := reflect.ValueOf(key)
	if kv.IsValid() && kv.Type().AssignableTo(m.rv.Type().Key()) {
		m.rv.SetMapIndex(kv, reflect.Value{})
	}
}

func (m reflectMap) length() int { return m.rv.Len() }

func (m reflectMap) rawKeys() []any {
	mks := m.rv.MapKeys()
	keys := make([]any, len(mks))
	for i, k := range mks {
		keys[i] = k.Interface()
	}
	return keys
}

// orderedStore is the insertion-ordered concretion: a mapview for the
// data plus a key slice for the order.
type orderedStore struct {
	view mapview
	keys []any
}

func (s *orderedStore) Kind() StoreKind { return StoreOrdered }

func (s *orderedStore) Get(key any) (any, bool) {
	return s.view.get(key)
}

func (s *orderedStore) Set(key, value any) error {
	_, exists := s.view.get(key)
	if err := s.view.set(key, value); err != nil {
		return err
	}
	if !exists {
		s.keys = append(s.keys, key)
	}
	return nil
}

func (s *orderedStore) Delete(key any) error {
	if _, ok := s.view.get(key); !ok {
		return newLookupError(key)
	}
	s.view.del(key)
	for i, k := range s.keys {
		if keysEqual(k, key) {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (s *orderedStore) Len() int { return s.view.length() }

func (s *orderedStore) Keys() []any {
	keys := make([]any, len(s.keys))
	copy(keys, s.keys)
	return keys
}

func (s *orderedStore) Copy() Store {
	view := make(anyMap, s.view.length())
	for _, k := range s.keys {
		if v, ok := s.view.get(k); ok {
			view[k] = v
		}
	}
	return &orderedStore{view: view, keys: s.Keys()}
}

// hashStore is the unordered concretion over a plain Go map.
type hashStore struct {
	view mapview
}

func (s *hashStore) Kind() StoreKind { return StoreHash }

func (s *hashStore) Get(key any) (any, bool) {
	return s.view.get(key)
}

func (s *hashStore) Set(key, value any) error {
	return s.view.set(key, value)
}

func (s *hashStore) Delete(key any) error {
	if _, ok := s.view.get(key); !ok {
		return newLookupError(key)
	}
	s.view.del(key)
	return nil
}

func (s *hashStore) Len() int { return s.view.length() }

func (s *hashStore) Keys() []any { return s.view.rawKeys() }

func (s *hashStore) Copy() Store {
	view := make(anyMap, s.view.length())
	for _, k := range s.view.rawKeys() {
		if v, ok := s.view.get(k); ok {
			view[k] = v
		}
	}
	return &hashStore{view: view}
}

// adoptView builds a store of the given kind sharing the raw mapping
// behind view: no values are copied, mutations flow through. Go maps
// carry no insertion order, so the ordered kind snapshots keys in
// sorted order; keys added later append in insertion order. Custom
// registered kinds cannot share, so they receive a copy of the items.
func adoptView(kind StoreKind, view mapview) Store {
	switch kind {
	case StoreOrdered:
		keys := view.rawKeys()
		sortKeys(keys)
		return &orderedStore{view: view, keys: keys}
	case StoreHash:
		return &hashStore{view: view}
	}
	st := newStore(kind)
	keys := view.rawKeys()
	sortKeys(keys)
	for _, k := range keys {
		if v, ok := view.get(k); ok {
			_ = st.Set(k, v)
		}
	}
	return st
}

// storeItems snapshots a store's entries in iteration order with raw
// values.
func storeItems(s Store) []Item {
	keys := s.Keys()
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		if v, ok := s.Get(k); ok {
			items = append(items, Item{Key: k, Value: v})
		}
	}
	return items
}

// sortKeys orders arbitrary keys deterministically by their printed
// form. Only used when adopting raw Go maps, which have no order of
// their own.
func sortKeys(keys []any) {
	sort.Slice(keys, func(i, j int) bool {
		return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
	})
}

// keysEqual compares keys the way Go map indexing does, guarding
// against panics on incomparable values.
func keysEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !reflect.TypeOf(a).Comparable() || !reflect.TypeOf(b).Comparable() {
		return false
	}
	return a == b
}
