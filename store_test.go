package attrdict

import (
	"errors"
	"reflect"
	"testing"
)

func TestOrderedStorePreservesInsertionOrder(t *testing.T) {
	s := newStore(StoreOrdered)
	for _, k := range []string{"c", "a", "b"} {
		if err := s.Set(k, k); err != nil {
			t.Fatalf("Set(%q) error: %v", k, err)
		}
	}

	want := []any{"c", "a", "b"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}

	// Overwriting keeps the original position.
	if err := s.Set("a", 1); err != nil {
		t.Fatalf("Set overwrite error: %v", err)
	}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() after overwrite = %v, want %v", got, want)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if got := s.Keys(); !reflect.DeepEqual(got, []any{"c", "b"}) {
		t.Errorf("Keys() after delete = %v", got)
	}
}

func TestStoreDeleteMissing(t *testing.T) {
	for _, kind := range []StoreKind{StoreOrdered, StoreHash} {
		s := newStore(kind)
		err := s.Delete("nope")
		if !errors.Is(err, ErrKeyNotFound) {
			t.Errorf("%s: Delete(missing) = %v, want ErrKeyNotFound", kind, err)
		}
	}
}

func TestStoreCopyIndependent(t *testing.T) {
	s := newStore(StoreOrdered)
	_ = s.Set("a", 1)
	_ = s.Set("b", 2)

	c := s.Copy()
	if err := c.Set("c", 3); err != nil {
		t.Fatalf("Set on copy error: %v", err)
	}
	if s.Len() != 2 {
		t.Errorf("original Len = %d after mutating copy, want 2", s.Len())
	}
	if c.Len() != 3 {
		t.Errorf("copy Len = %d, want 3", c.Len())
	}
	if got := c.Keys(); !reflect.DeepEqual(got, []any{"a", "b", "c"}) {
		t.Errorf("copy Keys() = %v", got)
	}
}

func TestStoreNonStringKeys(t *testing.T) {
	s := newStore(StoreOrdered)
	if err := s.Set(1, "one"); err != nil {
		t.Fatalf("Set(int) error: %v", err)
	}
	if err := s.Set(Tuple{1, 2}, "pair"); !errors.Is(err, ErrKeyType) {
		t.Errorf("Set(incomparable key) = %v, want ErrKeyType", err)
	}
	if v, ok := s.Get(1); !ok || v != "one" {
		t.Errorf("Get(1) = %v, %v", v, ok)
	}
}

func TestAdoptViewSharesBackingMap(t *testing.T) {
	raw := map[string]any{"b": 2, "a": 1}
	view, ok := asView(raw)
	if !ok {
		t.Fatal("asView(map[string]any) should succeed")
	}

	s := adoptView(StoreOrdered, view)
	if got := s.Keys(); !reflect.DeepEqual(got, []any{"a", "b"}) {
		t.Errorf("adopted Keys() = %v, want sorted [a b]", got)
	}

	// Writes flow through to the original map.
	if err := s.Set("c", 3); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if raw["c"] != 3 {
		t.Error("write through adopted store should reach the raw map")
	}
	if got := s.Keys(); !reflect.DeepEqual(got, []any{"a", "b", "c"}) {
		t.Errorf("Keys() after append = %v", got)
	}
}

func TestReflectMapViewTypes(t *testing.T) {
	raw := map[string]int{"n": 1}
	view, ok := asView(raw)
	if !ok {
		t.Fatal("asView(map[string]int) should succeed")
	}

	if v, ok := view.get("n"); !ok || v != 1 {
		t.Errorf("get(n) = %v, %v", v, ok)
	}
	if _, ok := view.get(42); ok {
		t.Error("get with mismatched key type should miss")
	}
	if err := view.set("n", "text"); !errors.Is(err, ErrValueType) {
		t.Errorf("set(string into map[string]int) = %v, want ErrValueType", err)
	}
	if err := view.set(42, 0); !errors.Is(err, ErrKeyType) {
		t.Errorf("set(int key into map[string]int) = %v, want ErrKeyType", err)
	}
	if err := view.set("m", 2); err != nil {
		t.Fatalf("set(m) error: %v", err)
	}
	if raw["m"] != 2 {
		t.Error("reflect view write should reach the raw map")
	}
}

func TestRegisterStoreCustomKind(t *testing.T) {
	const kind = StoreKind("test-custom")
	RegisterStore(kind, func() Store { return &hashStore{view: anyMap{}} })

	s := newStore(kind)
	if err := s.Set("x", 1); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if v, ok := s.Get("x"); !ok || v != 1 {
		t.Errorf("Get(x) = %v, %v", v, ok)
	}
}

func TestRegisterStoreNilFactoryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("RegisterStore(nil) should panic")
		}
	}()
	RegisterStore("broken", nil)
}

func TestNewStoreUnregisteredPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("newStore(unregistered) should panic")
		}
	}()
	newStore("no-such-kind")
}
