package attrdict

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromSources(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		m, err := From(nil)
		require.NoError(t, err)
		assert.Equal(t, 0, m.Len())
	})

	t.Run("raw string map", func(t *testing.T) {
		m, err := From(map[string]any{"a": 1, "b": 2})
		require.NoError(t, err)
		assert.Equal(t, 2, m.Len())
		assert.Equal(t, 1, m.Get("a"))
	})

	t.Run("typed map", func(t *testing.T) {
		m, err := From(map[string]int{"n": 7})
		require.NoError(t, err)
		assert.Equal(t, 7, m.Get("n"))
	})

	t.Run("item list keeps order", func(t *testing.T) {
		m, err := From([]Item{{"z", 1}, {"a", 2}, {"m", 3}})
		require.NoError(t, err)
		assert.Equal(t, []any{"z", "a", "m"}, m.Keys())
	})

	t.Run("another Map shares the store", func(t *testing.T) {
		src, err := From(map[string]any{"k": "v"})
		require.NoError(t, err)
		m, err := From(src)
		require.NoError(t, err)
		require.NoError(t, m.Set("k2", "v2"))
		assert.Equal(t, "v2", src.Get("k2"))
	})

	t.Run("another Map inherits config", func(t *testing.T) {
		src, err := From(map[string]any{"seq": []any{1}}, WithSequence(SequenceSlice), WithFrozen())
		require.NoError(t, err)

		m, err := From(src)
		require.NoError(t, err)
		assert.Equal(t, SequenceSlice, m.Config().Sequence)
		assert.ErrorIs(t, m.Set("k", 1), ErrImmutable, "frozen source stays frozen through From")

		v, err := m.Index("seq")
		require.NoError(t, err)
		_, isSlice := v.([]any)
		assert.True(t, isSlice, "inherited sequence policy should apply")

		// Options still override the inherited configuration.
		over, err := From(src, WithSequence(SequenceTuple))
		require.NoError(t, err)
		assert.Equal(t, SequenceTuple, over.Config().Sequence)
	})

	t.Run("non-mapping", func(t *testing.T) {
		_, err := From(42)
		assert.ErrorIs(t, err, ErrNotMapping)
	})

	t.Run("with values override", func(t *testing.T) {
		m, err := From(map[string]any{"a": 1}, WithValues(map[string]any{"a": 10, "b": 2}))
		require.NoError(t, err)
		assert.Equal(t, 10, m.Get("a"))
		assert.Equal(t, 2, m.Get("b"))
	})
}

func TestFromKeys(t *testing.T) {
	m, err := FromKeys([]any{"a", "b", "c"}, 0)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b", "c"}, m.Keys())
	assert.Equal(t, 0, m.Get("b"))
}

func TestIndexAccess(t *testing.T) {
	m, err := From(map[string]any{
		"plain":     1,
		"_hidden":   2,
		"Keys":      3,
		"has space": 4,
		"nested":    map[string]any{"in": 5},
	})
	require.NoError(t, err)

	// Subscript reaches everything, classifier not consulted.
	for key, want := range map[string]any{"plain": 1, "_hidden": 2, "Keys": 3, "has space": 4} {
		v, err := m.Index(key)
		require.NoError(t, err, key)
		assert.Equal(t, want, v, key)
	}

	// Nested mappings wrap.
	v, err := m.Index("nested")
	require.NoError(t, err)
	nested, ok := v.(*Map)
	require.True(t, ok, "nested value should wrap as *Map")
	assert.Equal(t, 5, nested.Get("in"))

	_, err = m.Index("missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestAttrAccess(t *testing.T) {
	m, err := From(map[string]any{
		"plain":   "ok",
		"_hidden": "no",
		"Keys":    "no",
	})
	require.NoError(t, err)

	v, err := m.Attr("plain")
	require.NoError(t, err)
	assert.Equal(t, "ok", v)

	// Present keys the classifier rejects are invisible to Attr.
	_, err = m.Attr("_hidden")
	assert.ErrorIs(t, err, ErrAttrNotFound)
	_, err = m.Attr("Keys")
	assert.ErrorIs(t, err, ErrAttrNotFound)
	_, err = m.Attr("absent")
	assert.ErrorIs(t, err, ErrAttrNotFound)
}

func TestFetchAccess(t *testing.T) {
	m, err := From(map[string]any{"_hidden": 1})
	require.NoError(t, err)

	v, err := m.Fetch("_hidden")
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	_, err = m.Fetch("absent")
	assert.ErrorIs(t, err, ErrAttrNotFound)
}

func TestGetNeverFails(t *testing.T) {
	m, err := From(map[string]any{"a": map[string]any{"x": 1}})
	require.NoError(t, err)

	// Raw, unwrapped.
	_, isRaw := m.Get("a").(map[string]any)
	assert.True(t, isRaw, "Get should return the stored value unwrapped")

	assert.Nil(t, m.Get("missing"))
	assert.Equal(t, "fallback", m.Get("missing", "fallback"))
}

func TestResolveDispatch(t *testing.T) {
	m, err := From(map[string]any{"data": 1, "_hidden": 2})
	require.NoError(t, err)

	v, kind := m.Resolve("data")
	assert.Equal(t, MemberData, kind)
	assert.Equal(t, 1, v)

	fn, kind := m.Resolve("Keys")
	assert.Equal(t, MemberMethod, kind)
	keysFn, ok := fn.(func() []any)
	require.True(t, ok, "method member should be a bound func")
	assert.Len(t, keysFn(), 2)

	_, kind = m.Resolve("_hidden")
	assert.Equal(t, MemberRejected, kind)

	_, kind = m.Resolve("absent")
	assert.Equal(t, MemberMissing, kind)

	// Reserved internal slots are not methods and must not tag as one.
	for _, slot := range []string{"store", "config", "locals"} {
		v, kind := m.Resolve(slot)
		assert.Equal(t, MemberRejected, kind, slot)
		assert.Nil(t, v, slot)
	}
}

func TestSetAttrClassifier(t *testing.T) {
	m := New()

	require.NoError(t, m.SetAttr("name", "value"))
	assert.Equal(t, "value", m.Get("name"))

	assert.ErrorIs(t, m.SetAttr("_hidden", 1), ErrInvalidAttr)
	assert.ErrorIs(t, m.SetAttr("Keys", 1), ErrInvalidAttr)
	assert.ErrorIs(t, m.SetAttr("has space", 1), ErrInvalidAttr)
	assert.Equal(t, 1, m.Len(), "rejected writes must not reach the store")

	// Subscript writes bypass the classifier entirely.
	require.NoError(t, m.Set("_hidden", 1))
	require.NoError(t, m.Set("Keys", 2))
	assert.Equal(t, 3, m.Len())
}

func TestInvalidAttrEscapeHatch(t *testing.T) {
	m := New(WithAllowInvalidAttrs())

	require.NoError(t, m.SetAttr("_local", "side"))
	assert.Equal(t, 0, m.Len(), "escape hatch writes stay off the store")

	v, err := m.Attr("_local")
	require.NoError(t, err)
	assert.Equal(t, "side", v)

	// Subscript never sees the side map.
	_, err = m.Index("_local")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, m.DelAttr("_local"))
	_, err = m.Attr("_local")
	assert.ErrorIs(t, err, ErrAttrNotFound)
}

func TestDelAttr(t *testing.T) {
	m, err := From(map[string]any{"a": 1, "_h": 2})
	require.NoError(t, err)

	require.NoError(t, m.DelAttr("a"))
	assert.False(t, m.Contains("a"))

	assert.ErrorIs(t, m.DelAttr("_h"), ErrInvalidAttr)
	assert.True(t, m.Contains("_h"), "hidden key must survive rejected DelAttr")

	assert.ErrorIs(t, m.DelAttr("gone"), ErrAttrNotFound)
}

func TestFreeze(t *testing.T) {
	m, err := From(map[string]any{"a": 1})
	require.NoError(t, err)

	f := m.Freeze()
	assert.ErrorIs(t, f.Set("b", 2), ErrImmutable)
	assert.ErrorIs(t, f.SetAttr("b", 2), ErrImmutable)
	assert.ErrorIs(t, f.Delete("a"), ErrImmutable)
	assert.ErrorIs(t, f.DelAttr("a"), ErrImmutable)
	assert.ErrorIs(t, f.Clear(), ErrImmutable)
	_, err = f.Pop("a")
	assert.ErrorIs(t, err, ErrImmutable)
	assert.Equal(t, 1, f.Len(), "frozen view must be unchanged")

	// Reads still work, and the original stays mutable.
	v, err := f.Index("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	require.NoError(t, m.Set("b", 2))
	assert.True(t, f.Contains("b"), "frozen view shares the store")
}

func TestUpdate(t *testing.T) {
	m, err := From(map[string]any{"a": 1, "keep": true})
	require.NoError(t, err)

	require.NoError(t, m.Update(map[string]any{"a": 10, "b": 2}))
	assert.Equal(t, 10, m.Get("a"))
	assert.Equal(t, 2, m.Get("b"))
	assert.Equal(t, true, m.Get("keep"))

	assert.ErrorIs(t, m.Update("nope"), ErrNotMapping)
}

func TestSetDefault(t *testing.T) {
	m := New()

	v, err := m.SetDefault("a", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = m.SetDefault("a", 99)
	require.NoError(t, err)
	assert.Equal(t, 1, v, "existing value wins")
}

func TestPop(t *testing.T) {
	m, err := From(map[string]any{"a": 1})
	require.NoError(t, err)

	v, err := m.Pop("a")
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.False(t, m.Contains("a"))

	_, err = m.Pop("a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	v, err = m.Pop("a", "dflt")
	require.NoError(t, err)
	assert.Equal(t, "dflt", v)
}

func TestPopItem(t *testing.T) {
	m, err := From([]Item{{"a", 1}, {"b", 2}})
	require.NoError(t, err)

	it, err := m.PopItem()
	require.NoError(t, err)
	assert.Equal(t, Item{Key: "b", Value: 2}, it)

	it, err = m.PopItem()
	require.NoError(t, err)
	assert.Equal(t, Item{Key: "a", Value: 1}, it)

	_, err = m.PopItem()
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestClear(t *testing.T) {
	m, err := From(map[string]any{"a": 1, "b": 2})
	require.NoError(t, err)
	require.NoError(t, m.Clear())
	assert.Equal(t, 0, m.Len())
}

func TestIteration(t *testing.T) {
	m, err := From([]Item{{"a", 1}, {"b", map[string]any{"x": 2}}})
	require.NoError(t, err)

	assert.Equal(t, []any{"a", "b"}, m.Keys())

	values := m.Values()
	require.Len(t, values, 2)
	assert.Equal(t, 1, values[0])
	_, wrapped := values[1].(*Map)
	assert.True(t, wrapped, "iteration values wrap like reads")

	var seen []any
	for k, v := range m.All() {
		seen = append(seen, k)
		if k == "b" {
			_, ok := v.(*Map)
			assert.True(t, ok)
		}
	}
	assert.Equal(t, []any{"a", "b"}, seen)
}

func TestEqual(t *testing.T) {
	a, err := From([]Item{{"x", 1}, {"y", map[string]any{"n": 2}}})
	require.NoError(t, err)
	b, err := From([]Item{{"y", map[string]any{"n": 2}}, {"x", 1}})
	require.NoError(t, err)

	assert.True(t, a.Equal(b), "order must not matter")
	assert.True(t, a.Equal(map[string]any{"x": 1, "y": map[string]any{"n": 2}}))

	// Numbers compare loosely across representations.
	c, err := From(map[string]any{"x": 1.0, "y": map[string]any{"n": int64(2)}})
	require.NoError(t, err)
	assert.True(t, a.Equal(c))

	assert.False(t, a.Equal(map[string]any{"x": 1}))
	assert.False(t, a.Equal("not a mapping"))
}

func TestCopyShallow(t *testing.T) {
	inner := map[string]any{"n": 1}
	m, err := From(map[string]any{"nested": inner, "top": 1})
	require.NoError(t, err)

	c := m.Copy()
	require.NoError(t, c.Set("top", 2))
	assert.Equal(t, 1, m.Get("top"), "copy has its own store")

	// Values are shared: mutating the nested map shows through both.
	inner["n"] = 99
	v, err := c.Index("nested")
	require.NoError(t, err)
	assert.Equal(t, 99, v.(*Map).Get("n"))
}

func TestDeepCopyIsolated(t *testing.T) {
	inner := map[string]any{"n": 1}
	m, err := From(map[string]any{"nested": inner, "seq": []any{map[string]any{"e": 1}}})
	require.NoError(t, err)

	d := m.DeepCopy()
	inner["n"] = 99

	v, err := d.Index("nested")
	require.NoError(t, err)
	assert.Equal(t, 1, v.(*Map).Get("n"), "deep copy must not see source mutations")
}

func TestStringRender(t *testing.T) {
	m, err := From([]Item{{"a", 1}})
	require.NoError(t, err)
	assert.Equal(t, "Map{a: 1}", m.String())
}

func TestHashStoreOption(t *testing.T) {
	m, err := From(map[string]any{"a": 1}, WithStore(StoreHash))
	require.NoError(t, err)
	assert.Equal(t, StoreHash, m.Config().Store)
	assert.Equal(t, 1, m.Get("a"))

	// Nested wraps inherit the kind.
	require.NoError(t, m.Set("nested", map[string]any{"x": 1}))
	v, err := m.Index("nested")
	require.NoError(t, err)
	assert.Equal(t, StoreHash, v.(*Map).Config().Store)
}
