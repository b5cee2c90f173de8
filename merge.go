package attrdict

import "fmt"

// Merge returns a new Map of m's kind and configuration containing
// every key from both operands. Keys present on both sides with
// mapping values on both sides deep-merge recursively; for every other
// conflict the right operand wins. Non-mapping operands fail with
// ErrNotMapping. Neither operand is mutated; merged nested mappings
// are freshly allocated.
func (m *Map) Merge(other any) (*Map, error) {
	om, ok := asMapping(other)
	if !ok {
		return nil, newMutationError(ErrNotMapping, "merge", fmt.Sprintf("%T", other))
	}

	st := newStore(m.config.Store)
	for _, it := range storeItems(m.store) {
		if err := st.Set(it.Key, it.Value); err != nil {
			return nil, err
		}
	}
	for _, it := range mergeItems(om) {
		if cur, ok := st.Get(it.Key); ok {
			lm, lok := asMapping(cur)
			rm, rok := asMapping(it.Value)
			if lok && rok {
				if err := st.Set(it.Key, deepMerge(lm, rm)); err != nil {
					return nil, err
				}
				continue
			}
		}
		if err := st.Set(it.Key, it.Value); err != nil {
			return nil, err
		}
	}

	out := &Map{store: st, config: m.config}
	emitMapMerged(out.config, out.Len())
	return out, nil
}

// Merge combines two mapping operands; either side may be a *Map or a
// raw Go mapping, and the result adopts the left operand's kind and
// configuration when the left is a *Map, otherwise the right's. A
// non-mapping on either side fails with ErrNotMapping, regardless of
// which side it is on.
func Merge(left, right any) (*Map, error) {
	if lm, ok := left.(*Map); ok {
		return lm.Merge(right)
	}
	rm, ok := right.(*Map)
	if !ok {
		return nil, newMutationError(ErrNotMapping, "merge", fmt.Sprintf("%T + %T", left, right))
	}
	if _, ok := asMapping(left); !ok {
		return nil, newMutationError(ErrNotMapping, "merge", fmt.Sprintf("%T", left))
	}
	base, err := From(left, WithStore(rm.store.Kind()), WithSequence(rm.config.Sequence))
	if err != nil {
		return nil, err
	}
	base.config = rm.config
	return base.Merge(right)
}

// mergeItems snapshots the right operand in deterministic order:
// store order for ordered stores, sorted otherwise.
func mergeItems(s Store) []Item {
	if s.Kind() == StoreOrdered {
		return storeItems(s)
	}
	keys := s.Keys()
	sortKeys(keys)
	items := make([]Item, 0, len(keys))
	for _, k := range keys {
		if v, ok := s.Get(k); ok {
			items = append(items, Item{Key: k, Value: v})
		}
	}
	return items
}

// deepMerge unifies two mapping values into a fresh raw map, right
// wins per leaf.
func deepMerge(left, right Store) map[any]any {
	out := make(map[any]any, left.Len()+right.Len())
	for _, it := range storeItems(left) {
		out[it.Key] = it.Value
	}
	for _, it := range mergeItems(right) {
		if cur, ok := out[it.Key]; ok {
			lm, lok := asMapping(cur)
			rm, rok := asMapping(it.Value)
			if lok && rok {
				out[it.Key] = deepMerge(lm, rm)
				continue
			}
		}
		out[it.Key] = it.Value
	}
	return out
}
