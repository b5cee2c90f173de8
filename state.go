package attrdict

import (
	"fmt"
	"math"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// State is the complete serializable form of a Map: the backing items
// in store order with proxy wrappers stripped, plus the configuration.
// Nothing else exists to serialize. Default factories and the
// invalid-attribute escape hatch are code, not data; re-attach them
// with options on FromState.
type State struct {
	Store    StoreKind    `json:"store" yaml:"store" msgpack:"store" bson:"store" cbor:"store"`
	Sequence SequenceKind `json:"sequence" yaml:"sequence" msgpack:"sequence" bson:"sequence" cbor:"sequence"`
	Frozen   bool         `json:"frozen,omitempty" yaml:"frozen,omitempty" msgpack:"frozen,omitempty" bson:"frozen,omitempty" cbor:"frozen,omitempty"`
	Keys     []any        `json:"keys" yaml:"keys" msgpack:"keys" bson:"keys" cbor:"keys"`
	Values   []any        `json:"values" yaml:"values" msgpack:"values" bson:"values" cbor:"values"`
}

// State returns the snapshot of m. Values come out raw: any Map or
// Tuple a caller stored is exported back to plain maps and slices so
// the serialized form carries no wrapper types.
func (m *Map) State() State {
	items := storeItems(m.store)
	s := State{
		Store:    m.config.Store,
		Sequence: m.config.Sequence,
		Frozen:   !m.config.Mutable,
		Keys:     make([]any, 0, len(items)),
		Values:   make([]any, 0, len(items)),
	}
	for _, it := range items {
		s.Keys = append(s.Keys, exportValue(it.Key))
		s.Values = append(s.Values, exportValue(it.Value))
	}
	return s
}

// FromState reconstructs an equivalent Map from a snapshot without
// replaying constructor merge logic. Options may re-attach
// non-serializable configuration; they cannot change the snapshot's
// store or sequence kinds.
func FromState(s State, opts ...Option) (*Map, error) {
	if len(s.Keys) != len(s.Values) {
		err := newCodecError(ErrUnmarshal, fmt.Errorf("%d keys, %d values", len(s.Keys), len(s.Values)))
		emitStateRestored(Config{Store: s.Store, Sequence: s.Sequence}, 0, err)
		return nil, err
	}

	set := settings{cfg: defaultConfig()}
	for _, opt := range opts {
		opt(&set)
	}
	set.cfg.Store = s.Store
	set.cfg.Sequence = s.Sequence
	set.cfg.Mutable = !s.Frozen
	if set.cfg.Store == "" {
		set.cfg.Store = StoreOrdered
	}
	if set.cfg.Sequence == "" {
		set.cfg.Sequence = SequenceTuple
	}

	st := newStore(set.cfg.Store)
	for i := range s.Keys {
		if err := st.Set(normalizeKey(s.Keys[i]), s.Values[i]); err != nil {
			emitStateRestored(set.cfg, 0, err)
			return nil, err
		}
	}

	m := &Map{store: st, config: set.cfg}
	emitStateRestored(m.config, m.Len(), nil)
	return m, nil
}

// MarshalBinary serializes the snapshot with deterministic CBOR.
func (m *Map) MarshalBinary() ([]byte, error) {
	data, err := binaryEncMode.Marshal(m.State())
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// UnmarshalBinary reconstructs m from MarshalBinary output, replacing
// any existing content and configuration.
func (m *Map) UnmarshalBinary(data []byte) error {
	var s State
	if err := binaryDecMode.Unmarshal(data, &s); err != nil {
		return newCodecError(ErrUnmarshal, err)
	}
	built, err := FromState(s)
	if err != nil {
		return err
	}
	*m = *built
	return nil
}

// binaryEncMode encodes with Core Deterministic Encoding (RFC 8949
// §4.2) so the same snapshot always produces identical bytes.
var binaryEncMode cbor.EncMode

// binaryDecMode decodes standard CBOR, mapping any-typed targets to
// map[string]any rather than CBOR's map[any]any default.
var binaryDecMode cbor.DecMode

func init() {
	var err error
	binaryEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("attrdict: CBOR encoder initialization failed: " + err.Error())
	}
	binaryDecMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("attrdict: CBOR decoder initialization failed: " + err.Error())
	}
}

// exportValue strips wrapper types from a value recursively: a *Map
// becomes a plain map, a Tuple or wrapped slice becomes []any. Raw
// mappings are rebuilt through exportMapping so string-keyed content
// always exports as map[string]any, which the JSON and BSON codecs can
// marshal; merge produces map[any]any internally and would otherwise
// leak it into the snapshot. Scalars pass through untouched.
func exportValue(v any) any {
	switch val := v.(type) {
	case nil, string, []byte:
		return v
	case *Map:
		return exportMapping(val.store)
	case Tuple:
		return exportSlice(val)
	case []any:
		return exportSlice(val)
	}
	if view, ok := asView(v); ok {
		return exportMapping(&hashStore{view: view})
	}
	return v
}

// exportMapping snapshots a store as a plain map, string-keyed when
// every key is a string so the common case stays JSON-friendly.
func exportMapping(s Store) any {
	items := storeItems(s)
	stringKeyed := true
	for _, it := range items {
		if _, ok := it.Key.(string); !ok {
			stringKeyed = false
			break
		}
	}
	if stringKeyed {
		out := make(map[string]any, len(items))
		for _, it := range items {
			out[it.Key.(string)] = exportValue(it.Value)
		}
		return out
	}
	out := make(map[any]any, len(items))
	for _, it := range items {
		out[it.Key] = exportValue(it.Value)
	}
	return out
}

// exportSlice exports each element of a sequence.
func exportSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = exportValue(v)
	}
	return out
}

// normalizeKey folds decoded numeric keys to a canonical form so a
// key written as int survives codecs that read it back as float64,
// int64, or uint64.
func normalizeKey(key any) any {
	switch k := key.(type) {
	case float64:
		if k == float64(int64(k)) {
			return int(int64(k))
		}
	case int64:
		return int(k)
	case uint64:
		if k <= math.MaxInt64 {
			return int(k)
		}
	case int:
		return k
	}
	return key
}
