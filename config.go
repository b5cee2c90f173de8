package attrdict

// SequenceKind selects how sequence values found in the mapping are
// rewrapped on read. Use these constants with WithSequence.
type SequenceKind string

const (
	// SequenceTuple rewraps sequences as Tuple, wrapping each element.
	// This is the default.
	SequenceTuple SequenceKind = "tuple"

	// SequenceSlice rewraps sequences as []any, wrapping each element.
	SequenceSlice SequenceKind = "slice"

	// SequenceRaw passes sequences through untouched. Their mapping
	// elements stay unwrapped too: sequence wrapping is all-or-nothing.
	SequenceRaw SequenceKind = "raw"
)

// validSequenceKinds contains all built-in sequence policies.
var validSequenceKinds = map[SequenceKind]bool{
	SequenceTuple: true,
	SequenceSlice: true,
	SequenceRaw:   true,
}

// Config is the immutable per-instance policy of a Map. It is fixed at
// construction and propagated unchanged to every nested Map created
// during recursive access.
type Config struct {
	// Sequence is the rewrap policy for sequence values.
	Sequence SequenceKind

	// Store identifies the backing store kind used for this Map and for
	// every nested Map it wraps.
	Store StoreKind

	// Mutable is false for frozen instances; writes and deletes fail
	// with ErrImmutable while reads are unaffected.
	Mutable bool

	// factory materializes missing keys on read when non-nil. It is the
	// default-value capability; see NewDefault.
	factory func(key any) any

	// allowLocal redirects classifier-rejected attribute writes into an
	// instance-local side map instead of failing. The backing mapping
	// is never touched through that path.
	allowLocal bool
}

// defaultConfig returns the configuration used when no options are
// given: ordered store, tuple sequences, mutable.
func defaultConfig() Config {
	return Config{
		Sequence: SequenceTuple,
		Store:    StoreOrdered,
		Mutable:  true,
	}
}

// same reports whether two configurations describe the same wrapping
// behavior. Factories compare by presence only.
func (c Config) same(other Config) bool {
	return c.Sequence == other.Sequence &&
		c.Store == other.Store &&
		c.Mutable == other.Mutable &&
		(c.factory == nil) == (other.factory == nil)
}

// settings collects everything options may influence at construction.
type settings struct {
	cfg      Config
	storeSet bool
	values   map[string]any
}

// Option configures Map construction.
type Option func(*settings)

// WithSequence sets the sequence rewrap policy. Unknown kinds panic:
// the policy is part of the construction contract, not input data.
func WithSequence(kind SequenceKind) Option {
	if !validSequenceKinds[kind] {
		panic("attrdict: unknown sequence kind " + string(kind))
	}
	return func(s *settings) {
		s.cfg.Sequence = kind
	}
}

// WithStore selects the backing store kind. The kind must be
// registered (see RegisterStore) by the time the Map is built.
func WithStore(kind StoreKind) Option {
	return func(s *settings) {
		s.cfg.Store = kind
		s.storeSet = true
	}
}

// WithFrozen makes the instance immutable: every write or delete fails
// with ErrImmutable and leaves the backing store unchanged.
func WithFrozen() Option {
	return func(s *settings) {
		s.cfg.Mutable = false
	}
}

// WithDefault installs a default factory invoked on read misses. The
// produced value is stored at the missing key and returned wrapped.
func WithDefault(factory func() any) Option {
	return func(s *settings) {
		if factory == nil {
			s.cfg.factory = nil
			return
		}
		s.cfg.factory = func(any) any { return factory() }
	}
}

// WithKeyDefault installs a default factory that receives the missing
// key as its argument.
func WithKeyDefault(factory func(key any) any) Option {
	return func(s *settings) {
		s.cfg.factory = factory
	}
}

// WithAllowInvalidAttrs enables the escape hatch for classifier-
// rejected attribute assignment: such writes land in an instance-local
// side map instead of failing, and never reach the backing store.
func WithAllowInvalidAttrs() Option {
	return func(s *settings) {
		s.cfg.allowLocal = true
	}
}

// WithValues merges the given entries into the Map after the source,
// override-wins-on-conflict. Keys are inserted in sorted order so
// ordered stores stay deterministic.
func WithValues(values map[string]any) Option {
	return func(s *settings) {
		if s.values == nil {
			s.values = make(map[string]any, len(values))
		}
		for k, v := range values {
			s.values[k] = v
		}
	}
}
