package attrdict

// Codec converts a State snapshot to and from a wire format. Format
// packages under this module each provide a Codec; callers may supply
// their own for formats not shipped here.
type Codec interface {
	// ContentType reports the MIME type the codec produces.
	ContentType() string

	// Marshal serializes a snapshot.
	Marshal(s State) ([]byte, error)

	// Unmarshal deserializes data into a snapshot.
	Unmarshal(data []byte, s *State) error
}

// Encode serializes m with the given codec.
func Encode(c Codec, m *Map) ([]byte, error) {
	data, err := c.Marshal(m.State())
	if err != nil {
		return nil, newCodecError(ErrMarshal, err)
	}
	return data, nil
}

// Decode reconstructs a Map from codec output. Options re-attach
// non-serializable configuration such as default factories.
func Decode(c Codec, data []byte, opts ...Option) (*Map, error) {
	var s State
	if err := c.Unmarshal(data, &s); err != nil {
		return nil, newCodecError(ErrUnmarshal, err)
	}
	return FromState(s, opts...)
}
