// Package json provides a JSON snapshot codec.
package json

import (
	"encoding/json"

	"github.com/brandonscript/attrdict"
	"github.com/tidwall/jsonc"
)

// jsonCodec implements attrdict.Codec for JSON.
type jsonCodec struct {
	lenient bool
}

// New returns a strict JSON codec.
func New() attrdict.Codec {
	return &jsonCodec{}
}

// NewLenient returns a JSON codec that additionally accepts comments
// and trailing commas on input. Output is always strict JSON.
func NewLenient() attrdict.Codec {
	return &jsonCodec{lenient: true}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes a snapshot as JSON.
func (c *jsonCodec) Marshal(s attrdict.State) ([]byte, error) {
	return json.Marshal(s)
}

// Unmarshal decodes JSON data into a snapshot.
func (c *jsonCodec) Unmarshal(data []byte, s *attrdict.State) error {
	if c.lenient {
		data = jsonc.ToJSON(data)
	}
	return json.Unmarshal(data, s)
}
