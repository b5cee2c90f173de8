// Package cbor provides a CBOR snapshot codec with deterministic
// encoding.
package cbor

import (
	"reflect"

	"github.com/brandonscript/attrdict"
	"github.com/fxamacker/cbor/v2"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("cbor: encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("cbor: decoder initialization failed: " + err.Error())
	}
}

// cborCodec implements attrdict.Codec for CBOR.
type cborCodec struct{}

// New returns a CBOR codec.
func New() attrdict.Codec {
	return &cborCodec{}
}

// ContentType returns the MIME type for CBOR.
func (c *cborCodec) ContentType() string {
	return "application/cbor"
}

// Marshal encodes a snapshot as deterministic CBOR.
func (c *cborCodec) Marshal(s attrdict.State) ([]byte, error) {
	return encMode.Marshal(s)
}

// Unmarshal decodes CBOR data into a snapshot.
func (c *cborCodec) Unmarshal(data []byte, s *attrdict.State) error {
	return decMode.Unmarshal(data, s)
}
