// Package bson provides a BSON snapshot codec.
package bson

import (
	"reflect"

	"github.com/brandonscript/attrdict"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// registry decodes embedded documents as bson.M instead of the
// driver's ordered bson.D, so nested snapshot values come back as
// plain mappings.
var registry *bsoncodec.Registry

func init() {
	registry = bson.NewRegistry()
	registry.RegisterTypeMapEntry(bsontype.EmbeddedDocument, reflect.TypeOf(bson.M{}))
}

// bsonCodec implements attrdict.Codec for BSON.
type bsonCodec struct{}

// New returns a BSON codec.
func New() attrdict.Codec {
	return &bsonCodec{}
}

// ContentType returns the MIME type for BSON.
func (c *bsonCodec) ContentType() string {
	return "application/bson"
}

// Marshal encodes a snapshot as BSON.
func (c *bsonCodec) Marshal(s attrdict.State) ([]byte, error) {
	return bson.Marshal(s)
}

// Unmarshal decodes BSON data into a snapshot.
func (c *bsonCodec) Unmarshal(data []byte, s *attrdict.State) error {
	return bson.UnmarshalWithRegistry(registry, data, s)
}
