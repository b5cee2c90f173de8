// Package msgpack provides a MessagePack snapshot codec.
package msgpack

import (
	"github.com/brandonscript/attrdict"
	"github.com/vmihailenco/msgpack/v5"
)

// msgpackCodec implements attrdict.Codec for MessagePack.
type msgpackCodec struct{}

// New returns a MessagePack codec.
func New() attrdict.Codec {
	return &msgpackCodec{}
}

// ContentType returns the MIME type for MessagePack.
func (c *msgpackCodec) ContentType() string {
	return "application/msgpack"
}

// Marshal encodes a snapshot as MessagePack.
func (c *msgpackCodec) Marshal(s attrdict.State) ([]byte, error) {
	return msgpack.Marshal(s)
}

// Unmarshal decodes MessagePack data into a snapshot.
func (c *msgpackCodec) Unmarshal(data []byte, s *attrdict.State) error {
	return msgpack.Unmarshal(data, s)
}
