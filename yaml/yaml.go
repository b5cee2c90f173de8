// Package yaml provides a YAML snapshot codec.
package yaml

import (
	"github.com/brandonscript/attrdict"
	"gopkg.in/yaml.v3"
)

// yamlCodec implements attrdict.Codec for YAML.
type yamlCodec struct{}

// New returns a YAML codec.
func New() attrdict.Codec {
	return &yamlCodec{}
}

// ContentType returns the MIME type for YAML.
func (c *yamlCodec) ContentType() string {
	return "application/yaml"
}

// Marshal encodes a snapshot as YAML.
func (c *yamlCodec) Marshal(s attrdict.State) ([]byte, error) {
	return yaml.Marshal(s)
}

// Unmarshal decodes YAML data into a snapshot.
func (c *yamlCodec) Unmarshal(data []byte, s *attrdict.State) error {
	return yaml.Unmarshal(data, s)
}
