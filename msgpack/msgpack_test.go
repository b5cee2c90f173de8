package msgpack

import (
	"testing"

	"github.com/brandonscript/attrdict"
)

func TestNew(t *testing.T) {
	if New() == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	if got := New().ContentType(); got != "application/msgpack" {
		t.Errorf("ContentType() = %q, want application/msgpack", got)
	}
}

func TestRoundTrip(t *testing.T) {
	m, err := attrdict.From([]attrdict.Item{
		{Key: "name", Value: "thing"},
		{Key: "count", Value: 3},
		{Key: "nested", Value: map[string]any{"on": true}},
	})
	if err != nil {
		t.Fatalf("From() error: %v", err)
	}

	data, err := attrdict.Encode(New(), m)
	if err != nil {
		t.Fatalf("Encode() error: %v", err)
	}

	back, err := attrdict.Decode(New(), data)
	if err != nil {
		t.Fatalf("Decode() error: %v", err)
	}
	if !m.Equal(back) {
		t.Errorf("round-trip changed content: %v vs %v", m, back)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	var s attrdict.State
	if err := New().Unmarshal([]byte{0xc1}, &s); err == nil {
		t.Error("Unmarshal(invalid) should return error")
	}
}
