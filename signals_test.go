package attrdict

import (
	"errors"
	"testing"
)

func TestEmitMapCreated(_ *testing.T) {
	emitMapCreated(defaultConfig(), 0)
}

func TestEmitMapMerged(_ *testing.T) {
	emitMapMerged(defaultConfig(), 3)
}

func TestEmitDefaultApplied(_ *testing.T) {
	emitDefaultApplied(defaultConfig(), "some_key")
	emitDefaultApplied(defaultConfig(), 42)
	emitDefaultApplied(defaultConfig(), nil)
}

func TestEmitStateRestored_Success(_ *testing.T) {
	emitStateRestored(defaultConfig(), 1, nil)
}

func TestEmitStateRestored_Error(_ *testing.T) {
	emitStateRestored(defaultConfig(), 0, errors.New("test error"))
}

func TestSignalVariables(t *testing.T) {
	// Verify signals are properly initialized
	signals := []struct {
		name   string
		signal interface{}
	}{
		{"SignalMapCreated", SignalMapCreated},
		{"SignalMapMerged", SignalMapMerged},
		{"SignalDefaultApplied", SignalDefaultApplied},
		{"SignalStateRestored", SignalStateRestored},
	}

	for _, s := range signals {
		if s.signal == nil {
			t.Errorf("%s is nil", s.name)
		}
	}
}

func TestKeyVariables(t *testing.T) {
	// Verify keys are properly initialized
	keys := []struct {
		name string
		key  interface{}
	}{
		{"KeyStoreKind", KeyStoreKind},
		{"KeySequenceKind", KeySequenceKind},
		{"KeySize", KeySize},
		{"KeyEntry", KeyEntry},
		{"KeyError", KeyError},
	}

	for _, k := range keys {
		if k.key == nil {
			t.Errorf("%s is nil", k.name)
		}
	}
}

func TestKeyLabel(t *testing.T) {
	tests := []struct {
		key  any
		want string
	}{
		{"name", "name"},
		{7, "7"},
		{nil, "<nil>"},
	}
	for _, tt := range tests {
		if got := keyLabel(tt.key); got != tt.want {
			t.Errorf("keyLabel(%v) = %q, want %q", tt.key, got, tt.want)
		}
	}
}
