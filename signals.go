package attrdict

import (
	"context"
	"fmt"

	"github.com/zoobzio/capitan"
)

// Signals for mapping lifecycle events.
var (
	SignalMapCreated     = capitan.NewSignal("attrdict.map.created", "Map instantiated")
	SignalMapMerged      = capitan.NewSignal("attrdict.map.merged", "Merge produced a new Map")
	SignalDefaultApplied = capitan.NewSignal("attrdict.default.applied", "Default factory materialized a missing key")
	SignalStateRestored  = capitan.NewSignal("attrdict.state.restored", "Map reconstructed from a snapshot")
)

// Keys for typed event data.
var (
	KeyStoreKind    = capitan.NewStringKey("store_kind")
	KeySequenceKind = capitan.NewStringKey("sequence_kind")
	KeySize         = capitan.NewIntKey("size")
	KeyEntry        = capitan.NewStringKey("key")
	KeyError        = capitan.NewErrorKey("error")
)

// emitMapCreated emits an event when a Map is constructed.
func emitMapCreated(cfg Config, size int) {
	capitan.Emit(context.Background(), SignalMapCreated,
		KeyStoreKind.Field(string(cfg.Store)),
		KeySequenceKind.Field(string(cfg.Sequence)),
		KeySize.Field(size),
	)
}

// emitMapMerged emits an event when a merge produces a new Map.
func emitMapMerged(cfg Config, size int) {
	capitan.Emit(context.Background(), SignalMapMerged,
		KeyStoreKind.Field(string(cfg.Store)),
		KeySequenceKind.Field(string(cfg.Sequence)),
		KeySize.Field(size),
	)
}

// emitDefaultApplied emits an event when a default factory fills in a
// missing key.
func emitDefaultApplied(cfg Config, key any) {
	capitan.Emit(context.Background(), SignalDefaultApplied,
		KeyStoreKind.Field(string(cfg.Store)),
		KeyEntry.Field(keyLabel(key)),
	)
}

// emitStateRestored emits an event when a Map is rebuilt from a
// snapshot.
func emitStateRestored(cfg Config, size int, err error) {
	fields := []capitan.Field{
		KeyStoreKind.Field(string(cfg.Store)),
		KeySequenceKind.Field(string(cfg.Sequence)),
		KeySize.Field(size),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(context.Background(), SignalStateRestored, fields...)
		return
	}
	capitan.Emit(context.Background(), SignalStateRestored, fields...)
}

// keyLabel renders a key for event fields.
func keyLabel(key any) string {
	return fmt.Sprint(key)
}
