package attrdict

import (
	"reflect"
	"sync"
)

// internalSlots are the names of Map's own state, reserved alongside
// the method set so keys cannot masquerade as internals.
var internalSlots = []string{"store", "config", "locals"}

// reservedNames is the set of identifiers already bound on the proxy
// type. Computed once from Map's exported method set; a key equal to
// any of these cannot be used attribute-style but stays valid for
// subscript access.
var reservedNames = sync.OnceValue(func() map[string]struct{} {
	names := make(map[string]struct{})
	for _, slot := range internalSlots {
		names[slot] = struct{}{}
	}

	t := reflect.TypeOf((*Map)(nil))
	for i := 0; i < t.NumMethod(); i++ {
		names[t.Method(i).Name] = struct{}{}
	}
	return names
})

// isReserved reports whether name collides with the proxy surface.
func isReserved(name string) bool {
	_, ok := reservedNames()[name]
	return ok
}
