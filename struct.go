package attrdict

import (
	"encoding"
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

func init() {
	sentinel.Tag("attr")
}

// FromStruct builds a Map from a struct's exported fields. Field names
// become keys; an `attr:"name"` tag renames a field and `attr:"-"`
// omits it. Nested structs flatten to nested mappings unless they
// marshal themselves as text. Pointers dereference, nil pointers store
// nil. Non-struct values fail with ErrNotMapping.
func FromStruct[T any](v T, opts ...Option) (*Map, error) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, newMutationError(ErrNotMapping, "scan", fmt.Sprintf("%T", v))
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() || rv.Kind() != reflect.Struct {
		return nil, newMutationError(ErrNotMapping, "scan", fmt.Sprintf("%T", v))
	}

	var items []Item
	if reflect.TypeFor[T]().Kind() == reflect.Struct {
		spec := sentinel.Scan[T]()
		items = metadataItems(spec, rv)
	} else {
		items = structItems(rv)
	}
	return From(items, opts...)
}

// metadataItems extracts items from a scanned struct using cached
// field metadata.
func metadataItems(spec sentinel.Metadata, rv reflect.Value) []Item {
	items := make([]Item, 0, len(spec.Fields))
	for _, field := range spec.Fields {
		if field.Name == "" || field.Name[0] < 'A' || field.Name[0] > 'Z' {
			continue
		}
		name := field.Name
		if tag, ok := field.Tags["attr"]; ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		items = append(items, Item{Key: name, Value: fieldValue(rv.FieldByIndex(field.Index))})
	}
	return items
}

// structItems extracts items by walking struct fields directly, for
// types reached through interfaces or nesting where no scan metadata
// exists.
func structItems(rv reflect.Value) []Item {
	rt := rv.Type()
	items := make([]Item, 0, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.PkgPath != "" {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("attr"); ok {
			if tag == "-" {
				continue
			}
			if tag != "" {
				name = tag
			}
		}
		items = append(items, Item{Key: name, Value: fieldValue(rv.Field(i))})
	}
	return items
}

// fieldValue converts a field to a storable value. Nested structs
// become plain mappings so reads wrap them, except types that marshal
// themselves as text, which stay whole.
func fieldValue(fv reflect.Value) any {
	for fv.Kind() == reflect.Pointer {
		if fv.IsNil() {
			return nil
		}
		fv = fv.Elem()
	}
	if fv.Kind() != reflect.Struct {
		return fv.Interface()
	}
	if _, ok := fv.Interface().(encoding.TextMarshaler); ok {
		return fv.Interface()
	}
	nested := structItems(fv)
	out := make(map[string]any, len(nested))
	for _, it := range nested {
		out[it.Key.(string)] = it.Value
	}
	return out
}
