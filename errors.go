package attrdict

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrKeyNotFound indicates a subscript lookup missed.
	ErrKeyNotFound = errors.New("key not found")

	// ErrAttrNotFound indicates an attribute-style lookup missed, either
	// because the key is absent or because the classifier rejected it.
	ErrAttrNotFound = errors.New("attribute not found")

	// ErrInvalidAttr indicates an attribute-style write or delete on a
	// name the classifier rejects.
	ErrInvalidAttr = errors.New("invalid attribute")

	// ErrImmutable indicates a write or delete on a frozen mapping.
	ErrImmutable = errors.New("mapping is frozen")

	// ErrNotMapping indicates a merge or construction operand that is
	// neither a Map nor a raw Go mapping.
	ErrNotMapping = errors.New("not a mapping")

	// ErrKeyType indicates a key the backing store cannot hold.
	ErrKeyType = errors.New("key type not supported by store")

	// ErrValueType indicates a value the backing store cannot hold.
	ErrValueType = errors.New("value type not supported by store")

	// ErrMarshal indicates the codec failed to marshal a snapshot.
	ErrMarshal = errors.New("marshal failed")

	// ErrUnmarshal indicates the codec failed to unmarshal a snapshot.
	ErrUnmarshal = errors.New("unmarshal failed")
)

// LookupError reports a failed subscript operation.
// It wraps a sentinel error with the key that triggered it.
type LookupError struct {
	Err error // Underlying sentinel error (ErrKeyNotFound, ErrKeyType, ...)
	Key any   // Key that triggered the error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s: %v", e.Err.Error(), e.Key)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// AttrError reports a failed attribute-style read or delete.
// Reason distinguishes classifier rejections from plain misses.
type AttrError struct {
	Err    error  // Underlying sentinel error (ErrAttrNotFound, ...)
	Name   string // Attribute name
	Reason string // Why the access failed (hidden name, reserved name, ...)
}

func (e *AttrError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Name, e.Reason)
	}
	return fmt.Sprintf("%s: %s", e.Err.Error(), e.Name)
}

func (e *AttrError) Unwrap() error {
	return e.Err
}

// MutationError reports a rejected write, delete, or merge.
type MutationError struct {
	Err error  // Underlying sentinel error (ErrImmutable, ErrInvalidAttr, ErrNotMapping)
	Op  string // Operation that was rejected (set, delete, merge, ...)
	Key any    // Key or operand description
}

func (e *MutationError) Error() string {
	if e.Key != nil {
		return fmt.Sprintf("%s %v: %s", e.Op, e.Key, e.Err.Error())
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Err.Error())
}

func (e *MutationError) Unwrap() error {
	return e.Err
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newLookupError creates a LookupError for a missing key.
func newLookupError(key any) error {
	return &LookupError{Err: ErrKeyNotFound, Key: key}
}

// newAttrError creates an AttrError with an optional rejection reason.
func newAttrError(sentinel error, name, reason string) error {
	return &AttrError{Err: sentinel, Name: name, Reason: reason}
}

// newMutationError creates a MutationError for a rejected mutation.
func newMutationError(sentinel error, op string, key any) error {
	return &MutationError{Err: sentinel, Op: op, Key: key}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{Err: sentinel, Cause: cause}
}
