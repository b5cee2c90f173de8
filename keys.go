package attrdict

// hiddenMarker prefixes string keys that are excluded from attribute
// access regardless of their shape. Subscript access is unaffected.
const hiddenMarker = '_'

// ValidAttrKey reports whether key may be accessed attribute-style.
// Only case-sensitive ASCII identifier strings qualify, and then only
// when they do not start with the hidden marker and are not reserved.
// reserved reports name collisions with the proxy surface; nil means
// nothing is reserved. The function is total: any key shape, including
// non-strings, classifies as false rather than failing.
func ValidAttrKey(key any, reserved func(string) bool) bool {
	name, ok := key.(string)
	if !ok {
		return false
	}
	if !identifier(name) {
		return false
	}
	if name[0] == hiddenMarker {
		return false
	}
	if reserved != nil && reserved(name) {
		return false
	}
	return true
}

// identifier reports whether s matches [A-Za-z_][A-Za-z0-9_]*.
// Deliberately ASCII-only: keys outside that alphabet stay reachable
// through Fetch.
func identifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_':
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// rejectReason names why a key failed classification, for AttrError
// messages. Call only after ValidAttrKey returned false.
func rejectReason(key any) string {
	name, ok := key.(string)
	if !ok {
		return "non-string key"
	}
	if !identifier(name) {
		return "not an identifier"
	}
	if name[0] == hiddenMarker {
		return "hidden name"
	}
	return "reserved name"
}
