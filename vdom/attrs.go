package vdom

import "reflect"

// sameAttr reports whether two attribute values render the same. Slices,
// maps and funcs cannot be compared with ==, so they go through DeepEqual
// (funcs are never equal unless both nil).
func sameAttr(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}
	if !va.Comparable() {
		return reflect.DeepEqual(a, b)
	}
	return a == b
}
