package rules

import "reflect"

// Equaler is the structural equality oracle used whenever a subject or a
// literal condition is not a primitive value.
type Equaler interface {
	Equal(a, b any) bool
}

// EqualFunc adapts a plain function to the Equaler interface.
type EqualFunc func(a, b any) bool

// Equal calls f(a, b).
func (f EqualFunc) Equal(a, b any) bool {
	return f(a, b)
}

// DeepEqual is the default oracle. It compares composite values recursively.
var DeepEqual Equaler = EqualFunc(reflect.DeepEqual)

// Equal reports whether a literal condition matches a subject.
//
// Primitive values (nil, booleans, numbers, strings and named types over
// them) are compared strictly: same dynamic type and same value. If either
// side is anything else the comparison is delegated to eq, or to DeepEqual
// when eq is nil.
func Equal(eq Equaler, subject, literal any) bool {
	if isPrimitive(subject) && isPrimitive(literal) {
		return subject == literal
	}
	if eq == nil {
		eq = DeepEqual
	}
	return eq.Equal(subject, literal)
}

func isPrimitive(v any) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128,
		reflect.String:
		return true
	}
	return false
}
