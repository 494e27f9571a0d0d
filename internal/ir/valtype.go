package ir

// ValueType is a declared value type. The set is closed at two cases per
// spec.md §6: int and bool.
type ValueType string

const (
	TypeInt  ValueType = "int"
	TypeBool ValueType = "bool"
)

// LookupValueType reports whether t names a known declared type.
func LookupValueType(t string) (ValueType, bool) {
	switch ValueType(t) {
	case TypeInt, TypeBool:
		return ValueType(t), true
	default:
		return "", false
	}
}

// LiteralMatches reports whether value is a valid literal for t's underlying
// representation (int64 or bool).
func (t ValueType) LiteralMatches(value any) bool {
	switch t {
	case TypeInt:
		switch value.(type) {
		case int64, int, float64:
			return true
		default:
			return false
		}
	case TypeBool:
		_, ok := value.(bool)
		return ok
	default:
		return false
	}
}
