package ir

// Equal reports whether a and b are the same JSON value. Numbers compare by
// value and object fields compare regardless of order.
func Equal(a, b *Node) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case NullType:
		return true
	case BoolType:
		return a.Bool == b.Bool
	case StringType:
		return a.String == b.String
	case NumberType:
		c, err := CompareNumbers(a, b)
		return err == nil && c == 0
	case ArrayType:
		return equalArrays(a, b)
	case ObjectType:
		return equalObjects(a, b)
	}
	return false
}

func equalArrays(a, b *Node) bool {
	if len(a.Values) != len(b.Values) {
		return false
	}
	for i := range a.Values {
		if !Equal(a.Values[i], b.Values[i]) {
			return false
		}
	}
	return true
}

func equalObjects(a, b *Node) bool {
	if len(a.Fields) != len(b.Fields) {
		return false
	}
	for i, field := range a.Fields {
		bv := Get(b, field.String)
		if bv == nil {
			return false
		}
		if !Equal(a.Values[i], bv) {
			return false
		}
	}
	return true
}
