package ir

// Kind discriminates the IR type variant. Kept as its own enum (rather than
// a type switch everywhere) the way the teacher keeps irkind.Kind separate
// from the Type interface, so capability checks read as a single switch.
type Kind int

const (
	// InvalidKind is the kind of the undefined/invalid type: "previous
	// error, do not re-report" (spec §4.2).
	InvalidKind Kind = iota
	IntKind
	FloatKind
	BoolKind
	TensorKind
	ElementKind
	SetKind
	TupleKind
)

func (k Kind) String() string {
	switch k {
	case IntKind:
		return "int"
	case FloatKind:
		return "float"
	case BoolKind:
		return "bool"
	case TensorKind:
		return "tensor"
	case ElementKind:
		return "element"
	case SetKind:
		return "set"
	case TupleKind:
		return "tuple"
	default:
		return "invalid"
	}
}

// IsScalarKind reports whether k is one of the three atomic scalar kinds.
func IsScalarKind(k Kind) bool {
	return k == IntKind || k == FloatKind || k == BoolKind
}
