package ir

// FuncSig is a function or procedure's registered signature: name,
// arguments, and results (spec §6: "map of function name → function
// signature (name, arguments, results)"). The core does not lower
// function bodies into executable IR (out of scope, spec §1); it checks
// the body for diagnostics and keeps only the signature.
type FuncSig struct {
	Name      string
	Arguments []Var
	Results   []Var

	// Intrinsic marks a signature registered for a runtime-supplied
	// function rather than one written out in Simit (spec §4.6.2). A
	// call to an intrinsic declared with zero arguments suppresses the
	// usual arity check, grounded on the original checker's
	// func.getKind() == ir::Func::Intrinsic special case.
	Intrinsic bool
}

// ResultTypes returns the ordered list of result types, the type an
// expression calling this function synthesizes (spec §4.6.2 "Call").
func (f *FuncSig) ResultTypes() []Type {
	types := make([]Type, len(f.Results))
	for i, r := range f.Results {
		types[i] = r.Type
	}
	return types
}

// ArgumentTypes returns the ordered list of argument types.
func (f *FuncSig) ArgumentTypes() []Type {
	types := make([]Type, len(f.Arguments))
	for i, a := range f.Arguments {
		types[i] = a.Type
	}
	return types
}
