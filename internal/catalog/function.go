package catalog

import "strconv"

// Volatility is a function's pg_proc.provolatile classification.
type Volatility string

const (
	VolatilityVolatile Volatility = "VOLATILE"
	VolatilityStable   Volatility = "STABLE"
	VolatilityImmutable Volatility = "IMMUTABLE"
)

// ArgumentMode is IN/OUT/INOUT/VARIADIC for a function argument.
type ArgumentMode string

const (
	ArgIn       ArgumentMode = "IN"
	ArgOut      ArgumentMode = "OUT"
	ArgInOut    ArgumentMode = "INOUT"
	ArgVariadic ArgumentMode = "VARIADIC"
)

// Argument is one positional parameter of a Function.
type Argument struct {
	Name     string
	Type     *Type
	Mode     ArgumentMode
	Position int
	Default  string
	HasDefault bool
}

// Function is a normal function, procedure, aggregate or window function.
// Identified by OID.
type Function struct {
	Commented

	OID        OID
	Name       string
	Kind       FunctionKind
	Schema     *Schema
	Arguments  []*Argument
	ReturnType *Type // nil for procedures
	Volatility Volatility

	// spec.md 3.1 supplement, grounded on
	// dbgraph/internal/adapters.queryFetchFunctionBody and
	// pgschema/ir.Function.Definition.
	Language string
	Source   string
}

// FullName is schema-qualified: "public.total_price".
func (f *Function) FullName() string {
	if f.Schema == nil {
		return f.Name
	}
	return f.Schema.Name + "." + f.Name
}

// Signature is name plus argument type OIDs, the overload-safe key
// PostgreSQL itself distinguishes functions by: a schema can hold
// "foo(int)" and "foo(text)" as distinct functions sharing a bare name.
func (f *Function) Signature() string {
	sig := f.Name + "("
	for i, arg := range f.Arguments {
		if i > 0 {
			sig += ","
		}
		if arg.Type != nil {
			sig += strconv.Itoa(int(arg.Type.OID))
		}
	}
	return sig + ")"
}
