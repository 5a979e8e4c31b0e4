package paremnet

import (
	"github.com/simendsjo/paremnet/value"
)

// ParamSpec is a parsed parameter list: fixed names plus an optional rest
// name that collects the remaining arguments as a list.
type ParamSpec struct {
	Fixed []value.Value
	Rest  value.Value // Nil when absent
}

func (p ParamSpec) HasRest() bool { return p.Rest != value.Nil }

// ParseParams accepts (a b), (a b . rest), a lone symbol (rest only), and a
// plain list whose second-to-last element is the symbol '.'.
func ParseParams(v value.Value) (p ParamSpec, err error) {
	switch v.Type() {
	case value.NilType:
		return p, nil
	case value.SymbolType:
		p.Rest = v
		return p, nil
	case value.PairType:
	default:
		return p, value.Errorf(value.Syntax, "invalid parameter list: %v", v)
	}

	start := v
	for ; v.Type() == value.PairType; v = v.Cons().Rest {
		c := v.Cons()
		if c.First.IsSym(".") {
			if len(p.Fixed) == 0 || c.Rest.Type() != value.PairType || c.Rest.Cons().Rest != value.Nil {
				return p, value.Errorf(value.MalformedDot, "invalid dot in parameter list: %v", start)
			}
			v = c.Rest.Cons().First
			break
		}
		if c.First.Type() != value.SymbolType {
			return p, value.Errorf(value.Syntax, "parameter must be a symbol, got %v in %v", c.First, start)
		}
		p.Fixed = append(p.Fixed, c.First)
	}
	switch v.Type() {
	case value.NilType:
	case value.SymbolType:
		if v.IsSym(".") {
			return p, value.Errorf(value.MalformedDot, "invalid dot in parameter list: %v", start)
		}
		p.Rest = v
	default:
		return p, value.Errorf(value.MalformedDot, "rest parameter must be a symbol, got %v in %v", v, start)
	}
	return p, nil
}

// Bind binds args (a list of values) to p in a new Context under parent.
func (p ParamSpec) Bind(args value.Value, parent *Context) (*Context, error) {
	ctx := NewContext(parent)
	given := value.Length(args)
	for _, name := range p.Fixed {
		if args.Type() != value.PairType {
			return nil, value.Errorf(value.Arity, "too few arguments, expect %s%d, got %d",
				value.IfStr(p.HasRest(), "at least ", ""), len(p.Fixed), given)
		}
		ctx.Set(name, args.Cons().First)
		args = args.Cons().Rest
	}
	if p.HasRest() {
		ctx.Set(p.Rest, args)
	} else if args != value.Nil {
		return nil, value.Errorf(value.Arity, "too many arguments, expect %d, got %d", len(p.Fixed), given)
	}
	return ctx, nil
}

func (p ParamSpec) String() string {
	b := value.InitListBuilder()
	for _, f := range p.Fixed {
		b = b.Append(f)
	}
	return b.BuildDotted(p.Rest).String()
}

// Macro is a named rewrite rule. Body holds already expanded forms that are
// evaluated at macro time with the parameters bound to the unevaluated
// argument forms; the value of the last one replaces the call.
type Macro struct {
	Name   string
	Params ParamSpec
	Body   value.Value
}

// Apply runs m on the argument forms args.
func (m *Macro) Apply(args value.Value, gen *value.SymbolGenerator) (out value.Value, err error) {
	defer value.Catch(&err)
	ctx, err := m.Params.Bind(args, Default)
	if err != nil {
		return value.Nil, err
	}
	if gen == nil {
		gen = value.DefaultGenerator
	}
	state := execState{local: ctx, gen: gen}
	value.Foreach(m.Body, func(v value.Value) bool { out = exec(v, state); return true })
	return out, nil
}

func (m *Macro) String() string {
	return "(defmacro " + m.Name + " " + m.Params.String() + " ...)"
}
