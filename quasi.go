package paremnet

import (
	"github.com/simendsjo/paremnet/value"
)

// escape reports the escape operator heading v: quasiquote, unquote or
// unquote-splicing applied to exactly one operand.
func escape(v value.Value) (string, bool) {
	if v.Type() != value.PairType {
		return "", false
	}
	c := v.Cons()
	switch op := specialForm(c.First); op {
	case "quasiquote", "unquote", "unquote-splicing":
		if c.Rest.Type() == value.PairType && c.Rest.Cons().Rest == value.Nil {
			return op, true
		}
	}
	return "", false
}

// quasi instantiates a quasiquote template. Escapes fire only at level 1;
// nested quasiquotes raise the level and are copied through.
func quasi(tmpl value.Value, level int, state execState) value.Value {
	if tmpl.Type() != value.PairType {
		return tmpl
	}
	if op, ok := escape(tmpl); ok {
		c := tmpl.Cons()
		switch {
		case op == "quasiquote":
			return value.MakeList(c.First, quasi(c.Second(), level+1, state))
		case level > 1:
			return value.MakeList(c.First, quasi(c.Second(), level-1, state))
		case op == "unquote":
			return exec(c.Second(), state)
		default:
			state.Assert(state.Panic(value.Eval, "unquote-splicing outside a list: %v", tmpl))
		}
	}

	results := value.InitListBuilder()
	v := tmpl
	for ; v.Type() == value.PairType; v = v.Cons().Rest {
		if v != tmpl {
			// (a . ,b) reads as (a unquote b)
			if _, ok := escape(v); ok {
				return results.BuildDotted(quasi(v, level, state))
			}
		}
		e := v.Cons().First
		if op, ok := escape(e); ok && op == "unquote-splicing" && level == 1 {
			operand := e.Cons().Second()
			spliced := exec(operand, state)
			s, err := value.ToSlice(spliced)
			state.Assert(err == nil || state.Panic(value.Eval, "unquote-splicing: %v is not a proper list: %v", operand, spliced))
			for _, x := range s {
				results = results.Append(x)
			}
			continue
		}
		results = results.Append(quasi(e, level, state))
	}
	return results.BuildDotted(v)
}
