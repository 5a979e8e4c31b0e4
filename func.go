package paremnet

import (
	"strings"

	"github.com/simendsjo/paremnet/value"
)

// Func is a macro-time callable: either a closure created by lambda inside a
// macro body, or a built-in installed into Default.
type Func struct {
	Name string

	Params ParamSpec   // closure: parameters
	Body   value.Value // closure: list of body forms
	Env    *Context    // closure: captured bindings

	MinArgNum int          // builtin: minimal arguments required
	Vararg    bool         // builtin: accepts more than MinArgNum
	F         func(*State) // builtin
}

// State carries the arguments of a builtin call and receives its result.
type State struct {
	value.Assertable
	argIdx int
	Args   value.Value
	Caller value.Value
	Out    value.Value
	Gen    *value.SymbolGenerator
	exec   execState
}

// In pops the next argument.
func (s *State) In() value.Value {
	s.Assert(s.Args.Type() == value.PairType || s.Panic(value.Arity, "%v: too few arguments, expect at least %d", s.Caller, s.argIdx+1))
	c := s.Args.Cons()
	s.argIdx, s.Args = s.argIdx+1, c.Rest
	return c.First
}

func (s *State) expect(v value.Value, ok bool, what string) value.Value {
	s.Assert(ok || s.Panic(value.Eval, "%v: invalid argument #%d, expect %s, got %v", s.Caller, s.argIdx, what, v))
	return v
}

// L pops a list argument (a pair or Nil).
func (s *State) L() value.Value {
	v := s.In()
	return s.expect(v, v.Type() == value.PairType || v == value.Nil, "list")
}

// P pops a pair argument.
func (s *State) P() *value.Cons {
	v := s.In()
	return s.expect(v, v.Type() == value.PairType, "pair").Cons()
}

// F pops a callable argument.
func (s *State) F() *Func {
	v := s.In()
	f, ok := asFunc(v)
	s.expect(v, ok, "function")
	return f
}

// Call invokes f from inside a builtin.
func (s *State) Call(f *Func, args ...value.Value) value.Value {
	return call(f, value.FromSlice(args), s.Caller, s.exec)
}

func asFunc(v value.Value) (*Func, bool) {
	if v.Type() != value.InterfaceType {
		return nil, false
	}
	f, ok := v.Interface().(*Func)
	return f, ok
}

func (f *Func) String() string {
	if f.F != nil {
		return "#<builtin " + f.Name + ">"
	}
	p := make([]string, 0, len(f.Params.Fixed)+2)
	for _, s := range f.Params.Fixed {
		p = append(p, s.String())
	}
	if f.Params.HasRest() {
		p = append(p, ".", f.Params.Rest.String())
	}
	body := f.Body.String()
	return "(lambda (" + strings.Join(p, " ") + ") " + body[1:len(body)-1] + ")"
}

func (f *Func) GoString() string { return f.String() }
