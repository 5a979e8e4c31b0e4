package paremnet

import (
	"fmt"
	"strings"

	"github.com/simendsjo/paremnet/value"
)

// Default holds the builtins visible to every macro body.
var Default = NewContext(nil)

// Install binds f into ctx under the name taken from sig, e.g. "(car lst)".
// The remaining words give the argument count; a trailing "..." marks the
// last one as variadic.
func (ctx *Context) Install(sig string, f func(*State)) *Func {
	sig = strings.TrimSpace(sig)
	value.PanicIf(!strings.HasPrefix(sig, "(") || !strings.HasSuffix(sig, ")"), value.Syntax, "invalid signature: "+sig)
	words := strings.Fields(sig[1 : len(sig)-1])
	value.PanicIf(len(words) == 0, value.Syntax, "invalid signature: "+sig)
	fn := &Func{Name: words[0], F: f, MinArgNum: len(words) - 1}
	if n := len(words); n > 1 && strings.HasSuffix(words[n-1], "...") {
		fn.MinArgNum, fn.Vararg = n-2, true
	}
	ctx.set(fn.Name, value.New(fn))
	return fn
}

func init() {
	Default.set("nil", value.Nil)

	Default.Install("(car lst)", func(s *State) { s.Out = s.P().First })
	Default.Install("(cdr lst)", func(s *State) { s.Out = s.P().Rest })
	Default.Install("(first lst)", func(s *State) { s.Out = s.P().First })
	Default.Install("(rest lst)", func(s *State) { s.Out = s.P().Rest })
	Default.Install("(second lst)", func(s *State) { s.Out = s.P().Second() })
	Default.Install("(third lst)", func(s *State) { s.Out = s.P().Third() })
	Default.Install("(fourth lst)", func(s *State) { s.Out = s.P().Fourth() })
	Default.Install("(cadr lst)", func(s *State) { s.Out = s.P().Second() })
	Default.Install("(cddr lst)", func(s *State) { s.Out = s.P().AfterSecond() })
	Default.Install("(nth lst n)", func(s *State) {
		lst := s.P()
		n := s.In()
		s.expect(n, n.Type() == value.NumberType, "number")
		v, err := lst.GetNth(int(n.Int()))
		s.Assert(err == nil || s.Panic(value.OutOfBounds, "%v: %v", s.Caller, err))
		s.Out = v
	})
	Default.Install("(cons a b)", func(s *State) { s.Out = value.NewCons(s.In(), s.In()) })
	Default.Install("(list v...)", func(s *State) {
		args, _ := value.ToSlice(s.Args)
		s.Out = value.MakeList(args...)
	})
	Default.Install("(append lst...)", func(s *State) {
		// every list but the last is copied, the last one is shared
		b := value.InitListBuilder()
		for s.Args.Type() == value.PairType {
			if s.Args.Cons().Rest == value.Nil {
				s.Out = b.BuildDotted(s.In())
				return
			}
			lst := s.L()
			tmp, err := value.ToSlice(lst)
			s.Assert(err == nil || s.Panic(value.NotAList, "%v: %v", s.Caller, err))
			for _, v := range tmp {
				b = b.Append(v)
			}
		}
		s.Out = b.Build()
	})
	Default.Install("(reverse lst)", func(s *State) {
		lst := s.L()
		s.Assert(value.IsList(lst) || s.Panic(value.NotAList, "%v: not a proper list: %v", s.Caller, lst))
		out := value.Nil
		value.Foreach(lst, func(v value.Value) bool { out = value.NewCons(v, out); return true })
		s.Out = out
	})
	Default.Install("(map fn lst...)", func(s *State) {
		fn := s.F()
		var lists []value.Value
		for s.Args.Type() == value.PairType {
			lists = append(lists, s.L())
		}
		results := value.InitListBuilder()
		for len(lists) > 0 {
			args := make([]value.Value, len(lists))
			for i, l := range lists {
				if l.Type() != value.PairType {
					s.Out = results.Build()
					return
				}
				args[i], lists[i] = l.Cons().First, l.Cons().Rest
			}
			results = results.Append(s.Call(fn, args...))
		}
		s.Out = results.Build()
	})
	Default.Install("(apply fn args)", func(s *State) {
		fn := s.F()
		args := s.L()
		s.Assert(value.IsList(args) || s.Panic(value.NotAList, "%v: not a proper list: %v", s.Caller, args))
		s.Out = call(fn, args, s.Caller, s.exec)
	})
	Default.Install("(length lst)", func(s *State) {
		lst := s.L()
		s.Assert(value.IsList(lst) || s.Panic(value.NotAList, "%v: not a proper list: %v", s.Caller, lst))
		s.Out = value.Int(int64(value.Length(lst)))
	})

	Default.Install("(null? a)", func(s *State) { s.Out = value.Bool(s.In() == value.Nil) })
	Default.Install("(cons? a)", func(s *State) { s.Out = value.Bool(s.In().IsCons()) })
	Default.Install("(pair? a)", func(s *State) { s.Out = value.Bool(s.In().IsCons()) })
	Default.Install("(atom? a)", func(s *State) { s.Out = value.Bool(s.In().IsAtom()) })
	Default.Install("(symbol? a)", func(s *State) { s.Out = value.Bool(s.In().Type() == value.SymbolType) })
	Default.Install("(list? a)", func(s *State) { s.Out = value.Bool(value.IsList(s.In())) })
	Default.Install("(not a)", func(s *State) { s.Out = value.Bool(s.In().Falsy()) })
	Default.Install("(eq? a b)", func(s *State) { s.Out = value.Bool(s.In().Equals(s.In())) })
	Default.Install("(= a b)", func(s *State) { s.Out = value.Bool(s.In().Equals(s.In())) })
	Default.Install("(equal? a b)", func(s *State) { s.Out = value.Bool(value.DeepEqual(s.In(), s.In())) })

	Default.Install("(gensym prefix...)", func(s *State) {
		prefix := "G"
		if s.Args.Type() == value.PairType {
			p := s.In()
			switch p.Type() {
			case value.SymbolType, value.TextType:
				prefix = p.Text()
			default:
				s.expect(p, false, "symbol or string")
			}
		}
		s.Out = s.Gen.Fresh(prefix)
	})
	Default.Install("(error msg...)", func(s *State) {
		p := strings.Builder{}
		value.Foreach(s.Args, func(v value.Value) bool {
			if p.Len() > 0 {
				p.WriteString(" ")
			}
			if v.Type() == value.TextType {
				p.WriteString(v.Text())
			} else {
				p.WriteString(v.String())
			}
			return true
		})
		panic(value.Errorf(value.Eval, "%s", p.String()))
	})
	Default.Install("(stringify a)", func(s *State) { s.Out = value.Text(fmt.Sprint(s.In())) })
}
