package paremnet

import (
	"github.com/simendsjo/paremnet/value"
)

// execState is passed by value down the macro-time evaluator.
type execState struct {
	value.Assertable
	local *Context
	gen   *value.SymbolGenerator
}

// specialForm returns the name of the special form headed by v, if any.
// Generated symbols never name a special form.
func specialForm(v value.Value) string {
	if v.Type() != value.SymbolType || v.Generated() {
		return ""
	}
	return v.Text()
}

// exec evaluates expr at macro time. Failures panic with *value.Error.
func exec(expr value.Value, state execState) value.Value {
TAIL_CALL:
	switch expr.Type() {
	case value.PairType: // evaluating the list
	case value.SymbolType:
		v, ok := state.local.Load(expr)
		state.Assert(ok || state.Panic(value.Eval, "unbound %v", expr))
		return v
	default:
		return expr
	}

	c := expr.Cons()
	head := c.First
	state.Assert(value.IsList(expr) || state.Panic(value.Syntax, "invalid call syntax: %v", expr))

	switch va := specialForm(head); va {
	case "quote":
		state.Assert(value.Length(expr) == 2 || state.Panic(value.Syntax, "invalid quote syntax: %v", expr))
		return c.Second()
	case "quasiquote":
		state.Assert(value.Length(expr) == 2 || state.Panic(value.Syntax, "invalid quasiquote syntax: %v", expr))
		return quasi(c.Second(), 1, state)
	case "unquote", "unquote-splicing":
		state.Assert(state.Panic(value.Eval, "%s outside quasiquote: %v", va, expr))
	case "if":
		// (if test then [else])
		n := value.Length(expr)
		state.Assert(n == 3 || n == 4 || state.Panic(value.Syntax, "invalid if syntax: %v", expr))
		if !exec(c.Second(), state).Falsy() {
			expr = c.Third()
			goto TAIL_CALL
		}
		if n == 3 {
			return value.Nil
		}
		expr = c.Fourth()
		goto TAIL_CALL
	case "if*":
		// (if* a b): a when it holds, b otherwise
		state.Assert(value.Length(expr) == 3 || state.Panic(value.Syntax, "invalid if* syntax: %v", expr))
		if v := exec(c.Second(), state); !v.Falsy() {
			return v
		}
		expr = c.Third()
		goto TAIL_CALL
	case "begin":
		if c.Rest == value.Nil {
			return value.Nil
		}
		expr = execBody(c.Rest, state)
		goto TAIL_CALL
	case "lambda":
		state.Assert(value.Length(expr) >= 2 || state.Panic(value.Syntax, "lambda: missing parameter list"))
		params, err := ParseParams(c.Second())
		if err != nil {
			panic(err)
		}
		return value.New(&Func{Name: "lambda", Params: params, Body: c.AfterSecond(), Env: state.local})
	case "set!":
		state.Assert(value.Length(expr) == 3 && c.Second().Type() == value.SymbolType || state.Panic(value.Syntax, "invalid set! syntax: %v", expr))
		x := c.Second()
		_, m := state.local.find(key(x))
		state.Assert(m != nil || state.Panic(value.Eval, "set!: unbound %v", x))
		state.Assert(m != Default || state.Panic(value.Eval, "set!: alter builtin %v", x))
		v := exec(c.Third(), state)
		m.set(key(x), v)
		return v
	}

	fn := exec(head, state)
	cc, ok := asFunc(fn)
	state.Assert(ok || state.Panic(value.Eval, "invalid function: %v", head))

	args := value.InitListBuilder()
	value.Foreach(c.Rest, func(v value.Value) bool { args = args.Append(exec(v, state)); return true })

	if cc.F != nil {
		return callBuiltin(cc, args, head, state)
	}

	m, err := cc.Params.Bind(args.Build(), cc.Env)
	if err != nil {
		panic(value.Errorf(value.Arity, "%v: %v", head, err))
	}
	if cc.Body == value.Nil {
		return value.Nil
	}
	state.local = m
	expr = execBody(cc.Body, state)
	goto TAIL_CALL
}

// execBody evaluates all forms of body but the last and returns the last
// one for the caller to evaluate in tail position.
func execBody(body value.Value, state execState) value.Value {
	c := body.Cons()
	for ; c.Rest.Type() == value.PairType; c = c.Rest.Cons() {
		exec(c.First, state)
	}
	return c.First
}

func callBuiltin(cc *Func, args value.ListBuilder, caller value.Value, state execState) value.Value {
	state.Assert(args.Len == cc.MinArgNum || (cc.Vararg && args.Len >= cc.MinArgNum) ||
		state.Panic(value.Arity, "%v: expect %s%d arguments, got %d", caller, value.IfStr(cc.Vararg, "at least ", ""), cc.MinArgNum, args.Len))
	s := State{Args: args.Build(), Caller: caller, Gen: state.gen, exec: state}
	cc.F(&s)
	return s.Out
}

// call applies f to already evaluated arguments.
func call(f *Func, args value.Value, caller value.Value, state execState) value.Value {
	if f.F != nil {
		b := value.InitListBuilder()
		value.Foreach(args, func(v value.Value) bool { b = b.Append(v); return true })
		return callBuiltin(f, b, caller, state)
	}
	m, err := f.Params.Bind(args, f.Env)
	if err != nil {
		panic(value.Errorf(value.Arity, "%v: %v", caller, err))
	}
	if f.Body == value.Nil {
		return value.Nil
	}
	state.local = m
	return exec(execBody(f.Body, state), state)
}
