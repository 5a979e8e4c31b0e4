package paremnet

import (
	"bytes"
	"sort"
	"strconv"

	"github.com/simendsjo/paremnet/value"
)

// Context is a chain of macro-time bindings.
type Context struct {
	parent *Context
	M      map[string]value.Value
}

func NewContext(parent *Context) *Context {
	return &Context{parent: parent}
}

// key keeps generated symbols apart from reader symbols of the same spelling.
func key(sym value.Value) string {
	if sym.Generated() {
		return "\x00" + sym.Text()
	}
	return sym.Text()
}

func (ctx *Context) find(k string) (value.Value, *Context) {
	for ; ctx != nil; ctx = ctx.parent {
		if v, ok := ctx.M[k]; ok {
			return v, ctx
		}
	}
	return value.Nil, nil
}

func (ctx *Context) set(k string, v value.Value) {
	if ctx.M == nil {
		ctx.M = make(map[string]value.Value, 4)
	}
	ctx.M[k] = v
}

// Set binds sym in ctx itself, shadowing outer bindings.
func (ctx *Context) Set(sym, v value.Value) *Context {
	ctx.set(key(sym), v)
	return ctx
}

// Store assigns to the innermost existing binding of sym, or binds it in ctx.
func (ctx *Context) Store(sym, v value.Value) *Context {
	k := key(sym)
	if _, mv := ctx.find(k); mv == nil {
		ctx.set(k, v)
	} else {
		mv.set(k, v)
	}
	return ctx
}

func (ctx *Context) Load(sym value.Value) (value.Value, bool) {
	v, mv := ctx.find(key(sym))
	return v, mv != nil
}

func (ctx *Context) String() string {
	keys := make([]string, 0, len(ctx.M))
	for k := range ctx.M {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	p := bytes.NewBufferString("{")
	for i, k := range keys {
		if i > 0 {
			p.WriteString(" ")
		}
		p.WriteString(strconv.Quote(k))
		p.WriteString(":")
		p.WriteString(ctx.M[k].String())
	}
	p.WriteString("}")
	if ctx.parent != nil && ctx.parent != Default {
		p.WriteString(" -> ")
		p.WriteString(ctx.parent.String())
	}
	return p.String()
}
