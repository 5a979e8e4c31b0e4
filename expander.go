package paremnet

import (
	"io"
	"log"
	"strings"

	"github.com/simendsjo/paremnet/reader"
	"github.com/simendsjo/paremnet/value"
)

// Expander rewrites forms until no macro call remains in them.
type Expander struct {
	table    *Table
	gen      *value.SymbolGenerator
	logger   *log.Logger
	maxDepth int
}

type Option func(*Expander)

func WithTable(t *Table) Option { return func(e *Expander) { e.table = t } }

func WithGenerator(g *value.SymbolGenerator) Option { return func(e *Expander) { e.gen = g } }

// WithLogger traces every macro application to l.
func WithLogger(l *log.Logger) Option { return func(e *Expander) { e.logger = l } }

// DefaultMaxDepth is the nesting bound an Expander starts with.
const DefaultMaxDepth = 10000

// WithMaxDepth bounds the number of nested macro applications along any path
// of the tree. 0 means unlimited, and a macro that reproduces its own call
// then expands forever.
func WithMaxDepth(n int) Option { return func(e *Expander) { e.maxDepth = n } }

// New returns an Expander with an empty table unless WithTable is given.
func New(opts ...Option) *Expander {
	e := &Expander{table: NewTable(), gen: value.DefaultGenerator, maxDepth: DefaultMaxDepth}
	for _, o := range opts {
		o(e)
	}
	return e
}

// NewDefault returns an Expander whose table starts with a private copy of
// the core library. Options are applied after the library is in place.
func NewDefault(opts ...Option) (*Expander, error) {
	t, err := CoreTable()
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithTable(t)}, opts...)...), nil
}

func (e *Expander) Table() *Table { return e.table }

// Expand rewrites form to its fixed point: the outermost form first, then its
// sub-forms. The input tree is never modified.
func (e *Expander) Expand(form value.Value) (out value.Value, err error) {
	defer value.Catch(&err)
	return e.expand(form, 0), nil
}

// ExpandOnce applies the macro heading form once, if there is one. Sub-forms
// are left alone.
func (e *Expander) ExpandOnce(form value.Value) (out value.Value, expanded bool, err error) {
	defer value.Catch(&err)
	if form.Type() != value.PairType {
		return form, false, nil
	}
	m, ok := e.table.Lookup(form.Cons().First)
	if !ok {
		return form, false, nil
	}
	return e.apply(m, form), true, nil
}

// ExpandAll expands forms in order; a defmacro among them is visible to the
// forms after it. On error nothing is returned and no macro is registered.
func (e *Expander) ExpandAll(forms []value.Value) ([]value.Value, error) {
	return e.staged(func(s *Expander) (out []value.Value) {
		out = make([]value.Value, 0, len(forms))
		for _, f := range forms {
			out = append(out, s.expand(f, 0))
		}
		return out
	})
}

// Load reads every form from r, registers the defmacros and returns the
// expansion of the remaining forms. On error nothing is returned and no
// macro is registered.
func (e *Expander) Load(filename string, r io.Reader) ([]value.Value, error) {
	forms, err := reader.Read(filename, r)
	if err != nil {
		return nil, err
	}
	return e.staged(func(s *Expander) (out []value.Value) {
		for _, f := range forms {
			if isDefmacro(f) {
				s.define(f)
				continue
			}
			out = append(out, s.expand(f, 0))
		}
		return out
	})
}

// staged runs f against a copy of e's table and publishes the definitions
// only when f completes.
func (e *Expander) staged(f func(*Expander) []value.Value) (out []value.Value, err error) {
	s := *e
	s.table = e.table.Clone()
	err = func() (err error) {
		defer value.Catch(&err)
		out = f(&s)
		return nil
	}()
	if err != nil {
		return nil, err
	}
	e.table.Merge(s.table)
	return out, nil
}

func (e *Expander) LoadString(filename, text string) ([]value.Value, error) {
	return e.Load(filename, strings.NewReader(text))
}

// Define registers a macro from a (defmacro name params body...) form.
func (e *Expander) Define(form value.Value) (m *Macro, err error) {
	defer value.Catch(&err)
	value.PanicIf(!isDefmacro(form), value.Syntax, "not a defmacro form: "+form.String())
	return e.define(form), nil
}

func isDefmacro(v value.Value) bool {
	return v.Type() == value.PairType && specialForm(v.Cons().First) == "defmacro"
}

func (e *Expander) define(form value.Value) *Macro {
	c := form.Cons()
	value.PanicIf(!value.IsList(form) || value.Length(form) < 3, value.Syntax, "invalid defmacro syntax: "+form.String())
	name := c.Second()
	value.PanicIf(name.Type() != value.SymbolType || name.Generated(), value.Syntax, "defmacro: invalid name "+name.String())
	params, err := ParseParams(c.Third())
	if err != nil {
		panic(err)
	}
	m := &Macro{Name: name.Text(), Params: params, Body: e.expandEach(c.AfterThird(), 0)}
	e.table.Define(m)
	if e.logger != nil {
		e.logger.Printf("defmacro %s %v", m.Name, params)
	}
	return m
}

func (e *Expander) apply(m *Macro, form value.Value) value.Value {
	out, err := m.Apply(form.Cons().Rest, e.gen)
	if err != nil {
		kind := value.Eval
		if ve, ok := err.(*value.Error); ok {
			kind = ve.Kind
		}
		panic(value.Errorf(kind, "%s: %v", m.Name, err))
	}
	if e.logger != nil {
		e.logger.Printf("%v => %v", form, out)
	}
	return out
}

func (e *Expander) expand(form value.Value, depth int) value.Value {
	for {
		if form.Type() != value.PairType {
			return form
		}
		c := form.Cons()
		if m, ok := e.table.Lookup(c.First); ok {
			value.PanicIf(e.maxDepth > 0 && depth >= e.maxDepth, value.Eval, "expansion of "+m.Name+" exceeds max depth")
			form, depth = e.apply(m, form), depth+1
			continue
		}

		switch specialForm(c.First) {
		case "quote":
			return form
		case "quasiquote":
			return e.expandQuasi(form, 0, depth)
		case "lambda":
			// (lambda params body...)
			if c.Rest.Type() != value.PairType {
				return form
			}
			params := c.Rest.Cons()
			return value.NewCons(c.First, value.NewCons(params.First, e.expandEach(params.Rest, depth)))
		case "set!":
			// (set! name value)
			if c.Rest.Type() != value.PairType {
				return form
			}
			target := c.Rest.Cons()
			return value.NewCons(c.First, value.NewCons(target.First, e.expandEach(target.Rest, depth)))
		case "defmacro":
			return e.define(form).name()
		}

		out := e.expandEach(form, depth)
		// ((m-producing-form) args...) may now be headed by a macro name
		if c.First.Type() == value.PairType {
			if _, ok := e.table.Lookup(out.Cons().First); ok {
				form = out
				continue
			}
		}
		return out
	}
}

// expandEach expands every element of lst, keeping a dotted tail as is.
func (e *Expander) expandEach(lst value.Value, depth int) value.Value {
	b := value.InitListBuilder()
	for ; lst.Type() == value.PairType; lst = lst.Cons().Rest {
		b = b.Append(e.expand(lst.Cons().First, depth))
	}
	return b.BuildDotted(lst)
}

// expandQuasi walks a quasiquote template and expands only what will be
// evaluated: the operands of escapes at level 1.
func (e *Expander) expandQuasi(v value.Value, level, depth int) value.Value {
	if v.Type() != value.PairType {
		return v
	}
	if op, ok := escape(v); ok {
		c := v.Cons()
		switch {
		case op == "quasiquote":
			return value.MakeList(c.First, e.expandQuasi(c.Second(), level+1, depth))
		case level == 1:
			return value.MakeList(c.First, e.expand(c.Second(), depth))
		default:
			return value.MakeList(c.First, e.expandQuasi(c.Second(), level-1, depth))
		}
	}
	b := value.InitListBuilder()
	for start := v; v.Type() == value.PairType; v = v.Cons().Rest {
		if _, ok := escape(v); ok && v != start {
			return b.BuildDotted(e.expandQuasi(v, level, depth))
		}
		b = b.Append(e.expandQuasi(v.Cons().First, level, depth))
	}
	return b.BuildDotted(v)
}

func (m *Macro) name() value.Value {
	return value.MakeList(value.Quote, value.Sym(m.Name, 0))
}
