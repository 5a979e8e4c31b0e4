package paremnet

import (
	"strings"
	"testing"

	"github.com/simendsjo/paremnet/reader"
	"github.com/simendsjo/paremnet/value"
)

func evalValue(v value.Value) (out value.Value, err error) {
	defer value.Catch(&err)
	return exec(v, execState{local: NewContext(Default), gen: &value.SymbolGenerator{}}), nil
}

func eval(t *testing.T, text string) (value.Value, error) {
	v, err := reader.ParseOne("(eval)", text)
	if err != nil {
		t.Fatal(text, err)
	}
	return evalValue(v)
}

func TestEval(t *testing.T) {
	assert := func(text, expect string) {
		v, err := eval(t, text)
		if err != nil {
			t.Fatal(text, err)
		}
		if v.String() != expect {
			t.Fatal(text, "===>", v, "expect", expect)
		}
	}
	assert("(car '(1 2))", "1")
	assert("(cdr '(1 2))", "(2)")
	assert("(if #f 1 2)", "2")
	assert("(if () 1)", "()")
	assert("(if 0 1 2)", "1")
	assert("(if* #f 3)", "3")
	assert("(if* 4 3)", "4")
	assert("(begin 1 2 3)", "3")
	assert("(begin)", "()")
	assert("((lambda (x . r) r) 1 2 3)", "(2 3)")
	assert("((lambda args args) 1 2)", "(1 2)")
	assert("((lambda ()))", "()")
	assert("(((lambda (x) (lambda () x)) 5))", "5")
	assert("((lambda (x) (set! x 2) x) 1)", "2")
	assert("(map (lambda (x y) (cons x y)) '(1 2 3) '(a b))", "((1 . a) (2 . b))")
	assert("(map car '((a 1) (b 2)))", "(a b)")
	assert("(append '(1 2) '(3))", "(1 2 3)")
	assert("(append '(1) '4)", "(1 . 4)")
	assert("(append)", "()")
	assert("(apply cons '(1 2))", "(1 . 2)")
	assert("`(1 ,(car '(2)) ,@(cdr '(0 3 4)))", "(1 2 3 4)")
	assert("`(1 ,@'() 2)", "(1 2)")
	assert("(length '(1 2 3))", "3")
	assert("(reverse '(1 2 3))", "(3 2 1)")
	assert("(nth '(a b c) 2)", "c")
	assert("(list (second '(1 2 3)) (third '(1 2 3)) (cddr '(1 2 3)))", "(2 3 (3))")
	assert("(eq? 'a 'a)", "#t")
	assert("(eq? '(1) '(1))", "#f")
	assert("(equal? '(1 (2)) '(1 (2)))", "#t")
	assert("(list (null? nil) (cons? '(1)) (atom? 'a) (symbol? \"a\") (list? '(1 . 2)) (not #f))", "(#t #t #t #f #f #t)")
	assert("((lambda (f) (set! f (lambda (l) (if (null? l) 'done (f (cdr l))))) (f '(1 2 3 4 5))) nil)", "done")

	// the '.' sentinel cannot come from the reader, build the call directly
	dot := value.MakeList(value.Sym("list", 0), value.Sym("a", 0).Quote(), value.Dot.Quote(), value.Sym("b", 0).Quote())
	if v, err := evalValue(dot); err != nil || v.String() != "(a . b)" {
		t.Fatal(v, err)
	}
}

func TestEvalGensym(t *testing.T) {
	v, err := eval(t, "(list (gensym 'X) (gensym \"X\") (gensym))")
	if err != nil {
		t.Fatal(err)
	}
	s, _ := value.ToSlice(v)
	if !s[0].Generated() || !strings.HasPrefix(s[0].Text(), "X#") || !strings.HasPrefix(s[2].Text(), "G#") {
		t.Fatal(v)
	}
	if s[0].Equals(s[1]) {
		t.Fatal("gensym returned the same symbol twice")
	}
}

func TestEvalErrors(t *testing.T) {
	assert := func(text string, kind value.ErrorKind) {
		_, err := eval(t, text)
		if !value.IsKind(err, kind) {
			t.Fatal(text, "===>", err)
		}
		t.Log(err)
	}
	assert("x", value.Eval)
	assert("(car '())", value.Eval)
	assert("(car 1 2)", value.Arity)
	assert("((lambda (x) x))", value.Arity)
	assert("((lambda (x) x) 1 2)", value.Arity)
	assert("(set! car 1)", value.Eval)
	assert("(set! y 1)", value.Eval)
	assert("(unquote a)", value.Eval)
	assert("`(,@1)", value.Eval)
	assert("`,@'(1)", value.Eval)
	assert("(second '(1))", value.OutOfBounds)
	assert("(length '(1 . 2))", value.NotAList)
	assert("(if)", value.Syntax)
	assert("(quote a b)", value.Syntax)
	assert("(1 2)", value.Eval)
	assert("(lambda (1) 1)", value.Syntax)

	_, err := eval(t, "(error \"boom:\" 'a 1)")
	if !value.IsKind(err, value.Eval) || err.Error() != "boom: a 1" {
		t.Fatal(err)
	}
}

func TestContext(t *testing.T) {
	a, b := value.Sym("a", 0), value.Fresh("a")
	outer := NewContext(nil).Set(a, value.Int(1))
	inner := NewContext(outer)
	if v, ok := inner.Load(a); !ok || v.Int() != 1 {
		t.Fatal(inner)
	}
	if _, ok := inner.Load(value.Sym(b.Text(), 0)); ok {
		t.Fatal("reader symbol sees a generated binding")
	}
	inner.Store(a, value.Int(2))
	if v, _ := outer.Load(a); v.Int() != 2 || len(inner.M) != 0 {
		t.Fatal(outer, inner)
	}
	inner.Set(b, value.Int(3))
	if v, ok := inner.Load(b); !ok || v.Int() != 3 {
		t.Fatal(inner)
	}
	if _, ok := inner.Load(value.Sym(b.Text(), 0)); ok {
		t.Fatal("generated binding leaked to its spelling")
	}
}
