package reader

import (
	"testing"

	"github.com/simendsjo/paremnet/value"
)

func TestParse(t *testing.T) {
	assert := func(text, expect string) {
		forms, err := Parse("(test)", text)
		if err != nil {
			t.Fatal(text, err)
		}
		out := ""
		for i, f := range forms {
			if i > 0 {
				out += " "
			}
			out += f.String()
		}
		if out != expect {
			t.Fatal(text, "===>", out, "expect", expect)
		}
	}
	assert("", "")
	assert("a", "a")
	assert("(a b c)", "(a b c)")
	assert("[a (b) ()]", "(a (b) ())")
	assert("(a . b)", "(a . b)")
	assert("(a b . (c d))", "(a b c d)")
	assert("(lambda (x . rest) rest)", "(lambda (x . rest) rest)")
	assert("'a `(a ,b ,@c)", "(quote a) (quasiquote (a (unquote b) (unquote-splicing c)))")
	assert(`("a\"b" #t #f 1 -2 3.5 0x10 .5 -)`, `("a\"b" #t #f 1 -2 3.5 16 0.5 -)`)
	assert("(+ 1 2) ; comment\n(- 3) ;; trailing", "(+ 1 2) (- 3)")
	assert("(let* ((x 1)) (set! x (+ x 1)) x)", "(let* ((x 1)) (set! x (+ x 1)) x)")
	assert("(a ... b)", "(a ... b)")
	assert("(dotimes (i 3) (trace i))", "(dotimes (i 3) (trace i))")
}

func TestLines(t *testing.T) {
	v, err := ParseOne("(test)", "(define\n  x\n  y)")
	if err != nil {
		t.Fatal(err)
	}
	c := v.Cons()
	if c.First.SymLine() != 1 || c.Second().SymLine() != 2 || c.Third().SymLine() != 3 {
		t.Fatal(c.First.SymLine(), c.Second().SymLine(), c.Third().SymLine())
	}
}

func TestErrors(t *testing.T) {
	assert := func(text string, kind value.ErrorKind) {
		_, err := Parse("(test)", text)
		if !value.IsKind(err, kind) {
			t.Fatal(text, "===>", err)
		}
		t.Log(err)
	}
	assert("(a b", value.Syntax)
	assert(")", value.Syntax)
	assert("(a b]", value.Syntax)
	assert(`"abc`, value.Syntax)
	assert("'", value.Syntax)
	assert("( . a)", value.MalformedDot)
	assert("(a . b c)", value.MalformedDot)
	assert("(a . )", value.MalformedDot)
	assert(".", value.MalformedDot)

	if _, err := ParseOne("(test)", "a b"); !value.IsKind(err, value.Syntax) {
		t.Fatal(err)
	}
}
