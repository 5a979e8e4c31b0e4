// Package reader turns source text into value trees. It is the minimal front
// end needed to load macro libraries; the full language reader lives with
// the compiler.
package reader

import (
	"bytes"
	"io"
	"strconv"
	"strings"
	"text/scanner"
	"unicode"

	"github.com/simendsjo/paremnet/value"
)

type reader struct {
	value.Assertable
	s scanner.Scanner
}

// Parse reads every form in text. filename is only used in error messages.
func Parse(filename, text string) ([]value.Value, error) {
	return Read(filename, strings.NewReader(text))
}

// ParseOne reads text that must hold exactly one form.
func ParseOne(filename, text string) (value.Value, error) {
	forms, err := Parse(filename, text)
	if err != nil {
		return value.Nil, err
	}
	if len(forms) != 1 {
		return value.Nil, value.Errorf(value.Syntax, "parse: expect 1 form in %s, got %d", filename, len(forms))
	}
	return forms[0], nil
}

func Read(filename string, src io.Reader) (forms []value.Value, err error) {
	r := &reader{}
	r.s.Init(src)
	r.s.Mode = scanner.ScanStrings
	r.s.Filename = filename
	r.s.Error = func(s *scanner.Scanner, msg string) {
		r.Assert(r.Panic(value.Syntax, "parse: %s at %s", msg, r.pos()))
	}
	defer value.Catch(&err)
	for tok := r.next(); tok != scanner.EOF; tok = r.next() {
		forms = append(forms, r.datum(tok))
	}
	return forms, nil
}

func (r *reader) pos() string {
	p := r.s.Pos()
	return p.Filename + ":" + strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// next scans the next token, skipping ';' comments.
func (r *reader) next() rune {
	tok := r.s.Scan()
	for tok == ';' {
		for ch := r.s.Peek(); ch != '\n' && ch != scanner.EOF; ch = r.s.Peek() {
			r.s.Next()
		}
		tok = r.s.Scan()
	}
	return tok
}

func (r *reader) datum(tok rune) value.Value {
	line := uint32(r.s.Position.Line)
	switch tok {
	case scanner.EOF:
		r.Assert(r.Panic(value.Syntax, "parse: unexpected EOF at %s", r.pos()))
	case '(', '[':
		return r.list(closer(tok))
	case ')', ']':
		r.Assert(r.Panic(value.Syntax, "parse: unexpected %q at %s", tok, r.pos()))
	case '\'', '`', ',':
		head := "quote"
		if tok == '`' {
			head = "quasiquote"
		} else if tok == ',' {
			head = "unquote"
			if r.s.Peek() == '@' {
				r.s.Next()
				head = "unquote-splicing"
			}
		}
		next := r.next()
		r.Assert(next != scanner.EOF && next != ')' && next != ']' || r.Panic(value.Syntax, "parse: invalid %s syntax at %s", head, r.pos()))
		return value.MakeList(value.Sym(head, line), r.datum(next))
	case scanner.String:
		t, err := strconv.Unquote(r.s.TokenText())
		r.Assert(err == nil || r.Panic(value.Syntax, "parse: invalid string %s at %s", r.s.TokenText(), r.pos()))
		return value.Text(t)
	}

	text := r.s.TokenText() + r.untilDelim()
	r.Assert(text != "." || r.Panic(value.MalformedDot, "parse: unexpected '.' at %s", r.pos()))
	switch text {
	case "#t":
		return value.Bool(true)
	case "#f":
		return value.Bool(false)
	}
	if v := value.ParseNumber(text); v != value.Nil {
		return v
	}
	return value.Sym(text, line)
}

func (r *reader) list(close rune) value.Value {
	b := value.InitListBuilder()
	for {
		switch tok := r.next(); {
		case tok == scanner.EOF:
			r.Assert(r.Panic(value.Syntax, "parse: missing %q at %s", close, r.pos()))
		case tok == close:
			return b.Build()
		case tok == ')' || tok == ']':
			r.Assert(r.Panic(value.Syntax, "parse: unexpected %q, expect %q at %s", tok, close, r.pos()))
		case tok == '.' && isDelim(r.s.Peek()):
			r.Assert(b.Len > 0 || r.Panic(value.MalformedDot, "parse: invalid dot syntax at %s", r.pos())) // ( . a )
			next := r.next()
			r.Assert(next != close && next != scanner.EOF || r.Panic(value.MalformedDot, "parse: missing value after dot at %s", r.pos()))
			tail := r.datum(next)
			r.Assert(r.next() == close || r.Panic(value.MalformedDot, "parse: invalid dot syntax at %s", r.pos())) // ( a . b c )
			return b.BuildDotted(tail)
		default:
			b = b.Append(r.datum(tok))
		}
	}
}

func (r *reader) untilDelim() string {
	p := bytes.Buffer{}
	for next := r.s.Peek(); !isDelim(next); next = r.s.Peek() {
		p.WriteRune(r.s.Next())
	}
	return p.String()
}

func isDelim(ch rune) bool {
	return ch == scanner.EOF || unicode.IsSpace(ch) || strings.ContainsRune("()[];\"", ch)
}

func closer(open rune) rune {
	if open == '[' {
		return ']'
	}
	return ')'
}
