package value

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrorKind classifies an *Error.
type ErrorKind byte

const (
	OutOfBounds  ErrorKind = iota + 1 // list walked past its end
	NotAList                          // improper list where a proper one is required
	Arity                             // argument count does not fit a parameter spec
	MalformedDot                      // misplaced '.' in a parameter list or list literal
	Syntax                            // malformed special form or reader input
	Eval                              // macro-time evaluation failure
)

var kindNames = map[ErrorKind]string{
	OutOfBounds:  "out of bounds",
	NotAList:     "not a list",
	Arity:        "arity",
	MalformedDot: "malformed dot",
	Syntax:       "syntax",
	Eval:         "eval",
}

func (k ErrorKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Error is the single compile-time error raised by this module.
type Error struct {
	Kind ErrorKind
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func Errorf(kind ErrorKind, format string, a ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, a...)}
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Assertable turns failed assertions into panics carrying an *Error, so deep
// recursive code can bail out in one line. Entry points recover with Catch.
type Assertable struct {
	err *Error
}

func (e *Assertable) Assert(ok bool) *Assertable {
	if !ok {
		panic(e.err)
	}
	return e
}

func (e *Assertable) Panic(kind ErrorKind, t string, a ...interface{}) bool {
	e.err = Errorf(kind, t, a...)
	return false
}

// PanicIf panics with an *Error of the given kind when v holds.
func PanicIf(v bool, kind ErrorKind, t string) {
	if v {
		panic(&Error{Kind: kind, Msg: t})
	}
}

// Catch recovers a panic raised by Assert/PanicIf and stores it into err.
// Panics that are not errors are re-raised. Use it as: defer Catch(&err).
func Catch(err *error) {
	r := recover()
	if r == nil {
		return
	}
	switch e := r.(type) {
	case *Error:
		*err = e
	case error:
		*err = &Error{Kind: Eval, Msg: e.Error()}
	default:
		panic(r)
	}
}

func IfStr(v bool, t, f string) string {
	if v {
		return t
	}
	return f
}

func ParseNumber(text string) (vn Value) {
	if text == "" || !isNumberStart(text) {
		return Nil
	}
	if v, err := strconv.ParseInt(text, 0, 64); err == nil {
		return Int(v)
	}
	v, err := strconv.ParseFloat(text, 64)
	return vn.nop(err == nil && vn.Set(Num(v)) || vn.Set(Nil))
}

// isNumberStart filters out symbols like 'inf' or '+' before strconv sees them.
func isNumberStart(text string) bool {
	c := text[0]
	if c == '+' || c == '-' || c == '.' {
		if len(text) == 1 {
			return false
		}
		c = text[1]
		if c == '.' && len(text) > 2 {
			c = text[2]
		}
	}
	return c >= '0' && c <= '9'
}
