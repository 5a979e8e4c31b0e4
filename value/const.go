package value

import "unsafe"

var (
	Nil = Value{}

	Quote           = Sym("quote", 0)
	Quasiquote      = Sym("quasiquote", 0)
	Unquote         = Sym("unquote", 0)
	UnquoteSplicing = Sym("unquote-splicing", 0)
	Dot             = Sym(".", 0)
)

var (
	int64Marker   = unsafe.Pointer(new(int64))
	boolMarker    = unsafe.Pointer(new(bool))
	float64Marker = unsafe.Pointer(new(float64))
)

type Type byte

var Types = map[Type]string{
	TextType:      "text",
	SymbolType:    "symbol",
	NumberType:    "number",
	PairType:      "pair",
	InterfaceType: "interface",
	BoolType:      "boolean",
	NilType:       "nil",
}

const (
	TextType      = 's'
	SymbolType    = 'y'
	NumberType    = 'n'
	BoolType      = 'b'
	PairType      = 'p'
	InterfaceType = 'i'
	NilType       = 'v'
)

const (
	symbolFlag    = 1 << 51
	generatedFlag = 1 << 40
	lineMask      = 1<<32 - 1
)
