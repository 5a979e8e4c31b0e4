package value

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"unsafe"
)

// Value is a handle to any value of the language. The zero Value is Nil.
//
// Layout:
//   number:    val = bits,             ptr = int64Marker / float64Marker
//   boolean:   val = 0 or 1,           ptr = boolMarker
//   symbol:    val = 1<<51|flags|line, ptr = *string
//   text:      val = TextType,         ptr = *string
//   pair:      val = PairType,         ptr = *Cons
//   interface: val = InterfaceType,    ptr = *interface{}
type Value struct {
	val uint64
	ptr unsafe.Pointer
}

// New converts a Go value into a Value. Values that have no natural
// representation are wrapped opaquely.
func New(v interface{}) Value {
	if vv, ok := v.(Value); ok {
		return vv
	} else if c, ok := v.(*Cons); ok {
		return Pair(c)
	} else if s, ok := v.([]Value); ok {
		return FromSlice(s)
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Invalid:
		return Nil
	case reflect.Int64, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return Int(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Int(int64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return Num(rv.Float())
	case reflect.String:
		return Text(rv.String())
	case reflect.Bool:
		return Bool(rv.Bool())
	case reflect.Slice, reflect.Array:
		b := InitListBuilder()
		for i := 0; i < rv.Len(); i++ {
			b = b.Append(New(rv.Index(i).Interface()))
		}
		return b.Build()
	}
	return Value{val: uint64(InterfaceType), ptr: unsafe.Pointer(&v)}
}

// Pair wraps a cons cell. A nil cell yields Nil.
func Pair(c *Cons) Value {
	if c == nil {
		return Nil
	}
	return Value{val: uint64(PairType), ptr: unsafe.Pointer(c)}
}

func NewCons(first, rest Value) Value {
	return Pair(&Cons{First: first, Rest: rest})
}

func Num(v float64) (n Value) {
	return n.nop(float64(int64(v)) == v && n.Set(Int(int64(v))) || n.Set(Value{val: math.Float64bits(v), ptr: float64Marker}))
}

func Int(v int64) Value {
	return Value{val: uint64(v), ptr: int64Marker}
}

func Bool(v bool) (b Value) {
	return b.nop(v && b.Set(Value{val: 1, ptr: boolMarker}) || b.Set(Value{val: 0, ptr: boolMarker}))
}

// Sym creates a symbol as the reader would, ln is the source line (0 if unknown).
func Sym(v string, ln uint32) Value {
	return Value{ptr: unsafe.Pointer(&v), val: symbolFlag | uint64(ln)}
}

func generatedSym(v string) Value {
	return Value{ptr: unsafe.Pointer(&v), val: symbolFlag | generatedFlag}
}

func Text(v string) Value {
	return Value{val: uint64(TextType), ptr: unsafe.Pointer(&v)}
}

func (v Value) Type() Type {
	switch v.ptr {
	case boolMarker:
		return BoolType
	case int64Marker, float64Marker:
		return NumberType
	}
	switch v.val {
	case uint64(PairType), uint64(TextType), uint64(InterfaceType):
		return Type(v.val)
	}
	if v.val >= symbolFlag {
		return SymbolType
	}
	if v == Nil {
		return NilType
	}
	panic("corrupted value")
}

func (v Value) IsNil() bool  { return v == Nil }
func (v Value) IsCons() bool { return v.Type() == PairType }
func (v Value) IsAtom() bool { return v.Type() != PairType }

// IsSym reports whether v is a symbol spelled name. Generated symbols never match.
func (v Value) IsSym(name string) bool {
	return v.Type() == SymbolType && v.val&generatedFlag == 0 && v.Text() == name
}

func (v Value) Quote() (q Value) {
	if t := v.Type(); t == PairType || t == SymbolType {
		q = MakeList(Quote, v)
	} else {
		q = v
	}
	return
}

func (v Value) stringify(p *bytes.Buffer, depth int) {
	switch v.Type() {
	case NumberType:
		vf, vi, vIsInt := v.Num()
		if vIsInt {
			p.WriteString(strconv.FormatInt(vi, 10))
		} else {
			p.WriteString(strconv.FormatFloat(vf, 'f', -1, 64))
		}
	case TextType:
		p.WriteString(strconv.Quote(v.Text()))
	case SymbolType:
		p.WriteString(v.Text())
	case PairType:
		if depth > 512 {
			p.WriteString("(...)")
			return
		}
		p.WriteByte('(')
		for c := v.Cons(); ; {
			c.First.stringify(p, depth+1)
			if c.Rest.Type() != PairType {
				if c.Rest != Nil {
					p.WriteString(" . ")
					c.Rest.stringify(p, depth+1)
				}
				break
			}
			p.WriteByte(' ')
			c = c.Rest.Cons()
		}
		p.WriteByte(')')
	case BoolType:
		p.WriteString(IfStr(v.Bool(), "#t", "#f"))
	case InterfaceType:
		p.WriteString("#" + fmt.Sprintf("%#v", v.Interface()))
	default:
		p.WriteString("()")
	}
}

func (v Value) Interface() interface{} {
	switch v.Type() {
	case NumberType:
		vf, vi, vIsInt := v.Num()
		if vIsInt {
			return vi
		}
		return vf
	case TextType, SymbolType:
		return v.Text()
	case PairType:
		return v.Cons()
	case BoolType:
		return v.Bool()
	case InterfaceType:
		return *(*interface{})(v.ptr)
	default:
		return nil
	}
}

// Equals compares atoms by value and pairs by cell identity.
// Symbols compare by name, generated symbols only ever equal themselves.
func (v Value) Equals(v2 Value) bool {
	if v == v2 {
		return true
	} else if vflag, v2flag := v.Type(), v2.Type(); vflag == v2flag {
		switch vflag {
		case SymbolType:
			return v.val&generatedFlag == v2.val&generatedFlag && v.Text() == v2.Text()
		case TextType:
			return v.Text() == v2.Text()
		case NumberType:
			vf, vi, vIsInt := v.Num()
			v2f, v2i, v2IsInt := v2.Num()
			if vIsInt && v2IsInt {
				return vi == v2i
			}
			return vf == v2f
		case InterfaceType:
			a, b := v.Interface(), v2.Interface()
			ta := reflect.TypeOf(a)
			return ta != nil && ta == reflect.TypeOf(b) && ta.Comparable() && a == b
		}
	}
	return false
}

// DeepEqual compares two trees structurally, atoms by Equals.
func DeepEqual(a, b Value) bool {
	for {
		if a.Type() != PairType || b.Type() != PairType {
			return a.Equals(b)
		}
		ac, bc := a.Cons(), b.Cons()
		if ac == bc {
			return true
		}
		if !DeepEqual(ac.First, bc.First) {
			return false
		}
		a, b = ac.Rest, bc.Rest
	}
}

func (v Value) Num() (floatVal float64, intVal int64, isInt bool) {
	if v.ptr == int64Marker {
		return float64(int64(v.val)), int64(v.val), true
	}
	f := math.Float64frombits(v.val)
	return f, int64(f), false
}

func (v Value) Int() int64 {
	if v.ptr == int64Marker {
		return int64(v.val)
	}
	return int64(math.Float64frombits(v.val))
}

func (v Value) Bool() bool {
	return v.val == 1
} // unsafe

func (v Value) Text() string {
	return *(*string)(v.ptr)
} // unsafe

func (v Value) Cons() *Cons {
	return (*Cons)(v.ptr)
} // unsafe

// SymLine is the source line the reader attached to a symbol, 0 if none.
func (v Value) SymLine() uint32 {
	return uint32(v.val & lineMask)
} // unsafe

// Generated reports whether v was produced by a SymbolGenerator.
func (v Value) Generated() bool {
	return v.Type() == SymbolType && v.val&generatedFlag != 0
}

// Falsy holds for Nil and #f.
func (v Value) Falsy() bool {
	return v == Nil || (v.ptr == boolMarker && v.val == 0)
}

func (v Value) String() string {
	p := &bytes.Buffer{}
	v.stringify(p, 0)
	return p.String()
}

func (v Value) GoString() string {
	return fmt.Sprintf("{val:%016x ptr:%016x}", v.val, v.ptr)
}

func (v *Value) nop(b bool) Value {
	return *v
}

func (v *Value) Set(v2 Value) bool {
	*v = v2
	return true
}

