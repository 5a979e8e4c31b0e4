package value

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
)

// Marshal encodes a value tree, typically an expanded form handed over to a
// compiler in another process. Opaque interface payloads cannot be encoded.
// Generated symbols keep their flag but are only guaranteed fresh within the
// process whose generator produced them.
func (v Value) Marshal() (buf []byte, err error) {
	defer Catch(&err)
	p := &bytes.Buffer{}
	v.marshal(p)
	return p.Bytes(), nil
}

func (v *Value) Unmarshal(buf []byte) (err error) {
	defer Catch(&err)
	rd := bytes.NewReader(buf)
	v.unmarshal(rd)
	PanicIf(rd.Len() != 0, Syntax, "unmarshal: trailing data")
	return nil
}

func panicerr(err error) {
	if err != nil {
		panic(Errorf(Syntax, "unmarshal: %v", err))
	}
}

func writeString(p *bytes.Buffer, s string) {
	var tmp [10]byte
	n := binary.PutUvarint(tmp[:], uint64(len(s)))
	p.Write(tmp[:n])
	p.WriteString(s)
}

func readString(p *bytes.Reader) string {
	ln, err := binary.ReadUvarint(p)
	panicerr(err)
	PanicIf(ln > uint64(p.Len()), Syntax, "unmarshal: string length exceeds input")
	buf := make([]byte, ln)
	_, err = io.ReadFull(p, buf)
	panicerr(err)
	return string(buf)
}

func (v Value) marshal(p *bytes.Buffer) {
	var tmp [10]byte
	switch v.Type() {
	case NumberType:
		if vf, vi, isInt := v.Num(); isInt {
			p.WriteByte('N')
			n := binary.PutVarint(tmp[:], vi)
			p.Write(tmp[:n])
		} else {
			p.WriteByte('n')
			binary.BigEndian.PutUint64(tmp[:8], math.Float64bits(vf))
			p.Write(tmp[:8])
		}
	case SymbolType:
		p.WriteByte('y')
		n := binary.PutUvarint(tmp[:], v.val&(generatedFlag|lineMask))
		p.Write(tmp[:n])
		writeString(p, v.Text())
	case TextType:
		p.WriteByte('s')
		writeString(p, v.Text())
	case PairType:
		p.WriteByte('l')
		for ; v.Type() == PairType; v = v.Cons().Rest {
			p.WriteByte(1)
			v.Cons().First.marshal(p)
		}
		p.WriteByte(0)
		v.marshal(p)
	case BoolType:
		p.WriteByte(IfStr(v.Bool(), "B", "b")[0])
	case InterfaceType:
		panic(Errorf(Eval, "marshal: %T cannot be marshaled", v.Interface()))
	default:
		p.WriteByte('v')
	}
}

func (v *Value) unmarshal(p *bytes.Reader) {
	tag, err := p.ReadByte()
	panicerr(err)
	switch tag {
	case 'N':
		i, err := binary.ReadVarint(p)
		panicerr(err)
		*v = Int(i)
	case 'n':
		var tmp [8]byte
		_, err := io.ReadFull(p, tmp[:])
		panicerr(err)
		*v = Value{val: binary.BigEndian.Uint64(tmp[:]), ptr: float64Marker}
	case 'y':
		flags, err := binary.ReadUvarint(p)
		panicerr(err)
		name := readString(p)
		if flags&generatedFlag != 0 {
			*v = generatedSym(name)
		} else {
			*v = Sym(name, uint32(flags&lineMask))
		}
	case 's':
		*v = Text(readString(p))
	case 'l':
		b := InitListBuilder()
		for {
			more, err := p.ReadByte()
			panicerr(err)
			var v2 Value
			v2.unmarshal(p)
			if more == 0 {
				*v = b.BuildDotted(v2)
				break
			}
			b = b.Append(v2)
		}
	case 'b', 'B':
		*v = Bool(tag == 'B')
	case 'v':
		*v = Nil
	default:
		panic(Errorf(Syntax, "unmarshal: invalid tag %q", tag))
	}
}
