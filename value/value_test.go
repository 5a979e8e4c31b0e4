package value

import (
	"math"
	"math/rand"
	"sync"
	"testing"
)

func syms(names ...string) []Value {
	s := make([]Value, len(names))
	for i, n := range names {
		s[i] = Sym(n, 0)
	}
	return s
}

func TestNumber(t *testing.T) {
	check := func(n Value, v float64) {
		if vf, _, _ := n.Num(); n.Type() != NumberType || vf != v {
			t.Fatal(n.GoString(), v)
		}
	}
	check(Num(0), 0)
	check(Num(math.Inf(1)), math.Inf(1))
	check(Num(math.Inf(-1)), math.Inf(-1))
	check(Num(math.MaxFloat64), math.MaxFloat64)
	check(Num(-math.MaxFloat64), -math.MaxFloat64)

	for i := 0; i < 1e5; i++ {
		x := rand.Int63()
		v := Int(x)
		if v.Type() != NumberType || v.Int() != x {
			t.FailNow()
		}
	}

	if !Int(2).Equals(Num(2)) || Int(2).Equals(Num(2.5)) {
		t.Fatal("check Value.Equals on numbers")
	}
	if ParseNumber("inf") != Nil || ParseNumber("+") != Nil || ParseNumber("-1").Int() != -1 || ParseNumber("0x10").Int() != 16 {
		t.Fatal("check ParseNumber")
	}
}

func TestTypes(t *testing.T) {
	check := func(v Value, typ Type, str string) {
		if v.Type() != typ {
			t.Fatal(v.GoString(), Types[v.Type()], "!=", Types[typ])
		}
		if v.String() != str {
			t.Fatal(v.String(), "!=", str)
		}
	}
	check(Nil, NilType, "()")
	check(Sym("abc", 3), SymbolType, "abc")
	check(Text("a\"b"), TextType, `"a\"b"`)
	check(Bool(true), BoolType, "#t")
	check(Bool(false), BoolType, "#f")
	check(Int(-7), NumberType, "-7")
	check(Num(1.5), NumberType, "1.5")
	check(NewCons(Int(1), Int(2)), PairType, "(1 . 2)")
	check(MakeList(Int(1), MakeList(Sym("a", 0)), Text("x")), PairType, `(1 (a) "x")`)
	check(New(struct{}{}), InterfaceType, "#struct {}{}")
	check(New([]int{1, 2}), PairType, "(1 2)")

	if Sym("abc", 3).SymLine() != 3 {
		t.Fatal("line info lost")
	}
	if !Nil.Falsy() || !Bool(false).Falsy() || Int(0).Falsy() || Bool(true).Falsy() {
		t.Fatal("check Falsy")
	}
}

func TestEquality(t *testing.T) {
	a1, a2 := Sym("a", 1), Sym("a", 9)
	if !a1.Equals(a2) || a1.Equals(Text("a")) {
		t.Fatal("symbols compare by name")
	}
	l1, l2 := MakeList(a1), MakeList(a1)
	if l1.Equals(l2) {
		t.Fatal("pairs must not compare structurally")
	}
	if !DeepEqual(l1, l2) || DeepEqual(l1, MakeList(a1, a1)) {
		t.Fatal("check DeepEqual")
	}
	if !Nil.Equals(Nil) || Nil.Equals(MakeList(Nil)) {
		t.Fatal("nil compares by identity")
	}

	m := New(map[string]int{})
	if !m.Equals(m) || m.Equals(New(map[string]int{})) || DeepEqual(MakeList(m), MakeList(New(map[string]int{}))) {
		t.Fatal("opaque maps compare by identity")
	}
	type pt struct{ X, Y int }
	if !New(pt{1, 2}).Equals(New(pt{1, 2})) || New(pt{1, 2}).Equals(New(pt{2, 1})) || New(pt{1, 2}).Equals(New(&pt{1, 2})) {
		t.Fatal("comparable opaque values compare by value")
	}
}

func TestRoundTrip(t *testing.T) {
	for _, s := range [][]Value{
		nil,
		{Int(1)},
		{Int(1), Text("two"), Sym("three", 0)},
		{MakeList(Int(1), Int(2)), Nil, Bool(true)},
		syms("a", ".", "b", "c"),
	} {
		out, err := ToSlice(FromSlice(s))
		if err != nil {
			t.Fatal(err)
		}
		if len(out) != len(s) {
			t.Fatal(s, out)
		}
		for i := range s {
			if !s[i].Equals(out[i]) {
				t.Fatal(s, out)
			}
		}
	}
}

func TestDottedMakeList(t *testing.T) {
	v := MakeList(syms("a", ".", "b")...)
	c := v.Cons()
	if !c.First.IsSym("a") || !c.Rest.IsSym("b") {
		t.Fatal(v)
	}
	if Length(v) != 1 {
		t.Fatal(Length(v))
	}
	if _, err := ToSlice(v); !IsKind(err, NotAList) {
		t.Fatal(err)
	}
	if v.String() != "(a . b)" {
		t.Fatal(v)
	}

	v = MakeList(syms("a", "b", ".", "c")...)
	if v.String() != "(a b . c)" || Length(v) != 2 {
		t.Fatal(v)
	}

	// too short to be dotted, the sentinel stays an element
	v = MakeList(syms(".", "b")...)
	if v.String() != "(. b)" || !IsList(v) {
		t.Fatal(v)
	}

	if _, err := ToSlice(Int(1)); !IsKind(err, NotAList) {
		t.Fatal(err)
	}
	if s, err := ToSlice(Nil); err != nil || len(s) != 0 {
		t.Fatal(s, err)
	}
}

func TestIsList(t *testing.T) {
	x, y := Sym("x", 0), Sym("y", 0)
	if !IsList(Nil) || !IsList(NewCons(x, Nil)) || IsList(NewCons(x, y)) || IsList(x) {
		t.Fatal("check IsList")
	}

	c := &Cons{First: x}
	c.Rest = Pair(c)
	if IsList(Pair(c)) {
		t.Fatal("circular list reported as proper")
	}
	c2 := &Cons{First: y, Rest: Pair(c)}
	c3 := &Cons{First: y, Rest: Pair(c2)}
	c.Rest = Pair(c3)
	if IsList(Pair(c)) || IsList(Pair(c2)) {
		t.Fatal("circular list reported as proper")
	}
}

func TestNth(t *testing.T) {
	l := MakeList(Int(1), Int(2), Int(3)).Cons()
	last, err := l.GetNthCons(2)
	if err != nil || last.First.Int() != 3 || last.Rest != Nil {
		t.Fatal(last, err)
	}
	if _, err := l.GetNthCons(3); !IsKind(err, OutOfBounds) {
		t.Fatal(err)
	}
	if v, _ := l.GetNth(1); v.Int() != 2 {
		t.Fatal(v)
	}
	if v, _ := l.GetNthTail(0); v.String() != "(2 3)" {
		t.Fatal(v)
	}
	if l.Second().Int() != 2 || l.Third().Int() != 3 || l.AfterSecond().String() != "(3)" || l.AfterThird() != Nil {
		t.Fatal(l)
	}

	func() {
		var err error
		defer func() {
			if !IsKind(err, OutOfBounds) {
				t.Fatal(err)
			}
		}()
		defer Catch(&err)
		l.Fourth()
	}()

	if Length(Int(5)) != 0 || Length(Nil) != 0 || Length(Pair(l)) != 3 {
		t.Fatal("check Length")
	}
}

func TestSharedTail(t *testing.T) {
	tail := MakeList(Int(2), Int(3))
	a, b := NewCons(Int(0), tail), NewCons(Int(1), tail)
	if a.Cons().Rest.Cons() != b.Cons().Rest.Cons() {
		t.Fatal("tails must be shared")
	}
	if v, _ := Take(a, 2); v.String() != "(0 2)" {
		t.Fatal(v)
	}
	if _, err := Take(a, 4); !IsKind(err, OutOfBounds) {
		t.Fatal(err)
	}
	if Last(b).First.Int() != 3 {
		t.Fatal(Last(b))
	}
}

func TestFresh(t *testing.T) {
	a, b := Fresh("WHILE"), Fresh("WHILE")
	if a.Equals(b) || a.Text() == b.Text() {
		t.Fatal(a, b)
	}
	if !a.Generated() || Sym(a.Text(), 0).Equals(a) || a.IsSym(a.Text()) {
		t.Fatal("generated symbol collides with a reader symbol")
	}
	if !a.Equals(a) {
		t.Fatal(a)
	}

	g := &SymbolGenerator{}
	seen := sync.Map{}
	wg := sync.WaitGroup{}
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if _, dup := seen.LoadOrStore(g.Fresh("G").Text(), true); dup {
					t.Error("duplicate symbol")
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMarshal(t *testing.T) {
	lst := MakeList(Sym("lambda", 4), MakeList(Sym("x", 4), Dot, Sym("rest", 4)),
		MakeList(Sym("+", 5), Sym("x", 5), Num(1.25), Int(-3)), Text("s"), Bool(true), Bool(false), Nil, Fresh("CASE"))
	buf, err := lst.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var v Value
	if err := v.Unmarshal(buf); err != nil {
		t.Fatal(err)
	}
	if !DeepEqual(v, lst) || v.String() != lst.String() {
		t.Fatal(v, lst)
	}
	if v.Cons().First.SymLine() != 4 {
		t.Fatal("line info lost")
	}

	if _, err := New(struct{}{}).Marshal(); !IsKind(err, Eval) {
		t.Fatal(err)
	}
	if err := v.Unmarshal(buf[:len(buf)-1]); err == nil {
		t.Fatal("truncated input accepted")
	}
}
