package value

// MakeList builds a list right to left. When there are at least three values
// and the second-to-last one is the symbol '.', the last value becomes the
// tail of the chain instead of an element: [a . b] => (a . b).
func MakeList(vals ...Value) Value {
	tail, n := Nil, len(vals)
	if n >= 3 && vals[n-2].IsSym(".") {
		tail, n = vals[n-1], n-2
	}
	for i := n - 1; i >= 0; i-- {
		tail = Pair(&Cons{First: vals[i], Rest: tail})
	}
	return tail
}

// FromSlice builds a proper list left to right in a single pass.
func FromSlice(vals []Value) Value {
	b := InitListBuilder()
	for _, v := range vals {
		b = b.Append(v)
	}
	return b.Build()
}

// ToSlice collects the elements of a proper list. Improper lists and atoms
// other than Nil are rejected.
func ToSlice(v Value) (s []Value, err error) {
	for start := v; v.Type() != NilType; v = v.Cons().Rest {
		if v.Type() != PairType {
			return nil, Errorf(NotAList, "not a proper list: %v", start)
		}
		s = append(s, v.Cons().First)
	}
	return s, nil
}

// Foreach calls cb for every element of a pair chain until cb returns false.
// A non-Nil tail is not visited.
func Foreach(v Value, cb func(Value) bool) {
	for flag := true; flag && v.Type() == PairType; v = v.Cons().Rest {
		flag = cb(v.Cons().First)
	}
}

// ListBuilder appends cells at the end of a list under construction by
// keeping the first and last cell. It is a value type: keep the result of
// Append, as with the built-in append.
type ListBuilder struct {
	Len        int
	head, last *Cons
}

func InitListBuilder() (b ListBuilder) {
	return b
}

func (b ListBuilder) Append(v Value) ListBuilder {
	c := &Cons{First: v, Rest: Nil}
	if b.last == nil {
		b.head = c
	} else {
		b.last.Rest = Pair(c)
	}
	b.last, b.Len = c, b.Len+1
	return b
}

// Build returns the list, terminated by Nil.
func (b ListBuilder) Build() Value {
	return Pair(b.head)
}

// BuildDotted returns the list with tail as the Rest of its last cell.
// An empty builder returns tail itself.
func (b ListBuilder) BuildDotted(tail Value) Value {
	if b.last == nil {
		return tail
	}
	b.last.Rest = tail
	return Pair(b.head)
}
