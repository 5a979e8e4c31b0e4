package value

// Cons is a two-slot list cell. Cells may be shared by several lists, so a
// cell reachable from a returned list must not be mutated; ListBuilder is the
// only code that relinks Rest, and only while it is still building.
type Cons struct {
	First Value
	Rest  Value
}

// GetNthCons walks n cells from c.
func (c *Cons) GetNthCons(n int) (*Cons, error) {
	if n < 0 {
		return nil, Errorf(OutOfBounds, "index %d out of bounds", n)
	}
	for i := 0; i < n; i++ {
		if c.Rest.Type() != PairType {
			return nil, Errorf(OutOfBounds, "index %d out of bounds, list has %d elements", n, i+1)
		}
		c = c.Rest.Cons()
	}
	return c, nil
}

// GetNth returns the n-th element (0-based).
func (c *Cons) GetNth(n int) (Value, error) {
	nc, err := c.GetNthCons(n)
	if err != nil {
		return Nil, err
	}
	return nc.First, nil
}

// GetNthTail returns the list after the n-th cell.
func (c *Cons) GetNthTail(n int) (Value, error) {
	nc, err := c.GetNthCons(n)
	if err != nil {
		return Nil, err
	}
	return nc.Rest, nil
}

func (c *Cons) mustNthCons(n int) *Cons {
	nc, err := c.GetNthCons(n)
	if err != nil {
		panic(err)
	}
	return nc
}

// The accessors below panic with an OutOfBounds *Error on short lists,
// the way car/cdr of an empty list does.

func (c *Cons) Second() Value      { return c.mustNthCons(1).First }
func (c *Cons) Third() Value       { return c.mustNthCons(2).First }
func (c *Cons) Fourth() Value      { return c.mustNthCons(3).First }
func (c *Cons) AfterFirst() Value  { return c.Rest }
func (c *Cons) AfterSecond() Value { return c.mustNthCons(1).Rest }
func (c *Cons) AfterThird() Value  { return c.mustNthCons(2).Rest }

func (c *Cons) String() string { return Pair(c).String() }

func IsCons(v Value) bool { return v.IsCons() }
func IsAtom(v Value) bool { return v.IsAtom() }
func IsNil(v Value) bool  { return v.IsNil() }

// IsList reports whether v is a proper list. Circular chains report false.
func IsList(v Value) bool {
	slow, fast := v, v
	for {
		for i := 0; i < 2; i++ {
			switch fast.Type() {
			case NilType:
				return true
			case PairType:
				fast = fast.Cons().Rest
			default:
				return false
			}
		}
		slow = slow.Cons().Rest
		if slow == fast {
			return false
		}
	}
}

// Length counts the pair links starting at v. It does not require a proper
// list and returns 0 for any non-pair.
func Length(v Value) (length int) {
	for ; v.Type() == PairType; v = v.Cons().Rest {
		length++
	}
	return
}

// Last returns the last cell of a pair chain, nil for a non-pair.
func Last(v Value) (last *Cons) {
	for ; v.Type() == PairType; v = v.Cons().Rest {
		last = v.Cons()
	}
	return
}

// Take copies the first n elements of v into a new proper list.
func Take(v Value, n int) (Value, error) {
	b := InitListBuilder()
	for ; b.Len < n; v = v.Cons().Rest {
		if v.Type() != PairType {
			return Nil, Errorf(OutOfBounds, "take(%d): not enough values (%d)", n, b.Len)
		}
		b = b.Append(v.Cons().First)
	}
	return b.Build(), nil
}
