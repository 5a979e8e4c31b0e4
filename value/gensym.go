package value

import (
	"strconv"
	"sync/atomic"
)

// SymbolGenerator hands out fresh symbols. The counter only grows, so two
// calls never return the same symbol, whatever the prefix.
type SymbolGenerator struct {
	counter uint64
}

// DefaultGenerator is shared by the whole process and is never reset.
var DefaultGenerator = &SymbolGenerator{}

// Fresh returns a symbol spelled prefix#N. Generated symbols never equal a
// symbol built by Sym, even one with the same spelling.
func (g *SymbolGenerator) Fresh(prefix string) Value {
	if prefix == "" {
		prefix = "G"
	}
	n := atomic.AddUint64(&g.counter, 1)
	return generatedSym(prefix + "#" + strconv.FormatUint(n, 10))
}

// Fresh draws from DefaultGenerator.
func Fresh(prefix string) Value {
	return DefaultGenerator.Fresh(prefix)
}
