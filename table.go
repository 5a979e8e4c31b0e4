package paremnet

import (
	"sort"
	"sync"

	"github.com/simendsjo/paremnet/value"
)

// Table maps macro names to definitions. It is safe for concurrent use;
// definitions themselves are never mutated once stored.
type Table struct {
	mu sync.RWMutex
	m  map[string]*Macro
}

func NewTable() *Table {
	return &Table{m: map[string]*Macro{}}
}

// Define stores m, replacing any macro of the same name.
func (t *Table) Define(m *Macro) {
	t.mu.Lock()
	t.m[m.Name] = m
	t.mu.Unlock()
}

// Lookup finds the macro named by the symbol sym. Generated symbols never
// name a macro.
func (t *Table) Lookup(sym value.Value) (*Macro, bool) {
	if sym.Type() != value.SymbolType || sym.Generated() {
		return nil, false
	}
	t.mu.RLock()
	m, ok := t.m[sym.Text()]
	t.mu.RUnlock()
	return m, ok
}

func (t *Table) Delete(name string) {
	t.mu.Lock()
	delete(t.m, name)
	t.mu.Unlock()
}

func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.m)
}

// Names returns the defined macro names, sorted.
func (t *Table) Names() []string {
	t.mu.RLock()
	names := make([]string, 0, len(t.m))
	for k := range t.m {
		names = append(names, k)
	}
	t.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Merge copies every definition of from into t.
func (t *Table) Merge(from *Table) {
	if t == from {
		return
	}
	from.mu.RLock()
	defer from.mu.RUnlock()
	t.mu.Lock()
	defer t.mu.Unlock()
	for k, v := range from.m {
		t.m[k] = v
	}
}

func (t *Table) Clone() *Table {
	t.mu.RLock()
	defer t.mu.RUnlock()
	t2 := &Table{m: make(map[string]*Macro, len(t.m))}
	for k, v := range t.m {
		t2.m[k] = v
	}
	return t2
}
