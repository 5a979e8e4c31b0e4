package paremnet

import (
	_ "embed"
	"sync"
)

//go:embed core.lisp
var coreSource string

var core struct {
	once  sync.Once
	table *Table
	err   error
}

// CoreTable returns a fresh copy of the table holding the core derived forms:
// let, let*, letrec, define, and, or, cond, case, while, for and dotimes.
func CoreTable() (*Table, error) {
	core.once.Do(func() {
		e := New()
		_, core.err = e.LoadString("core.lisp", coreSource)
		core.table = e.table
	})
	if core.err != nil {
		return nil, core.err
	}
	return core.table.Clone(), nil
}
