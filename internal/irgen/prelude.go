package irgen

import (
	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// genPrelude declares the tape and the C library functions, defines `max`
// and leaves the cursor in the entry block of `main` after the data pointer has been initialized.
func (g *generator) genPrelude(cfg Config) {
	e := g.e
	e.Module(cfg.ModuleName)
	g.tape = e.Global("tape", cfg.TapeSize)
	g.getchar = e.Declare("getchar", backend.TypeInt32)
	g.putchar = e.Declare("putchar", backend.TypeInt32, backend.TypeInt32)
	g.max = g.genMax()

	g.main = e.Define("main", backend.TypeInt32)
	e.EnterBlock(e.AppendBlock(g.main))
	g.ptr = e.Alloca(backend.TypePointer)
	e.Store(g.ptr, g.tape)
}

// genMax defines `max(a, b)` returning the larger of two signed 32 bit values.
func (g *generator) genMax() backend.Func {
	e := g.e
	f := e.Define("max", backend.TypeInt32, backend.TypeInt32, backend.TypeInt32)
	entry := e.AppendBlock(f)
	first := e.AppendBlock(f)
	second := e.AppendBlock(f)
	a := e.Param(f, 0)
	b := e.Param(f, 1)

	e.EnterBlock(entry)
	e.CondBranch(e.Compare(backend.PredicateSGT, a, b), first, second)
	e.EnterBlock(first)
	e.Return(a)
	e.EnterBlock(second)
	e.Return(b)
	return f
}
