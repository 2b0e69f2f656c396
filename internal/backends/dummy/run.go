package dummy

import (
	"fmt"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// Backend This backend does not do anything.
// It only counts what it is asked to build, which is enough to check a program.
type Backend struct {
	backend.Values
	instructions int
}

// NewBackend ...
func NewBackend() *Backend {
	return &Backend{}
}

func (b *Backend) temp(t backend.Type) backend.Value {
	b.instructions++
	return b.NewTemp(t)
}

// Module ...
func (b *Backend) Module(name string) { b.ModuleName = name }

// Global ...
func (b *Backend) Global(name string, size int) backend.Value {
	return b.NewValue(backend.ValueInfo{Kind: backend.ValueGlobal, Type: backend.TypePointer, Name: name, Const: int64(size)})
}

// Declare ...
func (b *Backend) Declare(name string, ret backend.Type, params ...backend.Type) backend.Func {
	return b.NewFunc(name, ret, params, true)
}

// Define ...
func (b *Backend) Define(name string, ret backend.Type, params ...backend.Type) backend.Func {
	return b.NewFunc(name, ret, params, false)
}

// Param ...
func (b *Backend) Param(f backend.Func, index int) backend.Value { return b.ParamValue(f, index) }

// AppendBlock ...
func (b *Backend) AppendBlock(f backend.Func) backend.Block { return b.NewBlock(f) }

// EnterBlock ...
func (b *Backend) EnterBlock(blk backend.Block) { b.SetCurrent(blk) }

// Alloca ...
func (b *Backend) Alloca(t backend.Type) backend.Value {
	f, _ := b.Current()
	b.instructions++
	return b.NewValue(backend.ValueInfo{Kind: backend.ValueSlot, Type: backend.TypePointer, Func: f, Slot: t})
}

// Load ...
func (b *Backend) Load(t backend.Type, ptr backend.Value) backend.Value { return b.temp(t) }

// Store ...
func (b *Backend) Store(ptr backend.Value, v backend.Value) { b.instructions++ }

// Int ...
func (b *Backend) Int(t backend.Type, v int64) backend.Value {
	return b.NewValue(backend.ValueInfo{Kind: backend.ValueConst, Type: t, Const: v})
}

// Add ...
func (b *Backend) Add(l backend.Value, r backend.Value) backend.Value { return b.temp(b.TypeOf(l)) }

// Sub ...
func (b *Backend) Sub(l backend.Value, r backend.Value) backend.Value { return b.temp(b.TypeOf(l)) }

// Offset ...
func (b *Backend) Offset(ptr backend.Value, delta int) backend.Value {
	return b.temp(backend.TypePointer)
}

// Compare ...
func (b *Backend) Compare(p backend.Predicate, l backend.Value, r backend.Value) backend.Value {
	return b.temp(backend.TypeInt1)
}

// Branch ...
func (b *Backend) Branch(target backend.Block) { b.instructions++ }

// CondBranch ...
func (b *Backend) CondBranch(cond backend.Value, then backend.Block, otherwise backend.Block) {
	b.instructions++
}

// Return ...
func (b *Backend) Return(v backend.Value) { b.instructions++ }

// Call ...
func (b *Backend) Call(f backend.Func, args ...backend.Value) backend.Value {
	return b.temp(b.Func(f).Ret)
}

// Trunc ...
func (b *Backend) Trunc(v backend.Value, t backend.Type) backend.Value { return b.temp(t) }

// Extend ...
func (b *Backend) Extend(v backend.Value, t backend.Type) backend.Value { return b.temp(t) }

// Run reports the size of the generated code. Nothing is compiled.
func (b *Backend) Run(output string) (message string, err error) {
	return fmt.Sprintf("Dummy backend used, nothing has been compiled. %d blocks, %d instructions.", b.BlockCount(), b.instructions), nil
}

var _ backend.Backend = (*Backend)(nil)
