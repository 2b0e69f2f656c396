package llvm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// Backend renders the program as LLVM assembly with opaque pointers.
type Backend struct {
	backend.Values
	globals []string
	bodies  map[backend.Block]*strings.Builder
}

// NewBackend ...
func NewBackend() *Backend {
	return &Backend{bodies: make(map[backend.Block]*strings.Builder)}
}

// Module ...
func (b *Backend) Module(name string) {
	b.ModuleName = name
}

// Global ...
func (b *Backend) Global(name string, size int) backend.Value {
	b.globals = append(b.globals, fmt.Sprintf("@%s = global [%d x i8] zeroinitializer", name, size))
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
func (b *Backend) Param(f backend.Func, index int) backend.Value {
	return b.ParamValue(f, index)
}

// AppendBlock ...
func (b *Backend) AppendBlock(f backend.Func) backend.Block {
	blk := b.NewBlock(f)
	b.bodies[blk] = &strings.Builder{}
	return blk
}

// EnterBlock ...
func (b *Backend) EnterBlock(blk backend.Block) {
	b.SetCurrent(blk)
}

func (b *Backend) emit(format string, args ...interface{}) {
	_, blk := b.Current()
	body := b.bodies[blk]
	body.WriteString("  ")
	fmt.Fprintf(body, format, args...)
	body.WriteByte('\n')
}

func (b *Backend) temp(t backend.Type) (backend.Value, string) {
	v := b.NewTemp(t)
	return v, b.name(v)
}

// name returns the operand syntax of v without its type.
func (b *Backend) name(v backend.Value) string {
	info := b.Info(v)
	switch info.Kind {
	case backend.ValueConst:
		if info.Type == backend.TypeInt1 {
			if info.Const != 0 {
				return "true"
			}
			return "false"
		}
		return strconv.FormatInt(signed(info.Type, info.Const), 10)
	case backend.ValueGlobal:
		return "@" + info.Name
	case backend.ValueParam:
		return "%p" + strconv.FormatInt(info.Const, 10)
	}
	return "%t" + strconv.Itoa(int(v))
}

// typed returns `<type> <operand>`.
func (b *Backend) typed(v backend.Value) string {
	return b.TypeOf(v).String() + " " + b.name(v)
}

// Alloca ...
func (b *Backend) Alloca(t backend.Type) backend.Value {
	f, _ := b.Current()
	v := b.NewValue(backend.ValueInfo{Kind: backend.ValueSlot, Type: backend.TypePointer, Func: f, Slot: t})
	b.emit("%s = alloca %s", b.name(v), t)
	return v
}

// Load ...
func (b *Backend) Load(t backend.Type, ptr backend.Value) backend.Value {
	v, n := b.temp(t)
	b.emit("%s = load %s, %s", n, t, b.typed(ptr))
	return v
}

// Store ...
func (b *Backend) Store(ptr backend.Value, v backend.Value) {
	b.emit("store %s, %s", b.typed(v), b.typed(ptr))
}

// Int ...
func (b *Backend) Int(t backend.Type, v int64) backend.Value {
	return b.NewValue(backend.ValueInfo{Kind: backend.ValueConst, Type: t, Const: v})
}

func (b *Backend) binary(op string, l backend.Value, r backend.Value) backend.Value {
	v, n := b.temp(b.TypeOf(l))
	b.emit("%s = %s %s, %s", n, op, b.typed(l), b.name(r))
	return v
}

// Add ...
func (b *Backend) Add(l backend.Value, r backend.Value) backend.Value {
	return b.binary("add", l, r)
}

// Sub ...
func (b *Backend) Sub(l backend.Value, r backend.Value) backend.Value {
	return b.binary("sub", l, r)
}

// Offset ...
func (b *Backend) Offset(ptr backend.Value, delta int) backend.Value {
	v, n := b.temp(backend.TypePointer)
	b.emit("%s = getelementptr i8, %s, i64 %d", n, b.typed(ptr), delta)
	return v
}

// Compare ...
func (b *Backend) Compare(p backend.Predicate, l backend.Value, r backend.Value) backend.Value {
	v, n := b.temp(backend.TypeInt1)
	b.emit("%s = icmp %s %s, %s", n, p, b.typed(l), b.name(r))
	return v
}

// Branch ...
func (b *Backend) Branch(target backend.Block) {
	b.emit("br label %%b%d", target)
}

// CondBranch ...
func (b *Backend) CondBranch(cond backend.Value, then backend.Block, otherwise backend.Block) {
	b.emit("br %s, label %%b%d, label %%b%d", b.typed(cond), then, otherwise)
}

// Return ...
func (b *Backend) Return(v backend.Value) {
	b.emit("ret %s", b.typed(v))
}

// Call ...
func (b *Backend) Call(f backend.Func, args ...backend.Value) backend.Value {
	fi := b.Func(f)
	var list []string
	for _, a := range args {
		list = append(list, b.typed(a))
	}
	v, n := b.temp(fi.Ret)
	b.emit("%s = call %s @%s(%s)", n, fi.Ret, fi.Name, strings.Join(list, ", "))
	return v
}

// Trunc ...
func (b *Backend) Trunc(v backend.Value, t backend.Type) backend.Value {
	r, n := b.temp(t)
	b.emit("%s = trunc %s to %s", n, b.typed(v), t)
	return r
}

// Extend ...
func (b *Backend) Extend(v backend.Value, t backend.Type) backend.Value {
	r, n := b.temp(t)
	b.emit("%s = sext %s to %s", n, b.typed(v), t)
	return r
}

func signed(t backend.Type, v int64) int64 {
	switch t {
	case backend.TypeInt8:
		return int64(int8(v))
	case backend.TypeInt32:
		return int64(int32(v))
	}
	return v
}
