package vm

import (
	"bufio"
	"io"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

type opcode int

const (
	opAlloca opcode = iota
	opLoad
	opStore
	opAdd
	opSub
	opOffset
	opCompare
	opBranch
	opCondBranch
	opReturn
	opCall
	opTrunc
	opExtend
)

type instruction struct {
	op     opcode
	typ    backend.Type
	pred   backend.Predicate
	dest   backend.Value
	args   []backend.Value
	delta  int
	fn     backend.Func
	blocks [2]backend.Block
}

type global struct {
	name string
	mem  []byte
	// Offset of the address returned by Engine.Global.
	base int
}

// Backend executes the program in-process.
// It records the instructions emitted by the code generator and interprets them when Run is called.
type Backend struct {
	backend.Values
	globals []*global
	code    [][]instruction
	in      *bufio.Reader
	out     *bufio.Writer
	session *Session
	exit    int64
}

// NewBackend creates an interpreter reading from in and writing to out.
// A nil reader behaves like an empty input.
func NewBackend(in io.Reader, out io.Writer) *Backend {
	b := &Backend{out: bufio.NewWriter(out)}
	if in != nil {
		b.in = bufio.NewReader(in)
	}
	return b
}

// ExitCode is the value returned by `main` during the last Run.
func (b *Backend) ExitCode() int {
	return int(b.exit)
}

// Module ...
func (b *Backend) Module(name string) {
	b.ModuleName = name
}

// Global ...
func (b *Backend) Global(name string, size int) backend.Value {
	g := &global{name: name}
	if b.session != nil && name == "tape" {
		g.mem, g.base = b.session.attach(size)
	} else {
		g.mem = make([]byte, size)
	}
	b.globals = append(b.globals, g)
	return b.NewValue(backend.ValueInfo{Kind: backend.ValueGlobal, Type: backend.TypePointer, Name: name, Const: int64(len(b.globals) - 1)})
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
	for len(b.code) <= int(blk) {
		b.code = append(b.code, nil)
	}
	return blk
}

// EnterBlock ...
func (b *Backend) EnterBlock(blk backend.Block) {
	b.SetCurrent(blk)
}

func (b *Backend) emit(ins instruction) {
	_, blk := b.Current()
	b.code[blk] = append(b.code[blk], ins)
}

func (b *Backend) emitValue(t backend.Type, ins instruction) backend.Value {
	ins.dest = b.NewTemp(t)
	ins.typ = t
	b.emit(ins)
	return ins.dest
}

// Alloca ...
func (b *Backend) Alloca(t backend.Type) backend.Value {
	f, _ := b.Current()
	v := b.NewValue(backend.ValueInfo{Kind: backend.ValueSlot, Type: backend.TypePointer, Func: f, Slot: t})
	b.emit(instruction{op: opAlloca, dest: v, typ: t})
	return v
}

// Load ...
func (b *Backend) Load(t backend.Type, ptr backend.Value) backend.Value {
	return b.emitValue(t, instruction{op: opLoad, args: []backend.Value{ptr}})
}

// Store ...
func (b *Backend) Store(ptr backend.Value, v backend.Value) {
	b.emit(instruction{op: opStore, args: []backend.Value{ptr, v}})
}

// Int ...
func (b *Backend) Int(t backend.Type, v int64) backend.Value {
	return b.NewValue(backend.ValueInfo{Kind: backend.ValueConst, Type: t, Const: normalize(t, v)})
}

// Add ...
func (b *Backend) Add(l backend.Value, r backend.Value) backend.Value {
	return b.emitValue(b.TypeOf(l), instruction{op: opAdd, args: []backend.Value{l, r}})
}

// Sub ...
func (b *Backend) Sub(l backend.Value, r backend.Value) backend.Value {
	return b.emitValue(b.TypeOf(l), instruction{op: opSub, args: []backend.Value{l, r}})
}

// Offset ...
func (b *Backend) Offset(ptr backend.Value, delta int) backend.Value {
	return b.emitValue(backend.TypePointer, instruction{op: opOffset, args: []backend.Value{ptr}, delta: delta})
}

// Compare ...
func (b *Backend) Compare(p backend.Predicate, l backend.Value, r backend.Value) backend.Value {
	return b.emitValue(backend.TypeInt1, instruction{op: opCompare, pred: p, args: []backend.Value{l, r}})
}

// Branch ...
func (b *Backend) Branch(target backend.Block) {
	b.emit(instruction{op: opBranch, blocks: [2]backend.Block{target}})
}

// CondBranch ...
func (b *Backend) CondBranch(cond backend.Value, then backend.Block, otherwise backend.Block) {
	b.emit(instruction{op: opCondBranch, args: []backend.Value{cond}, blocks: [2]backend.Block{then, otherwise}})
}

// Return ...
func (b *Backend) Return(v backend.Value) {
	b.emit(instruction{op: opReturn, args: []backend.Value{v}})
}

// Call ...
func (b *Backend) Call(f backend.Func, args ...backend.Value) backend.Value {
	return b.emitValue(b.Func(f).Ret, instruction{op: opCall, fn: f, args: args})
}

// Trunc ...
func (b *Backend) Trunc(v backend.Value, t backend.Type) backend.Value {
	return b.emitValue(t, instruction{op: opTrunc, args: []backend.Value{v}})
}

// Extend ...
func (b *Backend) Extend(v backend.Value, t backend.Type) backend.Value {
	return b.emitValue(t, instruction{op: opExtend, args: []backend.Value{v}})
}

// normalize brings v into the canonical range of t. Bytes are kept unsigned.
func normalize(t backend.Type, v int64) int64 {
	switch t {
	case backend.TypeInt1:
		return v & 1
	case backend.TypeInt8:
		return v & 0xff
	case backend.TypeInt32:
		return int64(int32(v))
	}
	return v
}

// signed interprets a canonical value of type t as a signed number.
func signed(t backend.Type, v int64) int64 {
	switch t {
	case backend.TypeInt8:
		return int64(int8(v))
	case backend.TypeInt32:
		return int64(int32(v))
	}
	return v
}

var _ backend.Backend = (*Backend)(nil)
