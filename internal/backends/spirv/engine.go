package spirv

import (
	"github.com/vs-ude/brainfuck/internal/backends/backend"

	. "github.com/vs-ude/spirv"
)

type function struct {
	id     Id
	params []Id
	labels map[backend.Block]Id
	code   map[backend.Block]InstructionList
	// OpVariable instructions, placed at the start of the first block.
	locals InstructionList
}

// Backend emits an OpenCL flavoured SPIR-V module.
// The C library functions are imported through linkage attributes and `main` is exported.
type Backend struct {
	backend.Values
	m       *ModuleBuilder
	ids     map[backend.Value]Id
	globals map[backend.Value]Id
	funcs   map[backend.Func]*function
}

// NewBackend ...
func NewBackend() *Backend {
	m := NewModuleBuilder()
	m.AddCapability(CapabilityAddresses)
	m.AddCapability(CapabilityLinkage)
	m.AddCapability(CapabilityKernel)
	m.AddCapability(CapabilityInt8)
	m.AddressingModel = AddressingModelPhysical64
	m.MemoryModel = MemoryModelOpenCL
	return &Backend{
		m:       m,
		ids:     make(map[backend.Value]Id),
		globals: make(map[backend.Value]Id),
		funcs:   make(map[backend.Func]*function),
	}
}

func (b *Backend) intType(width uint32) Id {
	return b.m.EnsureType(&OpTypeInt{Width: width, Signedness: 0})
}

func (b *Backend) pointerType(sc StorageClass, t Id) Id {
	return b.m.EnsureType(&OpTypePointer{StorageClass: sc, Type: t})
}

// bytePointer is the type of all pointers into globals.
func (b *Backend) bytePointer() Id {
	return b.pointerType(StorageClassCrossWorkgroup, b.intType(8))
}

func (b *Backend) typeID(t backend.Type) Id {
	switch t {
	case backend.TypeInt1:
		return b.m.EnsureType(&OpTypeBool{})
	case backend.TypeInt8:
		return b.intType(8)
	case backend.TypeInt32:
		return b.intType(32)
	case backend.TypePointer:
		return b.bytePointer()
	}
	return b.m.EnsureType(&OpTypeVoid{})
}

func (b *Backend) constant(t backend.Type, v int64) Id {
	switch t {
	case backend.TypeInt1:
		if v != 0 {
			return b.m.EnsureConstant(&OpConstantTrue{ResultType: b.typeID(t)})
		}
		return b.m.EnsureConstant(&OpConstantFalse{ResultType: b.typeID(t)})
	case backend.TypeInt8:
		return b.m.EnsureConstant(&OpConstant{ResultType: b.typeID(t), Value: uint32(v & 0xff)})
	}
	return b.m.EnsureConstant(&OpConstant{ResultType: b.typeID(t), Value: uint32(int32(v))})
}

func (b *Backend) emit(instr Instruction) {
	f, blk := b.Current()
	fn := b.funcs[f]
	fn.code[blk] = append(fn.code[blk], instr)
}

// operand returns the id of v. The address of a global is computed where it is used.
func (b *Backend) operand(v backend.Value) Id {
	if g, ok := b.globals[v]; ok {
		id := b.m.NewResultId()
		b.emit(&OpInBoundsAccessChain{ResultType: b.bytePointer(), ResultId: id, Base: g, Indexes: []Id{b.constant(backend.TypeInt32, 0)}})
		return id
	}
	id, ok := b.ids[v]
	if !ok {
		panic("Oooops, value without id")
	}
	return id
}

func (b *Backend) temp(t backend.Type) (backend.Value, Id) {
	v := b.NewTemp(t)
	id := b.m.NewResultId()
	b.ids[v] = id
	return v, id
}

// Module ...
func (b *Backend) Module(name string) {
	b.ModuleName = name
	b.m.Debug = append(b.m.Debug, &OpSource{SourceLanguage: SourceLanguageUnknown, Version: 0})
}

// Global ...
func (b *Backend) Global(name string, size int) backend.Value {
	arr := b.m.EnsureType(&OpTypeArray{ElementType: b.intType(8), Length: b.constant(backend.TypeInt32, int64(size))})
	id := b.m.NewResultId()
	b.m.AddGlobal(&OpVariable{ResultType: b.pointerType(StorageClassCrossWorkgroup, arr), ResultId: id, StorageClass: StorageClassCrossWorkgroup, Initializer: b.m.EnsureConstant(&OpConstantNull{ResultType: arr})})
	b.m.AddName(id, name)
	v := b.NewValue(backend.ValueInfo{Kind: backend.ValueGlobal, Type: backend.TypePointer, Name: name, Const: int64(size)})
	b.globals[v] = id
	return v
}

func (b *Backend) function(name string, ret backend.Type, params []backend.Type, external bool) backend.Func {
	f := b.NewFunc(name, ret, params, external)
	fn := &function{id: b.m.NewResultId(), labels: make(map[backend.Block]Id), code: make(map[backend.Block]InstructionList)}
	for i := range params {
		id := b.m.NewResultId()
		fn.params = append(fn.params, id)
		if !external {
			b.ids[b.ParamValue(f, i)] = id
		}
	}
	b.funcs[f] = fn
	b.m.AddName(fn.id, name)
	if external {
		b.m.AddLinkage(fn.id, name, LinkageTypeImport)
	} else if name == "main" {
		b.m.AddLinkage(fn.id, name, LinkageTypeExport)
	}
	return f
}

// Declare ...
func (b *Backend) Declare(name string, ret backend.Type, params ...backend.Type) backend.Func {
	return b.function(name, ret, params, true)
}

// Define ...
func (b *Backend) Define(name string, ret backend.Type, params ...backend.Type) backend.Func {
	return b.function(name, ret, params, false)
}

// Param ...
func (b *Backend) Param(f backend.Func, index int) backend.Value {
	return b.ParamValue(f, index)
}

// AppendBlock ...
func (b *Backend) AppendBlock(f backend.Func) backend.Block {
	blk := b.NewBlock(f)
	b.funcs[f].labels[blk] = b.m.NewResultId()
	return blk
}

// EnterBlock ...
func (b *Backend) EnterBlock(blk backend.Block) {
	b.SetCurrent(blk)
}

// Alloca ...
func (b *Backend) Alloca(t backend.Type) backend.Value {
	f, _ := b.Current()
	v := b.NewValue(backend.ValueInfo{Kind: backend.ValueSlot, Type: backend.TypePointer, Func: f, Slot: t})
	id := b.m.NewResultId()
	b.ids[v] = id
	fn := b.funcs[f]
	fn.locals = append(fn.locals, &OpVariable{ResultType: b.pointerType(StorageClassFunction, b.typeID(t)), ResultId: id, StorageClass: StorageClassFunction})
	return v
}

// Load ...
func (b *Backend) Load(t backend.Type, ptr backend.Value) backend.Value {
	p := b.operand(ptr)
	v, id := b.temp(t)
	b.emit(&OpLoad{ResultType: b.typeID(t), ResultId: id, Pointer: p})
	return v
}

// Store ...
func (b *Backend) Store(ptr backend.Value, v backend.Value) {
	p := b.operand(ptr)
	b.emit(&OpStore{Pointer: p, Object: b.operand(v)})
}

// Int ...
func (b *Backend) Int(t backend.Type, v int64) backend.Value {
	val := b.NewValue(backend.ValueInfo{Kind: backend.ValueConst, Type: t, Const: v})
	b.ids[val] = b.constant(t, v)
	return val
}

// Add ...
func (b *Backend) Add(l backend.Value, r backend.Value) backend.Value {
	t := b.TypeOf(l)
	op1, op2 := b.operand(l), b.operand(r)
	v, id := b.temp(t)
	b.emit(&OpIAdd{ResultType: b.typeID(t), ResultId: id, Operand1: op1, Operand2: op2})
	return v
}

// Sub ...
func (b *Backend) Sub(l backend.Value, r backend.Value) backend.Value {
	t := b.TypeOf(l)
	op1, op2 := b.operand(l), b.operand(r)
	v, id := b.temp(t)
	b.emit(&OpISub{ResultType: b.typeID(t), ResultId: id, Operand1: op1, Operand2: op2})
	return v
}

// Offset ...
func (b *Backend) Offset(ptr backend.Value, delta int) backend.Value {
	base := b.operand(ptr)
	v, id := b.temp(backend.TypePointer)
	b.emit(&OpPtrAccessChain{ResultType: b.bytePointer(), ResultId: id, Base: base, Element: b.constant(backend.TypeInt32, int64(delta))})
	return v
}

// Compare ...
func (b *Backend) Compare(p backend.Predicate, l backend.Value, r backend.Value) backend.Value {
	op1, op2 := b.operand(l), b.operand(r)
	v, id := b.temp(backend.TypeInt1)
	rt := b.typeID(backend.TypeInt1)
	switch p {
	case backend.PredicateNE:
		b.emit(&OpINotEqual{ResultType: rt, ResultId: id, Operand1: op1, Operand2: op2})
	case backend.PredicateEQ:
		b.emit(&OpIEqual{ResultType: rt, ResultId: id, Operand1: op1, Operand2: op2})
	case backend.PredicateSGT:
		b.emit(&OpSGreaterThan{ResultType: rt, ResultId: id, Operand1: op1, Operand2: op2})
	default:
		panic("Oooops")
	}
	return v
}

func (b *Backend) label(blk backend.Block) Id {
	return b.funcs[b.BlockFunc(blk)].labels[blk]
}

// Branch ...
func (b *Backend) Branch(target backend.Block) {
	b.emit(&OpBranch{TargetLabel: b.label(target)})
}

// CondBranch ...
func (b *Backend) CondBranch(cond backend.Value, then backend.Block, otherwise backend.Block) {
	b.emit(&OpBranchConditional{Condition: b.operand(cond), TrueLabel: b.label(then), FalseLabel: b.label(otherwise)})
}

// Return ...
func (b *Backend) Return(v backend.Value) {
	b.emit(&OpReturnValue{Value: b.operand(v)})
}

// Call ...
func (b *Backend) Call(f backend.Func, args ...backend.Value) backend.Value {
	var argv []Id
	for _, a := range args {
		argv = append(argv, b.operand(a))
	}
	ret := b.Func(f).Ret
	v, id := b.temp(ret)
	b.emit(&OpFunctionCall{ResultType: b.typeID(ret), ResultId: id, Function: b.funcs[f].id, Argv: argv})
	return v
}

// Trunc ...
func (b *Backend) Trunc(v backend.Value, t backend.Type) backend.Value {
	x := b.operand(v)
	r, id := b.temp(t)
	b.emit(&OpUConvert{ResultType: b.typeID(t), ResultId: id, UnsignedValue: x})
	return r
}

// Extend sign extends v.
func (b *Backend) Extend(v backend.Value, t backend.Type) backend.Value {
	x := b.operand(v)
	r, id := b.temp(t)
	b.emit(&OpSConvert{ResultType: b.typeID(t), ResultId: id, SignedValue: x})
	return r
}
