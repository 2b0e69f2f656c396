package backend

// Type is the type of a value produced by an Engine.
type Type int

const (
	// TypeInt1 is the result of a comparison.
	TypeInt1 Type = 1 + iota
	// TypeInt8 is one tape cell.
	TypeInt8
	// TypeInt32 is the type of characters passed to and from the C library.
	TypeInt32
	// TypePointer is a byte address.
	TypePointer
)

func (t Type) String() string {
	switch t {
	case TypeInt1:
		return "i1"
	case TypeInt8:
		return "i8"
	case TypeInt32:
		return "i32"
	case TypePointer:
		return "ptr"
	}
	return "void"
}

// Predicate of a comparison. Comparisons are signed.
type Predicate int

const (
	// PredicateNE is `l != r`.
	PredicateNE Predicate = 1 + iota
	// PredicateEQ is `l == r`.
	PredicateEQ
	// PredicateSGT is `l > r`.
	PredicateSGT
)

func (p Predicate) String() string {
	switch p {
	case PredicateNE:
		return "ne"
	case PredicateEQ:
		return "eq"
	case PredicateSGT:
		return "sgt"
	}
	return "?"
}

// Value is an opaque handle of a value created by an Engine.
type Value int

// Block is an opaque handle of a basic block.
type Block int

// Func is an opaque handle of a declared or defined function.
type Func int

// Engine is the set of IR construction primitives the code generator relies on.
// An engine has an implicit current function and insertion block.
// Instructions are appended to the block entered last.
type Engine interface {
	// Module names the compilation unit.
	Module(name string)
	// Global creates a zero initialized byte array and returns the address of its first byte.
	Global(name string, size int) Value
	// Declare an external function.
	Declare(name string, ret Type, params ...Type) Func
	// Define a function with a body. Blocks are added with AppendBlock.
	Define(name string, ret Type, params ...Type) Func
	Param(f Func, index int) Value
	// AppendBlock adds a new basic block at the end of f.
	AppendBlock(f Func) Block
	// EnterBlock moves the insertion cursor to the end of b and makes the function of b current.
	EnterBlock(b Block)
	// Alloca creates a stack slot in the current function and returns its address.
	Alloca(t Type) Value
	Load(t Type, ptr Value) Value
	Store(ptr Value, v Value)
	Int(t Type, v int64) Value
	// Add and Sub wrap around at the width of their operands.
	Add(l Value, r Value) Value
	Sub(l Value, r Value) Value
	// Offset adds delta bytes to ptr. There is no bounds check.
	Offset(ptr Value, delta int) Value
	Compare(p Predicate, l Value, r Value) Value
	Branch(target Block)
	CondBranch(cond Value, then Block, otherwise Block)
	Return(v Value)
	Call(f Func, args ...Value) Value
	// Trunc narrows an integer, Extend widens it with sign extension.
	Trunc(v Value, t Type) Value
	Extend(v Value, t Type) Value
}

// Backend is the interface backends have to follow in order to be usable in the compiler.
// The code generator drives the Engine, afterwards Run produces the artifact.
// The returned message is printed by the compiler if it is not empty.
type Backend interface {
	Engine
	Run(output string) (string, error)
}
