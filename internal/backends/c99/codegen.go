package c99

import (
	"strconv"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// Engine builds a C module. Every basic block becomes a label, every branch a goto.
// Results of instructions are stored in variables declared at the top of the function.
type Engine struct {
	backend.Values
	mod   *Module
	funcs map[backend.Func]*Function
	slots map[backend.Value]string
}

// NewEngine ...
func NewEngine() *Engine {
	return &Engine{mod: NewModule("main"), funcs: make(map[backend.Func]*Function), slots: make(map[backend.Value]string)}
}

// Source returns the generated C code.
func (e *Engine) Source() string {
	return e.mod.Implementation()
}

// Module ...
func (e *Engine) Module(name string) {
	e.ModuleName = name
	e.mod.Name = name
}

// Global ...
func (e *Engine) Global(name string, size int) backend.Value {
	e.mod.Elements = append(e.mod.Elements, &GlobalVar{Name: name, Type: NewTypeDecl("uint8_t"), Array: "[" + strconv.Itoa(size) + "]"})
	return e.NewValue(backend.ValueInfo{Kind: backend.ValueGlobal, Type: backend.TypePointer, Name: name, Const: int64(size)})
}

func (e *Engine) function(name string, ret backend.Type, params []backend.Type, extern bool) backend.Func {
	id := e.NewFunc(name, ret, params, extern)
	f := &Function{Name: name, ReturnType: mapType(ret), IsExtern: extern, IsExported: name == "main"}
	for i, p := range params {
		f.Parameters = append(f.Parameters, &FunctionParameter{Name: "p" + strconv.Itoa(i), Type: mapType(p)})
	}
	e.funcs[id] = f
	e.mod.Elements = append(e.mod.Elements, f)
	return id
}

// Declare ...
func (e *Engine) Declare(name string, ret backend.Type, params ...backend.Type) backend.Func {
	return e.function(name, ret, params, true)
}

// Define ...
func (e *Engine) Define(name string, ret backend.Type, params ...backend.Type) backend.Func {
	return e.function(name, ret, params, false)
}

// Param ...
func (e *Engine) Param(f backend.Func, index int) backend.Value {
	return e.ParamValue(f, index)
}

// AppendBlock ...
func (e *Engine) AppendBlock(f backend.Func) backend.Block {
	return e.NewBlock(f)
}

// EnterBlock places a label for b at the end of its function.
// Every block is entered exactly once by the code generator, so labels appear in order of entry.
func (e *Engine) EnterBlock(b backend.Block) {
	e.SetCurrent(b)
	f := e.funcs[e.BlockFunc(b)]
	f.Body = append(f.Body, &Label{Name: blockName(b)})
}

func (e *Engine) emit(n Node) {
	f, _ := e.Current()
	e.funcs[f].Body = append(e.funcs[f].Body, n)
}

// assign stores the result of expr in a new variable.
func (e *Engine) assign(t backend.Type, expr Node) backend.Value {
	v := e.NewTemp(t)
	f, _ := e.Current()
	name := "t" + strconv.Itoa(int(v))
	fn := e.funcs[f]
	fn.Vars = append(fn.Vars, &Var{Name: name, Type: mapType(t)})
	fn.Body = append(fn.Body, &Binary{Operator: "=", Left: &Identifier{Name: name}, Right: expr})
	return v
}

// expr returns the C expression of v.
func (e *Engine) expr(v backend.Value) Node {
	info := e.Info(v)
	switch info.Kind {
	case backend.ValueConst:
		return &Constant{Code: strconv.FormatInt(info.Const, 10)}
	case backend.ValueGlobal:
		return &Identifier{Name: info.Name}
	case backend.ValueParam:
		return &Identifier{Name: "p" + strconv.FormatInt(info.Const, 10)}
	case backend.ValueSlot:
		return &Unary{Operator: "&", Expr: &Identifier{Name: e.slots[v]}}
	}
	return &Identifier{Name: "t" + strconv.Itoa(int(v))}
}

func (e *Engine) deref(t backend.Type, ptr backend.Value) Node {
	return &Unary{Operator: "*", Expr: &TypeCast{Type: NewTypeDecl(mapType(t).Code + "*"), Expr: e.expr(ptr)}}
}

// Alloca ...
func (e *Engine) Alloca(t backend.Type) backend.Value {
	f, _ := e.Current()
	v := e.NewValue(backend.ValueInfo{Kind: backend.ValueSlot, Type: backend.TypePointer, Func: f, Slot: t})
	name := "s" + strconv.Itoa(int(v))
	e.slots[v] = name
	e.funcs[f].Vars = append(e.funcs[f].Vars, &Var{Name: name, Type: mapType(t)})
	return v
}

// Load ...
func (e *Engine) Load(t backend.Type, ptr backend.Value) backend.Value {
	return e.assign(t, e.deref(t, ptr))
}

// Store ...
func (e *Engine) Store(ptr backend.Value, v backend.Value) {
	e.emit(&Binary{Operator: "=", Left: e.deref(e.TypeOf(v), ptr), Right: e.expr(v)})
}

// Int ...
func (e *Engine) Int(t backend.Type, v int64) backend.Value {
	if t == backend.TypeInt8 {
		v &= 0xff
	}
	return e.NewValue(backend.ValueInfo{Kind: backend.ValueConst, Type: t, Const: v})
}

func (e *Engine) arith(op string, l backend.Value, r backend.Value) backend.Value {
	t := e.TypeOf(l)
	sum := &Binary{Operator: op, Left: e.expr(l), Right: e.expr(r)}
	return e.assign(t, &TypeCast{Type: mapType(t), Expr: sum})
}

// Add ...
func (e *Engine) Add(l backend.Value, r backend.Value) backend.Value {
	return e.arith("+", l, r)
}

// Sub ...
func (e *Engine) Sub(l backend.Value, r backend.Value) backend.Value {
	return e.arith("-", l, r)
}

// Offset ...
func (e *Engine) Offset(ptr backend.Value, delta int) backend.Value {
	p := &TypeCast{Type: mapType(backend.TypePointer), Expr: e.expr(ptr)}
	return e.assign(backend.TypePointer, &Binary{Operator: "+", Left: p, Right: &Constant{Code: strconv.Itoa(delta)}})
}

// Compare ...
func (e *Engine) Compare(p backend.Predicate, l backend.Value, r backend.Value) backend.Value {
	var op string
	switch p {
	case backend.PredicateNE:
		op = "!="
	case backend.PredicateEQ:
		op = "=="
	case backend.PredicateSGT:
		op = ">"
	}
	left, right := e.expr(l), e.expr(r)
	if e.TypeOf(l) == backend.TypeInt8 {
		left = &TypeCast{Type: NewTypeDecl("int8_t"), Expr: left}
		right = &TypeCast{Type: NewTypeDecl("int8_t"), Expr: right}
	}
	return e.assign(backend.TypeInt1, &Binary{Operator: op, Left: left, Right: right})
}

// Branch ...
func (e *Engine) Branch(target backend.Block) {
	e.emit(&Goto{Name: blockName(target)})
}

// CondBranch ...
func (e *Engine) CondBranch(cond backend.Value, then backend.Block, otherwise backend.Block) {
	e.emit(&If{Expr: e.expr(cond), Body: []Node{&Goto{Name: blockName(then)}}})
	e.emit(&Goto{Name: blockName(otherwise)})
}

// Return ...
func (e *Engine) Return(v backend.Value) {
	e.emit(&Return{Expr: e.expr(v)})
}

// Call ...
func (e *Engine) Call(f backend.Func, args ...backend.Value) backend.Value {
	call := &FunctionCall{FuncExpr: &Identifier{Name: e.Func(f).Name}}
	for _, a := range args {
		call.Args = append(call.Args, e.expr(a))
	}
	return e.assign(e.Func(f).Ret, call)
}

// Trunc ...
func (e *Engine) Trunc(v backend.Value, t backend.Type) backend.Value {
	return e.assign(t, &TypeCast{Type: mapType(t), Expr: e.expr(v)})
}

// Extend sign extends v.
func (e *Engine) Extend(v backend.Value, t backend.Type) backend.Value {
	x := e.expr(v)
	if e.TypeOf(v) == backend.TypeInt8 {
		x = &TypeCast{Type: NewTypeDecl("int8_t"), Expr: x}
	}
	return e.assign(t, &TypeCast{Type: mapType(t), Expr: x})
}

func mapType(t backend.Type) *TypeDecl {
	switch t {
	case backend.TypeInt1, backend.TypeInt32:
		return NewTypeDecl("int")
	case backend.TypeInt8:
		return NewTypeDecl("uint8_t")
	case backend.TypePointer:
		return NewTypeDecl("uint8_t*")
	}
	return NewTypeDecl("void")
}

func blockName(b backend.Block) string {
	return "b" + strconv.Itoa(int(b))
}
