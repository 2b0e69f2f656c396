package backend

// ValueKind tells engines how a value came into existence.
type ValueKind int

const (
	// ValueTemp is the result of an instruction.
	ValueTemp ValueKind = iota
	// ValueConst is an integer constant.
	ValueConst
	// ValueGlobal is the address of a global.
	ValueGlobal
	// ValueParam is a function parameter.
	ValueParam
	// ValueSlot is the address of a stack slot.
	ValueSlot
)

// ValueInfo ...
type ValueInfo struct {
	Kind ValueKind
	Type Type
	// Const is the value of a constant, the size of a global or the index of a parameter.
	Const int64
	// Name of a global.
	Name string
	// Func is the function the value belongs to. Constants and globals belong to no function.
	Func Func
	// Slot is the type stored in a stack slot.
	Slot Type
}

// FuncInfo ...
type FuncInfo struct {
	Name     string
	Ret      Type
	Params   []Type
	External bool
	Blocks   []Block
	params   []Value
}

// Values is the bookkeeping shared by all engines.
// It hands out handles and remembers the type and origin of every value.
// Handle 0 is never used.
type Values struct {
	ModuleName string
	values     []ValueInfo
	funcs      []*FuncInfo
	blocks     []Func
	current    Func
	block      Block
}

func (vs *Values) init() {
	if vs.values == nil {
		vs.values = []ValueInfo{{}}
		vs.funcs = []*FuncInfo{nil}
		vs.blocks = []Func{0}
	}
}

// NewValue registers a value and returns its handle.
func (vs *Values) NewValue(info ValueInfo) Value {
	vs.init()
	vs.values = append(vs.values, info)
	return Value(len(vs.values) - 1)
}

// NewTemp registers the result of an instruction in the current function.
func (vs *Values) NewTemp(t Type) Value {
	return vs.NewValue(ValueInfo{Kind: ValueTemp, Type: t, Func: vs.current})
}

// Info returns the bookkeeping of v.
func (vs *Values) Info(v Value) *ValueInfo {
	if v <= 0 || int(v) >= len(vs.values) {
		panic("Oooops, unknown value")
	}
	return &vs.values[v]
}

// TypeOf ...
func (vs *Values) TypeOf(v Value) Type {
	return vs.Info(v).Type
}

// ValueCount is the number of handed out values plus one.
func (vs *Values) ValueCount() int {
	vs.init()
	return len(vs.values)
}

// NewFunc registers a function. Defined functions get one parameter value per parameter type.
func (vs *Values) NewFunc(name string, ret Type, params []Type, external bool) Func {
	vs.init()
	f := &FuncInfo{Name: name, Ret: ret, Params: params, External: external}
	vs.funcs = append(vs.funcs, f)
	id := Func(len(vs.funcs) - 1)
	if !external {
		for i, p := range params {
			f.params = append(f.params, vs.NewValue(ValueInfo{Kind: ValueParam, Type: p, Const: int64(i), Func: id}))
		}
	}
	return id
}

// Func returns the bookkeeping of f.
func (vs *Values) Func(f Func) *FuncInfo {
	if f <= 0 || int(f) >= len(vs.funcs) {
		panic("Oooops, unknown function")
	}
	return vs.funcs[f]
}

// Funcs returns all function handles in the order of their creation.
func (vs *Values) Funcs() []Func {
	var result []Func
	for i := 1; i < len(vs.funcs); i++ {
		result = append(result, Func(i))
	}
	return result
}

// ParamValue returns the value of the parameter at index.
func (vs *Values) ParamValue(f Func, index int) Value {
	fi := vs.Func(f)
	if fi.External || index < 0 || index >= len(fi.params) {
		panic("Oooops, no such parameter")
	}
	return fi.params[index]
}

// NewBlock appends a block to f.
func (vs *Values) NewBlock(f Func) Block {
	vs.init()
	fi := vs.Func(f)
	if fi.External {
		panic("Oooops, cannot add a block to an external function")
	}
	vs.blocks = append(vs.blocks, f)
	b := Block(len(vs.blocks) - 1)
	fi.Blocks = append(fi.Blocks, b)
	return b
}

// SetCurrent moves the insertion cursor to b.
func (vs *Values) SetCurrent(b Block) {
	if b <= 0 || int(b) >= len(vs.blocks) {
		panic("Oooops, unknown block")
	}
	vs.block = b
	vs.current = vs.blocks[b]
}

// Current returns the function and block entered last.
func (vs *Values) Current() (Func, Block) {
	if vs.block == 0 {
		panic("Oooops, no block has been entered")
	}
	return vs.current, vs.block
}

// BlockFunc returns the function b belongs to.
func (vs *Values) BlockFunc(b Block) Func {
	return vs.blocks[b]
}

// BlockCount is the number of blocks in all functions.
func (vs *Values) BlockCount() int {
	if len(vs.blocks) == 0 {
		return 0
	}
	return len(vs.blocks) - 1
}
