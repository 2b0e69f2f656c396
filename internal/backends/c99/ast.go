package c99

/**************************************
 *
 * C Syntax Tree
 *
 * The engine builds these nodes and
 * renders them as C99 source.
 *
 **************************************/

import (
	"strings"
)

// Node ...
type Node interface {
	ToString(indent string) string
	Precedence() int
}

// NodeBase ...
type NodeBase struct {
}

// Module ...
type Module struct {
	Name     string
	Includes []*Include
	Elements []Node // Function | GlobalVar
}

// Include ...
type Include struct {
	Path         string
	IsSystemPath bool
}

// Function ...
type Function struct {
	NodeBase
	Name       string
	ReturnType *TypeDecl
	Parameters []*FunctionParameter
	Vars       []*Var
	Body       []Node
	IsExported bool
	IsExtern   bool
}

// FunctionParameter ...
type FunctionParameter struct {
	Name string
	Type *TypeDecl
}

// TypeDecl ...
type TypeDecl struct {
	NodeBase
	Code string
}

// Return ...
type Return struct {
	NodeBase
	Expr Node
}

// Unary ...
type Unary struct {
	NodeBase
	Expr     Node
	Operator string
}

// Binary ...
type Binary struct {
	NodeBase
	Left     Node
	Right    Node
	Operator string
}

// FunctionCall ...
type FunctionCall struct {
	NodeBase
	FuncExpr Node
	Args     []Node
}

// TypeCast ...
type TypeCast struct {
	NodeBase
	Type *TypeDecl
	Expr Node
}

// Var ...
type Var struct {
	NodeBase
	Name     string
	Type     *TypeDecl
	InitExpr Node
}

// GlobalVar is a zero initialized array.
type GlobalVar struct {
	NodeBase
	Name  string
	Type  *TypeDecl
	Array string
}

// Identifier ...
type Identifier struct {
	NodeBase
	Name string
}

// Constant ...
type Constant struct {
	NodeBase
	Code string
}

// If ....
type If struct {
	NodeBase
	Expr Node
	Body []Node
}

// Label ...
type Label struct {
	NodeBase
	Name string
}

// Goto ...
type Goto struct {
	NodeBase
	Name string
}

// Precedence ...
func (n *NodeBase) Precedence() int {
	return 0
}

// ToString ...
func (n *Include) ToString() string {
	if n.IsSystemPath {
		return "#include <" + n.Path + ">"
	}
	return "#include \"" + n.Path + "\""
}

// NewModule ...
func NewModule(name string) *Module {
	mod := &Module{Name: name}
	mod.AddInclude("stdint.h", true)
	return mod
}

// Implementation renders the complete C source of the module.
func (mod *Module) Implementation() string {
	var str strings.Builder
	str.WriteString("/* " + strings.ReplaceAll(mod.Name, "*/", "*\\/") + " */\n")
	for _, inc := range mod.Includes {
		str.WriteString(inc.ToString() + "\n")
	}
	str.WriteString("\n")

	// Declarations of functions and global variables
	for _, n := range mod.Elements {
		if f, ok := n.(*Function); ok {
			str.WriteString(f.Declaration("") + ";\n")
		} else if v, ok := n.(*GlobalVar); ok {
			str.WriteString(v.Declaration("") + ";\n")
		}
	}
	str.WriteString("\n")

	// Function definitions
	for _, c := range mod.Elements {
		if f, ok := c.(*Function); ok && f.IsExtern {
			continue
		} else if _, ok := c.(*GlobalVar); ok {
			continue
		}
		str.WriteString(c.ToString("") + "\n\n")
	}
	return str.String()
}

// HasInclude ...
func (mod *Module) HasInclude(path string) bool {
	for _, inc := range mod.Includes {
		if inc.Path == path {
			return true
		}
	}
	return false
}

// AddInclude ...
func (mod *Module) AddInclude(path string, isSystemPath bool) {
	if !mod.HasInclude(path) {
		mod.Includes = append(mod.Includes, &Include{Path: path, IsSystemPath: isSystemPath})
	}
}

// ToString ...
func (n *Function) ToString(indent string) string {
	str := indent + n.signature() + " {\n"
	for _, v := range n.Vars {
		str += v.ToString(indent+"    ") + ";\n"
	}
	for _, b := range n.Body {
		if _, ok := b.(*Label); ok {
			str += b.ToString(indent) + ";\n"
			continue
		}
		str += b.ToString(indent+"    ") + ";\n"
	}
	return str + indent + "}"
}

// Declaration ...
func (n *Function) Declaration(indent string) string {
	str := indent
	if n.IsExtern {
		str += "extern "
	} else if !n.IsExported {
		str += "static "
	}
	return str + n.signature()
}

func (n *Function) signature() string {
	str := n.ReturnType.ToString("") + " " + n.Name + "("
	if len(n.Parameters) == 0 {
		str += "void"
	}
	for i, p := range n.Parameters {
		if i != 0 {
			str += ", "
		}
		str += p.ToString("")
	}
	return str + ")"
}

// ToString ...
func (n *FunctionParameter) ToString(indent string) string {
	return n.Type.ToString("") + " " + n.Name
}

// NewTypeDecl ...
func NewTypeDecl(code string) *TypeDecl {
	return &TypeDecl{Code: code}
}

// ToString ...
func (n *TypeDecl) ToString(indent string) string {
	return indent + n.Code
}

// ToString ...
func (n *Return) ToString(indent string) string {
	if n.Expr != nil {
		return indent + "return " + n.Expr.ToString("")
	}
	return indent + "return"
}

// ToString ...
func (n *Unary) ToString(indent string) string {
	if n.Precedence() < n.Expr.Precedence() {
		return indent + n.Operator + "(" + n.Expr.ToString("") + ")"
	}
	return indent + n.Operator + n.Expr.ToString("")
}

// Precedence ...
func (n *Unary) Precedence() int {
	return 2
}

// ToString ...
func (n *Binary) ToString(indent string) string {
	str := indent
	if n.Precedence() <= n.Left.Precedence() {
		str += "(" + n.Left.ToString("") + ")"
	} else {
		str += n.Left.ToString("")
	}
	str += " " + n.Operator + " "
	if n.Precedence() <= n.Right.Precedence() {
		str += "(" + n.Right.ToString("") + ")"
	} else {
		str += n.Right.ToString("")
	}
	return str
}

// Precedence ...
func (n *Binary) Precedence() int {
	switch n.Operator {
	case "*", "/", "%":
		return 3
	case "-", "+":
		return 4
	case "<", ">", "<=", ">=":
		return 6
	case "==", "!=":
		return 7
	case "=":
		return 13
	}
	panic("Ooooops")
}

// ToString ...
func (n *FunctionCall) ToString(indent string) string {
	str := indent
	if n.Precedence() <= n.FuncExpr.Precedence() {
		str += "(" + n.FuncExpr.ToString("") + ")"
	} else {
		str += n.FuncExpr.ToString("")
	}
	str += "("
	for i, arg := range n.Args {
		if i > 0 {
			str += ", "
		}
		str += arg.ToString("")
	}
	str += ")"
	return str
}

// Precedence ...
func (n *FunctionCall) Precedence() int {
	return 1
}

// ToString ...
func (n *TypeCast) ToString(indent string) string {
	if n.Precedence() < n.Expr.Precedence() {
		return indent + "(" + n.Type.ToString("") + ")(" + n.Expr.ToString("") + ")"
	}
	return indent + "(" + n.Type.ToString("") + ")" + n.Expr.ToString("")
}

// Precedence ...
func (n *TypeCast) Precedence() int {
	return 2
}

// ToString ...
func (n *Var) ToString(indent string) string {
	str := indent + n.Type.ToString("") + " " + n.Name
	if n.InitExpr != nil {
		str += " = " + n.InitExpr.ToString("")
	}
	return str
}

// Declaration ...
func (n *GlobalVar) Declaration(indent string) string {
	return indent + "static " + n.Type.ToString("") + " " + n.Name + n.Array
}

// ToString ...
func (n *GlobalVar) ToString(indent string) string {
	return ""
}

// ToString ...
func (n *Identifier) ToString(indent string) string {
	return indent + n.Name
}

// ToString ...
func (n *Constant) ToString(indent string) string {
	return indent + n.Code
}

// ToString ...
func (n *If) ToString(indent string) string {
	str := indent + "if (" + n.Expr.ToString("") + ") {\n"
	for _, b := range n.Body {
		str += b.ToString(indent+"    ") + ";\n"
	}
	str += indent + "}"
	return str
}

// ToString ...
func (n *Label) ToString(indent string) string {
	return indent + n.Name + ":"
}

// ToString ...
func (n *Goto) ToString(indent string) string {
	return indent + "goto " + n.Name
}
