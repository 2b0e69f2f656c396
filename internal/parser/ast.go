package parser

/**************************************
 *
 * Abstract Syntax Tree
 *
 * This file implements the AST
 * which is the result of parsing.
 *
 **************************************/

import (
	"fmt"
	"strings"

	"github.com/vs-ude/brainfuck/internal/errlog"
)

// Symbol is the operation of an instruction.
type Symbol int

const (
	// SymbolUpdate adds its parameter to the current cell.
	SymbolUpdate Symbol = 1 + iota
	// SymbolMove adds its parameter to the data pointer.
	SymbolMove
	// SymbolInput reads one byte into the current cell.
	SymbolInput
	// SymbolOutput writes the current cell.
	SymbolOutput
)

// Mergeable reports whether adjacent instructions with this symbol can be folded into one.
func (s Symbol) Mergeable() bool {
	return s == SymbolUpdate || s == SymbolMove
}

func (s Symbol) String() string {
	switch s {
	case SymbolUpdate:
		return "Update"
	case SymbolMove:
		return "Move"
	case SymbolInput:
		return "Input"
	case SymbolOutput:
		return "Output"
	}
	return fmt.Sprintf("Symbol(%d)", int(s))
}

// Instruction ...
type Instruction struct {
	Symbol    Symbol
	Parameter int
}

// Node is implemented by all nodes of the AST.
type Node interface {
	Location() errlog.LocationRange
	String() string
}

// NodeBase implements basic functionality use by all AST nodes.
type NodeBase struct {
	location errlog.LocationRange
}

// Location ...
func (n *NodeBase) Location() errlog.LocationRange {
	return n.location
}

// InstructionNode is a leaf of the AST.
type InstructionNode struct {
	NodeBase
	Instruction Instruction
}

// NewInstructionNode ...
func NewInstructionNode(sym Symbol, param int, loc errlog.LocationRange) *InstructionNode {
	return &InstructionNode{NodeBase: NodeBase{location: loc}, Instruction: Instruction{Symbol: sym, Parameter: param}}
}

func (n *InstructionNode) String() string {
	p := n.Instruction.Parameter
	switch n.Instruction.Symbol {
	case SymbolUpdate:
		if p < 0 {
			return fmt.Sprintf("-%d", -p)
		}
		return fmt.Sprintf("+%d", p)
	case SymbolMove:
		if p < 0 {
			return fmt.Sprintf("<%d", -p)
		}
		return fmt.Sprintf(">%d", p)
	case SymbolInput:
		return ","
	case SymbolOutput:
		return "."
	}
	return "?"
}

// BlockNode is a loop. Its children are executed while the current cell is not zero.
type BlockNode struct {
	NodeBase
	Children []Node
}

// NewBlockNode ...
func NewBlockNode(children []Node, loc errlog.LocationRange) *BlockNode {
	return &BlockNode{NodeBase: NodeBase{location: loc}, Children: children}
}

func (n *BlockNode) String() string {
	if len(n.Children) == 0 {
		return "[ ]"
	}
	return "[ " + nodesToString(n.Children) + " ]"
}

// Program is the root of the AST.
type Program struct {
	File     int
	Children []Node
}

func (p *Program) String() string {
	return nodesToString(p.Children)
}

func nodesToString(nodes []Node) string {
	var parts []string
	for _, n := range nodes {
		parts = append(parts, n.String())
	}
	return strings.Join(parts, " ")
}

// Count returns the number of instruction leaves in nodes and all nested blocks.
func Count(nodes []Node) int {
	count := 0
	for _, n := range nodes {
		switch n := n.(type) {
		case *InstructionNode:
			count++
		case *BlockNode:
			count += Count(n.Children)
		}
	}
	return count
}
