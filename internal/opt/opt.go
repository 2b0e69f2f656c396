package opt

import (
	"github.com/vs-ude/brainfuck/internal/parser"
)

// Optimize merges runs of adjacent Update and Move instructions into one instruction carrying the net delta.
// Blocks are optimized independently and are never merged with their neighbours.
// The program is rewritten in place and returned.
func Optimize(p *parser.Program) *parser.Program {
	p.Children = optimizeChain(p.Children)
	return p
}

func optimizeChain(chain []parser.Node) []parser.Node {
	result := chain[:0]
	for _, n := range chain {
		switch n := n.(type) {
		case *parser.BlockNode:
			n.Children = optimizeChain(n.Children)
		case *parser.InstructionNode:
			if len(result) > 0 {
				if prev, ok := result[len(result)-1].(*parser.InstructionNode); ok && canMerge(prev, n) {
					n.Instruction.Parameter += prev.Instruction.Parameter
					result[len(result)-1] = n
					continue
				}
			}
		}
		result = append(result, n)
	}
	// Drop references held by the unused tail.
	for i := len(result); i < len(chain); i++ {
		chain[i] = nil
	}
	return result
}

func canMerge(a, b *parser.InstructionNode) bool {
	return a.Instruction.Symbol == b.Instruction.Symbol && a.Instruction.Symbol.Mergeable()
}
