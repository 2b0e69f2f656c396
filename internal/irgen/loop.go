package irgen

import (
	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// loopEnter branches into a new entry block and continues in the body block.
// The condition in the entry block is emitted by loopExit.
func (g *generator) loopEnter() {
	e := g.e
	entry := e.AppendBlock(g.main)
	body := e.AppendBlock(g.main)
	e.Branch(entry)
	g.loops = append(g.loops, loopFrame{entry: entry, body: body})
	e.EnterBlock(body)
}

// loopExit closes the innermost loop. Generation continues in the block following the loop.
func (g *generator) loopExit() {
	if len(g.loops) == 0 {
		panic("Oooops, loop exit without loop")
	}
	e := g.e
	l := g.loops[len(g.loops)-1]
	g.loops = g.loops[:len(g.loops)-1]
	e.Branch(l.entry)
	end := e.AppendBlock(g.main)
	e.EnterBlock(l.entry)
	ptr := e.Load(backend.TypePointer, g.ptr)
	v := e.Load(backend.TypeInt8, ptr)
	cond := e.Compare(backend.PredicateNE, v, e.Int(backend.TypeInt8, 0))
	e.CondBranch(cond, l.body, end)
	e.EnterBlock(end)
}
