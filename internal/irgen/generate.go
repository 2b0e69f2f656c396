package irgen

import (
	"strconv"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
	"github.com/vs-ude/brainfuck/internal/errlog"
	"github.com/vs-ude/brainfuck/internal/parser"
)

// DefaultTapeSize is the number of cells if Config.TapeSize is zero.
const DefaultTapeSize = 30000

// Config ...
type Config struct {
	ModuleName string
	TapeSize   int
}

// loopFrame is pushed when the body of a loop is entered and popped when it is left.
type loopFrame struct {
	entry backend.Block
	body  backend.Block
}

type generator struct {
	e       backend.Engine
	tape    backend.Value
	getchar backend.Func
	putchar backend.Func
	max     backend.Func
	main    backend.Func
	// Stack slot holding the data pointer.
	ptr   backend.Value
	loops []loopFrame
}

// Generate drives e to emit the program p.
// The result is a function `main` which returns 0 after running the program.
func Generate(p *parser.Program, e backend.Engine, cfg Config) error {
	if cfg.TapeSize <= 0 {
		cfg.TapeSize = DefaultTapeSize
	}
	if cfg.ModuleName == "" {
		cfg.ModuleName = "main"
	}
	g := &generator{e: e}
	g.genPrelude(cfg)
	g.genNodes(p.Children)
	return g.finalize()
}

func (g *generator) genNodes(nodes []parser.Node) {
	for _, n := range nodes {
		switch n := n.(type) {
		case *parser.InstructionNode:
			g.genInstruction(n.Instruction)
		case *parser.BlockNode:
			g.loopEnter()
			g.genNodes(n.Children)
			g.loopExit()
		default:
			panic("Oooops")
		}
	}
}

func (g *generator) genInstruction(ins parser.Instruction) {
	e := g.e
	switch ins.Symbol {
	case parser.SymbolUpdate:
		ptr := e.Load(backend.TypePointer, g.ptr)
		v := e.Load(backend.TypeInt8, ptr)
		if k := ins.Parameter % 256; k > 0 {
			v = e.Add(v, e.Int(backend.TypeInt8, int64(k)))
		} else if k < 0 {
			v = e.Sub(v, e.Int(backend.TypeInt8, int64(-k)))
		}
		e.Store(ptr, v)
	case parser.SymbolMove:
		ptr := e.Load(backend.TypePointer, g.ptr)
		e.Store(g.ptr, e.Offset(ptr, ins.Parameter))
	case parser.SymbolInput:
		c := e.Call(g.getchar)
		c = e.Call(g.max, c, e.Int(backend.TypeInt32, 0))
		ptr := e.Load(backend.TypePointer, g.ptr)
		e.Store(ptr, e.Trunc(c, backend.TypeInt8))
	case parser.SymbolOutput:
		ptr := e.Load(backend.TypePointer, g.ptr)
		v := e.Load(backend.TypeInt8, ptr)
		e.Call(g.putchar, e.Extend(v, backend.TypeInt32))
	default:
		panic("Oooops")
	}
}

func (g *generator) finalize() error {
	if len(g.loops) != 0 {
		return errlog.NewError(errlog.ErrorUnbalancedLoops, errlog.LocationRange{}, strconv.Itoa(len(g.loops)))
	}
	g.e.Return(g.e.Int(backend.TypeInt32, 0))
	return nil
}
