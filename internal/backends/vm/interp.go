package vm

import (
	"errors"
	"fmt"
	"io"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// cell is the content of a register or stack slot.
type cell struct {
	i     int64
	isPtr bool
	// region is the index of a global, or slotRegion for a stack slot.
	region int
	off    int
}

const slotRegion = -1

type frame struct {
	regs  []cell
	slots []cell
}

// Run executes `main`. The output argument is ignored since nothing is written to disk.
func (b *Backend) Run(output string) (string, error) {
	var main backend.Func
	for _, f := range b.Funcs() {
		if fi := b.Func(f); fi.Name == "main" && !fi.External {
			main = f
		}
	}
	if main == 0 {
		return "", errors.New("vm: the program has no main function")
	}
	local, sizes := b.assignRegisters()
	r, err := b.call(main, nil, local, sizes)
	if ferr := b.out.Flush(); err == nil && ferr != nil {
		err = ferr
	}
	if err != nil {
		return "", err
	}
	b.exit = r.i
	return "", nil
}

// assignRegisters numbers the values of each function starting at zero.
func (b *Backend) assignRegisters() ([]int, map[backend.Func]int) {
	local := make([]int, b.ValueCount())
	sizes := make(map[backend.Func]int)
	for v := 1; v < len(local); v++ {
		info := b.Info(backend.Value(v))
		switch info.Kind {
		case backend.ValueTemp, backend.ValueParam, backend.ValueSlot:
			local[v] = sizes[info.Func]
			sizes[info.Func]++
		}
	}
	return local, sizes
}

func (b *Backend) call(f backend.Func, args []cell, local []int, sizes map[backend.Func]int) (cell, error) {
	fi := b.Func(f)
	if fi.External {
		return b.callExternal(fi, args)
	}
	if len(fi.Blocks) == 0 {
		return cell{}, fmt.Errorf("vm: function %s has no body", fi.Name)
	}
	fr := &frame{regs: make([]cell, sizes[f])}
	for i := range fi.Params {
		fr.regs[local[b.ParamValue(f, i)]] = args[i]
	}
	get := func(v backend.Value) cell {
		info := b.Info(v)
		switch info.Kind {
		case backend.ValueConst:
			return cell{i: info.Const}
		case backend.ValueGlobal:
			g := b.globals[info.Const]
			return cell{isPtr: true, region: int(info.Const), off: g.base}
		}
		return fr.regs[local[v]]
	}
	set := func(v backend.Value, c cell) {
		fr.regs[local[v]] = c
	}

	blk := fi.Blocks[0]
	for {
		next := backend.Block(0)
		for _, ins := range b.code[blk] {
			switch ins.op {
			case opAlloca:
				fr.slots = append(fr.slots, cell{})
				set(ins.dest, cell{isPtr: true, region: slotRegion, off: len(fr.slots) - 1})
			case opLoad:
				c, err := b.load(fr, get(ins.args[0]))
				if err != nil {
					return cell{}, err
				}
				if !c.isPtr {
					c.i = normalize(ins.typ, c.i)
				}
				set(ins.dest, c)
			case opStore:
				if err := b.store(fr, get(ins.args[0]), get(ins.args[1])); err != nil {
					return cell{}, err
				}
			case opAdd:
				set(ins.dest, cell{i: normalize(ins.typ, get(ins.args[0]).i+get(ins.args[1]).i)})
			case opSub:
				set(ins.dest, cell{i: normalize(ins.typ, get(ins.args[0]).i-get(ins.args[1]).i)})
			case opOffset:
				p, err := b.offset(get(ins.args[0]), ins.delta)
				if err != nil {
					return cell{}, err
				}
				set(ins.dest, p)
			case opCompare:
				t := b.TypeOf(ins.args[0])
				l := signed(t, get(ins.args[0]).i)
				r := signed(t, get(ins.args[1]).i)
				var result bool
				switch ins.pred {
				case backend.PredicateNE:
					result = l != r
				case backend.PredicateEQ:
					result = l == r
				case backend.PredicateSGT:
					result = l > r
				}
				if result {
					set(ins.dest, cell{i: 1})
				} else {
					set(ins.dest, cell{i: 0})
				}
			case opBranch:
				next = ins.blocks[0]
			case opCondBranch:
				if get(ins.args[0]).i != 0 {
					next = ins.blocks[0]
				} else {
					next = ins.blocks[1]
				}
			case opReturn:
				return get(ins.args[0]), nil
			case opCall:
				var args []cell
				for _, a := range ins.args {
					args = append(args, get(a))
				}
				r, err := b.call(ins.fn, args, local, sizes)
				if err != nil {
					return cell{}, err
				}
				set(ins.dest, r)
			case opTrunc:
				set(ins.dest, cell{i: normalize(ins.typ, get(ins.args[0]).i)})
			case opExtend:
				v := signed(b.TypeOf(ins.args[0]), get(ins.args[0]).i)
				set(ins.dest, cell{i: normalize(ins.typ, v)})
			}
			if next != 0 {
				break
			}
		}
		if next == 0 {
			return cell{}, fmt.Errorf("vm: block b%d of %s has no terminator", blk, fi.Name)
		}
		blk = next
	}
}

func (b *Backend) load(fr *frame, p cell) (cell, error) {
	if !p.isPtr {
		return cell{}, errors.New("vm: load from a value which is not a pointer")
	}
	if p.region == slotRegion {
		return fr.slots[p.off], nil
	}
	return cell{i: int64(b.globals[p.region].mem[p.off])}, nil
}

func (b *Backend) store(fr *frame, p cell, v cell) error {
	if !p.isPtr {
		return errors.New("vm: store to a value which is not a pointer")
	}
	if p.region == slotRegion {
		fr.slots[p.off] = v
		if b.session != nil && v.isPtr && v.region >= 0 && b.globals[v.region].name == "tape" {
			b.session.cursor = v.off
		}
		return nil
	}
	b.globals[p.region].mem[p.off] = byte(v.i)
	return nil
}

// offset moves a pointer into a global. The address wraps around at the end of the global.
func (b *Backend) offset(p cell, delta int) (cell, error) {
	if !p.isPtr || p.region == slotRegion {
		return cell{}, errors.New("vm: pointer arithmetic is only supported on globals")
	}
	size := len(b.globals[p.region].mem)
	p.off = (p.off + delta) % size
	if p.off < 0 {
		p.off += size
	}
	return p, nil
}

func (b *Backend) callExternal(fi *backend.FuncInfo, args []cell) (cell, error) {
	switch fi.Name {
	case "getchar":
		if err := b.out.Flush(); err != nil {
			return cell{}, err
		}
		if b.in == nil {
			return cell{i: -1}, nil
		}
		c, err := b.in.ReadByte()
		if err == io.EOF {
			return cell{i: -1}, nil
		}
		if err != nil {
			return cell{}, err
		}
		return cell{i: int64(c)}, nil
	case "putchar":
		if err := b.out.WriteByte(byte(args[0].i)); err != nil {
			return cell{}, err
		}
		return args[0], nil
	}
	return cell{}, fmt.Errorf("vm: unknown external function %s", fi.Name)
}
