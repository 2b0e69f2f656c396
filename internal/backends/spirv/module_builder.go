package spirv

import (
	. "github.com/vs-ude/spirv"
)

// ModuleBuilder collects the sections of a SPIR-V module in their logical order.
type ModuleBuilder struct {
	// File header
	Header Header
	// Top
	Capabilities    []Capability
	AddressingModel AddressingModel
	MemoryModel     MemoryModel
	// Debug
	Debug InstructionList
	// Annotations
	Decorations InstructionList
	// Types, constants and global variables in order of creation.
	// SPIR-V allows them to be interleaved, which is required since array types refer to constants.
	Types InstructionList
	// Body
	Functions []InstructionList
}

// NewModuleBuilder creates a new, default module.
func NewModuleBuilder() *ModuleBuilder {
	return &ModuleBuilder{
		Header: Header{
			Magic:          MagicLE,
			Version:        SpecificationVersion,
			GeneratorMagic: 0,
			Bound:          1,
			Reserved:       0,
		},
	}
}

// NewResultId retrieves a new unused ResultId for the module and adjusts the bound.
func (m *ModuleBuilder) NewResultId() (id Id) {
	id = m.Header.Bound
	m.Header.Bound++
	return
}

// AddCapability ...
func (m *ModuleBuilder) AddCapability(cap Capability) {
	m.Capabilities = append(m.Capabilities, cap)
}

// AddName attaches a debug name to id.
func (m *ModuleBuilder) AddName(id Id, name string) {
	m.Debug = append(m.Debug, &OpName{Target: id, Name: String(name)})
}

// AddLinkage marks id as imported from or exported to other modules under name.
func (m *ModuleBuilder) AddLinkage(id Id, name string, linkage LinkageType) {
	s := String(name)
	argv := make([]uint32, s.EncodedLen()+1)
	n := s.Encode(argv)
	argv[n] = uint32(linkage)
	m.Decorations = append(m.Decorations, &OpDecorate{Target: id, Decoration: DecorationLinkageAttributes, Argv: argv[:n+1]})
}

// EnsureType looks through the already registered types and either returns its ResultId or adds a new instruction.
func (m *ModuleBuilder) EnsureType(refInstr Instruction) Id {
	return m.ensure(refInstr)
}

// EnsureConstant looks through the already registered constants and either returns its ResultId or adds a new instruction.
func (m *ModuleBuilder) EnsureConstant(refInstr Instruction) Id {
	return m.ensure(refInstr)
}

func (m *ModuleBuilder) ensure(refInstr Instruction) (id Id) {
	for _, instr := range m.Types.Filter(refInstr.Opcode()) {
		if InstructionEquals(instr, refInstr, false) {
			id, ok := InstructionResultId(instr)
			if !ok {
				panic("type should have ResultId")
			}
			return id
		}
	}
	id = m.NewResultId()
	SetInstructionResultId(refInstr, id)
	m.Types = append(m.Types, refInstr)
	return
}

// AddGlobal appends a global variable.
func (m *ModuleBuilder) AddGlobal(instr Instruction) {
	m.Types = append(m.Types, instr)
}

func addInstr(smod *Module, instr Instruction) {
	smod.Code = append(smod.Code, instr)
}

func addInstrs(smod *Module, instrs InstructionList) {
	smod.Code = append(smod.Code, instrs...)
}

// BuildSpirvModule ...
func (m *ModuleBuilder) BuildSpirvModule() *Module {
	smod := Module{Header: m.Header}

	for _, cap := range m.Capabilities {
		addInstr(&smod, &OpCapability{Capability: cap})
	}
	addInstr(&smod, &OpMemoryModel{AddressingModel: m.AddressingModel, MemoryModel: m.MemoryModel})

	addInstrs(&smod, m.Debug)
	addInstrs(&smod, m.Decorations)
	addInstrs(&smod, m.Types)

	for _, fun := range m.Functions {
		addInstrs(&smod, fun)
	}

	return &smod
}
