package spirv

import (
	"os"

	"github.com/vs-ude/brainfuck/internal/backends/backend"

	. "github.com/vs-ude/spirv"
)

// Build assembles the functions and returns the complete module.
func (b *Backend) Build() (*Module, error) {
	b.m.Functions = nil
	for _, f := range b.Funcs() {
		b.m.Functions = append(b.m.Functions, b.buildFunction(f))
	}
	smod := b.m.BuildSpirvModule()
	if err := smod.Header.Verify(); err != nil {
		return nil, err
	}
	return smod, nil
}

func (b *Backend) buildFunction(f backend.Func) InstructionList {
	fi := b.Func(f)
	fn := b.funcs[f]
	var paramTypes []Id
	for _, p := range fi.Params {
		paramTypes = append(paramTypes, b.typeID(p))
	}
	fnType := b.m.EnsureType(&OpTypeFunction{ReturnType: b.typeID(fi.Ret), Argv: paramTypes})
	code := InstructionList{&OpFunction{ResultType: b.typeID(fi.Ret), ResultId: fn.id, FunctionControl: FunctionControlNone, FunctionType: fnType}}
	for i, p := range fn.params {
		code = append(code, &OpFunctionParameter{ResultType: paramTypes[i], ResultId: p})
	}
	for i, blk := range fi.Blocks {
		code = append(code, &OpLabel{ResultId: fn.labels[blk]})
		if i == 0 {
			code = append(code, fn.locals...)
		}
		code = append(code, fn.code[blk]...)
	}
	return append(code, &OpFunctionEnd{})
}

// Run writes the SPIR-V binary to output.
func (b *Backend) Run(output string) (string, error) {
	smod, err := b.Build()
	if err != nil {
		return "", err
	}
	f, err := os.Create(output)
	if err != nil {
		return "", err
	}
	if err = smod.Save(f); err != nil {
		f.Close()
		return "", err
	}
	if err = f.Close(); err != nil {
		return "", err
	}
	return "Wrote " + output, nil
}

var _ backend.Backend = (*Backend)(nil)
