package llvm

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vs-ude/brainfuck/internal/backends/backend"
)

// String returns the complete module as LLVM assembly.
func (b *Backend) String() string {
	var sb strings.Builder
	name := escape(b.ModuleName)
	fmt.Fprintf(&sb, "; ModuleID = '%s'\n", name)
	fmt.Fprintf(&sb, "source_filename = \"%s\"\n\n", name)
	for _, g := range b.globals {
		sb.WriteString(g)
		sb.WriteByte('\n')
	}
	if len(b.globals) != 0 {
		sb.WriteByte('\n')
	}
	for _, f := range b.Funcs() {
		fi := b.Func(f)
		if fi.External {
			var params []string
			for _, p := range fi.Params {
				params = append(params, p.String())
			}
			fmt.Fprintf(&sb, "declare %s @%s(%s)\n\n", fi.Ret, fi.Name, strings.Join(params, ", "))
			continue
		}
		var params []string
		for i := range fi.Params {
			params = append(params, b.typed(b.ParamValue(f, i)))
		}
		linkage := ""
		if fi.Name != "main" {
			linkage = "internal "
		}
		fmt.Fprintf(&sb, "define %s%s @%s(%s) {\n", linkage, fi.Ret, fi.Name, strings.Join(params, ", "))
		for _, blk := range fi.Blocks {
			fmt.Fprintf(&sb, "b%d:\n", blk)
			sb.WriteString(b.bodies[blk].String())
		}
		sb.WriteString("}\n\n")
	}
	return sb.String()
}

// escape renders s for a string literal of LLVM assembly.
// Quotes, backslashes and all bytes outside printable ASCII become `\XX`.
func escape(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < ' ' || c > '~' || c == '"' || c == '\\' || c == '\'' {
			fmt.Fprintf(&sb, "\\%02X", c)
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// Run writes the module to output. An empty output or `-` means standard output.
func (b *Backend) Run(output string) (string, error) {
	var w io.Writer = os.Stdout
	if output != "" && output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return "", err
		}
		defer f.Close()
		w = f
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return "", err
	}
	if w == os.Stdout {
		return "", nil
	}
	return "Wrote " + output, nil
}

var _ backend.Backend = (*Backend)(nil)
