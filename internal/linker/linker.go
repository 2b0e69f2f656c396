package linker

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/vs-ude/brainfuck/internal/config"
)

// Handle holds the runtime artifacts found by PrepareRuntime and a private work directory.
type Handle struct {
	// WorkDir holds intermediate files. It is removed by Release.
	WorkDir string
	// Start is Scrt1.o or crt1.o.
	Start string
	Crti  string
	Crtn  string
	// Libc is libc.so or libc.a.
	Libc string
	// Loader is the program interpreter of dynamically linked executables.
	Loader  string
	Static  bool
	Command string
	Flags   []string
}

// MissingArtifactError is returned if a runtime object or the C library cannot be found.
type MissingArtifactError struct {
	Artifact string
	Searched []string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("linker: cannot find %s, searched %s", e.Artifact, strings.Join(e.Searched, ", "))
}

// LinkError is returned if the link command fails.
type LinkError struct {
	Command string
	Output  string
	Err     error
}

func (e *LinkError) Error() string {
	msg := "linker: " + e.Command + ": " + e.Err.Error()
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *LinkError) Unwrap() error {
	return e.Err
}

// PrepareRuntime locates the C runtime objects and the C library for the build target
// and creates the work directory of the handle.
// The first directory containing an artifact wins.
func PrepareRuntime(t *config.BuildTargetConfig) (*Handle, error) {
	if t == nil {
		t = &config.BuildTargetConfig{OperatingSystem: runtime.GOOS, HardwareArchitecture: runtime.GOARCH}
	}
	dirs := searchDirs(t)
	h := &Handle{Command: "ld"}
	var err error
	if t.Linker != nil {
		if t.Linker.Command != "" {
			h.Command = t.Linker.Command
		}
		h.Flags = t.Linker.Flags
	}
	static := t.Runtime != nil && t.Runtime.Static
	if h.Start, err = find(dirs, "Scrt1.o", "crt1.o"); err != nil {
		return nil, err
	}
	if h.Crti, err = find(dirs, "crti.o"); err != nil {
		return nil, err
	}
	if h.Crtn, err = find(dirs, "crtn.o"); err != nil {
		return nil, err
	}
	if static {
		h.Libc, err = find(dirs, "libc.a")
	} else {
		h.Libc, err = find(dirs, "libc.so", "libc.a")
	}
	if err != nil {
		return nil, err
	}
	h.Static = strings.HasSuffix(h.Libc, ".a")
	if !h.Static {
		if h.Loader, err = findLoader(t); err != nil {
			return nil, err
		}
	}
	command, err := exec.LookPath(h.Command)
	if err != nil {
		return nil, &MissingArtifactError{Artifact: "linker command " + h.Command, Searched: filepath.SplitList(os.Getenv("PATH"))}
	}
	h.Command = command
	if h.WorkDir, err = os.MkdirTemp("", "brainfuck-"); err != nil {
		return nil, err
	}
	if config.Verbose() {
		fmt.Fprintf(os.Stderr, "runtime: %s %s %s %s loader=%q\n", h.Start, h.Crti, h.Crtn, h.Libc, h.Loader)
	}
	return h, nil
}

// Link links the object file into the executable output.
func Link(object string, h *Handle, output string) error {
	args := []string{}
	if h.Static {
		args = append(args, "-static")
	} else {
		args = append(args, "-dynamic-linker", h.Loader)
	}
	args = append(args, "-o", output, h.Start, h.Crti, object)
	if h.Static {
		args = append(args, "--start-group", h.Libc, "--end-group")
	} else {
		args = append(args, "-L", filepath.Dir(h.Libc), "-lc")
	}
	args = append(args, h.Crtn)
	args = append(args, h.Flags...)
	cmd := exec.Command(h.Command, args...)
	var buf bytes.Buffer
	if config.Verbose() {
		fmt.Fprintln(os.Stderr, cmd.String())
		cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	} else {
		cmd.Stdout, cmd.Stderr = &buf, &buf
	}
	if err := cmd.Run(); err != nil {
		return &LinkError{Command: cmd.String(), Output: buf.String(), Err: err}
	}
	return nil
}

// Release removes the work directory. It is safe to call Release on nil or more than once.
func Release(h *Handle) {
	if h == nil || h.WorkDir == "" {
		return
	}
	os.RemoveAll(h.WorkDir)
	h.WorkDir = ""
}

func find(dirs []string, names ...string) (string, error) {
	for _, name := range names {
		for _, dir := range dirs {
			path := filepath.Join(dir, name)
			if st, err := os.Stat(path); err == nil && !st.IsDir() {
				return path, nil
			}
		}
	}
	return "", &MissingArtifactError{Artifact: strings.Join(names, " or "), Searched: dirs}
}
