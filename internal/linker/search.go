package linker

import (
	"os"
	"path/filepath"

	"github.com/vs-ude/brainfuck/internal/config"
)

var multiarch = map[string]string{
	"amd64":   "x86_64-linux-gnu",
	"386":     "i386-linux-gnu",
	"arm64":   "aarch64-linux-gnu",
	"arm":     "arm-linux-gnueabihf",
	"riscv64": "riscv64-linux-gnu",
	"ppc64le": "powerpc64le-linux-gnu",
	"s390x":   "s390x-linux-gnu",
}

var loaders = map[string][]string{
	"amd64":   {"/lib64/ld-linux-x86-64.so.2", "/lib/x86_64-linux-gnu/ld-linux-x86-64.so.2", "/lib/ld-musl-x86_64.so.1"},
	"386":     {"/lib/ld-linux.so.2"},
	"arm64":   {"/lib/ld-linux-aarch64.so.1", "/lib/ld-musl-aarch64.so.1"},
	"arm":     {"/lib/ld-linux-armhf.so.3"},
	"riscv64": {"/lib/ld-linux-riscv64-lp64d.so.1"},
	"ppc64le": {"/lib64/ld64.so.2"},
	"s390x":   {"/lib/ld64.so.1"},
}

// searchDirs returns the configured search directories or the usual library directories of the target.
func searchDirs(t *config.BuildTargetConfig) []string {
	if t.Runtime != nil && len(t.Runtime.SearchDirs) != 0 {
		return t.Runtime.SearchDirs
	}
	var dirs []string
	if triple, ok := multiarch[t.HardwareArchitecture]; ok {
		dirs = append(dirs, filepath.Join("/usr/lib", triple), filepath.Join("/lib", triple))
	}
	dirs = append(dirs, "/usr/lib64", "/lib64", "/usr/lib", "/lib", "/usr/local/musl/lib", "/usr/lib/musl/lib")
	return dirs
}

func findLoader(t *config.BuildTargetConfig) (string, error) {
	if t.Runtime != nil && t.Runtime.Loader != "" {
		return t.Runtime.Loader, nil
	}
	candidates := loaders[t.HardwareArchitecture]
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", &MissingArtifactError{Artifact: "program interpreter", Searched: candidates}
}
