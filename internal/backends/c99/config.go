package c99

import (
	"errors"
	"os/exec"
	"path/filepath"
	"strings"
)

type (
	// Config contains the complete configuration of the c99 backend.
	Config struct {
		Compiler *CompilerConf
		// configTriplet is the name of the loaded configuration file without extension.
		configTriplet string
	}

	// CompilerConf contains the configuration of the c99 compiler.
	CompilerConf struct {
		Bin           string
		RequiredFlags string
		DebugFlags    string
		ReleaseFlags  string
	}
)

// Name prints the name of the backend.
func (c *Config) Name() string {
	return "c99"
}

// Default configures the backend with the default values.
func (c *Config) Default() {
	c.Compiler = &CompilerConf{Bin: "cc", RequiredFlags: "-std=c99 -fPIE -D_FORTIFY_SOURCE=0", DebugFlags: "-g", ReleaseFlags: "-O2"}
}

// CheckConfig checks the validity of the loaded configuration and returns warnings and errors.
func (c *Config) CheckConfig() (warnings []string, err error) {
	if c.Compiler == nil || c.Compiler.Bin == "" {
		return nil, errors.New("no compiler binary has been configured")
	}
	if c.isGccOrClang() && !strings.Contains(c.Compiler.RequiredFlags, "-D_FORTIFY_SOURCE=0") {
		warnings = append(warnings, "GCC and Clang should be run with -D_FORTIFY_SOURCE=0!")
	}
	return
}

func (c *Config) isGccOrClang() bool {
	if strings.Contains(c.Compiler.Bin, "gcc") || strings.Contains(c.Compiler.Bin, "clang") {
		return true
	}
	return false
}

// getConfigName tries to automatically determine the correct configuration for a given compiler.
// Only works with gcc/clang.
func getConfigName(compilerPath string) (string, error) {
	project, err := getCompilerProject(compilerPath)
	if err != nil {
		return "", errors.New("autodetection of the compiler configuration only works with gcc or clang")
	}
	res, err := exec.Command(compilerPath, "-dumpmachine").Output()
	if err != nil {
		return "", err
	}
	triplet := strings.Trim(string(res), "\t\n ")
	return triplet + "-" + project + ".json", nil
}

func getCompilerProject(compilerPath string) (string, error) {
	compilerBinary := filepath.Base(compilerPath)
	if strings.Contains(compilerBinary, "gcc") {
		return "gcc", nil
	} else if strings.Contains(compilerBinary, "clang") {
		return "clang", nil
	}
	return "", errors.New("unable to match the compiler to a project (gcc/clang)")
}
