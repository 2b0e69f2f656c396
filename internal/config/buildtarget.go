package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
)

// BuildTargetConfig describes how executables are linked for one platform.
type BuildTargetConfig struct {
	Name                 string              `json:"name"`
	HardwareArchitecture string              `json:"arch"`
	OperatingSystem      string              `json:"os"`
	Linker               *BuildTargetLinker  `json:"linker"`
	Runtime              *BuildTargetRuntime `json:"runtime"`
}

// BuildTargetLinker ...
type BuildTargetLinker struct {
	Command string   `json:"command"`
	Flags   []string `json:"flags"`
}

// BuildTargetRuntime lists where the C runtime objects and the C library are searched.
type BuildTargetRuntime struct {
	SearchDirs []string `json:"searchDirs"`
	Loader     string   `json:"loader"`
	Static     bool     `json:"static"`
}

// EncodedPlatformName returns the name of the host platform, e.g. `linux_amd64`.
func EncodedPlatformName() string {
	return runtime.GOOS + "_" + runtime.GOARCH
}

// LoadBuildTarget reads `$BRAINFUCK_BASE/build_targets/<target>.json`.
// If there is no such file, a configuration for the host platform with empty linker and runtime settings is returned.
func LoadBuildTarget() (*BuildTargetConfig, error) {
	if config.Base == "" {
		return defaultBuildTarget(), nil
	}
	return loadBuildTarget(filepath.Join(config.Base, "build_targets", config.BuildTarget+".json"))
}

func defaultBuildTarget() *BuildTargetConfig {
	return &BuildTargetConfig{
		Name:                 EncodedPlatformName(),
		HardwareArchitecture: runtime.GOARCH,
		OperatingSystem:      runtime.GOOS,
		Linker:               &BuildTargetLinker{},
		Runtime:              &BuildTargetRuntime{},
	}
}

func loadBuildTarget(filename string) (*BuildTargetConfig, error) {
	cfg := defaultBuildTarget()
	stat, err := os.Stat(filename)
	if err != nil {
		return cfg, nil
	}
	if stat.IsDir() {
		return cfg, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.New("Failed to read build target file: " + filename + "\n" + err.Error())
	}
	err = json.Unmarshal(data, cfg)
	if err != nil {
		return nil, errors.New("Failed to parse build target file: " + filename + "\n" + err.Error())
	}
	if cfg.Linker == nil {
		cfg.Linker = &BuildTargetLinker{}
	}
	if cfg.Runtime == nil {
		cfg.Runtime = &BuildTargetRuntime{}
	}
	cfg.Name = config.BuildTarget
	return cfg, nil
}
