package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// config holds the compiler configuration. It is initialized
// by init() and cannot be accessed in other packages.
// Please use the exported functions below to access the configuration values.
var config struct {
	Base         string `json:"BRAINFUCK_BASE"` // may be empty
	ConfDirPath  string
	BuildTarget  string
	Verbose      bool `json:"-"` // this field is governed by a run flag
}

func init() {
	config.Base = os.Getenv("BRAINFUCK_BASE")
	config.ConfDirPath = userDirectory(os.UserConfigDir())
	config.BuildTarget = EncodedPlatformName()
	config.Verbose = false
}

// userDirectory returns the compiler specific path of a user directory if it can be determined.
// Without a home directory the path is left empty and nothing is looked up there.
func userDirectory(path string, err error) string {
	if err != nil {
		return ""
	}
	return filepath.Join(path, "brainfuck")
}

// Base returns the path specified in the BRAINFUCK_BASE environment variable.
// It points to the installation holding build targets and backend configurations.
func Base() string {
	return config.Base
}

// ConfDirPath returns the path used for storing configuration files.
func ConfDirPath() string {
	return config.ConfDirPath
}

// BuildTargetName is the name of the build target file without extension.
func BuildTargetName() string {
	return config.BuildTarget
}

// PrintConf prints the current configuration to stdout in JSON format.
func PrintConf() {
	prettyConf, _ := json.MarshalIndent(config, "", "    ")
	fmt.Println(string(prettyConf))
}

// Set common configuration options. Be careful to use the correct types as value!
func Set(name string, value interface{}) {
	switch name {
	case "verbose":
		config.Verbose = value.(bool)
	case "target":
		config.BuildTarget = value.(string)
	}
}

// Verbose returns the Verbose setting.
func Verbose() bool {
	return config.Verbose
}
