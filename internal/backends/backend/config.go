package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vs-ude/brainfuck/internal/config"
)

// Config is the interface backends need to implement in order to be configurable.
type Config interface {
	Default()
	Name() string
	CheckConfig() ([]string, error)
}

// PrintConfig prints the given config in formatted JSON.
func PrintConfig(c Config) {
	conf, _ := json.MarshalIndent(c, "", "    ")
	fmt.Println(string(conf))
}

// LoadConfig checks the existence of the given configuration file and parses it into the provided config struct.
func LoadConfig(path string, c Config) error {
	path, err := expandConfigPath(path, c)
	if err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("the %s configuration could not be opened: %w", c.Name(), err)
	}
	defer file.Close()
	return readConfig(file, c)
}

func readConfig(r io.Reader, c Config) error {
	jsonParser := json.NewDecoder(r)
	if err := jsonParser.Decode(c); err != nil {
		return fmt.Errorf("the %s configuration file contains invalid JSON: %w", c.Name(), err)
	}
	warnings, err := c.CheckConfig()
	if warnings != nil {
		printWarnings(c, warnings)
	}
	if err != nil {
		return fmt.Errorf("the %s configuration file contains errors: %w", c.Name(), err)
	}
	return nil
}

// expandConfigPath checks if the file exists in $WORKDIR/, $CONFDIR/backend/`c.Name()`/, or $BRAINFUCK_BASE/configs/backend/`c.Name()`,
// in this order and returns the absolute path to it.
func expandConfigPath(p string, c Config) (string, error) {
	checkPath := func(p string) (path string, err error) {
		path = p
		_, err = os.Stat(path)
		return
	}

	if _, err := os.Stat(p); err == nil {
		return filepath.Abs(p)
	}
	if config.ConfDirPath() != "" {
		if path, err := checkPath(filepath.Join(config.ConfDirPath(), "backend", c.Name(), p)); err == nil {
			return path, nil
		}
	}
	if config.Base() != "" {
		if path, err := checkPath(filepath.Join(config.Base(), "configs", "backend", c.Name(), p)); err == nil {
			return path, nil
		}
	}
	return "", errors.New("the backend configuration file " + p + " could not be located. " +
		"Please make sure you have provided a correct path or name for the file")
}

func printWarnings(c Config, warnings []string) {
	fmt.Fprintln(os.Stderr, "WARNING: The", c.Name(), "configuration contains possible issues!")
	for _, warning := range warnings {
		fmt.Fprintln(os.Stderr, "WARNING:", warning)
	}
}
