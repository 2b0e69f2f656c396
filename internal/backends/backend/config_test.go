package backend

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestConfig is a mock struct
type TestConfig struct {
	TestData1 string
	TestData2 bool
	TestData3 int
}

// Default mock function
func (c *TestConfig) Default() {}

// Name mock function
func (c *TestConfig) Name() string {
	return "TestConfig"
}

// CheckConfig mock function
func (c *TestConfig) CheckConfig() ([]string, error) {
	if c.TestData3 < 0 {
		return nil, errors.New("TestData3 must not be negative")
	}
	return nil, nil
}

func TestValidJSON(t *testing.T) {
	// Given
	testString := `
	{
		"TestData1": "bla",
		"TestData2": true,
		"TestData3": 4
	}
	`
	r := strings.NewReader(testString)
	c := &TestConfig{}

	// When
	err := readConfig(r, c)

	// Then
	if err != nil {
		t.Fatal(err)
	}
	if c.TestData1 != "bla" ||
		c.TestData2 != true ||
		c.TestData3 != 4 {
		t.Errorf("The TestConfig struct does not contain the expected values.")
	}
}

func TestInvalidJSON(t *testing.T) {
	// Given
	testString := `
	{
		"TestData1": bla,
	}
	`
	r := strings.NewReader(testString)
	c := &TestConfig{}

	// When
	err := readConfig(r, c)

	// Then
	if err == nil {
		t.Errorf("The parsing of invalid JSON did not fail")
	}
}

func TestCheckConfigError(t *testing.T) {
	// Given
	r := strings.NewReader(`{"TestData3": -1}`)
	c := &TestConfig{}

	// When
	err := readConfig(r, c)

	// Then
	if err == nil || !strings.Contains(err.Error(), "TestData3") {
		t.Errorf("expected the CheckConfig error, got %v", err)
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	// Given
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, []byte(`{"TestData1": "file"}`), 0644); err != nil {
		t.Fatal(err)
	}
	c := &TestConfig{}

	// When
	err := LoadConfig(path, c)

	// Then
	if err != nil || c.TestData1 != "file" {
		t.Errorf("LoadConfig: %v, %+v", err, c)
	}
	if err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"), c); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}
