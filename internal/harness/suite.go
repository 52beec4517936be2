package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"
)

// DefaultExport is the export a check calls when none is named.
const DefaultExport = "multiply"

// Check is one invocation and its expected result.
type Check struct {
	Name     string  `json:"name"`
	Export   string  `json:"export"`
	Args     []int64 `json:"args"`
	Expected int64   `json:"expected"`
}

// Suite is an ordered list of checks.
type Suite struct {
	Checks []Check `json:"checks"`
}

// DefaultSuite returns the reference check: multiply(61, 89) == 5429.
func DefaultSuite() Suite {
	return Suite{Checks: []Check{{
		Name:     DefaultExport,
		Export:   DefaultExport,
		Args:     []int64{61, 89},
		Expected: 5429,
	}}}
}

// checksFile mirrors the on-disk format. Expected is a pointer so a missing
// value can be told apart from 0.
type checksFile struct {
	Checks []checkEntry `yaml:"checks" json:"checks"`
}

type checkEntry struct {
	Name     string  `yaml:"name,omitempty" json:"name,omitempty"`
	Export   string  `yaml:"export,omitempty" json:"export,omitempty"`
	Args     []int64 `yaml:"args" json:"args"`
	Expected *int64  `yaml:"expected" json:"expected"`
}

// LoadSuite reads a checks file. The format is chosen by extension:
// .yaml/.yml or .cue.
func LoadSuite(path string) (Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Suite{}, fmt.Errorf("failed to read checks file: %w", err)
	}

	var file checksFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, &file)
	case ".cue":
		err = decodeCUE(path, data, &file)
	default:
		return Suite{}, fmt.Errorf("unsupported checks file %s: want .yaml, .yml or .cue", filepath.Base(path))
	}
	if err != nil {
		return Suite{}, err
	}

	suite, err := file.suite()
	if err != nil {
		return Suite{}, fmt.Errorf("invalid checks file: %w", err)
	}
	return suite, nil
}

func decodeYAML(data []byte, file *checksFile) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(file); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse YAML: empty document")
		}
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func decodeCUE(path string, data []byte, file *checksFile) error {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return fmt.Errorf("failed to compile CUE: %w", err)
	}
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("failed to validate CUE: %w", err)
	}
	if err := value.Decode(file); err != nil {
		return fmt.Errorf("failed to decode CUE: %w", err)
	}
	return nil
}

// suite applies defaults and validates every entry.
func (f *checksFile) suite() (Suite, error) {
	if len(f.Checks) == 0 {
		return Suite{}, fmt.Errorf("checks list is required and must be non-empty")
	}

	suite := Suite{Checks: make([]Check, 0, len(f.Checks))}
	for i, entry := range f.Checks {
		if len(entry.Args) != 2 {
			return Suite{}, fmt.Errorf("checks[%d]: args must hold exactly 2 operands, got %d", i, len(entry.Args))
		}
		if entry.Expected == nil {
			return Suite{}, fmt.Errorf("checks[%d]: expected is required", i)
		}

		check := Check{
			Name:     entry.Name,
			Export:   entry.Export,
			Args:     entry.Args,
			Expected: *entry.Expected,
		}
		if check.Export == "" {
			check.Export = DefaultExport
		}
		if check.Name == "" {
			check.Name = check.Export
		}
		suite.Checks = append(suite.Checks, check)
	}

	return suite, nil
}
