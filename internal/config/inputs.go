package config

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/saju/internal/saju"
)

// LoadInputs reads birth inputs for a batch run. Files ending in .yaml or
// .yml hold an `inputs` list; anything else is read as JSON Lines, one
// input per line, blank lines skipped.
func LoadInputs(path string) ([]saju.BirthInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inputs file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAMLInputs(data)
	default:
		return parseJSONLInputs(data)
	}
}

func parseYAMLInputs(data []byte) ([]saju.BirthInput, error) {
	var doc struct {
		Inputs []saju.BirthInput `yaml:"inputs"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing inputs file: %w", err)
	}
	return doc.Inputs, nil
}

func parseJSONLInputs(data []byte) ([]saju.BirthInput, error) {
	var out []saju.BirthInput
	sc := bufio.NewScanner(bytes.NewReader(data))
	for n := 1; sc.Scan(); n++ {
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		var in saju.BirthInput
		if err := json.Unmarshal(line, &in); err != nil {
			return nil, fmt.Errorf("parsing inputs line %d: %w", n, err)
		}
		out = append(out, in)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading inputs file: %w", err)
	}
	return out, nil
}
