package weights

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/sddkit/pkg/errors"
)

// file is the on-disk layout shared by all weight file formats.
// Keys are decimal literals; YAML keys should be quoted.
type file struct {
	Weights map[string]float64 `toml:"weights" yaml:"weights" json:"weights"`
}

// Load reads a weight table from path. The format is chosen by extension:
// .toml, .yaml/.yml or .json.
func Load(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, strings.TrimPrefix(filepath.Ext(path), "."), path)
}

// Decode parses a weight file in the given format ("toml", "yaml", "yml" or
// "json"). name is only used in error messages.
func Decode(data []byte, format, name string) (Table, error) {
	var f file
	switch strings.ToLower(format) {
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: decode toml", name)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: decode yaml", name)
		}
	case "json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "%s: decode json", name)
		}
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "%s: unsupported weight file format %q", name, format)
	}

	t := make(Table, len(f.Weights))
	for key, w := range f.Weights {
		lit, err := parseLiteral(key)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if err := errors.ValidateWeight(lit, w); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		t[lit] = w
	}
	return t, nil
}

// ParsePairs parses "lit=weight" pairs such as "1=0.3" or "-2=0.5".
// A literal given twice keeps its last weight.
func ParsePairs(pairs []string) (Table, error) {
	t := make(Table, len(pairs))
	for _, p := range pairs {
		key, value, ok := strings.Cut(p, "=")
		if !ok {
			key, value, ok = strings.Cut(p, ":")
		}
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "weight %q must have the form lit=weight", p)
		}
		lit, err := parseLiteral(key)
		if err != nil {
			return nil, err
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidWeight, "weight %q is not a number", value)
		}
		if err := errors.ValidateWeight(lit, w); err != nil {
			return nil, err
		}
		t[lit] = w
	}
	return t, nil
}

func parseLiteral(s string) (int, error) {
	lit, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidLiteral, "literal %q is not an integer", s)
	}
	if err := errors.ValidateLiteral(lit); err != nil {
		return 0, err
	}
	return lit, nil
}
