package weights

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/sddkit/pkg/errors"
)

func TestTableLookup(t *testing.T) {
	tbl := Table{1: 0.3, -1: 0.7}

	if w, ok := tbl.Lookup(1); !ok || w != 0.3 {
		t.Errorf("Lookup(1) = %v, %v, want 0.3, true", w, ok)
	}
	if _, ok := tbl.Lookup(2); ok {
		t.Error("Lookup(2) should report a missing entry")
	}
	if got := tbl.Weight(2); got != DefaultWeight {
		t.Errorf("Weight(2) = %v, want %v", got, DefaultWeight)
	}
	if got := tbl.Weight(-1); got != 0.7 {
		t.Errorf("Weight(-1) = %v, want 0.7", got)
	}
}

func TestNilTable(t *testing.T) {
	var tbl Table
	if got := tbl.Weight(5); got != DefaultWeight {
		t.Errorf("nil Table Weight(5) = %v, want %v", got, DefaultWeight)
	}
}

func TestHashIsOrderIndependent(t *testing.T) {
	a := Table{}
	a.Set(1, 0.5)
	a.Set(-1, 0.5)
	b := Table{}
	b.Set(-1, 0.5)
	b.Set(1, 0.5)

	if a.Hash() != b.Hash() {
		t.Error("Hash should not depend on insertion order")
	}
	if a.Hash() == (Table{1: 0.4}).Hash() {
		t.Error("different tables should hash differently")
	}
	if len(a.Hash()) != 64 {
		t.Errorf("Hash length = %d, want 64", len(a.Hash()))
	}
}

func TestString(t *testing.T) {
	tbl := Table{2: 0.25, -1: 0.5}
	if got := tbl.String(); got != "{-1=0.5, 2=0.25}" {
		t.Errorf("String() = %q", got)
	}
}

func TestMerge(t *testing.T) {
	got := Merge(Table{1: 0.1, 2: 0.2}, Table{2: 0.9})
	if got[1] != 0.1 || got[2] != 0.9 || len(got) != 2 {
		t.Errorf("Merge() = %v", got)
	}
}

func TestParsePairs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		want    Table
		wantErr errors.Code
	}{
		{
			name:  "equals",
			input: []string{"1=0.3", "-1=0.7"},
			want:  Table{1: 0.3, -1: 0.7},
		},
		{
			name:  "colon",
			input: []string{"2:0.5"},
			want:  Table{2: 0.5},
		},
		{
			name:  "last wins",
			input: []string{"1=0.1", "1=0.2"},
			want:  Table{1: 0.2},
		},
		{
			name:    "missing separator",
			input:   []string{"1"},
			wantErr: errors.ErrCodeInvalidInput,
		},
		{
			name:    "literal zero",
			input:   []string{"0=1"},
			wantErr: errors.ErrCodeInvalidLiteral,
		},
		{
			name:    "bad literal",
			input:   []string{"x=1"},
			wantErr: errors.ErrCodeInvalidLiteral,
		},
		{
			name:    "bad weight",
			input:   []string{"1=heavy"},
			wantErr: errors.ErrCodeInvalidWeight,
		},
		{
			name:    "nan weight",
			input:   []string{"1=NaN"},
			wantErr: errors.ErrCodeInvalidWeight,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePairs(tt.input)
			if tt.wantErr != "" {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParsePairs() error = %v, want code %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePairs() error = %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParsePairs() = %v, want %v", got, tt.want)
			}
			for lit, w := range tt.want {
				if got[lit] != w {
					t.Errorf("weight[%d] = %v, want %v", lit, got[lit], w)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "toml",
			file:    "w.toml",
			content: "[weights]\n1 = 0.3\n-1 = 0.7\n",
		},
		{
			name:    "yaml",
			file:    "w.yaml",
			content: "weights:\n  \"1\": 0.3\n  \"-1\": 0.7\n",
		},
		{
			name:    "json",
			file:    "w.json",
			content: `{"weights": {"1": 0.3, "-1": 0.7}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			got, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got[1] != 0.3 || got[-1] != 0.7 || len(got) != 2 {
				t.Errorf("Load() = %v", got)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !os.IsNotExist(err) {
		t.Errorf("Load(missing) error = %v, want not-exist", err)
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("[weights]\nx = 1.0\n"), 0o644)
	if _, err := Load(bad); !errors.Is(err, errors.ErrCodeInvalidLiteral) {
		t.Errorf("Load(bad literal) error = %v", err)
	}

	broken := filepath.Join(dir, "broken.json")
	os.WriteFile(broken, []byte("{"), 0o644)
	if _, err := Load(broken); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Load(broken) error = %v", err)
	}

	ini := filepath.Join(dir, "w.ini")
	os.WriteFile(ini, []byte(""), 0o644)
	if _, err := Load(ini); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Load(ini) error = %v", err)
	}
}
