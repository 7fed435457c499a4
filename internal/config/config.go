// Package config loads optional run defaults from a YAML file.
//
// Precedence (highest to lowest):
//  1. Command-line flags
//  2. Config file (--config PATH, or fragnet.yaml beside the input)
//  3. Built-in defaults
//
// Example file:
//
//	processes: 8
//	chunk_size: 50
//	max_frag: 12
//	report_interval: 5000
//	format: sqlite
//	cache_dir: /scratch/fragnet-cache
//	mol_timeout: 30s
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// File mirrors the YAML schema. Pointer fields distinguish "absent"
// from zero so flag precedence works.
type File struct {
	Processes      *int    `yaml:"processes"`
	ChunkSize      *int    `yaml:"chunk_size"`
	MaxFrag        *int    `yaml:"max_frag"`
	ReportInterval *int    `yaml:"report_interval"`
	Format         *string `yaml:"format"`
	CacheDir       *string `yaml:"cache_dir"`
	MolTimeout     *string `yaml:"mol_timeout"`
}

// Load reads path. A missing file is only an error when the path was
// given explicitly.
func Load(path string, explicit bool) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return &File{}, nil
		}
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	if f.MolTimeout != nil {
		if _, err := time.ParseDuration(*f.MolTimeout); err != nil {
			return nil, fmt.Errorf("config %s: mol_timeout: %w", path, err)
		}
	}
	return &f, nil
}

// Sibling returns the default config location for an input file:
// fragnet.yaml in the same directory.
func Sibling(inputPath string) string {
	return filepath.Join(filepath.Dir(inputPath), "fragnet.yaml")
}

// Timeout parses the validated mol_timeout value; zero when absent.
func (f *File) Timeout() time.Duration {
	if f.MolTimeout == nil {
		return 0
	}
	d, _ := time.ParseDuration(*f.MolTimeout)
	return d
}
