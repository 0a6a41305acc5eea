package script

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/blocktext/pkg/errors"
)

// Script is a parsed operation script.
type Script struct {
	Width   int    `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty"`
	Backend string `yaml:"backend,omitempty" toml:"backend,omitempty" json:"backend,omitempty"`
	Ops     []Op   `yaml:"ops" toml:"ops" json:"ops"`
}

// Op is one renderer operation. Which fields are read depends on Op.
type Op struct {
	Op       string   `yaml:"op" toml:"op" json:"op"`
	Text     string   `yaml:"text,omitempty" toml:"text,omitempty" json:"text,omitempty"`
	Target   string   `yaml:"target,omitempty" toml:"target,omitempty" json:"target,omitempty"`
	Title    string   `yaml:"title,omitempty" toml:"title,omitempty" json:"title,omitempty"`
	Name     string   `yaml:"name,omitempty" toml:"name,omitempty" json:"name,omitempty"`
	Width    int      `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty"`
	Indent   int      `yaml:"indent,omitempty" toml:"indent,omitempty" json:"indent,omitempty"`
	Prefixes []string `yaml:"prefixes,omitempty" toml:"prefixes,omitempty" json:"prefixes,omitempty"`
	Collapse bool     `yaml:"collapse,omitempty" toml:"collapse,omitempty" json:"collapse,omitempty"`
	Ops      []Op     `yaml:"ops,omitempty" toml:"ops,omitempty" json:"ops,omitempty"`
	Columns  []Column `yaml:"columns,omitempty" toml:"columns,omitempty" json:"columns,omitempty"`
}

// Column is one table column: a width and the operations that fill it.
type Column struct {
	Width int  `yaml:"width" toml:"width" json:"width"`
	Ops   []Op `yaml:"ops" toml:"ops" json:"ops"`
}

// Format is a script encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor returns the format implied by the file extension of path.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.Newf(errors.ErrScriptParse, "cannot tell script format from %q", filepath.Base(path)).
		WithDetail("path", path)
}

// Load reads and parses the script at path from fs.
func Load(fs afero.Fs, path string) (*Script, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to read script %s", path).
			WithDetail("path", path)
	}
	s, err := Parse(data, format)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptParse, "failed to parse script %s", path).
			WithDetail("path", path)
	}
	return s, nil
}

// Parse decodes a script. Unknown keys are rejected and every op name is
// checked.
func Parse(data []byte, format Format) (*Script, error) {
	var s Script
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil && err != io.EOF {
			return nil, errors.Wrap(err, errors.ErrScriptParse, "invalid yaml script")
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&s); err != nil {
			return nil, errors.Wrap(err, errors.ErrScriptParse, "invalid toml script")
		}
	default:
		return nil, errors.Newf(errors.ErrScriptParse, "unknown script format %q", format)
	}
	if s.Width < 0 {
		return nil, errors.Newf(errors.ErrScriptParse, "script width must not be negative, got %d", s.Width)
	}
	if err := checkOps(s.Ops, "ops"); err != nil {
		return nil, err
	}
	return &s, nil
}

func checkOps(ops []Op, path string) error {
	for i, op := range ops {
		if !known(op.Op) {
			return errors.Newf(errors.ErrScriptParse, "%s[%d]: unknown op %q", path, i, op.Op).
				WithDetail("index", i).
				WithDetail("op", op.Op)
		}
		if err := checkOps(op.Ops, path+"["+itoa(i)+"].ops"); err != nil {
			return err
		}
		for j, col := range op.Columns {
			if err := checkOps(col.Ops, path+"["+itoa(i)+"].columns["+itoa(j)+"].ops"); err != nil {
				return err
			}
		}
	}
	return nil
}
