package config_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/blocktext/pkg/config"
	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/testutil"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	return testutil.CreateFile(t, t.TempDir(), name, content)
}

func TestDefaults(t *testing.T) {
	opts, err := config.Defaults()
	require.NoError(t, err)
	assert.Equal(t, &config.Options{
		Width:     80,
		Backend:   "text",
		Decorator: "rich",
		Format:    "auto",
		Verbosity: 0,
	}, opts)
}

func TestLoad_Layering(t *testing.T) {
	testutil.Isolate(t)
	tomlFile := writeFile(t, "blocktext.toml", "width = 60\ndecorator = \"markdown\"\n")
	yamlFile := writeFile(t, "blocktext.yaml", "width: 50\nformat: json\n")

	tests := []struct {
		name      string
		src       config.Source
		env       map[string]string
		wantWidth int
		wantDeco  string
		wantFmt   string
	}{
		{
			name:      "defaults only",
			wantWidth: 80, wantDeco: "rich", wantFmt: "auto",
		},
		{
			name:      "toml file over defaults",
			src:       config.Source{File: tomlFile},
			wantWidth: 60, wantDeco: "markdown", wantFmt: "auto",
		},
		{
			name:      "yaml file over defaults",
			src:       config.Source{File: yamlFile},
			wantWidth: 50, wantDeco: "rich", wantFmt: "json",
		},
		{
			name:      "environment over file",
			src:       config.Source{File: tomlFile},
			env:       map[string]string{"BLOCKTEXT_WIDTH": "99", "BLOCKTEXT_FORMAT": " XML "},
			wantWidth: 99, wantDeco: "markdown", wantFmt: "xml",
		},
		{
			name: "overrides over environment",
			src: config.Source{
				File:      tomlFile,
				Overrides: map[string]interface{}{"width": 42, "decorator": "rich"},
			},
			env:       map[string]string{"BLOCKTEXT_WIDTH": "99"},
			wantWidth: 42, wantDeco: "rich", wantFmt: "auto",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			opts, err := config.Load(tt.src)
			require.NoError(t, err)
			assert.Equal(t, tt.wantWidth, opts.Width)
			assert.Equal(t, tt.wantDeco, opts.Decorator)
			assert.Equal(t, tt.wantFmt, opts.Format)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	testutil.Isolate(t)
	tests := []struct {
		name string
		src  func(t *testing.T) config.Source
		code errors.ErrorCode
	}{
		{
			name: "missing file",
			src: func(t *testing.T) config.Source {
				return config.Source{File: filepath.Join(t.TempDir(), "nope.toml")}
			},
			code: errors.ErrConfigLoad,
		},
		{
			name: "unsupported extension",
			src: func(t *testing.T) config.Source {
				return config.Source{File: writeFile(t, "cfg.ini", "width=1")}
			},
			code: errors.ErrConfigLoad,
		},
		{
			name: "malformed toml",
			src: func(t *testing.T) config.Source {
				return config.Source{File: writeFile(t, "cfg.toml", "width = = 3")}
			},
			code: errors.ErrConfigParse,
		},
		{
			name: "zero width",
			src: func(t *testing.T) config.Source {
				return config.Source{Overrides: map[string]interface{}{"width": 0}}
			},
			code: errors.ErrConfigValid,
		},
		{
			name: "unknown backend",
			src: func(t *testing.T) config.Source {
				return config.Source{Overrides: map[string]interface{}{"backend": "html"}}
			},
			code: errors.ErrConfigValid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Load(tt.src(t))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetErrorCode(err), "error: %v", err)
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	opts, err := config.Defaults()
	require.NoError(t, err)
	require.NoError(t, opts.Validate())

	opts.Verbosity = -1
	err = opts.Validate()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, "verbosity", errors.GetErrorDetails(err)["key"])

	opts.Verbosity = 0
	opts.Decorator = "html"
	err = opts.Validate()
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigValid))
	assert.Equal(t, []string{"markdown", "rich"}, errors.GetErrorDetails(err)["valid"],
		"decorators are checked against the registry")
}
