package script_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/blocktext/pkg/errors"
	"github.com/arthur-debert/blocktext/pkg/script"
	"github.com/arthur-debert/blocktext/pkg/testutil"
)

const sampleYAML = `width: 30
ops:
  - op: start_block
  - op: text
    text: hello
  - op: columns
    collapse: true
    columns:
      - width: 5
        ops:
          - op: text
            text: a
      - width: 5
        ops:
          - op: text
            text: b
  - op: end_block
`

const sampleTOML = `width = 30

[[ops]]
op = "start_block"

[[ops]]
op = "text"
text = "hello"

[[ops]]
op = "columns"
collapse = true

  [[ops.columns]]
  width = 5

    [[ops.columns.ops]]
    op = "text"
    text = "a"

  [[ops.columns]]
  width = 5

    [[ops.columns.ops]]
    op = "text"
    text = "b"

[[ops]]
op = "end_block"
`

func TestLoad_YAMLAndTOMLAgree(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{
		"/scripts/doc.yaml": sampleYAML,
		"/scripts/doc.toml": sampleTOML,
	})

	fromYAML, err := script.Load(fs, "/scripts/doc.yaml")
	require.NoError(t, err)
	fromTOML, err := script.Load(fs, "/scripts/doc.toml")
	require.NoError(t, err)

	if diff := cmp.Diff(fromYAML, fromTOML); diff != "" {
		t.Errorf("yaml and toml scripts differ (-yaml +toml):\n%s", diff)
	}
	assert.Equal(t, 30, fromYAML.Width)
	require.Len(t, fromYAML.Ops, 4)
	assert.Len(t, fromYAML.Ops[2].Columns, 2)
}

func TestLoad_Errors(t *testing.T) {
	fs := testutil.MemFS(t, map[string]string{
		"/unknown-key.yaml": "width: 10\nops:\n  - op: text\n    txt: typo\n",
		"/unknown-op.yaml":  "ops:\n  - op: text\n  - op: subrender\n    ops:\n      - op: explode\n",
		"/broken.toml":      "width = \n",
		"/negative.yaml":    "width: -2\n",
		"/script.txt":       "ops: []\n",
	})

	tests := []string{"/unknown-key.yaml", "/unknown-op.yaml", "/broken.toml", "/negative.yaml", "/script.txt", "/missing.yaml"}
	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			_, err := script.Load(fs, path)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrScriptParse), "error: %v", err)
		})
	}
}

func TestParse_UnknownOpNamesPath(t *testing.T) {
	_, err := script.Parse([]byte("ops:\n  - op: subrender\n    ops:\n      - op: explode\n"), script.FormatYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ops[0].ops[0]")
	assert.Equal(t, "explode", errors.GetErrorDetails(err)["op"])
}

func TestParse_Empty(t *testing.T) {
	s, err := script.Parse(nil, script.FormatYAML)
	require.NoError(t, err)
	assert.Empty(t, s.Ops)
}
