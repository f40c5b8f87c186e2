package yamlrender_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonp92/TemplateTango/templating"
	"github.com/jonp92/TemplateTango/yamlrender"
)

// decodeAllDocs decodes all YAML documents from raw bytes
// into a slice of maps for structural comparison.
func decodeAllDocs(
	tb testing.TB,
	raw []byte,
) []map[string]interface{} {
	tb.Helper()

	docs, err := yamlrender.DecodeAllDocs(raw)
	require.NoError(tb, err)

	maps := make([]map[string]interface{}, 0, len(docs))

	for _, doc := range docs {
		m, ok := doc.(map[string]interface{})
		require.True(tb, ok, "document is not a mapping: %T", doc)

		maps = append(maps, m)
	}

	return maps
}

// lookup follows path through nested maps and lists.
func lookup(
	tb testing.TB,
	node interface{},
	path ...interface{},
) interface{} {
	tb.Helper()

	for _, step := range path {
		switch key := step.(type) {
		case string:
			m, ok := node.(map[string]interface{})
			require.True(tb, ok, "expected mapping at %v", key)

			node = m[key]
		case int:
			list, ok := node.([]interface{})
			require.True(tb, ok, "expected list at %d", key)
			require.Less(tb, key, len(list))

			node = list[key]
		}
	}

	return node
}

func TestRenderDocuments_manifest(t *testing.T) {
	t.Parallel()

	in, err := os.ReadFile(filepath.Join("testdata", "deployment.yaml"))
	require.NoError(t, err)

	var out bytes.Buffer

	err = yamlrender.RenderDocuments(
		bytes.NewReader(in),
		&out,
		&templating.Engine{StringResults: true},
		map[string]string{
			"name":   `"web"`,
			"base":   "3",
			"factor": "5",
			"key":    "ignored",
		},
	)
	require.NoError(t, err)

	docs := decodeAllDocs(t, out.Bytes())
	require.Len(t, docs, 2)

	deploy := docs[0]

	assert.Equal(t, "web", lookup(t, deploy, "metadata", "name"))
	assert.Equal(t, "backend", lookup(t, deploy, "metadata", "labels", "tier"))
	assert.Equal(t, "15", fmt.Sprint(lookup(t, deploy, "spec", "replicas")))

	container := lookup(t, deploy, "spec", "template", "spec", "containers", 0)
	assert.Equal(t, "--workers=4", lookup(t, container, "args", 0))
	assert.Equal(t, "--ratio=0.75", lookup(t, container, "args", 1))
	assert.Equal(t, "8080", fmt.Sprint(lookup(t, container, "ports", 0, "containerPort")))

	cfg := docs[1]

	// Keys are never rendered.
	assert.Equal(t, "1", fmt.Sprint(lookup(t, cfg, "data", "{{key}}")))
}

func TestRenderDocuments_preserves_key_order(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := yamlrender.RenderDocuments(
		strings.NewReader("zeta: a\nalpha: \"{{1 + 1}}\"\nmid: b\n"),
		&out,
		&templating.Engine{},
		nil,
	)
	require.NoError(t, err)

	rendered := out.String()
	zeta := strings.Index(rendered, "zeta")
	alpha := strings.Index(rendered, "alpha")
	mid := strings.Index(rendered, "mid")

	require.NotEqual(t, -1, zeta)
	assert.Less(t, zeta, alpha)
	assert.Less(t, alpha, mid)
}

func TestRenderDocuments_separates_documents(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := yamlrender.RenderDocuments(
		strings.NewReader("a: x\n---\nb: y\n"),
		&out,
		&templating.Engine{},
		nil,
	)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out.String(), "---\n"))
	assert.Len(t, decodeAllDocs(t, out.Bytes()), 2)
}

func TestRenderDocuments_iteration_limit(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := yamlrender.RenderDocuments(
		strings.NewReader("outer:\n  inner: \"{{x}}\"\n"),
		&out,
		&templating.Engine{StringResults: true, MaxIterations: 4},
		map[string]string{"x": `"{{x}}"`},
	)

	require.ErrorIs(t, err, templating.ErrIterationLimit)
	assert.Contains(t, err.Error(), "document 0")
	assert.Contains(t, err.Error(), "key inner")
	assert.Empty(t, out.String())
}

func TestRenderDocuments_invalid_yaml(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := yamlrender.RenderDocuments(
		strings.NewReader("a: [unclosed\n"),
		&out,
		&templating.Engine{},
		nil,
	)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding yaml")
}

func TestRenderDocuments_empty_input(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := yamlrender.RenderDocuments(
		strings.NewReader(""),
		&out,
		&templating.Engine{},
		nil,
	)

	require.NoError(t, err)
	assert.Empty(t, out.String())
}

func TestRenderDocuments_skips_empty_documents_mid_stream(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "consecutive separators",
			input: "a: \"{{1 + 1}}\"\n---\n---\nk: v\n",
		},
		{
			name:  "comment-only document",
			input: "a: \"{{1 + 1}}\"\n---\n# Source: chart/templates/empty.yaml\n---\nk: v\n",
		},
		{
			name:  "null document",
			input: "a: \"{{1 + 1}}\"\n---\nnull\n---\nk: v\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			err := yamlrender.RenderDocuments(
				strings.NewReader(tt.input),
				&out,
				&templating.Engine{},
				nil,
			)
			require.NoError(t, err)

			docs := decodeAllDocs(t, out.Bytes())
			require.Len(t, docs, 2)
			assert.Equal(t, "2", fmt.Sprint(docs[0]["a"]))
			assert.Equal(t, "v", docs[1]["k"])
			assert.Equal(t, 1, strings.Count(out.String(), "---\n"))
		})
	}
}

func TestDecodeAllDocs_keeps_documents_after_empty_one(t *testing.T) {
	t.Parallel()

	docs, err := yamlrender.DecodeAllDocs(
		[]byte("a: 1\n---\n# only comment\n---\n---\nk: v\n"),
	)

	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestRenderDocuments_custom_tags(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	err := yamlrender.RenderDocuments(
		strings.NewReader("a: \"<%n * 2%>\"\nb: \"{{n}}\"\n"),
		&out,
		&templating.Engine{StartTag: "<%", EndTag: "%>"},
		map[string]string{"n": "21"},
	)
	require.NoError(t, err)

	docs := decodeAllDocs(t, out.Bytes())
	require.Len(t, docs, 1)
	assert.Equal(t, "42", fmt.Sprint(docs[0]["a"]))
	assert.Equal(t, "{{n}}", docs[0]["b"])
}
