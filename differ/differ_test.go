package differ

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/erraggy/oasdelta/oaserrors"
	"github.com/erraggy/oasdelta/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDifferNew(t *testing.T) {
	d := New()
	require.NotNil(t, d)
	assert.True(t, d.DetectRenames)
	assert.NotNil(t, d.Logger)
}

func TestDifferDiff(t *testing.T) {
	result, err := New().Diff("../testdata/petstore-v1.yaml", "../testdata/petstore-v2.yaml")
	require.NoError(t, err)

	assert.Equal(t, "../testdata/petstore-v1.yaml", result.SourcePath)
	assert.Equal(t, "3.0.3", result.SourceVersion)
	assert.Equal(t, "3.0.3", result.TargetVersion)
	assert.Equal(t, parser.DocumentStats{PathCount: 2, OperationCount: 4, SchemaCount: 4}, result.SourceStats)
	assert.Equal(t, parser.DocumentStats{PathCount: 3, OperationCount: 4, SchemaCount: 5}, result.TargetStats)

	assert.Equal(t, map[string]*LeafChange{"version": {Old: "1.0.0", New: "1.1.0"}}, result.InfoChanges)
	assert.Equal(t, []string{"/stores"}, result.NewPaths)
	assert.Empty(t, result.RemovedPaths)
	assert.Equal(t, []string{"delete"}, result.ModifiedPaths["/pets/{petId}"].RemovedOps)
	assert.Equal(t, []string{"stores"}, result.TagsChanges.New)
	assert.Equal(t, []string{"https://petstore.example.com/v2"}, result.ServersChanges.New)
	assert.Equal(t, []string{"https://petstore.example.com/v1"}, result.ServersChanges.Removed)
	assert.True(t, result.HasChanges())
}

func TestDifferDiff_InvalidInputs(t *testing.T) {
	_, err := New().Diff("nonexistent.yaml", "../testdata/petstore-v2.yaml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
	assert.Contains(t, err.Error(), "failed to parse source")

	_, err = New().Diff("../testdata/petstore-v1.yaml", "nonexistent.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse target")
}

func TestDiffParsed_EmptyDocument(t *testing.T) {
	_, err := New().DiffParsed(parser.ParseResult{}, mustParse(t, "openapi: 3.0.3\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrConfig))
}

func TestDiffWithOptions(t *testing.T) {
	t.Run("file paths", func(t *testing.T) {
		result, err := DiffWithOptions(
			WithSourceFilePath("../testdata/petstore-v1.yaml"),
			WithTargetFilePath("../testdata/petstore-v2.yaml"),
		)
		require.NoError(t, err)
		assert.NotEmpty(t, result.RenamedComponents["schemas"])
	})

	t.Run("mixed sources", func(t *testing.T) {
		target := mustParse(t, "openapi: 3.0.3\n")
		result, err := DiffWithOptions(
			WithSourceFilePath("../testdata/petstore-v1.yaml"),
			WithTargetParsed(target),
		)
		require.NoError(t, err)
		assert.Len(t, result.RemovedPaths, 2)
	})

	tests := []struct {
		name    string
		opts    []Option
		wantMsg string
	}{
		{
			name:    "no source",
			opts:    []Option{WithTargetFilePath("b.yaml")},
			wantMsg: "must specify a source",
		},
		{
			name:    "no target",
			opts:    []Option{WithSourceFilePath("a.yaml")},
			wantMsg: "must specify a target",
		},
		{
			name: "two sources",
			opts: []Option{
				WithSourceFilePath("a.yaml"),
				WithSourceParsed(parser.ParseResult{}),
				WithTargetFilePath("b.yaml"),
			},
			wantMsg: "must specify exactly one source",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DiffWithOptions(tt.opts...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrConfig))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestWithLogger_LogsRenameDecisions(t *testing.T) {
	var buf bytes.Buffer
	logger := parser.NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	_, err := DiffWithOptions(
		WithSourceFilePath("../testdata/petstore-v1.yaml"),
		WithTargetFilePath("../testdata/petstore-v2.yaml"),
		WithLogger(logger),
	)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "rename seeds collected")
	assert.Contains(t, out, "rename resolved")
	assert.Contains(t, out, "old=Pet new=Animal status=Modification")
	assert.Contains(t, out, "rename detection finished")
}

func TestUnmatchedSchemas(t *testing.T) {
	r := &DiffResult{
		NewComponents:     map[string][]string{"schemas": {"Zeta", "Alpha"}},
		RemovedComponents: map[string][]string{},
	}
	removed, added := r.UnmatchedSchemas()
	assert.Equal(t, []string{}, removed)
	assert.Equal(t, []string{"Alpha", "Zeta"}, added)
	assert.Equal(t, []string{"Zeta", "Alpha"}, r.NewComponents["schemas"], "result is not reordered")
}
