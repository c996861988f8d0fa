package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/autocomplete"
)

func TestExecute(t *testing.T) {
	assert.NoError(t, execute(""))
	assert.ErrorIs(t, execute("exit"), errExit)
	assert.ErrorContains(t, execute("rm -rf /"), "unknown command: rm")
	assert.ErrorContains(t, execute("cat"), "missing file operand")
	assert.Error(t, execute(`cat "unterminated`))

	dir := filepath.Join(t.TempDir(), "with space")
	require.NoError(t, os.Mkdir(dir, 0o755))
	t.Chdir(dir)
	require.NoError(t, execute(`cd ".."`))
	require.NoError(t, execute(`cd "with space"`))

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, "with space", filepath.Base(cwd))
}

func TestShellSourceCompletesCommands(t *testing.T) {
	t.Parallel()

	source := createShellSource()
	got, err := source(context.Background(), nil, "c", autocomplete.SourceContext{Cursor: 1})
	require.NoError(t, err)

	var values []any
	for _, c := range got {
		values = append(values, c.Value)
	}
	assert.Equal(t, []any{"cd ", "cat "}, values)
}
