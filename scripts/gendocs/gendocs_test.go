package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRulesDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateRulesDocs(dir))

	index, err := os.ReadFile(filepath.Join(dir, "index.md"))
	require.NoError(t, err)
	assert.Contains(t, string(index), "[Correctness](/rules/correctness)")
	assert.Contains(t, string(index), "`flat/recommended`")

	page, err := os.ReadFile(filepath.Join(dir, "restriction.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "`@typescript-eslint/no-explicit-any`")
	assert.Contains(t, string(page), "DO NOT EDIT")
}

func TestGenerateCLIDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateCLIDocs(dir))

	for _, name := range []string{"index.md", "build.md", "rules.md", "serve.md"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}

	build, err := os.ReadFile(filepath.Join(dir, "build.md"))
	require.NoError(t, err)
	assert.Contains(t, string(build), "`--legacy`")
	assert.Contains(t, string(build), "oxoff build")
}

func TestGenerateConfigDocs(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, generateConfigDocs(dir))

	page, err := os.ReadFile(filepath.Join(dir, "configuration.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "`watch.debounce`")
	assert.Contains(t, string(page), "`oxoff.yaml`")
}

func TestCleanDescription(t *testing.T) {
	assert.Equal(t, "Turn off rules", cleanDescription("  Turn off\n rules. "))
}

func TestDedent(t *testing.T) {
	assert.Equal(t, "# build\noxoff build\n  -o yaml", dedent("  # build\n  oxoff build\n    -o yaml\n"))
}
