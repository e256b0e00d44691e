package source

import (
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/oxoff/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testDefaultPlugins = []string{"react", "unicorn", "typescript"}

func TestResolveChain_DepthFirst(t *testing.T) {
	dir := t.TempDir()
	root := testutil.WriteFile(t, dir, ".oxlintrc.json", `{"extends": ["configs/a.json", "configs/b.json"]}`)
	testutil.WriteFile(t, dir, "configs/a.json", `{"extends": ["nested/c.json"], "rules": {"a": "error"}}`)
	testutil.WriteFile(t, dir, "configs/nested/c.json", `{"rules": {"c": "error"}}`)
	testutil.WriteFile(t, dir, "configs/b.json", `{"rules": {"b": "error"}}`)

	l := NewLoader(testutil.NewTestLogger(t))
	cfg := l.Load(root)
	require.NotNil(t, cfg)

	chain, err := l.ResolveChain(cfg, root)
	require.NoError(t, err)
	require.Len(t, chain, 3)

	var names []string
	for _, c := range chain {
		names = append(names, c.Rules.Keys()[0])
	}
	assert.Equal(t, []string{"a", "c", "b"}, names)
}

func TestResolveChain_SkipsMissingAndInvalid(t *testing.T) {
	dir := t.TempDir()
	root := testutil.WriteFile(t, dir, ".oxlintrc.json", `{"extends": ["missing.json", "broken.json", "ok.json", "some-package"]}`)
	testutil.WriteFile(t, dir, "broken.json", `{`)
	testutil.WriteFile(t, dir, "ok.json", `{"plugins": ["vitest"]}`)

	logger, logs := testutil.NewCaptureLogger(t)
	l := NewLoader(logger)
	chain, err := l.ResolveChain(l.Load(root), root)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, []string{"vitest"}, chain[0].Plugins)
	assert.Contains(t, logs.String(), "could not parse oxlint config file")
}

func TestResolveChain_AbsoluteEntry(t *testing.T) {
	dir := t.TempDir()
	shared := testutil.WriteFile(t, filepath.Join(dir, "shared"), "base.json", `{"rules": {"eqeqeq": "warn"}}`)
	root := testutil.WriteFile(t, filepath.Join(dir, "project"), ".oxlintrc.json", `{"extends": [`+quote(shared)+`]}`)

	l := NewLoader(nil)
	chain, err := l.ResolveChain(l.Load(root), root)
	require.NoError(t, err)
	require.Len(t, chain, 1)
}

func TestResolveChain_Cycle(t *testing.T) {
	dir := t.TempDir()
	root := testutil.WriteFile(t, dir, "a.json", `{"extends": ["b.json"]}`)
	testutil.WriteFile(t, dir, "b.json", `{"extends": ["a.json"]}`)

	l := NewLoader(nil)
	_, err := l.ResolveChain(l.Load(root), root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExtendsCycle)

	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	require.Len(t, cycle.Chain, 3)
	assert.Equal(t, "a.json", filepath.Base(cycle.Chain[0]))
	assert.Equal(t, "b.json", filepath.Base(cycle.Chain[1]))
	assert.Equal(t, "a.json", filepath.Base(cycle.Chain[2]))
}

func TestResolveChain_SelfReference(t *testing.T) {
	dir := t.TempDir()
	root := testutil.WriteFile(t, dir, "self.json", `{"extends": ["./self.json"]}`)

	l := NewLoader(nil)
	_, err := l.ResolveChain(l.Load(root), root)
	assert.ErrorIs(t, err, ErrExtendsCycle)
}

func TestResolveChain_DiamondIsAllowed(t *testing.T) {
	dir := t.TempDir()
	root := testutil.WriteFile(t, dir, "root.json", `{"extends": ["left.json", "right.json"]}`)
	testutil.WriteFile(t, dir, "left.json", `{"extends": ["shared.json"]}`)
	testutil.WriteFile(t, dir, "right.json", `{"extends": ["shared.json"]}`)
	testutil.WriteFile(t, dir, "shared.json", `{"rules": {"eqeqeq": "error"}}`)

	l := NewLoader(nil)
	chain, err := l.ResolveChain(l.Load(root), root)
	require.NoError(t, err)
	assert.Len(t, chain, 4)
}

func TestMergeAncestors(t *testing.T) {
	t.Run("no ancestors keeps local", func(t *testing.T) {
		local := &Config{
			Plugins:    []string{"react"},
			Categories: Categories{"correctness": "warn"},
			Rules:      RuleMapOf("eqeqeq", "error"),
		}
		merged := MergeAncestors(nil, local, testDefaultPlugins)
		assert.Equal(t, []string{"react"}, merged.Plugins)
		assert.Equal(t, local.Categories, merged.Categories)
		assert.Equal(t, []string{"eqeqeq"}, merged.Rules.Keys())
	})

	t.Run("merges plugins rules and keeps local categories", func(t *testing.T) {
		ancestors := []*Config{{
			Plugins:    []string{"react", "unicorn"},
			Categories: Categories{"correctness": "error"},
			Rules:      RuleMapOf("rule1", "error"),
		}}
		local := &Config{
			Categories: Categories{"correctness": "warn"},
			Rules:      RuleMapOf("rule3", "warn"),
		}

		merged := MergeAncestors(ancestors, local, testDefaultPlugins)
		assert.Equal(t, []string{"react", "unicorn"}, merged.Plugins)
		assert.Equal(t, Categories{"correctness": "warn"}, merged.Categories)
		assert.Equal(t, []string{"rule1", "rule3"}, merged.Rules.Keys())
	})

	t.Run("local wins and plugins dedupe", func(t *testing.T) {
		ancestors := []*Config{{
			Plugins: []string{"react", "typescript"},
			Rules:   RuleMapOf("rule1", "error", "rule2", "error"),
		}}
		local := &Config{
			Plugins: []string{"react", "unicorn"},
			Rules:   RuleMapOf("rule1", "warn"),
		}

		merged := MergeAncestors(ancestors, local, testDefaultPlugins)
		assert.Equal(t, []string{"react", "typescript", "unicorn"}, merged.Plugins)
		v, _ := merged.Rules.Get("rule1")
		assert.Equal(t, "warn", v)
		v, _ = merged.Rules.Get("rule2")
		assert.Equal(t, "error", v)

		// inputs untouched
		assert.Equal(t, []string{"react", "unicorn"}, local.Plugins)
		assert.Equal(t, 1, local.Rules.Len())
	})

	t.Run("multiple ancestors", func(t *testing.T) {
		ancestors := []*Config{
			{Plugins: []string{"react", "unicorn"}, Rules: RuleMapOf("rule1", "error")},
			{Plugins: []string{"typescript"}, Rules: RuleMapOf("rule2", "error", "rule1", "off")},
		}
		local := &Config{
			Plugins: []string{"react", "vitest"},
			Rules:   RuleMapOf("rule3", "warn"),
		}

		merged := MergeAncestors(ancestors, local, testDefaultPlugins)
		assert.Equal(t, []string{"typescript", "react", "unicorn", "vitest"}, merged.Plugins)
		v, _ := merged.Rules.Get("rule1")
		assert.Equal(t, "error", v, "nearer ancestor wins")
		assert.ElementsMatch(t, []string{"rule1", "rule2", "rule3"}, merged.Rules.Keys())
	})

	t.Run("ancestor without plugins contributes defaults", func(t *testing.T) {
		merged := MergeAncestors([]*Config{{}}, &Config{Plugins: []string{"vitest"}}, testDefaultPlugins)
		assert.Equal(t, []string{"react", "unicorn", "typescript", "vitest"}, merged.Plugins)
	})

	t.Run("ancestor with empty plugins contributes nothing", func(t *testing.T) {
		merged := MergeAncestors([]*Config{{Plugins: []string{}}}, &Config{}, testDefaultPlugins)
		assert.Nil(t, merged.Plugins)
	})

	t.Run("ancestor overrides come first", func(t *testing.T) {
		ancestors := []*Config{{Overrides: []Override{{Files: []string{"*.js"}}}}}
		local := &Config{Overrides: []Override{{Files: []string{"*.ts"}}}}

		merged := MergeAncestors(ancestors, local, testDefaultPlugins)
		require.Len(t, merged.Overrides, 2)
		assert.Equal(t, []string{"*.js"}, merged.Overrides[0].Files)
		assert.Equal(t, []string{"*.ts"}, merged.Overrides[1].Files)
	})

	t.Run("extends is consumed", func(t *testing.T) {
		merged := MergeAncestors(nil, &Config{Extends: []string{"a.json"}}, testDefaultPlugins)
		assert.Nil(t, merged.Extends)
	})
}

func quote(s string) string {
	return `"` + filepath.ToSlash(s) + `"`
}
