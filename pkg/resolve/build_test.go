package resolve

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/leapstack-labs/oxoff/internal/testutil"
	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/leapstack-labs/oxoff/pkg/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, doc string) *source.Config {
	t.Helper()
	cfg, err := source.Parse([]byte(doc))
	require.NoError(t, err)
	return cfg
}

func TestBuild(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name string
		doc  string
		opts Options
		want []Fragment
	}{
		{
			name: "empty document uses defaults",
			doc:  `{}`,
			want: []Fragment{
				{Name: BaseFragmentName, Rules: RuleSet{
					"no-debugger":          Off,
					"react/jsx-key":        Off,
					"unicorn/no-new-array": Off,
				}},
				{Name: ExceptionsFragmentName, Ignores: []string{"**/*.vue", "**/*.svelte"}, Rules: RuleSet{
					"no-unused-vars":                    Off,
					"@typescript-eslint/no-unused-vars": Off,
					"react-hooks/rules-of-hooks":        Off,
				}},
			},
		},
		{
			name: "correctness off leaves nothing",
			doc:  `{"categories": {"correctness": "off"}}`,
			want: []Fragment{{Name: BaseFragmentName, Rules: RuleSet{}}},
		},
		{
			name: "explicit rule turned off",
			doc:  `{"categories": {"correctness": "off"}, "rules": {"eqeqeq": "error"}}`,
			want: []Fragment{{Name: BaseFragmentName, Rules: RuleSet{"eqeqeq": Off}}},
		},
		{
			name: "explicit off removes category rule",
			doc:  `{"plugins": [], "categories": {"pedantic": "warn"}, "rules": {"eqeqeq": "off"}}`,
			want: []Fragment{{Name: BaseFragmentName, Rules: RuleSet{}}},
		},
		{
			name: "empty plugins still keep eslint",
			doc:  `{"plugins": []}`,
			want: []Fragment{
				{Name: BaseFragmentName, Rules: RuleSet{"no-debugger": Off}},
				{Name: ExceptionsFragmentName, Ignores: []string{"**/*.vue", "**/*.svelte"}, Rules: RuleSet{"no-unused-vars": Off}},
			},
		},
		{
			name: "ignore patterns go on the base fragment",
			doc:  `{"categories": {}, "ignorePatterns": ["dist/**"]}`,
			want: []Fragment{{Name: BaseFragmentName, Ignores: []string{"dist/**"}, Rules: RuleSet{}}},
		},
		{
			name: "nursery rule hidden by default",
			doc:  `{"categories": {"correctness": "off"}, "rules": {"no-undef": "error"}}`,
			want: []Fragment{{Name: BaseFragmentName, Rules: RuleSet{}}},
		},
		{
			name: "nursery rule with opt in",
			doc:  `{"categories": {"correctness": "off"}, "rules": {"no-undef": "error"}}`,
			opts: Options{WithNursery: true},
			want: []Fragment{{Name: BaseFragmentName, Rules: RuleSet{"no-undef": Off}}},
		},
		{
			name: "type aware rule with opt in",
			doc:  `{"plugins": ["typescript"], "rules": {"typescript/no-unused-vars": "off"}}`,
			opts: Options{TypeAware: true},
			want: []Fragment{{Name: BaseFragmentName, Rules: RuleSet{
				"no-debugger": Off,
				"@typescript-eslint/no-floating-promises": Off,
			}}},
		},
		{
			name: "overrides follow the base",
			doc: `{
				// comments and trailing commas are fine
				"categories": {"correctness": "off"},
				"rules": {"eqeqeq": "warn"},
				"overrides": [{"files": ["*.ts"], "rules": {"no-alert": "error"}},],
			}`,
			want: []Fragment{
				{Name: BaseFragmentName, Rules: RuleSet{"eqeqeq": Off}},
				{Name: OverrideFragmentPrefix + "0", Files: []string{"*.ts"}, Rules: RuleSet{"no-alert": Off}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Build(mustParse(t, tt.doc), tt.opts)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildIsDeterministic(t *testing.T) {
	r := newTestResolver(t)
	doc := `{
		"plugins": ["react", "vitest"],
		"categories": {"correctness": "warn", "pedantic": "error"},
		"rules": {"no-unused-vars": "error", "eqeqeq": "off", "no-alert": ["error", {}]},
		"overrides": [{"files": ["*.test.ts"], "plugins": ["vitest"]}]
	}`

	first := r.Build(mustParse(t, doc), Options{})
	for range 10 {
		assert.Equal(t, first, r.Build(mustParse(t, doc), Options{}))
	}
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	r := newTestResolver(t)
	cfg := mustParse(t, `{"rules": {"eqeqeq": "error"}, "overrides": [{"files": ["a"], "rules": {"no-alert": "warn"}}]}`)
	before := cfg.Clone()

	_ = r.Build(cfg, Options{})
	assert.Equal(t, before, cfg)
}

func TestBuildWithDefaultCatalog(t *testing.T) {
	r := New(catalog.Default(), Settings{}, testutil.NewTestLogger(t))
	got := r.Build(mustParse(t, `{"rules": {"eqeqeq": "error", "no-debugger": "off"}}`), Options{})

	require.Len(t, got, 2)
	base := got[0]
	assert.Equal(t, BaseFragmentName, base.Name)
	assert.True(t, base.Rules.Has("eqeqeq"))
	assert.False(t, base.Rules.Has("no-debugger"))
	assert.False(t, base.Rules.Has("no-unused-vars"), "moved to exceptions")

	for name := range base.Rules {
		rule, ok := r.Catalog().Rule(name)
		require.True(t, ok, name)
		assert.False(t, rule.Nursery, name)
		assert.False(t, rule.TypeAware, name)
	}

	assert.Equal(t, ExceptionsFragmentName, got[1].Name)
	assert.True(t, got[1].Rules.Has("no-unused-vars"))
	assert.True(t, got[1].Rules.Has("@typescript-eslint/no-unused-vars"))
}

func TestBuild_OverrideWithoutFiles(t *testing.T) {
	tests := []struct {
		name  string
		files string
	}{
		{name: "absent", files: ``},
		{name: "empty", files: `"files": [], `},
		{name: "string", files: `"files": "*.ts", `},
		{name: "no string entries", files: `"files": [1, true], `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewCaptureLogger(t)
			cat, err := catalog.Load([]byte(testCatalog))
			require.NoError(t, err)
			r := New(cat, DefaultSettings(), logger)

			cfg := mustParse(t, `{
				"categories": {"correctness": "off"},
				"overrides": [
					{`+tt.files+`"rules": {"no-alert": "error"}},
					{"files": ["*.test.ts"], "rules": {"no-debugger": "error"}}
				]
			}`)

			got := r.Build(cfg, Options{})
			require.Len(t, got, 2)
			assert.Equal(t, BaseFragmentName, got[0].Name)
			assert.Empty(t, got[0].Rules)

			assert.Equal(t, OverrideFragmentPrefix+"1", got[1].Name)
			assert.Equal(t, []string{"*.test.ts"}, got[1].Files)
			assert.Equal(t, RuleSet{"no-debugger": Off}, got[1].Rules)
			assert.Contains(t, logs.String(), "skipping oxlint override without files")

			legacy := r.BuildLegacy(cfg, Options{})
			require.Len(t, legacy.Overrides, 1)
			assert.Equal(t, []string{"*.test.ts"}, legacy.Overrides[0].Files)
		})
	}
}

func TestBuildFile(t *testing.T) {
	t.Run("missing file yields no fragments", func(t *testing.T) {
		logger, logs := testutil.NewCaptureLogger(t)
		cat, err := catalog.Load([]byte(testCatalog))
		require.NoError(t, err)
		r := New(cat, Settings{}, logger)

		got, err := r.BuildFile(filepath.Join(t.TempDir(), "missing.json"), Options{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Contains(t, logs.String(), "could not find oxlint config file")
	})

	t.Run("invalid file yields no fragments", func(t *testing.T) {
		logger, logs := testutil.NewCaptureLogger(t)
		cat, err := catalog.Load([]byte(testCatalog))
		require.NoError(t, err)
		r := New(cat, Settings{}, logger)

		path := testutil.WriteFile(t, t.TempDir(), ".oxlintrc.json", `{"rules": `)
		got, err := r.BuildFile(path, Options{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
		assert.Contains(t, logs.String(), "could not parse oxlint config file")
	})

	t.Run("extends are merged", func(t *testing.T) {
		r := newTestResolver(t)
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "shared/base.json", `{"plugins": [], "rules": {"eqeqeq": "error", "no-alert": "error"}}`)
		path := testutil.WriteFile(t, dir, ".oxlintrc.json", `{
			"extends": ["./shared/base.json"],
			"categories": {"correctness": "off"},
			"rules": {"no-alert": "off", "no-await-in-loop": "warn"}
		}`)

		got, err := r.BuildFile(path, Options{})
		require.NoError(t, err)
		assert.Equal(t, []Fragment{{Name: BaseFragmentName, Rules: RuleSet{
			"eqeqeq":           Off,
			"no-await-in-loop": Off,
		}}}, got)
	})

	t.Run("extends cycle is an error", func(t *testing.T) {
		r := newTestResolver(t)
		dir := t.TempDir()
		testutil.WriteFile(t, dir, "b.json", `{"extends": ["./a.json"]}`)
		path := testutil.WriteFile(t, dir, "a.json", `{"extends": ["./b.json"]}`)

		_, err := r.BuildFile(path, Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, source.ErrExtendsCycle))
	})
}

func TestLoadFile(t *testing.T) {
	r := newTestResolver(t)

	_, err := r.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.ErrorIs(t, err, source.ErrNotFound)

	dir := t.TempDir()
	testutil.WriteFile(t, dir, "base.json", `{"plugins": ["vitest"], "rules": {"eqeqeq": "warn"}}`)
	path := testutil.WriteFile(t, dir, "main.json", `{"extends": ["base.json"], "rules": {"no-alert": "error"}}`)

	cfg, err := r.LoadFile(path)
	require.NoError(t, err)
	assert.Nil(t, cfg.Extends)
	assert.Equal(t, []string{"vitest"}, cfg.Plugins)
	assert.Equal(t, []string{"eqeqeq", "no-alert"}, cfg.Rules.Keys())
}

func TestBuildLegacy(t *testing.T) {
	r := newTestResolver(t)
	cfg := mustParse(t, `{
		"plugins": [],
		"ignorePatterns": ["dist"],
		"rules": {"eqeqeq": "error"},
		"overrides": [{"files": ["*.ts"], "rules": {"no-alert": "warn"}}]
	}`)

	got := r.BuildLegacy(cfg, Options{})
	assert.Equal(t, LegacyConfig{
		IgnorePatterns: []string{"dist"},
		Rules:          RuleSet{"eqeqeq": Off, "no-debugger": Off},
		Overrides: []LegacyOverride{
			{Files: []string{"*.*"}, ExcludedFiles: []string{"*.vue", "*.svelte"}, Rules: RuleSet{"no-unused-vars": Off}},
			{Files: []string{"*.ts"}, Rules: RuleSet{"no-alert": Off}},
		},
	}, got)
}

func TestBuildLegacyFile(t *testing.T) {
	r := newTestResolver(t)

	got, err := r.BuildLegacyFile(filepath.Join(t.TempDir(), "missing.json"), Options{})
	require.NoError(t, err)
	assert.Equal(t, LegacyConfig{}, got)

	path := testutil.WriteFile(t, t.TempDir(), ".oxlintrc.json", `{"categories": {}, "rules": {"eqeqeq": 2}}`)
	got, err = r.BuildLegacyFile(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, RuleSet{"eqeqeq": Off}, got.Rules)
	assert.Empty(t, got.Overrides)
}

func TestSources(t *testing.T) {
	r := newTestResolver(t)
	dir := t.TempDir()
	testutil.WriteFile(t, dir, "base/a.json", `{"extends": ["../shared.json"]}`)
	testutil.WriteFile(t, dir, "shared.json", `{}`)
	path := testutil.WriteFile(t, dir, ".oxlintrc.json", `{"extends": ["./base/a.json", "./missing.json"]}`)

	got := r.Sources(path)
	require.Len(t, got, 3)
	assert.Equal(t, path, got[0])
	assert.Equal(t, "a.json", filepath.Base(got[1]))
	assert.Equal(t, "shared.json", filepath.Base(got[2]))

	missing := filepath.Join(dir, "nope.json")
	assert.Equal(t, []string{missing}, r.Sources(missing))
}
