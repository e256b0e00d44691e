package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreset(t *testing.T) {
	r := newTestResolver(t)

	tests := []struct {
		name     string
		wantName string
		want     []string
	}{
		{
			name:     "flat/recommended",
			wantName: "oxlint/recommended",
			want: []string{
				"@typescript-eslint/no-unused-vars",
				"no-debugger",
				"no-unused-vars",
				"react-hooks/rules-of-hooks",
				"react/jsx-key",
				"unicorn/no-new-array",
				"vitest/no-conditional-tests",
			},
		},
		{
			name:     "recommended",
			wantName: "oxlint/recommended",
			want: []string{
				"@typescript-eslint/no-unused-vars",
				"no-debugger",
				"no-unused-vars",
				"react-hooks/rules-of-hooks",
				"react/jsx-key",
				"unicorn/no-new-array",
				"vitest/no-conditional-tests",
			},
		},
		{
			name:     "flat/restriction",
			wantName: "oxlint/restriction",
			want:     []string{"@typescript-eslint/no-empty-function", "no-alert", "no-empty-function"},
		},
		{
			name:     "flat/typescript",
			wantName: "oxlint/typescript",
			want:     []string{"@typescript-eslint/no-empty-function", "@typescript-eslint/no-unused-vars"},
		},
		{
			name:     "flat/eslint",
			wantName: "oxlint/eslint",
			want: []string{
				"eqeqeq",
				"no-alert",
				"no-await-in-loop",
				"no-debugger",
				"no-empty-function",
				"no-unused-vars",
			},
		},
		{
			name:     "flat/react-hooks",
			wantName: "oxlint/react-hooks",
			want:     []string{"react-hooks/rules-of-hooks"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Preset(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.want, got.Rules.Names())
		})
	}

	t.Run("all excludes nursery and type aware", func(t *testing.T) {
		got, ok := r.Preset("flat/all")
		require.True(t, ok)
		assert.Len(t, got.Rules, 13)
		assert.False(t, got.Rules.Has("no-undef"))
		assert.False(t, got.Rules.Has("@typescript-eslint/no-floating-promises"))
	})

	for _, name := range []string{"flat/nursery", "flat/unknown", "nope"} {
		_, ok := r.Preset(name)
		assert.False(t, ok, name)
	}
}

func TestPresetNames(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, []string{
		"flat/all",
		"flat/correctness",
		"flat/eslint",
		"flat/import",
		"flat/pedantic",
		"flat/perf",
		"flat/react",
		"flat/react-hooks",
		"flat/recommended",
		"flat/restriction",
		"flat/suspicious",
		"flat/typescript",
		"flat/unicorn",
		"flat/vitest",
	}, r.PresetNames())
}

func TestPresets(t *testing.T) {
	r := newTestResolver(t)
	all := r.Presets()

	assert.Len(t, all, len(r.PresetNames()))
	require.Len(t, all["flat/recommended"], 2)
	assert.Equal(t, ExceptionsFragmentName, all["flat/recommended"][1].Name)
	assert.Len(t, all["flat/perf"], 1)
}
