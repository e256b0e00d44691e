package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func newTestRenderer(mode Mode, isTTY bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, isTTY, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeAuto, false},
		{"auto", ModeAuto, false},
		{"TEXT", ModeText, false},
		{"md", ModeMarkdown, false},
		{"markdown", ModeMarkdown, false},
		{"json", ModeJSON, false},
		{" yaml ", ModeYAML, false},
		{"html", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenderer_EffectiveMode(t *testing.T) {
	tests := []struct {
		name  string
		mode  Mode
		isTTY bool
		want  Mode
	}{
		{"auto on terminal", ModeAuto, true, ModeText},
		{"auto piped", ModeAuto, false, ModeMarkdown},
		{"explicit json", ModeJSON, true, ModeJSON},
		{"explicit markdown on terminal", ModeMarkdown, true, ModeMarkdown},
		{"unknown falls back to auto", Mode("html"), false, ModeMarkdown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _, _ := newTestRenderer(tt.mode, tt.isTTY)
			assert.Equal(t, tt.want, r.EffectiveMode())
		})
	}
}

func TestRenderer_BufferIsNotTerminal(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestRenderer_MarkdownHasNoANSI(t *testing.T) {
	r, out, errOut := newTestRenderer(ModeMarkdown, false)

	r.Header(1, "Rules")
	r.Success("done")
	r.Muted("quiet")
	r.Warning("careful")
	r.StatusLine("eqeqeq", "success", "pedantic")
	r.Table([]string{"Rule", "Category"}, [][]string{{"eqeqeq", "pedantic"}})

	assert.False(t, ansiPattern.MatchString(out.String()), out.String())
	assert.False(t, ansiPattern.MatchString(errOut.String()), errOut.String())
	assert.Contains(t, out.String(), "# Rules")
	assert.Contains(t, out.String(), "| eqeqeq | pedantic |")
	assert.Contains(t, errOut.String(), "warning: careful")
}

func TestRenderer_TextTable(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)
	r.Table([]string{"Rule", "Category"}, [][]string{{"no-alert", "restriction"}})

	assert.Contains(t, out.String(), "no-alert")
	assert.Contains(t, out.String(), "restriction")
	assert.Contains(t, out.String(), "┌")
}

func TestRenderer_StatusLine(t *testing.T) {
	r, out, _ := newTestRenderer(ModeText, false)
	r.StatusLine("a.json", "success", "")
	r.StatusLine("b.json", "failed", "cycle")
	r.StatusLine("c.json", "skipped", "")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "✓ a.json", lines[0])
	assert.Equal(t, "✗ b.json  cycle", lines[1])
	assert.Equal(t, "- c.json", lines[2])
}

func TestRenderer_Data(t *testing.T) {
	value := map[string][]string{"rules": {"eqeqeq"}}

	t.Run("json", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeJSON, false)
		require.NoError(t, r.Data(value))

		var got map[string][]string
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, value, got)
		assert.Contains(t, out.String(), "\n  \"rules\"")
	})

	t.Run("yaml", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeYAML, false)
		require.NoError(t, r.Data(value))

		var got map[string][]string
		require.NoError(t, yaml.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, value, got)
	})

	t.Run("other modes fall back to json", func(t *testing.T) {
		r, out, _ := newTestRenderer(ModeText, true)
		require.NoError(t, r.Data(value))
		assert.True(t, json.Valid(out.Bytes()))
	})
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "## Presets", FormatHeader(2, "Presets"))
	assert.Equal(t, "# Presets", FormatHeader(0, "Presets"))
	assert.Equal(t, "- **Version:** 1.0.0", FormatKeyValue("Version", "1.0.0"))
}
