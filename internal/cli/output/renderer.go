package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"
)

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
// An unknown mode is treated as auto.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	if parsed, err := ParseMode(string(mode)); err == nil {
		mode = parsed
	} else {
		mode = ModeAuto
	}
	r := &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
	}
	r.styles = newStyles(out, r.EffectiveMode() == ModeText && isTTY)
	return r
}

// Mode returns the mode the renderer was created with, which may be auto.
func (r *Renderer) Mode() Mode {
	return r.mode
}

// EffectiveMode resolves auto into text or markdown.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if r.isTTY {
		return ModeText
	}
	return ModeMarkdown
}

// IsTTY reports whether output goes to a terminal.
func (r *Renderer) IsTTY() bool {
	return r.isTTY
}

// Styles returns the text styles. They render without color outside text mode.
func (r *Renderer) Styles() *Styles {
	return r.styles
}

// Writer returns the primary output writer.
func (r *Renderer) Writer() io.Writer {
	return r.out
}

// ErrWriter returns the diagnostic output writer.
func (r *Renderer) ErrWriter() io.Writer {
	return r.errOut
}

// Println writes a line to the output.
func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

// Printf writes formatted output.
func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header writes a section header.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() != ModeText {
		r.Println(FormatHeader(level, text))
		r.Println("")
		return
	}
	style := r.styles.Header2
	if level <= 1 {
		style = r.styles.Header1
	}
	r.Println(style.Render(text))
	r.Println("")
}

// Success writes a success message.
func (r *Renderer) Success(msg string) {
	r.Println(r.styles.Success.Render(msg))
}

// Warning writes a warning to the diagnostic writer.
func (r *Renderer) Warning(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Warning.Render("warning: "+msg))
}

// Error writes an error to the diagnostic writer.
func (r *Renderer) Error(msg string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Error.Render("error: "+msg))
}

// Muted writes low-emphasis text.
func (r *Renderer) Muted(msg string) {
	r.Println(r.styles.Muted.Render(msg))
}

// StatusLine writes "<icon> name  detail" for status success, failed or skipped.
func (r *Renderer) StatusLine(name, status, detail string) {
	var icon string
	switch status {
	case "success":
		icon = r.styles.StatusSuccess.String()
	case "failed":
		icon = r.styles.StatusFailed.String()
	default:
		icon = r.styles.StatusSkipped.String()
	}
	if detail == "" {
		r.Printf("%s %s\n", icon, name)
		return
	}
	r.Printf("%s %s  %s\n", icon, name, r.styles.Muted.Render(detail))
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// YAML writes v as YAML.
func (r *Renderer) YAML(v any) error {
	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Data writes v as JSON or YAML, whichever the mode asks for; JSON otherwise.
func (r *Renderer) Data(v any) error {
	if r.mode == ModeYAML {
		return r.YAML(v)
	}
	return r.JSON(v)
}

// Table writes rows as a light box table in text mode and as a markdown
// table otherwise.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	if r.EffectiveMode() == ModeText {
		t.Render()
		return
	}
	t.RenderMarkdown()
	r.Println("")
}

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item "- **key:** value".
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}
