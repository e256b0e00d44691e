package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/leapstack-labs/oxoff/pkg/catalog"
	"github.com/leapstack-labs/oxoff/pkg/resolve"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// categoryDescriptions mirrors the oxlint documentation for each category.
var categoryDescriptions = map[string]string{
	"correctness": "Code that is outright wrong or useless.",
	"suspicious":  "Code that is most likely wrong or useless.",
	"pedantic":    "Lints which are rather strict or have occasional false positives.",
	"perf":        "Code that could be written in a more performant way.",
	"style":       "Code that should be written in a more idiomatic way.",
	"restriction": "Lints which prevent the use of language and library features.",
	"nursery":     "New lints that are still under development.",
}

var title = cases.Title(language.English)

// generateRulesDocs writes the catalog index and one page per category.
func generateRulesDocs(outDir string) error {
	log.Printf("Generating rule docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	cat := catalog.Default()

	if err := generateRulesIndex(cat, outDir); err != nil {
		return err
	}
	log.Printf("  Generated index.md")

	for _, category := range cat.Categories() {
		if err := generateCategoryPage(cat, category, outDir); err != nil {
			return fmt.Errorf("failed to generate page for %s: %w", category, err)
		}
		log.Printf("  Generated %s.md", category)
	}

	return nil
}

func generateRulesIndex(cat *catalog.Catalog, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter("Rules", "ESLint rules oxoff turns off")
	w.GeneratedMarker()

	w.Header(1, "Rules")
	w.Paragraph(fmt.Sprintf("The catalog was generated from oxlint %s and holds **%d rules**. "+
		"Rules are listed under their ESLint names, which is how they appear in the generated flat config.",
		cat.Version(), cat.Len()))

	w.Header(2, "Categories")
	var rows [][]string
	for _, category := range cat.Categories() {
		link := fmt.Sprintf("[%s](/rules/%s)", title.String(category), category)
		rows = append(rows, []string{link, fmt.Sprint(len(cat.RulesInCategory(category))), categoryDescriptions[category]})
	}
	w.Table([]string{"Category", "Rules", "Description"}, rows)

	w.Header(2, "Presets")
	w.Paragraph("Each preset is a ready-made list of fragments. Show one with `oxoff preset <name>`.")
	var presets []string
	for _, name := range resolve.New(cat, resolve.DefaultSettings(), nil).PresetNames() {
		presets = append(presets, InlineCode(name))
	}
	w.BulletList(presets)

	w.Header(2, "Gated Rules")
	w.BulletList([]string{
		Bold("Nursery") + ": only turned off with `--with-nursery`",
		Bold("Type-aware") + ": only turned off with `--type-aware`",
	})

	return os.WriteFile(filepath.Join(outDir, "index.md"), w.Bytes(), 0o600)
}

func generateCategoryPage(cat *catalog.Catalog, category, outDir string) error {
	w := NewMarkdownWriter()

	w.Frontmatter(title.String(category), categoryDescriptions[category])
	w.GeneratedMarker()

	w.Header(1, title.String(category))
	if desc := categoryDescriptions[category]; desc != "" {
		w.Paragraph(desc)
	}

	rules := cat.Filter(func(r catalog.Rule) bool { return r.Category == category })
	var rows [][]string
	for _, r := range rules {
		var related []string
		for _, name := range catalog.Related(r.Name) {
			if cat.Has(name) {
				related = append(related, InlineCode(name))
			}
		}
		rows = append(rows, []string{InlineCode(r.Name), r.Scope, strings.Join(related, ", "), ruleNotes(r)})
	}
	w.Table([]string{"Rule", "Scope", "Related", "Notes"}, rows)

	return os.WriteFile(filepath.Join(outDir, category+".md"), w.Bytes(), 0o600)
}

func ruleNotes(r catalog.Rule) string {
	var notes []string
	if r.Nursery {
		notes = append(notes, "nursery")
	}
	if r.TypeAware {
		notes = append(notes, "type-aware")
	}
	return strings.Join(notes, ", ")
}
