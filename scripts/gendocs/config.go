package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/oxoff/internal/cli/config"
)

// configField documents one oxoff.yaml key.
type configField struct {
	Name        string
	Type        string
	Default     string
	Description string
}

// configSchema follows internal/cli/config/types.go.
func configSchema() []configField {
	return []configField{
		{Name: "output", Type: "string", Default: config.DefaultOutput, Description: "Output format: auto, text, markdown, json, yaml"},
		{Name: "log_level", Type: "string", Default: config.DefaultLogLevel, Description: "Log level: debug, info, warn, error"},
		{Name: "verbose", Type: "bool", Default: "false", Description: "Print the config file in use"},
		{Name: "with_nursery", Type: "bool", Default: "false", Description: "Turn off nursery rules too"},
		{Name: "type_aware", Type: "bool", Default: "false", Description: "Turn off rules that need type information"},
		{Name: "default_plugins", Type: "[]string", Default: "react, unicorn, typescript", Description: "Plugins assumed when an oxlint config has no `plugins` key"},
		{Name: "default_categories", Type: "map[string]string", Default: "correctness: warn", Description: "Categories assumed when an oxlint config has no `categories` key"},
		{Name: "server.port", Type: "int", Default: fmt.Sprint(config.DefaultPort), Description: "Port for `oxoff serve`"},
		{Name: "watch.debounce", Type: "duration", Default: config.DefaultDebounce.String(), Description: "Delay before rebuilding after a file change"},
	}
}

// generateConfigDocs writes the configuration reference page.
func generateConfigDocs(outDir string) error {
	log.Printf("Generating config docs to %s", outDir)

	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	w := NewMarkdownWriter()

	w.Frontmatter("Configuration", "oxoff configuration reference")
	w.GeneratedMarker()

	w.Header(1, "Configuration")
	w.Paragraph(fmt.Sprintf("oxoff reads %s or %s from the working directory or one of its parents. "+
		"Pass `--config` to use another file.", InlineCode(config.DefaultConfigName), InlineCode(config.DefaultHiddenName)))

	w.Header(2, "Options")
	var rows [][]string
	for _, f := range configSchema() {
		rows = append(rows, []string{InlineCode(f.Name), f.Type, InlineCode(f.Default), f.Description})
	}
	w.Table([]string{"Key", "Type", "Default", "Description"}, rows)

	w.Header(2, "Example")
	w.CodeBlock("yaml", `output: json
type_aware: true
default_plugins: [typescript, unicorn]
default_categories:
  correctness: error
  suspicious: warn
server:
  port: 8790
watch:
  debounce: 250ms`)

	filename := filepath.Join(outDir, "configuration.md")
	if err := os.WriteFile(filename, w.Bytes(), 0o600); err != nil {
		return err
	}
	log.Printf("  Generated configuration.md")
	return nil
}
