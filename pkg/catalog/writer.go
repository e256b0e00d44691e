package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

const dataHeader = "# Rule catalog for oxoff.\n#\n# Generated from the oxlint rule declarations. Do not edit by hand.\n"

// Write encodes rules in the data file layout read by Load. It is the
// contract the offline generator writes to.
func Write(w io.Writer, version string, rules []Rule) error {
	if _, err := io.WriteString(w, dataHeader); err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Version: version, Rules: rules}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return enc.Close()
}
