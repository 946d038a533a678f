// Package parser - Format detection
package parser

import (
	"strings"

	"finopsguard/core/types"
	"finopsguard/internal/errors"
)

// DetectFormat sniffs the IaC format from source content. Used when the
// caller did not declare one; an explicit format always wins.
func DetectFormat(src []byte) (types.IaCFormat, error) {
	text := string(src)

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
			continue
		}

		// HCL top-level blocks: resource "..." / provider "..." / module "..."
		for _, kw := range []string{"resource ", "provider ", "module ", "terraform ", "variable ", "data "} {
			if strings.HasPrefix(line, kw) && strings.Contains(line, "\"") {
				return types.FormatTerraform, nil
			}
		}

		// YAML documents and play lists
		if line == "---" || strings.HasPrefix(line, "- ") {
			return types.FormatAnsible, nil
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, "{") {
			return types.FormatAnsible, nil
		}

		break
	}

	return "", errors.New(errors.TypeInput, "unable to detect IaC format from content")
}
