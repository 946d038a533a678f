// Package policy - Policy file loading
package policy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"finopsguard/internal/errors"
)

// policyFile is the on-disk document shape: either a bare array of
// policies or an object with a "policies" key
type policyFile struct {
	Policies []Policy `json:"policies"`
}

// LoadFile reads policies from a JSON file
func LoadFile(path string) ([]Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.TypePolicy, "failed to read policy file", err)
	}
	return Decode(data)
}

// Decode parses a policy document from raw JSON
func Decode(data []byte) ([]Policy, error) {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var policies []Policy
		if err := json.Unmarshal(data, &policies); err != nil {
			return nil, errors.Wrap(errors.TypePolicy, "failed to parse policy document", err)
		}
		return policies, nil
	}

	var doc policyFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(errors.TypePolicy, "failed to parse policy document", err)
	}
	return doc.Policies, nil
}

// LoadDir reads every *.json file in a directory, in lexical order, and
// concatenates the policies
func LoadDir(dir string) ([]Policy, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(errors.TypePolicy, "failed to read policy directory", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	var policies []Policy
	for _, name := range names {
		batch, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		policies = append(policies, batch...)
	}
	return policies, nil
}
