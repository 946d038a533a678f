// Package types - Canonical resource model
package types

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// CanonicalResource is the cloud- and format-agnostic view of a single
// infrastructure resource extracted from IaC source.
type CanonicalResource struct {
	// ID uniquely identifies the resource within a model.
	// Derived deterministically from type, name, size and region.
	ID string `json:"id"`

	// Type is the cloud-prefixed resource kind (e.g. "aws_instance")
	Type string `json:"type"`

	// Name is the author-given resource name
	Name string `json:"name"`

	// Region is the resolved deployment region
	Region string `json:"region"`

	// Size is the provider SKU or tier string (e.g. "t3.medium")
	Size string `json:"size"`

	// Count is the declared instance count, always >= 1
	Count int `json:"count"`

	// Tags holds user-declared tags
	Tags map[string]string `json:"tags,omitempty"`

	// Metadata holds free-form attributes kept for documentation,
	// never consulted for pricing
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Cloud returns the cloud provider inferred from the resource type
func (r *CanonicalResource) Cloud() Cloud {
	return CloudForResourceType(r.Type)
}

// ResourceID derives the deterministic id for a resource.
// Identical inputs always produce the same id, which makes repeated
// parses of the same source byte-for-byte reproducible.
func ResourceID(resourceType, name, size, region string) string {
	sum := sha256.Sum256([]byte(resourceType + "|" + name + "|" + size + "|" + region))
	return fmt.Sprintf("%s.%s-%s", resourceType, name, hex.EncodeToString(sum[:4]))
}

// CanonicalResourceModel is an ordered collection of canonical resources.
// Order is parse order; it drives deterministic breakdown output and has
// no cost semantics.
type CanonicalResourceModel struct {
	Resources []CanonicalResource `json:"resources"`
}

// NewModel creates an empty model
func NewModel() *CanonicalResourceModel {
	return &CanonicalResourceModel{Resources: make([]CanonicalResource, 0)}
}

// Add appends a resource, assigning its deterministic id
func (m *CanonicalResourceModel) Add(r CanonicalResource) {
	if r.Count < 1 {
		r.Count = 1
	}
	if r.ID == "" {
		r.ID = ResourceID(r.Type, r.Name, r.Size, r.Region)
	}
	m.Resources = append(m.Resources, r)
}

// Len returns the number of resources in the model
func (m *CanonicalResourceModel) Len() int {
	return len(m.Resources)
}

// Get returns a resource by id
func (m *CanonicalResourceModel) Get(id string) (*CanonicalResource, bool) {
	for i := range m.Resources {
		if m.Resources[i].ID == id {
			return &m.Resources[i], true
		}
	}
	return nil, false
}
