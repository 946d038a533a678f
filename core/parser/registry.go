// Package parser - Resource extractor registry
// Extractors declare where pricing-relevant attributes live for one
// (cloud, resource type) pair. Registration is additive: supporting a new
// resource type never touches the dispatch code.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"finopsguard/core/types"
)

// Extractor describes attribute extraction for one resource type
type Extractor struct {
	// Cloud is the owning cloud provider
	Cloud types.Cloud

	// ResourceType is the cloud-prefixed type (e.g. "aws_instance")
	ResourceType string

	// SizePaths are attribute paths probed in order for the SKU/tier.
	// Dot-separated segments descend into nested blocks
	// (e.g. "default_node_pool.vm_size").
	SizePaths []string

	// DefaultSize is used when no size path yields a literal
	DefaultSize string

	// RegionPaths are attribute paths probed in order for an explicit
	// per-resource region/zone/location
	RegionPaths []string

	// Category groups the resource for reporting (compute, database, ...)
	Category string
}

// Validate checks the extractor is well formed
func (e Extractor) Validate() error {
	if !e.Cloud.IsValid() {
		return fmt.Errorf("extractor %s: invalid cloud %q", e.ResourceType, e.Cloud)
	}
	if e.ResourceType == "" {
		return fmt.Errorf("extractor for %s: empty resource type", e.Cloud)
	}
	if len(e.SizePaths) == 0 && e.DefaultSize == "" {
		return fmt.Errorf("extractor %s: no size paths and no default size", e.ResourceType)
	}
	return nil
}

// ExtractorRegistry holds extractors keyed by cloud and resource type
type ExtractorRegistry struct {
	mu         sync.RWMutex
	extractors map[string]Extractor
}

// NewExtractorRegistry creates an empty extractor registry
func NewExtractorRegistry() *ExtractorRegistry {
	return &ExtractorRegistry{extractors: make(map[string]Extractor)}
}

func extractorKey(cloud types.Cloud, resourceType string) string {
	return string(cloud) + ":" + resourceType
}

// Register adds an extractor.
// Panics on invalid metadata or duplicates (fail fast at startup).
func (r *ExtractorRegistry) Register(e Extractor) {
	if err := e.Validate(); err != nil {
		panic(err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := extractorKey(e.Cloud, e.ResourceType)
	if _, exists := r.extractors[key]; exists {
		panic(fmt.Sprintf("extractor already registered: %s", key))
	}
	r.extractors[key] = e
}

// Get returns the extractor for a resource type
func (r *ExtractorRegistry) Get(cloud types.Cloud, resourceType string) (Extractor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.extractors[extractorKey(cloud, resourceType)]
	return e, ok
}

// ListByCloud returns all extractors for a cloud
func (r *ExtractorRegistry) ListByCloud(cloud types.Cloud) []Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []Extractor
	for _, e := range r.extractors {
		if e.Cloud == cloud {
			result = append(result, e)
		}
	}
	return result
}

// Size returns the number of registered extractors
func (r *ExtractorRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.extractors)
}

// Global default registry
var defaultExtractors = NewExtractorRegistry()

// RegisterExtractor adds an extractor to the default registry
func RegisterExtractor(e Extractor) {
	defaultExtractors.Register(e)
}

// LookupExtractor returns an extractor from the default registry
func LookupExtractor(cloud types.Cloud, resourceType string) (Extractor, bool) {
	return defaultExtractors.Get(cloud, resourceType)
}

// ExtractorCount returns the number of extractors in the default registry
func ExtractorCount() int {
	return defaultExtractors.Size()
}

// LookupAttr walks a dot-separated path through decoded attributes.
// Nested blocks decode as []interface{} of maps; the first element is
// taken, matching how IaC tools treat single-instance nested blocks.
func LookupAttr(attrs map[string]interface{}, path string) (interface{}, bool) {
	var current interface{} = attrs
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(current)
		if !ok {
			return nil, false
		}
		v, ok := m[seg]
		if !ok {
			return nil, false
		}
		current = v
	}
	if current == nil {
		return nil, false
	}
	return current, true
}

// LookupString returns the first path yielding a non-empty scalar.
// Lists take their first element (e.g. eks node group instance_types);
// numbers are rendered as strings (e.g. lambda memory_size).
func LookupString(attrs map[string]interface{}, paths []string) (string, bool) {
	for _, path := range paths {
		v, ok := LookupAttr(attrs, path)
		if !ok {
			continue
		}
		if s, ok := scalarString(v); ok {
			return s, true
		}
	}
	return "", false
}

func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, t != ""
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case int:
		return strconv.Itoa(t), true
	case []interface{}:
		if len(t) > 0 {
			return scalarString(t[0])
		}
	}
	return "", false
}

func asMap(v interface{}) (map[string]interface{}, bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		return t, true
	case []interface{}:
		if len(t) > 0 {
			return asMap(t[0])
		}
	}
	return nil, false
}
