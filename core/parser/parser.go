// Package parser provides IaC parsing into the canonical resource model.
// Formats are modular: each format registers a Parser, each cloud registers
// its resource extractors. Core dispatch never grows per-resource branches.
package parser

import (
	"context"
	"fmt"
	"sync"

	"finopsguard/core/types"
	"finopsguard/internal/errors"
)

// Parser converts raw IaC text into a canonical resource model
type Parser interface {
	// Format returns the IaC format this parser handles
	Format() types.IaCFormat

	// Parse converts raw source text into a canonical model.
	// Structural malformation is the only hard failure; unsupported
	// resource types are skipped silently.
	Parse(ctx context.Context, src []byte) (*types.CanonicalResourceModel, error)
}

// FormatRegistry manages parser registration per IaC format
type FormatRegistry struct {
	mu      sync.RWMutex
	parsers map[types.IaCFormat]Parser
}

// NewFormatRegistry creates an empty format registry
func NewFormatRegistry() *FormatRegistry {
	return &FormatRegistry{parsers: make(map[types.IaCFormat]Parser)}
}

// Register adds a parser for its format.
// Panics on duplicate registration (fail fast at startup).
func (r *FormatRegistry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.parsers[p.Format()]; exists {
		panic(fmt.Sprintf("parser already registered: %s", p.Format()))
	}
	r.parsers[p.Format()] = p
}

// Get returns the parser for a format
func (r *FormatRegistry) Get(format types.IaCFormat) (Parser, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.parsers[format]
	return p, ok
}

// Formats returns all registered formats
func (r *FormatRegistry) Formats() []types.IaCFormat {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]types.IaCFormat, 0, len(r.parsers))
	for f := range r.parsers {
		formats = append(formats, f)
	}
	return formats
}

// Parse dispatches to the registered parser for the format
func (r *FormatRegistry) Parse(ctx context.Context, format types.IaCFormat, src []byte) (*types.CanonicalResourceModel, error) {
	p, ok := r.Get(format)
	if !ok {
		return nil, errors.NotSupported("iac format " + format.String())
	}
	return p.Parse(ctx, src)
}

// Global default registry
var defaultFormats = NewFormatRegistry()

// RegisterFormat adds a parser to the default registry
func RegisterFormat(p Parser) {
	defaultFormats.Register(p)
}

// Parse dispatches on the default registry
func Parse(ctx context.Context, format types.IaCFormat, src []byte) (*types.CanonicalResourceModel, error) {
	return defaultFormats.Parse(ctx, format, src)
}

// Formats lists formats registered on the default registry
func Formats() []types.IaCFormat {
	return defaultFormats.Formats()
}
