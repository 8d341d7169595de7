// Package document defines RazorDocument, the unit a host compiles: template
// text plus the references, metadata and model provider that go with it.
package document

import (
	"context"
	"maps"
	"strings"

	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// DefaultTemplateBaseClassName is the base class templates compile against
// unless the document names another.
const DefaultTemplateBaseClassName = "RazorPad.Compilation.TemplateBase"

const templateOnlyExtension = ".cshtml"

// RazorDocument is a template together with what it needs to run. It is
// not safe for concurrent mutation.
type RazorDocument struct {
	Filename              string
	ModelProvider         types.ModelProvider
	Template              string
	TemplateBaseClassName string
	References            []string

	metadata map[string]string
	kind     *Kind
}

// Option configures a new RazorDocument.
type Option func(*RazorDocument)

// WithReferences sets the assembly references. The slice is copied.
func WithReferences(refs ...string) Option {
	return func(d *RazorDocument) {
		d.References = append(make([]string, 0, len(refs)), refs...)
	}
}

// WithModelProvider sets the provider that supplies the template model.
func WithModelProvider(p types.ModelProvider) Option {
	return func(d *RazorDocument) { d.ModelProvider = p }
}

// WithMetadata copies md into the document's own metadata map.
func WithMetadata(md map[string]string) Option {
	return func(d *RazorDocument) {
		d.metadata = make(map[string]string, len(md))
		maps.Copy(d.metadata, md)
	}
}

// WithFilename sets the file the document was loaded from.
func WithFilename(name string) Option {
	return func(d *RazorDocument) { d.Filename = name }
}

// WithTemplateBaseClassName overrides DefaultTemplateBaseClassName.
func WithTemplateBaseClassName(name string) Option {
	return func(d *RazorDocument) { d.TemplateBaseClassName = name }
}

// New returns a document for template. Without options it has no
// references, no metadata, no provider and the default base class.
func New(template string, opts ...Option) *RazorDocument {
	d := &RazorDocument{
		Template:              template,
		TemplateBaseClassName: DefaultTemplateBaseClassName,
		References:            []string{},
		metadata:              map[string]string{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Metadata returns a copy of the document metadata.
func (d *RazorDocument) Metadata() map[string]string {
	out := make(map[string]string, len(d.metadata))
	maps.Copy(out, d.metadata)
	return out
}

// MetadataValue returns the metadata value stored under key.
func (d *RazorDocument) MetadataValue(key string) (string, bool) {
	v, ok := d.metadata[key]
	return v, ok
}

// SetMetadata stores value under key.
func (d *RazorDocument) SetMetadata(key, value string) {
	if d.metadata == nil {
		d.metadata = map[string]string{}
	}
	d.metadata[key] = value
}

// DocumentKind returns the explicitly set kind, or infers one from the
// filename: blank names and .cshtml files are template-only.
func (d *RazorDocument) DocumentKind() Kind {
	if d.kind != nil {
		return *d.kind
	}
	if strings.TrimSpace(d.Filename) == "" || strings.HasSuffix(d.Filename, templateOnlyExtension) {
		return KindTemplateOnly
	}
	return KindFull
}

// SetDocumentKind fixes the kind; later filename changes no longer affect
// it.
func (d *RazorDocument) SetDocumentKind(k Kind) {
	d.kind = &k
}

// HasExplicitKind reports whether SetDocumentKind was called.
func (d *RazorDocument) HasExplicitKind() bool {
	return d.kind != nil
}

// GetModel returns the provider's model, or nil when the document has no
// provider. Provider errors are returned as is.
func (d *RazorDocument) GetModel() (any, error) {
	if d.ModelProvider == nil {
		return nil, nil
	}
	return d.ModelProvider.GetModel()
}

// GetModelContext is GetModel for providers that can honour ctx.
func (d *RazorDocument) GetModelContext(ctx context.Context) (any, error) {
	if d.ModelProvider == nil {
		return nil, nil
	}
	if cp, ok := d.ModelProvider.(types.ContextModelProvider); ok {
		return cp.GetModelContext(ctx)
	}
	return d.ModelProvider.GetModel()
}
