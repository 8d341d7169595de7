package factory

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/cecil-the-coder/razorpad-kit/pkg/logging"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// Entry is one registered factory.
type Entry struct {
	Key      string
	TypeName string
	Factory  types.ModelProviderFactory
}

// ModelProviders is a registry of model provider factories keyed by
// normalized name. The first factory registered under a key wins; lookups
// that miss fall back to the default factory. It is safe for concurrent use.
type ModelProviders struct {
	mutex     sync.RWMutex
	factories map[string]types.ModelProviderFactory
	entries   []Entry

	logger         logging.Logger
	suffixes       []string
	defaultFactory types.ModelProviderFactory
}

// Option customizes a ModelProviders registry.
type Option func(*ModelProviders)

// WithLogger sets the logger receiving registration and resolution events.
func WithLogger(l logging.Logger) Option {
	return func(r *ModelProviders) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithFactorySuffixes replaces the suffixes trimmed from type names.
func WithFactorySuffixes(suffixes ...string) Option {
	return func(r *ModelProviders) {
		if len(suffixes) > 0 {
			r.suffixes = append([]string(nil), suffixes...)
		}
	}
}

// WithDefaultFactory overrides the process-wide default for this registry.
func WithDefaultFactory(f types.ModelProviderFactory) Option {
	return func(r *ModelProviders) { r.defaultFactory = f }
}

// New creates a registry and adds each factory in order. A nil slice is
// rejected; an empty one yields an empty registry.
func New(factories []types.ModelProviderFactory, opts ...Option) (*ModelProviders, error) {
	if factories == nil {
		return nil, fmt.Errorf("factory: new registry: %w", types.ErrNilFactories)
	}

	r := &ModelProviders{
		factories: make(map[string]types.ModelProviderFactory, len(factories)),
		logger:    logging.Nop(),
		suffixes:  DefaultFactorySuffixes(),
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, f := range factories {
		r.Add(f)
	}
	return r, nil
}

// MustNew is like New but panics on error.
func MustNew(factories []types.ModelProviderFactory, opts ...Option) *ModelProviders {
	r, err := New(factories, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

// Add registers factory under its derived key and reports whether it was
// inserted. A factory whose key is already taken is ignored.
func (r *ModelProviders) Add(factory types.ModelProviderFactory) bool {
	if isNilFactory(factory) {
		r.logger.Warn("ignoring nil model provider factory", "type", fmt.Sprintf("%T", factory))
		return false
	}

	typeName := TypeNameOf(factory)
	key := RegistryKey(typeName, r.suffixes...)

	r.mutex.Lock()
	if _, exists := r.factories[key]; exists {
		r.mutex.Unlock()
		r.logger.Debug("model provider factory already registered", "key", key, "type", typeName)
		return false
	}
	r.factories[key] = factory
	r.entries = append(r.entries, Entry{Key: key, TypeName: typeName, Factory: factory})
	r.mutex.Unlock()

	r.logger.Info("registered model provider factory", "key", key, "type", typeName)
	return true
}

// isNilFactory also catches typed nil pointers, which would otherwise claim
// a key and fail on Create.
func isNilFactory(factory types.ModelProviderFactory) bool {
	if factory == nil {
		return true
	}
	v := reflect.ValueOf(factory)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Create returns a fresh provider from the factory registered under name,
// or from the default factory when there is none. It always returns a
// provider.
func (r *ModelProviders) Create(name string) types.ModelProvider {
	key := LookupKey(name)

	r.mutex.RLock()
	factory, ok := r.factories[key]
	r.mutex.RUnlock()

	if ok {
		r.logger.Debug("creating model provider", "name", name, "key", key)
		return factory.Create()
	}

	r.logger.Warn("model provider not found, using default", "name", name, "key", key)
	return r.Default().Create()
}

// GetProviderFactory returns the factory registered under name, or nil.
func (r *ModelProviders) GetProviderFactory(name string) types.ModelProviderFactory {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.factories[LookupKey(name)]
}

// Has reports whether a factory is registered under name.
func (r *ModelProviders) Has(name string) bool {
	return r.GetProviderFactory(name) != nil
}

// Providers returns the registered factories in registration order.
func (r *ModelProviders) Providers() []Entry {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Names returns the registered keys in registration order.
func (r *ModelProviders) Names() []string {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	names := make([]string, len(r.entries))
	for i, e := range r.entries {
		names[i] = e.Key
	}
	return names
}

// Len returns the number of registered factories.
func (r *ModelProviders) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.entries)
}

// Default returns the factory used when a lookup misses: the registry's own
// override if set, otherwise the process-wide DefaultFactory.
func (r *ModelProviders) Default() types.ModelProviderFactory {
	if r.defaultFactory != nil {
		return r.defaultFactory
	}
	return DefaultFactory()
}
