// Package testutil provides shared testing utilities, mocks, and fixtures
// for use across the razorpad-kit test suite.
package testutil

import (
	"context"
	"sync"

	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

// ConfigurableMockProvider is a mock ModelProvider with a configurable model
// and error. It counts calls and records the last context it saw.
type ConfigurableMockProvider struct {
	mu sync.RWMutex

	model any
	err   error

	getModelCalled        int
	getModelContextCalled int
	lastCtx               context.Context
}

// NewConfigurableMockProvider returns a provider yielding model.
func NewConfigurableMockProvider(model any) *ConfigurableMockProvider {
	return &ConfigurableMockProvider{model: model}
}

// SetModel changes the returned model.
func (m *ConfigurableMockProvider) SetModel(model any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.model = model
}

// SetError makes every call fail with err.
func (m *ConfigurableMockProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// GetModel implements types.ModelProvider.
func (m *ConfigurableMockProvider) GetModel() (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getModelCalled++
	if m.err != nil {
		return nil, m.err
	}
	return m.model, nil
}

// GetModelCallCount returns how many times GetModel was called.
func (m *ConfigurableMockProvider) GetModelCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getModelCalled
}

// ContextMockProvider additionally implements types.ContextModelProvider.
type ContextMockProvider struct {
	*ConfigurableMockProvider
}

// NewContextMockProvider returns a context-aware provider yielding model.
func NewContextMockProvider(model any) *ContextMockProvider {
	return &ContextMockProvider{NewConfigurableMockProvider(model)}
}

// GetModelContext implements types.ContextModelProvider. A cancelled
// context fails with its error.
func (m *ContextMockProvider) GetModelContext(ctx context.Context) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getModelContextCalled++
	m.lastCtx = ctx
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.model, nil
}

// GetModelContextCallCount returns how many times GetModelContext was called.
func (m *ContextMockProvider) GetModelContextCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.getModelContextCalled
}

// LastContext returns the context passed to the latest GetModelContext call.
func (m *ContextMockProvider) LastContext() context.Context {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.lastCtx
}

// MockFactory is a ModelProviderFactory that hands out providers built by a
// constructor and counts Create calls. Its registry name comes from
// TypeName, so tests can exercise suffix trimming without declaring types.
type MockFactory struct {
	mu      sync.Mutex
	name    string
	newFunc func() types.ModelProvider
	created int
}

// NewMockFactory returns a factory named typeName whose providers yield model.
func NewMockFactory(typeName string, model any) *MockFactory {
	return &MockFactory{
		name: typeName,
		newFunc: func() types.ModelProvider {
			return NewConfigurableMockProvider(model)
		},
	}
}

// NewMockFactoryFunc returns a factory named typeName that calls fn on Create.
func NewMockFactoryFunc(typeName string, fn func() types.ModelProvider) *MockFactory {
	return &MockFactory{name: typeName, newFunc: fn}
}

// TypeName implements types.TypeNamer.
func (f *MockFactory) TypeName() string { return f.name }

// Create implements types.ModelProviderFactory.
func (f *MockFactory) Create() types.ModelProvider {
	f.mu.Lock()
	f.created++
	f.mu.Unlock()
	return f.newFunc()
}

// CreateCallCount returns how many providers were created.
func (f *MockFactory) CreateCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.created
}
