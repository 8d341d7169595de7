package factory

import (
	"sync"
	"sync/atomic"

	"github.com/cecil-the-coder/razorpad-kit/pkg/logging"
	"github.com/cecil-the-coder/razorpad-kit/pkg/providers/jsonmodel"
	"github.com/cecil-the-coder/razorpad-kit/pkg/types"
)

type factoryCell struct {
	factory types.ModelProviderFactory
}

type loggerCell struct {
	logger logging.Logger
}

var (
	defaultFactory atomic.Pointer[factoryCell]
	defaultMu      sync.Mutex

	current   atomic.Pointer[ModelProviders]
	currentMu sync.Mutex

	packageLogger atomic.Pointer[loggerCell]
)

func logger() logging.Logger {
	if c := packageLogger.Load(); c != nil {
		return c.logger
	}
	return logging.Nop()
}

// SetLogger sets the logger used by the process-wide default and registry
// cells. Nil restores the silent logger.
func SetLogger(l logging.Logger) {
	if l == nil {
		packageLogger.Store(nil)
		return
	}
	packageLogger.Store(&loggerCell{logger: l})
}

// DefaultFactory returns the process-wide fallback factory. Until one is set
// it lazily builds a JSON model provider factory; concurrent first readers
// all observe the same instance.
func DefaultFactory() types.ModelProviderFactory {
	if c := defaultFactory.Load(); c != nil {
		return c.factory
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if c := defaultFactory.Load(); c != nil {
		return c.factory
	}

	f := jsonmodel.NewFactory()
	defaultFactory.Store(&factoryCell{factory: f})
	logger().Debug("materialized default model provider factory", "type", TypeNameOf(f))
	return f
}

// SetDefaultFactory replaces the process-wide fallback factory. Nil clears
// it, so the next DefaultFactory call builds a fresh JSON factory.
func SetDefaultFactory(f types.ModelProviderFactory) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if f == nil {
		defaultFactory.Store(nil)
		return
	}
	defaultFactory.Store(&factoryCell{factory: f})
	logger().Debug("set default model provider factory", "type", TypeNameOf(f))
}

// Current returns the process-wide registry, building one from the built-in
// factories on first use.
func Current() *ModelProviders {
	if r := current.Load(); r != nil {
		return r
	}

	currentMu.Lock()
	defer currentMu.Unlock()
	if r := current.Load(); r != nil {
		return r
	}

	r := MustNew(BuiltinFactories(), WithLogger(logger()))
	current.Store(r)
	return r
}

// SetCurrent replaces the process-wide registry. Nil resets it to the
// lazily built default.
func SetCurrent(r *ModelProviders) {
	currentMu.Lock()
	defer currentMu.Unlock()
	current.Store(r)
}
