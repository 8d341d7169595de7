// Package factory provides the model provider registry: explicit registration
// of provider factories keyed by a normalized name, lookup with fallback to a
// default factory, and the process-wide registry and default cells hosts use
// to share one set of providers.
package factory
