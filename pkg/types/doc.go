// Package types defines the core contracts of RazorPad Kit: the model provider
// capability, the factory that produces providers, and the typed errors shared
// by the registry and the concrete providers.
package types
