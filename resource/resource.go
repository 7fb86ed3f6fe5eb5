// Package resource implements the node's type-erased, name-keyed resource
// registry: a cache in front of an injected ResourceProvider, with a
// runtime type check isolated to one retrieval helper.
package resource

import "fmt"

// Provider maps a resource name to its value, or reports absence. A
// Provider is consulted at most once per name across the registry's
// lifetime; the registry caches whatever it returns.
type Provider interface {
	GetResource(name string) (any, bool)
}

// ProviderFunc adapts a plain function to a Provider.
type ProviderFunc func(name string) (any, bool)

// GetResource implements Provider.
func (f ProviderFunc) GetResource(name string) (any, bool) {
	return f(name)
}

// TypeMismatchError is returned when a name resolves to a value whose
// concrete type does not match the type requested by the caller. It is a
// programmer error: the registry never silently coerces.
type TypeMismatchError struct {
	Name     string
	Expected string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("resource %q is not of type %s", e.Name, e.Expected)
}

// Registry is a name -> resource cache backed by a Provider. It is
// intentionally not safe for concurrent use: the contract (spec §4.1)
// restricts access to the single-threaded constructor phase.
type Registry struct {
	provider Provider
	cache    map[string]any
}

// NewRegistry wires a Registry to the given provider.
func NewRegistry(provider Provider) *Registry {
	return &Registry{
		provider: provider,
		cache:    make(map[string]any),
	}
}

// Insert seeds the registry with a value directly, bypassing the
// provider. Used by the node to install built-in resources (the stop
// subscription) before any task constructor runs.
func (r *Registry) Insert(name string, value any) {
	r.cache[name] = value
}

// Has reports whether name is already present in the local cache, without
// consulting the provider.
func (r *Registry) Has(name string) bool {
	_, ok := r.cache[name]
	return ok
}

// getTyped resolves name from the cache or, on a miss, from the provider,
// then asserts it against zero value T. ok is false only when the name is
// absent everywhere; a type mismatch always returns a *TypeMismatchError,
// never a silent zero value.
func getTyped[T any](r *Registry, name string) (T, bool, error) {
	var zero T

	if v, cached := r.cache[name]; cached {
		typed, ok := v.(T)
		if !ok {
			return zero, true, &TypeMismatchError{Name: name, Expected: typeName[T]()}
		}
		return typed, true, nil
	}

	v, found := r.provider.GetResource(name)
	if !found {
		return zero, false, nil
	}

	r.cache[name] = v
	typed, ok := v.(T)
	if !ok {
		return zero, true, &TypeMismatchError{Name: name, Expected: typeName[T]()}
	}
	return typed, true, nil
}

// Get retrieves name as T. It returns (zero, false, nil) when the resource
// is absent from both the cache and the provider; absence is not an error
// at this layer, the caller decides whether it's fatal. A present-but-
// wrong-typed value always returns a non-nil *TypeMismatchError.
func Get[T any](r *Registry, name string) (T, bool, error) {
	return getTyped[T](r, name)
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", zero)
}
