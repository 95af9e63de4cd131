// SPDX-License-Identifier: Apache-2.0

// Package registry is the process-wide dependency-injection surface (C10):
// a map from (edifact_format, format_version) to the ahbsdk.LogicBundle
// that serves it. Its shape — an RWMutex-guarded map with atomic
// replace-whole-map semantics — follows internal/property.PropertyRegistry,
// generalized from a single string key to the composite format+version
// key spec §4.10 requires.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// key is the composite (edifact_format, format_version) registry key.
type key struct {
	format  string
	version string
}

// Registry maps (format, version) pairs to logic bundles. It is safe for
// concurrent use; Swap lets a caller replace the whole mapping atomically
// between evaluation runs, per spec §4.10 ("Registries are replaceable
// atomically between evaluation runs").
type Registry struct {
	mu      sync.RWMutex
	bundles map[key]ahbsdk.LogicBundle
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{bundles: make(map[key]ahbsdk.LogicBundle)}
}

// Register adds a logic bundle for (format, version). It returns an error
// if a bundle is already registered for that pair.
func (r *Registry) Register(format, version string, bundle ahbsdk.LogicBundle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := key{format, version}
	if _, exists := r.bundles[k]; exists {
		return fmt.Errorf("registry: bundle already registered for %s %s", format, version)
	}
	r.bundles[k] = bundle
	return nil
}

// MustRegister is Register, panicking on error. Intended for package
// initialization only.
func (r *Registry) MustRegister(format, version string, bundle ahbsdk.LogicBundle) {
	if err := r.Register(format, version, bundle); err != nil {
		panic(err)
	}
}

// Lookup returns the logic bundle registered for (format, version).
func (r *Registry) Lookup(format, version string) (ahbsdk.LogicBundle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bundle, ok := r.bundles[key{format, version}]
	return bundle, ok
}

// Swap atomically replaces the entire registry contents with next's.
func (r *Registry) Swap(next map[string]map[string]ahbsdk.LogicBundle) {
	flat := make(map[key]ahbsdk.LogicBundle)
	for format, versions := range next {
		for version, bundle := range versions {
			flat[key{format, version}] = bundle
		}
	}

	r.mu.Lock()
	r.bundles = flat
	r.mu.Unlock()
}

// Pairs returns every registered (format, version) pair, sorted, for
// diagnostics and config validation.
func (r *Registry) Pairs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := make([]string, 0, len(r.bundles))
	for k := range r.bundles {
		pairs = append(pairs, k.format+" "+k.version)
	}
	sort.Strings(pairs)
	return pairs
}

var (
	sharedOnce     sync.Once
	sharedRegistry *Registry
)

// Shared returns a process-wide default registry instance. Per spec
// §9 ("a thin module-level singleton may exist for convenience but must
// not be load-bearing"), nothing in this module uses it: the evaluators
// take an ahbsdk.LogicBundle directly, and cmd/ahbicht serve builds its
// own *Registry with New.
func Shared() *Registry {
	sharedOnce.Do(func() {
		sharedRegistry = New()
	})
	return sharedRegistry
}
