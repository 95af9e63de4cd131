// SPDX-License-Identifier: Apache-2.0

// Package memory is a reference, in-memory implementation of every
// ahbsdk trait, built for CLI fixtures and tests: a host wires up fixed
// tables of key → result instead of consulting a real edifact seed or
// hints catalogue. It is not meant for production use — a real host
// implements ahbsdk directly against its own data sources.
package memory

import (
	"context"
	"sync"

	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

// Bundle is a fully in-memory ahbsdk.LogicBundle: requirement-constraint
// results, format-constraint results, hint texts and package expansions
// are all pre-seeded maps keyed by condition key.
type Bundle struct {
	format  string
	version string

	mu       sync.RWMutex
	rc       map[string]ahbsdk.RcFulfilled
	fc       map[string]ahbsdk.FcLeafResult
	hints    map[string]string
	packages map[string]string
}

// New creates an empty bundle for (format, version). Use the Set*
// methods to seed it before handing bundle.Logic() to an evaluation run.
func New(format, version string) *Bundle {
	return &Bundle{
		format:   format,
		version:  version,
		rc:       make(map[string]ahbsdk.RcFulfilled),
		fc:       make(map[string]ahbsdk.FcLeafResult),
		hints:    make(map[string]string),
		packages: make(map[string]string),
	}
}

// SetRC seeds the requirement-constraint result for key.
func (b *Bundle) SetRC(key string, f ahbsdk.RcFulfilled) *Bundle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rc[key] = f
	return b
}

// SetFC seeds the format-constraint result for key.
func (b *Bundle) SetFC(key string, fulfilled bool, errorMessage string) *Bundle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.fc[key] = ahbsdk.FcLeafResult{Fulfilled: fulfilled, ErrorMessage: errorMessage}
	return b
}

// SetHint seeds the hint text for key.
func (b *Bundle) SetHint(key, text string) *Bundle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hints[key] = text
	return b
}

// SetPackage seeds the expansion expression for package key.
func (b *Bundle) SetPackage(key, expression string) *Bundle {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.packages[key] = expression
	return b
}

// Logic returns the ahbsdk.LogicBundle view of this in-memory bundle.
func (b *Bundle) Logic() ahbsdk.LogicBundle {
	return ahbsdk.LogicBundle{Rc: b, Fc: fcAdapter{b}, Hints: b, Packages: b}
}

func (b *Bundle) Format() string  { return b.format }
func (b *Bundle) Version() string { return b.version }

// Evaluate implements ahbsdk.RcEvaluator. A key with no seeded value
// evaluates to RCUnknown, matching the "unknown state until resolved"
// stance the spec takes for a missing content-evaluator answer.
func (b *Bundle) Evaluate(_ context.Context, key string, _ ahbsdk.EvaluatableData, _ ahbsdk.EvaluationContext) (ahbsdk.RcFulfilled, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.rc[key]
	if !ok {
		return ahbsdk.RCUnknown, nil
	}
	return f, nil
}

// fcAdapter satisfies ahbsdk.FcEvaluator. A *Bundle cannot implement
// both RcEvaluator and FcEvaluator directly — both name their
// content-evaluation method Evaluate, with different signatures — so
// the FC-shaped Evaluate lives on this thin wrapper instead.
type fcAdapter struct{ *Bundle }

func (a fcAdapter) Evaluate(_ context.Context, key string, _ string, _ ahbsdk.EvaluationContext) (ahbsdk.FcLeafResult, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	r, ok := a.fc[key]
	if !ok {
		return ahbsdk.FcLeafResult{Fulfilled: true}, nil
	}
	return r, nil
}

func (b *Bundle) HintText(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	text, ok := b.hints[key]
	return text, ok, nil
}

func (b *Bundle) Resolve(_ context.Context, key string) (string, bool, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	expr, ok := b.packages[key]
	return expr, ok, nil
}
