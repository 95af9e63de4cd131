// SPDX-License-Identifier: Apache-2.0

// Package ahberr defines the error kinds the engine can surface, each as
// an oops-coded constructor so callers can branch on Code() and so
// structured context (offset, key, op, node kinds) survives logging
// without string-parsing the error message.
package ahberr

import (
	"strings"

	"github.com/samber/oops"
)

// Error codes for every kind named in the engine's error-handling design.
const (
	CodeSyntax                 = "SYNTAX_ERROR"
	CodeUnknownPackage         = "UNKNOWN_PACKAGE"
	CodePackageCycle           = "PACKAGE_CYCLE"
	CodeUnknownKeyEvaluator    = "UNKNOWN_KEY_EVALUATOR"
	CodeNonsensicalComposition = "NONSENSICAL_COMPOSITION"
	CodeInvalidIndicatorPos    = "INVALID_INDICATOR_POSITION"
	CodeCancelled              = "CANCELLED"
	CodeEvaluatorFailure       = "EVALUATOR_FAILURE"
)

// Syntax builds a SyntaxError: a grammar failure at a byte offset, with
// the set of tokens the parser would have accepted there.
func Syntax(offset int, expected []string, cause error) error {
	b := oops.Code(CodeSyntax).
		With("offset", offset).
		With("expected", expected)
	if cause != nil {
		return b.Wrapf(cause, "syntax error at offset %d: expected one of [%s]", offset, strings.Join(expected, ", "))
	}
	return b.Errorf("syntax error at offset %d: expected one of [%s]", offset, strings.Join(expected, ", "))
}

// UnknownPackage builds an UnknownPackage error: a package key the
// resolver does not recognize.
func UnknownPackage(key string) error {
	return oops.Code(CodeUnknownPackage).
		With("key", key).
		Errorf("unknown package %q", key)
}

// PackageCycle builds a PackageCycle error: expanding key would revisit a
// key already on the current expansion chain.
func PackageCycle(keyPath []string) error {
	return oops.Code(CodePackageCycle).
		With("key_path", keyPath).
		Errorf("package expansion cycle: %s", strings.Join(keyPath, " -> "))
}

// UnknownKeyEvaluator builds an UnknownKeyEvaluator error: no registered
// evaluator method exists for key under the given format/version.
func UnknownKeyEvaluator(key, format, version string) error {
	return oops.Code(CodeUnknownKeyEvaluator).
		With("key", key).
		With("format", format).
		With("version", version).
		Errorf("no evaluator registered for key %q (%s %s)", key, format, version)
}

// NonsensicalComposition builds a NonsensicalComposition error: the
// algebra has no defined result for op over left_kind/right_kind (e.g.
// Hint O Hint, Neutral X True).
func NonsensicalComposition(op, leftKind, rightKind string) error {
	return oops.Code(CodeNonsensicalComposition).
		With("op", op).
		With("left_kind", leftKind).
		With("right_kind", rightKind).
		Errorf("nonsensical composition: %s %s %s", leftKind, op, rightKind)
}

// InvalidIndicatorPosition builds an InvalidIndicatorPosition error: an
// indicator token (Muss/Soll/Kann/X/O/U) was found where a condition
// expression was expected.
func InvalidIndicatorPosition(token string, offset int) error {
	return oops.Code(CodeInvalidIndicatorPos).
		With("token", token).
		With("offset", offset).
		Errorf("indicator token %q not valid inside a condition expression", token)
}

// Cancelled builds a Cancelled error: a run was aborted by cooperative
// cancellation. runID is the evaluation run's correlation ID.
func Cancelled(runID string, cause error) error {
	b := oops.Code(CodeCancelled).With("run_id", runID)
	if cause != nil {
		return b.Wrapf(cause, "evaluation run %s cancelled", runID)
	}
	return b.Errorf("evaluation run %s cancelled", runID)
}

// EvaluatorFailure wraps an error raised by a user-supplied content
// evaluator so it bubbles up without being silently swallowed.
func EvaluatorFailure(key string, cause error) error {
	return oops.Code(CodeEvaluatorFailure).
		With("key", key).
		Wrapf(cause, "content evaluator failed for key %q", key)
}

// Code extracts the oops error code from err, or "" if err is not an
// oops error.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	if code := oopsErr.Code(); code != nil {
		if s, ok := code.(string); ok {
			return s
		}
	}
	return ""
}
