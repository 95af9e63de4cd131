// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"strconv"
	"strings"
)

// KeyKind is the classification of a bracketed key by its form, per the
// key taxonomy: suffix, then numeric range.
type KeyKind uint8

const (
	KindRequirementConstraint KeyKind = iota
	KindHint
	KindFormatConstraint
	KindPackage
	KindTimeCondition
)

// timeConditionFloor is the numeric band, starting here, that is treated
// as a time condition even without a Q suffix.
const timeConditionFloor = 1000

// ClassifyKey classifies a bracketed key's raw text (without the
// brackets, e.g. "123P" or "555") by form: suffix P is a package, suffix
// Q or a numeric value at or above timeConditionFloor is a time
// condition, and otherwise plain-integer ranges pick requirement
// constraint / hint / format constraint. It returns the normalized key
// (suffix stripped for package/time-condition forms) and its kind.
func ClassifyKey(raw string) (normalized string, kind KeyKind) {
	trimmed := strings.TrimSpace(raw)

	if strings.HasSuffix(trimmed, "P") {
		return strings.TrimSuffix(trimmed, "P"), KindPackage
	}
	if strings.HasSuffix(trimmed, "Q") {
		return strings.TrimSuffix(trimmed, "Q"), KindTimeCondition
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil {
		// Not a plain integer and no recognized suffix: treat as a time
		// condition, the taxonomy's catch-all for forms it does not
		// otherwise recognize.
		return trimmed, KindTimeCondition
	}

	switch {
	case n >= timeConditionFloor:
		return trimmed, KindTimeCondition
	case n >= 900:
		return trimmed, KindFormatConstraint
	case n >= 500:
		return trimmed, KindHint
	default:
		return trimmed, KindRequirementConstraint
	}
}

// NewLeaf builds the leaf node kind appropriate for raw's classification.
func NewLeaf(raw string) Node {
	key, kind := ClassifyKey(raw)
	switch kind {
	case KindHint:
		return &Hint{Key: key}
	case KindFormatConstraint:
		return &FormatConstraint{Key: key, Expression: "[" + key + "]"}
	case KindPackage:
		return &PackageRef{Key: key}
	case KindTimeCondition:
		return &TimeCondition{Key: key}
	default:
		return &RequirementConstraint{Key: key}
	}
}
