// SPDX-License-Identifier: Apache-2.0

package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/holomush/ahbicht/internal/ahb/tree"
)

func TestClassifyKey(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		normalized string
		kind       tree.KeyKind
	}{
		{"requirement constraint", "2", "2", tree.KindRequirementConstraint},
		{"requirement constraint upper bound", "499", "499", tree.KindRequirementConstraint},
		{"hint lower bound", "500", "500", tree.KindHint},
		{"hint upper bound", "899", "899", tree.KindHint},
		{"format constraint lower bound", "900", "900", tree.KindFormatConstraint},
		{"format constraint upper bound", "999", "999", tree.KindFormatConstraint},
		{"time condition numeric band", "1001", "1001", tree.KindTimeCondition},
		{"time condition Q suffix", "12Q", "12", tree.KindTimeCondition},
		{"package", "123P", "123", tree.KindPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normalized, kind := tree.ClassifyKey(tt.raw)
			assert.Equal(t, tt.normalized, normalized)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestNewLeaf(t *testing.T) {
	assert.IsType(t, &tree.RequirementConstraint{}, tree.NewLeaf("2"))
	assert.IsType(t, &tree.Hint{}, tree.NewLeaf("555"))
	assert.IsType(t, &tree.FormatConstraint{}, tree.NewLeaf("901"))
	assert.IsType(t, &tree.PackageRef{}, tree.NewLeaf("123P"))
	assert.IsType(t, &tree.TimeCondition{}, tree.NewLeaf("1001"))
}

func TestEqual(t *testing.T) {
	a := tree.NewComposition(tree.And, &tree.RequirementConstraint{Key: "2"}, &tree.RequirementConstraint{Key: "3"})
	b := tree.NewComposition(tree.And, &tree.RequirementConstraint{Key: "2"}, &tree.RequirementConstraint{Key: "3"})
	c := tree.NewComposition(tree.Or, &tree.RequirementConstraint{Key: "2"}, &tree.RequirementConstraint{Key: "3"})

	assert.True(t, tree.Equal(a, b))
	assert.False(t, tree.Equal(a, c))
	assert.True(t, tree.Equal(nil, nil))
	assert.False(t, tree.Equal(a, nil))
}

func TestKey(t *testing.T) {
	key, ok := tree.Key(&tree.RequirementConstraint{Key: "42"})
	assert.True(t, ok)
	assert.Equal(t, "42", key)

	_, ok = tree.Key(tree.NewComposition(tree.And, &tree.RequirementConstraint{Key: "2"}, &tree.RequirementConstraint{Key: "3"}))
	assert.False(t, ok)
}
