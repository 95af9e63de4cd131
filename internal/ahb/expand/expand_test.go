// SPDX-License-Identifier: Apache-2.0

package expand_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/expand"
	"github.com/holomush/ahbicht/internal/ahb/tree"
	"github.com/holomush/ahbicht/pkg/ahbsdk/memory"
)

func TestExpand_Substitutes(t *testing.T) {
	n, err := condition.Parse("[123P]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetPackage("123", "[2] U [3]")

	expanded, err := expand.Expand(context.Background(), "run-1", n, bundle.Logic().Packages)
	require.NoError(t, err)

	want, err := condition.Parse("[2] U [3]")
	require.NoError(t, err)
	assert.True(t, tree.Equal(expanded, want))
}

func TestExpand_Nested(t *testing.T) {
	n, err := condition.Parse("[1P]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetPackage("1", "[2P]")
	bundle.SetPackage("2", "[3]")

	expanded, err := expand.Expand(context.Background(), "run-1", n, bundle.Logic().Packages)
	require.NoError(t, err)

	rc, ok := expanded.(*tree.RequirementConstraint)
	require.True(t, ok)
	assert.Equal(t, "3", rc.Key)
}

func TestExpand_UnknownPackage(t *testing.T) {
	n, err := condition.Parse("[123P]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")

	_, err = expand.Expand(context.Background(), "run-1", n, bundle.Logic().Packages)
	require.Error(t, err)
	assert.Equal(t, ahberr.CodeUnknownPackage, ahberr.Code(err))
}

func TestExpand_CycleDetected(t *testing.T) {
	n, err := condition.Parse("[1P]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetPackage("1", "[2P]")
	bundle.SetPackage("2", "[1P]")

	_, err = expand.Expand(context.Background(), "run-1", n, bundle.Logic().Packages)
	require.Error(t, err)
	assert.Equal(t, ahberr.CodePackageCycle, ahberr.Code(err))
}

func TestExpand_IdempotentOnTreeWithoutPackageLeaves(t *testing.T) {
	n, err := condition.Parse("[2] U [3]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	expanded, err := expand.Expand(context.Background(), "run-1", n, bundle.Logic().Packages)
	require.NoError(t, err)
	assert.True(t, tree.Equal(n, expanded))
}
