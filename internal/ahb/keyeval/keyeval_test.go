// SPDX-License-Identifier: Apache-2.0

package keyeval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/keyeval"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
	"github.com/holomush/ahbicht/pkg/ahbsdk/memory"
)

func TestEvaluate_ReportsEachRequirementConstraintKeyIndependently(t *testing.T) {
	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetRC("1", ahbsdk.RCTrue)
	bundle.SetRC("2", ahbsdk.RCFalse)
	logic := bundle.Logic()

	n, err := condition.Parse("[1] U [2]")
	require.NoError(t, err)

	results, err := keyeval.Evaluate(context.Background(), "run-1", n, logic.Rc, ahbsdk.EvaluatableData{}, ahbsdk.EvaluationContext{})
	require.NoError(t, err)
	require.Len(t, results, 2)

	byKey := map[string]string{}
	for _, r := range results {
		byKey[r.Key] = r.FulfilledName
	}
	assert.Equal(t, "TRUE", byKey["1"])
	assert.Equal(t, "FALSE", byKey["2"])
}

func TestEvaluate_UnseededKeyReportsUnknown(t *testing.T) {
	bundle := memory.New("UTILMD", "FV2504")
	logic := bundle.Logic()

	n, err := condition.Parse("[77]")
	require.NoError(t, err)

	results, err := keyeval.Evaluate(context.Background(), "run-1", n, logic.Rc, ahbsdk.EvaluatableData{}, ahbsdk.EvaluationContext{})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "UNKNOWN", results[0].FulfilledName)
}
