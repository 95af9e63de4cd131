// SPDX-License-Identifier: Apache-2.0

package rceval_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/holomush/ahbicht/internal/ahb/condition"
	"github.com/holomush/ahbicht/internal/ahb/rceval"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
	"github.com/holomush/ahbicht/pkg/ahbsdk/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEvaluate_Scenario1(t *testing.T) {
	// Muss [2] U ([3] O [4])[901] U [555], the source spec's worked
	// end-to-end scenario: [2]=T, [3]=F, [4]=T, [555] is a hint,
	// [901] a format constraint reachable because the gate is true.
	// Sibling sub-trees ([3] O [4]) and [555] reduce concurrently via
	// errgroup; this is the test that would surface a leaked goroutine
	// if that fan-out ever stopped joining cleanly.
	n, err := condition.Parse("[2] U ([3] O [4])[901] U [555]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetRC("2", ahbsdk.RCTrue)
	bundle.SetRC("3", ahbsdk.RCFalse)
	bundle.SetRC("4", ahbsdk.RCTrue)
	bundle.SetHint("555", "Hinweis 555")
	logic := bundle.Logic()

	res, err := rceval.Evaluate(context.Background(), "run-1", n, logic.Rc, logic.Hints, ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
	require.NoError(t, err)

	assert.True(t, res.Fulfilled)
	assert.True(t, res.IsConditional)
	require.NotNil(t, res.FormatConstraintsExpression)
	assert.Equal(t, "[901]", *res.FormatConstraintsExpression)
	require.NotNil(t, res.Hints)
	assert.Equal(t, "Hinweis 555", *res.Hints)
}

func TestEvaluate_UnconditionalFieldWhenNoRCLeaves(t *testing.T) {
	n, err := condition.Parse("[555]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetHint("555", "text")
	logic := bundle.Logic()

	res, err := rceval.Evaluate(context.Background(), "run-1", n, logic.Rc, logic.Hints, ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
	require.NoError(t, err)

	assert.True(t, res.Fulfilled)
	assert.False(t, res.IsConditional)
}

func TestEvaluate_NonsensicalComposition(t *testing.T) {
	n, err := condition.Parse("[3] O [555]")
	require.NoError(t, err)

	bundle := memory.New("UTILMD", "FV2504")
	bundle.SetRC("3", ahbsdk.RCTrue)
	bundle.SetHint("555", "hint")
	logic := bundle.Logic()

	_, err = rceval.Evaluate(context.Background(), "run-1", n, logic.Rc, logic.Hints, ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
	require.Error(t, err)
}
