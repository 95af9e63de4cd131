// SPDX-License-Identifier: Apache-2.0

package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ahbicht/pkg/ahbsdk"
	"github.com/holomush/ahbicht/pkg/ahbsdk/memory"
)

func TestBundle_SeededLookups(t *testing.T) {
	b := memory.New("UTILMD", "FV2504")
	b.SetRC("2", ahbsdk.RCTrue)
	b.SetFC("901", false, "bad format")
	b.SetHint("555", "hinweis")
	b.SetPackage("9", "[2] U [3]")

	logic := b.Logic()

	f, err := logic.Rc.Evaluate(context.Background(), "2", ahbsdk.EvaluatableData{}, ahbsdk.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, ahbsdk.RCTrue, f)

	fc, err := logic.Fc.Evaluate(context.Background(), "901", "entered", ahbsdk.EvaluationContext{})
	require.NoError(t, err)
	assert.False(t, fc.Fulfilled)
	assert.Equal(t, "bad format", fc.ErrorMessage)

	text, ok, err := logic.Hints.HintText(context.Background(), "555")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hinweis", text)

	expr, ok, err := logic.Packages.Resolve(context.Background(), "9")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[2] U [3]", expr)
}

func TestBundle_UnseededKeysDefault(t *testing.T) {
	b := memory.New("UTILMD", "FV2504")
	logic := b.Logic()

	f, err := logic.Rc.Evaluate(context.Background(), "2", ahbsdk.EvaluatableData{}, ahbsdk.EvaluationContext{})
	require.NoError(t, err)
	assert.Equal(t, ahbsdk.RCUnknown, f)

	fc, err := logic.Fc.Evaluate(context.Background(), "901", "", ahbsdk.EvaluationContext{})
	require.NoError(t, err)
	assert.True(t, fc.Fulfilled)

	_, ok, err := logic.Hints.HintText(context.Background(), "555")
	require.NoError(t, err)
	assert.False(t, ok)
}
