// SPDX-License-Identifier: Apache-2.0

package ahbjson_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/ahbicht/internal/ahb/ahbjson"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
)

func TestGenerateAhbExpressionSchema_ProducesValidJSON(t *testing.T) {
	raw, err := ahbjson.GenerateAhbExpressionSchema()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, "AhbExpressionEvaluationResult", decoded["title"])
}

func TestGenerateResultSchemas_AllProduceValidJSON(t *testing.T) {
	generators := []func() ([]byte, error){
		ahbjson.GenerateRequirementConstraintSchema,
		ahbjson.GenerateFormatConstraintSchema,
		ahbjson.GenerateEvaluatedFormatConstraintSchema,
		ahbjson.GenerateContentEvaluationResultSchema,
		ahbjson.GenerateEvaluatableDataSchema,
	}
	for _, gen := range generators {
		raw, err := gen()
		require.NoError(t, err)
		var decoded map[string]any
		assert.NoError(t, json.Unmarshal(raw, &decoded))
	}
}

func TestValidateEvaluatableData_AcceptsWellFormedSeed(t *testing.T) {
	data := ahbsdk.EvaluatableData{
		EnteredText: "2026-08-01",
		Fields:      map[string]any{"meter_reading": 42},
	}
	assert.NoError(t, ahbjson.ValidateEvaluatableData(data))
}

func TestValidateEvaluatableData_AcceptsZeroValueSeed(t *testing.T) {
	assert.NoError(t, ahbjson.ValidateEvaluatableData(ahbsdk.EvaluatableData{}))
}
