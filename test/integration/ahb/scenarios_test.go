// SPDX-License-Identifier: Apache-2.0

//go:build integration

package ahb_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention

	"github.com/holomush/ahbicht/internal/ahb/ahbeval"
	"github.com/holomush/ahbicht/internal/ahb/ahberr"
	"github.com/holomush/ahbicht/pkg/ahbsdk"
	"github.com/holomush/ahbicht/pkg/ahbsdk/memory"
)

var _ = Describe("end-to-end AHB expression evaluation", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("scenario 1: a fulfilled gate carries its residual and hint to the root", func() {
		It("reports the RC as fulfilled with the FC residual and hint intact", func() {
			bundle := memory.New("UTILMD", "FV2504")
			bundle.SetRC("2", ahbsdk.RCTrue)
			bundle.SetRC("3", ahbsdk.RCFalse)
			bundle.SetRC("4", ahbsdk.RCTrue)
			bundle.SetHint("555", "Hinweis 555")
			bundle.SetFC("901", true, "")

			res, err := ahbeval.Evaluate(ctx, "scenario-1", "Muss [2] U ([3] O [4])[901] U [555]",
				bundle.Logic(), ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.RequirementIndicator).To(Equal("Muss"))
			Expect(res.RCResult.Fulfilled).To(BeTrue())
			Expect(res.RCResult.IsConditional).To(BeTrue())
			Expect(res.RCResult.FormatConstraintsExpression).To(PointTo(Equal("[901]")))
			Expect(res.RCResult.Hints).To(PointTo(Equal("Hinweis 555")))
			Expect(res.FCResult.Fulfilled).To(BeTrue())
			Expect(res.FCResult.ErrorMessage).To(BeNil())
		})
	})

	Describe("scenario 2: a failed leading gate drops the residual it would otherwise have carried", func() {
		It("reports the RC as not fulfilled and the FC as vacuously true", func() {
			bundle := memory.New("UTILMD", "FV2504")
			bundle.SetRC("2", ahbsdk.RCFalse)
			bundle.SetRC("3", ahbsdk.RCFalse)
			bundle.SetRC("4", ahbsdk.RCTrue)
			bundle.SetHint("555", "Hinweis 555")
			bundle.SetFC("901", true, "")

			res, err := ahbeval.Evaluate(ctx, "scenario-2", "Muss [2] U ([3] O [4])[901] U [555]",
				bundle.Logic(), ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.RCResult.Fulfilled).To(BeFalse())
			Expect(res.RCResult.FormatConstraintsExpression).To(BeNil())
			Expect(res.FCResult.Fulfilled).To(BeTrue())
		})
	})

	Describe("scenario 3: a bare indicator with no condition expression", func() {
		It("evaluates to an unconditionally fulfilled requirement constraint", func() {
			bundle := memory.New("UTILMD", "FV2504")

			res, err := ahbeval.Evaluate(ctx, "scenario-3", "Kann",
				bundle.Logic(), ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.RequirementIndicator).To(Equal("Kann"))
			Expect(res.RCResult.Fulfilled).To(BeTrue())
			Expect(res.RCResult.IsConditional).To(BeFalse())
		})
	})

	Describe("scenario 4: the first fulfilling pair wins over later modal marks", func() {
		It("short-circuits on Soll once Muss's own pair fails", func() {
			bundle := memory.New("UTILMD", "FV2504")
			bundle.SetRC("1", ahbsdk.RCFalse)
			bundle.SetRC("2", ahbsdk.RCTrue)

			res, err := ahbeval.Evaluate(ctx, "scenario-4", "Muss [1] Soll [2]",
				bundle.Logic(), ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.RequirementIndicator).To(Equal("Soll"))
			Expect(res.RCResult.Fulfilled).To(BeTrue())
		})
	})

	Describe("scenario 5: a package reference expands before the requirement-constraint pass reduces it", func() {
		It("substitutes the package body and folds it into the same residual and hint", func() {
			bundle := memory.New("UTILMD", "FV2504")
			bundle.SetRC("2", ahbsdk.RCTrue)
			bundle.SetRC("3", ahbsdk.RCTrue)
			bundle.SetRC("4", ahbsdk.RCTrue)
			bundle.SetRC("8", ahbsdk.RCTrue)
			bundle.SetRC("9", ahbsdk.RCTrue)
			bundle.SetFC("901", true, "")
			bundle.SetHint("555", "foo")
			bundle.SetPackage("123", "[8] U [9]")

			res, err := ahbeval.Evaluate(ctx, "scenario-5", "Muss [2] U (([3] O [4]) U [123P])[901] U [555]",
				bundle.Logic(), ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
			Expect(err).NotTo(HaveOccurred())

			Expect(res.RCResult.Fulfilled).To(BeTrue())
			Expect(res.RCResult.FormatConstraintsExpression).To(PointTo(Equal("[901]")))
			Expect(res.RCResult.Hints).To(PointTo(Equal("foo")))
		})
	})

	Describe("scenario 6: a hint on either side of or/xor is nonsensical", func() {
		It("rejects the expression instead of silently coercing the hint to a truth value", func() {
			bundle := memory.New("UTILMD", "FV2504")
			bundle.SetRC("3", ahbsdk.RCTrue)
			bundle.SetHint("500", "a hint, not a gate")

			_, err := ahbeval.Evaluate(ctx, "scenario-6", "Muss [3] O [500]",
				bundle.Logic(), ahbsdk.EvaluationContext{}, ahbsdk.EvaluatableData{})
			Expect(err).To(HaveOccurred())
			Expect(ahberr.Code(err)).To(Equal(ahberr.CodeNonsensicalComposition))
		})
	})
})
