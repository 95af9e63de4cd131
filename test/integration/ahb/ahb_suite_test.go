// SPDX-License-Identifier: Apache-2.0

//go:build integration

package ahb_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

func TestAHB(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "AHB Condition-Expression Engine Integration Suite")
}
