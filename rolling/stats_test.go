// Copyright 2023
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package rolling_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundlens/navrisk/rolling"
)

var _ = Describe("DescriptiveStats", func() {
	Context("with a symmetric sample", func() {
		var stats *rolling.Stats

		BeforeEach(func() {
			var err error
			stats, err = rolling.DescriptiveStats([]float64{1, 2, 3, 4, 5})
			Expect(err).To(BeNil())
		})

		It("should report the extremes", func() {
			Expect(stats.Min).Should(BeNumerically("~", 1.0))
			Expect(stats.Max).Should(BeNumerically("~", 5.0))
		})

		It("should report mean and median", func() {
			Expect(stats.Mean).Should(BeNumerically("~", 3.0))
			Expect(stats.Median).Should(BeNumerically("~", 3.0))
		})

		It("should report the sample standard deviation", func() {
			Expect(stats.StdDev).Should(BeNumerically("~", math.Sqrt(2.5), 1e-9))
		})

		It("should report zero skew", func() {
			Expect(stats.Skew).Should(BeNumerically("~", 0.0, 1e-9))
		})

		It("should interpolate the percentiles", func() {
			Expect(stats.P10).Should(BeNumerically("~", 1.4, 1e-9))
			Expect(stats.P25).Should(BeNumerically("~", 2.0, 1e-9))
			Expect(stats.P75).Should(BeNumerically("~", 4.0, 1e-9))
			Expect(stats.P90).Should(BeNumerically("~", 4.6, 1e-9))
		})
	})

	Context("with a single observation", func() {
		It("should degrade percentiles to the observation itself", func() {
			stats, err := rolling.DescriptiveStats([]float64{0.07})
			Expect(err).To(BeNil())
			Expect(stats.Min).Should(BeNumerically("~", 0.07))
			Expect(stats.Max).Should(BeNumerically("~", 0.07))
			Expect(stats.Median).Should(BeNumerically("~", 0.07))
			Expect(stats.P10).Should(BeNumerically("~", 0.07))
		})
	})

	Context("with an empty sample", func() {
		It("should fail with ErrEmptySample", func() {
			_, err := rolling.DescriptiveStats(nil)
			Expect(err).To(MatchError(rolling.ErrEmptySample))
		})
	})
})
