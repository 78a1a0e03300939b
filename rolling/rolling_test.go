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
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundlens/navrisk/rolling"
	"github.com/fundlens/navrisk/timeseries"
)

// growthSeries builds a monthly NAV with constant periodic growth g
func growthSeries(name string, n int, g float64) *timeseries.TimeSeries {
	start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, n)
	values := make([]float64, n)
	for ii := 0; ii < n; ii++ {
		dates[ii] = start.AddDate(0, ii, 0)
		values[ii] = math.Pow(1.0+g, float64(ii))
	}
	ts, err := timeseries.New(name, dates, values)
	Expect(err).To(BeNil())
	return ts
}

var _ = Describe("Returns", func() {
	Context("with constant 1% monthly growth", func() {
		var series *timeseries.TimeSeries

		BeforeEach(func() {
			series = growthSeries("STEADY", 25, 0.01)
		})

		It("should shorten the series by the window length", func() {
			rolled, err := rolling.Returns(series, 1, 12)
			Expect(err).To(BeNil())
			Expect(rolled.Len()).To(Equal(13))
		})

		It("should annualize every window to the same constant", func() {
			rolled, err := rolling.Returns(series, 1, 12)
			Expect(err).To(BeNil())
			expected := math.Pow(1.01, 12) - 1.0
			for _, v := range rolled.Values {
				Expect(v).Should(BeNumerically("~", expected, 1e-9))
			}
		})

		It("should produce the same annualized rate for a 2-year window", func() {
			rolled, err := rolling.Returns(series, 2, 12)
			Expect(err).To(BeNil())
			Expect(rolled.Len()).To(Equal(1))
			Expect(rolled.Values[0]).Should(BeNumerically("~", math.Pow(1.01, 12)-1.0, 1e-9))
		})

		It("should stamp each value on the window-end date", func() {
			rolled, err := rolling.Returns(series, 1, 12)
			Expect(err).To(BeNil())
			Expect(rolled.Dates[0]).To(Equal(series.Dates[12]))
		})
	})

	Context("with a series no longer than the window", func() {
		It("should yield an empty series, not an error", func() {
			rolled, err := rolling.Returns(growthSeries("SHORT", 12, 0.01), 1, 12)
			Expect(err).To(BeNil())
			Expect(rolled.Len()).To(Equal(0))
		})
	})

	Context("with invalid parameters", func() {
		It("should reject a non-positive window", func() {
			_, err := rolling.Returns(growthSeries("X", 25, 0.01), 0, 12)
			Expect(err).To(MatchError(rolling.ErrInvalidWindow))
		})

		It("should reject non-positive periods per year", func() {
			_, err := rolling.Returns(growthSeries("X", 25, 0.01), 1, 0)
			Expect(err).To(MatchError(rolling.ErrInvalidWindow))
		})
	})
})

var _ = Describe("MinMedianByWindow", func() {
	Context("with 25 monthly observations", func() {
		var profile *rolling.Profile

		BeforeEach(func() {
			var err error
			profile, err = rolling.MinMedianByWindow(growthSeries("STEADY", 25, 0.01), 20, 12)
			Expect(err).To(BeNil())
		})

		It("should compute only the windows with enough data", func() {
			// 25 points supports 1-year (needs 13) and 2-year (needs 25) windows
			Expect(profile.Windows).To(Equal([]int{1, 2}))
		})

		It("should report min and median per window", func() {
			expected := math.Pow(1.01, 12) - 1.0
			Expect(profile.Min[0]).Should(BeNumerically("~", expected, 1e-9))
			Expect(profile.Median[0]).Should(BeNumerically("~", expected, 1e-9))
		})

		It("should retain the full sample for each window", func() {
			Expect(profile.Samples[1]).To(HaveLen(13))
			Expect(profile.Samples[2]).To(HaveLen(1))
		})

		It("should carry the asset name", func() {
			Expect(profile.Asset).To(Equal("STEADY"))
		})
	})

	Context("with a mixed up-and-down series", func() {
		It("should report the worst window as the minimum", func() {
			// 13 points: one year of flat growth then a crash in the last month
			start := time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC)
			dates := make([]time.Time, 14)
			values := make([]float64, 14)
			for ii := 0; ii < 14; ii++ {
				dates[ii] = start.AddDate(0, ii, 0)
				values[ii] = 100
			}
			values[13] = 50
			series, err := timeseries.New("CRASH", dates, values)
			Expect(err).To(BeNil())

			profile, err := rolling.MinMedianByWindow(series, 20, 12)
			Expect(err).To(BeNil())
			Expect(profile.Windows).To(Equal([]int{1}))
			Expect(profile.Min[0]).Should(BeNumerically("~", -0.5, 1e-9))
			Expect(profile.Min[0]).Should(BeNumerically("<=", profile.Median[0]))
		})
	})

	Context("with too short a series", func() {
		It("should yield an empty profile", func() {
			profile, err := rolling.MinMedianByWindow(growthSeries("TINY", 5, 0.01), 20, 12)
			Expect(err).To(BeNil())
			Expect(profile.Windows).To(BeEmpty())
		})
	})
})
