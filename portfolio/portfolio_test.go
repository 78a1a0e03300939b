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

package portfolio_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundlens/navrisk/portfolio"
	"github.com/fundlens/navrisk/timeseries"
)

func navSeries(name string, start time.Time, values []float64) *timeseries.TimeSeries {
	dates := make([]time.Time, len(values))
	for ii := range values {
		dates[ii] = start.AddDate(0, ii, 0)
	}
	ts, err := timeseries.New(name, dates, values)
	Expect(err).To(BeNil())
	return ts
}

var _ = Describe("Build", func() {
	var start time.Time

	BeforeEach(func() {
		start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	})

	Context("with a single asset at weight 1", func() {
		It("should reproduce the rebased asset", func() {
			nav := navSeries("A", start, []float64{200, 220, 210})

			composed, err := portfolio.Build([]*timeseries.TimeSeries{nav}, portfolio.Weights{"A": 1.0})
			Expect(err).To(BeNil())
			Expect(composed.Name).To(Equal(portfolio.Name))
			Expect(composed.Len()).To(Equal(3))
			Expect(composed.Values[0]).Should(BeNumerically("~", 1.0, 1e-12))
			Expect(composed.Values[1]).Should(BeNumerically("~", 1.1, 1e-12))
			Expect(composed.Values[2]).Should(BeNumerically("~", 1.05, 1e-12))
		})
	})

	Context("with weights that do not sum to one", func() {
		It("should normalize over the retained assets", func() {
			a := navSeries("A", start, []float64{100, 120})
			b := navSeries("B", start, []float64{50, 55})

			// 0.3 and 0.2 normalize to 0.6 and 0.4
			composed, err := portfolio.Build([]*timeseries.TimeSeries{a, b}, portfolio.Weights{"A": 0.3, "B": 0.2})
			Expect(err).To(BeNil())
			Expect(composed.Values[0]).Should(BeNumerically("~", 1.0, 1e-12))
			Expect(composed.Values[1]).Should(BeNumerically("~", 0.6*1.2+0.4*1.1, 1e-12))
		})
	})

	Context("with zero-weight and unknown assets", func() {
		It("should drop them before normalizing", func() {
			a := navSeries("A", start, []float64{100, 110})
			b := navSeries("B", start, []float64{50, 60})
			c := navSeries("C", start, []float64{10, 30})

			composed, err := portfolio.Build(
				[]*timeseries.TimeSeries{a, b, c},
				portfolio.Weights{"A": 0.5, "B": 0.0},
			)
			Expect(err).To(BeNil())
			// only A is retained so the composite is A rebased
			Expect(composed.Values[1]).Should(BeNumerically("~", 1.1, 1e-12))
		})
	})

	Context("with assets starting on different dates", func() {
		It("should back-fill the late starter at its first rebased value", func() {
			a := navSeries("A", start, []float64{100, 100, 100, 100})
			b := navSeries("B", start.AddDate(0, 2, 0), []float64{50, 55})

			composed, err := portfolio.Build(
				[]*timeseries.TimeSeries{a, b},
				portfolio.Weights{"A": 0.5, "B": 0.5},
			)
			Expect(err).To(BeNil())
			Expect(composed.Len()).To(Equal(4))
			// before B starts both legs are flat at 1.0
			Expect(composed.Values[0]).Should(BeNumerically("~", 1.0, 1e-12))
			Expect(composed.Values[1]).Should(BeNumerically("~", 1.0, 1e-12))
			// B gains 10% in the final period
			Expect(composed.Values[3]).Should(BeNumerically("~", 0.5*1.0+0.5*1.1, 1e-12))
		})
	})

	Context("with dates missing from one asset", func() {
		It("should forward-fill the gap", func() {
			a := navSeries("A", start, []float64{100, 110, 121})
			// B has no observation for the middle month
			bDates := []time.Time{start, start.AddDate(0, 2, 0)}
			b, err := timeseries.New("B", bDates, []float64{50, 50})
			Expect(err).To(BeNil())

			composed, err := portfolio.Build(
				[]*timeseries.TimeSeries{a, b},
				portfolio.Weights{"A": 0.5, "B": 0.5},
			)
			Expect(err).To(BeNil())
			Expect(composed.Len()).To(Equal(3))
			// B carries its last value through the missing month
			Expect(composed.Values[1]).Should(BeNumerically("~", 0.5*1.1+0.5*1.0, 1e-12))
		})
	})

	Context("with no retained assets", func() {
		It("should fail when every weight is zero", func() {
			a := navSeries("A", start, []float64{100, 110})
			_, err := portfolio.Build([]*timeseries.TimeSeries{a}, portfolio.Weights{"A": 0.0})
			Expect(err).To(MatchError(portfolio.ErrNoAssets))
		})

		It("should fail on an empty asset list", func() {
			_, err := portfolio.Build(nil, portfolio.Weights{"A": 1.0})
			Expect(err).To(MatchError(portfolio.ErrNoAssets))
		})
	})

	Context("with a negative weight", func() {
		It("should fail with ErrInvalidWeight", func() {
			a := navSeries("A", start, []float64{100, 110})
			_, err := portfolio.Build([]*timeseries.TimeSeries{a}, portfolio.Weights{"A": -0.5})
			Expect(err).To(MatchError(portfolio.ErrInvalidWeight))
		})
	})
})
