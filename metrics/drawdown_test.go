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

package metrics_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundlens/navrisk/metrics"
	"github.com/fundlens/navrisk/timeseries"
)

func navSeries(name string, values []float64) *timeseries.TimeSeries {
	start := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	dates := make([]time.Time, len(values))
	for ii := range values {
		dates[ii] = start.AddDate(0, ii, 0)
	}
	ts, err := timeseries.New(name, dates, values)
	Expect(err).To(BeNil())
	return ts
}

var _ = Describe("Drawdowns", func() {
	Context("with a NAV that peaks and recovers partially", func() {
		var path *timeseries.TimeSeries

		BeforeEach(func() {
			var err error
			path, err = metrics.Drawdowns(navSeries("VWCE", []float64{100, 110, 99, 105}))
			Expect(err).To(BeNil())
		})

		It("should match the input length and index", func() {
			Expect(path.Len()).To(Equal(4))
		})

		It("should start at zero", func() {
			Expect(path.Values[0]).Should(BeNumerically("~", 0.0))
		})

		It("should stay at zero while making new highs", func() {
			Expect(path.Values[1]).Should(BeNumerically("~", 0.0))
		})

		It("should measure the decline from the running peak", func() {
			Expect(path.Values[2]).Should(BeNumerically("~", -0.1))
			Expect(path.Values[3]).Should(BeNumerically("~", -0.04545454545, 1e-9))
		})

		It("should have -0.1 as the max drawdown", func() {
			Expect(metrics.MaxDrawdown(path)).Should(BeNumerically("~", -0.1))
		})
	})

	Context("with a monotonically increasing NAV", func() {
		It("should be all zeros", func() {
			path, err := metrics.Drawdowns(navSeries("VWCE", []float64{100, 101, 105, 110}))
			Expect(err).To(BeNil())
			for _, dd := range path.Values {
				Expect(dd).Should(BeNumerically("~", 0.0))
			}
			Expect(metrics.MaxDrawdown(path)).Should(BeNumerically("~", 0.0))
		})
	})

	Context("with a NAV that recovers to a new high after a decline", func() {
		It("should reset to zero at the new peak", func() {
			path, err := metrics.Drawdowns(navSeries("VWCE", []float64{100, 90, 101}))
			Expect(err).To(BeNil())
			Expect(path.Values[1]).Should(BeNumerically("~", -0.1))
			Expect(path.Values[2]).Should(BeNumerically("~", 0.0))
		})
	})

	Context("with an empty series", func() {
		It("should fail", func() {
			_, err := metrics.Drawdowns(&timeseries.TimeSeries{Name: "empty"})
			Expect(err).To(MatchError(timeseries.ErrEmptySeries))
		})
	})
})
