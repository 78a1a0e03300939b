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

package timeseries_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fundlens/navrisk/timeseries"
)

var _ = Describe("Align", func() {
	var start time.Time

	BeforeEach(func() {
		start = time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	})

	Context("with a NAV series and its own derived returns", func() {
		It("should keep the dates from the second observation onward", func() {
			nav, err := timeseries.New("VWCE", monthlyDates(start, 4), []float64{100, 110, 99, 105})
			Expect(err).To(BeNil())
			rets, err := nav.Returns()
			Expect(err).To(BeNil())

			pair, err := timeseries.Align(nav, rets)
			Expect(err).To(BeNil())
			Expect(pair.Nav.Len()).To(Equal(3))
			Expect(pair.Returns.Len()).To(Equal(3))
			Expect(pair.Nav.Dates).To(Equal(rets.Dates))
			Expect(pair.Nav.First()).Should(BeNumerically("~", 110))
		})
	})

	Context("with partially overlapping indices", func() {
		It("should restrict both series to the common dates", func() {
			nav, err := timeseries.New("A", monthlyDates(start, 4), []float64{1, 2, 3, 4})
			Expect(err).To(BeNil())
			other, err := timeseries.New("B", monthlyDates(start.AddDate(0, 2, 0), 4), []float64{10, 20, 30, 40})
			Expect(err).To(BeNil())

			pair, err := timeseries.Align(nav, other)
			Expect(err).To(BeNil())
			Expect(pair.Nav.Len()).To(Equal(2))
			Expect(pair.Nav.Values).To(Equal([]float64{3, 4}))
			Expect(pair.Returns.Values).To(Equal([]float64{10, 20}))
		})
	})

	Context("with disjoint indices", func() {
		It("should fail with ErrNoOverlap", func() {
			nav, err := timeseries.New("A", monthlyDates(start, 2), []float64{1, 2})
			Expect(err).To(BeNil())
			other, err := timeseries.New("B", monthlyDates(start.AddDate(5, 0, 0), 2), []float64{10, 20})
			Expect(err).To(BeNil())

			_, err = timeseries.Align(nav, other)
			Expect(err).To(MatchError(timeseries.ErrNoOverlap))
		})
	})

	Context("with an empty series", func() {
		It("should fail with ErrEmptySeries", func() {
			nav, err := timeseries.New("A", monthlyDates(start, 2), []float64{1, 2})
			Expect(err).To(BeNil())
			empty, err := timeseries.New("B", nil, nil)
			Expect(err).To(BeNil())

			_, err = timeseries.Align(nav, empty)
			Expect(err).To(MatchError(timeseries.ErrEmptySeries))
		})
	})
})
