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

package metrics

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// Metric set key names. Keys parameterized by the tail confidence carry a
// "(1-alpha)x100%" label and are built by the corresponding helper
// functions.
const (
	KeyAnnualizedReturn      = "Annualized Return (%)"
	KeyAnnualizedVolatility  = "Annualized Volatility (%)"
	KeyMaxDrawdown           = "Max Drawdown (%)"
	KeyUlcerIndex            = "Ulcer Index"
	KeyUlcerPerformanceIndex = "Ulcer Performance Index"
	KeyPitfallIndicator      = "Pitfall Indicator"
	KeyPenalizedRisk         = "Penalized Risk (%)"
	KeySerenityRatio         = "Serenity Ratio"
	KeyTotalReturn           = "Total Return (%)"
	KeyDownsideRisk          = "Downside Risk (%)"
	KeySharpeRatio           = "Sharpe Ratio"
	KeySortinoRatio          = "Sortino Ratio"
	KeyCalmarRatio           = "Calmar Ratio"
)

// KeyDaR builds the DaR key label for the given tail confidence
func KeyDaR(alpha float64) string {
	return fmt.Sprintf("DaR(%.0f%%) (%%)", (1.0-alpha)*100.0)
}

// KeyCDaR builds the CDaR key label for the given tail confidence
func KeyCDaR(alpha float64) string {
	return fmt.Sprintf("CDaR(%.0f%%) (%%)", (1.0-alpha)*100.0)
}

// KeyVaRReturns builds the VaR-on-returns key label for the given tail
// confidence
func KeyVaRReturns(alpha float64) string {
	return fmt.Sprintf("VaR_Returns(%.0f%%) (%%)", (1.0-alpha)*100.0)
}

// KeyCVaRReturns builds the CVaR-on-returns key label for the given tail
// confidence
func KeyCVaRReturns(alpha float64) string {
	return fmt.Sprintf("CVaR_Returns(%.0f%%) (%%)", (1.0-alpha)*100.0)
}

// Keys returns the fixed presentation order of the metric set for the given
// tail confidence. The order is part of the output contract; it is not an
// accident of map iteration.
func Keys(alpha float64) []string {
	return []string{
		KeyAnnualizedReturn,
		KeyAnnualizedVolatility,
		KeyMaxDrawdown,
		KeyUlcerIndex,
		KeyUlcerPerformanceIndex,
		KeyDaR(alpha),
		KeyCDaR(alpha),
		KeyPitfallIndicator,
		KeyPenalizedRisk,
		KeySerenityRatio,
		KeyTotalReturn,
		KeyDownsideRisk,
		KeySharpeRatio,
		KeySortinoRatio,
		KeyCalmarRatio,
		KeyVaRReturns(alpha),
		KeyCVaRReturns(alpha),
	}
}

// MetricSet is an ordered mapping from metric name to Outcome for a single
// asset over a single evaluation period. It is constructed once and never
// mutated afterwards.
type MetricSet struct {
	keys     []string
	outcomes map[string]Outcome
}

func newMetricSet(capacity int) *MetricSet {
	return &MetricSet{
		keys:     make([]string, 0, capacity),
		outcomes: make(map[string]Outcome, capacity),
	}
}

func (ms *MetricSet) add(key string, o Outcome) {
	if _, ok := ms.outcomes[key]; !ok {
		ms.keys = append(ms.keys, key)
	}
	ms.outcomes[key] = o
}

// Keys returns the metric names in presentation order
func (ms *MetricSet) Keys() []string {
	keys := make([]string, len(ms.keys))
	copy(keys, ms.keys)
	return keys
}

// Get returns the outcome for the named metric
func (ms *MetricSet) Get(key string) (Outcome, bool) {
	o, ok := ms.outcomes[key]
	return o, ok
}

// Len returns the number of metrics in the set
func (ms *MetricSet) Len() int {
	return len(ms.keys)
}

// MarshalJSON serializes the set as an object preserving key order
func (ms *MetricSet) MarshalJSON() ([]byte, error) {
	buf := []byte{'{'}
	for ii, key := range ms.keys {
		if ii > 0 {
			buf = append(buf, ',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(ms.outcomes[key])
		if err != nil {
			return nil, err
		}
		buf = append(buf, k...)
		buf = append(buf, ':')
		buf = append(buf, v...)
	}
	return append(buf, '}'), nil
}

// GetAllMetrics computes the full metric set in the fixed presentation
// order for the given tail confidence. Percent-scaled entries hold the
// decimal value x100 (the Ulcer Index and Penalized Risk included, matching
// the reporting convention); ratios stay as raw decimals.
func (c *Calculator) GetAllMetrics(alpha float64) *MetricSet {
	ms := newMetricSet(17)

	ms.add(KeyAnnualizedReturn, c.AnnualizedReturn().Scale(100))
	ms.add(KeyAnnualizedVolatility, c.AnnualizedVolatility().Scale(100))
	ms.add(KeyMaxDrawdown, Value(c.MaxDrawdown()).Scale(100))
	ms.add(KeyUlcerIndex, Value(c.UlcerIndex()).Scale(100))
	ms.add(KeyUlcerPerformanceIndex, c.UlcerPerformanceIndex())
	ms.add(KeyDaR(alpha), c.DaR(alpha).Scale(100))
	ms.add(KeyCDaR(alpha), c.CDaR(alpha).Scale(100))
	ms.add(KeyPitfallIndicator, c.PitfallIndicator(alpha))
	ms.add(KeyPenalizedRisk, c.PenalizedRisk(alpha).Scale(100))
	ms.add(KeySerenityRatio, c.SerenityRatio(alpha))
	ms.add(KeyTotalReturn, Value(c.TotalReturn()).Scale(100))
	ms.add(KeyDownsideRisk, Value(c.DownsideRisk()).Scale(100))
	ms.add(KeySharpeRatio, c.SharpeRatio())
	ms.add(KeySortinoRatio, c.SortinoRatio())
	ms.add(KeyCalmarRatio, c.CalmarRatio())
	ms.add(KeyVaRReturns(alpha), c.VaRReturns(alpha).Scale(100))
	ms.add(KeyCVaRReturns(alpha), c.CVaRReturns(alpha).Scale(100))

	return ms
}

// UndefinedSet builds a metric set with every entry undefined for the given
// reason. The batch driver substitutes it when an asset's computation fails
// so the remaining assets still report.
func UndefinedSet(alpha float64, reason string) *MetricSet {
	keys := Keys(alpha)
	ms := newMetricSet(len(keys))
	for _, key := range keys {
		ms.add(key, Undefined(reason))
	}
	return ms
}
