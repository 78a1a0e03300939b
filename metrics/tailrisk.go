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
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Quantile computes the alpha-quantile of a sample using linear
// interpolation between order statistics, inclusive of both ends
// (Hyndman-Fan definition 7, the convention used by most reference
// statistics tools). Applied to periodic returns this is VaR; applied to a
// drawdown path it is DaR. Samples with fewer than two observations fail
// with ErrInsufficientData.
func Quantile(sample []float64, alpha float64) (float64, error) {
	if alpha < 0 || alpha > 1 {
		return math.NaN(), fmt.Errorf("%w: got %f", ErrInvalidAlpha, alpha)
	}
	if len(sample) < 2 {
		return math.NaN(), fmt.Errorf("%w: quantile needs at least 2 observations, got %d", ErrInsufficientData, len(sample))
	}

	sorted := make([]float64, len(sample))
	copy(sorted, sample)
	sort.Float64s(sorted)

	h := alpha * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	if lo == len(sorted)-1 {
		return sorted[lo], nil
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo]), nil
}

// ConditionalQuantile computes the arithmetic mean of all sample values at
// or below the alpha-quantile: CVaR on returns, CDaR on drawdowns. When no
// sample value lies at or below the quantile (no losses exist and the
// quantile is non-negative) the tail is empty and the result is defined as
// 0.0.
func ConditionalQuantile(sample []float64, alpha float64) (float64, error) {
	q, err := Quantile(sample, alpha)
	if err != nil {
		return math.NaN(), err
	}

	tail := make([]float64, 0, len(sample))
	for _, v := range sample {
		if v <= q {
			tail = append(tail, v)
		}
	}

	if len(tail) == 0 {
		return 0.0, nil
	}

	return stat.Mean(tail, nil), nil
}
