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

package rolling

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats describes the shape of a rolling-return distribution. StdDev is the
// sample standard deviation; Kurtosis is excess kurtosis relative to the
// normal distribution. Percentiles follow the same interpolated-quantile
// convention as the tail-risk engine.
type Stats struct {
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	StdDev   float64 `json:"stdDev"`
	Skew     float64 `json:"skew"`
	Kurtosis float64 `json:"kurtosis"`
	P10      float64 `json:"p10"`
	P25      float64 `json:"p25"`
	P75      float64 `json:"p75"`
	P90      float64 `json:"p90"`
}

// DescriptiveStats summarizes a rolling-return sample. Fails with
// ErrEmptySample on empty input; moment statistics of a single observation
// are NaN, which the caller renders as missing.
func DescriptiveStats(sample []float64) (*Stats, error) {
	if len(sample) == 0 {
		return nil, ErrEmptySample
	}

	return &Stats{
		Min:      floats.Min(sample),
		Max:      floats.Max(sample),
		Mean:     stat.Mean(sample, nil),
		Median:   quantileOf(sample, 0.5),
		StdDev:   stat.StdDev(sample, nil),
		Skew:     stat.Skew(sample, nil),
		Kurtosis: stat.ExKurtosis(sample, nil),
		P10:      quantileOf(sample, 0.1),
		P25:      quantileOf(sample, 0.25),
		P75:      quantileOf(sample, 0.75),
		P90:      quantileOf(sample, 0.9),
	}, nil
}
