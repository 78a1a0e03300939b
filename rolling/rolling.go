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

// Package rolling computes annualized rolling-window returns and the
// distribution summaries of the rolling-return samples across a sweep of
// window lengths.
package rolling

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/fundlens/navrisk/metrics"
	"github.com/fundlens/navrisk/timeseries"
)

// DefaultPeriodsPerYear assumes monthly periodicity; callers with other
// sampling supply their own
const DefaultPeriodsPerYear = 12

// DefaultMaxWindowYears is the default upper bound of the window sweep
const DefaultMaxWindowYears = 20

var (
	ErrInvalidWindow = errors.New("window length and periods per year must be positive")
	ErrEmptySample   = errors.New("sample is empty")
)

// Returns computes the annualized rolling return over a window of
// windowYears*periodsPerYear periods: (v_i / v_{i-w})^(ppy/w) - 1 for every
// position i >= w. The result is shorter than the input by w entries; an
// input no longer than the window yields an empty series, not an error.
func Returns(series *timeseries.TimeSeries, windowYears, periodsPerYear int) (*timeseries.TimeSeries, error) {
	if windowYears < 1 || periodsPerYear < 1 {
		return nil, fmt.Errorf("%w: windowYears=%d periodsPerYear=%d", ErrInvalidWindow, windowYears, periodsPerYear)
	}

	window := windowYears * periodsPerYear
	out := &timeseries.TimeSeries{Name: series.Name}
	if series.Len() <= window {
		return out, nil
	}

	n := series.Len() - window
	out.Dates = make([]time.Time, n)
	out.Values = make([]float64, n)
	exponent := float64(periodsPerYear) / float64(window)

	for ii := window; ii < series.Len(); ii++ {
		out.Dates[ii-window] = series.Dates[ii]
		out.Values[ii-window] = math.Pow(series.Values[ii]/series.Values[ii-window], exponent) - 1.0
	}

	return out, nil
}

// Profile summarizes the rolling-return distributions of one asset across a
// sweep of window lengths. Windows, Min, and Median are parallel slices in
// ascending window order; Samples maps each computed window to its full
// ordered rolling-return sample for distribution displays. Windows with too
// little data are simply absent - consumers must not assume a contiguous
// 1..N range.
type Profile struct {
	Asset   string
	Windows []int
	Min     []float64
	Median  []float64
	Samples map[int][]float64
}

// MinMedianByWindow sweeps window lengths from 1 to maxWindowYears. A
// window of w years requires at least w*periodsPerYear+1 observations;
// windows below that are skipped, not errors - a short series legitimately
// has fewer analyzable windows.
func MinMedianByWindow(series *timeseries.TimeSeries, maxWindowYears, periodsPerYear int) (*Profile, error) {
	if maxWindowYears < 1 || periodsPerYear < 1 {
		return nil, fmt.Errorf("%w: maxWindowYears=%d periodsPerYear=%d", ErrInvalidWindow, maxWindowYears, periodsPerYear)
	}

	profile := &Profile{
		Asset:   series.Name,
		Samples: make(map[int][]float64),
	}

	for windowYears := 1; windowYears <= maxWindowYears; windowYears++ {
		if series.Len() < windowYears*periodsPerYear+1 {
			continue
		}

		rolled, err := Returns(series, windowYears, periodsPerYear)
		if err != nil {
			return nil, err
		}
		if rolled.Len() == 0 {
			continue
		}

		profile.Windows = append(profile.Windows, windowYears)
		profile.Min = append(profile.Min, minOf(rolled.Values))
		profile.Median = append(profile.Median, quantileOf(rolled.Values, 0.5))
		sample := make([]float64, rolled.Len())
		copy(sample, rolled.Values)
		profile.Samples[windowYears] = sample
	}

	return profile, nil
}

func minOf(vals []float64) float64 {
	min := vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// quantileOf evaluates the interpolated quantile, degrading to the single
// observation for one-point samples
func quantileOf(vals []float64, alpha float64) float64 {
	if len(vals) == 1 {
		return vals[0]
	}
	q, err := metrics.Quantile(vals, alpha)
	if err != nil {
		return math.NaN()
	}
	return q
}
