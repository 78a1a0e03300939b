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
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/fundlens/navrisk/timeseries"
)

// Drawdowns computes the drawdown path of a NAV series: at each date the
// decline from the running historical peak, expressed as a decimal in
// [-1, 0]. The result has the same length and index as the input. The first
// element is always 0 and the path resets to 0 exactly when the NAV reaches
// a new running maximum. Single pass, no look-ahead.
func Drawdowns(nav *timeseries.TimeSeries) (*timeseries.TimeSeries, error) {
	if nav.Len() == 0 {
		return nil, timeseries.ErrEmptySeries
	}

	dates := make([]time.Time, nav.Len())
	vals := make([]float64, nav.Len())
	copy(dates, nav.Dates)

	peak := nav.Values[0]
	for ii, v := range nav.Values {
		if v > peak {
			peak = v
		}
		vals[ii] = (v - peak) / peak
	}

	return &timeseries.TimeSeries{
		Name:   nav.Name,
		Dates:  dates,
		Values: vals,
	}, nil
}

// MaxDrawdown returns the most negative value of a drawdown path; 0 when the
// NAV never declined from a prior peak
func MaxDrawdown(drawdowns *timeseries.TimeSeries) float64 {
	if drawdowns.Len() == 0 {
		return 0
	}
	return floats.Min(drawdowns.Values)
}
