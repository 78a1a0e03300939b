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

// Package portfolio composes a synthetic weighted-portfolio NAV series from
// individual asset NAV histories.
package portfolio

import (
	"errors"
	"sort"
	"time"

	"github.com/fundlens/navrisk/timeseries"
)

// Name is the label of every composed portfolio series
const Name = "Portfolio"

var (
	ErrNoAssets      = errors.New("no asset carries a positive weight and data")
	ErrInvalidWeight = errors.New("weights must be non-negative")
)

// Weights maps asset name to target weight. Weights need not sum to one;
// Build normalizes over the retained assets.
type Weights map[string]float64

// Build composes the weighted portfolio NAV from the asset series. Assets
// with zero weight or no data are dropped and the remaining weights are
// renormalized to sum to one. Each retained series is rebased to 1.0 at its
// first observation, projected onto the union of all retained dates with
// forward-fill (then backward-fill for dates before an asset's history
// begins), and summed by weight. The composed series always starts at 1.0.
func Build(series []*timeseries.TimeSeries, weights Weights) (*timeseries.TimeSeries, error) {
	var retained []*timeseries.TimeSeries
	var weightSum float64
	retainedWeights := make([]float64, 0, len(series))

	for _, s := range series {
		w, ok := weights[s.Name]
		if !ok || w == 0 || s.Len() == 0 {
			continue
		}
		if w < 0 {
			return nil, ErrInvalidWeight
		}
		retained = append(retained, s)
		retainedWeights = append(retainedWeights, w)
		weightSum += w
	}

	if len(retained) == 0 {
		return nil, ErrNoAssets
	}

	for ii := range retainedWeights {
		retainedWeights[ii] /= weightSum
	}

	dates := unionDates(retained)

	out := &timeseries.TimeSeries{
		Name:   Name,
		Dates:  dates,
		Values: make([]float64, len(dates)),
	}

	for ii, s := range retained {
		rebased, err := s.Rebase()
		if err != nil {
			return nil, err
		}
		filled := fillOnto(rebased, dates)
		for jj, v := range filled {
			out.Values[jj] += retainedWeights[ii] * v
		}
	}

	return out, nil
}

// unionDates merges the date indices of all series into one ascending
// deduplicated index
func unionDates(series []*timeseries.TimeSeries) []time.Time {
	seen := make(map[int64]time.Time)
	for _, s := range series {
		for _, dt := range s.Dates {
			seen[dt.UnixNano()] = dt
		}
	}

	dates := make([]time.Time, 0, len(seen))
	for _, dt := range seen {
		dates = append(dates, dt)
	}
	sort.Slice(dates, func(i, j int) bool {
		return dates[i].Before(dates[j])
	})

	return dates
}

// fillOnto projects the series values onto the target index. Dates between
// observations take the last observed value; dates before the first
// observation take the first observed value.
func fillOnto(s *timeseries.TimeSeries, dates []time.Time) []float64 {
	out := make([]float64, len(dates))
	cursor := -1

	for ii, dt := range dates {
		for cursor+1 < s.Len() && !s.Dates[cursor+1].After(dt) {
			cursor++
		}
		if cursor < 0 {
			out[ii] = s.Values[0]
		} else {
			out[ii] = s.Values[cursor]
		}
	}

	return out
}
