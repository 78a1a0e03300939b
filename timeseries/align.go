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

package timeseries

import (
	"fmt"
)

// AlignedPair holds a NAV series and its derived return series restricted to
// their common date index. Both series are guaranteed non-empty, equal
// length, and indexed on exactly the same ascending dates.
type AlignedPair struct {
	Nav     *TimeSeries
	Returns *TimeSeries
}

// Align restricts nav and returns to the intersection of their date sets,
// sorted ascending. Dates present in only one of the two series are dropped.
// Returns ErrNoOverlap when the intersection is empty. Every downstream
// metric computation assumes the postcondition established here.
func Align(nav, returns *TimeSeries) (*AlignedPair, error) {
	if nav.Len() == 0 || returns.Len() == 0 {
		return nil, fmt.Errorf("cannot align: %w", ErrEmptySeries)
	}

	retDates := make(map[int64]int, returns.Len())
	for ii, dt := range returns.Dates {
		retDates[dt.UnixNano()] = ii
	}

	alignedNav := &TimeSeries{Name: nav.Name}
	alignedRet := &TimeSeries{Name: returns.Name}

	for ii, dt := range nav.Dates {
		jj, ok := retDates[dt.UnixNano()]
		if !ok {
			continue
		}
		alignedNav.Dates = append(alignedNav.Dates, dt)
		alignedNav.Values = append(alignedNav.Values, nav.Values[ii])
		alignedRet.Dates = append(alignedRet.Dates, returns.Dates[jj])
		alignedRet.Values = append(alignedRet.Values, returns.Values[jj])
	}

	if alignedNav.Len() == 0 {
		return nil, fmt.Errorf("cannot align %q: %w", nav.Name, ErrNoOverlap)
	}

	return &AlignedPair{
		Nav:     alignedNav,
		Returns: alignedRet,
	}, nil
}
