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
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
)

// TimeSeries stores a single column of float64 values organized by date.
// Dates and Values are parallel slices; dates are strictly increasing and
// unique. A NAV series holds positive price levels; a return series holds
// periodic fractional changes and is one element shorter than the NAV
// series it was derived from.
type TimeSeries struct {
	Name   string
	Dates  []time.Time
	Values []float64
}

// New creates a TimeSeries after validating the series invariants:
// dates and values have equal length and dates are strictly increasing.
func New(name string, dates []time.Time, values []float64) (*TimeSeries, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("%w: %d dates vs %d values", ErrLengthMismatch, len(dates), len(values))
	}

	for ii := 1; ii < len(dates); ii++ {
		if !dates[ii-1].Before(dates[ii]) {
			return nil, fmt.Errorf("%w: index %d", ErrUnsortedDates, ii)
		}
	}

	return &TimeSeries{
		Name:   name,
		Dates:  dates,
		Values: values,
	}, nil
}

// Len returns the number of observations in the series
func (ts *TimeSeries) Len() int {
	return len(ts.Dates)
}

// Start returns the first date in the series
func (ts *TimeSeries) Start() time.Time {
	if len(ts.Dates) == 0 {
		return time.Time{}
	}
	return ts.Dates[0]
}

// End returns the last date in the series
func (ts *TimeSeries) End() time.Time {
	if len(ts.Dates) == 0 {
		return time.Time{}
	}
	return ts.Dates[len(ts.Dates)-1]
}

// First returns the first value in the series
func (ts *TimeSeries) First() float64 {
	return ts.Values[0]
}

// Last returns the last value in the series
func (ts *TimeSeries) Last() float64 {
	return ts.Values[len(ts.Values)-1]
}

// Copy creates a deep copy of the series
func (ts *TimeSeries) Copy() *TimeSeries {
	ts2 := &TimeSeries{
		Name:   ts.Name,
		Dates:  make([]time.Time, len(ts.Dates)),
		Values: make([]float64, len(ts.Values)),
	}
	copy(ts2.Dates, ts.Dates)
	copy(ts2.Values, ts.Values)
	return ts2
}

// Returns derives the periodic fractional return series r_t = v_t/v_{t-1} - 1.
// The result is indexed on the dates of the second through last observation
// and is therefore one element shorter than the source series. Returns an
// error when the source has fewer than two observations.
func (ts *TimeSeries) Returns() (*TimeSeries, error) {
	if ts.Len() < 2 {
		return nil, fmt.Errorf("%w: need at least 2 observations to compute returns", ErrEmptySeries)
	}

	dates := make([]time.Time, ts.Len()-1)
	vals := make([]float64, ts.Len()-1)
	for ii := 1; ii < ts.Len(); ii++ {
		dates[ii-1] = ts.Dates[ii]
		vals[ii-1] = ts.Values[ii]/ts.Values[ii-1] - 1.0
	}

	return &TimeSeries{
		Name:   ts.Name,
		Dates:  dates,
		Values: vals,
	}, nil
}

// Rebase returns a copy of the series divided by its first value so that the
// series starts at 1.0. Total return is invariant under rebasing.
func (ts *TimeSeries) Rebase() (*TimeSeries, error) {
	if ts.Len() == 0 {
		return nil, ErrEmptySeries
	}

	ts2 := ts.Copy()
	first := ts2.Values[0]
	for ii := range ts2.Values {
		ts2.Values[ii] /= first
	}
	return ts2, nil
}

// Trim returns a copy of the series restricted to the date range
// [begin, end] (inclusive). An inverted range yields an empty series.
func (ts *TimeSeries) Trim(begin, end time.Time) *TimeSeries {
	ts2 := &TimeSeries{Name: ts.Name}
	if end.Before(begin) || ts.Len() == 0 {
		return ts2
	}

	beginIdx := sort.Search(len(ts.Dates), func(i int) bool {
		return !ts.Dates[i].Before(begin)
	})
	endIdx := sort.Search(len(ts.Dates), func(i int) bool {
		return ts.Dates[i].After(end)
	})

	ts2.Dates = append(ts2.Dates, ts.Dates[beginIdx:endIdx]...)
	ts2.Values = append(ts2.Values, ts.Values[beginIdx:endIdx]...)
	return ts2
}

// Table prints an ASCII formatted table of the series to a string
func (ts *TimeSeries) Table() string {
	if ts.Len() == 0 {
		return "<NO DATA>"
	}

	s := &strings.Builder{}
	table := tablewriter.NewWriter(s)
	table.SetHeader([]string{"Date", ts.Name})
	footer := []string{"Num Rows", fmt.Sprintf("%d", ts.Len())}
	table.SetFooter(footer)
	table.SetBorder(false)

	for ii, dt := range ts.Dates {
		table.Append([]string{dt.Format("2006-01-02"), fmt.Sprintf("%.4f", ts.Values[ii])})
	}

	table.Render()
	return s.String()
}
