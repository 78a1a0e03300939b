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

package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fundlens/navrisk/timeseries"
)

var ErrBadHeader = errors.New("first column of the NAV file must be the date")

const dateLayout = "2006-01-02"

// loadNavCSV reads a wide-format NAV file: the first column holds ISO dates,
// every other column one asset's NAV history. Blank cells are missing
// observations and are simply absent from that asset's series, so the
// returned series may have different lengths. Column order is preserved.
func loadNavCSV(path string) ([]*timeseries.TimeSeries, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	reader := csv.NewReader(fh)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s: no data rows", path)
	}

	header := rows[0]
	first := strings.ToLower(strings.TrimSpace(header[0]))
	if first != "date" && first != "data" {
		return nil, fmt.Errorf("%w: got %q", ErrBadHeader, header[0])
	}

	nAssets := len(header) - 1
	dates := make([][]time.Time, nAssets)
	values := make([][]float64, nAssets)

	for _, row := range rows[1:] {
		dt, err := time.Parse(dateLayout, strings.TrimSpace(row[0]))
		if err != nil {
			return nil, fmt.Errorf("cannot parse date %q: %w", row[0], err)
		}

		for col := 1; col < len(row) && col <= nAssets; col++ {
			cell := strings.TrimSpace(row[col])
			if cell == "" {
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				return nil, fmt.Errorf("cannot parse value %q for %s: %w", cell, header[col], err)
			}
			dates[col-1] = append(dates[col-1], dt)
			values[col-1] = append(values[col-1], v)
		}
	}

	series := make([]*timeseries.TimeSeries, 0, nAssets)
	for ii := 0; ii < nAssets; ii++ {
		ts, err := timeseries.New(strings.TrimSpace(header[ii+1]), dates[ii], values[ii])
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", header[ii+1], err)
		}
		series = append(series, ts)
	}

	return series, nil
}

// parseWeights parses a comma separated list of NAME=WEIGHT assignments
func parseWeights(arg string) (map[string]float64, error) {
	weights := make(map[string]float64)
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, val, found := strings.Cut(part, "=")
		if !found {
			return nil, fmt.Errorf("malformed weight %q, expected NAME=WEIGHT", part)
		}
		w, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed weight %q: %w", part, err)
		}
		weights[strings.TrimSpace(name)] = w
	}
	return weights, nil
}
