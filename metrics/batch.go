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
	"context"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fundlens/navrisk/timeseries"
)

// BatchOptions carries the caller-supplied computation parameters. The
// engine has no hidden defaults beyond these.
type BatchOptions struct {
	// Factor annualizes periodic volatility, e.g. sqrt(12) for monthly data
	Factor float64

	// RiskFree is the periodic risk-free rate
	RiskFree float64

	// Alpha is the tail confidence fraction, e.g. 0.05 for the worst 5%
	Alpha float64
}

// AssetMetrics is the per-asset result of a batch computation. When Err is
// non-nil the metric set holds undefined entries carrying the cause.
type AssetMetrics struct {
	Name    string
	Metrics *MetricSet
	Err     error
}

// ComputeAll computes the full metric set for every NAV series. Each asset
// is independent so the work fans out across goroutines, one result slot
// per input index, preserving the caller's ordering. A per-asset failure
// (too little data, no index overlap) is converted into an undefined metric
// set and logged; it never aborts the other assets.
func ComputeAll(ctx context.Context, navs []*timeseries.TimeSeries, opts BatchOptions) []AssetMetrics {
	results := make([]AssetMetrics, len(navs))

	g, ctx := errgroup.WithContext(ctx)
	for ii, nav := range navs {
		ii, nav := ii, nav
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[ii] = AssetMetrics{
					Name:    nav.Name,
					Metrics: UndefinedSet(opts.Alpha, err.Error()),
					Err:     err,
				}
				return nil
			}
			results[ii] = computeOne(nav, opts)
			return nil
		})
	}

	// workers never return errors; failures are recorded per slot
	_ = g.Wait()

	return results
}

func computeOne(nav *timeseries.TimeSeries, opts BatchOptions) AssetMetrics {
	calc, err := NewCalculatorFromNav(nav, opts.Factor, opts.RiskFree)
	if err != nil {
		log.Warn().Err(err).Str("Asset", nav.Name).Msg("skipping asset metrics")
		return AssetMetrics{
			Name:    nav.Name,
			Metrics: UndefinedSet(opts.Alpha, err.Error()),
			Err:     err,
		}
	}

	return AssetMetrics{
		Name:    nav.Name,
		Metrics: calc.GetAllMetrics(opts.Alpha),
	}
}

// NewCalculatorFromNav derives the periodic return series from the NAV
// series and constructs a calculator. Convenience wrapper for callers that
// start from raw NAV histories.
func NewCalculatorFromNav(nav *timeseries.TimeSeries, factor, riskFree float64) (*Calculator, error) {
	rets, err := nav.Returns()
	if err != nil {
		return nil, err
	}

	return NewCalculator(nav, rets, factor, riskFree)
}
