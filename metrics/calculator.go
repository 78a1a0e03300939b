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
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/fundlens/navrisk/timeseries"
)

const daysPerYear = 365.25

// Calculator computes risk and performance metrics for a single asset over
// a single evaluation period. It is constructed from an aligned NAV/return
// pair, an annualization factor (e.g. sqrt(12) for monthly data - the
// calculator never infers periodicity; resample irregular series upstream),
// and a periodic risk-free rate. All metric methods are pure functions of
// the stored state.
type Calculator struct {
	nav      *timeseries.TimeSeries
	returns  *timeseries.TimeSeries
	ddPath   *timeseries.TimeSeries
	factor   float64
	riskFree float64
}

// NewCalculator aligns the NAV and return series on their common dates,
// re-anchors the NAV observation that immediately precedes the first common
// date (it is the base of the first return and belongs to the evaluation
// period), and precomputes the drawdown path. Fails when either series is
// empty after alignment.
func NewCalculator(nav, returns *timeseries.TimeSeries, factor, riskFree float64) (*Calculator, error) {
	pair, err := timeseries.Align(nav, returns)
	if err != nil {
		return nil, fmt.Errorf("cannot compute metrics: %w", err)
	}

	alignedNav := pair.Nav
	if anchor := anchorIndex(nav, alignedNav.Dates[0]); anchor >= 0 {
		alignedNav = &timeseries.TimeSeries{
			Name:   alignedNav.Name,
			Dates:  append([]time.Time{nav.Dates[anchor]}, alignedNav.Dates...),
			Values: append([]float64{nav.Values[anchor]}, alignedNav.Values...),
		}
	}

	ddPath, err := Drawdowns(alignedNav)
	if err != nil {
		return nil, err
	}

	return &Calculator{
		nav:      alignedNav,
		returns:  pair.Returns,
		ddPath:   ddPath,
		factor:   factor,
		riskFree: riskFree,
	}, nil
}

// anchorIndex locates the NAV observation immediately before the first
// aligned date; -1 when the aligned series already starts at the first NAV
// observation
func anchorIndex(nav *timeseries.TimeSeries, firstAligned time.Time) int {
	idx := sort.Search(nav.Len(), func(i int) bool {
		return !nav.Dates[i].Before(firstAligned)
	})
	return idx - 1
}

// DrawdownPath returns the precomputed drawdown path of the NAV series
func (c *Calculator) DrawdownPath() *timeseries.TimeSeries {
	return c.ddPath
}

// TotalReturn computes NAV_last / NAV_first - 1
func (c *Calculator) TotalReturn() float64 {
	return c.nav.Last()/c.nav.First() - 1.0
}

// AnnualizedReturn computes the geometric annualized return
// (1 + total)^(1/years) - 1 using a 365.25-day year. Undefined when the
// period spans no time or when the growth factor is negative, since a
// negative base with a fractional exponent has no real result.
func (c *Calculator) AnnualizedReturn() Outcome {
	years := c.nav.End().Sub(c.nav.Start()).Hours() / 24.0 / daysPerYear
	if years <= 0 {
		return Undefined("evaluation period spans no time")
	}

	total := c.TotalReturn()
	if total == -1.0 {
		return Undefined("total loss of value cannot be annualized")
	}
	if 1.0+total < 0 {
		return Undefined("cannot annualize a return below -100%")
	}

	return Value(math.Pow(1.0+total, 1.0/years) - 1.0)
}

// AnnualizedVolatility computes the sample standard deviation of the
// periodic returns scaled by the annualization factor
func (c *Calculator) AnnualizedVolatility() Outcome {
	if c.returns.Len() < 2 {
		return Undefined("volatility needs at least 2 returns")
	}
	return Value(stat.StdDev(c.returns.Values, nil) * c.factor)
}

// MaxDrawdown returns the most negative value of the drawdown path
func (c *Calculator) MaxDrawdown() float64 {
	return MaxDrawdown(c.ddPath)
}

// UlcerIndex computes sqrt(mean(drawdown^2)) over the drawdown path; a
// decimal that penalizes both depth and duration of declines
func (c *Calculator) UlcerIndex() float64 {
	var sqSum float64
	for _, dd := range c.ddPath.Values {
		sqSum += dd * dd
	}
	return math.Sqrt(sqSum / float64(c.ddPath.Len()))
}

// UlcerPerformanceIndex computes AnnualizedReturn / UlcerIndex
func (c *Calculator) UlcerPerformanceIndex() Outcome {
	annRet := c.AnnualizedReturn()
	if !annRet.IsValue() {
		return annRet
	}

	ulcer := c.UlcerIndex()
	if ulcer == 0 {
		return signedInf(annRet.Float64(), "zero return over zero ulcer index")
	}

	return Value(annRet.Float64() / ulcer)
}

// VaRReturns computes the alpha-quantile of the periodic return
// distribution
func (c *Calculator) VaRReturns(alpha float64) Outcome {
	return fromSample(Quantile(c.returns.Values, alpha))
}

// CVaRReturns computes the mean of the returns at or below VaR
func (c *Calculator) CVaRReturns(alpha float64) Outcome {
	return fromSample(ConditionalQuantile(c.returns.Values, alpha))
}

// DaR computes the alpha-quantile of the drawdown distribution
func (c *Calculator) DaR(alpha float64) Outcome {
	return fromSample(Quantile(c.ddPath.Values, alpha))
}

// CDaR computes the mean of the drawdowns at or below DaR
func (c *Calculator) CDaR(alpha float64) Outcome {
	return fromSample(ConditionalQuantile(c.ddPath.Values, alpha))
}

// DownsideRisk computes the annualized root-mean-square deviation of
// returns below the periodic risk-free rate. Zero when no return is below
// the target - no downside was observed, which is a value, not an error.
func (c *Calculator) DownsideRisk() float64 {
	var sqSum float64
	var n int
	for _, r := range c.returns.Values {
		if r < c.riskFree {
			excess := r - c.riskFree
			sqSum += excess * excess
			n++
		}
	}

	if n == 0 {
		return 0.0
	}

	return math.Sqrt(sqSum/float64(n)) * c.factor
}

// SharpeRatio computes (AnnualizedReturn - annualized risk-free) divided by
// AnnualizedVolatility. A zero volatility resolves by the sign of the
// excess return to +Inf, -Inf, or undefined.
func (c *Calculator) SharpeRatio() Outcome {
	annRet := c.AnnualizedReturn()
	if !annRet.IsValue() {
		return annRet
	}
	vol := c.AnnualizedVolatility()
	if !vol.IsValue() {
		return vol
	}

	excess := annRet.Float64() - c.riskFree*c.factor
	if vol.Float64() == 0 {
		return signedInf(excess, "zero excess return over zero volatility")
	}

	return Value(excess / vol.Float64())
}

// SortinoRatio is the Sharpe ratio with DownsideRisk as the denominator,
// with the same zero-denominator convention
func (c *Calculator) SortinoRatio() Outcome {
	annRet := c.AnnualizedReturn()
	if !annRet.IsValue() {
		return annRet
	}

	excess := annRet.Float64() - c.riskFree*c.factor
	downside := c.DownsideRisk()
	if downside == 0 {
		return signedInf(excess, "zero excess return over zero downside risk")
	}

	return Value(excess / downside)
}

// CalmarRatio computes AnnualizedReturn / |MaxDrawdown|, resolving a zero
// drawdown by the sign of the annualized return
func (c *Calculator) CalmarRatio() Outcome {
	annRet := c.AnnualizedReturn()
	if !annRet.IsValue() {
		return annRet
	}

	maxDD := math.Abs(c.MaxDrawdown())
	if maxDD == 0 {
		return signedInf(annRet.Float64(), "zero return over zero drawdown")
	}

	return Value(annRet.Float64() / maxDD)
}

// PitfallIndicator computes |CDaR(alpha)| / AnnualizedVolatility
func (c *Calculator) PitfallIndicator(alpha float64) Outcome {
	cdar := c.CDaR(alpha)
	if !cdar.IsValue() {
		return cdar
	}
	vol := c.AnnualizedVolatility()
	if !vol.IsValue() {
		return vol
	}

	absCDaR := math.Abs(cdar.Float64())
	if vol.Float64() == 0 {
		if absCDaR > 0 {
			return Infinite(1)
		}
		return Undefined("zero tail drawdown over zero volatility")
	}

	return Value(absCDaR / vol.Float64())
}

// PenalizedRisk computes UlcerIndex x PitfallIndicator(alpha)
func (c *Calculator) PenalizedRisk(alpha float64) Outcome {
	pitfall := c.PitfallIndicator(alpha)
	if pitfall.IsUndefined() {
		return pitfall
	}

	ulcer := c.UlcerIndex()
	if pitfall.IsInfinite() {
		if ulcer == 0 {
			return Undefined("zero ulcer index times infinite pitfall indicator")
		}
		return Infinite(pitfall.Sign())
	}

	return Value(ulcer * pitfall.Float64())
}

// SerenityRatio computes AnnualizedReturn / PenalizedRisk(alpha) with the
// usual sign-based zero-denominator convention
func (c *Calculator) SerenityRatio(alpha float64) Outcome {
	annRet := c.AnnualizedReturn()
	if !annRet.IsValue() {
		return annRet
	}

	penalized := c.PenalizedRisk(alpha)
	if penalized.IsUndefined() {
		return penalized
	}
	if penalized.IsInfinite() {
		return Value(0)
	}
	if penalized.Float64() == 0 {
		return signedInf(annRet.Float64(), "zero return over zero penalized risk")
	}

	return Value(annRet.Float64() / penalized.Float64())
}

// signedInf resolves a degenerate zero-denominator division by the sign of
// the numerator
func signedInf(numerator float64, zeroReason string) Outcome {
	switch {
	case numerator > 0:
		return Infinite(1)
	case numerator < 0:
		return Infinite(-1)
	default:
		return Undefined(zeroReason)
	}
}

// fromSample converts a (value, error) pair from the tail-risk engine into
// an Outcome
func fromSample(v float64, err error) Outcome {
	if err != nil {
		return Undefined(err.Error())
	}
	return Value(v)
}
