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
	"context"
	"fmt"
	"math"
	"os"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fundlens/navrisk/common"
	"github.com/fundlens/navrisk/metrics"
	"github.com/fundlens/navrisk/portfolio"
)

var (
	analyzeAlpha       float64
	analyzeRiskFree    float64
	analyzePeriodsYear int
	analyzeFormat      string
	analyzeWeights     string
)

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().Float64Var(&analyzeAlpha, "alpha", 0.05, "tail confidence fraction, e.g. 0.05 for the worst 5%")
	analyzeCmd.Flags().Float64Var(&analyzeRiskFree, "risk-free", 0.0, "periodic risk-free rate")
	analyzeCmd.Flags().IntVar(&analyzePeriodsYear, "periods-per-year", 12, "observations per year, used to annualize volatility")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "table", "output format: table or json")
	analyzeCmd.Flags().StringVar(&analyzeWeights, "weights", "", "portfolio weights as NAME=WEIGHT,... adds a composed Portfolio column")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <nav-file.csv>",
	Short: "compute the full risk metric set for every asset in a NAV file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()
		ctx := context.Background()

		navs, err := loadNavCSV(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("could not load NAV file")
		}

		if analyzeWeights != "" {
			weights, err := parseWeights(analyzeWeights)
			if err != nil {
				log.Fatal().Err(err).Msg("could not parse portfolio weights")
			}
			composed, err := portfolio.Build(navs, weights)
			if err != nil {
				log.Fatal().Err(err).Msg("could not compose portfolio")
			}
			navs = append(navs, composed)
		}

		opts := metrics.BatchOptions{
			Factor:   math.Sqrt(float64(analyzePeriodsYear)),
			RiskFree: analyzeRiskFree,
			Alpha:    analyzeAlpha,
		}
		results := metrics.ComputeAll(ctx, navs, opts)

		switch analyzeFormat {
		case "json":
			printMetricsJSON(results)
		default:
			printMetricsTable(results, analyzeAlpha)
		}
	},
}

func printMetricsTable(results []metrics.AssetMetrics, alpha float64) {
	header := []string{"Metric"}
	for _, res := range results {
		header = append(header, res.Name)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(false)

	for _, key := range metrics.Keys(alpha) {
		row := []string{key}
		for _, res := range results {
			o, ok := res.Metrics.Get(key)
			if !ok {
				row = append(row, "n/a")
				continue
			}
			row = append(row, o.String())
		}
		table.Append(row)
	}

	table.Render()
}

func printMetricsJSON(results []metrics.AssetMetrics) {
	type assetOut struct {
		Name    string             `json:"name"`
		Metrics *metrics.MetricSet `json:"metrics"`
	}

	out := make([]assetOut, 0, len(results))
	for _, res := range results {
		out = append(out, assetOut{Name: res.Name, Metrics: res.Metrics})
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not marshal metrics")
	}
	fmt.Println(string(buf))
}
