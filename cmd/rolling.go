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
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/fundlens/navrisk/common"
	"github.com/fundlens/navrisk/rolling"
)

var (
	rollingMaxWindow   int
	rollingPeriodsYear int
	rollingFormat      string
	rollingStats       bool
)

func init() {
	rootCmd.AddCommand(rollingCmd)

	rollingCmd.Flags().IntVar(&rollingMaxWindow, "max-window", rolling.DefaultMaxWindowYears, "largest rolling window in years")
	rollingCmd.Flags().IntVar(&rollingPeriodsYear, "periods-per-year", rolling.DefaultPeriodsPerYear, "observations per year")
	rollingCmd.Flags().StringVar(&rollingFormat, "format", "table", "output format: table or json")
	rollingCmd.Flags().BoolVar(&rollingStats, "stats", false, "include descriptive statistics of every rolling-return sample")
}

var rollingCmd = &cobra.Command{
	Use:   "rolling <nav-file.csv>",
	Short: "sweep rolling-window annualized returns for every asset in a NAV file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		common.SetupLogging()

		navs, err := loadNavCSV(args[0])
		if err != nil {
			log.Fatal().Err(err).Str("File", args[0]).Msg("could not load NAV file")
		}

		profiles := make([]*rolling.Profile, 0, len(navs))
		for _, nav := range navs {
			profile, err := rolling.MinMedianByWindow(nav, rollingMaxWindow, rollingPeriodsYear)
			if err != nil {
				log.Fatal().Err(err).Str("Asset", nav.Name).Msg("could not compute rolling profile")
			}
			if len(profile.Windows) == 0 {
				log.Warn().Str("Asset", nav.Name).Msg("series too short for any rolling window")
			}
			profiles = append(profiles, profile)
		}

		switch rollingFormat {
		case "json":
			printProfilesJSON(profiles)
		default:
			printProfilesTable(profiles)
			if rollingStats {
				printProfileStats(profiles)
			}
		}
	},
}

func printProfilesTable(profiles []*rolling.Profile) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Asset", "Window (years)", "Min", "Median"})
	table.SetBorder(false)

	for _, profile := range profiles {
		for ii, window := range profile.Windows {
			table.Append([]string{
				profile.Asset,
				fmt.Sprintf("%d", window),
				fmt.Sprintf("%.4f", profile.Min[ii]),
				fmt.Sprintf("%.4f", profile.Median[ii]),
			})
		}
	}

	table.Render()
}

func printProfileStats(profiles []*rolling.Profile) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Asset", "Window", "Mean", "StdDev", "Skew", "Kurtosis", "P10", "P90"})
	table.SetBorder(false)

	for _, profile := range profiles {
		for _, window := range profile.Windows {
			stats, err := rolling.DescriptiveStats(profile.Samples[window])
			if err != nil {
				continue
			}
			table.Append([]string{
				profile.Asset,
				fmt.Sprintf("%d", window),
				fmt.Sprintf("%.4f", stats.Mean),
				fmt.Sprintf("%.4f", stats.StdDev),
				fmt.Sprintf("%.4f", stats.Skew),
				fmt.Sprintf("%.4f", stats.Kurtosis),
				fmt.Sprintf("%.4f", stats.P10),
				fmt.Sprintf("%.4f", stats.P90),
			})
		}
	}

	table.Render()
}

func printProfilesJSON(profiles []*rolling.Profile) {
	type windowOut struct {
		Window int            `json:"window"`
		Min    float64        `json:"min"`
		Median float64        `json:"median"`
		Stats  *rolling.Stats `json:"stats,omitempty"`
	}
	type profileOut struct {
		Asset   string      `json:"asset"`
		Windows []windowOut `json:"windows"`
	}

	out := make([]profileOut, 0, len(profiles))
	for _, profile := range profiles {
		po := profileOut{Asset: profile.Asset, Windows: []windowOut{}}
		for ii, window := range profile.Windows {
			wo := windowOut{
				Window: window,
				Min:    profile.Min[ii],
				Median: profile.Median[ii],
			}
			if rollingStats {
				if stats, err := rolling.DescriptiveStats(profile.Samples[window]); err == nil {
					wo.Stats = stats
				}
			}
			po.Windows = append(po.Windows, wo)
		}
		out = append(out, po)
	}

	buf, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("could not marshal rolling profiles")
	}
	fmt.Println(string(buf))
}
