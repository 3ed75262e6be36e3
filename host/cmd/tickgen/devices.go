package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"tickport/core"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List supported devices and their timer/counters",
	Run: func(cmd *cobra.Command, args []string) {
		timers := map[string][]string{}
		for _, d := range core.Devices() {
			for _, inst := range d.Timers {
				timers[d.Name] = append(timers[d.Name], inst.Name())
			}
		}

		names := maps.Keys(timers)
		slices.Sort(names)
		for _, name := range names {
			list := timers[name]
			slices.Sort(list)
			fmt.Fprintf(cmd.OutOrStdout(), "%-14s %s\n", name, strings.Join(list, " "))
		}
	},
}
