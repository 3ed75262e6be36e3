package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tickport/core"
)

var (
	simulate bool

	resolveCmd = &cobra.Command{
		Use:   "resolve",
		Short: "Print the register wiring for a configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadConfig()
			if err != nil {
				return err
			}
			cfg, w, err := f.Resolve()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			mode := "cooperative"
			if cfg.Preemptive {
				mode = "preemptive"
			}
			fmt.Fprintf(out, "device      %s\n", cfg.Device)
			fmt.Fprintf(out, "timer       %s @ 0x%04X\n", w.Instance, w.Base)
			fmt.Fprintf(out, "power       PR 0x%04X mask 0x%02X\n", w.PRAddr, w.PRMask)
			fmt.Fprintf(out, "period      %d (%d Hz / %d Hz)\n", w.Period, cfg.CPUClockHz, cfg.TickRateHz)
			fmt.Fprintf(out, "clksel      %s (0x%02X)\n", w.ClkSel, uint8(w.ClkSel))
			fmt.Fprintf(out, "vector      %s (%d)\n", w.VectorName, w.Vector)
			fmt.Fprintf(out, "mode        %s\n", mode)

			if simulate {
				bus := core.NewSimBus()
				bus.Trace(true)
				core.Configure(bus, w)
				fmt.Fprintln(out, "\nregister writes:")
				for _, wr := range bus.Writes() {
					fmt.Fprintf(out, "  0x%04X <- 0x%02X\n", wr.Addr, wr.Value)
				}
			}
			return nil
		},
	}
)

func init() {
	resolveCmd.Flags().BoolVar(&simulate, "simulate", false, "Run the configuration sequence against a simulated I/O space")
}
