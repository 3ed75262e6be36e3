package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tickport/host/logger"
	"tickport/host/monitor"
	"tickport/host/serial"
	"tickport/report"
)

var (
	monitorDevice    string
	monitorBaud      int
	monitorExpect    float64
	monitorTolerance float64
	monitorStop      bool

	monitorCmd = &cobra.Command{
		Use:   "monitor",
		Short: "Measure the tick rate reported by a running device",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := serial.DefaultConfig(monitorDevice)
			cfg.Baud = monitorBaud
			port, err := serial.Open(cfg)
			if err != nil {
				return err
			}
			defer port.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			logger.Info("reading reports from %s", monitorDevice)
			m := monitor.New(port)
			err = m.Run(ctx, func(s monitor.Sample) error {
				status := ""
				if s.Restarted {
					status = " RESTART"
				} else if s.RateHz > 0 && monitorExpect > 0 && !monitor.WithinTolerance(s.RateHz, monitorExpect, monitorTolerance) {
					status = " OUT OF TOLERANCE"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "seq=%3d ticks=%d switches=%d per=%d vector=%d rate=%.1fHz missed=%d%s\n",
					s.Report.Seq, s.Report.Ticks, s.Report.Switches, s.Report.Period, s.Report.Vector,
					s.RateHz, s.Missed, status)
				return nil
			})

			if monitorStop {
				if _, werr := port.Write([]byte{report.StopByte}); werr != nil {
					logger.Error("send stop: %v", werr)
				} else {
					logger.Info("sent stop to %s", monitorDevice)
				}
			}

			bytes, frames := m.Dropped()
			logger.Info("dropped %d bytes, rejected %d frames", bytes, frames)
			if err == context.Canceled {
				return nil
			}
			return err
		},
	}
)

func init() {
	monitorCmd.Flags().StringVarP(&monitorDevice, "device", "d", "/dev/ttyUSB0", "Serial device path")
	monitorCmd.Flags().IntVarP(&monitorBaud, "baud", "b", 115200, "Baud rate")
	monitorCmd.Flags().Float64Var(&monitorExpect, "expect", 0, "Expected tick rate in Hz (0 disables the check)")
	monitorCmd.Flags().Float64Var(&monitorTolerance, "tolerance", 0.5, "Allowed deviation in percent")
	monitorCmd.Flags().BoolVar(&monitorStop, "stop", false, "Disarm the device tick when monitoring ends")
}
