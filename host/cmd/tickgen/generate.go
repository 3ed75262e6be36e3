package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"tickport/host/gen"
	"tickport/host/logger"
)

var (
	outputPath string
	genOpts    = gen.DefaultOptions

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate the firmware tick constants",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := loadConfig()
			if err != nil {
				return err
			}
			src, err := gen.Generate(f, genOpts)
			if err != nil {
				return err
			}

			if outputPath == "" || outputPath == "-" {
				_, err = cmd.OutOrStdout().Write(src)
				return err
			}
			if err := os.WriteFile(outputPath, src, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", outputPath)
			}
			logger.Info("wrote %s", outputPath)
			return nil
		},
	}
)

func init() {
	generateCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (stdout when empty)")
	generateCmd.Flags().StringVar(&genOpts.Package, "package", genOpts.Package, "Package name of the generated file")
	generateCmd.Flags().StringVar(&genOpts.BuildTag, "tags", genOpts.BuildTag, "Build constraint of the generated file")
	generateCmd.Flags().BoolVar(&genOpts.AllowPreemption, "allow-preemption", genOpts.AllowPreemption, "Target links port_save_context/port_restore_context")
}
