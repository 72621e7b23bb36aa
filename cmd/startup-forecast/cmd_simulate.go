package main

import (
	"os"

	"github.com/iwvelando/startup-forecast/internal/forecast"
	"github.com/iwvelando/startup-forecast/internal/model"
	"github.com/iwvelando/startup-forecast/pkg/constants"
	"github.com/iwvelando/startup-forecast/pkg/output"
	"github.com/iwvelando/startup-forecast/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the monthly simulation with the configured decision plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			outputFormat, _ := cmd.Flags().GetString("output-format")
			if outputFormat == "" {
				outputFormat = conf.Output.Format
			}
			if outputFormat == "" {
				outputFormat = constants.OutputFormatPretty
			}
			if err := validation.ValidateOutputFormat(outputFormat); err != nil {
				return err
			}

			plan, err := conf.DecisionPlan()
			if err != nil {
				logger.Error("failed to build decision plan",
					zap.String("op", "main.simulate"),
					zap.Error(err),
				)
				return err
			}

			rows, err := forecast.Run(logger, conf.Assumptions, plan)
			if err != nil {
				logger.Error("failed to compute simulation",
					zap.String("op", "main.simulate"),
					zap.Error(err),
				)
				return err
			}

			return writeRows(outputFormat, rows)
		},
	}
	cmd.Flags().String("output-format", "", "type of output override: pretty, csv")
	return cmd
}

func writeRows(format string, rows []model.Row) error {
	if format == constants.OutputFormatCSV {
		return output.CsvFormat(os.Stdout, rows)
	}
	output.PrettyFormat(os.Stdout, rows)
	output.PrettySummary(os.Stdout, rows)
	return nil
}
