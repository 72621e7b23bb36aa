package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/startup-forecast/internal/config"
	"github.com/iwvelando/startup-forecast/internal/forecast"
	"github.com/iwvelando/startup-forecast/internal/optimizer"
	"github.com/iwvelando/startup-forecast/internal/store"
	"github.com/iwvelando/startup-forecast/pkg/constants"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newOptimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search for the spend plan maximizing ending valuation",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, logger, err := loadConfigAndLogger(cmd)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			searcher, err := optimizer.New(logger, conf.Assumptions, conf.LeverBounds(), conf.OptimizerOptions())
			if err != nil {
				logger.Error("failed to initialize optimizer",
					zap.String("op", "main.optimize"),
					zap.Error(err),
				)
				return err
			}

			// Interrupt returns the best plan found so far.
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			start := time.Now()
			result, err := searcher.Run(ctx)
			if err != nil {
				logger.Error("optimizer execution failed",
					zap.String("op", "main.optimize"),
					zap.Error(err),
				)
				return err
			}

			saved, err := persistResult(logger, conf, result)
			if err != nil {
				logger.Warn("failed to persist optimization result",
					zap.String("op", "main.optimize"),
					zap.Error(err),
				)
			}

			printResult(result, saved, time.Since(start))

			outputFormat, _ := cmd.Flags().GetString("output-format")
			if outputFormat == constants.OutputFormatCSV {
				return writeRows(outputFormat, result.Rows)
			}
			return nil
		},
	}
	cmd.Flags().String("output-format", "", "also emit the winning trajectory: csv")
	return cmd
}

func persistResult(logger *zap.Logger, conf *config.Configuration, result *optimizer.Result) (bool, error) {
	if !conf.Storage.Enabled {
		return false, nil
	}

	st, err := store.NewSQLiteStore(logger, conf.Storage.Path)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = st.Close()
	}()

	hash, err := store.HashAssumptions(conf.Assumptions)
	if err != nil {
		return false, err
	}

	minCash, _ := forecast.MinCash(result.Rows)
	endCash := 0.0
	if n := len(result.Rows); n > 0 {
		endCash = result.Rows[n-1].Cash
	}

	return st.SaveBest(store.Record{
		AssumptionsHash: hash,
		SavedAt:         time.Now().UTC(),
		Score:           result.Score,
		MinCash:         minCash,
		EndCash:         endCash,
		Trials:          result.TrialsRun,
		Plan:            result.Plan,
	})
}

func printResult(result *optimizer.Result, saved bool, elapsed time.Duration) {
	p := message.NewPrinter(language.English)

	fmt.Printf("--- Winning plan ---\n")
	fmt.Printf("Month | Ads           | SEO           | Dev           | Outreach      | Partner       | Pro      | Ent\n")
	fmt.Printf("_____ | _____________ | _____________ | _____________ | _____________ | _____________ | ________ | ________\n")
	for i, d := range result.Plan {
		_, _ = p.Printf("%5d | $%12.2f | $%12.2f | $%12.2f | $%12.2f | $%12.2f | %8s | %8s\n",
			i, d.AdsSpend, d.SEOSpend, d.DevSpend, d.OutreachSpend, d.PartnerSpend,
			formatPrice(d.ProPrice.IsSet(), d.ProPrice.Value()),
			formatPrice(d.EntPrice.IsSet(), d.EntPrice.Value()))
	}

	minCash := 0.0
	if v, ok := forecast.MinCash(result.Rows); ok {
		minCash = v
	}

	_, _ = p.Printf("\nScore (valuation): $%.2f\n", result.Score)
	_, _ = p.Printf("Minimum cash:      $%.2f\n", minCash)
	_, _ = p.Printf("Winning trial:     %d of %d (%d feasible)\n", result.Trial, result.TrialsRun, result.FeasibleTrials)
	_, _ = p.Printf("Elapsed:           %s\n", elapsed)
	if saved {
		fmt.Printf("Result saved as new best for these assumptions.\n")
	}
}

func formatPrice(set bool, v float64) string {
	if !set {
		return "auto"
	}
	return fmt.Sprintf("$%.2f", v)
}
