// Command shiftctl administers a shift report deployment: it manages employee
// accounts, sends or exports summaries and checks revenue expressions.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mamadbah2/shiftreport/internal/app"
	"github.com/mamadbah2/shiftreport/internal/config"
	"github.com/mamadbah2/shiftreport/internal/repository"
	"github.com/mamadbah2/shiftreport/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type rootOptions struct {
	envFile string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "shiftctl",
		Short:        "Administer the shift report service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.envFile, "env", "", "path to an env file (defaults to ./.env)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "write structured logs to stderr")

	root.AddCommand(
		newEmployeeCmd(opts),
		newSummaryCmd(opts),
		newRevenueCmd(),
	)
	return root
}

// runtime holds what a command needs to talk to the configured store.
type runtime struct {
	cfg    *config.Config
	store  repository.Store
	logger *zap.Logger
}

func (o *rootOptions) open(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load(o.envFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := zap.NewNop()
	if o.verbose {
		if log, err = logger.NewConsole(true); err != nil {
			return nil, err
		}
	}

	store, err := app.OpenStore(ctx, cfg.Storage, log)
	if err != nil {
		return nil, err
	}
	return &runtime{cfg: cfg, store: store, logger: log}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.store.Close(ctx); err != nil {
		r.logger.Error("failed to close store", zap.Error(err))
	}
	_ = r.logger.Sync()
}
