package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dusk-indust/digest/internal/config"
)

// version is set with -ldflags "-X main.version=..." at build time.
var version = "dev"

// cliFlags are the flags shared by every command.
type cliFlags struct {
	ConfigDir string
	DryRun    bool
	JSON      bool
	Verbose   bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd()
	cmd.SetArgs(args)
	return cmd.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	var flags cliFlags
	var logger *zap.Logger

	root := &cobra.Command{
		Use:   "digest",
		Short: "Compose and send the daily digest",
		Long: `digest fetches today's calendar, weather, AI news, talking pieces and a
historical fact in parallel, formats them as one message and sends it to
Telegram. Sections that fail are replaced by a short notice; the digest is
still sent.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			logger, err = newLogger(flags.Verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = logger.With(zap.String("run_id", uuid.NewString()))
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flags.JSON && !flags.DryRun {
				return errors.New("--json requires --dry-run")
			}
			cfg, err := config.Load(config.Options{Dir: flags.ConfigDir, DryRun: flags.DryRun})
			if err != nil {
				return err
			}
			return runDigest(cmd.Context(), cfg, flags, cmd.OutOrStdout(), logger)
		},
	}

	root.PersistentFlags().StringVar(&flags.ConfigDir, "config", ".", "directory containing .env and digest.yml")
	root.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "enable debug logging")
	root.Flags().BoolVar(&flags.DryRun, "dry-run", false, "print the digest instead of sending it")
	root.Flags().BoolVar(&flags.JSON, "json", false, "with --dry-run, print the digest as JSON")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve-mcp",
			Short: "Serve digest preview tools over MCP (stdio)",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := config.Load(config.Options{Dir: flags.ConfigDir, DryRun: true})
				if err != nil {
					return err
				}
				return serveMCP(cmd.Context(), cfg, logger)
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print version and exit",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version)
			},
		},
	)

	return root
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return zc.Build()
}
