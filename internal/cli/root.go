// Package cli implements the bokoup command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/krazyTry/bokoup-go/config"
	"github.com/lmittmann/tint"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type ExitCode int

const (
	exitCodeSuccess ExitCode = 0
	exitCodeError   ExitCode = 1
)

func Run(args []string) ExitCode {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		return exitCodeError
	}
	return exitCodeSuccess
}

func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bokoup",
		Short:         "Derive addresses and read state of the auction house and promo programs.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cmd.Help(); err != nil {
				return fmt.Errorf("failed to show help: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "set debug logging level")
	rootCmd.PersistentFlags().StringP("cluster", "u", "", "cluster: l, d, t, m or an http(s) url (overrides BOKOUP_CLUSTER)")
	rootCmd.PersistentFlags().StringSlice("env-file", nil, "env files to read (default .env)")

	rootCmd.AddCommand(
		NewDeriveCmd().Command(),
		NewFundsCmd().BalanceCommand(),
		NewFundsCmd().AirdropCommand(),
		NewAuctionHouseCmd().Command(),
		NewPromoCmd().Command(),
	)
	return rootCmd
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// env gathers what network commands share: the logger, the resolved
// configuration and a signal-aware context.
type env struct {
	log *slog.Logger
	cfg *config.Config
	ctx context.Context
}

func loadEnv(cmd *cobra.Command) (*env, context.CancelFunc, error) {
	flags := cmd.Root().PersistentFlags()
	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	cluster, err := flags.GetString("cluster")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get cluster flag: %w", err)
	}
	envFiles, err := flags.GetStringSlice("env-file")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get env-file flag: %w", err)
	}

	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, nil, err
	}
	if cluster != "" {
		if cfg.Cluster, err = config.ParseCluster(cluster); err != nil {
			return nil, nil, err
		}
	}

	log := newLogger(cmd.ErrOrStderr(), verbose)
	log.Debug("--> Using cluster", "rpc", cfg.Cluster.RPC, "commitment", cfg.Commitment)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	return &env{log: log, cfg: cfg, ctx: ctx}, cancel, nil
}

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetBorder(true)
	table.SetHeader(header)
	return table
}

func parseKey(name, value string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(value)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	return key, nil
}
