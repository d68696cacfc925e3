package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cosmos/solidity-ibc-eureka/relayer/aggregator"
)

// StartCmd runs the relayer process: it dials every configured attestor
// endpoint and blocks until signaled. The event→message builder (relayer
// package) is host-agnostic ("reference, not host-specific", §4.5); the
// chain watcher that feeds it router events and the ProofSource/
// ClientUpdater implementations reading real chain state are supplied per
// deployment by wiring relayer.StartEventLoop with host-specific clients.
func StartCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Dial the configured attestor endpoints and wait for a shutdown signal",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString(FlagConfig)
			if err != nil {
				return err
			}

			cfg, err := LoadConfig(configPath)
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.LogLevel)
			if err != nil {
				return fmt.Errorf("relayer: building logger: %w", err)
			}
			defer logger.Sync()

			logger.Info("starting relayer",
				zap.String("source_rpc", cfg.SourceRPC),
				zap.String("dest_rpc", cfg.DestRPC),
				zap.Strings("attestor_endpoints", cfg.Aggregator.AttestorEndpoints),
				zap.Int("quorum_threshold", cfg.Aggregator.QuorumThreshold),
			)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			return run(ctx, logger, cfg.Aggregator)
		},
	}

	cmd.Flags().String(FlagConfig, DefaultConfigPath, "path to the relayer's TOML config file")

	return cmd
}

// run dials every attestor endpoint and waits for shutdown. The resulting
// connections are the ones a deployment's generated attestor client stubs
// would be built over (aggregator.Dial); this binary's job ends at opening
// and holding them, matching §4.5's framing of the relayer logic itself as
// host-agnostic reference code.
func run(ctx context.Context, logger *zap.Logger, cfg aggregator.Config) error {
	conns := make([]io.Closer, 0, len(cfg.AttestorEndpoints))
	defer func() {
		for _, c := range conns {
			_ = c.Close()
		}
	}()

	for _, endpoint := range cfg.AttestorEndpoints {
		conn, err := aggregator.Dial(endpoint)
		if err != nil {
			logger.Warn("failed to dial attestor endpoint", zap.String("endpoint", endpoint), zap.Error(err))
			continue
		}
		conns = append(conns, conn)
		logger.Info("dialed attestor endpoint", zap.String("endpoint", endpoint))
	}

	<-ctx.Done()
	logger.Info("relayer shutting down")
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
