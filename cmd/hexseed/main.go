// Command hexseed searches for vanity addresses whose keys are recoverable
// from a BIP39 mnemonic, or delegates the search to profanity2.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/internal/config"
	"github.com/Amr-9/hexseed/internal/logger"
)

const (
	version    = "1.0"
	updateRate = 100 * time.Millisecond
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := config.NewConfig()

	root := &cobra.Command{
		Use:           "hexseed",
		Short:         "Mnemonic-backed vanity address generator",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "also write JSON logs to this file")

	root.AddCommand(
		newAddressCmd(cfg),
		newProfanityCmd(cfg),
		newRecoverCmd(cfg),
	)
	return root
}

func newLogger(cfg *config.Config) (*zap.Logger, func(), error) {
	log, cleanup, err := logger.New(cfg.Verbose, cfg.LogFile)
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return log, cleanup, nil
}

// withInterrupt cancels the returned context on the first SIGINT or SIGTERM.
// interrupted reports whether that happened.
func withInterrupt(parent context.Context) (ctx context.Context, interrupted func() bool, stop func()) {
	ctx, cancel := context.WithCancel(parent)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	hit := make(chan struct{})
	go func() {
		select {
		case <-sigChan:
			close(hit)
			cancel()
		case <-ctx.Done():
		}
	}()

	interrupted = func() bool {
		select {
		case <-hit:
			return true
		default:
			return false
		}
	}
	stop = func() {
		signal.Stop(sigChan)
		cancel()
	}
	return ctx, interrupted, stop
}
