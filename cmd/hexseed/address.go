package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/internal/config"
	"github.com/Amr-9/hexseed/internal/output"
	"github.com/Amr-9/hexseed/internal/ui"
	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/cpu"
)

func newAddressCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "address [prefixes] [suffixes]",
		Short: "Search vanity addresses on the CPU",
		Long: `Search for addresses starting with any of the comma-separated prefixes
and ending with any of the suffixes. EVM and Tron keys come from a fresh
24-word mnemonic; Solana and Aptos use plain ed25519 keys.`,
		Example: `  hexseed address dead beef
  hexseed address -c tron TAbc
  hexseed address -c solana "" pump -n 3 -o wallets.txt`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				cfg.Prefixes = config.SplitList(args[0])
			}
			if len(args) > 1 {
				cfg.Suffixes = config.SplitList(args[1])
			}
			return runAddress(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Chain, "chain", "c", cfg.Chain, "evm, tron, solana or aptos")
	f.BoolVarP(&cfg.CaseSensitive, "case-sensitive", "s", false, "match letter case (EIP-55 checksum for EVM)")
	f.IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "number of search goroutines")
	f.IntVarP(&cfg.Count, "num", "n", cfg.Count, "number of addresses to find")
	f.StringVarP(&cfg.Output, "output", "o", "", "append results to this file instead of stdout")
	f.BoolVarP(&cfg.Contract, "contract", "C", false, "match the contract deployed at nonce 0 (EVM only)")
	return cmd
}

func runAddress(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	criteria, err := cfg.Criteria()
	if err != nil {
		return err
	}
	if criteria.IsEmpty() {
		return errors.New("must specify a prefix or suffix")
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if err := raisePriority(); err != nil {
		log.Debug("raise process priority", zap.Error(err))
	}

	console := ui.NewConsole(stderr)
	console.PrintWelcomeBanner(version)
	log.Debug("configuration", zap.String("config", cfg.Describe()))

	sink := output.NewSink(cfg.Output, stdout)
	found := make(chan generator.Result, cfg.Count)
	gen := cpu.NewCPUGenerator(cfg.Workers,
		cpu.WithLogger(log),
		cpu.WithResultHandler(func(r generator.Result) { found <- r }),
	)

	difficulty := ui.EstimateDifficulty(criteria)
	console.PrintSearchInfo(criteria, gen.Workers(), cfg.Count, difficulty)

	ctx, interrupted, stop := withInterrupt(ctx)
	defer stop()

	var (
		results []generator.Result
		runErr  error
	)
	done := make(chan struct{})
	startTime := time.Now()
	go func() {
		defer close(done)
		results, runErr = gen.Run(ctx, criteria, cfg.Count)
	}()

	ticker := time.NewTicker(updateRate)
	defer ticker.Stop()
	frame, saved := 0, 0
	var saveErr error

	save := func(r generator.Result) {
		saved++
		console.PrintFound(saved, cfg.Count, r.MatchedAddress().Value, sink.Path())
		if err := saveResult(sink, stdout, r); err != nil {
			log.Error("save result", zap.Error(err))
			saveErr = errors.Join(saveErr, err)
		}
	}

loop:
	for {
		select {
		case r := <-found:
			save(r)
		case <-ticker.C:
			console.PrintProgress(gen.Stats(), difficulty, saved, cfg.Count, frame)
			frame++
		case <-done:
			break loop
		}
	}
	for len(found) > 0 {
		save(<-found)
	}

	stats := gen.Stats()
	elapsed := time.Since(startTime)
	switch {
	case runErr != nil && interrupted():
		console.PrintCancelled(len(results), elapsed, stats.Attempts)
	case runErr != nil:
		console.PrintError(runErr)
		return runErr
	default:
		console.ClearLine()
		console.PrintSuccess(len(results), elapsed, stats.Attempts)
	}
	return saveErr
}

// saveResult writes a result record. When the file cannot be written the
// record goes to stdout so the key is not lost.
func saveResult(sink *output.Sink, stdout io.Writer, r generator.Result) error {
	record, err := output.AddressRecord(r)
	if err != nil {
		return err
	}
	if err := sink.Write(record); err != nil {
		if sink.Path() == "" {
			return err
		}
		fallback := output.NewSink("", stdout)
		if ferr := fallback.Write(record); ferr != nil {
			return errors.Join(err, ferr)
		}
		return fmt.Errorf("%w (record printed to stdout)", err)
	}
	return nil
}
