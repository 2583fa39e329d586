package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/internal/config"
	"github.com/Amr-9/hexseed/internal/output"
	"github.com/Amr-9/hexseed/internal/ui"
	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/matcher"
	"github.com/Amr-9/hexseed/pkg/generator/profanity"
)

func newProfanityCmd(cfg *config.Config) *cobra.Command {
	p := &cfg.Profanity
	cmd := &cobra.Command{
		Use:   "profanity",
		Short: "Delegate the search to profanity2 on the GPU",
		Long: `Derive a key from a fresh 24-word mnemonic, let profanity2 find a tweak
for its public key and compose the final key locally. Only the public key
is passed to profanity2.

Matching mode stops as soon as the pattern is found. The scoring modes run
until interrupted or --timeout, then keep the best result.`,
		Example: `  hexseed profanity --matching dead --suffix beef
  hexseed profanity --chain tron --zero-bytes --timeout 10m
  hexseed profanity --leading-range -m 0 -M 1 -C`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfanity(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&cfg.Chain, "chain", "c", cfg.Chain, "evm or tron")
	f.StringVar(&p.Matching, "matching", "", "hex prefix of the address")
	f.StringVar(&p.Suffix, "suffix", "", "hex suffix of the address")
	f.StringVar(&p.Leading, "leading", "", "score by repetitions of this leading hex character")
	f.BoolVar(&p.LeadingRange, "leading-range", false, "score by leading characters in [min, max]")
	f.IntVarP(&p.Min, "min", "m", p.Min, "lower bound for --leading-range")
	f.IntVarP(&p.Max, "max", "M", p.Max, "upper bound for --leading-range")
	f.BoolVarP(&p.ZeroBytes, "zero-bytes", "b", false, "score by zero bytes anywhere in the address")
	f.BoolVarP(&cfg.CaseSensitive, "case-sensitive", "s", false, "warn when the EIP-55 casing does not match")
	f.BoolVarP(&cfg.Contract, "contract", "C", false, "search the contract deployed at nonce 0")
	f.StringVarP(&cfg.Output, "output", "o", "", "append the result to this file instead of stdout")
	f.StringVar(&p.ToolPath, "profanity-path", p.ToolPath, "profanity2 executable")
	f.DurationVar(&p.Timeout, "timeout", 0, "stop after this long and keep the best result (0 runs until interrupted)")
	return cmd
}

func runProfanity(ctx context.Context, cfg *config.Config, stdout, stderr io.Writer) error {
	opts, err := cfg.ProfanityOptions()
	if err != nil {
		return err
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	console := ui.NewConsole(stderr)
	console.PrintWelcomeBanner(version)

	runner := profanity.NewRunner(opts.ToolPath, stderr, log)
	path, err := runner.Check()
	if err != nil {
		return err
	}
	console.PrintStep("using %s (%s, %s)", path, opts.Chain, opts.Mode)

	ctx, interrupted, stop := withInterrupt(ctx)
	defer stop()
	if p := cfg.Profanity; p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	res, err := profanity.NewSearcher(runner, log).Search(ctx, opts)
	if err != nil {
		if interrupted() && errors.Is(err, context.Canceled) {
			console.PrintCancelled(0, 0, 0)
			return nil
		}
		console.PrintError(err)
		return err
	}
	console.PrintStep("tweak verified: %s", res.FinalAddress.Value)

	if cfg.CaseSensitive && opts.Mode == profanity.ModeMatching && opts.Chain == generator.EVM {
		warnCase(console, log, opts, res)
	}

	record := output.DelegatedRecord(res)
	if err := output.NewSink(cfg.Output, stdout).Write(record); err != nil {
		log.Error("save result", zap.Error(err))
		if cfg.Output != "" {
			if werr := output.NewSink("", stdout).Write(record); werr != nil {
				return errors.Join(err, werr)
			}
		}
		return err
	}
	console.PrintStep("keep your mnemonic and private keys secret")
	return nil
}

// warnCase reports when the checksummed address does not carry the
// requested letter case. profanity2 only matches lowercase hex.
func warnCase(console *ui.Console, log *zap.Logger, opts *profanity.Options, res *profanity.Result) {
	addr := res.FinalAddress
	if opts.Contract {
		addr = res.ContractAddress
	}
	exact := *opts.Criteria
	exact.CaseSensitive = true
	if matcher.New(&exact).Matches(addr) {
		return
	}
	log.Warn("checksum casing differs from pattern",
		zap.String("address", addr.Value),
		zap.String("criteria", exact.Describe()))
	console.PrintStep("note: %s does not match the pattern's letter case", addr.Value)
}
