package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/internal/config"
	"github.com/Amr-9/hexseed/internal/output"
	"github.com/Amr-9/hexseed/internal/ui"
	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/composer"
	"github.com/Amr-9/hexseed/pkg/generator/hd"
)

func newRecoverCmd(cfg *config.Config) *cobra.Command {
	r := &cfg.Recover
	// Tron by default here; the search commands default to EVM.
	chain := generator.Tron.String()
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Re-derive keys from a mnemonic and optional profanity2 tweak",
		Long: `Read a mnemonic from stdin and print the key at m/44'/<coin>'/<account>'/0/<index>.
With --tweak the final key (seed + tweak) mod n is printed as well.
Account and index are prompted for when their flags are not given.`,
		Example: `  hexseed recover --chain tron --account 0 --index 0
  echo "abandon ... about" | hexseed recover -c evm --account 0 --index 0 --tweak 0x...`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Chain = chain
			prompter := ui.NewPrompter(cmd.InOrStdin(), cmd.ErrOrStderr())
			askAccount := !cmd.Flags().Changed("account")
			askIndex := !cmd.Flags().Changed("index")
			return runRecover(cfg, prompter, askAccount, askIndex, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVarP(&chain, "chain", "c", chain, "evm or tron")
	f.Uint32Var(&r.Account, "account", 0, "account index (0-99999)")
	f.Uint32Var(&r.Index, "index", 0, "address index (0-99999)")
	f.StringVar(&r.Tweak, "tweak", "", "profanity2 private key to add to the derived key")
	return cmd
}

func runRecover(cfg *config.Config, prompter *ui.Prompter, askAccount, askIndex bool, stdout io.Writer) error {
	chain, err := cfg.ParsedChain()
	if err != nil {
		return err
	}
	if !chain.UsesMnemonic() {
		return fmt.Errorf("%w: %s keys are not derived from a mnemonic", generator.ErrUnsupportedChain, chain)
	}

	log, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	phrase, err := prompter.Mnemonic()
	if err != nil {
		return fmt.Errorf("read mnemonic: %w", err)
	}
	account, index := cfg.Recover.Account, cfg.Recover.Index
	if askAccount {
		if account, err = prompter.Index("Account"); err != nil {
			return err
		}
	}
	if askIndex {
		if index, err = prompter.Index("Address"); err != nil {
			return err
		}
	}
	if err := (hd.Path{Account: account, Index: index}).Validate(); err != nil {
		return err
	}

	rec, err := composer.Recover(chain, phrase, account, index, cfg.Recover.Tweak)
	if err != nil {
		return err
	}
	log.Debug("recovered", zap.String("path", rec.Path), zap.Bool("tweaked", rec.HasFinal()))

	_, err = io.WriteString(stdout, output.RecoveryRecord(rec))
	return err
}
