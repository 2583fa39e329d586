package profanity

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/candidate"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
	"github.com/Amr-9/hexseed/pkg/generator/composer"
	"github.com/Amr-9/hexseed/pkg/generator/ethereum"
)

// Result is a verified delegated search outcome.
type Result struct {
	Chain           generator.Chain
	Mnemonic        generator.Mnemonic
	SeedKey         []byte
	TweakKey        []byte
	FinalKey        []byte
	VanityAddress   string // as reported by the tool
	FinalAddress    generator.Address
	ContractAddress generator.Address // contract mode only
	EVMAddress      string
}

// Searcher runs delegated searches.
type Searcher struct {
	runner   ToolRunner
	log      *zap.Logger
	generate func(generator.Chain) (candidate.Candidate, error)
}

// NewSearcher creates a Searcher around runner.
func NewSearcher(runner ToolRunner, log *zap.Logger) *Searcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Searcher{runner: runner, log: log, generate: candidate.Generate}
}

// Search derives a fresh mnemonic key, hands its public key to the tool and
// composes the tool's tweak with the local key.
//
// In matching mode the tool is stopped as soon as it reports an address that
// satisfies the pattern; if ctx ends first, ErrPatternNotReached is returned.
// Score-based modes run until ctx ends; the best result reported so far is
// then used.
func (s *Searcher) Search(ctx context.Context, opts *Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	c, err := s.generate(opts.Chain)
	if err != nil {
		return nil, err
	}
	args, err := Args(hex.EncodeToString(c.Key.PublicKey), opts)
	if err != nil {
		return nil, err
	}

	var pattern string
	if opts.Mode == ModeMatching {
		pattern, _ = TranslateCriteria(opts.Criteria)
	}

	toolCtx, stop := context.WithCancel(ctx)
	defer stop()

	var parser Parser
	s.log.Info("delegating search",
		zap.String("chain", opts.Chain.String()),
		zap.String("mode", opts.Mode.String()),
		zap.Strings("args", args))

	runErr := s.runner.Run(toolCtx, args, func(line string) {
		parser.Feed(line)
		if pattern != "" && parser.Complete() && satisfies(parser.Address(), pattern) {
			s.log.Debug("pattern reached, stopping tool", zap.String("address", parser.Address()))
			stop()
		}
	})

	tweak, parseErr := parser.Result()
	if parseErr != nil {
		if runErr != nil {
			return nil, runErr
		}
		return nil, parseErr
	}
	if runErr != nil && !errors.Is(runErr, context.Canceled) && !errors.Is(runErr, context.DeadlineExceeded) {
		return nil, runErr
	}
	if pattern != "" && !satisfies(tweak.Address, pattern) {
		return nil, fmt.Errorf("%w: best address %s does not match %s", ErrPatternNotReached, tweak.Address, pattern)
	}

	return s.finalize(opts, c, tweak)
}

func (s *Searcher) finalize(opts *Options, c candidate.Candidate, tweak Tweak) (*Result, error) {
	final, err := composer.Compose(c.Key.PrivateKey, tweak.PrivateKey)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Chain:         opts.Chain,
		Mnemonic:      *c.Mnemonic,
		SeedKey:       c.Key.PrivateKey,
		TweakKey:      tweak.PrivateKey,
		FinalKey:      final,
		VanityAddress: tweak.Address,
	}

	addr, err := composer.Verify(opts.Chain, final, tweak.Address)
	if err != nil && opts.Contract && errors.Is(err, composer.ErrTweakMismatch) {
		addr, res.ContractAddress, err = verifyContract(final, tweak.Address)
	}
	if err != nil {
		return nil, err
	}
	res.FinalAddress = addr

	evm, err := codec.Encode(generator.EVM, composer.PublicKey(final))
	if err != nil {
		return nil, err
	}
	res.EVMAddress = evm.Value
	if opts.Contract && res.ContractAddress.IsZero() {
		if res.ContractAddress, err = candidate.ContractAddress(evm); err != nil {
			return nil, err
		}
	}

	s.log.Info("tweak verified",
		zap.String("vanity", tweak.Address),
		zap.String("final", res.FinalAddress.Value))
	return res, nil
}

// verifyContract accepts a tool that reports the deployed contract address
// rather than the deployer account.
func verifyContract(final []byte, reported string) (generator.Address, generator.Address, error) {
	account, err := codec.Encode(generator.EVM, composer.PublicKey(final))
	if err != nil {
		return generator.Address{}, generator.Address{}, err
	}
	contract, err := candidate.ContractAddress(account)
	if err != nil {
		return generator.Address{}, generator.Address{}, err
	}
	want, err := ethereum.ParseAddress(reported)
	if err != nil || !strings.EqualFold(contract.Value, ethereum.ChecksumAddress(want)) {
		return generator.Address{}, generator.Address{}, fmt.Errorf("%w: neither account %s nor contract %s is %s",
			composer.ErrTweakMismatch, account.Value, contract.Value, reported)
	}
	return account, contract, nil
}
