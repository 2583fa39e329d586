package cpu

import (
	"context"
	"errors"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/candidate"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
	"github.com/Amr-9/hexseed/pkg/generator/matcher"
)

// State is the phase a search loop is in.
type State int

const (
	Searching State = iota
	Found
	Finalizing
	Done
)

func (s State) String() string {
	switch s {
	case Searching:
		return "searching"
	case Found:
		return "found"
	case Finalizing:
		return "finalizing"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}

// StateHook observes loop transitions. It runs on the worker goroutine.
type StateHook func(workerID int, s State)

// searchLoop is one worker's generate/encode/match cycle. It yields at most
// one result and is discarded afterwards.
type searchLoop struct {
	id       int
	criteria *generator.MatchCriteria
	matcher  *matcher.Matcher
	attempts *uint64
	log      *zap.Logger
	hook     StateHook
	generate func(generator.Chain) (candidate.Candidate, error)
	rederive func(candidate.Candidate) (generator.Address, error)
	local    uint64
}

func (l *searchLoop) transition(s State) {
	if l.hook != nil {
		l.hook(l.id, s)
	}
}

// run searches until a verified match, cancellation or a fatal error.
// The bool is false when ctx ended the search.
func (l *searchLoop) run(ctx context.Context) (generator.Result, bool, error) {
	l.transition(Searching)
	for {
		select {
		case <-ctx.Done():
			l.transition(Done)
			return generator.Result{}, false, nil
		default:
		}

		c, err := l.generate(l.criteria.Chain)
		if err != nil {
			if errors.Is(err, generator.ErrEntropy) {
				l.transition(Done)
				return generator.Result{}, false, err
			}
			l.log.Debug("candidate discarded", zap.Int("worker", l.id), zap.Error(err))
			continue
		}
		atomic.AddUint64(l.attempts, 1)
		l.local++

		addr, err := c.Address()
		if err != nil {
			l.log.Debug("encoding failed", zap.Int("worker", l.id), zap.Error(err))
			continue
		}
		subject := addr
		var contract generator.Address
		if l.criteria.Contract {
			if contract, err = candidate.ContractAddress(addr); err != nil {
				continue
			}
			subject = contract
		}
		if !l.matcher.Matches(subject) {
			continue
		}

		l.transition(Found)
		l.transition(Finalizing)
		again, err := l.rederive(c)
		if err != nil || again != addr {
			l.log.Warn("match failed re-derivation, discarding",
				zap.Int("worker", l.id), zap.String("address", addr.Value), zap.Error(err))
			l.transition(Searching)
			continue
		}

		result := generator.Result{
			Chain:           c.Chain,
			Address:         addr,
			ContractAddress: contract,
			Key:             c.Key,
			Mnemonic:        c.Mnemonic,
			WorkerID:        l.id,
			Attempts:        l.local,
		}
		if c.Chain == generator.Tron {
			if evm, err := codec.Encode(generator.EVM, c.Key.PublicKey); err == nil {
				result.EVMAddress = evm.Value
			}
		}
		l.transition(Done)
		return result, true, nil
	}
}
