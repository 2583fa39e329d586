package profanity

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
	"github.com/Amr-9/hexseed/pkg/generator/composer"
	"github.com/Amr-9/hexseed/pkg/generator/tron"
)

// tweakedAddress returns the EVM address of pub + t*G, which is what the
// tool reports for tweak t.
func tweakedAddress(t *testing.T, pubHex string, tweak []byte) string {
	t.Helper()
	raw, err := hex.DecodeString(pubHex)
	require.NoError(t, err)
	pub, err := btcec.ParsePubKey(append([]byte{0x04}, raw...))
	require.NoError(t, err)
	_, tweakPub := btcec.PrivKeyFromBytes(tweak)

	var a, b, sum btcec.JacobianPoint
	pub.AsJacobian(&a)
	tweakPub.AsJacobian(&b)
	btcec.AddNonConst(&a, &b, &sum)
	sum.ToAffine()
	point := btcec.NewPublicKey(&sum.X, &sum.Y).SerializeUncompressed()[1:]

	addr, err := codec.Encode(generator.EVM, point)
	require.NoError(t, err)
	return strings.ToLower(addr.Value)
}

func randomTweak(t *testing.T) []byte {
	t.Helper()
	b := make([]byte, 32)
	_, err := rand.Read(b)
	require.NoError(t, err)
	b[0] &= 0x7f
	return b
}

func resultLine(tweak []byte, address string) string {
	return fmt.Sprintf("  Time:     2s Score:  4 Private: 0x%x Address: %s", tweak, address)
}

// fakeTool plays the external tool: it answers with lines computed from the
// public key it is given, then either exits or waits to be stopped.
type fakeTool struct {
	t       *testing.T
	lines   func(pubHex string) []string
	block   bool
	err     error
	gotArgs []string
}

func (f *fakeTool) Run(ctx context.Context, args []string, onLine func(string)) error {
	f.gotArgs = args
	require.Equal(f.t, "-z", args[0])
	for _, l := range f.lines(args[1]) {
		onLine(l)
	}
	if f.block {
		<-ctx.Done()
		return ctx.Err()
	}
	return f.err
}

func TestSearchComposesAndVerifies(t *testing.T) {
	for _, chain := range []generator.Chain{generator.EVM, generator.Tron} {
		t.Run(chain.String(), func(t *testing.T) {
			tweak := randomTweak(t)
			tool := &fakeTool{t: t, lines: func(pub string) []string {
				return []string{"Devices:", resultLine(tweak, tweakedAddress(t, pub, tweak))}
			}}

			res, err := NewSearcher(tool, nil).Search(context.Background(), &Options{Chain: chain, Mode: ModeZeroBytes})
			require.NoError(t, err)
			assert.Contains(t, tool.gotArgs, "--zero-bytes")

			assert.Equal(t, tweak, res.TweakKey)
			assert.True(t, strings.EqualFold(res.VanityAddress, res.EVMAddress))

			rec, err := composer.Recover(chain, res.Mnemonic.Phrase, 0, 0, hex.EncodeToString(tweak))
			require.NoError(t, err)
			assert.Equal(t, res.SeedKey, rec.SeedKey)
			assert.Equal(t, res.FinalKey, rec.FinalKey)
			assert.Equal(t, res.FinalAddress, rec.FinalAddress)

			if chain == generator.Tron {
				assert.True(t, tron.IsValidAddress(res.FinalAddress.Value))
				assert.Equal(t, "m/44'/195'/0'/0/0", res.Mnemonic.Path)
			} else {
				assert.Equal(t, "m/44'/60'/0'/0/0", res.Mnemonic.Path)
			}
		})
	}
}

func TestSearchStopsWhenPatternReached(t *testing.T) {
	tool := &fakeTool{t: t, block: true, lines: func(pub string) []string {
		for {
			tweak := randomTweak(t)
			addr := tweakedAddress(t, pub, tweak)
			if strings.HasPrefix(addr, "0xa") {
				return []string{resultLine(tweak, addr)}
			}
		}
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := &Options{Chain: generator.EVM, Mode: ModeMatching,
		Criteria: &generator.MatchCriteria{Chain: generator.EVM, Prefixes: []string{"A"}}}
	res, err := NewSearcher(tool, nil).Search(ctx, opts)
	require.NoError(t, err)
	assert.NoError(t, ctx.Err())
	assert.True(t, strings.HasPrefix(strings.ToLower(res.FinalAddress.Value), "0xa"))
	assert.Equal(t, []string{"--matching", "a"}, tool.gotArgs[2:])
}

func TestSearchUsesBestResultOnCancel(t *testing.T) {
	tweak := randomTweak(t)
	tool := &fakeTool{t: t, block: true, lines: func(pub string) []string {
		return []string{resultLine(tweak, tweakedAddress(t, pub, tweak))}
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	res, err := NewSearcher(tool, nil).Search(ctx, &Options{Chain: generator.EVM, Mode: ModeLeading, Leading: "0"})
	require.NoError(t, err)
	assert.Equal(t, tweak, res.TweakKey)
}

func TestSearchMatchingStoppedBeforePattern(t *testing.T) {
	tweak := randomTweak(t)
	tool := &fakeTool{t: t, block: true, lines: func(pub string) []string {
		return []string{resultLine(tweak, tweakedAddress(t, pub, tweak))}
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	opts := &Options{Chain: generator.EVM, Mode: ModeMatching,
		Criteria: &generator.MatchCriteria{Chain: generator.EVM, Prefixes: []string{"deadbeefdeadbeef"}}}
	res, err := NewSearcher(tool, nil).Search(ctx, opts)
	assert.ErrorIs(t, err, ErrPatternNotReached)
	assert.Nil(t, res)
}

func TestSearchRejectsMismatchedTweak(t *testing.T) {
	tweak := randomTweak(t)
	tool := &fakeTool{t: t, lines: func(string) []string {
		return []string{resultLine(tweak, "0x"+strings.Repeat("1", 40))}
	}}

	_, err := NewSearcher(tool, nil).Search(context.Background(), &Options{Chain: generator.EVM, Mode: ModeZeroBytes})
	assert.ErrorIs(t, err, composer.ErrTweakMismatch)
}

func TestSearchContractAddress(t *testing.T) {
	tweak := randomTweak(t)
	tool := &fakeTool{t: t, lines: func(pub string) []string {
		return []string{resultLine(tweak, tweakedAddress(t, pub, tweak))}
	}}

	res, err := NewSearcher(tool, nil).Search(context.Background(),
		&Options{Chain: generator.EVM, Mode: ModeZeroBytes, Contract: true})
	require.NoError(t, err)
	assert.False(t, res.ContractAddress.IsZero())
	assert.Contains(t, tool.gotArgs, "--contract")
}

func TestSearchToolErrors(t *testing.T) {
	failed := fmt.Errorf("%w: exit status 1: no OpenCL devices", ErrToolFailed)
	tool := &fakeTool{t: t, err: failed, lines: func(string) []string { return []string{"Devices:"} }}
	_, err := NewSearcher(tool, nil).Search(context.Background(), &Options{Chain: generator.EVM, Mode: ModeZeroBytes})
	assert.ErrorIs(t, err, ErrToolFailed)

	silent := &fakeTool{t: t, lines: func(string) []string { return nil }}
	_, err = NewSearcher(silent, nil).Search(context.Background(), &Options{Chain: generator.EVM, Mode: ModeZeroBytes})
	assert.ErrorIs(t, err, ErrUnparsableOutput)

	tweak := randomTweak(t)
	late := &fakeTool{t: t, err: errors.New("boom"), lines: func(pub string) []string {
		return []string{resultLine(tweak, tweakedAddress(t, pub, tweak))}
	}}
	_, err = NewSearcher(late, nil).Search(context.Background(), &Options{Chain: generator.EVM, Mode: ModeZeroBytes})
	assert.EqualError(t, err, "boom")
}

func TestSearchValidatesFirst(t *testing.T) {
	tool := &fakeTool{t: t, lines: func(string) []string {
		t.Fatal("tool must not run")
		return nil
	}}
	_, err := NewSearcher(tool, nil).Search(context.Background(), &Options{Chain: generator.Solana, Mode: ModeZeroBytes})
	assert.ErrorIs(t, err, generator.ErrUnsupportedChain)
}
