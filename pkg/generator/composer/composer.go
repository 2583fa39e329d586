// Package composer combines a locally held secp256k1 key with a tweak found
// by an external search tool. The final key is (seed + tweak) mod n, where n
// is the secp256k1 group order; the tool only ever sees the seed's public key.
package composer

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/candidate"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
)

var (
	ErrInvalidKey    = errors.New("invalid private key")
	ErrInvalidTweak  = errors.New("invalid tweak")
	ErrTweakMismatch = errors.New("composed key does not produce the reported address")
)

// Compose returns (seed + tweak) mod n as 32 big-endian bytes.
// Both inputs must be non-zero scalars below n.
func Compose(seed, tweak []byte) ([]byte, error) {
	var s, t btcec.ModNScalar
	if err := setScalar(&s, seed); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	if err := setScalar(&t, tweak); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTweak, err)
	}

	s.Add(&t)
	if s.IsZero() {
		return nil, fmt.Errorf("%w: sum is zero mod n", ErrInvalidTweak)
	}
	final := s.Bytes()
	return final[:], nil
}

func setScalar(dst *btcec.ModNScalar, b []byte) error {
	if len(b) != 32 {
		return fmt.Errorf("scalar must be 32 bytes, got %d", len(b))
	}
	if overflow := dst.SetByteSlice(b); overflow {
		return errors.New("scalar is not below the group order")
	}
	if dst.IsZero() {
		return errors.New("scalar is zero")
	}
	return nil
}

// ParseKey decodes a 64-character hex scalar, with or without 0x.
func ParseKey(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	if len(s) != 64 {
		return nil, fmt.Errorf("%w: expected 64 hex characters, got %d", ErrInvalidTweak, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTweak, err)
	}
	return b, nil
}

// PublicKey returns the 64-byte x||y public key of a private scalar.
func PublicKey(priv []byte) []byte {
	_, pub := btcec.PrivKeyFromBytes(priv)
	return pub.SerializeUncompressed()[1:]
}

// Verify checks that final produces the EVM address the tool reported and
// returns final's address on chain (EVM or Tron).
func Verify(chain generator.Chain, final []byte, reported string) (generator.Address, error) {
	if chain.KeyScheme() != generator.Secp256k1 {
		return generator.Address{}, fmt.Errorf("%w: %s", generator.ErrUnsupportedChain, chain)
	}
	pub := PublicKey(final)
	evm, err := codec.Encode(generator.EVM, pub)
	if err != nil {
		return generator.Address{}, err
	}

	want := reported
	if !strings.HasPrefix(want, "0x") {
		want = "0x" + want
	}
	if !strings.EqualFold(evm.Value, want) {
		return generator.Address{}, fmt.Errorf("%w: computed %s, tool reported %s", ErrTweakMismatch, evm.Value, reported)
	}
	if chain == generator.EVM {
		return evm, nil
	}
	return codec.Encode(chain, pub)
}

// Recovery is the key set re-derived from a mnemonic, optionally combined
// with a tweak.
type Recovery struct {
	Chain      generator.Chain
	Path       string
	SeedKey    []byte
	Address    generator.Address
	EVMAddress string

	// Set only when a tweak was supplied.
	FinalKey        []byte
	FinalAddress    generator.Address
	FinalEVMAddress string
}

// HasFinal reports whether a tweak was applied.
func (r *Recovery) HasFinal() bool {
	return r.FinalKey != nil
}

// Recover re-derives the seed key at account/index and, when tweakHex is
// not empty, recomposes the final key.
func Recover(chain generator.Chain, phrase string, account, index uint32, tweakHex string) (*Recovery, error) {
	c, err := candidate.FromMnemonic(chain, phrase, account, index)
	if err != nil {
		return nil, err
	}
	rec := &Recovery{Chain: chain, Path: c.Mnemonic.Path, SeedKey: c.Key.PrivateKey}

	if rec.Address, rec.EVMAddress, err = addresses(chain, c.Key.PublicKey); err != nil {
		return nil, err
	}
	if strings.TrimSpace(tweakHex) == "" {
		return rec, nil
	}

	tweak, err := ParseKey(tweakHex)
	if err != nil {
		return nil, err
	}
	if rec.FinalKey, err = Compose(c.Key.PrivateKey, tweak); err != nil {
		return nil, err
	}
	if rec.FinalAddress, rec.FinalEVMAddress, err = addresses(chain, PublicKey(rec.FinalKey)); err != nil {
		return nil, err
	}
	return rec, nil
}

func addresses(chain generator.Chain, pub []byte) (generator.Address, string, error) {
	evm, err := codec.Encode(generator.EVM, pub)
	if err != nil {
		return generator.Address{}, "", err
	}
	if chain == generator.EVM {
		return evm, evm.Value, nil
	}
	addr, err := codec.Encode(chain, pub)
	return addr, evm.Value, err
}
