// Package candidate produces fresh key material for the search loop.
//
// secp256k1 chains draw a 24-word BIP39 mnemonic and derive along BIP44, so a
// found address is recoverable from the phrase alone. ed25519 chains draw a
// raw keypair whose 32-byte seed is the private key.
package candidate

import (
	"crypto/ed25519"
	"errors"
	"fmt"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/aptos"
	"github.com/Amr-9/hexseed/pkg/generator/codec"
	"github.com/Amr-9/hexseed/pkg/generator/ethereum"
	"github.com/Amr-9/hexseed/pkg/generator/hd"
	"github.com/Amr-9/hexseed/pkg/generator/solana"
)

// Candidate is one key drawn from the entropy source. Mnemonic is nil for
// ed25519 chains.
type Candidate struct {
	Chain    generator.Chain
	Key      generator.KeyMaterial
	Mnemonic *generator.Mnemonic
}

// CoinType returns the BIP44 coin type for a mnemonic-backed chain.
func CoinType(chain generator.Chain) (uint32, error) {
	switch chain {
	case generator.EVM:
		return hd.CoinTypeEthereum, nil
	case generator.Tron:
		return hd.CoinTypeTron, nil
	default:
		return 0, fmt.Errorf("%w: %s has no derivation path", generator.ErrUnsupportedChain, chain)
	}
}

// Generate draws a new candidate for chain. Entropy failures wrap
// generator.ErrEntropy and should end the search.
func Generate(chain generator.Chain) (Candidate, error) {
	switch chain {
	case generator.EVM, generator.Tron:
		phrase, err := hd.NewMnemonic()
		if err != nil {
			return Candidate{}, fmt.Errorf("%w: %v", generator.ErrEntropy, err)
		}
		coin, _ := CoinType(chain)
		return fromPhrase(chain, phrase, hd.DefaultPath(coin))
	case generator.Solana:
		seed, pub, err := solana.GenerateKey()
		if err != nil {
			return Candidate{}, fmt.Errorf("%w: %v", generator.ErrEntropy, err)
		}
		return Candidate{Chain: chain, Key: generator.KeyMaterial{PrivateKey: seed, PublicKey: pub}}, nil
	case generator.Aptos:
		seed, pub, err := aptos.GenerateKey()
		if err != nil {
			return Candidate{}, fmt.Errorf("%w: %v", generator.ErrEntropy, err)
		}
		return Candidate{Chain: chain, Key: generator.KeyMaterial{PrivateKey: seed, PublicKey: pub}}, nil
	default:
		return Candidate{}, fmt.Errorf("%w: %d", generator.ErrUnsupportedChain, int(chain))
	}
}

// FromMnemonic rebuilds the candidate for an existing phrase at account/index.
func FromMnemonic(chain generator.Chain, phrase string, account, index uint32) (Candidate, error) {
	coin, err := CoinType(chain)
	if err != nil {
		return Candidate{}, err
	}
	path := hd.Path{CoinType: coin, Account: account, Index: index}
	if err := path.Validate(); err != nil {
		return Candidate{}, err
	}
	return fromPhrase(chain, hd.NormalizeMnemonic(phrase), path)
}

func fromPhrase(chain generator.Chain, phrase string, path hd.Path) (Candidate, error) {
	priv, err := hd.DeriveKey(phrase, path)
	if err != nil {
		return Candidate{}, err
	}
	pub, err := ethereum.PublicKeyFromPrivate(priv)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{
		Chain:    chain,
		Key:      generator.KeyMaterial{PrivateKey: priv, PublicKey: pub},
		Mnemonic: &generator.Mnemonic{Phrase: phrase, Path: path.String()},
	}, nil
}

// Address encodes the candidate's public key.
func (c Candidate) Address() (generator.Address, error) {
	return codec.Encode(c.Chain, c.Key.PublicKey)
}

// Rederive recomputes the address from the secret alone: the mnemonic and
// path for HD candidates, the seed for raw ones. The cached public key is
// not consulted.
func Rederive(c Candidate) (generator.Address, error) {
	var pub []byte
	switch {
	case c.Mnemonic != nil:
		path, err := hd.ParsePath(c.Mnemonic.Path)
		if err != nil {
			return generator.Address{}, err
		}
		priv, err := hd.DeriveKey(c.Mnemonic.Phrase, path)
		if err != nil {
			return generator.Address{}, err
		}
		if pub, err = ethereum.PublicKeyFromPrivate(priv); err != nil {
			return generator.Address{}, err
		}
	case c.Chain.KeyScheme() == generator.Ed25519:
		if len(c.Key.PrivateKey) != ed25519.SeedSize {
			return generator.Address{}, fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(c.Key.PrivateKey))
		}
		pub = ed25519.NewKeyFromSeed(c.Key.PrivateKey).Public().(ed25519.PublicKey)
	default:
		return generator.Address{}, errors.New("candidate has neither mnemonic nor seed")
	}
	return codec.Encode(c.Chain, pub)
}

// ContractAddress returns the address a CREATE at nonce 0 from account deploys to.
func ContractAddress(account generator.Address) (generator.Address, error) {
	if account.Chain != generator.EVM {
		return generator.Address{}, fmt.Errorf("%w: contract addresses are EVM only", generator.ErrUnsupportedChain)
	}
	addr, err := ethereum.ParseAddress(account.Value)
	if err != nil {
		return generator.Address{}, err
	}
	return generator.Address{Chain: generator.EVM, Value: ethereum.ChecksumAddress(ethereum.ContractAddress(addr))}, nil
}
