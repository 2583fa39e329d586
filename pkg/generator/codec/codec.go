// Package codec turns public keys into chain addresses and checks that
// vanity patterns can occur in a chain's address alphabet.
package codec

import (
	"fmt"
	"strings"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/aptos"
	"github.com/Amr-9/hexseed/pkg/generator/ethereum"
	"github.com/Amr-9/hexseed/pkg/generator/solana"
	"github.com/Amr-9/hexseed/pkg/generator/tron"
)

// Encode derives the canonical address for pub on chain.
// secp256k1 keys are 64 bytes (x||y), ed25519 keys 32 bytes.
func Encode(chain generator.Chain, pub []byte) (generator.Address, error) {
	var (
		value string
		err   error
	)
	switch chain {
	case generator.EVM:
		addr, derr := ethereum.DeriveAddress(pub)
		value, err = ethereum.ChecksumAddress(addr), derr
	case generator.Tron:
		value, err = tron.DeriveAddress(pub)
	case generator.Solana:
		value, err = solana.DeriveAddress(pub)
	case generator.Aptos:
		value, err = aptos.DeriveAddress(pub)
	default:
		return generator.Address{}, fmt.Errorf("%w: %d", generator.ErrUnsupportedChain, int(chain))
	}
	if err != nil {
		return generator.Address{}, fmt.Errorf("%w: %s: %v", generator.ErrEncoding, chain, err)
	}
	return generator.Address{Chain: chain, Value: value}, nil
}

// ValidatePattern checks length and alphabet of a single prefix or suffix.
// Without case sensitivity both pattern and alphabet are folded to lower case.
func ValidatePattern(chain generator.Chain, pattern string, caseSensitive bool) error {
	if len(pattern) > generator.MaxPatternLength {
		return fmt.Errorf("%w: %s pattern %q has %d characters, max %d",
			generator.ErrPatternTooLong, chain, pattern, len(pattern), generator.MaxPatternLength)
	}

	alphabet := chain.Alphabet()
	subject := pattern
	if !caseSensitive {
		alphabet = strings.ToLower(alphabet)
		subject = strings.ToLower(pattern)
	}

	var bad []string
	seen := make(map[rune]bool)
	for _, r := range subject {
		if !strings.ContainsRune(alphabet, r) && !seen[r] {
			seen[r] = true
			bad = append(bad, string(r))
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s pattern %q contains characters outside the %s alphabet: %s",
			generator.ErrInvalidPattern, chain, pattern, chain.AlphabetName(), strings.Join(bad, ", "))
	}
	return nil
}

// ValidateCriteria validates every pattern in c.
func ValidateCriteria(c *generator.MatchCriteria) error {
	if c == nil {
		return fmt.Errorf("%w: no criteria", generator.ErrInvalidPattern)
	}
	if c.Contract && c.Chain != generator.EVM {
		return fmt.Errorf("%w: contract mode is EVM only, got %s", generator.ErrInvalidPattern, c.Chain)
	}
	for _, group := range [][]string{c.Prefixes, c.Suffixes} {
		for _, p := range group {
			if err := ValidatePattern(c.Chain, p, c.CaseSensitive); err != nil {
				return err
			}
		}
	}
	if c.Chain == generator.Tron {
		for _, p := range c.Prefixes {
			if err := validateTronPrefix(p, c.CaseSensitive); err != nil {
				return err
			}
		}
	}
	return nil
}

// validateTronPrefix rejects prefixes that cannot match, since every mainnet
// Tron address starts with T.
func validateTronPrefix(p string, caseSensitive bool) error {
	if strings.HasPrefix(p, "T") || (!caseSensitive && strings.HasPrefix(p, "t")) {
		return nil
	}
	return fmt.Errorf("%w: tron prefix %q must start with T", generator.ErrInvalidPattern, p)
}
