// Package hd derives secp256k1 keys from BIP39 mnemonics along BIP44 paths.
package hd

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/tyler-smith/go-bip39"
)

// EntropyBits yields a 24-word mnemonic.
const EntropyBits = 256

// BIP44 coin types.
const (
	CoinTypeEthereum uint32 = 60
	CoinTypeTron     uint32 = 195
)

// MaxPathIndex bounds the account and address index accepted for recovery.
const MaxPathIndex = 99999

// ErrInvalidMnemonic is returned for phrases that fail the BIP39 checksum.
var ErrInvalidMnemonic = errors.New("invalid mnemonic")

// Path is a BIP44 path m/44'/coin'/account'/0/index.
type Path struct {
	CoinType uint32
	Account  uint32
	Index    uint32
}

// DefaultPath returns m/44'/coin'/0'/0/0.
func DefaultPath(coinType uint32) Path {
	return Path{CoinType: coinType}
}

// String renders the path in the usual m/44'/... notation.
func (p Path) String() string {
	return fmt.Sprintf("m/44'/%d'/%d'/0/%d", p.CoinType, p.Account, p.Index)
}

// Validate checks the account and index range.
func (p Path) Validate() error {
	if p.Account > MaxPathIndex {
		return fmt.Errorf("account %d out of range 0-%d", p.Account, MaxPathIndex)
	}
	if p.Index > MaxPathIndex {
		return fmt.Errorf("index %d out of range 0-%d", p.Index, MaxPathIndex)
	}
	return nil
}

// ParsePath parses m/44'/coin'/account'/0/index.
func ParsePath(s string) (Path, error) {
	parts := strings.Split(strings.TrimSpace(s), "/")
	if len(parts) != 6 || parts[0] != "m" || parts[1] != "44'" || parts[4] != "0" {
		return Path{}, fmt.Errorf("unsupported derivation path %q", s)
	}
	coin, err := parseHardened(parts[2])
	if err != nil {
		return Path{}, fmt.Errorf("path %q: coin type: %w", s, err)
	}
	account, err := parseHardened(parts[3])
	if err != nil {
		return Path{}, fmt.Errorf("path %q: account: %w", s, err)
	}
	index, err := strconv.ParseUint(parts[5], 10, 31)
	if err != nil {
		return Path{}, fmt.Errorf("path %q: index: %w", s, err)
	}
	p := Path{CoinType: coin, Account: account, Index: uint32(index)}
	return p, p.Validate()
}

func parseHardened(s string) (uint32, error) {
	if !strings.HasSuffix(s, "'") {
		return 0, fmt.Errorf("%q is not hardened", s)
	}
	v, err := strconv.ParseUint(strings.TrimSuffix(s, "'"), 10, 31)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// NewMnemonic draws 256 bits from crypto/rand and encodes them as 24 words.
func NewMnemonic() (string, error) {
	entropy := make([]byte, EntropyBits/8)
	if _, err := rand.Read(entropy); err != nil {
		return "", fmt.Errorf("failed to generate entropy: %w", err)
	}
	return bip39.NewMnemonic(entropy)
}

// NormalizeMnemonic collapses whitespace and lowercases the phrase.
func NormalizeMnemonic(phrase string) string {
	return strings.ToLower(strings.Join(strings.Fields(phrase), " "))
}

// DeriveKey derives the 32-byte private scalar at path from the mnemonic.
// The BIP39 passphrase is always empty.
func DeriveKey(phrase string, path Path) ([]byte, error) {
	if !bip39.IsMnemonicValid(phrase) {
		return nil, ErrInvalidMnemonic
	}
	seed := bip39.NewSeed(phrase, "")

	master, err := hdkeychain.NewMaster(seed, &chaincfg.MainNetParams)
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}

	key := master
	for _, child := range []uint32{
		hdkeychain.HardenedKeyStart + 44,
		hdkeychain.HardenedKeyStart + path.CoinType,
		hdkeychain.HardenedKeyStart + path.Account,
		0,
		path.Index,
	} {
		key, err = key.Derive(child)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", path, err)
		}
	}

	priv, err := key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to extract private key: %w", err)
	}
	return priv.Serialize(), nil
}
