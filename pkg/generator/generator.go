// Package generator defines the shared types for vanity address generation.
// Chain-specific encoding lives in the per-chain sub-packages; the search
// backends (CPU worker pool, delegated GPU tool) consume the types here.
package generator

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Errors shared by every backend.
var (
	ErrUnsupportedChain = errors.New("unsupported chain")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrPatternTooLong   = errors.New("pattern too long")
	ErrEncoding         = errors.New("address encoding failed")
	ErrEntropy          = errors.New("entropy source exhausted")
)

// MaxPatternLength is the longest prefix or suffix accepted.
const MaxPatternLength = 20

// Pattern alphabets.
const (
	HexAlphabet    = "0123456789abcdefABCDEF"
	Base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
)

// Chain represents the blockchain address scheme for generation.
type Chain int

const (
	EVM    Chain = iota // secp256k1, Keccak-256, Hex (EIP-55)
	Tron                // secp256k1, Keccak-256, Base58Check
	Solana              // Ed25519, Base58
	Aptos               // Ed25519, SHA3-256, Hex
)

// String returns the canonical chain name as used on the command line.
func (c Chain) String() string {
	switch c {
	case EVM:
		return "evm"
	case Tron:
		return "tron"
	case Solana:
		return "solana"
	case Aptos:
		return "aptos"
	default:
		return "unknown"
	}
}

// ParseChain resolves a chain name or common alias.
func ParseChain(name string) (Chain, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "evm", "eth", "ethereum":
		return EVM, nil
	case "tron", "trx":
		return Tron, nil
	case "solana", "sol":
		return Solana, nil
	case "aptos", "apt":
		return Aptos, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedChain, name)
	}
}

// KeyScheme identifies the signature curve behind a chain.
type KeyScheme int

const (
	Secp256k1 KeyScheme = iota
	Ed25519
)

// KeyScheme returns the curve the chain signs with.
func (c Chain) KeyScheme() KeyScheme {
	if c == Solana || c == Aptos {
		return Ed25519
	}
	return Secp256k1
}

// UsesMnemonic reports whether candidates are derived from a BIP39 mnemonic.
func (c Chain) UsesMnemonic() bool {
	return c.KeyScheme() == Secp256k1
}

// Alphabet returns the characters an address pattern may contain.
func (c Chain) Alphabet() string {
	if c == Tron || c == Solana {
		return Base58Alphabet
	}
	return HexAlphabet
}

// AlphabetName returns a short human-readable alphabet label.
func (c Chain) AlphabetName() string {
	if c.Alphabet() == Base58Alphabet {
		return "base58"
	}
	return "hex"
}

// Address is a chain-tagged canonical address string.
type Address struct {
	Chain Chain
	Value string
}

// String returns the canonical address.
func (a Address) String() string {
	return a.Value
}

// Body returns the part of the address patterns are matched against:
// hex chains drop their 0x marker, Base58 chains match the whole string.
func (a Address) Body() string {
	if a.Chain == EVM || a.Chain == Aptos {
		return strings.TrimPrefix(a.Value, "0x")
	}
	return a.Value
}

// IsZero reports whether the address is unset.
func (a Address) IsZero() bool {
	return a.Value == ""
}

// KeyMaterial holds a private scalar (secp256k1) or signing seed (ed25519)
// together with its public key bytes. Public keys are 64 bytes (x||y) for
// secp256k1 and 32 bytes for ed25519.
type KeyMaterial struct {
	PrivateKey []byte
	PublicKey  []byte
}

// String never prints the private key.
func (k KeyMaterial) String() string {
	return fmt.Sprintf("KeyMaterial{public: %x, private: <redacted>}", k.PublicKey)
}

// Mnemonic is a BIP39 phrase and the path the key was derived at.
type Mnemonic struct {
	Phrase string
	Path   string
}

// MatchCriteria is the only predicate a search is configured with.
type MatchCriteria struct {
	Chain         Chain
	Prefixes      []string // OR within the group
	Suffixes      []string // OR within the group
	CaseSensitive bool
	Contract      bool // EVM only: match the CREATE address at nonce 0
}

// IsEmpty reports whether the criteria accept every address.
func (c *MatchCriteria) IsEmpty() bool {
	return len(c.Prefixes) == 0 && len(c.Suffixes) == 0
}

// Describe renders the criteria for logs and console output.
func (c *MatchCriteria) Describe() string {
	parts := make([]string, 0, 2)
	if len(c.Prefixes) > 0 {
		parts = append(parts, "prefix "+strings.Join(c.Prefixes, "|"))
	}
	if len(c.Suffixes) > 0 {
		parts = append(parts, "suffix "+strings.Join(c.Suffixes, "|"))
	}
	if len(parts) == 0 {
		return "any address"
	}
	desc := strings.Join(parts, " and ")
	if c.CaseSensitive {
		desc += " (case-sensitive)"
	}
	return desc
}

// Result contains a successfully found vanity address and its keys.
type Result struct {
	Chain           Chain
	Address         Address
	ContractAddress Address // EVM contract mode only
	EVMAddress      string  // Tron only: the underlying 0x address
	Key             KeyMaterial
	Mnemonic        *Mnemonic // nil for raw ed25519 keys
	WorkerID        int
	Attempts        uint64
}

// MatchedAddress returns the address the criteria were applied to.
func (r Result) MatchedAddress() Address {
	if !r.ContractAddress.IsZero() {
		return r.ContractAddress
	}
	return r.Address
}

// Stats holds real-time performance statistics.
type Stats struct {
	Attempts    uint64  // Total number of addresses generated
	HashRate    float64 // Current addresses per second
	ElapsedSecs float64 // Time elapsed since start
}

// Generator defines the contract for address generation backends.
type Generator interface {
	// Start begins the vanity address search with the given criteria.
	// It returns a channel that receives every result in arrival order and
	// is closed when the search stops. The search is cancelled via ctx.
	Start(ctx context.Context, criteria *MatchCriteria) (<-chan Result, error)

	// Stats returns the current performance statistics.
	// This method is safe to call concurrently from any goroutine.
	Stats() Stats

	// Name returns the implementation name (e.g., "CPU").
	Name() string
}
