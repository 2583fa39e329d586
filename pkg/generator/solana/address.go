// Package solana derives Solana addresses from Ed25519 keys.
// Solana addresses are the Base58-encoded 32-byte public key, no checksum.
package solana

import (
	"crypto/ed25519"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// DeriveAddress encodes an Ed25519 public key as a Solana address.
func DeriveAddress(pubKey []byte) (string, error) {
	if len(pubKey) != ed25519.PublicKeySize {
		return "", fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pubKey))
	}
	return base58.Encode(pubKey), nil
}

// GenerateKey draws a fresh keypair and returns its 32-byte seed and public key.
func GenerateKey() (seed, pubKey []byte, err error) {
	priv, err := solanago.NewRandomPrivateKey()
	if err != nil {
		return nil, nil, err
	}
	pub := priv.PublicKey()
	return ed25519.PrivateKey(priv).Seed(), pub[:], nil
}

// SecretKey returns the 64-byte keypair (seed || public key) in Base58,
// the form Solana wallets import.
func SecretKey(seed []byte) (string, error) {
	if len(seed) != ed25519.SeedSize {
		return "", fmt.Errorf("seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	return solanago.PrivateKey(ed25519.NewKeyFromSeed(seed)).String(), nil
}
