// Package aptos derives Aptos account addresses from Ed25519 keys.
package aptos

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// SingleKeyScheme is the authentication key scheme byte for single Ed25519 signers.
const SingleKeyScheme = 0x00

// DeriveAddress derives an Aptos address from an Ed25519 public key.
// Formula: SHA3-256(pubkey || 0x00), hex encoded with 0x prefix.
func DeriveAddress(pubKey []byte) (string, error) {
	if len(pubKey) != ed25519.PublicKeySize {
		return "", fmt.Errorf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(pubKey))
	}
	data := make([]byte, len(pubKey)+1)
	copy(data, pubKey)
	data[len(pubKey)] = SingleKeyScheme

	hash := sha3.Sum256(data)
	return "0x" + hex.EncodeToString(hash[:]), nil
}

// GenerateKey draws a fresh Ed25519 keypair and returns its seed and public key.
func GenerateKey() (seed, pubKey []byte, err error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return priv.Seed(), pub, nil
}
