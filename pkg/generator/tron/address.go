// Package tron provides Tron address encoding and checksum validation.
package tron

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/Amr-9/hexseed/pkg/generator/ethereum"
)

// TronMainnetPrefix is the address prefix for Tron mainnet (0x41)
const TronMainnetPrefix = 0x41

// DeriveAddress derives a Tron address from a secp256k1 public key.
// Tron address = Base58Check(0x41 + last 20 bytes of Keccak256(x || y))
// All Tron addresses start with 'T'.
func DeriveAddress(pubKeyBytes []byte) (string, error) {
	addr, err := ethereum.DeriveAddress(pubKeyBytes)
	if err != nil {
		return "", err
	}
	return FromEVMBytes(addr.Bytes())
}

// FromEVMBytes converts a 20-byte EVM address hash to its Tron form.
func FromEVMBytes(hash []byte) (string, error) {
	if len(hash) != 20 {
		return "", fmt.Errorf("address hash must be 20 bytes, got %d", len(hash))
	}
	return Base58CheckEncode(hash), nil
}

// Base58CheckEncode encodes a 20-byte hash as 0x41 || hash || checksum in Base58,
// where checksum is the first 4 bytes of SHA256(SHA256(0x41 || hash)).
func Base58CheckEncode(hash []byte) string {
	return base58.CheckEncode(hash, TronMainnetPrefix)
}

// DecodeAddress verifies the checksum and mainnet prefix of a Tron address
// and returns the 20-byte hash it carries.
func DecodeAddress(address string) ([]byte, error) {
	hash, version, err := base58.CheckDecode(address)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", address, err)
	}
	if version != TronMainnetPrefix {
		return nil, fmt.Errorf("decode %q: unexpected version byte 0x%02x", address, version)
	}
	if len(hash) != 20 {
		return nil, fmt.Errorf("decode %q: payload is %d bytes", address, len(hash))
	}
	return hash, nil
}

// IsValidAddress reports whether s is a checksummed mainnet Tron address.
func IsValidAddress(s string) bool {
	if !strings.HasPrefix(s, "T") {
		return false
	}
	_, err := DecodeAddress(s)
	return err == nil
}
