// Package ethereum derives EVM account addresses from secp256k1 keys.
package ethereum

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// PublicKeyLen is the length of an uncompressed public key without the 0x04 marker.
const PublicKeyLen = 64

// DeriveAddress returns the last 20 bytes of Keccak256(x || y).
// Both the 64-byte form and the 65-byte 0x04-prefixed form are accepted.
func DeriveAddress(pubKey []byte) (common.Address, error) {
	xy, err := trimPublicKey(pubKey)
	if err != nil {
		return common.Address{}, err
	}
	hash := crypto.Keccak256(xy)
	return common.BytesToAddress(hash[12:]), nil
}

// ChecksumAddress returns the EIP-55 mixed-case form with 0x prefix.
func ChecksumAddress(addr common.Address) string {
	return addr.Hex()
}

// ContractAddress returns the address a CREATE from addr at nonce 0 deploys to.
func ContractAddress(addr common.Address) common.Address {
	return crypto.CreateAddress(addr, 0)
}

// PublicKeyFromPrivate computes the 64-byte public key for a 32-byte scalar.
func PublicKeyFromPrivate(privKey []byte) ([]byte, error) {
	key, err := crypto.ToECDSA(privKey)
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return crypto.FromECDSAPub(&key.PublicKey)[1:], nil
}

// ParseAddress decodes a 0x-prefixed 40-character hex address.
func ParseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, fmt.Errorf("not a hex address: %q", s)
	}
	return common.HexToAddress(s), nil
}

func trimPublicKey(pubKey []byte) ([]byte, error) {
	switch {
	case len(pubKey) == PublicKeyLen:
		return pubKey, nil
	case len(pubKey) == PublicKeyLen+1 && pubKey[0] == 0x04:
		return pubKey[1:], nil
	default:
		return nil, fmt.Errorf("public key must be %d bytes, got %d", PublicKeyLen, len(pubKey))
	}
}
