package codec

import (
	"bytes"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/ethereum"
	"github.com/Amr-9/hexseed/pkg/generator/tron"
)

func keyOne(t *testing.T) []byte {
	t.Helper()
	priv := make([]byte, 32)
	priv[31] = 1
	pub, err := ethereum.PublicKeyFromPrivate(priv)
	require.NoError(t, err)
	return pub
}

func TestEncodeKnownVectors(t *testing.T) {
	edPub := make([]byte, 32)
	for i := range edPub {
		edPub[i] = byte(i + 1)
	}

	tests := []struct {
		name  string
		chain generator.Chain
		pub   []byte
		want  string
	}{
		{"evm generator point", generator.EVM, keyOne(t), "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"},
		{"tron generator point", generator.Tron, keyOne(t), "TMVQGm1qAQYVdetCeGRRkTWYYrLXuHK2HC"},
		{"solana sequential key", generator.Solana, edPub, "4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw"},
		{"solana zero key", generator.Solana, make([]byte, 32), "11111111111111111111111111111111"},
		{"aptos sequential key", generator.Aptos, edPub, "0x2bea8052d9a220809d3f687221065f8147c84b44fe91a9ea0145a960810dd359"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := Encode(tt.chain, tt.pub)
			require.NoError(t, err)
			assert.Equal(t, tt.want, addr.Value)
			assert.Equal(t, tt.chain, addr.Chain)
		})
	}
}

func TestEncodeDeterministic(t *testing.T) {
	pub := keyOne(t)
	for _, chain := range []generator.Chain{generator.EVM, generator.Tron} {
		a, err := Encode(chain, pub)
		require.NoError(t, err)
		b, err := Encode(chain, bytes.Clone(pub))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	}
}

func TestEncodeTronIsBase58Check(t *testing.T) {
	addr, err := Encode(generator.Tron, keyOne(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(addr.Value, "T"))
	assert.True(t, tron.IsValidAddress(addr.Value))

	hash, err := tron.DecodeAddress(addr.Value)
	require.NoError(t, err)
	assert.Equal(t, "7e5f4552091a69125d5dfcb7b8c2659029395bdf", hex.EncodeToString(hash))
}

func TestEncodeRejectsMalformedKeys(t *testing.T) {
	for _, chain := range []generator.Chain{generator.EVM, generator.Tron, generator.Solana, generator.Aptos} {
		_, err := Encode(chain, make([]byte, 7))
		assert.ErrorIs(t, err, generator.ErrEncoding, chain.String())
	}
	_, err := Encode(generator.Chain(42), make([]byte, 32))
	assert.ErrorIs(t, err, generator.ErrUnsupportedChain)
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		name          string
		chain         generator.Chain
		pattern       string
		caseSensitive bool
		wantErr       error
	}{
		{"evm hex", generator.EVM, "dEaD", false, nil},
		{"evm g rejected", generator.EVM, "g", false, generator.ErrInvalidPattern},
		{"solana g accepted", generator.Solana, "g", false, nil},
		{"solana zero rejected", generator.Solana, "0", false, generator.ErrInvalidPattern},
		{"solana capital O rejected when sensitive", generator.Solana, "O", true, generator.ErrInvalidPattern},
		{"solana L folds to l", generator.Solana, "L", false, nil},
		{"solana l rejected when sensitive", generator.Solana, "l", true, generator.ErrInvalidPattern},
		{"tron leading T", generator.Tron, "TAb", true, nil},
		{"aptos 0x rejected", generator.Aptos, "0x00", false, generator.ErrInvalidPattern},
		{"empty", generator.EVM, "", true, nil},
		{"twenty characters", generator.EVM, strings.Repeat("a", 20), false, nil},
		{"twenty one characters", generator.EVM, strings.Repeat("a", 21), false, generator.ErrPatternTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePattern(tt.chain, tt.pattern, tt.caseSensitive)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidatePatternNamesOffendingCharacters(t *testing.T) {
	err := ValidatePattern(generator.EVM, "xyzx", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "x, y, z")
	assert.Contains(t, err.Error(), "evm")
}

func TestValidateCriteria(t *testing.T) {
	ok := &generator.MatchCriteria{Chain: generator.EVM, Prefixes: []string{"dead", "beef"}, Suffixes: []string{"00"}}
	assert.NoError(t, ValidateCriteria(ok))

	bad := &generator.MatchCriteria{Chain: generator.EVM, Prefixes: []string{"dead"}, Suffixes: []string{"zz"}}
	assert.ErrorIs(t, ValidateCriteria(bad), generator.ErrInvalidPattern)

	contract := &generator.MatchCriteria{Chain: generator.Solana, Contract: true}
	assert.ErrorIs(t, ValidateCriteria(contract), generator.ErrInvalidPattern)
}

func TestValidateCriteriaTronPrefix(t *testing.T) {
	tests := []struct {
		name          string
		prefix        string
		caseSensitive bool
		wantErr       bool
	}{
		{"upper T", "TAbc", false, false},
		{"lower t folded", "tp", false, false},
		{"lower t exact", "tp", true, true},
		{"no T", "dead", false, true},
		{"no T exact", "Abc", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &generator.MatchCriteria{Chain: generator.Tron, Prefixes: []string{tt.prefix}, CaseSensitive: tt.caseSensitive}
			err := ValidateCriteria(c)
			if tt.wantErr {
				assert.ErrorIs(t, err, generator.ErrInvalidPattern)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	suffixOnly := &generator.MatchCriteria{Chain: generator.Tron, Suffixes: []string{"xyz"}}
	assert.NoError(t, ValidateCriteria(suffixOnly))
}
