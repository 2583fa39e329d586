package output

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Amr-9/hexseed/pkg/generator"
	"github.com/Amr-9/hexseed/pkg/generator/composer"
	"github.com/Amr-9/hexseed/pkg/generator/profanity"
)

const phrase24 = "w01 w02 w03 w04 w05 w06 w07 w08 w09 w10 w11 w12 w13 w14 w15 w16 w17 w18 w19 w20 w21 w22 w23 w24"

func TestMnemonicTable(t *testing.T) {
	lines := strings.Split(strings.TrimSuffix(MnemonicTable(phrase24), "\n"), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "1 ) w01      7 ) w07      13) w13      19) w19", lines[0])
	assert.Equal(t, "6 ) w06      12) w12      18) w18      24) w24", lines[5])
}

func TestMnemonicTableShortPhrase(t *testing.T) {
	table := MnemonicTable("alpha beta gamma")
	assert.Contains(t, table, "1 ) alpha")
	assert.Contains(t, table, "3 ) gamma")
	assert.NotContains(t, table, "4 )")
}

func TestAddressRecord(t *testing.T) {
	res := generator.Result{
		Chain:      generator.Tron,
		Address:    generator.Address{Chain: generator.Tron, Value: "TMVQGm1qAQYVdetCeGRRkTWYYrLXuHK2HC"},
		EVMAddress: "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf",
		Key:        generator.KeyMaterial{PrivateKey: bytes.Repeat([]byte{0x01}, 32)},
		Mnemonic:   &generator.Mnemonic{Phrase: phrase24, Path: "m/44'/195'/0'/0/0"},
	}
	out, err := AddressRecord(res)
	require.NoError(t, err)

	assert.Contains(t, out, "\nVanity Address:   TMVQGm1qAQYVdetCeGRRkTWYYrLXuHK2HC")
	assert.Contains(t, out, "\nEVM Address:      0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf")
	assert.Contains(t, out, "\nDerivation Path:  m/44'/195'/0'/0/0")
	assert.Contains(t, out, "24-Word Phrase:")
	assert.Contains(t, out, "24) w24")
	assert.Contains(t, out, "\nPrivate Key:      0x"+strings.Repeat("01", 32))
	assert.NotContains(t, out, "Vanity Contract")
}

func TestAddressRecordSolanaSecret(t *testing.T) {
	res := generator.Result{
		Chain:   generator.Solana,
		Address: generator.Address{Chain: generator.Solana, Value: "x"},
		Key:     generator.KeyMaterial{PrivateKey: make([]byte, 32)},
	}
	out, err := AddressRecord(res)
	require.NoError(t, err)
	assert.NotContains(t, out, "Private Key:      0x")
	assert.NotContains(t, out, "24-Word Phrase")

	_, err = AddressRecord(generator.Result{Chain: generator.Solana, Key: generator.KeyMaterial{PrivateKey: []byte{1}}})
	assert.Error(t, err)
}

func TestDelegatedRecord(t *testing.T) {
	res := &profanity.Result{
		Chain:         generator.Tron,
		Mnemonic:      generator.Mnemonic{Phrase: phrase24, Path: "m/44'/195'/0'/0/0"},
		SeedKey:       bytes.Repeat([]byte{0xaa}, 32),
		TweakKey:      bytes.Repeat([]byte{0xbb}, 32),
		FinalKey:      bytes.Repeat([]byte{0xcc}, 32),
		VanityAddress: "0xdead",
		FinalAddress:  generator.Address{Chain: generator.Tron, Value: "TFinal"},
		EVMAddress:    "0xDEAD",
	}
	out := DelegatedRecord(res)
	assert.Contains(t, out, "\n24-Word Phrase:     "+phrase24)
	assert.Contains(t, out, "\nFinal Address:      TFinal")
	assert.Contains(t, out, "\nEVM Address:        0xDEAD")
	assert.Contains(t, out, "\nProfanity Private Key: 0x"+strings.Repeat("bb", 32))
}

func TestRecoveryRecord(t *testing.T) {
	rec := &composer.Recovery{
		Chain:           generator.Tron,
		Path:            "m/44'/195'/0'/0/0",
		SeedKey:         []byte{1},
		Address:         generator.Address{Chain: generator.Tron, Value: "TAddr"},
		EVMAddress:      "0xabc",
		FinalKey:        []byte{2},
		FinalAddress:    generator.Address{Chain: generator.Tron, Value: "TFinal"},
		FinalEVMAddress: "0xdef",
	}
	out := RecoveryRecord(rec)
	assert.Contains(t, out, "TRON Address:       TAddr")
	assert.Contains(t, out, "Final Private Key:  0x02")
	assert.Contains(t, out, "Final Address:      TFinal")
}

func TestSinkAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "wallets.txt")
	s := NewSink(path, nil)

	require.NoError(t, s.Write("first\n"))
	require.NoError(t, s.Write("second\n"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestSinkStdout(t *testing.T) {
	var buf bytes.Buffer
	s := NewSink("", &buf)
	require.NoError(t, s.Write("record\n"))
	assert.Equal(t, "record\n", buf.String())
	assert.Empty(t, s.Path())
}
